package acp

// AccessModes is the effective-access result for one agent on one
// resource. Read, Append, and Write apply to the resource itself;
// ControlRead and ControlWrite apply to its access-control metadata. Any
// subset may be set.
type AccessModes struct {
	Read         bool `json:"read"`
	Append       bool `json:"append"`
	Write        bool `json:"write"`
	ControlRead  bool `json:"controlRead"`
	ControlWrite bool `json:"controlWrite"`
}

// ModeSet is the read/append/write triple a single Policy allows or
// denies.
type ModeSet struct {
	Read   bool
	Append bool
	Write  bool
}

// Scope selects which output fields a folded Policy touches.
type Scope int

const (
	// ScopeResource folds a Policy's modes onto the resource's own
	// read/append/write.
	ScopeResource Scope = iota

	// ScopeControl folds a Policy's read/write onto control-read and
	// control-write; append has no control-scope counterpart.
	ScopeControl
)

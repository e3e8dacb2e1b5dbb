package acp

// ApplyPolicy folds one matching policy into the accumulating modes. Each
// step recomputes (old OR allow) AND NOT deny, so a deny only wins against
// its own policy's allow: a later policy's allow re-enables a mode an
// earlier one denied.
//
// In control scope the policy's read/write over the access control
// resource map onto the control-read/control-write output fields; append
// has no control-scope counterpart and is ignored.
func ApplyPolicy(acc AccessModes, p Policy, scope Scope) AccessModes {
	allow := p.Allows()
	deny := p.Denies()

	switch scope {
	case ScopeResource:
		acc.Read = (acc.Read || allow.Read) && !deny.Read
		acc.Append = (acc.Append || allow.Append) && !deny.Append
		acc.Write = (acc.Write || allow.Write) && !deny.Write
	case ScopeControl:
		acc.ControlRead = (acc.ControlRead || allow.Read) && !deny.Read
		acc.ControlWrite = (acc.ControlWrite || allow.Write) && !deny.Write
	}
	return acc
}

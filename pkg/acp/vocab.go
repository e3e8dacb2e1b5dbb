// Package acp resolves effective access under the Access Control Policy
// scheme: it slices Policies, Matchers, and Access Controls out of a quad
// dataset and folds the ones matching an agent into a set of effective
// access modes. Everything in this package is pure and synchronous; the
// I/O needed to obtain an access control resource lives with the caller.
package acp

// Namespace is the ACP vocabulary namespace.
const Namespace = "http://www.w3.org/ns/solid/acp#"

// Type markers.
const (
	TypeAccessControlResource = Namespace + "AccessControlResource"
	TypeAccessControl         = Namespace + "AccessControl"
	TypePolicy                = Namespace + "Policy"
	TypeMatcher               = Namespace + "Matcher"
)

// Structure predicates.
const (
	PredicateAccessControl       = Namespace + "accessControl"
	PredicateMemberAccessControl = Namespace + "memberAccessControl"
	PredicateApply               = Namespace + "apply"
	PredicateAccess              = Namespace + "access"
)

// Policy predicates.
const (
	PredicateAllow  = Namespace + "allow"
	PredicateDeny   = Namespace + "deny"
	PredicateAllOf  = Namespace + "allOf"
	PredicateAnyOf  = Namespace + "anyOf"
	PredicateNoneOf = Namespace + "noneOf"
)

// PredicateAgent lists the actor identifiers a Matcher matches.
const PredicateAgent = Namespace + "agent"

// Sentinel agent identifiers. They are ordinary values in a Matcher's
// agent set; callers test for them explicitly when they want universal or
// authenticated access.
const (
	PublicAgent        = Namespace + "PublicAgent"
	AuthenticatedAgent = Namespace + "AuthenticatedAgent"
	CreatorAgent       = Namespace + "CreatorAgent"
)

// ACLNamespace is the legacy Web-Access-Control namespace the access-mode
// value IRIs are reused from.
const ACLNamespace = "http://www.w3.org/ns/auth/acl#"

// Access-mode value IRIs.
const (
	ModeRead   = ACLNamespace + "Read"
	ModeAppend = ACLNamespace + "Append"
	ModeWrite  = ACLNamespace + "Write"
)

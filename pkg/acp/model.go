package acp

import (
	"github.com/podgraph/podgraph/pkg/rdf"
)

// The typed views below are transient slices over a dataset: constructing
// one never copies or caches anything, and a view is only as live as the
// quads backing it. Subjects may be absolute IRIs or blank nodes; the ACP
// scheme typically keeps controls, policies, and matchers as fragments of
// the access control resource, but nothing here assumes co-location.

// AccessControlResource is the resource holding the access-control
// metadata that governs another resource.
type AccessControlResource struct {
	subject rdf.IRI
	dataset rdf.Dataset
}

// NewAccessControlResource views the dataset as the access control
// resource at subject.
func NewAccessControlResource(dataset rdf.Dataset, subject rdf.IRI) AccessControlResource {
	return AccessControlResource{subject: subject, dataset: dataset}
}

// Subject returns the resource's own address.
func (r AccessControlResource) Subject() rdf.IRI {
	return r.subject
}

// Dataset returns the backing dataset.
func (r AccessControlResource) Dataset() rdf.Dataset {
	return r.dataset
}

// AccessControls returns the access controls governing the resource
// itself.
func (r AccessControlResource) AccessControls() []AccessControl {
	return r.controls(PredicateAccessControl)
}

// MemberAccessControls returns the access controls governing the
// resource's children. They do not participate in the resource's own
// access resolution.
func (r AccessControlResource) MemberAccessControls() []AccessControl {
	return r.controls(PredicateMemberAccessControl)
}

func (r AccessControlResource) controls(predicate rdf.IRI) []AccessControl {
	refs := objectRefs(r.dataset, r.subject, predicate)
	out := make([]AccessControl, 0, len(refs))
	for _, ref := range refs {
		out = append(out, AccessControl{subject: ref, dataset: r.dataset})
	}
	return out
}

// AccessControl links a resource to the Policies governing it and to the
// Policies governing the access-control metadata itself.
type AccessControl struct {
	subject rdf.Term
	dataset rdf.Dataset
}

// Subject returns the access control's subject term.
func (c AccessControl) Subject() rdf.Term {
	return c.subject
}

// AppliedPolicies returns the Policies granting or denying modes over the
// governed resource.
func (c AccessControl) AppliedPolicies() []Policy {
	return c.policies(PredicateApply)
}

// AccessPolicies returns the Policies granting or denying modes over the
// access control resource itself.
func (c AccessControl) AccessPolicies() []Policy {
	return c.policies(PredicateAccess)
}

func (c AccessControl) policies(predicate rdf.IRI) []Policy {
	refs := objectRefs(c.dataset, c.subject, predicate)
	out := make([]Policy, 0, len(refs))
	for _, ref := range refs {
		out = append(out, Policy{subject: ref, dataset: c.dataset})
	}
	return out
}

// Policy grants and denies access modes, subject to its matcher
// conditions.
type Policy struct {
	subject rdf.Term
	dataset rdf.Dataset
}

// NewPolicy views the dataset as the Policy at subject.
func NewPolicy(dataset rdf.Dataset, subject rdf.Term) Policy {
	return Policy{subject: subject, dataset: dataset}
}

// Subject returns the policy's subject term.
func (p Policy) Subject() rdf.Term {
	return p.subject
}

// Allows returns the modes the policy allows.
func (p Policy) Allows() ModeSet {
	return p.modes(PredicateAllow)
}

// Denies returns the modes the policy denies.
func (p Policy) Denies() ModeSet {
	return p.modes(PredicateDeny)
}

func (p Policy) modes(predicate rdf.IRI) ModeSet {
	var set ModeSet
	for _, q := range p.dataset.Match(p.subject, predicate, nil, nil) {
		switch q.Object {
		case rdf.IRI(ModeRead):
			set.Read = true
		case rdf.IRI(ModeAppend):
			set.Append = true
		case rdf.IRI(ModeWrite):
			set.Write = true
		}
	}
	return set
}

// AllOf returns the resolved allOf matchers; dangling references are
// excluded, not an error.
func (p Policy) AllOf() []Matcher {
	return p.matchers(PredicateAllOf)
}

// AnyOf returns the resolved anyOf matchers.
func (p Policy) AnyOf() []Matcher {
	return p.matchers(PredicateAnyOf)
}

// NoneOf returns the resolved noneOf matchers.
func (p Policy) NoneOf() []Matcher {
	return p.matchers(PredicateNoneOf)
}

// matchers resolves the predicate's references to Matchers. A reference
// resolves when the dataset has at least one statement about it; anything
// else is a dangling link and drops out of the set.
func (p Policy) matchers(predicate rdf.IRI) []Matcher {
	var out []Matcher
	for _, ref := range objectRefs(p.dataset, p.subject, predicate) {
		if len(p.dataset.Match(ref, nil, nil, nil)) == 0 {
			continue
		}
		out = append(out, Matcher{subject: ref, dataset: p.dataset})
	}
	return out
}

// Matcher is a named condition listing the actor identifiers it matches.
type Matcher struct {
	subject rdf.Term
	dataset rdf.Dataset
}

// Subject returns the matcher's subject term.
func (m Matcher) Subject() rdf.Term {
	return m.subject
}

// Agents returns the actor identifiers in the matcher's agent set,
// sentinels included.
func (m Matcher) Agents() []rdf.IRI {
	var out []rdf.IRI
	for _, q := range m.dataset.Match(m.subject, rdf.IRI(PredicateAgent), nil, nil) {
		if iri, ok := q.Object.(rdf.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}

// MatchesAgent reports whether the agent is listed in the matcher's agent
// set.
func (m Matcher) MatchesAgent(agent rdf.IRI) bool {
	for _, listed := range m.Agents() {
		if listed == agent {
			return true
		}
	}
	return false
}

// objectRefs returns the subject-capable objects (IRIs and blank nodes)
// stored for subject/predicate.
func objectRefs(dataset rdf.Dataset, subject rdf.Term, predicate rdf.IRI) []rdf.Term {
	var out []rdf.Term
	for _, q := range dataset.Match(subject, predicate, nil, nil) {
		switch q.Object.(type) {
		case rdf.IRI, rdf.BlankNode:
			out = append(out, q.Object)
		}
	}
	return out
}

package acp

import (
	"errors"

	"github.com/podgraph/podgraph/pkg/rdf"
)

// ErrNoAccessControlResource signals that a resource has no reachable
// access control resource. It is distinct from an access control resource
// that is present but grants nothing.
var ErrNoAccessControlResource = errors.New("acp: no access control resource available")

// AgentAccess computes the agent's effective modes under the access
// control resource, and reports whether any policy matched at all. Member
// access controls are ignored; they govern children, not the resource
// itself. A policy reachable through both an apply and an access link
// participates in both scopes independently.
func AgentAccess(acr AccessControlResource, agent rdf.IRI) (AccessModes, bool) {
	var applied, access []Policy
	for _, control := range acr.AccessControls() {
		applied = append(applied, control.AppliedPolicies()...)
		access = append(access, control.AccessPolicies()...)
	}

	var modes AccessModes
	matched := false
	for _, p := range applied {
		if PolicyMatches(p, agent) {
			modes = ApplyPolicy(modes, p, ScopeResource)
			matched = true
		}
	}
	for _, p := range access {
		if PolicyMatches(p, agent) {
			modes = ApplyPolicy(modes, p, ScopeControl)
			matched = true
		}
	}
	return modes, matched
}

// GetAgentAccess returns the agent's effective modes under the access
// control resource, starting from all-false.
func GetAgentAccess(acr AccessControlResource, agent rdf.IRI) AccessModes {
	modes, _ := AgentAccess(acr, agent)
	return modes
}

// Agents returns the distinct actor identifiers appearing in any matcher's
// agent set reachable from the access control resource, in no particular
// order.
func Agents(acr AccessControlResource) []rdf.IRI {
	seen := map[rdf.IRI]bool{}
	var out []rdf.IRI
	add := func(agents []rdf.IRI) {
		for _, agent := range agents {
			if !seen[agent] {
				seen[agent] = true
				out = append(out, agent)
			}
		}
	}
	forEachPolicy(acr, func(p Policy) {
		for _, m := range p.AllOf() {
			add(m.Agents())
		}
		for _, m := range p.AnyOf() {
			add(m.Agents())
		}
		for _, m := range p.NoneOf() {
			add(m.Agents())
		}
	})
	return out
}

// GetAgentAccessAll computes every known agent's effective modes. Agents
// with no matching policy at all are omitted rather than reported as
// all-false.
func GetAgentAccessAll(acr AccessControlResource) map[rdf.IRI]AccessModes {
	out := map[rdf.IRI]AccessModes{}
	for _, agent := range Agents(acr) {
		if modes, matched := AgentAccess(acr, agent); matched {
			out[agent] = modes
		}
	}
	return out
}

func forEachPolicy(acr AccessControlResource, fn func(Policy)) {
	for _, control := range acr.AccessControls() {
		for _, p := range control.AppliedPolicies() {
			fn(p)
		}
		for _, p := range control.AccessPolicies() {
			fn(p)
		}
	}
}

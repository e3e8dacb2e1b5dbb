package acp

import "github.com/podgraph/podgraph/pkg/rdf"

// PolicyMatches reports whether the agent satisfies the policy's matcher
// combination:
//
//   - every resolved allOf matcher must list the agent (vacuously true
//     when the set is empty),
//   - at least one resolved anyOf matcher must list the agent (vacuously
//     true when the set is empty),
//   - no resolved noneOf matcher may list the agent, and
//   - at least one positive matcher (allOf or anyOf) must exist at all.
//
// The last clause makes exclusion-only policies vacuously non-matching: a
// policy with only noneOf matchers grants nothing to anyone rather than
// everything to everyone outside the exclusion.
func PolicyMatches(p Policy, agent rdf.IRI) bool {
	allOf := p.AllOf()
	anyOf := p.AnyOf()
	if len(allOf) == 0 && len(anyOf) == 0 {
		return false
	}

	for _, m := range allOf {
		if !m.MatchesAgent(agent) {
			return false
		}
	}

	if len(anyOf) > 0 {
		hit := false
		for _, m := range anyOf {
			if m.MatchesAgent(agent) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for _, m := range p.NoneOf() {
		if m.MatchesAgent(agent) {
			return false
		}
	}

	return true
}

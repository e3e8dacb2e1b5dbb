package acp

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/podgraph/podgraph/pkg/rdf"
)

var (
	acrIRI  = rdf.IRI("https://pod.example/resource?ext=acr")
	control = rdf.IRI("https://pod.example/resource?ext=acr#ac1")
	policy1 = rdf.IRI("https://pod.example/resource?ext=acr#p1")
	m1      = rdf.IRI("https://pod.example/resource?ext=acr#m1")

	bobAgent   = rdf.IRI("https://pod.example/bob#me")
	aliceAgent = rdf.IRI("https://pod.example/alice#me")
)

// scenarioACR builds the canonical end-to-end fixture: the ACR links one
// access control, which applies one policy allowing Read to anyone
// matching m1, and m1 lists bob.
func scenarioACR() AccessControlResource {
	d := rdf.NewDataset(
		rdf.Quad{Subject: acrIRI, Predicate: rdf.IRI(PredicateAccessControl), Object: control},
		rdf.Quad{Subject: control, Predicate: rdf.IRI(PredicateApply), Object: policy1},
		rdf.Quad{Subject: policy1, Predicate: rdf.IRI(PredicateAnyOf), Object: m1},
		rdf.Quad{Subject: policy1, Predicate: rdf.IRI(PredicateAllow), Object: rdf.IRI(ModeRead)},
		rdf.Quad{Subject: m1, Predicate: rdf.IRI(PredicateAgent), Object: bobAgent},
	)
	return NewAccessControlResource(d, acrIRI)
}

func TestGetAgentAccessEndToEnd(t *testing.T) {
	acr := scenarioACR()

	t.Run("matched_agent_gets_allowed_modes", func(t *testing.T) {
		require.Equal(t, AccessModes{Read: true}, GetAgentAccess(acr, bobAgent))
	})

	t.Run("unmatched_agent_gets_all_false", func(t *testing.T) {
		require.Equal(t, AccessModes{}, GetAgentAccess(acr, aliceAgent))
	})
}

func TestGetAgentAccessAll(t *testing.T) {
	acr := scenarioACR()
	got := GetAgentAccessAll(acr)
	require.Equal(t, map[rdf.IRI]AccessModes{bobAgent: {Read: true}}, got)
}

func TestGetAgentAccessAllOmitsNeverMatchedAgents(t *testing.T) {
	// alice only appears in a noneOf matcher, so no policy ever matches
	// her; she must be omitted rather than reported all-false.
	d := scenarioACR().Dataset()
	noneMatcher := rdf.IRI("https://pod.example/resource?ext=acr#m2")
	d = d.AddAll(
		rdf.Quad{Subject: policy1, Predicate: rdf.IRI(PredicateNoneOf), Object: noneMatcher},
		rdf.Quad{Subject: noneMatcher, Predicate: rdf.IRI(PredicateAgent), Object: aliceAgent},
	)
	acr := NewAccessControlResource(d, acrIRI)

	got := GetAgentAccessAll(acr)
	require.Contains(t, got, bobAgent)
	require.NotContains(t, got, aliceAgent)
}

func TestControlScopePolicies(t *testing.T) {
	d := scenarioACR().Dataset()
	controlPolicy := rdf.IRI("https://pod.example/resource?ext=acr#pctl")
	d = d.AddAll(
		rdf.Quad{Subject: control, Predicate: rdf.IRI(PredicateAccess), Object: controlPolicy},
		rdf.Quad{Subject: controlPolicy, Predicate: rdf.IRI(PredicateAnyOf), Object: m1},
		rdf.Quad{Subject: controlPolicy, Predicate: rdf.IRI(PredicateAllow), Object: rdf.IRI(ModeWrite)},
	)
	acr := NewAccessControlResource(d, acrIRI)

	got := GetAgentAccess(acr, bobAgent)
	require.Equal(t, AccessModes{Read: true, ControlWrite: true}, got)
}

func TestPolicyInBothScopes(t *testing.T) {
	// The same policy reachable through apply and access participates in
	// both scopes independently.
	d := rdf.NewDataset(
		rdf.Quad{Subject: acrIRI, Predicate: rdf.IRI(PredicateAccessControl), Object: control},
		rdf.Quad{Subject: control, Predicate: rdf.IRI(PredicateApply), Object: policy1},
		rdf.Quad{Subject: control, Predicate: rdf.IRI(PredicateAccess), Object: policy1},
		rdf.Quad{Subject: policy1, Predicate: rdf.IRI(PredicateAnyOf), Object: m1},
		rdf.Quad{Subject: policy1, Predicate: rdf.IRI(PredicateAllow), Object: rdf.IRI(ModeRead)},
		rdf.Quad{Subject: m1, Predicate: rdf.IRI(PredicateAgent), Object: bobAgent},
	)
	acr := NewAccessControlResource(d, acrIRI)

	got := GetAgentAccess(acr, bobAgent)
	require.Equal(t, AccessModes{Read: true, ControlRead: true}, got)
}

func TestMemberAccessControlsAreIgnored(t *testing.T) {
	memberControl := rdf.IRI("https://pod.example/resource?ext=acr#acm")
	memberPolicy := rdf.IRI("https://pod.example/resource?ext=acr#pm")
	d := rdf.NewDataset(
		rdf.Quad{Subject: acrIRI, Predicate: rdf.IRI(PredicateMemberAccessControl), Object: memberControl},
		rdf.Quad{Subject: memberControl, Predicate: rdf.IRI(PredicateApply), Object: memberPolicy},
		rdf.Quad{Subject: memberPolicy, Predicate: rdf.IRI(PredicateAnyOf), Object: m1},
		rdf.Quad{Subject: memberPolicy, Predicate: rdf.IRI(PredicateAllow), Object: rdf.IRI(ModeWrite)},
		rdf.Quad{Subject: m1, Predicate: rdf.IRI(PredicateAgent), Object: bobAgent},
	)
	acr := NewAccessControlResource(d, acrIRI)

	require.Equal(t, AccessModes{}, GetAgentAccess(acr, bobAgent))
	require.Empty(t, GetAgentAccessAll(acr))
	require.Len(t, acr.MemberAccessControls(), 1)
}

func TestEmptyACRGrantsNothing(t *testing.T) {
	acr := NewAccessControlResource(rdf.NewDataset(), acrIRI)
	modes, matched := AgentAccess(acr, bobAgent)
	require.Equal(t, AccessModes{}, modes)
	require.False(t, matched)
}

func TestBlankNodeSubjectsResolve(t *testing.T) {
	// Controls, policies, and matchers may be anonymous nodes rather than
	// fragments of the ACR.
	ac := rdf.BlankNode("ac")
	pol := rdf.BlankNode("pol")
	m := rdf.BlankNode("m")
	d := rdf.NewDataset(
		rdf.Quad{Subject: acrIRI, Predicate: rdf.IRI(PredicateAccessControl), Object: ac},
		rdf.Quad{Subject: ac, Predicate: rdf.IRI(PredicateApply), Object: pol},
		rdf.Quad{Subject: pol, Predicate: rdf.IRI(PredicateAnyOf), Object: m},
		rdf.Quad{Subject: pol, Predicate: rdf.IRI(PredicateAllow), Object: rdf.IRI(ModeAppend)},
		rdf.Quad{Subject: m, Predicate: rdf.IRI(PredicateAgent), Object: bobAgent},
	)
	acr := NewAccessControlResource(d, acrIRI)

	require.Equal(t, AccessModes{Append: true}, GetAgentAccess(acr, bobAgent))
}

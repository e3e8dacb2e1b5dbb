package rdf

// DefaultGraph names the default graph. Quads with a zero-value Graph
// belong to it.
const DefaultGraph = IRI("")

// Quad is one subject/predicate/object statement in a named graph. The
// subject is an IRI or a BlankNode, never a Literal.
type Quad struct {
	Subject   Term
	Predicate IRI
	Object    Term
	Graph     IRI
}

// Equal compares all four positions, applying literal normalization to the
// object.
func (q Quad) Equal(o Quad) bool {
	return q.Graph == o.Graph &&
		q.Predicate == o.Predicate &&
		q.Subject.Equal(o.Subject) &&
		q.Object.Equal(o.Object)
}

// matches reports whether the quad fits the pattern; nil pattern positions
// are wildcards. The graph position is matched separately by the caller.
func (q Quad) matches(subject, predicate, object Term) bool {
	if subject != nil && !q.Subject.Equal(subject) {
		return false
	}
	if predicate != nil && !predicate.Equal(q.Predicate) {
		return false
	}
	if object != nil && !q.Object.Equal(object) {
		return false
	}
	return true
}

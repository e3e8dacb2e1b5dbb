// Package thing provides a subject-centric read/write view over one
// subject's statements in an immutable rdf.Dataset. A Thing is either
// local (its subject is a blank node not yet assigned a persistent
// address) or persisted (its subject is an absolute IRI); the distinction
// is carried in the type parameter, so mutators preserve it at compile
// time.
package thing

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/rdf/xsd"
)

var (
	// ErrInvalidPredicate is returned when a mutator is handed a
	// predicate that is not an absolute IRI.
	ErrInvalidPredicate = errors.New("thing: predicate is not an absolute IRI")

	// ErrInvalidValue is returned when an IRI-valued mutator is handed a
	// value that is not an absolute IRI.
	ErrInvalidValue = errors.New("thing: value is not an absolute IRI")
)

// Subject constrains the two subject kinds a Thing can have.
type Subject interface {
	rdf.IRI | rdf.BlankNode
}

// Thing pairs a subject identity with the dataset it is sliced from.
// Identity and storage stay separate fields: the dataset may hold
// statements about other subjects, and the same dataset value may back
// many Things.
type Thing[S Subject] struct {
	subject S
	dataset rdf.Dataset
}

// Local is a Thing whose subject has not been assigned a persistent
// address yet.
type Local = Thing[rdf.BlankNode]

// Persisted is a Thing bound to an absolute address.
type Persisted = Thing[rdf.IRI]

// NewLocal returns an empty local Thing with a fresh, unique subject name.
func NewLocal() Local {
	return Local{subject: rdf.BlankNode(uuid.NewString())}
}

// New returns an empty persisted Thing at the given absolute address.
func New(address string) (Persisted, error) {
	iri, err := rdf.ParseIRI(address)
	if err != nil {
		return Persisted{}, err
	}
	return Persisted{subject: iri}, nil
}

// FromDataset slices a Thing for subject out of an existing dataset.
func FromDataset[S Subject](dataset rdf.Dataset, subject S) Thing[S] {
	return Thing[S]{subject: subject, dataset: dataset}
}

// Subject returns the subject identity.
func (t Thing[S]) Subject() S {
	return t.subject
}

// Dataset returns the backing dataset value.
func (t Thing[S]) Dataset() rdf.Dataset {
	return t.dataset
}

// Ref is anything that can stand in object position as a reference to a
// subject: any Thing, local or persisted.
type Ref interface {
	refTerm() rdf.Term
}

func (t Thing[S]) refTerm() rdf.Term {
	return t.term()
}

func (t Thing[S]) term() rdf.Term {
	return any(t.subject).(rdf.Term)
}

// Quads returns this subject's statements, across all graphs.
func (t Thing[S]) Quads() []rdf.Quad {
	return t.dataset.Match(t.term(), nil, nil, nil)
}

// Terms returns every object term stored for the predicate.
func (t Thing[S]) Terms(predicate rdf.IRI) []rdf.Term {
	quads := t.dataset.Match(t.term(), predicate, nil, nil)
	out := make([]rdf.Term, 0, len(quads))
	for _, q := range quads {
		out = append(out, q.Object)
	}
	return out
}

// IRIs returns the IRI-valued objects stored for the predicate.
func (t Thing[S]) IRIs(predicate rdf.IRI) []rdf.IRI {
	var out []rdf.IRI
	for _, term := range t.Terms(predicate) {
		if iri, ok := term.(rdf.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}

// Refs returns the subject-capable objects (IRIs and blank nodes) stored
// for the predicate.
func (t Thing[S]) Refs(predicate rdf.IRI) []rdf.Term {
	var out []rdf.Term
	for _, term := range t.Terms(predicate) {
		switch term.(type) {
		case rdf.IRI, rdf.BlankNode:
			out = append(out, term)
		}
	}
	return out
}

// Bool returns the first boolean value stored for the predicate.
func (t Thing[S]) Bool(predicate rdf.IRI) (bool, bool) {
	for _, lit := range t.literals(predicate, xsd.Boolean) {
		if v, err := xsd.ParseBoolean(lit.Lexical); err == nil {
			return v, true
		}
	}
	return false, false
}

// Int returns the first integer value stored for the predicate.
func (t Thing[S]) Int(predicate rdf.IRI) (int64, bool) {
	for _, lit := range t.literals(predicate, xsd.Integer) {
		if v, err := xsd.ParseInteger(lit.Lexical); err == nil {
			return v, true
		}
	}
	return 0, false
}

// StringValue returns the first plain string value stored for the
// predicate.
func (t Thing[S]) StringValue(predicate rdf.IRI) (string, bool) {
	for _, lit := range t.literals(predicate, xsd.String) {
		return lit.Lexical, true
	}
	return "", false
}

func (t Thing[S]) literals(predicate, datatype rdf.IRI) []rdf.Literal {
	var out []rdf.Literal
	for _, term := range t.Terms(predicate) {
		if lit, ok := term.(rdf.Literal); ok && lit.Datatype == datatype {
			out = append(out, lit)
		}
	}
	return out
}

func validPredicate(predicate rdf.IRI) error {
	if _, err := rdf.ParseIRI(string(predicate)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPredicate, string(predicate))
	}
	return nil
}

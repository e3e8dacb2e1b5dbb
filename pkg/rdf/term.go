// Package rdf implements the term model and an immutable quad store for
// RDF-style resource descriptions. A Dataset is a pure value: every
// mutation returns a new Dataset and the original stays valid, so
// concurrent readers never need coordination.
package rdf

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/podgraph/podgraph/pkg/rdf/xsd"
)

// ErrInvalidIRI is returned when a string is not a syntactically valid
// absolute IRI.
var ErrInvalidIRI = errors.New("rdf: not an absolute IRI")

// Term is the closed sum of the three term kinds: IRI, BlankNode, and
// Literal. No other implementations exist.
type Term interface {
	// Equal reports whether two terms denote the same node. Literals
	// normalize per datatype before comparing.
	Equal(Term) bool

	// String returns an N-Triples-style rendering, used for logs and
	// error messages.
	String() string

	isTerm()
}

// IRI is a named node identified by an absolute IRI.
type IRI string

func (IRI) isTerm() {}

func (i IRI) Equal(o Term) bool {
	j, ok := o.(IRI)
	return ok && i == j
}

func (i IRI) String() string {
	return "<" + string(i) + ">"
}

// ParseIRI validates that s is an absolute IRI and returns it typed.
func ParseIRI(s string) (IRI, error) {
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() || strings.ContainsAny(s, " \t\r\n<>\"{}|\\^`") {
		return "", fmt.Errorf("%w: %q", ErrInvalidIRI, s)
	}
	return IRI(s), nil
}

// BlankNode is an anonymous node with an opaque, document-scoped name.
type BlankNode string

func (BlankNode) isTerm() {}

func (b BlankNode) Equal(o Term) bool {
	c, ok := o.(BlankNode)
	return ok && b == c
}

func (b BlankNode) String() string {
	return "_:" + string(b)
}

// Literal is a typed literal. Language-tagged literals carry the
// xsd.LangString datatype plus a non-empty Language tag.
type Literal struct {
	Lexical  string
	Datatype IRI
	Language string
}

func (Literal) isTerm() {}

// Equal normalizes per datatype: booleans written "1" and "true" are
// equal, integers tolerate a leading sign, decimals tolerate leading
// zeros and a redundant trailing fraction, and dateTimes compare as
// instants after truncation to whole seconds. Language tags compare
// case-insensitively; the text must match exactly.
func (l Literal) Equal(o Term) bool {
	m, ok := o.(Literal)
	if !ok || l.Datatype != m.Datatype {
		return false
	}
	if l.Datatype == xsd.LangString {
		return strings.EqualFold(l.Language, m.Language) && l.Lexical == m.Lexical
	}
	return xsd.Equal(string(l.Datatype), l.Lexical, m.Lexical)
}

func (l Literal) String() string {
	q := fmt.Sprintf("%q", l.Lexical)
	switch {
	case l.Language != "":
		return q + "@" + l.Language
	case l.Datatype != "" && l.Datatype != xsd.String:
		return q + "^^" + l.Datatype.String()
	default:
		return q
	}
}

// StringLiteral returns a plain (un-tagged) string literal.
func StringLiteral(s string) Literal {
	return Literal{Lexical: s, Datatype: xsd.String}
}

// LangLiteral returns a language-tagged literal. The tag is lower-cased,
// which is the canonical form on write.
func LangLiteral(s, language string) Literal {
	return Literal{Lexical: s, Datatype: xsd.LangString, Language: strings.ToLower(language)}
}

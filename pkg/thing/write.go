package thing

import (
	"fmt"
	"time"

	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/rdf/xsd"
)

// Mutators come in three variants per semantic type: Add appends one
// statement and preserves the rest, Set replaces every statement for the
// predicate with one, and Remove deletes the statements whose object
// denotes the given value under the datatype's equality rule. All of them
// return a new Thing with the same subject; the receiver is unchanged.
// New statements go to the default graph; removals apply across graphs.

func (t Thing[S]) add(predicate rdf.IRI, object rdf.Term) (Thing[S], error) {
	if err := validPredicate(predicate); err != nil {
		return t, err
	}
	q := rdf.Quad{Subject: t.term(), Predicate: predicate, Object: object}
	return Thing[S]{subject: t.subject, dataset: t.dataset.Add(q)}, nil
}

func (t Thing[S]) set(predicate rdf.IRI, object rdf.Term) (Thing[S], error) {
	cleared, err := t.RemoveAll(predicate)
	if err != nil {
		return t, err
	}
	return cleared.add(predicate, object)
}

func (t Thing[S]) remove(predicate rdf.IRI, object rdf.Term) (Thing[S], error) {
	if err := validPredicate(predicate); err != nil {
		return t, err
	}
	ds := t.dataset.Remove(t.term(), predicate, object, nil)
	return Thing[S]{subject: t.subject, dataset: ds}, nil
}

// RemoveAll deletes every statement for the predicate, whatever the value.
func (t Thing[S]) RemoveAll(predicate rdf.IRI) (Thing[S], error) {
	return t.remove(predicate, nil)
}

func boolLiteral(v bool) rdf.Literal {
	return rdf.Literal{Lexical: xsd.FormatBoolean(v), Datatype: xsd.Boolean}
}

func (t Thing[S]) AddBool(predicate rdf.IRI, v bool) (Thing[S], error) {
	return t.add(predicate, boolLiteral(v))
}

func (t Thing[S]) SetBool(predicate rdf.IRI, v bool) (Thing[S], error) {
	return t.set(predicate, boolLiteral(v))
}

func (t Thing[S]) RemoveBool(predicate rdf.IRI, v bool) (Thing[S], error) {
	return t.remove(predicate, boolLiteral(v))
}

func intLiteral(v int64) rdf.Literal {
	return rdf.Literal{Lexical: xsd.FormatInteger(v), Datatype: xsd.Integer}
}

func (t Thing[S]) AddInt(predicate rdf.IRI, v int64) (Thing[S], error) {
	return t.add(predicate, intLiteral(v))
}

func (t Thing[S]) SetInt(predicate rdf.IRI, v int64) (Thing[S], error) {
	return t.set(predicate, intLiteral(v))
}

func (t Thing[S]) RemoveInt(predicate rdf.IRI, v int64) (Thing[S], error) {
	return t.remove(predicate, intLiteral(v))
}

func decimalLiteral(v float64) rdf.Literal {
	return rdf.Literal{Lexical: xsd.FormatDecimal(v), Datatype: xsd.Decimal}
}

func (t Thing[S]) AddDecimal(predicate rdf.IRI, v float64) (Thing[S], error) {
	return t.add(predicate, decimalLiteral(v))
}

func (t Thing[S]) SetDecimal(predicate rdf.IRI, v float64) (Thing[S], error) {
	return t.set(predicate, decimalLiteral(v))
}

func (t Thing[S]) RemoveDecimal(predicate rdf.IRI, v float64) (Thing[S], error) {
	return t.remove(predicate, decimalLiteral(v))
}

func datetimeLiteral(v time.Time) rdf.Literal {
	return rdf.Literal{Lexical: xsd.FormatDateTime(v), Datatype: xsd.DateTime}
}

func (t Thing[S]) AddDatetime(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.add(predicate, datetimeLiteral(v))
}

func (t Thing[S]) SetDatetime(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.set(predicate, datetimeLiteral(v))
}

func (t Thing[S]) RemoveDatetime(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.remove(predicate, datetimeLiteral(v))
}

func dateLiteral(v time.Time) rdf.Literal {
	return rdf.Literal{Lexical: xsd.FormatDate(v), Datatype: xsd.Date}
}

func (t Thing[S]) AddDate(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.add(predicate, dateLiteral(v))
}

func (t Thing[S]) SetDate(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.set(predicate, dateLiteral(v))
}

func (t Thing[S]) RemoveDate(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.remove(predicate, dateLiteral(v))
}

func timeLiteral(v time.Time) rdf.Literal {
	return rdf.Literal{Lexical: xsd.FormatTime(v), Datatype: xsd.Time}
}

func (t Thing[S]) AddTime(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.add(predicate, timeLiteral(v))
}

func (t Thing[S]) SetTime(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.set(predicate, timeLiteral(v))
}

func (t Thing[S]) RemoveTime(predicate rdf.IRI, v time.Time) (Thing[S], error) {
	return t.remove(predicate, timeLiteral(v))
}

func (t Thing[S]) AddString(predicate rdf.IRI, v string) (Thing[S], error) {
	return t.add(predicate, rdf.StringLiteral(v))
}

func (t Thing[S]) SetString(predicate rdf.IRI, v string) (Thing[S], error) {
	return t.set(predicate, rdf.StringLiteral(v))
}

func (t Thing[S]) RemoveString(predicate rdf.IRI, v string) (Thing[S], error) {
	return t.remove(predicate, rdf.StringLiteral(v))
}

// AddStringWithLocale appends a language-tagged string; the locale tag is
// lower-cased on write.
func (t Thing[S]) AddStringWithLocale(predicate rdf.IRI, v, locale string) (Thing[S], error) {
	return t.add(predicate, rdf.LangLiteral(v, locale))
}

func (t Thing[S]) SetStringWithLocale(predicate rdf.IRI, v, locale string) (Thing[S], error) {
	return t.set(predicate, rdf.LangLiteral(v, locale))
}

func (t Thing[S]) RemoveStringWithLocale(predicate rdf.IRI, v, locale string) (Thing[S], error) {
	return t.remove(predicate, rdf.LangLiteral(v, locale))
}

// AddIRI appends a named-node reference. The value must be an absolute
// IRI.
func (t Thing[S]) AddIRI(predicate, value rdf.IRI) (Thing[S], error) {
	if err := validValue(value); err != nil {
		return t, err
	}
	return t.add(predicate, value)
}

func (t Thing[S]) SetIRI(predicate, value rdf.IRI) (Thing[S], error) {
	if err := validValue(value); err != nil {
		return t, err
	}
	return t.set(predicate, value)
}

func (t Thing[S]) RemoveIRI(predicate, value rdf.IRI) (Thing[S], error) {
	if err := validValue(value); err != nil {
		return t, err
	}
	return t.remove(predicate, value)
}

// AddRef appends a reference to another Thing, local or persisted.
func (t Thing[S]) AddRef(predicate rdf.IRI, ref Ref) (Thing[S], error) {
	return t.add(predicate, ref.refTerm())
}

func (t Thing[S]) SetRef(predicate rdf.IRI, ref Ref) (Thing[S], error) {
	return t.set(predicate, ref.refTerm())
}

func (t Thing[S]) RemoveRef(predicate rdf.IRI, ref Ref) (Thing[S], error) {
	return t.remove(predicate, ref.refTerm())
}

// AddTerm appends a raw term, stored and compared with no canonicalization
// beyond term equality.
func (t Thing[S]) AddTerm(predicate rdf.IRI, value rdf.Term) (Thing[S], error) {
	return t.add(predicate, value)
}

func (t Thing[S]) SetTerm(predicate rdf.IRI, value rdf.Term) (Thing[S], error) {
	return t.set(predicate, value)
}

func (t Thing[S]) RemoveTerm(predicate rdf.IRI, value rdf.Term) (Thing[S], error) {
	return t.remove(predicate, value)
}

func validValue(value rdf.IRI) error {
	if _, err := rdf.ParseIRI(string(value)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidValue, string(value))
	}
	return nil
}

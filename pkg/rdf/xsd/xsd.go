// Package xsd implements the canonical lexical forms of the XML Schema
// datatypes used for typed literals, together with the per-datatype
// equality rules. Canonicalization decides whether two stored literals
// denote the same value, so the rules here must stay aligned with what
// the thing mutators write.
package xsd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Datatype IRIs. Untyped constants so they convert directly to rdf.IRI.
const (
	Boolean  = "http://www.w3.org/2001/XMLSchema#boolean"
	Integer  = "http://www.w3.org/2001/XMLSchema#integer"
	Decimal  = "http://www.w3.org/2001/XMLSchema#decimal"
	DateTime = "http://www.w3.org/2001/XMLSchema#dateTime"
	Date     = "http://www.w3.org/2001/XMLSchema#date"
	Time     = "http://www.w3.org/2001/XMLSchema#time"
	String   = "http://www.w3.org/2001/XMLSchema#string"

	// LangString is the datatype of language-tagged literals. It lives in
	// the RDF namespace, not the XSD one, but is handled alongside the
	// schema types because it shares the same codec surface.
	LangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

var (
	ErrBoolean  = errors.New("xsd: invalid boolean lexical form")
	ErrInteger  = errors.New("xsd: invalid integer lexical form")
	ErrDecimal  = errors.New("xsd: invalid decimal lexical form")
	ErrDateTime = errors.New("xsd: invalid dateTime lexical form")
	ErrDate     = errors.New("xsd: invalid date lexical form")
	ErrTime     = errors.New("xsd: invalid time lexical form")
)

// FormatBoolean returns the canonical lexical form written by the thing
// mutators: "1" for true and "0" for false.
func FormatBoolean(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// ParseBoolean accepts the two canonical forms plus the spelled-out
// "true"/"false" forms found in data written by other implementations.
func ParseBoolean(s string) (bool, error) {
	switch s {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrBoolean, s)
	}
}

// FormatInteger returns the decimal string of v.
func FormatInteger(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ParseInteger parses a decimal integer, tolerating an explicit leading
// sign on the stored side.
func ParseInteger(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInteger, s)
	}
	return v, nil
}

// FormatDecimal returns the shortest decimal string that round-trips to v,
// never using exponent notation.
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseDecimal parses a decimal, tolerating leading zeros, an explicit
// leading sign, and a redundant trailing fraction such as "13.370".
func ParseDecimal(s string) (float64, error) {
	if s == "" || strings.ContainsAny(s, "eEnNiI") {
		// xsd:decimal has no exponent form, and ParseFloat's inf/nan
		// spellings are not valid decimals either.
		return 0, fmt.Errorf("%w: %q", ErrDecimal, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrDecimal, s)
	}
	return v, nil
}

// FormatDateTime returns an ISO-8601 UTC timestamp with second precision.
// The sub-second component is truncated, not rounded.
func FormatDateTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")
}

// dateTimeLayouts covers the zone spellings accepted on input: Zulu, an
// explicit offset, or no zone at all (read as UTC). Fractional seconds are
// accepted by time.Parse regardless of the layout and truncated afterwards.
var dateTimeLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

// ParseDateTime parses an ISO-8601 timestamp and canonicalizes it to a UTC
// instant with whole-second precision, so two spellings of the same instant
// compare equal.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateTime, s)
}

// FormatDate returns the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDate parses a calendar date, tolerating a trailing zone designator.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDate, s)
}

// FormatTime returns the UTC time of day of t with second precision.
func FormatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format("15:04:05")
}

// ParseTime parses a time of day, truncating any fractional seconds.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04:05Z07:00"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrTime, s)
}

// Equal reports whether two lexical forms denote the same value under the
// given datatype. Unknown datatypes, and forms that fail to parse, fall
// back to exact string comparison.
func Equal(datatype, a, b string) bool {
	if a == b {
		return true
	}
	switch datatype {
	case Boolean:
		av, aerr := ParseBoolean(a)
		bv, berr := ParseBoolean(b)
		return aerr == nil && berr == nil && av == bv
	case Integer:
		av, aerr := ParseInteger(a)
		bv, berr := ParseInteger(b)
		return aerr == nil && berr == nil && av == bv
	case Decimal:
		av, aerr := ParseDecimal(a)
		bv, berr := ParseDecimal(b)
		return aerr == nil && berr == nil && av == bv
	case DateTime:
		av, aerr := ParseDateTime(a)
		bv, berr := ParseDateTime(b)
		return aerr == nil && berr == nil && av.Equal(bv)
	case Date:
		av, aerr := ParseDate(a)
		bv, berr := ParseDate(b)
		return aerr == nil && berr == nil && av.Equal(bv)
	case Time:
		av, aerr := ParseTime(a)
		bv, berr := ParseTime(b)
		return aerr == nil && berr == nil && av.Equal(bv)
	default:
		return false
	}
}

package rdf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/podgraph/podgraph/pkg/rdf/xsd"
)

func TestParseIRI(t *testing.T) {
	t.Run("accepts_absolute_iris", func(t *testing.T) {
		for _, s := range []string{
			"https://example.org/resource",
			"https://example.org/container/#fragment",
			"urn:uuid:0a2c3294-1ba4-4698-949f-ef272563a4a1",
		} {
			iri, err := ParseIRI(s)
			require.NoError(t, err)
			require.Equal(t, IRI(s), iri)
		}
	})

	t.Run("rejects_relative_and_malformed", func(t *testing.T) {
		for _, s := range []string{
			"",
			"not an iri",
			"/relative/path",
			"#fragment-only",
			"https://example.org/with space",
		} {
			_, err := ParseIRI(s)
			require.ErrorIs(t, err, ErrInvalidIRI, "input %q", s)
		}
	})
}

func TestTermEquality(t *testing.T) {
	cases := []struct {
		name string
		a, b Term
		want bool
	}{
		{"same_iri", IRI("https://example.org/a"), IRI("https://example.org/a"), true},
		{"different_iri", IRI("https://example.org/a"), IRI("https://example.org/b"), false},
		{"iri_vs_blank", IRI("a"), BlankNode("a"), false},
		{"same_blank", BlankNode("b0"), BlankNode("b0"), true},
		{"iri_vs_string_literal", IRI("https://example.org/a"), StringLiteral("https://example.org/a"), false},
		{
			"boolean_spellings_equal",
			Literal{Lexical: "1", Datatype: xsd.Boolean},
			Literal{Lexical: "true", Datatype: xsd.Boolean},
			true,
		},
		{
			"integer_plus_sign_equal",
			Literal{Lexical: "42", Datatype: xsd.Integer},
			Literal{Lexical: "+42", Datatype: xsd.Integer},
			true,
		},
		{
			"decimal_padded_equal",
			Literal{Lexical: "13.37", Datatype: xsd.Decimal},
			Literal{Lexical: "013.370", Datatype: xsd.Decimal},
			true,
		},
		{
			"datetime_offset_equal",
			Literal{Lexical: "2023-04-05T06:07:08Z", Datatype: xsd.DateTime},
			Literal{Lexical: "2023-04-05T08:07:08+02:00", Datatype: xsd.DateTime},
			true,
		},
		{
			"datatype_mismatch",
			Literal{Lexical: "42", Datatype: xsd.Integer},
			Literal{Lexical: "42", Datatype: xsd.Decimal},
			false,
		},
		{
			"lang_tag_case_insensitive",
			LangLiteral("hallo", "DE"),
			Literal{Lexical: "hallo", Datatype: xsd.LangString, Language: "de"},
			true,
		},
		{
			"lang_text_exact",
			LangLiteral("hallo", "de"),
			LangLiteral("Hallo", "de"),
			false,
		},
		{
			"lang_tag_differs",
			LangLiteral("hallo", "de"),
			LangLiteral("hallo", "de-AT"),
			false,
		},
		{
			"plain_string_exact",
			StringLiteral("a"),
			StringLiteral("a"),
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.a.Equal(tc.b))
			require.Equal(t, tc.want, tc.b.Equal(tc.a))
		})
	}
}

func TestLangLiteralLowercasesTag(t *testing.T) {
	lit := LangLiteral("hello", "EN-US")
	require.Equal(t, "en-us", lit.Language)
	require.Equal(t, IRI(xsd.LangString), lit.Datatype)
}

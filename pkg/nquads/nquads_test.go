package nquads

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/rdf/xsd"
)

func TestParse(t *testing.T) {
	t.Run("statement_shapes", func(t *testing.T) {
		doc := `
# a comment
<https://ex.org/s> <https://ex.org/p> <https://ex.org/o> .
<https://ex.org/s> <https://ex.org/p> "plain" .
<https://ex.org/s> <https://ex.org/p> "13.37"^^<http://www.w3.org/2001/XMLSchema#decimal> .
<https://ex.org/s> <https://ex.org/p> "hallo"@DE .
_:b0 <https://ex.org/p> _:b1 .
<https://ex.org/s> <https://ex.org/p> "in graph" <https://ex.org/g> .
`
		d, err := ParseString(doc)
		require.NoError(t, err)
		require.Equal(t, 6, d.Len())

		require.True(t, d.Contains(rdf.Quad{
			Subject:   rdf.IRI("https://ex.org/s"),
			Predicate: rdf.IRI("https://ex.org/p"),
			Object:    rdf.Literal{Lexical: "13.37", Datatype: xsd.Decimal},
		}))
		require.True(t, d.Contains(rdf.Quad{
			Subject:   rdf.IRI("https://ex.org/s"),
			Predicate: rdf.IRI("https://ex.org/p"),
			Object:    rdf.LangLiteral("hallo", "de"),
		}))
		require.True(t, d.Contains(rdf.Quad{
			Subject:   rdf.BlankNode("b0"),
			Predicate: rdf.IRI("https://ex.org/p"),
			Object:    rdf.BlankNode("b1"),
		}))
		require.True(t, d.Contains(rdf.Quad{
			Subject:   rdf.IRI("https://ex.org/s"),
			Predicate: rdf.IRI("https://ex.org/p"),
			Object:    rdf.StringLiteral("in graph"),
			Graph:     rdf.IRI("https://ex.org/g"),
		}))
	})

	t.Run("escapes", func(t *testing.T) {
		doc := `<https://ex.org/s> <https://ex.org/p> "line\nbreak \"quoted\" tab\t ué" .`
		d, err := ParseString(doc)
		require.NoError(t, err)
		quads := d.Quads()
		require.Len(t, quads, 1)
		lit, ok := quads[0].Object.(rdf.Literal)
		require.True(t, ok)
		require.Equal(t, "line\nbreak \"quoted\" tab\t ué", lit.Lexical)
	})

	t.Run("syntax_errors_carry_line_numbers", func(t *testing.T) {
		cases := map[string]string{
			"missing_dot":        `<https://ex.org/s> <https://ex.org/p> "v"`,
			"literal_subject":    `"v" <https://ex.org/p> <https://ex.org/o> .`,
			"blank_predicate":    `<https://ex.org/s> _:b0 <https://ex.org/o> .`,
			"unterminated":       `<https://ex.org/s> <https://ex.org/p> "open .`,
			"trailing_garbage":   `<https://ex.org/s> <https://ex.org/p> <https://ex.org/o> . extra`,
			"blank_graph_label":  `<https://ex.org/s> <https://ex.org/p> <https://ex.org/o> _:g .`,
			"unterminated_iri":   `<https://ex.org/s> <https://ex.org/p> <https://ex.org/o .`,
			"unknown_escape":     `<https://ex.org/s> <https://ex.org/p> "\x" .`,
			"truncated_unicode":  `<https://ex.org/s> <https://ex.org/p> "\u00" .`,
		}
		for name, doc := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := ParseString(doc)
				require.ErrorIs(t, err, ErrSyntax)
				require.Contains(t, err.Error(), "line 1")
			})
		}
	})
}

func TestRoundTrip(t *testing.T) {
	d := rdf.NewDataset(
		rdf.Quad{Subject: rdf.IRI("https://ex.org/s"), Predicate: rdf.IRI("https://ex.org/p"), Object: rdf.IRI("https://ex.org/o")},
		rdf.Quad{Subject: rdf.BlankNode("b0"), Predicate: rdf.IRI("https://ex.org/p"), Object: rdf.StringLiteral("with \"quotes\" and\nnewline")},
		rdf.Quad{Subject: rdf.IRI("https://ex.org/s"), Predicate: rdf.IRI("https://ex.org/p"), Object: rdf.LangLiteral("bonjour", "fr")},
		rdf.Quad{Subject: rdf.IRI("https://ex.org/s"), Predicate: rdf.IRI("https://ex.org/p"), Object: rdf.Literal{Lexical: "1", Datatype: xsd.Boolean}},
		rdf.Quad{Subject: rdf.IRI("https://ex.org/s"), Predicate: rdf.IRI("https://ex.org/p"), Object: rdf.StringLiteral("named"), Graph: rdf.IRI("https://ex.org/g")},
	)

	parsed, err := ParseString(Format(d))
	require.NoError(t, err)
	require.Equal(t, d.Len(), parsed.Len())
	for _, q := range d.Quads() {
		require.True(t, parsed.Contains(q), "missing %s", FormatQuad(q))
	}
}

func TestWrite(t *testing.T) {
	d := rdf.NewDataset(
		rdf.Quad{Subject: rdf.IRI("https://ex.org/s"), Predicate: rdf.IRI("https://ex.org/p"), Object: rdf.StringLiteral("v")},
	)
	var b strings.Builder
	require.NoError(t, Write(&b, d))
	require.Equal(t, "<https://ex.org/s> <https://ex.org/p> \"v\" .\n", b.String())
}

// Package nquads reads and writes the application/n-quads wire format, the
// only serialization the fetch and save collaborators speak. The codec
// round-trips every term the model can produce; richer formats such as
// Turtle or JSON-LD are deliberately out of scope.
package nquads

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/rdf/xsd"
)

// ContentType is the media type of the wire format.
const ContentType = "application/n-quads"

// ErrSyntax is the base error for malformed input; parse errors wrap it
// with the offending line number.
var ErrSyntax = errors.New("nquads: syntax error")

// Parse reads N-Quads statements into a dataset. Blank lines and comment
// lines are skipped.
func Parse(r io.Reader) (rdf.Dataset, error) {
	var dataset rdf.Dataset
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quad, err := parseStatement(line)
		if err != nil {
			return rdf.Dataset{}, fmt.Errorf("line %d: %w", lineno, err)
		}
		dataset = dataset.Add(quad)
	}
	if err := scanner.Err(); err != nil {
		return rdf.Dataset{}, err
	}
	return dataset, nil
}

// ParseString parses a complete N-Quads document held in a string.
func ParseString(s string) (rdf.Dataset, error) {
	return Parse(strings.NewReader(s))
}

// Write serializes the dataset as one statement per line, default graph
// first, named graphs in sorted order.
func Write(w io.Writer, d rdf.Dataset) error {
	for _, q := range d.Quads() {
		if _, err := io.WriteString(w, FormatQuad(q)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// Format serializes the dataset to a string.
func Format(d rdf.Dataset) string {
	var b strings.Builder
	for _, q := range d.Quads() {
		b.WriteString(FormatQuad(q))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatQuad renders one statement, without the trailing newline.
func FormatQuad(q rdf.Quad) string {
	var b strings.Builder
	b.WriteString(formatTerm(q.Subject))
	b.WriteByte(' ')
	b.WriteString(formatTerm(q.Predicate))
	b.WriteByte(' ')
	b.WriteString(formatTerm(q.Object))
	if q.Graph != rdf.DefaultGraph {
		b.WriteByte(' ')
		b.WriteString(formatTerm(q.Graph))
	}
	b.WriteString(" .")
	return b.String()
}

func formatTerm(t rdf.Term) string {
	switch v := t.(type) {
	case rdf.IRI:
		return "<" + string(v) + ">"
	case rdf.BlankNode:
		return "_:" + string(v)
	case rdf.Literal:
		quoted := `"` + escape(v.Lexical) + `"`
		switch {
		case v.Language != "":
			return quoted + "@" + v.Language
		case v.Datatype != "" && v.Datatype != xsd.String:
			return quoted + "^^<" + string(v.Datatype) + ">"
		default:
			return quoted
		}
	default:
		return ""
	}
}

func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseStatement(line string) (rdf.Quad, error) {
	p := &parser{input: line}

	subject, err := p.term()
	if err != nil {
		return rdf.Quad{}, err
	}
	switch subject.(type) {
	case rdf.IRI, rdf.BlankNode:
	default:
		return rdf.Quad{}, fmt.Errorf("%w: literal in subject position", ErrSyntax)
	}

	predTerm, err := p.term()
	if err != nil {
		return rdf.Quad{}, err
	}
	predicate, ok := predTerm.(rdf.IRI)
	if !ok {
		return rdf.Quad{}, fmt.Errorf("%w: predicate must be an IRI", ErrSyntax)
	}

	object, err := p.term()
	if err != nil {
		return rdf.Quad{}, err
	}

	graph := rdf.DefaultGraph
	p.skipSpace()
	if !p.eof() && p.peek() != '.' {
		graphTerm, err := p.term()
		if err != nil {
			return rdf.Quad{}, err
		}
		graph, ok = graphTerm.(rdf.IRI)
		if !ok {
			return rdf.Quad{}, fmt.Errorf("%w: graph label must be an IRI", ErrSyntax)
		}
	}

	p.skipSpace()
	if p.eof() || p.peek() != '.' {
		return rdf.Quad{}, fmt.Errorf("%w: missing terminating dot", ErrSyntax)
	}
	p.pos++
	p.skipSpace()
	if !p.eof() {
		return rdf.Quad{}, fmt.Errorf("%w: trailing characters after dot", ErrSyntax)
	}

	return rdf.Quad{Subject: subject, Predicate: predicate, Object: object, Graph: graph}, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *parser) term() (rdf.Term, error) {
	p.skipSpace()
	if p.eof() {
		return nil, fmt.Errorf("%w: unexpected end of statement", ErrSyntax)
	}
	switch p.peek() {
	case '<':
		return p.iri()
	case '_':
		return p.blankNode()
	case '"':
		return p.literal()
	default:
		return nil, fmt.Errorf("%w: unexpected character %q", ErrSyntax, p.peek())
	}
}

func (p *parser) iri() (rdf.IRI, error) {
	p.pos++ // consume '<'
	end := strings.IndexByte(p.input[p.pos:], '>')
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated IRI", ErrSyntax)
	}
	iri := p.input[p.pos : p.pos+end]
	p.pos += end + 1
	return rdf.IRI(iri), nil
}

func (p *parser) blankNode() (rdf.BlankNode, error) {
	if p.pos+1 >= len(p.input) || p.input[p.pos+1] != ':' {
		return "", fmt.Errorf("%w: malformed blank node label", ErrSyntax)
	}
	p.pos += 2
	start := p.pos
	for !p.eof() && p.peek() != ' ' && p.peek() != '\t' {
		p.pos++
	}
	if p.pos == start {
		return "", fmt.Errorf("%w: empty blank node label", ErrSyntax)
	}
	return rdf.BlankNode(p.input[start:p.pos]), nil
}

func (p *parser) literal() (rdf.Literal, error) {
	p.pos++ // consume opening quote
	var b strings.Builder
	closed := false
	for !p.eof() {
		c := p.peek()
		p.pos++
		if c == '"' {
			closed = true
			break
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if p.eof() {
			return rdf.Literal{}, fmt.Errorf("%w: dangling escape", ErrSyntax)
		}
		esc := p.peek()
		p.pos++
		switch esc {
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 'f':
			b.WriteByte('\f')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '\\':
			b.WriteByte('\\')
		case 'u', 'U':
			size := 4
			if esc == 'U' {
				size = 8
			}
			if p.pos+size > len(p.input) {
				return rdf.Literal{}, fmt.Errorf("%w: truncated unicode escape", ErrSyntax)
			}
			code, err := strconv.ParseUint(p.input[p.pos:p.pos+size], 16, 32)
			if err != nil {
				return rdf.Literal{}, fmt.Errorf("%w: invalid unicode escape", ErrSyntax)
			}
			b.WriteRune(rune(code))
			p.pos += size
		default:
			return rdf.Literal{}, fmt.Errorf("%w: unknown escape \\%c", ErrSyntax, esc)
		}
	}
	if !closed {
		return rdf.Literal{}, fmt.Errorf("%w: unterminated literal", ErrSyntax)
	}

	lit := rdf.Literal{Lexical: b.String(), Datatype: xsd.String}
	if !p.eof() && p.peek() == '@' {
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() != ' ' && p.peek() != '\t' {
			p.pos++
		}
		if p.pos == start {
			return rdf.Literal{}, fmt.Errorf("%w: empty language tag", ErrSyntax)
		}
		lit.Language = strings.ToLower(p.input[start:p.pos])
		lit.Datatype = xsd.LangString
		return lit, nil
	}
	if strings.HasPrefix(p.input[p.pos:], "^^") {
		p.pos += 2
		if p.eof() || p.peek() != '<' {
			return rdf.Literal{}, fmt.Errorf("%w: datatype must be an IRI", ErrSyntax)
		}
		datatype, err := p.iri()
		if err != nil {
			return rdf.Literal{}, err
		}
		lit.Datatype = datatype
	}
	return lit, nil
}

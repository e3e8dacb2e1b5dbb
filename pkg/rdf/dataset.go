package rdf

import "sort"

// Dataset is an immutable set of quads grouped by named graph. The zero
// value is an empty dataset. Mutators return a new Dataset built with
// copy-on-write at the graph level; the receiver is never changed.
type Dataset struct {
	graphs map[IRI][]Quad
}

// NewDataset returns a dataset holding the given quads, collapsing
// duplicates.
func NewDataset(quads ...Quad) Dataset {
	var d Dataset
	return d.AddAll(quads...)
}

// Len returns the number of quads across all graphs.
func (d Dataset) Len() int {
	n := 0
	for _, quads := range d.graphs {
		n += len(quads)
	}
	return n
}

// GraphNames returns the names of all non-empty graphs in sorted order.
func (d Dataset) GraphNames() []IRI {
	names := make([]IRI, 0, len(d.graphs))
	for name := range d.graphs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Quads returns a copy of every quad, default graph first, named graphs in
// sorted order. Order within a graph is insertion order.
func (d Dataset) Quads() []Quad {
	out := make([]Quad, 0, d.Len())
	for _, name := range d.GraphNames() {
		out = append(out, d.graphs[name]...)
	}
	return out
}

// Contains reports whether the dataset holds a quad equal to q.
func (d Dataset) Contains(q Quad) bool {
	for _, existing := range d.graphs[q.Graph] {
		if existing.Equal(q) {
			return true
		}
	}
	return false
}

// Add returns a dataset that additionally holds q. Re-adding an existing
// quad returns an equal dataset; it is not an error.
func (d Dataset) Add(q Quad) Dataset {
	if d.Contains(q) {
		return d
	}
	graphs := make(map[IRI][]Quad, len(d.graphs)+1)
	for name, quads := range d.graphs {
		graphs[name] = quads
	}
	existing := graphs[q.Graph]
	updated := make([]Quad, len(existing), len(existing)+1)
	copy(updated, existing)
	graphs[q.Graph] = append(updated, q)
	return Dataset{graphs: graphs}
}

// AddAll returns a dataset that additionally holds every given quad.
func (d Dataset) AddAll(quads ...Quad) Dataset {
	out := d
	for _, q := range quads {
		out = out.Add(q)
	}
	return out
}

// Match returns every quad fitting the pattern. Nil positions are
// wildcards; a nil graph matches quads in any graph, while DefaultGraph
// selects the default graph specifically.
func (d Dataset) Match(subject, predicate, object, graph Term) []Quad {
	var out []Quad
	for _, name := range d.GraphNames() {
		if graph != nil && !graph.Equal(name) {
			continue
		}
		for _, q := range d.graphs[name] {
			if q.matches(subject, predicate, object) {
				out = append(out, q)
			}
		}
	}
	return out
}

// Remove returns a dataset without the quads fitting the pattern. Nil
// positions are wildcards, as in Match. Removing nothing returns an equal
// dataset.
func (d Dataset) Remove(subject, predicate, object, graph Term) Dataset {
	graphs := make(map[IRI][]Quad, len(d.graphs))
	changed := false
	for name, quads := range d.graphs {
		if graph != nil && !graph.Equal(name) {
			graphs[name] = quads
			continue
		}
		kept := make([]Quad, 0, len(quads))
		for _, q := range quads {
			if q.matches(subject, predicate, object) {
				changed = true
				continue
			}
			kept = append(kept, q)
		}
		if len(kept) > 0 {
			graphs[name] = kept
		}
	}
	if !changed {
		return d
	}
	return Dataset{graphs: graphs}
}

// Subgraph returns the tree-shaped closure of root: root's statements plus,
// transitively, the statements of every blank node reachable through object
// positions. Used to compact nested anonymous structures ahead of a generic
// per-quad import.
func (d Dataset) Subgraph(root Term) Dataset {
	var out Dataset
	visited := map[Term]bool{}
	queue := []Term{root}
	for len(queue) > 0 {
		subject := queue[0]
		queue = queue[1:]
		if visited[subject] {
			continue
		}
		visited[subject] = true
		for _, q := range d.Match(subject, nil, nil, nil) {
			out = out.Add(q)
			if b, ok := q.Object.(BlankNode); ok && !visited[Term(b)] {
				queue = append(queue, b)
			}
		}
	}
	return out
}

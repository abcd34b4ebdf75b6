// Package parser reads the plain-text graph file format consumed by
// cmd/mdtree: a vertex count on the first line, followed by zero or more
// "u v" edge lines. It is adapter-layer code — the core package graph
// never imports it.
package parser

import (
	"fmt"

	"github.com/alecthomas/participle"

	"github.com/cem-okulmus/mdtree/graph"
)

type edgeLine struct {
	U int `@Int`
	V int `@Int`
}

type graphFile struct {
	N     int        `@Int`
	Edges []edgeLine `( @@ )*`
}

var grammar = participle.MustBuild(&graphFile{}, participle.UseLookahead(1))

// ParseError wraps a syntax error from the underlying grammar, kept
// distinct from graph.InvalidInput since it reports a malformed file
// rather than a semantically bad graph.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mdtree: parse error: %s", e.Reason)
}

// Parse reads s as "<n>\n(<u> <v>\n)*" and builds the corresponding
// graph.Graph. Self-loops and duplicate edges are silently dropped by
// graph.Graph.AddEdge, per spec.
func Parse(s string) (*graph.Graph, error) {
	var gf graphFile
	if err := grammar.ParseString(s, &gf); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	g, err := graph.New(gf.N)
	if err != nil {
		return nil, err
	}
	for _, e := range gf.Edges {
		if err := g.AddEdge(e.U, e.V); err != nil {
			return nil, err
		}
	}
	return g, nil
}

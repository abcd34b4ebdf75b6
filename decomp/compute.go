// Package decomp implements the slice-recursion half of the CHPT
// algorithm: it consumes a package graph Graph and a package lexbfs
// Result and builds the modular-decomposition tree (package tree) by
// recursing over contiguous ranges of the LexBFS order, marking the
// partitive forest of each pivot frame, and assembling the result.
package decomp

import (
	"context"

	"github.com/cem-okulmus/mdtree/graph"
	"github.com/cem-okulmus/mdtree/lexbfs"
	"github.com/cem-okulmus/mdtree/tree"
)

// engine holds everything one Compute call threads through its
// recursive decompose frames: the read-only graph, the one LexBFS
// result computed up front, and the scratch arena reused across frames.
type engine struct {
	g       *graph.Graph
	lex     *lexbfs.Result
	scratch *tree.ScratchData
	ctx     context.Context
}

// Compute runs the CHPT algorithm and returns the modular-decomposition
// tree of g, or nil if g has no vertices (§6). The ctx parameter is
// checked once per recursion frame as a cooperative-cancellation point
// (SPEC_FULL.md's supplemented feature); it is never polled internally
// beyond that.
func Compute(ctx context.Context, g *graph.Graph) (root *tree.Node, err error) {
	n := g.Size()
	if n == 0 {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InternalError); ok {
				err = ie
				return
			}
			panic(r)
		}
	}()

	lex := lexbfs.Run(n, 0, g.Neighbors)
	e := &engine{g: g, lex: lex, scratch: tree.NewScratchData(n), ctx: ctx}

	root = e.decompose(0, n, 0)
	if root == nil {
		internalf("decompose produced no root for a non-empty graph")
	}
	return root, nil
}

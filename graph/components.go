package graph

import "github.com/spakin/disjoint"

// ConnectedComponents partitions the vertices into connected components
// using the same map[int]*disjoint.Element union-find idiom
// BalancedGo's benchmark.GetComponents_fast uses for fast component
// lookups over a hypergraph's vertex set. It is not on the hot path of
// Compute (the decomposition engine never needs whole-graph components —
// the pivot/slice structure of the recursion subsumes that) but is
// exposed as a small sanity-check utility for adapters. The decomp tests
// do not use it; they check P1-P4 directly against the graph.
func (g *Graph) ConnectedComponents() [][]int {
	elems := make(map[int]*disjoint.Element, g.n)
	for v := 0; v < g.n; v++ {
		elems[v] = disjoint.NewElement()
	}
	for _, e := range g.Edges() {
		elems[e.U].Union(elems[e.V])
	}

	groups := make(map[*disjoint.Element][]int)
	for v := 0; v < g.n; v++ {
		root := elems[v].Find()
		groups[root] = append(groups[root], v)
	}

	out := make([][]int, 0, len(groups))
	for _, vs := range groups {
		out = append(out, vs)
	}
	return out
}

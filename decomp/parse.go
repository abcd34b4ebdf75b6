package decomp

import "github.com/cem-okulmus/mdtree/tree"

// parseAssemble implements §4.3.5. p is the boundary cluster guaranteed
// pivot-adjacent (the last cluster contributed by slice 0); q is x's own
// cluster, seeded into the result up front together with cluster p
// (§4.3.5's opening line names the starting interval "l=r=p (pivot
// cluster)" — p, not q, is the literal index, but the parenthetical
// only makes sense if p's own content is already folded into the seed,
// since expansion only ever grows the interval outward from l-1/r+1 and
// would otherwise never visit index p itself; this is the reading
// recorded in DESIGN.md). q is treated purely as a sentinel past the
// last real cluster that participates in expansion (the pivot's own
// cluster never needs separate absorption, since it is part of the
// seed): the loop's right bound is q-1, not q.
func (e *engine) parseAssemble(pivot int, clusters []cluster, left, right []int, p, q int) *tree.Node {
	seedChildren := []*tree.Node{tree.NewLeaf(pivot)}
	for _, n := range clusters[p].nodes {
		seedChildren = appendFlattened(seedChildren, n, tree.Series)
	}
	root := tree.NewInternal(tree.Series, seedChildren...)
	if len(seedChildren) == 1 {
		root = seedChildren[0]
	}

	current := map[int]bool{pivot: true}
	for _, v := range root.Leaves() {
		current[v] = true
	}

	l, r := p, p

	for l > 0 || r < q-1 {
		var dir tree.Type
		var lp, rp int

		switch {
		case l > 0 && anyAdjacent(e.g, clusters[l-1].leftmost, current):
			dir, lp, rp = tree.Series, l-1, r
		case r < q-1:
			dir, lp, rp = tree.Parallel, l, r+1
		default:
			dir, lp, rp = tree.Parallel, l-1, r
		}

		for {
			widened := false
			for idx := lp; idx <= rp; idx++ {
				if left[idx] < lp {
					lp = left[idx]
					widened = true
				}
				if right[idx] > rp {
					rp = right[idx]
					widened = true
				}
			}
			if !widened {
				break
			}
		}

		var newVerts []int
		for idx := lp; idx < l; idx++ {
			newVerts = append(newVerts, clusterLeaves(clusters[idx])...)
		}
		for idx := r + 1; idx <= rp; idx++ {
			newVerts = append(newVerts, clusterLeaves(clusters[idx])...)
		}

		pulled := (l - lp) + (rp - r)
		expandedBoth := lp < l && rp > r
		isPrime := expandedBoth || pulled > 1 || !modulePropertyHolds(e.g, dir, current, newVerts)

		if isPrime {
			return collapseToPrime(pivot, clusters, q)
		}

		var children []*tree.Node
		for idx := lp; idx < l; idx++ {
			for _, n := range clusters[idx].nodes {
				children = appendFlattened(children, n, dir)
			}
		}
		children = appendFlattened(children, root, dir)
		for idx := r + 1; idx <= rp; idx++ {
			for _, n := range clusters[idx].nodes {
				children = appendFlattened(children, n, dir)
			}
		}
		root = tree.NewInternal(dir, children...)

		for _, v := range newVerts {
			current[v] = true
		}
		l, r = lp, rp
	}

	return root
}

func clusterLeaves(c cluster) []int {
	var out []int
	for _, n := range c.nodes {
		out = append(out, n.Leaves()...)
	}
	return out
}

func anyAdjacent(g interface{ HasEdge(int, int) bool }, v int, current map[int]bool) bool {
	for u := range current {
		if g.HasEdge(v, u) {
			return true
		}
	}
	return false
}

// modulePropertyHolds checks the SERIES/PARALLEL half of the §4.3.5 step
// 3 safety net: for SERIES, every new vertex must be adjacent to every
// current vertex; for PARALLEL, there must be no edge at all between
// current and newVerts, and every new vertex's external neighborhood
// (neighbors outside current ∪ new) must match that of the current set.
func modulePropertyHolds(g interface{
	HasEdge(int, int) bool
	Neighbors(int) []int
}, dir tree.Type, current map[int]bool, newVerts []int) bool {
	if dir == tree.Series {
		for _, v := range newVerts {
			for u := range current {
				if !g.HasEdge(v, u) {
					return false
				}
			}
		}
		return true
	}

	for _, v := range newVerts {
		for u := range current {
			if g.HasEdge(v, u) {
				return false
			}
		}
	}

	excl := make(map[int]bool, len(current)+len(newVerts))
	for v := range current {
		excl[v] = true
	}
	for _, v := range newVerts {
		excl[v] = true
	}

	var reference map[int]bool
	for u := range current {
		reference = externalNeighborhood(g, u, excl)
		break
	}
	for _, v := range newVerts {
		if !setEqual(externalNeighborhood(g, v, excl), reference) {
			return false
		}
	}
	return true
}

func externalNeighborhood(g interface{ Neighbors(int) []int }, v int, excl map[int]bool) map[int]bool {
	out := make(map[int]bool)
	for _, u := range g.Neighbors(v) {
		if !excl[u] {
			out[u] = true
		}
	}
	return out
}

func setEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// collapseToPrime implements the PRIME branch of §4.3.5 step 3: every
// cluster 0..q (including the pivot's own) is flattened into one PRIME
// node's children.
func collapseToPrime(pivot int, clusters []cluster, q int) *tree.Node {
	children := []*tree.Node{tree.NewLeaf(pivot)}
	for idx := 0; idx <= q-1; idx++ {
		for _, n := range clusters[idx].nodes {
			children = flattenAnyInto(children, n)
		}
	}
	return tree.NewInternal(tree.Prime, children...)
}

// flattenAnyInto inlines n's children in place when n is itself a
// degenerate or PRIME node with accumulated structure worth discarding
// at PRIME-collapse time, per §4.3.5 step 3's "flattened (recursively
// inlined from any existing SERIES/PARALLEL/PRIME roots)".
func flattenAnyInto(children []*tree.Node, n *tree.Node) []*tree.Node {
	if n.Type == tree.Normal {
		return append(children, n)
	}
	for _, c := range n.Children {
		children = flattenAnyInto(children, c)
	}
	return children
}

package decomp

import (
	"sort"

	"github.com/cem-okulmus/mdtree/tree"
)

// tagSlice implements §4.3.1a for one slice root. An atomic root keeps a
// single fresh tag; otherwise its own tag is -1 (never absorbed as one
// cluster) and each of its children gets its own fresh tag, since tree
// invariant 3 already rules out a same-type child re-triggering the
// same split.
func tagSlice(root *tree.Node, pivotSlice bool, nextTag *int) {
	if isAtomicForTag(root, pivotSlice) {
		root.Tag = *nextTag
		*nextTag++
		return
	}
	root.Tag = -1
	for _, c := range root.Children {
		c.Tag = *nextTag
		*nextTag++
	}
}

func isAtomicForTag(n *tree.Node, pivotSlice bool) bool {
	switch n.Type {
	case tree.Prime, tree.Normal:
		return true
	case tree.Parallel:
		return pivotSlice
	case tree.Series:
		return !pivotSlice
	default:
		return false
	}
}

// resolveRoots implements §4.3.4: it recursively strips every DEAD/BROKEN
// node out of n's subtree, replacing each by its (sorted) children, and
// returns the resulting flat list of roots for this slice. A child with
// no tag of its own (Tag == 0, the zero value — CC-tags start at 1)
// inherits n's tag.
func resolveRoots(n *tree.Node, pivotSlice bool) []*tree.Node {
	if n.Label != tree.Dead && n.Label != tree.Broken {
		return []*tree.Node{n}
	}
	sortForExtract(n, pivotSlice)
	var out []*tree.Node
	for _, c := range n.Children {
		if c.Tag == 0 {
			c.Tag = n.Tag
		}
		out = append(out, resolveRoots(c, pivotSlice)...)
	}
	return out
}

// sortForExtract implements the ordering rule of §4.3.4: for a DEAD
// node, BROKEN children move to the front of the list; for a BROKEN
// node, its already-dead-or-broken children (kept at the front by
// regroupBroken) stay there. Within whichever group is not pinned to
// the front, children whose flag matches this slice's "pivot side"
// (O in the pivot slice, STAR elsewhere) sort first.
func sortForExtract(n *tree.Node, pivotSlice bool) {
	preferred := tree.FlagO
	if !pivotSlice {
		preferred = tree.FlagStar
	}
	var front func(c *tree.Node) bool
	if n.Label == tree.Dead {
		front = func(c *tree.Node) bool { return c.Label == tree.Broken }
	} else {
		front = func(c *tree.Node) bool { return c.Label == tree.Dead || c.Label == tree.Broken }
	}
	sort.SliceStable(n.Children, func(i, j int) bool {
		ci, cj := n.Children[i], n.Children[j]
		if fi, fj := front(ci), front(cj); fi != fj {
			return fi
		}
		fi, fj := ci.Flag == preferred, cj.Flag == preferred
		return fi && !fj
	})
}

// cluster is a maximal contiguous run of same-tagged roots within a
// single slice (§4.3.1e).
type cluster struct {
	nodes     []*tree.Node
	leftmost  int
	sliceIdx  int
}

// buildClusters implements §4.3.1e. slicesRoots[i] is the post-extract
// ordered root list of the i-th slice (slice 0, the pivot slice, is the one
// immediately following the pivot in sigma order, always pivot-adjacent
// since the isolated/disconnected cases were already ruled out before
// buildMain runs). clusterOf maps every vertex to the index of the
// cluster currently holding it, used by the Left/Right tightening pass.
func buildClusters(slicesRoots [][]*tree.Node) (clusters []cluster, clusterOf map[int]int) {
	clusterOf = make(map[int]int)
	for sliceIdx, roots := range slicesRoots {
		i := 0
		for i < len(roots) {
			j := i + 1
			if roots[i].Tag != -1 {
				for j < len(roots) && roots[j].Tag == roots[i].Tag {
					j++
				}
			}
			nodes := append([]*tree.Node{}, roots[i:j]...)
			idx := len(clusters)
			clusters = append(clusters, cluster{
				nodes:    nodes,
				leftmost: leftmostLeaf(nodes[0]),
				sliceIdx: sliceIdx,
			})
			for _, n := range nodes {
				for _, v := range n.Leaves() {
					clusterOf[v] = idx
				}
			}
			i = j
		}
	}
	return clusters, clusterOf
}

func leftmostLeaf(n *tree.Node) int {
	for n.Type != tree.Normal {
		n = n.Children[0]
	}
	return n.Vertex
}

// lastClusterOfSlice0 implements the "last pre-pivot cluster" p named in
// §4.3.1f: slice 0 is always pivot-adjacent (guaranteed by the isolated-
// pivot and disconnected-non-pivot checks already having been ruled out
// in decompose before buildMain runs), so p is the boundary between
// slice 0's own clusters and everything that follows.
func lastClusterOfSlice0(clusters []cluster) int {
	p := -1
	for i, c := range clusters {
		if c.sliceIdx == 0 {
			p = i
		} else {
			break
		}
	}
	return p
}

// buildLeftRight implements §4.3.1f: Left[j]/Right[j] bound the interval
// of clusters that must be absorbed together the first time cluster j
// is pulled into the assembly. suffixOf[i] is the lex-label suffix of
// slice i (the vertices naming x-slice i's adjacency to earlier
// sigma-positions); suffixOf[0] is unused since slice 0 has nothing
// before it to tighten against.
func (e *engine) buildLeftRight(clusters []cluster, clusterOf map[int]int, suffixOf [][]int, pivot, p, q int) (left, right []int) {
	e.scratch.RewindClusters()
	for j := 0; j <= q; j++ {
		e.scratch.Left = append(e.scratch.Left, 0)
		e.scratch.Right = append(e.scratch.Right, 0)
	}
	left, right = e.scratch.Left, e.scratch.Right

	for j := 0; j <= p; j++ {
		left[j] = j
		right[j] = p
	}

	maxSoFar := p
	for j := p + 1; j <= q; j++ {
		right[j] = j

		v := pivot
		if j < q {
			v = clusters[j].leftmost
		}
		lp := p
		for idx := p - 1; idx >= 0; idx-- {
			if e.g.HasEdge(v, clusters[idx].leftmost) {
				lp = idx
			} else {
				break
			}
		}
		left[j] = lp

		if j < q {
			for _, vp := range suffixOf[clusters[j].sliceIdx] {
				if target, ok := clusterOf[vp]; ok && target != j {
					if maxSoFar > right[target] {
						right[target] = maxSoFar
					}
				}
			}
			maxSoFar = j
		}
	}
	return left, right
}

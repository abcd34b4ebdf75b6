package decomp

import "github.com/cem-okulmus/mdtree/tree"

// sliceInfo describes one x-slice of a pivot frame: its position in the
// global sigma order and the already-decomposed MD-subtree covering it.
type sliceInfo struct {
	start, length int
	root          *tree.Node
}

// appendFlattened appends n to children, splicing n's own children in
// place instead when n.Type equals t (the merging invariant, §3
// invariant 3 and the various "flatten any child of the same
// degenerate type" rules of §4.3.1/§4.3.5).
func appendFlattened(children []*tree.Node, n *tree.Node, t tree.Type) []*tree.Node {
	if n.Type == t {
		return append(children, n.Children...)
	}
	return append(children, n)
}

// decompose implements §4.3.1: it covers sigma[offset..offset+length)
// and always returns exactly one MD-subtree root (decompose is never
// invoked with length 0 — every x-slice has at least one position, and
// Compute handles the n==0 graph before ever calling decompose).
func (e *engine) decompose(offset, length, lexLabelOffset int) *tree.Node {
	if err := e.ctx.Err(); err != nil {
		internalf("decomposition cancelled: %v", err)
	}

	sigma := e.lex.Sigma
	lexLabel := e.lex.LexLabel

	switch length {
	case 1:
		return tree.NewLeaf(sigma[offset])
	case 2:
		a, b := sigma[offset], sigma[offset+1]
		if len(lexLabel[offset+1]) > lexLabelOffset {
			return tree.NewInternal(tree.Series, tree.NewLeaf(a), tree.NewLeaf(b))
		}
		return tree.NewInternal(tree.Parallel, tree.NewLeaf(a), tree.NewLeaf(b))
	}

	pivot := sigma[offset]

	var slices []sliceInfo
	for i := offset + 1; i < offset+length; {
		sliceLen := e.lex.XsliceLen[i]
		if sliceLen <= 0 {
			internalf("non-positive x-slice length %d at position %d", sliceLen, i)
		}
		childOffset := len(lexLabel[i])
		root := e.decompose(i, sliceLen, childOffset)
		slices = append(slices, sliceInfo{start: i, length: sliceLen, root: root})
		i += sliceLen
	}
	if len(slices) == 0 {
		internalf("pivot frame of length %d produced no slices", length)
	}
	for _, s := range slices {
		s.root.ResetMarks()
	}

	// Case 2: isolated pivot — x has no neighbor in this subgraph.
	if len(lexLabel[slices[0].start]) == lexLabelOffset {
		return buildIsolatedPivot(pivot, slices[0].root)
	}

	// Case 3: disconnected non-pivot case — the last slice isn't
	// connected to the pivot region at all.
	last := slices[len(slices)-1]
	if len(lexLabel[last.start]) == lexLabelOffset {
		return e.buildDisconnected(pivot, slices, lexLabelOffset)
	}

	// Case 4: the main path.
	return e.buildMain(pivot, slices, lexLabelOffset)
}

// buildIsolatedPivot implements §4.3.1 step 2.
func buildIsolatedPivot(pivot int, slice0Root *tree.Node) *tree.Node {
	xLeaf := tree.NewLeaf(pivot)
	if slice0Root.Type == tree.Parallel {
		slice0Root.AddChild(xLeaf)
		return slice0Root
	}
	return tree.NewInternal(tree.Parallel, xLeaf, slice0Root)
}

// buildMain implements §4.3.1 step 4, the connected non-isolated case:
// CC tagging, partitive-forest marking per non-pivot-slice label set,
// finish-marking, extract-and-sort, cluster construction, Left/Right
// bound construction, and finally parse-and-assemble.
func (e *engine) buildMain(pivot int, slices []sliceInfo, lexLabelOffset int) *tree.Node {
	rootsAll := make([]*tree.Node, len(slices))
	nextTag := 1
	for i, s := range slices {
		rootsAll[i] = s.root
		tagSlice(s.root, i == 0, &nextTag)
	}

	suffixOf := make([][]int, len(slices))
	for i := 1; i < len(slices); i++ {
		suffix := e.lex.LexLabel[slices[i].start][lexLabelOffset:]
		suffixOf[i] = suffix
		if len(suffix) == 0 {
			continue
		}
		full := make(map[int]bool, len(suffix))
		for _, v := range suffix {
			full[v] = true
		}
		e.markLabelSet(rootsAll, full)
	}

	for _, root := range rootsAll {
		e.finishMark(root)
	}

	slicesRoots := make([][]*tree.Node, len(slices))
	for i, root := range rootsAll {
		slicesRoots[i] = resolveRoots(root, i == 0)
	}

	clusters, clusterOf := buildClusters(slicesRoots)
	p := lastClusterOfSlice0(clusters)
	if p < 0 {
		internalf("slice 0 produced no clusters")
	}
	clusters = append(clusters, cluster{
		nodes:    []*tree.Node{tree.NewLeaf(pivot)},
		leftmost: pivot,
		sliceIdx: -1,
	})
	q := len(clusters) - 1

	left, right := e.buildLeftRight(clusters, clusterOf, suffixOf, pivot, p, q)
	return e.parseAssemble(pivot, clusters, left, right, p, q)
}

// buildDisconnected implements §4.3.1 step 3.
func (e *engine) buildDisconnected(pivot int, slices []sliceInfo, lexLabelOffset int) *tree.Node {
	xLeaf := tree.NewLeaf(pivot)

	var connected, disconnected []sliceInfo
	for _, s := range slices {
		if len(e.lex.LexLabel[s.start]) > lexLabelOffset {
			connected = append(connected, s)
		} else {
			disconnected = append(disconnected, s)
		}
	}

	var xComponent *tree.Node
	if len(connected) == 0 {
		xComponent = xLeaf
	} else {
		children := []*tree.Node{xLeaf}
		for _, s := range connected {
			children = appendFlattened(children, s.root, tree.Series)
		}
		xComponent = tree.NewInternal(tree.Series, children...)
	}

	var children []*tree.Node
	children = appendFlattened(children, xComponent, tree.Parallel)
	for _, s := range disconnected {
		children = appendFlattened(children, s.root, tree.Parallel)
	}
	return tree.NewInternal(tree.Parallel, children...)
}

package decomp

import "github.com/cem-okulmus/mdtree/tree"

// markLabelSet implements §4.3.2 for one label set L (expressed as a
// membership set over vertex ids): leaves named in L become Full, and
// every degenerate node touched by a mix of Full/non-Full children is
// split into at most two aggregates, one per side, and labelled DEAD.
// roots is the whole forest built so far in this pivot frame — a vertex
// named in L may sit in any of the slices already decomposed, not just
// the slice whose label this is.
func (e *engine) markLabelSet(roots []*tree.Node, full map[int]bool) {
	e.scratch.ResetMarking()
	for _, r := range roots {
		e.markNode(r, full)
	}
}

// markNode returns whether n is Full (every leaf under it is in full).
func (e *engine) markNode(n *tree.Node, full map[int]bool) bool {
	if n.Type == tree.Normal {
		isFull := full[n.Vertex]
		e.scratch.Full[n] = isFull
		if isFull {
			e.scratch.Marked[n] = true
			if n.Label == tree.Empty {
				n.Label = tree.Homogeneous
			}
		}
		return isFull
	}

	touched := false
	allFull := true
	for _, c := range n.Children {
		cf := e.markNode(c, full)
		if cf {
			touched = true
		} else {
			allFull = false
		}
		if e.scratch.Marked[c] {
			touched = true
		}
	}

	if allFull {
		e.scratch.Full[n] = true
		e.scratch.Marked[n] = true
		if n.Label == tree.Empty {
			n.Label = tree.Homogeneous
		}
		return true
	}
	if !touched {
		return false
	}

	e.scratch.Marked[n] = true

	if n.Type == tree.Prime {
		n.Label = tree.Dead
		for _, c := range n.Children {
			if e.scratch.Full[c] {
				c.Flag = tree.FlagStar
			}
		}
		return false
	}

	var fullChildren, nonFullChildren []*tree.Node
	for _, c := range n.Children {
		if e.scratch.Full[c] {
			fullChildren = append(fullChildren, c)
		} else {
			nonFullChildren = append(nonFullChildren, c)
		}
	}

	newChildren := make([]*tree.Node, 0, 2)
	switch len(fullChildren) {
	case 0:
	case 1:
		fullChildren[0].Flag = tree.FlagStar
		newChildren = append(newChildren, fullChildren[0])
	default:
		agg := tree.NewInternal(n.Type, fullChildren...)
		agg.Label = tree.Homogeneous
		agg.Flag = tree.FlagStar
		newChildren = append(newChildren, agg)
	}
	switch len(nonFullChildren) {
	case 0:
	case 1:
		nonFullChildren[0].Flag = tree.FlagO
		newChildren = append(newChildren, nonFullChildren[0])
	default:
		agg := tree.NewInternal(n.Type, nonFullChildren...)
		agg.Label = tree.Empty
		agg.Flag = tree.FlagO
		newChildren = append(newChildren, agg)
	}

	n.Children = newChildren
	for _, c := range newChildren {
		c.Parent = n
	}
	n.Label = tree.Dead
	return false
}

// finishMark implements §4.3.3: a postorder pass that promotes a DEAD or
// BROKEN node's effect onto its parent, and regroups a newly-BROKEN
// node's homogeneous-or-empty children into a trailing sibling.
func (e *engine) finishMark(n *tree.Node) {
	for _, c := range n.Children {
		e.finishMark(c)
	}

	if n.Type != tree.Normal && n.Label == tree.Broken {
		regroupBroken(n)
	}

	if (n.Label == tree.Dead || n.Label == tree.Broken) &&
		n.Parent != nil && n.Parent.Label != tree.Dead {
		n.Parent.Label = tree.Broken
	}
}

func regroupBroken(n *tree.Node) {
	var keep, groupable []*tree.Node
	for _, c := range n.Children {
		if c.Label == tree.Homogeneous || c.Label == tree.Empty {
			groupable = append(groupable, c)
		} else {
			keep = append(keep, c)
		}
	}
	if len(groupable) < 2 {
		return
	}
	agg := tree.NewInternal(n.Type, groupable...)
	agg.Label = tree.Empty
	agg.Flag = tree.FlagO
	n.Children = append(keep, agg)
	for _, c := range n.Children {
		c.Parent = n
	}
}

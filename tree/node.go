// Package tree holds the decomposition-tree node representation shared
// by the lexbfs-driven recursion in package decomp: the tagged-union-ish
// Node type, its transient marking state, and the reusable ScratchData
// arena the marking/parse-and-assemble phases share across frames.
package tree

import (
	"bytes"
	"fmt"
)

// Type classifies a Node the way spec.md §3 does.
type Type int

const (
	// Normal nodes are leaves carrying a vertex id.
	Normal Type = iota
	Series
	Parallel
	Prime
)

func (t Type) String() string {
	switch t {
	case Normal:
		return "NORMAL"
	case Series:
		return "SERIES"
	case Parallel:
		return "PARALLEL"
	case Prime:
		return "PRIME"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Label is the transient marking-phase state of a Node, reset to Empty
// at the start of each slice (§3, §4.3.2).
type Label int

const (
	Empty Label = iota
	Homogeneous
	Broken
	Dead
)

func (l Label) String() string {
	switch l {
	case Empty:
		return "EMPTY"
	case Homogeneous:
		return "HOMOGENEOUS"
	case Broken:
		return "BROKEN"
	case Dead:
		return "DEAD"
	default:
		return fmt.Sprintf("Label(%d)", int(l))
	}
}

// Flag is the transient full/partial side marker used during marking,
// finish-marking, and extract-and-sort (§3).
type Flag int

const (
	FlagO Flag = iota
	FlagStar
)

func (f Flag) String() string {
	if f == FlagStar {
		return "STAR"
	}
	return "O"
}

// Node is one node of an MD-subtree. Leaves (Type == Normal) carry
// Vertex and have no Children; internal nodes carry no Vertex and have
// >= 2 Children once the algorithm finishes (§3 invariant 2).
//
// Parent is a non-owning back-reference valid only while the node is
// part of an actively-marking frame (§5); Go's garbage collector makes
// the arena-of-indices scheme spec.md §9 suggests for a systems language
// unnecessary here; ordinary pointers with a non-owning Parent link are
// the idiomatic equivalent.
type Node struct {
	Type     Type
	Vertex   int // only meaningful when Type == Normal
	Children []*Node
	Parent   *Node

	Label Label
	Flag  Flag
	// Tag carries a connected-component id during cluster construction
	// (§4.3.4a). It is never read as a slice index; slice bookkeeping
	// during recursion lives in decomp's own local slices, not here,
	// per the tagged-union resolution recorded in DESIGN.md.
	Tag int
}

// NewLeaf builds a NORMAL leaf for vertex v.
func NewLeaf(v int) *Node {
	return &Node{Type: Normal, Vertex: v}
}

// NewInternal builds a node of the given degenerate/prime type with the
// given children, wiring their Parent back-references.
func NewInternal(t Type, children ...*Node) *Node {
	n := &Node{Type: t, Children: children}
	for _, c := range children {
		c.Parent = n
	}
	return n
}

// AddChild appends c to n's children and sets c's Parent.
func (n *Node) AddChild(c *Node) {
	n.Children = append(n.Children, c)
	c.Parent = n
}

// ResetMarks resets n and its whole subtree's transient marking state to
// Empty/O, the way §4.3.1 step 1 resets every node of every sub-result
// before the parent frame starts its own marking pass.
func (n *Node) ResetMarks() {
	n.Label = Empty
	n.Flag = FlagO
	n.Tag = 0
	for _, c := range n.Children {
		c.ResetMarks()
	}
}

// Leaves returns every NORMAL descendant's vertex id, in left-to-right
// order.
func (n *Node) Leaves() []int {
	if n.Type == Normal {
		return []int{n.Vertex}
	}
	var out []int
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

func (n *Node) String() string {
	var buf bytes.Buffer
	n.writeIndent(&buf, 0)
	return buf.String()
}

func (n *Node) writeIndent(buf *bytes.Buffer, depth int) {
	pad := func(d int) {
		for i := 0; i < d; i++ {
			buf.WriteByte('\t')
		}
	}
	pad(depth)
	if n.Type == Normal {
		fmt.Fprintf(buf, "%d\n", n.Vertex)
		return
	}
	fmt.Fprintf(buf, "%s\n", n.Type)
	for _, c := range n.Children {
		c.writeIndent(buf, depth+1)
	}
}

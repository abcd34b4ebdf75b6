package decomp

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/cem-okulmus/mdtree/graph"
	"github.com/cem-okulmus/mdtree/tree"
)

func mustGraph(t *testing.T, n int, edges [][2]int) *graph.Graph {
	t.Helper()
	g, err := graph.New(n)
	require.NoError(t, err)
	for _, e := range edges {
		require.NoError(t, g.AddEdge(e[0], e[1]))
	}
	return g
}

// shape is a comparison-only tree skeleton: Type plus either Vertex (for
// NORMAL) or a child list, ignoring Label/Flag/Tag/Parent, which only
// matter mid-algorithm.
type shape struct {
	Type     tree.Type
	Vertex   int
	Children []shape
}

func toShape(n *tree.Node) shape {
	s := shape{Type: n.Type, Vertex: n.Vertex}
	for _, c := range n.Children {
		s.Children = append(s.Children, toShape(c))
	}
	return s
}

// sortedShape normalizes child order by a canonical key so structurally
// identical trees compare equal regardless of the order children were
// assembled in (the algorithm gives no ordering guarantee beyond what
// P1-P5 require).
func sortedShape(n *tree.Node) shape {
	s := shape{Type: n.Type, Vertex: n.Vertex}
	for _, c := range n.Children {
		s.Children = append(s.Children, sortedShape(c))
	}
	sort.Slice(s.Children, func(i, j int) bool {
		return leafKey(s.Children[i]) < leafKey(s.Children[j])
	})
	return s
}

func leafKey(s shape) int {
	if s.Type == tree.Normal {
		return s.Vertex
	}
	min := -1
	for _, c := range s.Children {
		k := leafKey(c)
		if min == -1 || k < min {
			min = k
		}
	}
	return min
}

func requireShape(t *testing.T, root *tree.Node, want shape) {
	t.Helper()
	got := sortedShape(root)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tree shape mismatch (-want +got):\n%s\ngot tree:\n%s", diff, root)
	}
}

func leaf(v int) shape { return shape{Type: tree.Normal, Vertex: v} }

func internal(t tree.Type, children ...shape) shape {
	sort.Slice(children, func(i, j int) bool { return leafKey(children[i]) < leafKey(children[j]) })
	return shape{Type: t, Children: children}
}

func TestComputeEmptyGraph(t *testing.T) {
	g := mustGraph(t, 0, nil)
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	require.Nil(t, root)
}

func TestComputeSingleVertex(t *testing.T) {
	g := mustGraph(t, 1, nil)
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, leaf(0))
}

func TestComputeTwoVerticesConnected(t *testing.T) {
	g := mustGraph(t, 2, [][2]int{{0, 1}})
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, internal(tree.Series, leaf(0), leaf(1)))
}

func TestComputeTwoVerticesDisconnected(t *testing.T) {
	g := mustGraph(t, 2, nil)
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, internal(tree.Parallel, leaf(0), leaf(1)))
}

func TestComputeK4(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}})
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, internal(tree.Series, leaf(0), leaf(1), leaf(2), leaf(3)))
}

func TestComputeIndependentSet(t *testing.T) {
	g := mustGraph(t, 4, nil)
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, internal(tree.Parallel, leaf(0), leaf(1), leaf(2), leaf(3)))
}

func TestComputeStar(t *testing.T) {
	g := mustGraph(t, 5, [][2]int{{0, 1}, {0, 2}, {0, 3}, {0, 4}})
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, internal(tree.Series,
		leaf(0),
		internal(tree.Parallel, leaf(1), leaf(2), leaf(3), leaf(4)),
	))
}

func TestComputeTwoDisjointTriangles(t *testing.T) {
	g := mustGraph(t, 6, [][2]int{{0, 1}, {1, 2}, {0, 2}, {3, 4}, {4, 5}, {3, 5}})
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, internal(tree.Parallel,
		internal(tree.Series, leaf(0), leaf(1), leaf(2)),
		internal(tree.Series, leaf(3), leaf(4), leaf(5)),
	))
}

func TestComputeKThreeThree(t *testing.T) {
	g := mustGraph(t, 6, [][2]int{
		{0, 3}, {0, 4}, {0, 5},
		{1, 3}, {1, 4}, {1, 5},
		{2, 3}, {2, 4}, {2, 5},
	})
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	requireShape(t, root, internal(tree.Series,
		internal(tree.Parallel, leaf(0), leaf(1), leaf(2)),
		internal(tree.Parallel, leaf(3), leaf(4), leaf(5)),
	))
}

func TestComputeP4IsPrime(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	require.Equal(t, tree.Prime, root.Type)
	require.Len(t, root.Children, 4)
	for _, c := range root.Children {
		require.Equal(t, tree.Normal, c.Type)
	}
}

func TestComputeC5IsPrime(t *testing.T) {
	g := mustGraph(t, 5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0}})
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	require.Equal(t, tree.Prime, root.Type)
	require.Len(t, root.Children, 5)
}

func TestComputePetersenIsPrime(t *testing.T) {
	edges := [][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 4}, {4, 0},
		{5, 7}, {7, 9}, {9, 6}, {6, 8}, {8, 5},
		{0, 5}, {1, 6}, {2, 7}, {3, 8}, {4, 9},
	}
	g := mustGraph(t, 10, edges)
	root, err := Compute(context.Background(), g)
	require.NoError(t, err)
	require.Equal(t, tree.Prime, root.Type)
	require.Len(t, root.Children, 10)
}

// checkInvariants verifies the universal properties P1-P4 against g
// directly, independent of any particular expected tree shape.
func checkInvariants(t *testing.T, g *graph.Graph, root *tree.Node) {
	t.Helper()
	leaves := root.Leaves()
	seen := make(map[int]bool, len(leaves))
	for _, v := range leaves {
		require.False(t, seen[v], "vertex %d appears twice", v)
		seen[v] = true
	}
	require.Len(t, leaves, g.Size())

	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		if n.Type != tree.Normal {
			require.GreaterOrEqual(t, len(n.Children), 2)
			if n.Type == tree.Series {
				for _, c := range n.Children {
					require.NotEqual(t, tree.Series, c.Type)
				}
			}
			if n.Type == tree.Parallel {
				for _, c := range n.Children {
					require.NotEqual(t, tree.Parallel, c.Type)
				}
			}
			checkModule(t, g, n, root)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
}

func checkModule(t *testing.T, g *graph.Graph, n, root *tree.Node) {
	t.Helper()
	inside := make(map[int]bool)
	for _, v := range n.Leaves() {
		inside[v] = true
	}
	for _, v := range root.Leaves() {
		if inside[v] {
			continue
		}
		adjToAll, adjToNone := true, true
		for u := range inside {
			if g.HasEdge(v, u) {
				adjToNone = false
			} else {
				adjToAll = false
			}
		}
		require.True(t, adjToAll || adjToNone,
			"vertex %d is adjacent to some but not all of module %v", v, n.Leaves())
	}
}

func TestComputeInvariantsOnRandomishGraphs(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		edges [][2]int
	}{
		{"bull", 5, [][2]int{{0, 1}, {0, 2}, {1, 2}, {1, 3}, {2, 4}}},
		{"paw", 4, [][2]int{{0, 1}, {0, 2}, {1, 2}, {2, 3}},
		},
		{"house", 5, [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {3, 4}, {4, 0}}},
		{"two-triangles-bridge", 6, [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 4}, {4, 5}, {3, 5}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGraph(t, tc.n, tc.edges)
			root, err := Compute(context.Background(), g)
			require.NoError(t, err)
			checkInvariants(t, g, root)
		})
	}
}

func TestComputeDeterministic(t *testing.T) {
	g := mustGraph(t, 6, [][2]int{{0, 1}, {1, 2}, {0, 2}, {2, 3}, {3, 4}, {4, 5}, {3, 5}})
	r1, err := Compute(context.Background(), g)
	require.NoError(t, err)
	r2, err := Compute(context.Background(), g)
	require.NoError(t, err)
	if diff := cmp.Diff(sortedShape(r1), sortedShape(r2)); diff != "" {
		t.Fatalf("two runs on the same graph produced different trees:\n%s", diff)
	}
}

func TestComputeRejectsCanceledContext(t *testing.T) {
	g := mustGraph(t, 4, [][2]int{{0, 1}, {1, 2}, {2, 3}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compute(ctx, g)
	require.Error(t, err)
	var ie *InternalError
	require.ErrorAs(t, err, &ie)
}

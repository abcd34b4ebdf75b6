// Package lexbfs computes the extended Lexicographic Breadth-First Search
// ordering the modular-decomposition engine in package decomp consumes:
// the visit order sigma, its inverse, the per-position x-slice lengths,
// and the lex-label suffixes used to detect adjacency across a pivot's
// slices without rescanning the graph.
package lexbfs

// Result holds the four immutable side tables LexBFS produces, all
// indexed by position in sigma (§3 of the spec).
type Result struct {
	// Sigma[i] is the i-th vertex visited.
	Sigma []int
	// SigmaInv is the inverse permutation: SigmaInv[Sigma[i]] == i.
	SigmaInv []int
	// XsliceLen[i] is the length of the x-slice starting at position i:
	// the size of the part position i belonged to just before it was
	// visited and removed from it.
	XsliceLen []int
	// LexLabel[i] is the ordered list of vertices that contributed to
	// position i's lexicographic label, in increasing order of the
	// visiting step that appended them.
	LexLabel [][]int
}

// part is one block of the partition-refinement structure: a contiguous
// run of positions [start, start+length) in sigma/sigmaInv that currently
// share the same lex-label prefix.
type part struct {
	start, length int
	// subpart is the index of this part's lazily-allocated split-off
	// child for the current pivot step, or -1 if none has been carved
	// out yet this step. subpartGen records which "part creation epoch"
	// subpart was set in, so staleness can be detected in O(1) instead
	// of clearing every part's subpart field on every step.
	subpart    int
	subpartGen int
}

type neighborFn func(v int) []int

// Run executes extended LexBFS over n vertices using the supplied
// neighbor lookup, starting the order at vertex start (matching §4.2:
// "sigma is initialized either to [start, 0,1,...] skipping start, or to
// [0,...,n-1]"). Passing start=0 and letting the degenerate n<=1 cases
// fall out naturally gives the plain-start behavior.
func Run(n int, start int, neighbors neighborFn) *Result {
	res := &Result{
		Sigma:     make([]int, n),
		SigmaInv:  make([]int, n),
		XsliceLen: make([]int, n),
		LexLabel:  make([][]int, n),
	}
	if n == 0 {
		return res
	}

	// Initial order: start first, then every other vertex in natural
	// order. This matches the "skip start" initialization named in
	// §4.2; any fixed initial order is a valid LexBFS seed.
	sigma := make([]int, 0, n)
	sigma = append(sigma, start)
	for v := 0; v < n; v++ {
		if v != start {
			sigma = append(sigma, v)
		}
	}
	sigmaInv := make([]int, n)
	for i, v := range sigma {
		sigmaInv[v] = i
	}

	parts := []*part{{start: 0, length: n, subpart: -1, subpartGen: 0}}
	partOf := make([]int, n) // position -> part id
	for i := range partOf {
		partOf[i] = 0
	}
	partsCreatedBefore := 1 // count of parts that existed before the current step began

	for i := 0; i < n; i++ {
		pid := partOf[i]
		p := parts[pid]

		res.XsliceLen[i] = p.length

		// Remove position i from its part by shrinking it from the
		// front; positions within a part are kept contiguous by the
		// swap-to-front scheme below, so i is always p.start here.
		p.start++
		p.length--

		v := sigma[i]

		// Epoch boundary: any split performed from here on belongs to
		// step i, so a part's stale subpart pointer (from an earlier
		// step) must be reallocated.
		partsCreatedBefore = len(parts)

		for _, u := range neighbors(v) {
			j := sigmaInv[u]
			if j <= i {
				continue
			}
			res.LexLabel[j] = append(res.LexLabel[j], v)

			qid := partOf[j]
			q := parts[qid]

			if q.subpart < 0 || q.subpartGen < partsCreatedBefore {
				// Allocate a fresh split-off part for q, initially
				// empty, placed at the front of q's current window so
				// the two halves stay contiguous in sigma.
				newPart := &part{start: q.start, length: 0, subpart: -1, subpartGen: 0}
				parts = append(parts, newPart)
				q.subpart = len(parts) - 1
				q.subpartGen = partsCreatedBefore
			}

			sub := parts[q.subpart]

			// sub sits at the front of q's shrinking window; pull j
			// into it by swapping with q's current head.
			swapWith := q.start
			if swapWith != j {
				swapPositions(sigma, sigmaInv, res.LexLabel, swapWith, j)
				j = swapWith
			}

			q.start++
			q.length--
			sub.length++

			partOf[j] = q.subpart
		}

		// Reset subpart markers implicitly: any part touched this step
		// already has subpartGen == partsCreatedBefore, which will read
		// as stale on the NEXT step (since partsCreatedBefore advances
		// before the next step's first split). No explicit clear pass
		// needed.
	}

	res.Sigma = sigma
	res.SigmaInv = sigmaInv
	return res
}

// swapPositions exchanges the vertices/labels occupying positions a and b
// in sigma, keeping sigmaInv and the in-progress lexLabel table
// consistent with the swap.
func swapPositions(sigma, sigmaInv []int, lexLabel [][]int, a, b int) {
	if a == b {
		return
	}
	sigma[a], sigma[b] = sigma[b], sigma[a]
	lexLabel[a], lexLabel[b] = lexLabel[b], lexLabel[a]
	sigmaInv[sigma[a]] = a
	sigmaInv[sigma[b]] = b
}

package tree

// ScratchData is the reusable per-Compute-call arena named in spec.md
// §5 and §9: the Left/Right bound arrays used by the parse-and-assemble
// phase, plus the Full/Marked sets used by marking. The cluster list
// itself is not held here; decomp builds it fresh in every pivot frame.
// A single ScratchData is threaded through every recursive
// decompose frame of one Compute invocation and rewound (not
// reallocated) between frames, keeping the algorithm's allocation
// profile O(n+m) in practice.
type ScratchData struct {
	// Full and Marked are keyed by Node pointer and reset (cleared, not
	// reallocated) at the start of each marking pass (§4.3.2).
	Full   map[*Node]bool
	Marked map[*Node]bool

	// Left and Right are refilled per pivot frame by decomp's Left/Right
	// step (§4.3.1f); the backing arrays are reused across frames via
	// RewindClusters.
	Left  []int
	Right []int
}

// NewScratchData allocates a scratch arena sized for a graph of n
// vertices; n bounds the maximum number of clusters/positions any single
// frame will need.
func NewScratchData(n int) *ScratchData {
	return &ScratchData{
		Full:   make(map[*Node]bool, n),
		Marked: make(map[*Node]bool, n),
		Left:   make([]int, 0, n),
		Right:  make([]int, 0, n),
	}
}

// ResetMarking clears Full/Marked for the start of a new label-set
// marking pass (§4.3.2), without shrinking the underlying map capacity.
func (s *ScratchData) ResetMarking() {
	for k := range s.Full {
		delete(s.Full, k)
	}
	for k := range s.Marked {
		delete(s.Marked, k)
	}
}

// RewindClusters truncates Left/Right to length 0 while keeping their
// backing array, ready for the next frame's cluster count.
func (s *ScratchData) RewindClusters() {
	s.Left = s.Left[:0]
	s.Right = s.Right[:0]
}

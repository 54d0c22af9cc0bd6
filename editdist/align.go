package editdist

// Align — weighted edit distance with bounded moves and swaps
//
// Description:
//
//	Align explains target as an edited copy of source. Besides substitution,
//	deletion and insertion it recognises three transpositions inside a window
//	of MaxMoveSwap positions:
//	  • forward move  — source[i-1] matches a target note k steps later
//	  • backward move — source[i-1] matches a target note k steps earlier
//	  • swap          — source[i-1] and source[i-1-k] appear exchanged
//
// Algorithm Outline:
//  1. Let n = len(source), m = len(target). Allocate the (n+1)x(m+1) grid G.
//  2. Initialize:
//     G[0][j] = G[0][j-1] + ins(j-1)   for j=1..m
//     G[i][0] = i·OpCost               for i=1..n
//  3. For i = 1..n, j = 1..m:
//     G[i][j] = min(
//     G[i-1][j-1] + (0 | OpCost),           match / substitution
//     G[i-1][j]   + del(j),                 deletion
//     G[i][j-1]   + ins(j-1),               insertion
//     G[i-1][j+k]     + MoveSwapCost,       forward move,  k=1..MaxMoveSwap
//     G[i-1][j-1-k]   + MoveSwapCost,       backward move, k=1..MaxMoveSwap
//     G[i-1-k][j-1-k] + MoveSwapCost)       swap,          k=1..MaxMoveSwap
//     where ins(x) = ReducedCost inside the free range, else OpCost,
//     and del(j) = ReducedCost when j == m, else OpCost.
//  4. Cost = G[n][m].
//  5. Backtrack from (n,m) with a fixed candidate order (see backtrack.go).
//
// Complexity:
//
//	Time   = O(n·m·MaxMoveSwap)
//	Memory = O(n·m)
//
// Errors:
//   - ErrBacktrackStuck — internal invariant violation, never expected.

// Align computes the minimum-cost edit script that turns source into target.
// A nil opts means DefaultOptions().
//
// Example:
//
//	res, err := Align([]int64{60, 62}, []int64{62, 60}, nil)
//	// res.Cost == MoveSwapCost, res.Aligned == [{0 1} {1 0}]
func Align(source, target []int64, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	a := newAligner(source, target, opts)
	a.fill()

	return a.backtrack()
}

// aligner holds the state of one Align call.
type aligner struct {
	s, t      []int64
	n, m      int
	g         *grid
	freeStart int  // clamped free insertion range start
	freeEnd   int  // clamped free insertion range end (exclusive)
	hasFree   bool // false when the range is absent or empty after clamping
	moves     bool // transpositions enabled
}

// newAligner resolves options and allocates the grid.
func newAligner(source, target []int64, opts *Options) *aligner {
	a := &aligner{
		s:     source,
		t:     target,
		n:     len(source),
		m:     len(target),
		moves: !opts.DisableTranspositions,
	}
	a.g = newGrid(a.n, a.m)
	a.freeStart, a.freeEnd, a.hasFree = clampRange(opts.FreeInsertion, a.m)

	return a
}

// clampRange clips r to [0, m]. An empty or inverted result disables it.
func clampRange(r *Range, m int) (start, end int, ok bool) {
	if r == nil {
		return 0, 0, false
	}
	start, end = clampInt(r.Start, 0, m), clampInt(r.End, 0, m)
	if start >= end {
		return 0, 0, false
	}

	return start, end, true
}

// clampInt limits v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// insCost is the cost of inserting target[idx].
func (a *aligner) insCost(idx int) int64 {
	if a.hasFree && idx >= a.freeStart && idx < a.freeEnd {
		return ReducedCost
	}

	return OpCost
}

// delCost is the cost of deleting a source note while standing in column j.
// Deleting after the final target position is discounted.
func (a *aligner) delCost(j int) int64 {
	if j == a.m {
		return ReducedCost
	}

	return OpCost
}

// subCost is 0 for a match of source[i-1] and target[j-1], OpCost otherwise.
func (a *aligner) subCost(i, j int) int64 {
	if a.s[i-1] == a.t[j-1] {
		return 0
	}

	return OpCost
}

// canForward reports whether source[i-1] may be matched k target steps later.
func (a *aligner) canForward(i, j, k int) bool {
	return j+k <= a.m && a.s[i-1] == a.t[j+k-1]
}

// canBackward reports whether source[i-1] may be matched k target steps earlier.
func (a *aligner) canBackward(i, j, k int) bool {
	return j >= 1+k && a.s[i-1] == a.t[j-1-k]
}

// canSwap reports whether source[i-1] and source[i-1-k] appear exchanged
// with target[j-1-k] and target[j-1].
func (a *aligner) canSwap(i, j, k int) bool {
	return i >= 1+k && j >= 1+k &&
		a.s[i-1] == a.t[j-1-k] &&
		a.s[i-1-k] == a.t[j-1]
}

// fill computes every grid cell. Rows are filled top to bottom, which is all
// the forward move needs: it only reads row i-1.
func (a *aligner) fill() {
	g := a.g

	// Row 0: insertions only.
	for j := 1; j <= a.m; j++ {
		g.set(0, j, g.at(0, j-1)+a.insCost(j-1))
	}
	// Column 0: deletions only.
	for i := 1; i <= a.n; i++ {
		g.set(i, 0, int64(i)*OpCost)
	}

	for i := 1; i <= a.n; i++ {
		for j := 1; j <= a.m; j++ {
			best := min(
				g.at(i-1, j-1)+a.subCost(i, j),
				g.at(i-1, j)+a.delCost(j),
				g.at(i, j-1)+a.insCost(j-1),
			)

			if a.moves {
				for k := 1; k <= MaxMoveSwap; k++ {
					if a.canForward(i, j, k) {
						best = min(best, g.at(i-1, j+k)+MoveSwapCost)
					}
				}
				for k := 1; k <= MaxMoveSwap; k++ {
					if a.canBackward(i, j, k) {
						best = min(best, g.at(i-1, j-1-k)+MoveSwapCost)
					}
				}
				for k := 1; k <= MaxMoveSwap; k++ {
					if a.canSwap(i, j, k) {
						best = min(best, g.at(i-1-k, j-1-k)+MoveSwapCost)
					}
				}
			}

			g.set(i, j, best)
		}
	}
}

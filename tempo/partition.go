package tempo

import (
	"math"

	"github.com/katalvlaran/notealign/series"
)

// span is a half-open range [start, end) of signal samples.
type span struct {
	start, end int
}

// segmentCoster evaluates the cost of one section in O(1) from prefix sums:
//
//	cost(s,e) = Σy² − (Σy)²/(e−s) + penalty
//
// i.e. (e−s)·variance of y[s:e] plus the per-section penalty.
type segmentCoster struct {
	sums, squares []float64
	penalty       float64
}

func newSegmentCoster(y []float64, penalty float64) segmentCoster {
	sums, squares := series.PrefixSums(y)

	return segmentCoster{sums: sums, squares: squares, penalty: penalty}
}

func (c segmentCoster) cost(s, e int) float64 {
	sum := c.sums[e] - c.sums[s]
	sq := c.squares[e] - c.squares[s]

	return sq - sum*sum/float64(e-s) + c.penalty
}

// partition splits y into sections of at least minLen samples minimising the
// total section cost. With maxSeg set the section count is capped.
//
// Ties go to the earliest split point (and to the fewest sections when
// capped), so the result is deterministic. A signal no longer than minLen,
// or one the program cannot cover, is returned as a single section.
//
// Complexity: O(n²) unbounded, O(K·n²) with a cap K.
func partition(y []float64, minLen int, penalty float64, maxSeg *int) []span {
	n := len(y)
	if n == 0 {
		return nil
	}
	whole := []span{{start: 0, end: n}}
	if n <= minLen {
		return whole
	}

	c := newSegmentCoster(y, penalty)

	var spans []span
	if maxSeg == nil {
		spans = partitionUnbounded(c, n, minLen)
	} else {
		spans = partitionCapped(c, n, minLen, min(*maxSeg, n/minLen))
	}
	if spans == nil {
		return whole
	}

	return spans
}

// partitionUnbounded is optimal partitioning over prefix end points:
//
//	F[0] = 0
//	F[e] = min_{s ≤ e−minLen} F[s] + cost(s,e)
func partitionUnbounded(c segmentCoster, n, minLen int) []span {
	inf := math.Inf(1)
	best := make([]float64, n+1)
	prev := make([]int, n+1)
	for e := 1; e <= n; e++ {
		best[e] = inf
	}

	for e := minLen; e <= n; e++ {
		for s := 0; s <= e-minLen; s++ {
			if math.IsInf(best[s], 1) {
				continue
			}
			if v := best[s] + c.cost(s, e); v < best[e] {
				best[e] = v
				prev[e] = s
			}
		}
	}
	if math.IsInf(best[n], 1) {
		return nil
	}

	var out []span
	for e := n; e > 0; e = prev[e] {
		out = append(out, span{start: prev[e], end: e})
	}
	reverseSpans(out)

	return out
}

// partitionCapped is the layered variant: F[k][e] is the best cost of
// covering y[0:e] with exactly k sections, k = 1..maxSeg.
func partitionCapped(c segmentCoster, n, minLen, maxSeg int) []span {
	if maxSeg < 1 {
		return nil
	}

	inf := math.Inf(1)
	best := make([][]float64, maxSeg+1)
	prev := make([][]int, maxSeg+1)
	for k := range best {
		best[k] = make([]float64, n+1)
		prev[k] = make([]int, n+1)
		for e := range best[k] {
			best[k][e] = inf
		}
	}
	best[0][0] = 0

	for k := 1; k <= maxSeg; k++ {
		for e := k * minLen; e <= n; e++ {
			for s := (k - 1) * minLen; s <= e-minLen; s++ {
				if math.IsInf(best[k-1][s], 1) {
					continue
				}
				if v := best[k-1][s] + c.cost(s, e); v < best[k][e] {
					best[k][e] = v
					prev[k][e] = s
				}
			}
		}
	}

	bestK := 0
	for k := 1; k <= maxSeg; k++ {
		if best[k][n] < inf && (bestK == 0 || best[k][n] < best[bestK][n]) {
			bestK = k
		}
	}
	if bestK == 0 {
		return nil
	}

	out := make([]span, 0, bestK)
	for k, e := bestK, n; k > 0; k-- {
		s := prev[k][e]
		out = append(out, span{start: s, end: e})
		e = s
	}
	reverseSpans(out)

	return out
}

func reverseSpans(s []span) {
	for l, r := 0, len(s)-1; l < r; l, r = l+1, r-1 {
		s[l], s[r] = s[r], s[l]
	}
}

package tempo

import (
	"fmt"
	"math"

	"github.com/katalvlaran/notealign/editdist"
	"github.com/katalvlaran/notealign/series"
)

// Section is a contiguous run of stable tempo.
//
//   - StartIndex, EndIndex — source indices of the first and last aligned
//     pair of the run (inclusive).
//   - Tempo                — mean smoothed offset slope over the run.
type Section struct {
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Tempo      float64 `json:"tempo"`
}

// Analysis is the outcome of Segment.
type Analysis struct {
	Sections   []Section
	Volatility float64
}

// Segment partitions the tempo drift of an aligned performance.
//
// actualTimes are indexed by the Source side of each pair, playedTimes by the
// Target side. An empty alignment yields an empty Analysis. A nil params
// means DefaultParams().
//
// Errors:
//   - ErrBadParams       — params fail Validate.
//   - ErrIndexOutOfRange — strict mode, a pair points outside a time array.
//   - ErrNonFinite       — strict mode, a referenced time is NaN or ±Inf.
func Segment(actualTimes, playedTimes []float64, aligned []editdist.Pair, params *Params) (*Analysis, error) {
	if params == nil {
		params = DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(aligned) == 0 {
		return &Analysis{}, nil
	}

	offsets, err := offsetSignal(actualTimes, playedTimes, aligned, params.Strict)
	if err != nil {
		return nil, err
	}

	smoothed := series.MovingAverage(series.Gradient(offsets), params.SmoothingWindow)
	spans := partition(smoothed, params.MinSegmentLength, params.Penalty, params.MaxSegments)

	sections := make([]Section, 0, len(spans))
	for _, sp := range spans {
		sections = append(sections, Section{
			StartIndex: aligned[sp.start].Source,
			EndIndex:   aligned[sp.end-1].Source,
			Tempo:      series.RangeMean(smoothed, sp.start, sp.end),
		})
	}
	if len(sections) == 0 {
		sections = append(sections, Section{
			StartIndex: aligned[0].Source,
			EndIndex:   aligned[len(aligned)-1].Source,
		})
	}

	return &Analysis{
		Sections:   sections,
		Volatility: series.PopStdDev(series.Abs(smoothed)) * VolatilityScale,
	}, nil
}

// offsetSignal returns actual[a] − played[p] for every aligned pair.
// Lenient mode reads missing times as 0.0.
func offsetSignal(actual, played []float64, aligned []editdist.Pair, strict bool) ([]float64, error) {
	out := make([]float64, len(aligned))
	for i, pr := range aligned {
		a, okA := lookup(actual, pr.Source)
		p, okP := lookup(played, pr.Target)
		if strict {
			if !okA || !okP {
				return nil, fmt.Errorf("%w: pair %d = (%d,%d), lengths (%d,%d)",
					ErrIndexOutOfRange, i, pr.Source, pr.Target, len(actual), len(played))
			}
			if !isFinite(a) || !isFinite(p) {
				return nil, fmt.Errorf("%w: pair %d = (%d,%d)", ErrNonFinite, i, pr.Source, pr.Target)
			}
		}
		out[i] = a - p
	}

	return out, nil
}

// lookup returns x[i] and true, or 0.0 and false when i is out of range.
func lookup(x []float64, i int) (float64, bool) {
	if i < 0 || i >= len(x) {
		return 0, false
	}

	return x[i], true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

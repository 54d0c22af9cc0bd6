package tempo

import (
	"errors"
	"fmt"
	"math"
)

// Defaults (single source of truth for DefaultParams).
const (
	// DefaultMinSegmentLength is the minimum number of signal samples per section.
	DefaultMinSegmentLength = 8

	// DefaultPenalty is the additive cost charged per section.
	DefaultPenalty = 3.5

	// DefaultSmoothingWindow is the moving-average width applied to the slope signal.
	DefaultSmoothingWindow = 5

	// VolatilityScale multiplies the spread of |slope| into a display-friendly figure.
	VolatilityScale = 1e4
)

var (
	// ErrBadParams indicates a parameter outside its documented domain.
	ErrBadParams = errors.New("tempo: invalid segmentation parameters")

	// ErrIndexOutOfRange indicates an aligned pair pointing outside a time
	// array. Only returned in strict mode; the lenient default reads 0.0.
	ErrIndexOutOfRange = errors.New("tempo: aligned index out of range")

	// ErrNonFinite indicates a NaN or ±Inf onset time. Strict mode only.
	ErrNonFinite = errors.New("tempo: NaN or Inf time")
)

// Params configures Segment. Build it with DefaultParams and override fields;
// a nil *Params passed to Segment means all defaults.
//
// Fields:
//   - MinSegmentLength — minimum samples per section, ≥ 1.
//   - Penalty          — cost added per section, finite and ≥ 0; higher values merge more.
//   - MaxSegments      — optional cap on the section count (nil = unbounded, else ≥ 1).
//   - SmoothingWindow  — moving-average width; clamped to [1, len] at use time.
//   - Strict           — reject out-of-range aligned indices and non-finite
//     times instead of reading them as 0.0.
type Params struct {
	MinSegmentLength int
	Penalty          float64
	MaxSegments      *int
	SmoothingWindow  int
	Strict           bool
}

// DefaultParams returns the documented defaults.
func DefaultParams() *Params {
	return &Params{
		MinSegmentLength: DefaultMinSegmentLength,
		Penalty:          DefaultPenalty,
		SmoothingWindow:  DefaultSmoothingWindow,
	}
}

// WithMaxSegments returns a copy of p capped at k sections.
func (p Params) WithMaxSegments(k int) *Params {
	p.MaxSegments = &k

	return &p
}

// Validate reports ErrBadParams, wrapped with the offending field, when p is
// outside its domain.
func (p *Params) Validate() error {
	if p.MinSegmentLength < 1 {
		return fmt.Errorf("%w: MinSegmentLength=%d, want >= 1", ErrBadParams, p.MinSegmentLength)
	}
	if math.IsNaN(p.Penalty) || math.IsInf(p.Penalty, 0) || p.Penalty < 0 {
		return fmt.Errorf("%w: Penalty=%v, want finite and >= 0", ErrBadParams, p.Penalty)
	}
	if p.MaxSegments != nil && *p.MaxSegments < 1 {
		return fmt.Errorf("%w: MaxSegments=%d, want >= 1", ErrBadParams, *p.MaxSegments)
	}

	return nil
}

// Package editdist defines operations, options and results of the aligner.
package editdist

import (
	"errors"
	"fmt"
)

// Cost model.
const (
	// OpCost is the base cost of a substitution, deletion or insertion.
	OpCost int64 = 5

	// MoveSwapCost is charged for a bounded move or a swap of two notes.
	MoveSwapCost int64 = 2

	// ReducedCost is charged for an insertion inside the free insertion range
	// and for a deletion after the final target position.
	ReducedCost int64 = 1

	// MaxMoveSwap is the transposition search window.
	MaxMoveSwap = 5
)

var (
	// ErrBacktrackStuck indicates that the backtrack reached a grid cell no
	// candidate step can reproduce. The fill and the backtrack disagree; the
	// result of the call is unusable and retrying with the same input is pointless.
	ErrBacktrackStuck = errors.New("editdist: backtrack stuck")
)

// IsInternal reports whether err is an internal invariant violation of the
// aligner rather than a domain outcome.
func IsInternal(err error) bool {
	return errors.Is(err, ErrBacktrackStuck)
}

// OpKind enumerates edit operations. The numeric values are stable.
type OpKind uint8

const (
	// Substitution replaces source[SourceIndex] with target[TargetIndex].
	Substitution OpKind = iota
	// Deletion drops source[SourceIndex].
	Deletion
	// Insertion adds target[TargetIndex].
	Insertion
)

// String returns the lower-case name of the kind.
func (k OpKind) String() string {
	switch k {
	case Substitution:
		return "substitution"
	case Deletion:
		return "deletion"
	case Insertion:
		return "insertion"
	default:
		return fmt.Sprintf("OpKind(%d)", uint8(k))
	}
}

// Operation is one edit record produced by the backtrack.
//
// Fields:
//   - Kind        — Substitution, Deletion or Insertion.
//   - SourceIndex — source note concerned. For an Insertion it is the source
//     note the insertion follows (clamped to 0 before the first one).
//   - TargetIndex — target note concerned; nil for a Deletion.
//   - Pos, TPos   — grid cell the record was produced at (traceability only).
type Operation struct {
	Kind        OpKind
	SourceIndex int
	TargetIndex *int
	Pos         int
	TPos        int
}

// String implements fmt.Stringer.
func (op Operation) String() string {
	if op.TargetIndex == nil {
		return fmt.Sprintf("%s{s=%d @%d,%d}", op.Kind, op.SourceIndex, op.Pos, op.TPos)
	}

	return fmt.Sprintf("%s{s=%d t=%d @%d,%d}", op.Kind, op.SourceIndex, *op.TargetIndex, op.Pos, op.TPos)
}

// Pair links a source position to the target position judged equivalent.
type Pair struct {
	Source int `json:"source"`
	Target int `json:"target"`
}

// Range is a half-open interval [Start, End) of target indices.
type Range struct {
	Start int
	End   int
}

// Options configures Align.
//
// Fields:
//   - FreeInsertion         — target indices whose insertion costs ReducedCost.
//     The range is clamped to the target length; an empty or inverted range
//     disables the discount silently.
//   - DisableTranspositions — turn off moves and swaps, leaving a weighted
//     Levenshtein distance. Its cost upper-bounds the default one.
type Options struct {
	FreeInsertion         *Range
	DisableTranspositions bool
}

// DefaultOptions returns the options used when Align receives nil.
func DefaultOptions() *Options {
	return &Options{}
}

// Result is the outcome of Align.
//
//   - Ops     — edit records in time order.
//   - Aligned — equivalent positions in time order. Every pair is in
//     range and is either a pitch match or backed by a Substitution record.
//     Move and swap pairs may cross their neighbours; the rest are monotone.
//   - Cost    — total cost, always grid[n,m].
type Result struct {
	Ops     []Operation
	Aligned []Pair
	Cost    int64
}

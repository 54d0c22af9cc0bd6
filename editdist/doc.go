// Package editdist computes a minimum-cost edit script between two pitch
// sequences, with bounded-window note moves and swaps on top of the classic
// substitution / deletion / insertion operations.
//
// 🚀 What is it for?
//
//	A performer rarely plays a score exactly. Notes get dropped, extra notes
//	slip in, a chord is rolled in a different order or a note lands a little
//	late. editdist explains the difference between a reference sequence and a
//	performed one as a cheapest list of edits, and reports which positions of
//	the two sequences were judged equivalent (the index alignment).
//
// ✨ Key features:
//   - weighted edit distance: OpCost per substitution / deletion / insertion
//   - transpositions: a note matched up to MaxMoveSwap steps early or late,
//     or two notes exchanged inside that window, cost only MoveSwapCost
//   - free insertion range: insertions over a target sub-range cost ReducedCost
//   - trailing deletions (after the final target note) cost ReducedCost
//   - deterministic backtrack with a fixed tie-break order
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/notealign/editdist"
//
//	opts := editdist.DefaultOptions()
//	opts.FreeInsertion = &editdist.Range{Start: 10, End: 40}
//
//	res, err := editdist.Align(reference, performed, opts)
//	if err != nil {
//	  // only ErrBacktrackStuck, an internal invariant violation
//	}
//	fmt.Println(res.Cost, res.Ops, res.Aligned)
//
// Performance:
//
//   - Time:   O(N·M·K) with K = MaxMoveSwap
//   - Memory: O(N·M) for the cost grid, released when Align returns
//
// Every call owns its grid; concurrent calls need no synchronization.
package editdist

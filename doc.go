// Package notealign compares a musical performance against its score.
//
// 🚀 What is notealign?
//
//	A small, deterministic toolkit made of two independent engines and a
//	pipeline gluing them together:
//		• Alignment: weighted edit distance over pitch sequences with bounded
//		  moves and swaps, plus a free insertion range for page focus
//		• Tempo: offset-slope signal, smoothing and optimal change-point
//		  partition into stable tempo sections, with a volatility figure
//		• Score: note sorting, edit resolution, deletion confidence grading
//
// Packages:
//
//	editdist/      — alignment engine (Align, Operation, Pair)
//	tempo/         — tempo segmentation engine (Segment, Params, Section)
//	series/        — numeric helpers on gonum (gradient, moving average, prefix sums)
//	score/         — note-level pipeline (Compare, Report, FocusWindow)
//	cmd/notealign/ — command line front end reading JSON note lists
//
// Quick example:
//
//	res, _ := editdist.Align(reference, performed, nil)
//	an, _ := tempo.Segment(refTimes, perfTimes, res.Aligned, nil)
//
//	go get github.com/katalvlaran/notealign
package notealign

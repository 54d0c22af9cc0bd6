// Package tempo finds regions of stable tempo in a performance that has been
// aligned against its reference.
//
// For every aligned pair (a, p) the offset actual[a] − played[p] tells how far
// the performer is ahead of or behind the reference. The slope of that offset
// is the tempo drift: flat means "in time", a steady positive or negative
// slope means the performer is dragging or rushing. Segment
//
//  1. builds the offset signal,
//  2. differentiates it (series.Gradient),
//  3. smooths the slope (series.MovingAverage),
//  4. partitions it by an exact O(n²) dynamic program that minimises
//     Σ (length × variance + Penalty) over sections of at least
//     MinSegmentLength samples, optionally capped at MaxSegments,
//  5. reports each section's mean slope and the volatility of the whole run.
//
// Usage:
//
//	res, _ := editdist.Align(refPitches, perfPitches, nil)
//	an, err := tempo.Segment(refTimes, perfTimes, res.Aligned, nil)
//	for _, s := range an.Sections {
//		fmt.Println(s.StartIndex, s.EndIndex, s.Tempo)
//	}
//
// Segment is pure and allocation-only; concurrent calls are safe.
package tempo

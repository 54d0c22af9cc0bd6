// Package series provides the small numeric toolkit shared by the tempo
// engine: finite-difference gradient, edge-replicated moving average, prefix
// sums for O(1) range statistics, and population dispersion.
//
// All helpers are pure: inputs are never modified and every result is a
// freshly allocated slice. Empty inputs yield empty (nil) outputs.
package series

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Gradient returns the finite-difference derivative of x.
//
// Forward difference at index 0, backward difference at the last index and
// centered difference (x[i+1]-x[i-1])/2 elsewhere. A single sample yields [0].
// Complexity: O(n).
func Gradient(x []float64) []float64 {
	n := len(x)
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{0}
	}

	grad := make([]float64, n)
	grad[0] = x[1] - x[0]
	for i := 1; i < n-1; i++ {
		grad[i] = (x[i+1] - x[i-1]) * 0.5
	}
	grad[n-1] = x[n-1] - x[n-2]

	return grad
}

// MovingAverage smooths x with a centered box window of width w.
//
// The width is clamped to [1, len(x)]. Output sample i averages
// x[i-w/2 .. i+w-1-w/2]; indices outside x are replaced by the nearest edge
// sample, so the output has the same length as x and no edge decay.
// Every window is summed on its own, so equal windows give bit-identical
// averages however long the signal is.
// Complexity: O(n·w).
func MovingAverage(x []float64, w int) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}
	w = clampInt(w, 1, n)

	left := w / 2
	padded := make([]float64, n+w-1)
	for k := range padded {
		padded[k] = x[clampInt(k-left, 0, n-1)]
	}

	out := make([]float64, n)
	width := float64(w)
	for i := range out {
		out[i] = floats.Sum(padded[i:i+w]) / width
	}

	return out
}

// PrefixSums returns running sums of x and of x², both of length len(x)+1
// with a leading zero, so that the sum over [s,e) is sums[e]-sums[s].
func PrefixSums(x []float64) (sums, squares []float64) {
	n := len(x)
	sums = make([]float64, n+1)
	squares = make([]float64, n+1)
	if n == 0 {
		return sums, squares
	}

	sq := make([]float64, n)
	floats.MulTo(sq, x, x)
	floats.CumSum(sums[1:], x)
	floats.CumSum(squares[1:], sq)

	return sums, squares
}

// Abs returns |x| element-wise.
func Abs(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}

	return out
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return stat.Mean(x, nil)
}

// RangeMean returns the mean of x[start:end] (0 for an empty range).
func RangeMean(x []float64, start, end int) float64 {
	return Mean(x[start:end])
}

// PopStdDev returns the population (biased, divide-by-n) standard deviation
// of x. Fewer than two samples have no spread and yield 0.
func PopStdDev(x []float64) float64 {
	if len(x) < 2 {
		return 0
	}

	return stat.PopStdDev(x, nil)
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

package tempo_test

import (
	"testing"

	"github.com/katalvlaran/notealign/tempo"
)

// benchmarkSegment runs Segment on an n-sample four-phase drift.
func benchmarkSegment(b *testing.B, n int, params *tempo.Params) {
	actual, played, aligned := drift(n, piecewise(n/4, 0, 1, -1, 0.5))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tempo.Segment(actual, played, aligned, params); err != nil {
			b.Fatalf("Segment failed: %v", err)
		}
	}
}

// BenchmarkSegment_1k benchmarks the unbounded program on 1000 samples.
func BenchmarkSegment_1k(b *testing.B) {
	benchmarkSegment(b, 1000, nil)
}

// BenchmarkSegment_1kCapped benchmarks the layered program capped at 6 sections.
func BenchmarkSegment_1kCapped(b *testing.B) {
	benchmarkSegment(b, 1000, tempo.DefaultParams().WithMaxSegments(6))
}

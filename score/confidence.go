package score

import (
	"sort"

	"github.com/katalvlaran/notealign/editdist"
)

// Confidence grades attached to the source note of every edit.
const (
	// ConfidenceSure is the default grade.
	ConfidenceSure = 5
	// ConfidenceNeighbour marks a deletion with a note a major third away nearby.
	ConfidenceNeighbour = 4
	// ConfidenceOctave marks a deletion with the same pitch class an octave away nearby.
	ConfidenceOctave = 3
)

// OctaveCheckWindow is the half-width, in seconds, of the neighbourhood
// searched around a deleted note.
const OctaveCheckWindow = 0.1

// onsetIndex is the reference sorted by onset, for neighbourhood queries.
type onsetIndex struct {
	times   []float64
	pitches []int64
}

func newOnsetIndex(notes []Note) onsetIndex {
	order := make([]int, len(notes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return notes[order[a]].StartTime < notes[order[b]].StartTime
	})

	idx := onsetIndex{times: make([]float64, len(notes)), pitches: make([]int64, len(notes))}
	for i, o := range order {
		idx.times[i] = notes[o].StartTime
		idx.pitches[i] = notes[o].Pitch
	}

	return idx
}

// around returns the pitches with onsets in [t-w, t+w].
func (x onsetIndex) around(t, w float64) []int64 {
	lo := sort.SearchFloat64s(x.times, t-w)
	hi := sort.Search(len(x.times), func(i int) bool { return x.times[i] > t+w })

	return x.pitches[lo:hi]
}

// gradeConfidence sets the source-note confidence of every edit. A deleted
// note is often a transcription artefact when the same pitch class sounds an
// octave away, or a major third away, at the same moment; such deletions are
// graded lower.
func gradeConfidence(edits []Edit, idx onsetIndex) {
	for i := range edits {
		e := &edits[i]
		if e.Source == nil {
			continue
		}
		e.Source.Confidence = ConfidenceSure
		if e.Op != editdist.Deletion {
			continue
		}

		local := idx.around(e.Source.StartTime, OctaveCheckWindow)
		switch p := e.Source.Pitch; {
		case contains(local, p+12) || contains(local, p-12):
			e.Source.Confidence = ConfidenceOctave
		case contains(local, p+4) || contains(local, p-4):
			e.Source.Confidence = ConfidenceNeighbour
		}
	}
}

func contains(xs []int64, v int64) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}

	return false
}

package score

import (
	"fmt"
	"math"
	"sort"
)

// RoundTo is the onset quantum used when ordering notes: onsets closer than
// this are treated as simultaneous and ordered by pitch instead.
const RoundTo = 0.1

var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Note is a discretised pitch event of a score or a performance.
type Note struct {
	ID         int     `json:"id"`
	Pitch      int64   `json:"pitch"`
	StartTime  float64 `json:"start_time"`
	Duration   float64 `json:"duration"`
	Velocity   int     `json:"velocity"`
	Page       int     `json:"page"`
	Track      int     `json:"track"`
	Confidence int     `json:"confidence,omitempty"`
}

// String renders the note as "C4@1.50s".
func (n Note) String() string {
	return fmt.Sprintf("%s@%.2fs", PitchName(n.Pitch), n.StartTime)
}

// PitchName returns the scientific pitch name of a MIDI pitch (60 → "C4").
func PitchName(p int64) string {
	pc := p % 12
	if pc < 0 {
		pc += 12
	}
	octave := p/12 - 1
	if p < 0 && p%12 != 0 {
		octave--
	}

	return fmt.Sprintf("%s%d", pitchClasses[pc], octave)
}

// SortNotes orders notes by (Page, quantised StartTime, Pitch) and renumbers
// ID by position. The sort is stable and happens in place.
func SortNotes(notes []Note) {
	sort.SliceStable(notes, func(a, b int) bool {
		na, nb := notes[a], notes[b]
		if na.Page != nb.Page {
			return na.Page < nb.Page
		}
		if qa, qb := quantize(na.StartTime), quantize(nb.StartTime); qa != qb {
			return qa < qb
		}

		return na.Pitch < nb.Pitch
	})
	for i := range notes {
		notes[i].ID = i
	}
}

// quantize maps an onset to its RoundTo bucket, rounding half to even.
func quantize(t float64) float64 {
	return math.RoundToEven(t / RoundTo)
}

// Pitches extracts the pitch column of notes.
func Pitches(notes []Note) []int64 {
	out := make([]int64, len(notes))
	for i, n := range notes {
		out[i] = n.Pitch
	}

	return out
}

// StartTimes extracts the onset column of notes.
func StartTimes(notes []Note) []float64 {
	out := make([]float64, len(notes))
	for i, n := range notes {
		out[i] = n.StartTime
	}

	return out
}

package score_test

import (
	"testing"

	"github.com/katalvlaran/notealign/score"
	"github.com/stretchr/testify/assert"
)

func TestPitchName(t *testing.T) {
	cases := map[int64]string{
		60:  "C4",
		61:  "C#4",
		69:  "A4",
		21:  "A0",
		0:   "C-1",
		127: "G9",
	}
	for p, want := range cases {
		assert.Equal(t, want, score.PitchName(p), "pitch %d", p)
	}
}

func TestNote_String(t *testing.T) {
	assert.Equal(t, "E4@1.50s", score.Note{Pitch: 64, StartTime: 1.5}.String())
}

// TestSortNotes checks page-first ordering, onset bucketing and renumbering.
func TestSortNotes(t *testing.T) {
	notes := []score.Note{
		{ID: 10, Pitch: 50, StartTime: 0, Page: 1},
		{ID: 11, Pitch: 64, StartTime: 0.52},
		{ID: 12, Pitch: 60, StartTime: 0.48},
		{ID: 13, Pitch: 55, StartTime: 0.01},
	}
	score.SortNotes(notes)

	assert.Equal(t, []int64{55, 60, 64, 50}, score.Pitches(notes),
		"0.48 and 0.52 share a bucket and order by pitch; page 1 comes last")
	for i, n := range notes {
		assert.Equal(t, i, n.ID)
	}
}

// TestSortNotes_Stable checks that identical keys keep their input order.
func TestSortNotes_Stable(t *testing.T) {
	notes := []score.Note{
		{Pitch: 60, StartTime: 1, Velocity: 1},
		{Pitch: 60, StartTime: 1.01, Velocity: 2},
		{Pitch: 60, StartTime: 0.99, Velocity: 3},
	}
	score.SortNotes(notes)

	assert.Equal(t, []int{1, 2, 3}, []int{notes[0].Velocity, notes[1].Velocity, notes[2].Velocity})
}

func TestColumns(t *testing.T) {
	notes := []score.Note{{Pitch: 60, StartTime: 0.5}, {Pitch: 62, StartTime: 1}}

	assert.Equal(t, []int64{60, 62}, score.Pitches(notes))
	assert.Equal(t, []float64{0.5, 1}, score.StartTimes(notes))
	assert.Empty(t, score.Pitches(nil))
}

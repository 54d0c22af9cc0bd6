package score_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/katalvlaran/notealign/editdist"
	"github.com/katalvlaran/notealign/score"
	"github.com/katalvlaran/notealign/tempo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scale builds n notes one semitone apart, half a second apart.
func scale(n int) []score.Note {
	out := make([]score.Note, n)
	for i := range out {
		out[i] = score.Note{Pitch: 60 + int64(i), StartTime: 0.5 * float64(i), Duration: 0.4, Velocity: 80}
	}

	return out
}

// TestCompare_Identical checks a flawless performance.
func TestCompare_Identical(t *testing.T) {
	ref := scale(12)

	rep, err := score.Compare(context.Background(), ref, scale(12), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rep.Cost)
	assert.Empty(t, rep.Edits)
	assert.Len(t, rep.Aligned, 12)
	require.Len(t, rep.TempoSections, 1)
	assert.Equal(t, 0, rep.TempoSections[0].StartIndex)
	assert.Equal(t, 11, rep.TempoSections[0].EndIndex)
	assert.InDelta(t, 0.0, rep.UnstableRate, 1e-9)
}

// TestCompare_DeletionConfidence checks the grading of a note missing from
// the performance, depending on what sounds next to it in the reference.
func TestCompare_DeletionConfidence(t *testing.T) {
	cases := []struct {
		name    string
		missing int64
		want    int
	}{
		{"octave above a sounding note", 76, score.ConfidenceOctave},
		{"major third above a sounding note", 68, score.ConfidenceNeighbour},
		{"isolated", 90, score.ConfidenceSure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref := []score.Note{
				{Pitch: 60, StartTime: 0}, {Pitch: 62, StartTime: 0.5},
				{Pitch: 64, StartTime: 1.0}, {Pitch: tc.missing, StartTime: 1.0},
				{Pitch: 65, StartTime: 1.5}, {Pitch: 67, StartTime: 2.0},
			}
			perf := []score.Note{
				{Pitch: 60, StartTime: 0.02}, {Pitch: 62, StartTime: 0.51},
				{Pitch: 64, StartTime: 1.01}, {Pitch: 65, StartTime: 1.52},
				{Pitch: 67, StartTime: 2.01},
			}

			rep, err := score.Compare(context.Background(), ref, perf, nil)
			require.NoError(t, err)
			assert.Equal(t, editdist.OpCost, rep.Cost)
			require.Len(t, rep.Edits, 1)

			e := rep.Edits[0]
			assert.Equal(t, editdist.Deletion, e.Op)
			assert.Nil(t, e.Target)
			require.NotNil(t, e.Source)
			assert.Equal(t, tc.missing, e.Source.Pitch)
			assert.Equal(t, 3, e.Source.ID, "indices refer to the sorted reference")
			assert.Equal(t, 3, e.Pos)
			assert.Equal(t, 3, e.TPos)
			assert.Equal(t, tc.want, e.Source.Confidence)
		})
	}
}

// TestCompare_SubstitutionConfidence checks that non-deletions stay sure.
func TestCompare_SubstitutionConfidence(t *testing.T) {
	ref := scale(10)
	perf := scale(10)
	perf[4].Pitch = 40

	rep, err := score.Compare(context.Background(), ref, perf, nil)
	require.NoError(t, err)
	require.NotEmpty(t, rep.Edits)
	for _, e := range rep.Edits {
		require.NotNil(t, e.Source)
		assert.Equal(t, score.ConfidenceSure, e.Source.Confidence)
	}
}

// TestCompare_InsertionIntoEmptyReference checks edits with no source note.
func TestCompare_InsertionIntoEmptyReference(t *testing.T) {
	rep, err := score.Compare(context.Background(), nil, scale(2), nil)
	require.NoError(t, err)
	assert.Equal(t, 2*editdist.OpCost, rep.Cost)
	require.Len(t, rep.Edits, 2)
	for i, e := range rep.Edits {
		assert.Equal(t, editdist.Insertion, e.Op)
		assert.Nil(t, e.Source)
		require.NotNil(t, e.Target)
		assert.Equal(t, int64(60+i), e.Target.Pitch)
	}
	assert.Empty(t, rep.TempoSections)
}

// TestCompare_InputsUntouched checks that Compare sorts copies.
func TestCompare_InputsUntouched(t *testing.T) {
	ref := []score.Note{{ID: 9, Pitch: 64, StartTime: 1}, {ID: 8, Pitch: 60, StartTime: 0}}
	perf := []score.Note{{ID: 7, Pitch: 60, StartTime: 0}}

	rep, err := score.Compare(context.Background(), ref, perf, nil)
	require.NoError(t, err)
	assert.Equal(t, 9, ref[0].ID)
	assert.Equal(t, int64(64), ref[0].Pitch)
	assert.Equal(t, int64(60), rep.Reference[0].Pitch)
	assert.Equal(t, 0, rep.Reference[0].ID)
}

// TestCompare_TooManyNotes checks the size bound.
func TestCompare_TooManyNotes(t *testing.T) {
	opts := score.DefaultOptions()
	opts.MaxNotes = 3

	_, err := score.Compare(context.Background(), scale(2), scale(2), opts)
	assert.ErrorIs(t, err, score.ErrTooManyNotes)

	opts.MaxNotes = 4
	_, err = score.Compare(context.Background(), scale(2), scale(2), opts)
	assert.NoError(t, err)
}

// TestCompare_Cancelled checks that a cancelled context stops the pipeline.
func TestCompare_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := score.Compare(ctx, scale(4), scale(4), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rep)
}

// TestCompare_TempoParamsForwarded checks that invalid tempo params surface.
func TestCompare_TempoParamsForwarded(t *testing.T) {
	opts := score.DefaultOptions()
	opts.Tempo = &tempo.Params{MinSegmentLength: 0, Penalty: 1}

	_, err := score.Compare(context.Background(), scale(4), scale(4), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, tempo.ErrBadParams)
	assert.Contains(t, err.Error(), "score: tempo:")
}

// TestCompare_StrictTempoAcceptsAlignment checks that every aligned pair,
// moves included, points at real notes, so strict tempo analysis accepts the
// aligner's output.
func TestCompare_StrictTempoAcceptsAlignment(t *testing.T) {
	notes := func(pitches ...int64) []score.Note {
		out := make([]score.Note, len(pitches))
		for i, p := range pitches {
			out[i] = score.Note{Pitch: p, StartTime: 0.5 * float64(i)}
		}

		return out
	}
	ref := notes(3, 3, 1, 0, 2, 2, 2)
	perf := notes(1, 2, 2)

	opts := score.DefaultOptions()
	opts.Tempo = tempo.DefaultParams()
	opts.Tempo.Strict = true

	rep, err := score.Compare(context.Background(), ref, perf, opts)
	require.NoError(t, err)
	require.NotEmpty(t, rep.Aligned)
	for _, p := range rep.Aligned {
		require.Less(t, p.Source, len(rep.Reference))
		require.Less(t, p.Target, len(rep.Performed))
		assert.Equal(t, rep.Reference[p.Source].Pitch, rep.Performed[p.Target].Pitch, "pair %v", p)
	}
}

// TestCompare_FreeInsertionForwarded checks that the free range reaches the aligner.
func TestCompare_FreeInsertionForwarded(t *testing.T) {
	opts := score.DefaultOptions()
	opts.FreeInsertion = &editdist.Range{Start: 0, End: 3}

	rep, err := score.Compare(context.Background(), nil, scale(3), opts)
	require.NoError(t, err)
	assert.Equal(t, 3*editdist.ReducedCost, rep.Cost)
}

// TestCompare_Logging checks that stage timings reach the logger.
func TestCompare_Logging(t *testing.T) {
	var buf bytes.Buffer
	opts := score.DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := score.Compare(context.Background(), scale(3), scale(3), opts)
	require.NoError(t, err)

	out := buf.String()
	for _, stage := range []string{"preprocess", "align", "postprocess", "tempo"} {
		assert.Contains(t, out, "stage="+stage)
	}
	assert.Contains(t, out, "compare finished")
}

// TestEdit_String checks the human-readable explanations.
func TestEdit_String(t *testing.T) {
	src := &score.Note{Pitch: 60, StartTime: 1}
	dst := &score.Note{Pitch: 61, StartTime: 1.25}

	assert.Equal(t, "Wrong 'C4@1.00s' → 'C#4@1.25s' at source pos 2, target pos 3.",
		score.Edit{Op: editdist.Substitution, Pos: 2, TPos: 3, Source: src, Target: dst}.String())
	assert.Equal(t, "Delete 'C4@1.00s' at source pos 2, target pos 3.",
		score.Edit{Op: editdist.Deletion, Pos: 2, TPos: 3, Source: src}.String())
	assert.Equal(t, "Insert 'C#4@1.25s' at source pos 2, target pos 3.",
		score.Edit{Op: editdist.Insertion, Pos: 2, TPos: 3, Source: src, Target: dst}.String())
}

// TestFocusWindow checks the widened page window.
func TestFocusWindow(t *testing.T) {
	notes := make([]score.Note, 50)
	for i := range notes {
		switch {
		case i < 20:
			notes[i].Page = 0
		case i < 30:
			notes[i].Page = 1
		default:
			notes[i].Page = 2
		}
	}

	assert.Equal(t, &editdist.Range{Start: 5, End: 44}, score.FocusWindow(notes, 1))
	assert.Equal(t, &editdist.Range{Start: 0, End: 34}, score.FocusWindow(notes, 0))
	assert.Equal(t, &editdist.Range{Start: 15, End: 64}, score.FocusWindow(notes, 2))
	assert.Nil(t, score.FocusWindow(notes, 7))
	assert.Nil(t, score.FocusWindow(nil, 0))
}

package score

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/notealign/editdist"
	"github.com/katalvlaran/notealign/tempo"
)

const (
	// DefaultMaxNotes bounds len(reference)+len(performed); the alignment grid
	// grows with their product.
	DefaultMaxNotes = 10000

	// NoteExtension widens a focus window on both sides, in notes.
	NoteExtension = 15
)

// ErrTooManyNotes is returned when the inputs exceed Options.MaxNotes.
var ErrTooManyNotes = errors.New("score: too many notes")

// discardLogger serves calls without Options.Logger.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Compare. A nil *Options means DefaultOptions().
//
//   - FreeInsertion — forwarded to editdist (performed-note indices).
//   - Tempo         — segmentation parameters; nil means tempo defaults.
//   - MaxNotes      — input size bound; ≤ 0 means DefaultMaxNotes.
//   - Logger        — receives per-stage timings at debug level; nil discards.
type Options struct {
	FreeInsertion *editdist.Range
	Tempo         *tempo.Params
	MaxNotes      int
	Logger        *slog.Logger
}

// DefaultOptions returns the options used when Compare receives nil.
func DefaultOptions() *Options {
	return &Options{MaxNotes: DefaultMaxNotes}
}

// Edit is an editdist.Operation resolved to notes.
//
// Source is a copy of the reference note concerned, carrying its Confidence
// grade; it is nil only for an insertion into an empty reference. Target is
// the performed note, nil for a deletion.
type Edit struct {
	Op     editdist.OpKind `json:"op"`
	Pos    int             `json:"pos"`
	TPos   int             `json:"t_pos"`
	Source *Note           `json:"source,omitempty"`
	Target *Note           `json:"target,omitempty"`
}

// String renders the edit as a one-line explanation.
func (e Edit) String() string {
	switch e.Op {
	case editdist.Substitution:
		return fmt.Sprintf("Wrong '%v' → '%v' at source pos %d, target pos %d.", e.Source, e.Target, e.Pos, e.TPos)
	case editdist.Deletion:
		return fmt.Sprintf("Delete '%v' at source pos %d, target pos %d.", e.Source, e.Pos, e.TPos)
	default:
		return fmt.Sprintf("Insert '%v' at source pos %d, target pos %d.", e.Target, e.Pos, e.TPos)
	}
}

// Report is the outcome of Compare. All indices refer to the sorted
// Reference and Performed lists it carries.
type Report struct {
	Reference     []Note          `json:"reference"`
	Performed     []Note          `json:"performed"`
	Edits         []Edit          `json:"edits"`
	Aligned       []editdist.Pair `json:"aligned"`
	Cost          int64           `json:"cost"`
	TempoSections []tempo.Section `json:"tempo_sections"`
	UnstableRate  float64         `json:"unstable_rate"`
}

// Compare aligns a performance against its reference and analyses its tempo.
//
// Stages: sort copies of both lists, align pitches, resolve and grade edits,
// segment tempo. ctx is checked between stages.
//
// Errors:
//   - ErrTooManyNotes — inputs exceed the size bound.
//   - ctx.Err()       — cancelled between stages.
//   - editdist / tempo errors, wrapped.
func Compare(ctx context.Context, reference, performed []Note, opts *Options) (*Report, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	maxNotes := opts.MaxNotes
	if maxNotes <= 0 {
		maxNotes = DefaultMaxNotes
	}
	if total := len(reference) + len(performed); total > maxNotes {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyNotes, total, maxNotes)
	}
	log := opts.Logger
	if log == nil {
		log = discardLogger
	}

	rep := &Report{}

	// Stage 1: preprocess.
	done := stage(log, "preprocess")
	rep.Reference = append([]Note(nil), reference...)
	rep.Performed = append([]Note(nil), performed...)
	SortNotes(rep.Reference)
	SortNotes(rep.Performed)
	done()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: align.
	done = stage(log, "align")
	res, err := editdist.Align(Pitches(rep.Reference), Pitches(rep.Performed),
		&editdist.Options{FreeInsertion: opts.FreeInsertion})
	done()
	if err != nil {
		return nil, fmt.Errorf("score: align: %w", err)
	}
	rep.Aligned, rep.Cost = res.Aligned, res.Cost
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 3: postprocess.
	done = stage(log, "postprocess")
	rep.Edits = resolveEdits(res.Ops, rep.Reference, rep.Performed)
	gradeConfidence(rep.Edits, newOnsetIndex(rep.Reference))
	done()
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 4: tempo.
	done = stage(log, "tempo")
	an, err := tempo.Segment(StartTimes(rep.Reference), StartTimes(rep.Performed), rep.Aligned, opts.Tempo)
	done()
	if err != nil {
		return nil, fmt.Errorf("score: tempo: %w", err)
	}
	rep.TempoSections, rep.UnstableRate = an.Sections, an.Volatility

	log.Debug("compare finished",
		slog.Int("reference", len(rep.Reference)),
		slog.Int("performed", len(rep.Performed)),
		slog.Int("edits", len(rep.Edits)),
		slog.Int64("cost", rep.Cost),
		slog.Int("sections", len(rep.TempoSections)))

	return rep, nil
}

// stage logs the duration of a pipeline stage when the returned func runs.
func stage(log *slog.Logger, name string) func() {
	start := time.Now()

	return func() {
		log.Debug("stage finished", slog.String("stage", name), slog.Duration("took", time.Since(start)))
	}
}

// resolveEdits maps operations onto copies of the notes they name. Indices
// are clamped into the lists.
func resolveEdits(ops []editdist.Operation, ref, perf []Note) []Edit {
	edits := make([]Edit, 0, len(ops))
	for _, op := range ops {
		e := Edit{Op: op.Kind, Pos: op.Pos, TPos: op.TPos}
		e.Source = noteAt(ref, op.SourceIndex)
		if op.TargetIndex != nil {
			e.Target = noteAt(perf, *op.TargetIndex)
		}
		edits = append(edits, e)
	}

	return edits
}

// noteAt returns a copy of notes[clamp(i)], or nil for an empty list.
func noteAt(notes []Note, i int) *Note {
	if len(notes) == 0 {
		return nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(notes) {
		i = len(notes) - 1
	}
	n := notes[i]

	return &n
}

// FocusWindow returns the index range of the notes on page, widened by
// NoteExtension on both sides (the start clamped at 0). It returns nil when
// no note is on the page. The notes must already be sorted.
func FocusWindow(notes []Note, page int) *editdist.Range {
	first, last := -1, -1
	for i, n := range notes {
		if n.Page != page {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return nil
	}

	return &editdist.Range{Start: max(0, first-NoteExtension), End: last + NoteExtension}
}

// Command notealign compares a performance against its reference score and
// prints the edit script and the tempo sections.
//
//	notealign -reference ref.json -performance perf.json [-focus-page 2] [-json]
//
// Both inputs are JSON documents of the form {"notes":[{"pitch":60,"start_time":0.5}, ...]}.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/notealign/score"
	"github.com/katalvlaran/notealign/tempo"
)

// config is the parsed command line.
type config struct {
	referencePath   string
	performancePath string
	focusPage       int
	minSegment      int
	penalty         float64
	maxSegments     int
	smoothing       int
	jsonOut         bool
	verbose         bool
}

// noteFile is the on-disk note list.
type noteFile struct {
	Notes []score.Note `json:"notes"`
}

func main() {
	var cfg config
	flag.StringVar(&cfg.referencePath, "reference", "", "Reference notes JSON path")
	flag.StringVar(&cfg.performancePath, "performance", "", "Performed notes JSON path")
	flag.IntVar(&cfg.focusPage, "focus-page", -1, "Score page the player is expected on; insertions around it are discounted (-1 disables)")
	flag.IntVar(&cfg.minSegment, "min-segment", tempo.DefaultMinSegmentLength, "Minimum notes per tempo section")
	flag.Float64Var(&cfg.penalty, "penalty", tempo.DefaultPenalty, "Cost added per tempo section")
	flag.IntVar(&cfg.maxSegments, "max-segments", 0, "Maximum number of tempo sections (0 = unbounded)")
	flag.IntVar(&cfg.smoothing, "smoothing", tempo.DefaultSmoothingWindow, "Moving-average width of the tempo slope")
	flag.BoolVar(&cfg.jsonOut, "json", false, "Print the report as JSON")
	flag.BoolVar(&cfg.verbose, "verbose", false, "Log stage timings to stderr")
	flag.Parse()

	if cfg.referencePath == "" || cfg.performancePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(context.Background(), cfg, logger, os.Stdout); err != nil {
		die("%v", err)
	}
}

// run loads both note lists, compares them and writes the report to w.
func run(ctx context.Context, cfg config, logger *slog.Logger, w io.Writer) error {
	ref, err := loadNotes(cfg.referencePath)
	if err != nil {
		return fmt.Errorf("failed to read reference: %w", err)
	}
	perf, err := loadNotes(cfg.performancePath)
	if err != nil {
		return fmt.Errorf("failed to read performance: %w", err)
	}

	opts, err := buildOptions(cfg, ref, logger)
	if err != nil {
		return err
	}

	rep, err := score.Compare(ctx, ref, perf, opts)
	if err != nil {
		return err
	}
	if cfg.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("json encode failed: %w", err)
		}

		return nil
	}
	printReport(w, rep)

	return nil
}

// buildOptions turns flags into score options. The focus window is computed
// on the sorted reference, the same order Compare aligns in.
func buildOptions(cfg config, ref []score.Note, logger *slog.Logger) (*score.Options, error) {
	params := tempo.DefaultParams()
	params.MinSegmentLength = cfg.minSegment
	params.Penalty = cfg.penalty
	params.SmoothingWindow = cfg.smoothing
	if cfg.maxSegments > 0 {
		params = params.WithMaxSegments(cfg.maxSegments)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	opts := score.DefaultOptions()
	opts.Tempo = params
	opts.Logger = logger
	if cfg.focusPage >= 0 {
		sorted := append([]score.Note(nil), ref...)
		score.SortNotes(sorted)
		opts.FreeInsertion = score.FocusWindow(sorted, cfg.focusPage)
		if opts.FreeInsertion == nil {
			logger.Warn("focus page has no notes", slog.Int("page", cfg.focusPage))
		}
	}

	return opts, nil
}

// loadNotes reads a note list document.
func loadNotes(path string) ([]score.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc noteFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return doc.Notes, nil
}

func printReport(w io.Writer, rep *score.Report) {
	fmt.Fprintf(w, "Reference notes:  %d\n", len(rep.Reference))
	fmt.Fprintf(w, "Performed notes:  %d\n", len(rep.Performed))
	fmt.Fprintf(w, "Aligned pairs:    %d\n", len(rep.Aligned))
	fmt.Fprintf(w, "Cost:             %d\n", rep.Cost)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Edits (%d)\n", len(rep.Edits))
	for _, e := range rep.Edits {
		conf := 0
		if e.Source != nil {
			conf = e.Source.Confidence
		}
		fmt.Fprintf(w, "  [%d] %s\n", conf, e)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Tempo sections (%d)\n", len(rep.TempoSections))
	for _, s := range rep.TempoSections {
		fmt.Fprintf(w, "  notes %4d..%-4d  drift %+.4f s/note\n", s.StartIndex, s.EndIndex, s.Tempo)
	}
	fmt.Fprintf(w, "Unstable rate:    %.2f\n", rep.UnstableRate)
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

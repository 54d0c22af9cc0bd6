// Package score runs the note-level comparison of a performance against its
// reference: it orders both note lists, aligns their pitches with editdist,
// resolves the edit script back to notes, grades how trustworthy each
// deletion is, and segments the tempo drift with tempo.
//
// Usage:
//
//	opts := score.DefaultOptions()
//	opts.FreeInsertion = score.FocusWindow(reference, page)
//	opts.Logger = slog.Default()
//
//	rep, err := score.Compare(ctx, reference, performed, opts)
//	for _, e := range rep.Edits {
//		fmt.Println(e)
//	}
package score

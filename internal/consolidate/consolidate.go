// Package consolidate merges period files into month and year
// consolidated documents.
//
// Both consolidators share the same run shape: discover sources in
// descending period order, resolve an existing-output conflict through
// the injected Decider, build the merged document, write it atomically
// through the storage provider, and optionally delete the sources.
package consolidate

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/starford/brackets/internal/period"
	"github.com/starford/brackets/internal/storage"
)

const timestampLayout = "2006-01-02 15:04:05"

// Result describes what a consolidation run did.
type Result struct {
	// OutputPath is the consolidated file, empty when cancelled.
	OutputPath string
	// Sources are the files merged into the output.
	Sources []string
	// Deleted counts the source files removed after the write.
	Deleted int
	// DeleteFailures lists sources that could not be removed.
	DeleteFailures []string
	// Cancelled is set when the run ended at a decision point with no
	// file modified.
	Cancelled bool
}

// descending returns entries sorted by (year, month, week) from newest
// to oldest.
func descending(entries []period.Entry) []period.Entry {
	out := make([]period.Entry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Identity, out[j].Identity
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.Week > b.Week
	})
	return out
}

// dropTitle removes the first line and trims the remainder.
func dropTitle(text string) string {
	_, rest, found := strings.Cut(text, "\n")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}

// readSource reads one source file, degrading an unreadable file to an
// empty slot with a warning instead of failing the run.
func readSource(store storage.Provider, logger *slog.Logger, path string) (string, bool) {
	data, err := store.Read(path)
	if err != nil {
		logger.Warn("source unreadable, leaving slot empty",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return "", false
	}
	return string(data), true
}

// deleteSources removes each path independently. One failure is
// recorded and does not stop the rest.
func deleteSources(store storage.Provider, logger *slog.Logger, paths []string, res *Result) {
	for _, p := range paths {
		if err := store.Delete(p); err != nil {
			logger.Warn("delete source failed",
				slog.String("path", p),
				slog.String("error", err.Error()))
			res.DeleteFailures = append(res.DeleteFailures, p)
			continue
		}
		res.Deleted++
	}
}

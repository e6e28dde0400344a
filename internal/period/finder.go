package period

import (
	"path/filepath"
	"sort"

	"github.com/starford/brackets/internal/storage"
)

// Entry pairs a vault path with its parsed identity.
type Entry struct {
	Path     string
	Identity Identity
}

// Finder locates period files in the vault through the storage provider.
type Finder struct {
	store storage.Provider
}

// NewFinder creates a Finder over the given provider.
func NewFinder(store storage.Provider) *Finder {
	return &Finder{store: store}
}

// List returns every file of the given kind, ascending by
// (year, month, week).
func (f *Finder) List(kind Kind) ([]Entry, error) {
	metas, err := f.store.List("")
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, m := range metas {
		id, ok := ParseKind(filepath.Base(m.Path), kind)
		if !ok {
			continue
		}
		out = append(out, Entry{Path: m.Path, Identity: id})
	}

	sort.Slice(out, func(i, j int) bool {
		return less(out[i].Identity, out[j].Identity)
	})
	return out, nil
}

// MostRecent returns the calendar-latest file of the given kind, or ""
// when none exists. Latest means maximal (year, month, week), not the
// newest modification time.
func (f *Finder) MostRecent(kind Kind) (string, error) {
	entries, err := f.List(kind)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}
	return entries[len(entries)-1].Path, nil
}

func less(a, b Identity) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Week < b.Week
}

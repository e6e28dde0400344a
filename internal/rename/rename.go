// Package rename implements global search and replace across the
// vault, split into a pure planning step and a separate apply step so
// callers can show the full set of changes before anything is touched.
package rename

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/starford/brackets/internal/storage"
)

// Change is one planned modification of a single file.
type Change struct {
	// Path is the current vault-relative path.
	Path string
	// Occurrences counts content replacements within the file.
	Occurrences int
	// NewPath is set when the filename itself contains the search text.
	NewPath string
	// Conflict is set when NewPath already exists; the rename part of
	// this change is skipped on apply.
	Conflict bool
}

// Plan is the complete set of changes a search/replace would make.
type Plan struct {
	Search  string
	Replace string
	Changes []Change
}

// TotalReplacements sums content replacements across all changes.
func (p *Plan) TotalReplacements() int {
	n := 0
	for _, c := range p.Changes {
		n += c.Occurrences
	}
	return n
}

// Renames counts changes that move a file.
func (p *Plan) Renames() int {
	n := 0
	for _, c := range p.Changes {
		if c.NewPath != "" && !c.Conflict {
			n++
		}
	}
	return n
}

// Manager plans and applies global replacements over the vault.
type Manager struct {
	store  storage.Provider
	logger *slog.Logger
}

// New creates a rename manager.
func New(store storage.Provider, logger *slog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// Plan scans every vault file and returns the changes replacing search
// with replace would make, in both contents and filenames. Nothing is
// modified. An empty search text is rejected.
func (m *Manager) Plan(search, replace string) (*Plan, error) {
	if search == "" {
		return nil, fmt.Errorf("rename: empty search text")
	}

	metas, err := m.store.List("")
	if err != nil {
		return nil, err
	}

	plan := &Plan{Search: search, Replace: replace}
	for _, meta := range metas {
		change := Change{Path: meta.Path}

		data, err := m.store.Read(meta.Path)
		if err != nil {
			m.logger.Warn("skipping unreadable file",
				slog.String("path", meta.Path),
				slog.String("error", err.Error()))
			continue
		}
		change.Occurrences = strings.Count(string(data), search)

		base := filepath.Base(meta.Path)
		if strings.Contains(base, search) {
			newBase := strings.ReplaceAll(base, search, replace)
			newPath := filepath.Join(filepath.Dir(meta.Path), newBase)
			if newPath != meta.Path {
				change.NewPath = newPath
				change.Conflict = m.store.Exists(newPath)
			}
		}

		if change.Occurrences > 0 || change.NewPath != "" {
			plan.Changes = append(plan.Changes, change)
		}
	}
	return plan, nil
}

// Applied summarizes what Apply actually did.
type Applied struct {
	FilesModified int
	Replacements  int
	FilesRenamed  int
	Skipped       []string
}

// Apply executes a plan: content rewrites first, then renames. A
// conflicting rename is skipped and reported; one failing file does
// not stop the rest.
func (m *Manager) Apply(plan *Plan) (*Applied, error) {
	out := &Applied{}

	for _, c := range plan.Changes {
		if c.Occurrences == 0 {
			continue
		}
		data, err := m.store.Read(c.Path)
		if err != nil {
			m.logger.Warn("content rewrite failed",
				slog.String("path", c.Path),
				slog.String("error", err.Error()))
			out.Skipped = append(out.Skipped, c.Path)
			continue
		}
		updated := strings.ReplaceAll(string(data), plan.Search, plan.Replace)
		if err := m.store.Write(c.Path, []byte(updated)); err != nil {
			m.logger.Warn("content rewrite failed",
				slog.String("path", c.Path),
				slog.String("error", err.Error()))
			out.Skipped = append(out.Skipped, c.Path)
			continue
		}
		out.FilesModified++
		out.Replacements += c.Occurrences
	}

	for _, c := range plan.Changes {
		if c.NewPath == "" {
			continue
		}
		// Re-check at apply time; the vault may have changed since the
		// plan was built.
		if c.Conflict || m.store.Exists(c.NewPath) {
			m.logger.Warn("rename target exists, skipping",
				slog.String("path", c.Path),
				slog.String("target", c.NewPath))
			out.Skipped = append(out.Skipped, c.Path)
			continue
		}
		if err := m.store.Move(c.Path, c.NewPath); err != nil {
			m.logger.Warn("rename failed",
				slog.String("path", c.Path),
				slog.String("error", err.Error()))
			out.Skipped = append(out.Skipped, c.Path)
			continue
		}
		out.FilesRenamed++
	}

	m.logger.Info("search/replace applied",
		slog.String("search", plan.Search),
		slog.String("replace", plan.Replace),
		slog.Int("files_modified", out.FilesModified),
		slog.Int("replacements", out.Replacements),
		slog.Int("files_renamed", out.FilesRenamed))
	return out, nil
}

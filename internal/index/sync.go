package index

import (
	"log/slog"
	"path/filepath"

	"github.com/starford/brackets/internal/bitacora"
	"github.com/starford/brackets/internal/checksum"
	"github.com/starford/brackets/internal/markdown"
	"github.com/starford/brackets/internal/period"
	"github.com/starford/brackets/internal/storage"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed period files are parsed and upserted
//   - files removed from disk are deleted from the index
//
// Files whose names do not match any period pattern are ignored.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		if _, _, err := period.Parse(filepath.Base(m.Path)); err != nil {
			continue
		}
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeletePeriod(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexFile parses one period file and upserts it into the DB.
func IndexFile(db *DB, path string, data []byte) error {
	kind, id, err := period.Parse(filepath.Base(path))
	if err != nil {
		return err
	}

	text := string(data)
	row := PeriodRow{
		Path:     path,
		Kind:     kind.String(),
		Year:     id.Year,
		Month:    id.Month,
		Week:     id.Week,
		Title:    markdown.ExtractTitle(text),
		Checksum: checksum.Sum(data),
	}
	if kind == period.Weekly {
		doc := bitacora.ParseDocument(text)
		row.Weight = doc.Weight
		row.Pending = len(bitacora.PendingTasks(doc))
	}
	return db.UpsertPeriod(row, text)
}

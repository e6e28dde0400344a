package api

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/brackets/internal/apperr"
	"github.com/starford/brackets/internal/bitacora"
	"github.com/starford/brackets/internal/checksum"
	"github.com/starford/brackets/internal/index"
	"github.com/starford/brackets/internal/markdown"
	"github.com/starford/brackets/internal/period"
	"github.com/starford/brackets/internal/storage"
)

// FileDetail is the full representation of one period file.
type FileDetail struct {
	Path     string   `json:"path"`
	Kind     string   `json:"kind"`
	Year     int      `json:"year"`
	Month    int      `json:"month,omitempty"`
	Week     int      `json:"week,omitempty"`
	Title    string   `json:"title"`
	Weight   float64  `json:"weight,omitempty"`
	Pending  []string `json:"pending_tasks"`
	Content  string   `json:"content"`
	Checksum string   `json:"checksum"`
}

// PeriodListItem is a lightweight item in a list response.
type PeriodListItem struct {
	Path      string    `json:"path"`
	Kind      string    `json:"kind"`
	Year      int       `json:"year"`
	Month     int       `json:"month,omitempty"`
	Week      int       `json:"week,omitempty"`
	Title     string    `json:"title"`
	Weight    float64   `json:"weight,omitempty"`
	Pending   int       `json:"pending"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service coordinates storage and index reads for the HTTP API. The
// API is read-only; files change through the CLI flows.
type Service struct {
	store storage.Provider
	db    index.PeriodIndex
}

// NewService creates a new API service.
func NewService(store storage.Provider, db index.PeriodIndex) *Service {
	return &Service{store: store, db: db}
}

// GetFile reads one vault file and enriches it with parsed period
// information.
func (s *Service) GetFile(_ context.Context, path string) (*FileDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	text := string(data)
	detail := &FileDetail{
		Path:     path,
		Title:    markdown.ExtractTitle(text),
		Pending:  []string{},
		Content:  text,
		Checksum: checksum.Sum(data),
	}

	kind, id, err := period.Parse(filepath.Base(path))
	if err == nil {
		detail.Kind = kind.String()
		detail.Year = id.Year
		detail.Month = id.Month
		detail.Week = id.Week
		if kind == period.Weekly {
			doc := bitacora.ParseDocument(text)
			detail.Weight = doc.Weight
			detail.Pending = nonNilSlice(bitacora.PendingTasks(doc))
		}
	}
	return detail, nil
}

// ListPeriods returns indexed period files, optionally filtered by
// kind, newest first.
func (s *Service) ListPeriods(_ context.Context, kind string, limit, offset int) ([]PeriodListItem, int, error) {
	rows, total, err := s.db.ListPeriods(kind, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]PeriodListItem, len(rows))
	for i, r := range rows {
		items[i] = PeriodListItem{
			Path:      r.Path,
			Kind:      r.Kind,
			Year:      r.Year,
			Month:     r.Month,
			Week:      r.Week,
			Title:     r.Title,
			Weight:    r.Weight,
			Pending:   r.Pending,
			Checksum:  r.Checksum,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search runs a full-text query against the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

func nonNilSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Package journal coordinates period generation: finding the most
// recent file of a kind, carrying content forward, and writing the
// next period file.
package journal

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/brackets/internal/apperr"
	"github.com/starford/brackets/internal/bitacora"
	"github.com/starford/brackets/internal/period"
	"github.com/starford/brackets/internal/storage"
)

// Service generates weekly and monthly files from the most recent
// period of each kind.
type Service struct {
	store     storage.Provider
	finder    *period.Finder
	locations bitacora.LocationResolver
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a journal service. locations resolves work
// locations for the generated day headings.
func NewService(store storage.Provider, locations bitacora.LocationResolver, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		finder:    period.NewFinder(store),
		locations: locations,
		logger:    logger,
		now:       time.Now,
	}
}

// ConflictError reports a generation target that already exists. It
// unwraps to apperr.ErrAlreadyExists; callers that want the filename
// use errors.As.
type ConflictError struct {
	Filename string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Filename, apperr.ErrAlreadyExists)
}

func (e *ConflictError) Unwrap() error { return apperr.ErrAlreadyExists }

// WeekResult describes a generated weekly file.
type WeekResult struct {
	Filename     string
	Identity     period.Identity
	Dates        []time.Time
	CarriedTasks int
	Weight       float64
	Summary      string
}

// NextWeek creates the weekly file following the most recent one:
// pending tasks carry over, the next week's dates come from the
// document's day numbers, and the new identity from those dates.
//
// weight 0 records no weight. When the target file already exists and
// overwrite is false the result is a *ConflictError; the caller
// decides whether to retry with overwrite set.
func (s *Service) NextWeek(weight float64, overwrite bool) (*WeekResult, error) {
	recent, err := s.finder.MostRecent(period.Weekly)
	if err != nil {
		return nil, err
	}
	if recent == "" {
		return nil, fmt.Errorf("weekly: %w", apperr.ErrNoSources)
	}

	id, ok := period.ParseKind(recent, period.Weekly)
	if !ok {
		return nil, fmt.Errorf("weekly: %q: %w", recent, apperr.ErrNotAPeriodFile)
	}

	data, err := s.store.Read(recent)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", recent, err)
	}
	doc := bitacora.ParseDocument(string(data))
	tasks := bitacora.PendingTasks(doc)
	dates := bitacora.NextWeekDates(doc, s.now())

	next := period.NextIdentity(id.Week, dates[0])
	filename := next.Filename(period.Weekly)

	if !overwrite && s.store.Exists(filename) {
		return nil, &ConflictError{Filename: filename}
	}

	content := bitacora.WeeklyContent(tasks, next.Week, weight, dates, s.locations)
	if err := s.store.Write(filename, []byte(content)); err != nil {
		return nil, fmt.Errorf("write %s: %w", filename, err)
	}

	s.logger.Info("weekly file created",
		slog.String("source", recent),
		slog.String("filename", filename),
		slog.Int("week", next.Week),
		slog.Int("carried_tasks", len(tasks)))

	return &WeekResult{
		Filename:     filename,
		Identity:     next,
		Dates:        dates,
		CarriedTasks: len(tasks),
		Weight:       weight,
		Summary:      bitacora.WeekSummary(next.Week, dates, len(tasks), weight, s.locations),
	}, nil
}

// MonthResult describes a generated monthly-topics file.
type MonthResult struct {
	Filename string
	Identity period.Identity
}

// NextMonthlyTopics creates the monthly-topics file for the month
// after the most recent one. Completed tasks are stripped from the
// carried content and the title rewritten for the new month.
func (s *Service) NextMonthlyTopics(overwrite bool) (*MonthResult, error) {
	recent, err := s.finder.MostRecent(period.MonthlyTopics)
	if err != nil {
		return nil, err
	}
	if recent == "" {
		return nil, fmt.Errorf("monthly topics: %w", apperr.ErrNoSources)
	}

	id, ok := period.ParseKind(recent, period.MonthlyTopics)
	if !ok {
		return nil, fmt.Errorf("monthly topics: %q: %w", recent, apperr.ErrNotAPeriodFile)
	}

	data, err := s.store.Read(recent)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", recent, err)
	}

	next := period.Identity{Year: id.Year, Month: id.Month + 1}
	if next.Month > 12 {
		next.Month = 1
		next.Year++
	}
	filename := next.Filename(period.MonthlyTopics)

	if !overwrite && s.store.Exists(filename) {
		return nil, &ConflictError{Filename: filename}
	}

	content := bitacora.MonthlyTopicsContent(next.Month, next.Year, string(data))
	if err := s.store.Write(filename, []byte(content)); err != nil {
		return nil, fmt.Errorf("write %s: %w", filename, err)
	}

	s.logger.Info("monthly topics created",
		slog.String("source", recent),
		slog.String("filename", filename))

	return &MonthResult{Filename: filename, Identity: next}, nil
}

package journal

import (
	"fmt"
	"time"

	"github.com/starford/brackets/internal/apperr"
	"github.com/starford/brackets/internal/bitacora"
	"github.com/starford/brackets/internal/markdown"
	"github.com/starford/brackets/internal/period"
)

// Analysis is the parsed view of one weekly file, for the inspect
// command and the debugging API.
type Analysis struct {
	Filename      string          `json:"filename"`
	Identity      period.Identity `json:"identity"`
	Title         string          `json:"title"`
	Weight        float64         `json:"weight,omitempty"`
	PendingTasks  []string        `json:"pending_tasks"`
	PendingByDay  []string        `json:"pending_by_day"`
	DayNumbers    []int           `json:"day_numbers"`
	NextWeekDates []time.Time     `json:"next_week_dates"`
	HeadingCounts map[int]int     `json:"heading_counts"`
}

// Inspect parses one weekly file and reports everything the generator
// would derive from it.
func (s *Service) Inspect(filename string) (*Analysis, error) {
	id, ok := period.ParseKind(filename, period.Weekly)
	if !ok {
		return nil, fmt.Errorf("inspect: %q: %w", filename, apperr.ErrNotAPeriodFile)
	}

	data, err := s.store.Read(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	text := string(data)
	doc := bitacora.ParseDocument(text)

	return &Analysis{
		Filename:      filename,
		Identity:      id,
		Title:         markdown.ExtractTitle(text),
		Weight:        doc.Weight,
		PendingTasks:  bitacora.PendingTasks(doc),
		PendingByDay:  bitacora.DailyPendingByDay(doc),
		DayNumbers:    doc.DayNumbers(),
		NextWeekDates: bitacora.NextWeekDates(doc, s.now()),
		HeadingCounts: markdown.CountHeadingsByLevel(text),
	}, nil
}

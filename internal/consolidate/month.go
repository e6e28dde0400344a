package consolidate

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/starford/brackets/internal/apperr"
	"github.com/starford/brackets/internal/bitacora"
	"github.com/starford/brackets/internal/markdown"
	"github.com/starford/brackets/internal/period"
	"github.com/starford/brackets/internal/storage"
)

// Month merges the weekly files of one month, plus the optional
// monthly-topics file, into a [YYYY][MM].md document.
type Month struct {
	store  storage.Provider
	finder *period.Finder
	logger *slog.Logger
	decide Decider
	now    func() time.Time
}

// NewMonth creates a month consolidator.
func NewMonth(store storage.Provider, logger *slog.Logger, decide Decider) *Month {
	return &Month{
		store:  store,
		finder: period.NewFinder(store),
		logger: logger,
		decide: decide,
		now:    time.Now,
	}
}

// Run consolidates (year, month). With zero weekly files and no
// monthly-topics file it returns apperr.ErrNoSources.
func (m *Month) Run(year, month int) (*Result, error) {
	weekly, err := m.weeklySources(year, month)
	if err != nil {
		return nil, err
	}

	topicsName := period.Identity{Year: year, Month: month}.Filename(period.MonthlyTopics)
	hasTopics := m.store.Exists(topicsName)

	if len(weekly) == 0 && !hasTopics {
		return nil, fmt.Errorf("%d-%02d: %w", year, month, apperr.ErrNoSources)
	}

	sources := make([]string, 0, len(weekly)+1)
	for _, e := range weekly {
		sources = append(sources, e.Path)
	}
	if hasTopics {
		sources = append(sources, topicsName)
	}

	out := period.Identity{Year: year, Month: month}.Filename(period.MonthConsolidated)
	if m.store.Exists(out) {
		decision, err := m.decide.ExistingOutput(out)
		if err != nil {
			return nil, err
		}
		switch decision {
		case DeleteSourcesOnly:
			res := &Result{OutputPath: out, Sources: sources}
			ok, err := m.decide.ConfirmDelete(sources)
			if err != nil {
				return nil, err
			}
			if !ok {
				res.Cancelled = true
				return res, nil
			}
			deleteSources(m.store, m.logger, sources, res)
			return res, nil
		case Regenerate:
			// Fall through to the rebuild.
		default:
			return &Result{Cancelled: true}, nil
		}
	}

	content := m.build(year, month, weekly, topicsName, hasTopics)
	if err := m.store.Write(out, []byte(content)); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	m.logger.Info("month consolidated",
		slog.Int("year", year),
		slog.Int("month", month),
		slog.String("output", out),
		slog.Int("sources", len(sources)))

	res := &Result{OutputPath: out, Sources: sources}
	ok, err := m.decide.ConfirmDelete(sources)
	if err != nil {
		return nil, err
	}
	if ok {
		deleteSources(m.store, m.logger, sources, res)
	}
	return res, nil
}

// weeklySources lists the weekly files of (year, month), newest week
// first.
func (m *Month) weeklySources(year, month int) ([]period.Entry, error) {
	all, err := m.finder.List(period.Weekly)
	if err != nil {
		return nil, err
	}
	var matched []period.Entry
	for _, e := range all {
		if e.Identity.Year == year && e.Identity.Month == month {
			matched = append(matched, e)
		}
	}
	return descending(matched), nil
}

func (m *Month) build(year, month int, weekly []period.Entry, topicsName string, hasTopics bool) string {
	parts := []string{
		fmt.Sprintf("# %s %s - %d", bitacora.SeasonEmoji(month), bitacora.MonthName(month), year),
		"",
		fmt.Sprintf("> Consolidado del mes %02d/%d", month, year),
		fmt.Sprintf("> Generado el %s", m.now().Format(timestampLayout)),
		"",
		"---",
		"",
	}

	if hasTopics {
		parts = append(parts, "## 📋 Temas Mensuales", "")
		if text, ok := readSource(m.store, m.logger, topicsName); ok {
			parts = append(parts, dropTitle(text), "", "---", "")
		}
	}

	for _, e := range weekly {
		parts = append(parts, fmt.Sprintf("## 🗓️ Semana %02d", e.Identity.Week), "")
		if text, ok := readSource(m.store, m.logger, e.Path); ok {
			shifted := markdown.ShiftHeadings(text, 1, true)
			parts = append(parts, strings.TrimSpace(shifted), "", "---", "")
		}
	}

	return strings.Join(parts, "\n")
}

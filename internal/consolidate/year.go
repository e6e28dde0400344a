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

// Year merges the month-consolidated files of one year, plus the
// optional year-topics file, into a [YYYY].md document.
//
// Month sources already carry a generated metadata header, so each one
// passes through markdown.StripLeadingMetadata before embedding to
// avoid nesting metadata twice.
type Year struct {
	store  storage.Provider
	finder *period.Finder
	logger *slog.Logger
	decide Decider
	now    func() time.Time
}

// NewYear creates a year consolidator.
func NewYear(store storage.Provider, logger *slog.Logger, decide Decider) *Year {
	return &Year{
		store:  store,
		finder: period.NewFinder(store),
		logger: logger,
		decide: decide,
		now:    time.Now,
	}
}

// Run consolidates one year. With zero month-consolidated files it
// returns apperr.ErrNoSources; month-level consolidation has to run
// first.
func (y *Year) Run(year int) (*Result, error) {
	months, err := y.monthSources(year)
	if err != nil {
		return nil, err
	}
	if len(months) == 0 {
		return nil, fmt.Errorf("%d: %w", year, apperr.ErrNoSources)
	}

	topicsName := period.Identity{Year: year}.Filename(period.YearTopics)
	hasTopics := y.store.Exists(topicsName)

	// Only the month files are deleted afterwards; the year-topics
	// file stays.
	sources := make([]string, 0, len(months))
	for _, e := range months {
		sources = append(sources, e.Path)
	}

	out := period.Identity{Year: year}.Filename(period.YearConsolidated)
	if y.store.Exists(out) {
		decision, err := y.decide.ExistingOutput(out)
		if err != nil {
			return nil, err
		}
		switch decision {
		case DeleteSourcesOnly:
			res := &Result{OutputPath: out, Sources: sources}
			ok, err := y.decide.ConfirmDelete(sources)
			if err != nil {
				return nil, err
			}
			if !ok {
				res.Cancelled = true
				return res, nil
			}
			deleteSources(y.store, y.logger, sources, res)
			return res, nil
		case Regenerate:
		default:
			return &Result{Cancelled: true}, nil
		}
	}

	content := y.build(year, months, topicsName, hasTopics)
	if err := y.store.Write(out, []byte(content)); err != nil {
		return nil, fmt.Errorf("write %s: %w", out, err)
	}
	y.logger.Info("year consolidated",
		slog.Int("year", year),
		slog.String("output", out),
		slog.Int("sources", len(sources)))

	res := &Result{OutputPath: out, Sources: sources}
	ok, err := y.decide.ConfirmDelete(sources)
	if err != nil {
		return nil, err
	}
	if ok {
		deleteSources(y.store, y.logger, sources, res)
	}
	return res, nil
}

// monthSources lists the month-consolidated files of year, newest
// month first. Only months 1..12 qualify.
func (y *Year) monthSources(year int) ([]period.Entry, error) {
	all, err := y.finder.List(period.MonthConsolidated)
	if err != nil {
		return nil, err
	}
	var matched []period.Entry
	for _, e := range all {
		if e.Identity.Year == year && e.Identity.Month >= 1 && e.Identity.Month <= 12 {
			matched = append(matched, e)
		}
	}
	return descending(matched), nil
}

func (y *Year) build(year int, months []period.Entry, topicsName string, hasTopics bool) string {
	parts := []string{
		fmt.Sprintf("# 📅 Año %d", year),
		"",
		fmt.Sprintf("> Consolidado de todo el año %d", year),
		fmt.Sprintf("> Generado el %s", y.now().Format(timestampLayout)),
		"",
		"---",
		"",
	}

	if hasTopics {
		parts = append(parts, "## 📅 Temas del Año", "")
		if text, ok := readSource(y.store, y.logger, topicsName); ok {
			parts = append(parts, dropTitle(text), "", "---", "")
		}
	}

	for _, e := range months {
		parts = append(parts, fmt.Sprintf("## 🗓️ %s", bitacora.MonthName(e.Identity.Month)), "")
		if text, ok := readSource(y.store, y.logger, e.Path); ok {
			cleaned := markdown.StripLeadingMetadata(text)
			shifted := markdown.ShiftHeadings(cleaned, 1, false)
			parts = append(parts, strings.TrimSpace(shifted), "", "---", "")
		}
	}

	return strings.Join(parts, "\n")
}

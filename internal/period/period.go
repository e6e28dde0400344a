// Package period maps (year, month, week) identities to and from the
// bracketed filename convention, and locates period files in the vault.
//
// Recognized filenames, all in one flat directory:
//
//	[YYYY][MM]WeekWW.md      weekly bitácora
//	[YYYY][MM]MonthTopics.md monthly topics
//	[YYYY][00]YearTopics.md  year topics
//	[YYYY][MM].md            month consolidated
//	[YYYY].md                year consolidated
package period

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/starford/brackets/internal/apperr"
)

// Kind identifies one of the five period file types.
type Kind int

const (
	Weekly Kind = iota
	MonthlyTopics
	YearTopics
	MonthConsolidated
	YearConsolidated
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case Weekly:
		return "weekly"
	case MonthlyTopics:
		return "monthly-topics"
	case YearTopics:
		return "year-topics"
	case MonthConsolidated:
		return "month-consolidated"
	case YearConsolidated:
		return "year-consolidated"
	default:
		return "unknown"
	}
}

// MaxWeeksPerYear is the fixed wrap point for the week counter. The
// original convention treats every year as 52 weeks; ISO week-53 years
// are a known simplification.
const MaxWeeksPerYear = 52

// Identity identifies a weekly or monthly file. Week is 0 for kinds
// without a week component; Month is 0 for year-level kinds.
type Identity struct {
	Year  int
	Month int
	Week  int
}

var kindPatterns = map[Kind]*regexp.Regexp{
	Weekly:            regexp.MustCompile(`^\[(\d{4})\]\[(\d{2})\]Week(\d{2})\.md$`),
	MonthlyTopics:     regexp.MustCompile(`^\[(\d{4})\]\[(\d{2})\]MonthTopics\.md$`),
	YearTopics:        regexp.MustCompile(`^\[(\d{4})\]\[00\]YearTopics\.md$`),
	MonthConsolidated: regexp.MustCompile(`^\[(\d{4})\]\[(\d{2})\]\.md$`),
	YearConsolidated:  regexp.MustCompile(`^\[(\d{4})\]\.md$`),
}

// Filename renders the canonical filename for the identity under the
// given kind, using fixed zero-padded templates.
func (id Identity) Filename(kind Kind) string {
	switch kind {
	case Weekly:
		return fmt.Sprintf("[%04d][%02d]Week%02d.md", id.Year, id.Month, id.Week)
	case MonthlyTopics:
		return fmt.Sprintf("[%04d][%02d]MonthTopics.md", id.Year, id.Month)
	case YearTopics:
		return fmt.Sprintf("[%04d][00]YearTopics.md", id.Year)
	case MonthConsolidated:
		return fmt.Sprintf("[%04d][%02d].md", id.Year, id.Month)
	case YearConsolidated:
		return fmt.Sprintf("[%04d].md", id.Year)
	default:
		return ""
	}
}

// Parse matches filename (base name, no directory) against every kind
// pattern and returns the first match. Non-matching filenames fail with
// apperr.ErrNotAPeriodFile.
//
// MonthConsolidated is tried after the more specific weekly/topics
// patterns so that "[2026][01]Week05.md" never parses as a
// consolidated month.
func Parse(filename string) (Kind, Identity, error) {
	order := []Kind{Weekly, MonthlyTopics, YearTopics, MonthConsolidated, YearConsolidated}
	for _, kind := range order {
		m := kindPatterns[kind].FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		id := Identity{Year: atoi(m[1])}
		switch kind {
		case Weekly:
			id.Month = atoi(m[2])
			id.Week = atoi(m[3])
		case MonthlyTopics, MonthConsolidated:
			id.Month = atoi(m[2])
		}
		return kind, id, nil
	}
	return 0, Identity{}, fmt.Errorf("period: %q: %w", filename, apperr.ErrNotAPeriodFile)
}

// ParseKind matches filename against a single kind.
func ParseKind(filename string, kind Kind) (Identity, bool) {
	m := kindPatterns[kind].FindStringSubmatch(filename)
	if m == nil {
		return Identity{}, false
	}
	id := Identity{Year: atoi(m[1])}
	switch kind {
	case Weekly:
		id.Month = atoi(m[2])
		id.Week = atoi(m[3])
	case MonthlyTopics, MonthConsolidated:
		id.Month = atoi(m[2])
	}
	return id, true
}

// NextIdentity computes the identity of the week after currentWeek. The
// week number increments and wraps to 1 past MaxWeeksPerYear; year and
// month come from firstDate (the Monday of the computed next week), so
// month/year rollover is driven by calendar arithmetic alone.
func NextIdentity(currentWeek int, firstDate time.Time) Identity {
	next := currentWeek + 1
	if next > MaxWeeksPerYear {
		next = 1
	}
	return Identity{
		Year:  firstDate.Year(),
		Month: int(firstDate.Month()),
		Week:  next,
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

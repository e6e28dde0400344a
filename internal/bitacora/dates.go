package bitacora

import (
	"sort"
	"time"
)

// dateHypothesis is one candidate (year, month) placement for the bare
// day-of-month numbers a bitácora stores.
type dateHypothesis struct {
	year  int
	month time.Month
	dates []time.Time
}

// NextWeekDates computes the five Monday–Friday dates of the week after
// the one the document describes.
//
// Day sections carry bare day numbers with no month or year, so
// month-boundary weeks are ambiguous. The numbers are placed against
// three hypotheses — the month of now, the previous month, and the next
// month — discarding any hypothesis with an invalid calendar date. The
// surviving hypothesis whose first date is closest to now without being
// after it wins; if none qualifies, the chronologically earliest
// survives. Wall-clock proximity is trusted over document
// self-consistency. The chosen dates are then advanced by seven days.
//
// When the document has fewer than five day sections the content is
// ignored entirely and the result is next Monday from now plus the four
// following days.
func NextWeekDates(doc *Document, now time.Time) []time.Time {
	days := doc.DayNumbers()
	if len(days) < 5 {
		return defaultNextWeek(now)
	}

	candidates := enumerateHypotheses(days, now)
	if len(candidates) == 0 {
		return defaultNextWeek(now)
	}

	best := pickHypothesis(candidates, now)

	out := make([]time.Time, len(best.dates))
	for i, d := range best.dates {
		out[i] = d.AddDate(0, 0, 7)
	}
	return out
}

// enumerateHypotheses builds the candidate date sets for the current,
// previous, and next month relative to now, keeping only those where
// every day number is a real date of that month.
func enumerateHypotheses(days []int, now time.Time) []dateHypothesis {
	type ym struct {
		year  int
		month time.Month
	}

	cur := ym{now.Year(), now.Month()}
	prev := ym{now.Year(), now.Month() - 1}
	if now.Month() == time.January {
		prev = ym{now.Year() - 1, time.December}
	}
	next := ym{now.Year(), now.Month() + 1}
	if now.Month() == time.December {
		next = ym{now.Year() + 1, time.January}
	}

	var out []dateHypothesis
	for _, c := range []ym{cur, prev, next} {
		dates, ok := buildDates(days, c.year, c.month)
		if ok {
			out = append(out, dateHypothesis{year: c.year, month: c.month, dates: dates})
		}
	}
	return out
}

// buildDates places each day number in (year, month), failing when the
// day does not exist in that month (e.g. 31 in a 30-day month).
func buildDates(days []int, year int, month time.Month) ([]time.Time, bool) {
	dates := make([]time.Time, 0, len(days))
	for _, day := range days {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if d.Day() != day || d.Month() != month {
			return nil, false
		}
		dates = append(dates, d)
	}
	return dates, true
}

// pickHypothesis ranks candidates by the distance from their first date
// to now, considering only those not after now; with no qualifying
// candidate the earliest one wins.
func pickHypothesis(candidates []dateHypothesis, now time.Time) dateHypothesis {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var best *dateHypothesis
	bestDiff := 0
	for i := range candidates {
		first := candidates[i].dates[0]
		if first.After(today) {
			continue
		}
		diff := int(today.Sub(first).Hours() / 24)
		if best == nil || diff < bestDiff {
			best = &candidates[i]
			bestDiff = diff
		}
	}
	if best != nil {
		return *best
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].dates[0].Before(candidates[j].dates[0])
	})
	return candidates[0]
}

// defaultNextWeek returns next Monday from now and the following four
// days. On a Monday the result starts seven days out.
func defaultNextWeek(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// time.Weekday counts from Sunday; shift so Monday is 0.
	sinceMonday := (int(today.Weekday()) + 6) % 7
	untilNextMonday := 7 - sinceMonday

	monday := today.AddDate(0, 0, untilNextMonday)
	out := make([]time.Time, 5)
	for i := range out {
		out[i] = monday.AddDate(0, 0, i)
	}
	return out
}

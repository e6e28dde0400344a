package bitacora

import (
	"testing"
	"time"
)

func weekDoc(days ...string) *Document {
	text := "# 🗓️Week 5\n\n"
	for _, d := range days {
		text += "## 🏠" + d + "\n  - \n\n"
	}
	return ParseDocument(text)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextWeekDates_MonthTailDisambiguation(t *testing.T) {
	// Document holds the January tail [26..30]; wall clock is already
	// early February. The January placement must win and the advanced
	// dates land in February.
	doc := weekDoc("26", "27", "28", "29", "30")
	now := date(2026, time.February, 3)

	got := NextWeekDates(doc, now)
	if len(got) != 5 {
		t.Fatalf("len = %d", len(got))
	}
	want := []time.Time{
		date(2026, time.February, 2),
		date(2026, time.February, 3),
		date(2026, time.February, 4),
		date(2026, time.February, 5),
		date(2026, time.February, 6),
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("got[%d] = %s, want %s", i, got[i], want[i])
		}
		if got[i].Month() != time.February {
			t.Errorf("got[%d] not in February: %s", i, got[i])
		}
	}
}

func TestNextWeekDates_MidMonth(t *testing.T) {
	doc := weekDoc("12", "13", "14", "15", "16")
	now := date(2026, time.January, 16)

	got := NextWeekDates(doc, now)
	if got[0] != date(2026, time.January, 19) || got[4] != date(2026, time.January, 23) {
		t.Errorf("got %v", got)
	}
}

func TestNextWeekDates_InvalidDayEliminatesHypothesis(t *testing.T) {
	// Day 31 does not exist in February, so with the clock in early
	// March the only surviving past-or-present placement is January...
	// but January is not a candidate month; the valid March placement
	// is in the future, so the earliest surviving hypothesis wins.
	doc := weekDoc("27", "28", "29", "30", "31")
	now := date(2026, time.March, 2)

	got := NextWeekDates(doc, now)
	// March hypothesis survives (27..31 valid); February does not.
	if got[0] != date(2026, time.April, 3) {
		t.Errorf("got[0] = %s, want 2026-04-03", got[0])
	}
}

func TestNextWeekDates_FallbackWhenTooFewDays(t *testing.T) {
	doc := weekDoc("12", "13")
	now := date(2026, time.January, 14) // Wednesday

	got := NextWeekDates(doc, now)
	if got[0] != date(2026, time.January, 19) {
		t.Errorf("got[0] = %s, want next Monday 2026-01-19", got[0])
	}
	if got[4] != date(2026, time.January, 23) {
		t.Errorf("got[4] = %s", got[4])
	}
}

func TestNextWeekDates_FallbackOnMondaySkipsAWeek(t *testing.T) {
	doc := weekDoc()
	now := date(2026, time.January, 12) // Monday

	got := NextWeekDates(doc, now)
	if got[0] != date(2026, time.January, 19) {
		t.Errorf("got[0] = %s, want 2026-01-19", got[0])
	}
}

func TestDefaultNextWeek_AllWeekdays(t *testing.T) {
	// Next Monday from each day of the week 2026-01-12 (Mon) .. 18 (Sun).
	wantMonday := map[int]time.Time{
		12: date(2026, time.January, 19),
		13: date(2026, time.January, 19),
		14: date(2026, time.January, 19),
		15: date(2026, time.January, 19),
		16: date(2026, time.January, 19),
		17: date(2026, time.January, 19),
		18: date(2026, time.January, 19),
	}
	for d, want := range wantMonday {
		got := defaultNextWeek(date(2026, time.January, d))
		if got[0] != want {
			t.Errorf("from Jan %d: got %s, want %s", d, got[0], want)
		}
	}
}

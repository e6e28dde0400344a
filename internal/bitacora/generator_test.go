package bitacora

import (
	"strings"
	"testing"
	"time"
)

type fixedLocations struct {
	emoji string
	note  string
}

func (f fixedLocations) Resolve(time.Time, int) (string, string) { return f.emoji, f.note }

func TestWeeklyContent_WithCarriedTasks(t *testing.T) {
	dates := []time.Time{
		date(2026, time.February, 2),
		date(2026, time.February, 3),
	}
	tasks := []string{"  - [ ] Buy milk", "    - Detail"}

	got := WeeklyContent(tasks, 6, 75.5, dates, fixedLocations{emoji: "🏠"})

	want := "# 🗓️Week 6 75.5\n" +
		"\n" +
		"## ✅Topics\n" +
		"  - [ ] Buy milk\n" +
		"    - Detail\n" +
		"  ---\n" +
		"\n" +
		"## 📝Notes\n" +
		"  - \n" +
		"  ---\n" +
		"\n" +
		"## 🏠2\n" +
		"  - \n" +
		"\n" +
		"## 🏠3\n" +
		"  - \n" +
		"\n"
	if got != want {
		t.Errorf("content mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestWeeklyContent_EmptyTasksGetsPlaceholder(t *testing.T) {
	got := WeeklyContent(nil, 7, 0, nil, fixedLocations{emoji: "🚗"})

	if !strings.Contains(got, "## ✅Topics\n  - [ ] \n  ---\n") {
		t.Errorf("missing placeholder checkbox:\n%s", got)
	}
	if !strings.HasPrefix(got, "# 🗓️Week 7\n") {
		t.Errorf("zero weight must not be rendered: %q", firstLine(got))
	}
}

func TestWeeklyContent_DayNoteRendered(t *testing.T) {
	dates := []time.Time{date(2026, time.January, 6)}
	got := WeeklyContent(nil, 2, 0, dates, fixedLocations{emoji: "🏖️", note: "Reyes"})

	if !strings.Contains(got, "## 🏖️6 (Reyes)\n") {
		t.Errorf("day note missing:\n%s", got)
	}
}

func TestWeeklyContent_RoundTripsThroughParser(t *testing.T) {
	dates := []time.Time{
		date(2026, time.March, 9),
		date(2026, time.March, 10),
		date(2026, time.March, 11),
		date(2026, time.March, 12),
		date(2026, time.March, 13),
	}
	text := WeeklyContent([]string{"  - [ ] Carry me"}, 11, 80, dates, fixedLocations{emoji: "💻"})

	doc := ParseDocument(text)
	if doc.Week != 11 {
		t.Errorf("Week = %d", doc.Week)
	}
	if doc.Weight != 80 {
		t.Errorf("Weight = %v", doc.Weight)
	}
	if got := doc.DayNumbers(); len(got) != 5 || got[0] != 9 || got[4] != 13 {
		t.Errorf("DayNumbers = %v", got)
	}
	tasks := PendingTasks(doc)
	if len(tasks) != 1 || tasks[0] != "  - [ ] Carry me" {
		t.Errorf("PendingTasks = %v", tasks)
	}
}

func TestMonthlyTopicsContent_RewritesTitleAndStripsCompleted(t *testing.T) {
	base := "# ❄️ Topics - Mes 01\n" +
		"\n" +
		"  - [ ] Pending stays\n" +
		"  - [x] Done goes\n"

	got := MonthlyTopicsContent(2, 2026, base)

	if !strings.HasPrefix(got, "# ❄️ Topics - Mes 02\n") {
		t.Errorf("title not rewritten: %q", firstLine(got))
	}
	if strings.Contains(got, "Done goes") {
		t.Errorf("completed task survived:\n%s", got)
	}
	if !strings.Contains(got, "Pending stays") {
		t.Errorf("pending task lost:\n%s", got)
	}
}

func TestMonthlyTopicsContent_PrependsTitleWhenMissing(t *testing.T) {
	got := MonthlyTopicsContent(4, 2026, "  - [ ] No heading here\n")

	if !strings.HasPrefix(got, "# 🌱 Topics - Mes 04\n\n  - [ ] No heading here") {
		t.Errorf("title not prepended:\n%s", got)
	}
}

func TestSeasonEmoji(t *testing.T) {
	cases := map[int]string{
		12: "❄️", 1: "❄️", 2: "❄️",
		3: "🌱", 5: "🌱",
		6: "☀️", 8: "☀️",
		9: "🍂", 11: "🍂",
		0: "📅", 13: "📅",
	}
	for month, want := range cases {
		if got := SeasonEmoji(month); got != want {
			t.Errorf("SeasonEmoji(%d) = %s, want %s", month, got, want)
		}
	}
}

func TestMonthName(t *testing.T) {
	if got := MonthName(1); got != "Enero" {
		t.Errorf("MonthName(1) = %s", got)
	}
	if got := MonthName(9); got != "Septiembre" {
		t.Errorf("MonthName(9) = %s", got)
	}
	if got := MonthName(13); got != "Mes 13" {
		t.Errorf("MonthName(13) = %s", got)
	}
}

func TestWeekSummary(t *testing.T) {
	dates := []time.Time{
		date(2026, time.February, 2),
		date(2026, time.February, 3),
		date(2026, time.February, 4),
		date(2026, time.February, 5),
		date(2026, time.February, 6),
	}
	got := WeekSummary(6, dates, 3, 75.5, fixedLocations{emoji: "🏠"})

	for _, want := range []string{
		"📅 Semana 6",
		"⚖️ Peso registrado: 75.5",
		"Lunes 2: 🏠",
		"Viernes 6: 🏠",
		"Se transfirieron 3 tareas pendientes",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

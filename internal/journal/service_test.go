package journal

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/starford/brackets/internal/apperr"
	"github.com/starford/brackets/internal/storage"
)

type homeOnly struct{}

func (homeOnly) Resolve(time.Time, int) (string, string) { return "🏠", "" }

func newTestService(t *testing.T, files map[string]string) (*Service, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, homeOnly{}, logger), store
}

const week5 = "# 🗓️Week 5 75.5\n" +
	"\n" +
	"## ✅Topics\n" +
	"  - [ ] Carry me\n" +
	"  - [x] Done already\n" +
	"  ---\n" +
	"\n" +
	"## 📝Notes\n" +
	"  - \n" +
	"  ---\n" +
	"\n" +
	"## 🏠26\n  - \n\n" +
	"## 🏠27\n  - \n\n" +
	"## 🏠28\n  - \n\n" +
	"## 🏠29\n  - \n\n" +
	"## 🏠30\n  - \n\n"

func TestNextWeek_MonthRollover(t *testing.T) {
	svc, store := newTestService(t, map[string]string{
		"[2026][01]Week05.md": week5,
	})
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 3, 12, 0, 0, 0, time.UTC)
	}

	res, err := svc.NextWeek(80, false)
	if err != nil {
		t.Fatal(err)
	}

	// Days 26..30 resolve to late January; the following week lands in
	// February, so the new identity is week 6 of month 02.
	if res.Filename != "[2026][02]Week06.md" {
		t.Errorf("Filename = %s", res.Filename)
	}
	if res.Identity.Year != 2026 || res.Identity.Month != 2 || res.Identity.Week != 6 {
		t.Errorf("Identity = %+v", res.Identity)
	}
	if res.CarriedTasks != 1 {
		t.Errorf("CarriedTasks = %d", res.CarriedTasks)
	}
	if res.Dates[0] != time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Dates[0] = %s", res.Dates[0])
	}

	data, err := store.Read("[2026][02]Week06.md")
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "# 🗓️Week 6 80\n") {
		t.Errorf("title: %q", text[:30])
	}
	if !strings.Contains(text, "  - [ ] Carry me\n") {
		t.Errorf("pending task not carried:\n%s", text)
	}
	if strings.Contains(text, "Done already") {
		t.Errorf("completed task carried:\n%s", text)
	}
	if !strings.Contains(text, "## 🏠2\n") || !strings.Contains(text, "## 🏠6\n") {
		t.Errorf("day headings wrong:\n%s", text)
	}
}

func TestNextWeek_WrapAfterLastWeek(t *testing.T) {
	week52 := strings.Replace(week5, "Week 5 75.5", "Week 52", 1)
	svc, _ := newTestService(t, map[string]string{
		"[2026][12]Week52.md": week52,
	})
	// Late December; days 26..30 do not matter for the wrap itself.
	svc.now = func() time.Time {
		return time.Date(2026, time.December, 28, 12, 0, 0, 0, time.UTC)
	}

	res, err := svc.NextWeek(0, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Identity.Week != 1 {
		t.Errorf("Week = %d, want wrap to 1", res.Identity.Week)
	}
}

func TestNextWeek_NoPreviousFile(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"notes.md": "# not a period file\n",
	})
	_, err := svc.NextWeek(0, false)
	if !errors.Is(err, apperr.ErrNoSources) {
		t.Errorf("err = %v, want ErrNoSources", err)
	}
}

func TestNextWeek_ExistingTargetNeedsOverwrite(t *testing.T) {
	// Week 52 wraps to week 1 of the same December, so the computed
	// target can collide with a file that sorts below the source.
	week52 := "# 🗓️Week 52\n\n## ✅Topics\n  - [ ] x\n  ---\n\n" +
		"## 🏠14\n  - \n\n## 🏠15\n  - \n\n## 🏠16\n  - \n\n## 🏠17\n  - \n\n## 🏠18\n  - \n\n"
	svc, store := newTestService(t, map[string]string{
		"[2026][12]Week52.md": week52,
		"[2026][12]Week01.md": "old target\n",
	})
	svc.now = func() time.Time {
		return time.Date(2026, time.December, 18, 12, 0, 0, 0, time.UTC)
	}

	_, err := svc.NextWeek(0, false)
	if !errors.Is(err, apperr.ErrAlreadyExists) {
		t.Fatalf("err = %v, want ErrAlreadyExists", err)
	}
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want *ConflictError", err)
	}
	if conflict.Filename != "[2026][12]Week01.md" {
		t.Errorf("conflict filename = %q, want [2026][12]Week01.md", conflict.Filename)
	}
	data, _ := store.Read("[2026][12]Week01.md")
	if string(data) != "old target\n" {
		t.Error("target overwritten without permission")
	}

	if _, err := svc.NextWeek(0, true); err != nil {
		t.Fatalf("overwrite run failed: %v", err)
	}
	data, _ = store.Read("[2026][12]Week01.md")
	if !strings.HasPrefix(string(data), "# 🗓️Week 1\n") {
		t.Errorf("target not regenerated: %q", string(data))
	}
}

func TestNextMonthlyTopics_YearRollover(t *testing.T) {
	svc, store := newTestService(t, map[string]string{
		"[2026][12]MonthTopics.md": "# ❄️ Topics - Mes 12\n\n  - [ ] keep\n  - [x] drop\n",
	})

	res, err := svc.NextMonthlyTopics(false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Filename != "[2027][01]MonthTopics.md" {
		t.Errorf("Filename = %s", res.Filename)
	}

	data, err := store.Read(res.Filename)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "# ❄️ Topics - Mes 01\n") {
		t.Errorf("title: %q", firstLine(text))
	}
	if !strings.Contains(text, "keep") || strings.Contains(text, "drop") {
		t.Errorf("task filtering wrong:\n%s", text)
	}
}

func TestNextMonthlyTopics_NoPrevious(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.NextMonthlyTopics(false)
	if !errors.Is(err, apperr.ErrNoSources) {
		t.Errorf("err = %v, want ErrNoSources", err)
	}
}

func TestInspect(t *testing.T) {
	svc, _ := newTestService(t, map[string]string{
		"[2026][01]Week05.md": week5,
	})
	svc.now = func() time.Time {
		return time.Date(2026, time.February, 3, 12, 0, 0, 0, time.UTC)
	}

	a, err := svc.Inspect("[2026][01]Week05.md")
	if err != nil {
		t.Fatal(err)
	}
	if a.Identity.Week != 5 || a.Identity.Month != 1 || a.Identity.Year != 2026 {
		t.Errorf("Identity = %+v", a.Identity)
	}
	if a.Weight != 75.5 {
		t.Errorf("Weight = %v", a.Weight)
	}
	if len(a.PendingTasks) != 1 {
		t.Errorf("PendingTasks = %v", a.PendingTasks)
	}
	if len(a.DayNumbers) != 5 || a.DayNumbers[0] != 26 {
		t.Errorf("DayNumbers = %v", a.DayNumbers)
	}
	if a.NextWeekDates[0] != time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("NextWeekDates[0] = %s", a.NextWeekDates[0])
	}
}

func TestInspect_NotAWeeklyFile(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.Inspect("[2026][01]MonthTopics.md")
	if !errors.Is(err, apperr.ErrNotAPeriodFile) {
		t.Errorf("err = %v, want ErrNotAPeriodFile", err)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

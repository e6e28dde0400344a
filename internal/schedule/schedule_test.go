package schedule

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// 2026-01-05 is a Monday.
func day(d int) time.Time {
	return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestResolve_WeekdayDefaults(t *testing.T) {
	cal := Default()
	cases := []struct {
		date time.Time
		want string
	}{
		{day(5), "🏠"}, // Monday
		{day(6), "🚗"}, // Tuesday
		{day(7), "🚗"}, // Wednesday
		{day(8), "🏠"}, // Thursday
	}
	for _, tc := range cases {
		emoji, note := cal.Resolve(tc.date, 2)
		if emoji != tc.want || note != "" {
			t.Errorf("Resolve(%s) = %q %q, want %q", tc.date.Weekday(), emoji, note, tc.want)
		}
	}
}

func TestResolve_AlternatingFriday(t *testing.T) {
	cal := Default()
	friday := day(9)

	even, _ := cal.Resolve(friday, 2)
	if even != "🏠" {
		t.Errorf("even week friday = %q, want 🏠", even)
	}
	odd, _ := cal.Resolve(friday, 3)
	if odd != "🚗" {
		t.Errorf("odd week friday = %q, want 🚗", odd)
	}
}

func TestResolve_HolidayWinsWithNote(t *testing.T) {
	cal := Default()
	cal.Calendar.Holidays = []Holiday{{Date: "2026-01-06", Name: "Reyes"}}

	emoji, note := cal.Resolve(day(6), 2)
	if emoji != "🏖️" || note != "Reyes" {
		t.Errorf("got %q %q, want 🏖️ Reyes", emoji, note)
	}
}

func TestResolve_VacationRange(t *testing.T) {
	cal := Default()
	cal.Calendar.Vacations = []Vacation{{Start: "2026-01-05", End: "2026-01-07", Name: "Esquí"}}

	for _, d := range []int{5, 6, 7} {
		emoji, note := cal.Resolve(day(d), 2)
		if emoji != "🏖️" || note != "Esquí" {
			t.Errorf("day %d: got %q %q", d, emoji, note)
		}
	}
	emoji, note := cal.Resolve(day(8), 2)
	if emoji != "🏠" || note != "" {
		t.Errorf("day 8 outside range: got %q %q", emoji, note)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cal, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cal.Pattern.AlternatingDay != "friday" {
		t.Errorf("alternating day = %q", cal.Pattern.AlternatingDay)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work_calendar.yaml")
	doc := `work_pattern:
  defaults:
    monday: office
calendar:
  holidays:
    - date: "2026-12-25"
      name: Navidad
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cal, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	// Overridden.
	emoji, _ := cal.Resolve(day(5), 2)
	if emoji != "🚗" {
		t.Errorf("monday = %q, want office 🚗", emoji)
	}
	// Untouched default survives the merge.
	emoji, _ = cal.Resolve(day(8), 2)
	if emoji != "🏠" {
		t.Errorf("thursday = %q, want 🏠", emoji)
	}
	if _, note := cal.Resolve(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), 1); note != "Navidad" {
		t.Errorf("note = %q", note)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "work_calendar.yaml")
	cal := Default()
	cal.Calendar.Holidays = []Holiday{{Date: "2026-01-01", Name: "Año Nuevo"}}
	if err := cal.Save(path); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Calendar.Holidays) != 1 || got.Calendar.Holidays[0].Name != "Año Nuevo" {
		t.Errorf("holidays = %+v", got.Calendar.Holidays)
	}
}

// Package schedule resolves the work location for a calendar date from
// a YAML-backed work calendar: weekday defaults, an even/odd-week
// alternating day, and holiday/vacation overrides that take priority
// and carry a human-readable note.
package schedule

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Location keys used by the work pattern.
const (
	LocationHome        = "home"
	LocationOffice      = "office"
	LocationRemote      = "remote"
	LocationOff         = "off"
	LocationAlternating = "alternating"
)

// Holiday is a single non-working day.
type Holiday struct {
	Date string `yaml:"date"` // ISO date (2026-01-01)
	Name string `yaml:"name"`
}

// Vacation is an inclusive non-working date range.
type Vacation struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Name  string `yaml:"name"`
}

// WorkPattern describes the recurring weekday→location assignment.
type WorkPattern struct {
	AlternatingDay string            `yaml:"alternating_day"`
	EvenWeek       string            `yaml:"even_week"`
	OddWeek        string            `yaml:"odd_week"`
	Defaults       map[string]string `yaml:"defaults"`
}

// Overrides holds the date-specific exceptions.
type Overrides struct {
	Holidays  []Holiday  `yaml:"holidays"`
	Vacations []Vacation `yaml:"vacations"`
}

// Calendar is the full work-calendar document.
type Calendar struct {
	Version   int               `yaml:"version"`
	Locations map[string]string `yaml:"locations"`
	Pattern   WorkPattern       `yaml:"work_pattern"`
	Calendar  Overrides         `yaml:"calendar"`
}

var weekdayKeys = map[time.Weekday]string{
	time.Monday:    "monday",
	time.Tuesday:   "tuesday",
	time.Wednesday: "wednesday",
	time.Thursday:  "thursday",
	time.Friday:    "friday",
	time.Saturday:  "saturday",
	time.Sunday:    "sunday",
}

// Default returns the built-in calendar: home Monday/Thursday, office
// Tuesday/Wednesday, Friday alternating by week parity.
func Default() *Calendar {
	return &Calendar{
		Version: 1,
		Locations: map[string]string{
			LocationHome:   "🏠",
			LocationOffice: "🚗",
			LocationRemote: "💻",
			LocationOff:    "🏖️",
		},
		Pattern: WorkPattern{
			AlternatingDay: "friday",
			EvenWeek:       LocationHome,
			OddWeek:        LocationOffice,
			Defaults: map[string]string{
				"monday":    LocationHome,
				"tuesday":   LocationOffice,
				"wednesday": LocationOffice,
				"thursday":  LocationHome,
				"friday":    LocationAlternating,
			},
		},
	}
}

// Load reads the calendar from path, merging the file over the built-in
// defaults. A missing file yields the defaults unchanged.
func Load(path string) (*Calendar, error) {
	cal := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cal, nil
	}
	if err != nil {
		return nil, fmt.Errorf("schedule: read %s: %w", path, err)
	}

	var loaded Calendar
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("schedule: parse %s: %w", path, err)
	}
	cal.merge(&loaded)
	return cal, nil
}

// Save writes the calendar to path, creating parent directories.
func (c *Calendar) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("schedule: mkdir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("schedule: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("schedule: write %s: %w", path, err)
	}
	return nil
}

func (c *Calendar) merge(loaded *Calendar) {
	if loaded.Version != 0 {
		c.Version = loaded.Version
	}
	for k, v := range loaded.Locations {
		c.Locations[k] = v
	}
	if loaded.Pattern.AlternatingDay != "" {
		c.Pattern.AlternatingDay = loaded.Pattern.AlternatingDay
	}
	if loaded.Pattern.EvenWeek != "" {
		c.Pattern.EvenWeek = loaded.Pattern.EvenWeek
	}
	if loaded.Pattern.OddWeek != "" {
		c.Pattern.OddWeek = loaded.Pattern.OddWeek
	}
	for k, v := range loaded.Pattern.Defaults {
		c.Pattern.Defaults[k] = v
	}
	c.Calendar = loaded.Calendar
}

// Resolve returns the location emoji for date, plus a note when the
// date falls on a configured holiday or vacation. Overrides win over
// the weekday pattern; the alternating day picks its location by week
// parity.
func (c *Calendar) Resolve(date time.Time, week int) (emoji string, note string) {
	if name := c.holidayName(date); name != "" {
		return c.emojiFor(LocationOff), name
	}
	if name := c.vacationName(date); name != "" {
		return c.emojiFor(LocationOff), name
	}

	dayKey := weekdayKeys[date.Weekday()]
	loc := c.Pattern.Defaults[dayKey]
	if loc == "" {
		loc = LocationOffice
	}
	if loc == LocationAlternating && dayKey == c.Pattern.AlternatingDay {
		if week%2 == 0 {
			loc = c.Pattern.EvenWeek
		} else {
			loc = c.Pattern.OddWeek
		}
	}
	return c.emojiFor(loc), ""
}

func (c *Calendar) emojiFor(loc string) string {
	if e, ok := c.Locations[loc]; ok {
		return e
	}
	return loc
}

func (c *Calendar) holidayName(date time.Time) string {
	target := date.Format("2006-01-02")
	for _, h := range c.Calendar.Holidays {
		if h.Date == target {
			if h.Name != "" {
				return h.Name
			}
			return "Festivo"
		}
	}
	return ""
}

func (c *Calendar) vacationName(date time.Time) string {
	target := date.Format("2006-01-02")
	for _, v := range c.Calendar.Vacations {
		if v.Start == "" || v.End == "" {
			continue
		}
		if v.Start <= target && target <= v.End {
			if v.Name != "" {
				return v.Name
			}
			return "Vacaciones"
		}
	}
	return ""
}

// Package bitacora parses and generates weekly log files in the
// bracketed Markdown micro-format: a title line, a ✅Topics checklist
// section, a 📝Notes section, and one section per workday headed by a
// location emoji and the day-of-month number.
package bitacora

import (
	"regexp"
	"strconv"
	"strings"
)

// DaySection is one per-day block of a weekly bitácora.
type DaySection struct {
	Day   int    // day of month (1-31)
	Emoji string // location emoji from the heading
	Note  string // parenthesized heading note, if any
	Lines []string
}

// Document is the structured view of one bitácora, built once by
// ParseDocument and queried by the extraction functions. It is never
// persisted; the Markdown text remains the source of truth.
type Document struct {
	Raw    string
	Title  string
	Week   int     // week number from the title, 0 when absent
	Weight float64 // optional weight after the week number, 0 when absent

	TopicsLines []string
	NotesLines  []string
	Days        []DaySection
}

const (
	topicsHeading = "## ✅Topics"
	notesHeading  = "## 📝Notes"
)

var titleRe = regexp.MustCompile(`^#\s*🗓️Week\s+(\d+)(?:\s+([\d.]+))?`)

type scanState int

const (
	statePreamble scanState = iota
	stateTopics
	stateNotes
	stateDay
)

// ParseDocument scans text line by line into a Document. Unrecognized
// structure degrades to empty sections; it never fails.
func ParseDocument(text string) *Document {
	doc := &Document{Raw: text}

	state := statePreamble
	for _, line := range strings.Split(text, "\n") {
		if doc.Title == "" && strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "##") {
			doc.Title = strings.TrimSpace(strings.TrimLeft(line, "#"))
			if m := titleRe.FindStringSubmatch(line); m != nil {
				doc.Week, _ = strconv.Atoi(m[1])
				if m[2] != "" {
					doc.Weight, _ = strconv.ParseFloat(m[2], 64)
				}
			}
			continue
		}

		if strings.HasPrefix(line, "##") && !strings.HasPrefix(line, "###") {
			switch {
			case strings.HasPrefix(line, topicsHeading):
				state = stateTopics
			case strings.HasPrefix(line, notesHeading):
				state = stateNotes
			default:
				if day, emoji, note, ok := parseDayHeading(line); ok {
					doc.Days = append(doc.Days, DaySection{Day: day, Emoji: emoji, Note: note})
					state = stateDay
				} else {
					state = statePreamble
				}
			}
			continue
		}

		switch state {
		case stateTopics:
			doc.TopicsLines = append(doc.TopicsLines, line)
		case stateNotes:
			doc.NotesLines = append(doc.NotesLines, line)
		case stateDay:
			last := &doc.Days[len(doc.Days)-1]
			last.Lines = append(last.Lines, line)
		}
	}

	return doc
}

// parseDayHeading matches "## <emoji><digits>" with an optional
// trailing " (note)". The emoji part must be non-empty and free of
// ASCII letters, so section headings like "## Semana 05" do not parse
// as days.
func parseDayHeading(line string) (day int, emoji, note string, ok bool) {
	rest := strings.TrimPrefix(line, "## ")
	if rest == line {
		return 0, "", "", false
	}

	digitStart := strings.IndexFunc(rest, func(r rune) bool { return r >= '0' && r <= '9' })
	if digitStart <= 0 {
		return 0, "", "", false
	}
	emoji = rest[:digitStart]
	if strings.ContainsFunc(emoji, func(r rune) bool {
		return r == ' ' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) {
		return 0, "", "", false
	}

	tail := rest[digitStart:]
	digitEnd := strings.IndexFunc(tail, func(r rune) bool { return r < '0' || r > '9' })
	if digitEnd < 0 {
		digitEnd = len(tail)
	}
	day, _ = strconv.Atoi(tail[:digitEnd])
	if day < 1 || day > 31 {
		return 0, "", "", false
	}

	note = strings.TrimSpace(tail[digitEnd:])
	note = strings.TrimSuffix(strings.TrimPrefix(note, "("), ")")
	return day, emoji, note, true
}

// DayNumbers returns the day-of-month numbers of the per-day sections,
// capped at the five weekday slots.
func (d *Document) DayNumbers() []int {
	var out []int
	for _, day := range d.Days {
		out = append(out, day.Day)
		if len(out) == 5 {
			break
		}
	}
	return out
}

// Package markdown provides the structural text transforms used when
// embedding one bitácora document inside another: heading-level shifts,
// metadata stripping, title extraction, and heading counting. All
// functions are pure.
package markdown

import "strings"

// ShiftHeadings increases the level of every Markdown heading in text by
// levels (prepending that many '#' characters). When skipFirstLine is
// true the first line is dropped entirely from the output — the
// convention used to remove a sub-document's own title before embedding
// it under a new heading.
func ShiftHeadings(text string, levels int, skipFirstLine bool) string {
	lines := strings.Split(text, "\n")
	start := 0
	if skipFirstLine {
		start = 1
	}
	if start > len(lines) {
		return ""
	}

	prefix := strings.Repeat("#", levels)
	out := make([]string, 0, len(lines)-start)
	for _, line := range lines[start:] {
		if strings.HasPrefix(line, "#") {
			out = append(out, prefix+line)
		} else {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// StripLeadingMetadata removes the title line and the generated metadata
// header that consolidated documents carry: leading blockquote lines,
// '---' separators, and blank lines, up to the first line that is none
// of these. Remaining leading blank lines are trimmed.
func StripLeadingMetadata(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return ""
	}

	var out []string
	skipping := true
	for _, line := range lines[1:] {
		if skipping {
			if strings.HasPrefix(line, ">") ||
				strings.HasPrefix(line, "---") ||
				strings.TrimSpace(line) == "" {
				continue
			}
			skipping = false
		}
		out = append(out, line)
	}

	for len(out) > 0 && strings.TrimSpace(out[0]) == "" {
		out = out[1:]
	}
	return strings.Join(out, "\n")
}

// ExtractTitle returns the first heading line with its '#' markers and
// surrounding whitespace stripped, or "" when the text has no heading.
func ExtractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}

// CountHeadingsByLevel counts heading lines per level (number of leading
// '#' characters).
func CountHeadingsByLevel(text string) map[int]int {
	counts := make(map[int]int)
	for _, line := range strings.Split(text, "\n") {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		level := len(line) - len(strings.TrimLeft(line, "#"))
		counts[level]++
	}
	return counts
}

package bitacora

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	pendingTaskRe   = regexp.MustCompile(`^\s*- \[ \](.+)$`)
	completedTaskRe = regexp.MustCompile(`^\s*- \[x\]`)
)

// PendingTasks extracts every still-pending checklist line from the
// document, preserving indentation and subsection markers. The Topics
// section is scanned first (stopping at its closing "---"); per-day
// sections follow, skipping lines whose trimmed text already appeared.
// Finally parent/child adjacency is restored: children (indentation
// deeper than 2) stay immediately behind their indent-2 parent.
//
// Completed tasks ([x]) are never extracted; no extracted line is
// mutated.
func PendingTasks(doc *Document) []string {
	var collected []string

	for _, raw := range doc.TopicsLines {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)
		if trimmed == "---" {
			break
		}
		if trimmed == "" {
			continue
		}
		if completedTaskRe.MatchString(line) {
			continue
		}
		if pendingTaskRe.MatchString(line) || isSubsection(trimmed) {
			collected = append(collected, line)
		}
	}

	for _, day := range doc.Days {
		for _, raw := range day.Lines {
			line := strings.TrimRight(raw, " \t")
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if completedTaskRe.MatchString(line) {
				continue
			}
			if !pendingTaskRe.MatchString(line) && !isSubsection(trimmed) {
				continue
			}
			if containsTrimmed(collected, trimmed) {
				continue
			}
			collected = append(collected, line)
		}
	}

	return regroupChildren(collected)
}

// regroupChildren walks the collected lines keeping each indent-2
// pending task together with the deeper lines that immediately follow
// it, mirroring the carry-over order guarantee.
func regroupChildren(lines []string) []string {
	var out []string
	i := 0
	for i < len(lines) {
		line := lines[i]
		indent := indentOf(line)
		out = append(out, line)

		if pendingTaskRe.MatchString(line) && indent == 2 {
			j := i + 1
			for j < len(lines) {
				next := lines[j]
				nextIndent := indentOf(next)
				if nextIndent <= indent {
					break
				}
				if pendingTaskRe.MatchString(next) || isSubsection(strings.TrimSpace(next)) {
					out = append(out, next)
				}
				j++
			}
			i = j
			continue
		}
		i++
	}
	return out
}

// RemoveCompletedTasks strips every completed checklist line ([x]) from
// text, leaving all other lines and their order intact. Idempotent.
func RemoveCompletedTasks(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if completedTaskRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// DailyPendingByDay returns a coarse per-day listing of pending tasks
// grouped under "Día N" labels, skipping the "carried from last week"
// sub-block so already-carried items are not re-carried. Used by the
// inspect tooling only; the primary carry-over path is PendingTasks.
func DailyPendingByDay(doc *Document) []string {
	var out []string

	for _, day := range doc.Days {
		var tasks []string
		inCarried := false

		for _, raw := range day.Lines {
			line := strings.TrimSpace(raw)

			if strings.Contains(line, "Tareas pendientes") ||
				strings.Contains(strings.ToLower(line), "tareas anteriores") {
				inCarried = true
				continue
			}
			if line == "---" {
				inCarried = false
				continue
			}
			if inCarried {
				continue
			}
			if !strings.HasPrefix(line, "- [ ]") {
				continue
			}
			content := strings.TrimSpace(strings.TrimPrefix(line, "- [ ]"))
			if content != "" {
				tasks = append(tasks, "    - [ ] "+content)
			}
		}

		if len(tasks) > 0 {
			out = append(out, fmt.Sprintf("  - **Día %d:**", day.Day))
			out = append(out, tasks...)
		}
	}

	return out
}

func isSubsection(trimmed string) bool {
	return strings.HasPrefix(trimmed, "### ") || strings.HasPrefix(trimmed, "- ### ")
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}

func containsTrimmed(lines []string, trimmed string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) == trimmed {
			return true
		}
	}
	return false
}

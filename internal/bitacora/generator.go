package bitacora

import (
	"fmt"
	"strings"
	"time"
)

// LocationResolver supplies the work-location emoji for a date. The
// work-schedule calendar implements it; generation code never consults
// any global settings state.
type LocationResolver interface {
	Resolve(date time.Time, week int) (emoji string, note string)
}

var monthNames = map[int]string{
	1: "Enero", 2: "Febrero", 3: "Marzo", 4: "Abril",
	5: "Mayo", 6: "Junio", 7: "Julio", 8: "Agosto",
	9: "Septiembre", 10: "Octubre", 11: "Noviembre", 12: "Diciembre",
}

// MonthName returns the Spanish month name, or "Mes NN" for an
// out-of-range month.
func MonthName(month int) string {
	if name, ok := monthNames[month]; ok {
		return name
	}
	return fmt.Sprintf("Mes %02d", month)
}

// SeasonEmoji returns the season emoji for a month: winter ❄️ (Dec–Feb),
// spring 🌱 (Mar–May), summer ☀️ (Jun–Aug), autumn 🍂 (Sep–Nov).
func SeasonEmoji(month int) string {
	switch month {
	case 12, 1, 2:
		return "❄️"
	case 3, 4, 5:
		return "🌱"
	case 6, 7, 8:
		return "☀️"
	case 9, 10, 11:
		return "🍂"
	default:
		return "📅"
	}
}

// WeeklyContent renders a new weekly bitácora: the title line, a Topics
// section seeded with the carried-over tasks (one empty placeholder
// checkbox when there are none), an empty Notes section, and one
// heading per date with the location resolved through the calendar.
// weight 0 means no weight recorded.
func WeeklyContent(tasks []string, week int, weight float64, dates []time.Time, locations LocationResolver) string {
	var b strings.Builder

	weightStr := ""
	if weight > 0 {
		weightStr = fmt.Sprintf(" %v", weight)
	}
	fmt.Fprintf(&b, "# 🗓️Week %d%s\n\n", week, weightStr)

	b.WriteString(topicsHeading + "\n")
	if len(tasks) > 0 {
		for _, task := range tasks {
			b.WriteString(task + "\n")
		}
	} else {
		b.WriteString("  - [ ] \n")
	}
	b.WriteString("  ---\n")

	b.WriteString("\n" + notesHeading + "\n")
	b.WriteString("  - \n")
	b.WriteString("  ---\n")

	b.WriteString("\n")
	for _, date := range dates {
		emoji, note := locations.Resolve(date, week)
		header := fmt.Sprintf("## %s%d", emoji, date.Day())
		if note != "" {
			header += fmt.Sprintf(" (%s)", note)
		}
		b.WriteString(header + "\n")
		b.WriteString("  - \n\n")
	}

	return b.String()
}

// MonthlyTopicsContent builds the next month's topics file from
// baseText: completed tasks are stripped and the title is rewritten to
// the fixed "Topics - Mes NN" form with the month's season emoji. When
// baseText has no leading heading the title is prepended instead.
func MonthlyTopicsContent(month, year int, baseText string) string {
	cleaned := RemoveCompletedTasks(baseText)
	title := fmt.Sprintf("# %s Topics - Mes %02d", SeasonEmoji(month), month)

	if !strings.HasPrefix(cleaned, "#") {
		return title + "\n\n" + cleaned
	}
	lines := strings.Split(cleaned, "\n")
	lines[0] = title
	return strings.Join(lines, "\n")
}

// WeekSummary describes a generated week for terminal output: the work
// pattern per day and the number of carried-over tasks. Informational
// only; nothing downstream parses it.
func WeekSummary(week int, dates []time.Time, pendingCount int, weight float64, locations LocationResolver) string {
	weekdays := []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}

	var lines []string
	lines = append(lines, fmt.Sprintf("📅 Semana %d", week))
	if weight > 0 {
		lines = append(lines, fmt.Sprintf("⚖️ Peso registrado: %v", weight))
	}

	lines = append(lines, fmt.Sprintf("🏢 Patrón de trabajo para semana %d:", week))
	for i, date := range dates {
		if i >= len(weekdays) {
			break
		}
		emoji, note := locations.Resolve(date, week)
		suffix := ""
		if note != "" {
			suffix = fmt.Sprintf(" (%s)", note)
		}
		lines = append(lines, fmt.Sprintf("  %s %d: %s%s", weekdays[i], date.Day(), emoji, suffix))
	}

	if pendingCount > 0 {
		lines = append(lines, fmt.Sprintf("📋 Se transfirieron %d tareas pendientes", pendingCount))
	} else {
		lines = append(lines, "📋 No hay tareas pendientes para transferir")
	}
	return strings.Join(lines, "\n")
}

// Package ui renders scheduling results for the terminal: a schedule
// table with critical-path highlighting, a day-scale timeline, and a
// statistics summary. Output is plain text decorated with lipgloss
// styles; interactive views are out of scope.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lodestarhq/lodestar/internal/schedule"
)

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleCritical = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	styleNormal   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	styleMuted    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleBar      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleBarCrit  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

const timeFormat = "Mon Jan 02 15:04"

// Table renders the scheduled tasks as an aligned table in schedule order.
// Critical-path rows are highlighted.
func Table(scheduled []schedule.ScheduledTask) string {
	if len(scheduled) == 0 {
		return styleMuted.Render("no tasks scheduled") + "\n"
	}

	idW, titleW := len("ID"), len("Task")
	for _, t := range scheduled {
		if w := len(fmt.Sprintf("%d", t.ID)); w > idW {
			idW = w
		}
		if w := len(t.Title); w > titleW {
			titleW = w
		}
	}
	if titleW > 40 {
		titleW = 40
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render(fmt.Sprintf("%-*s  %-*s  %-16s  %-16s  %6s  %5s  %s",
		idW, "ID", titleW, "Task", "Start", "End", "Hours", "Slack", "Critical")))
	b.WriteByte('\n')

	for _, t := range scheduled {
		row := fmt.Sprintf("%-*d  %-*s  %-16s  %-16s  %6.1f  %5d  %s",
			idW, t.ID,
			titleW, truncate(t.Title, titleW),
			t.EarliestStart.Format(timeFormat),
			t.EarliestEnd.Format(timeFormat),
			t.DurationHours,
			t.SlackHours,
			criticalMark(t.Critical))
		if t.Critical {
			b.WriteString(styleCritical.Render(row))
		} else {
			b.WriteString(styleNormal.Render(row))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Timeline renders a day-scale bar chart of the schedule. Each row is one
// task; each cell is one calendar day between the project's start and end.
func Timeline(scheduled []schedule.ScheduledTask, width int) string {
	if len(scheduled) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}

	stats := schedule.ComputeStatistics(scheduled)
	days := stats.TotalDays + 1
	if days < 1 {
		days = 1
	}

	labelW := 0
	for _, t := range scheduled {
		if w := len(t.Title); w > labelW {
			labelW = w
		}
	}
	if labelW > 24 {
		labelW = 24
	}
	barW := width - labelW - 3
	if barW < days {
		barW = days
	}
	cells := barW / days
	if cells < 1 {
		cells = 1
	}

	var b strings.Builder
	for _, t := range scheduled {
		startDay := daySpan(stats.ProjectStart, t.EarliestStart)
		endDay := daySpan(stats.ProjectStart, t.EarliestEnd)

		bar := strings.Repeat(" ", startDay*cells) +
			strings.Repeat("█", (endDay-startDay+1)*cells)
		style := styleBar
		if t.Critical {
			style = styleBarCrit
		}
		b.WriteString(fmt.Sprintf("%-*s  %s\n",
			labelW, truncate(t.Title, labelW), style.Render(bar)))
	}
	b.WriteString(styleMuted.Render(fmt.Sprintf("%-*s  %s → %s",
		labelW, "",
		stats.ProjectStart.Format("Jan 02"),
		stats.ProjectEnd.Format("Jan 02"))))
	b.WriteByte('\n')
	return b.String()
}

// Stats renders the statistics summary block.
func Stats(stats schedule.Statistics) string {
	var b strings.Builder
	b.WriteString(styleHeader.Render("Schedule summary"))
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("  Project start:  %s\n", stats.ProjectStart.Format(timeFormat)))
	b.WriteString(fmt.Sprintf("  Project end:    %s\n", stats.ProjectEnd.Format(timeFormat)))
	b.WriteString(fmt.Sprintf("  Span:           %d day(s)\n", stats.TotalDays))
	b.WriteString(fmt.Sprintf("  Tasks:          %d (%d critical)\n", stats.TotalTasks, stats.CriticalPathLength))

	if len(stats.CriticalPathTasks) > 0 {
		b.WriteString(styleCritical.Render("  Critical path:"))
		b.WriteByte('\n')
		for _, t := range stats.CriticalPathTasks {
			b.WriteString(fmt.Sprintf("    %d. %s (%.1fh)\n", t.ID, t.Title, t.DurationHours))
		}
	}
	return b.String()
}

// criticalMark returns the critical-path column value for a row.
func criticalMark(critical bool) string {
	if critical {
		return "●"
	}
	return ""
}

// truncate shortens s to at most w runes, ellipsizing when cut.
func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 1 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}

// daySpan returns whole calendar days from a to b, never negative.
func daySpan(a, b time.Time) int {
	ad := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bd := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	d := int(bd.Sub(ad).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// Package stats renders the dashboard summary: counts and a completion bar.
package stats

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/taskview"
	"github.com/nhle/taskflow/internal/theme"
)

// Height is the number of lines View renders.
const Height = 2

// Model shows a taskview.Stats summary.
type Model struct {
	stats taskview.Stats
	bar   progress.Model
	width int
}

// New creates a stats panel.
func New(width int) Model {
	bar := progress.New(
		progress.WithGradient(string(theme.ColorBlue.Dark), string(theme.ColorGreen.Dark)),
		progress.WithoutPercentage(),
	)
	m := Model{bar: bar}
	m.SetWidth(width)
	return m
}

// SetStats replaces the summary.
func (m *Model) SetStats(s taskview.Stats) {
	m.stats = s
}

// Stats returns the summary shown.
func (m Model) Stats() taskview.Stats {
	return m.stats
}

// SetWidth updates the panel width.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.bar.Width = max(width-12, 10)
}

// View renders the counters above the completion bar.
func (m Model) View() string {
	counters := lipgloss.JoinHorizontal(lipgloss.Top,
		counter("Total", m.stats.Total, theme.ColorWhite),
		counter("Pending", m.stats.Pending, theme.ColorYellow),
		counter("Completed", m.stats.Completed, theme.ColorGreen),
		counter("Overdue", m.stats.Overdue, theme.ColorRed),
	)

	rate := m.stats.CompletionRate()
	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		m.bar.ViewAs(float64(rate)/100),
		theme.MutedStyle.Render(fmt.Sprintf(" %3d%% done", rate)),
	)

	return lipgloss.JoinVertical(lipgloss.Left, counters, bar)
}

func counter(label string, n int, color lipgloss.AdaptiveColor) string {
	value := lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprint(n))
	return lipgloss.NewStyle().Padding(0, 2, 0, 1).Render(label + " " + value)
}

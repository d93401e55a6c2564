package tasklist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/taskview"
	"github.com/nhle/taskflow/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns the task description.
func (i TaskItem) Description() string { return i.Task.Description }

// TaskDelegate renders a task as two lines: the headline and a muted
// detail line.
type TaskDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d TaskDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d TaskDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d TaskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single task.
func (d TaskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TaskItem)
	if !ok {
		return
	}
	fmt.Fprint(w, renderTask(ti.Task, d.now(), index == m.Index()))
}

// renderTask formats a task row relative to now.
func renderTask(task model.Task, now time.Time, selected bool) string {
	mark := "○"
	if task.Completed {
		mark = "✓"
	}

	priority := theme.PriorityStyle(task.Priority).Render(strings.ToUpper(task.Priority.Label()))
	category := theme.CategoryStyle(task.Category).Render(task.Category.Label())

	deadlineStyle := theme.DueDateStyle
	if task.IsOverdue(now) {
		deadlineStyle = theme.OverdueStyle
	}
	deadline := deadlineStyle.Render(taskview.DeadlineLabel(task.Deadline, now))

	headline := fmt.Sprintf("%s %s %s %s  %s", mark, priority, task.Title, category, deadline)

	details := []string{"added " + humanize.RelTime(task.CreatedAt, now, "ago", "from now")}
	if task.Completed && task.CompletedAt != nil {
		details = append(details, "done "+humanize.RelTime(*task.CompletedAt, now, "ago", "from now"))
	}
	if desc := firstLine(task.Description); desc != "" {
		details = append(details, desc)
	}
	detail := theme.MutedStyle.Render(strings.Join(details, " · "))

	if task.Completed {
		headline = theme.DimmedStyle.Render(headline)
	}

	style := theme.ListItemStyle
	if selected {
		style = theme.SelectedItemStyle
	}
	return style.Render(headline + "\n" + detail)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	const maxLen = 60
	if r := []rune(line); len(r) > maxLen {
		return string(r[:maxLen-1]) + "…"
	}
	return line
}

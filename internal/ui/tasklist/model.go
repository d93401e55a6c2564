// Package tasklist renders the dashboard's filtered and sorted task list.
package tasklist

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/theme"
)

// Model is the task list view component.
type Model struct {
	list   list.Model
	opts   model.ViewOptions
	empty  bool
	width  int
	height int
}

// New creates a new task list model. now is sampled on every render for
// deadline labels and relative times.
func New(now func() time.Time, width, height int) Model {
	l := list.New([]list.Item{}, TaskDelegate{now: now}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("task", "tasks")
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	return Model{
		list:   l,
		opts:   model.DefaultViewOptions(),
		empty:  true,
		width:  width,
		height: height,
	}
}

// SetTasks replaces the rows with tasks, already filtered and sorted
// under opts. The cursor stays on the same index where possible.
func (m *Model) SetTasks(tasks []model.Task, opts model.ViewOptions) tea.Cmd {
	m.opts = opts
	m.empty = len(tasks) == 0

	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = TaskItem{Task: task}
	}
	cmd := m.list.SetItems(items)
	if idx := m.list.Index(); idx >= len(items) && len(items) > 0 {
		m.list.Select(len(items) - 1)
	}
	return cmd
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// Update forwards navigation to the list.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list or a hint when nothing matches.
func (m Model) View() string {
	if m.empty {
		return m.renderEmptyState()
	}
	return m.list.View()
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.opts.Status != model.StatusAll || m.opts.Category != model.CategoryAll {
		return style.Render("No matching tasks.\nPress s or c to change the filters.")
	}
	return style.Render("No tasks yet.\n\nPress n to add your first task.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}

package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/keys"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the keybindings followed by the command palette reference.
func (m Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		theme.TitleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m.keys),
		"",
		theme.TitleStyle.Render("Commands"),
		theme.HelpStyle.Render(commandReference()),
	)

	return theme.PanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}

func commandReference() string {
	sorts := make([]string, len(model.SortOptions))
	for i, o := range model.SortOptions {
		sorts[i] = string(o)
	}
	statuses := make([]string, len(model.StatusFilters))
	for i, f := range model.StatusFilters {
		statuses[i] = string(f)
	}
	categories := make([]string, len(model.CategoryFilters))
	for i, f := range model.CategoryFilters {
		categories[i] = string(f)
	}

	return strings.Join([]string{
		"sort " + strings.Join(sorts, "|"),
		"filter " + strings.Join(statuses, "|"),
		"category " + strings.Join(categories, "|"),
		"save (remember sort and filters), reset",
		"new, logout, help, quit",
	}, "\n")
}

package taskform

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/theme"
)

// Accepted deadline layouts. A bare date means the end of that day.
const (
	DateTimeLayout = "2006-01-02 15:04"
	DateLayout     = "2006-01-02"
)

// SubmittedMsg is dispatched when the form is completed. ID is empty for a
// new task and holds the edited task's id otherwise.
type SubmittedMsg struct {
	ID    string
	Input model.TaskInput
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	priority    model.Priority
	category    model.Category
	deadline    string
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	editID string
	now    func() time.Time
	width  int
	height int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		now:    time.Now,
		width:  width,
		height: height,
	}
}

// StartCreate resets the form for a new task due tomorrow.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	*m.fb = formBindings{
		priority: model.PriorityMedium,
		category: model.CategoryWork,
		deadline: m.now().AddDate(0, 0, 1).Format(DateTimeLayout),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit fills the form from an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editID = task.ID
	*m.fb = formBindings{
		title:       task.Title,
		description: task.Description,
		priority:    task.Priority,
		category:    task.Category,
		deadline:    task.Deadline.In(m.now().Location()).Format(DateTimeLayout),
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Editing reports whether the form edits an existing task.
func (m Model) Editing() bool {
	return m.editID != ""
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.submit()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.Editing() {
		titleText = "Edit Task"
	}

	content := theme.TitleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth()).WithHeight(m.formHeight())
	}
}

func (m *Model) buildForm() *huh.Form {
	priorities := make([]huh.Option[model.Priority], len(model.Priorities))
	for i, p := range model.Priorities {
		priorities[i] = huh.NewOption(p.Label(), p)
	}
	categories := make([]huh.Option[model.Category], len(model.Categories))
	for i, c := range model.Categories {
		categories[i] = huh.NewOption(c.Label(), c)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(priorities...).
				Value(&m.fb.priority),
			huh.NewSelect[model.Category]().
				Title("Category").
				Options(categories...).
				Value(&m.fb.category),
			huh.NewInput().
				Title("Deadline").
				Placeholder("YYYY-MM-DD HH:MM").
				Value(&m.fb.deadline).
				Validate(func(s string) error {
					_, err := ParseDeadline(s, m.now().Location())
					return err
				}),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) submit() tea.Cmd {
	deadline, err := ParseDeadline(m.fb.deadline, m.now().Location())
	if err != nil {
		// The field validator already rejected this; keep the zero value so
		// the store reports it.
		deadline = time.Time{}
	}

	msg := SubmittedMsg{
		ID: m.editID,
		Input: model.TaskInput{
			Title:       m.fb.title,
			Description: m.fb.description,
			Priority:    m.fb.priority,
			Category:    m.fb.category,
			Deadline:    deadline,
		},
	}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}

func (m Model) formHeight() int {
	return max(m.height-4, 10)
}

// ParseDeadline reads a deadline typed as "YYYY-MM-DD HH:MM" or
// "YYYY-MM-DD" in loc. A bare date is due at 23:59 that day.
func ParseDeadline(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("deadline is required")
	}
	if t, err := time.ParseInLocation(DateTimeLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, errors.New("invalid deadline, use YYYY-MM-DD HH:MM")
	}
	return t.Add(23*time.Hour + 59*time.Minute), nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

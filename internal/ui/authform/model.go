// Package authform renders the login and register forms shown before a
// session exists.
package authform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/theme"
)

// switchKey toggles between login and register. Tab stays with huh for
// field navigation.
var switchKey = key.NewBinding(
	key.WithKeys("ctrl+r"),
	key.WithHelp("ctrl+r", "switch login/register"),
)

// Mode selects which form is shown.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// LoginMsg is dispatched when the login form is completed.
type LoginMsg struct {
	Email    string
	Password string
}

// RegisterMsg is dispatched when the register form is completed.
type RegisterMsg struct {
	Input model.RegisterInput
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	email    string
	password string
	confirm  string
}

// Model switches between the login and register forms and shows the
// reason of the last failed attempt.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	mode   Mode
	reason string
	width  int
	height int
}

// New creates an auth form model showing the login form.
func New(width, height int) Model {
	m := Model{
		fb:     &formBindings{},
		mode:   ModeLogin,
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the active form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Mode returns the active form.
func (m Model) Mode() Mode {
	return m.mode
}

// Reason returns the failure reason currently shown.
func (m Model) Reason() string {
	return m.reason
}

// Reset clears all fields and shows the login form.
func (m *Model) Reset() tea.Cmd {
	*m.fb = formBindings{}
	m.mode = ModeLogin
	m.reason = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Fail shows reason above a fresh form that keeps the name and email but
// clears the passwords.
func (m *Model) Fail(reason string) tea.Cmd {
	m.reason = reason
	m.fb.password = ""
	m.fb.confirm = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the auth form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, switchKey) {
		if m.mode == ModeLogin {
			m.mode = ModeRegister
		} else {
			m.mode = ModeLogin
		}
		m.reason = ""
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		submitted := m.submit()
		// Keep an interactive form on screen until the app reacts.
		m.form = m.buildForm()
		return m, tea.Batch(submitted, m.form.Init())
	}
	if m.form.State == huh.StateAborted {
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the active form with the failure reason and a switch hint.
func (m Model) View() string {
	title := "Log in to TaskFlow"
	hint := "ctrl+r: create an account"
	if m.mode == ModeRegister {
		title = "Create a TaskFlow account"
		hint = "ctrl+r: log in instead"
	}

	parts := []string{theme.TitleStyle.Render(title)}
	if m.reason != "" {
		parts = append(parts, theme.ErrorTextStyle.Render(m.reason), "")
	}
	parts = append(parts, m.form.View(), theme.HelpStyle.Render(hint))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.form = m.form.WithWidth(m.formWidth())
}

func (m *Model) buildForm() *huh.Form {
	email := huh.NewInput().
		Title("Email").
		Placeholder("you@example.com").
		Value(&m.fb.email).
		Validate(required("email"))
	password := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&m.fb.password).
		Validate(required("password"))

	var fields []huh.Field
	if m.mode == ModeRegister {
		fields = []huh.Field{
			huh.NewInput().
				Title("Name").
				Placeholder("Your name").
				Value(&m.fb.name).
				Validate(required("name")),
			email,
			password,
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm),
		}
	} else {
		fields = []huh.Field{email, password}
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithWidth(m.formWidth()).
		WithShowHelp(false)
}

func (m Model) submit() tea.Cmd {
	if m.mode == ModeRegister {
		msg := RegisterMsg{Input: model.RegisterInput{
			Name:            m.fb.name,
			Email:           m.fb.email,
			Password:        m.fb.password,
			ConfirmPassword: m.fb.confirm,
		}}
		return func() tea.Msg { return msg }
	}
	msg := LoginMsg{Email: m.fb.email, Password: m.fb.password}
	return func() tea.Msg { return msg }
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 30), 60)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

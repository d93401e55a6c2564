package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhle/taskflow/internal/auth"
	"github.com/nhle/taskflow/internal/keys"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/tasks"
	"github.com/nhle/taskflow/internal/ui"
	"github.com/nhle/taskflow/internal/ui/authform"
	"github.com/nhle/taskflow/internal/ui/command"
	helpview "github.com/nhle/taskflow/internal/ui/help"
	"github.com/nhle/taskflow/internal/ui/stats"
	"github.com/nhle/taskflow/internal/ui/taskform"
	"github.com/nhle/taskflow/internal/ui/tasklist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewDashboard
	ViewTaskCreate
	ViewTaskEdit
	ViewHelp
	ViewCommand
)

// Deps are the services the application drives.
type Deps struct {
	Auth        *auth.Service
	Persistence *store.Persistence
	ViewOptions model.ViewOptions
	Logger      logrus.FieldLogger

	// Config and ConfigPath are where the save command writes the
	// dashboard options. Without a path, save reports an error.
	Config     *model.AppConfig
	ConfigPath string
}

// Model is the root Bubble Tea model. It owns the session: the logged-in
// user and that user's task store. All mutations run synchronously inside
// Update, so the task store only ever sees one writer.
type Model struct {
	auth        *auth.Service
	persistence *store.Persistence
	logger      logrus.FieldLogger
	config      *model.AppConfig
	configPath  string

	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap
	ready        bool

	user  *model.User
	tasks *tasks.Store
	opts  model.ViewOptions

	authForm    authform.Model
	taskList    tasklist.Model
	statsView   stats.Model
	taskForm    taskform.Model
	helpView    helpview.Model
	commandView command.Model

	errMsg string
}

// New creates the root model and resumes the previous session, if any.
// Unreadable session or task data is logged and treated as absent.
func New(ctx context.Context, deps Deps) Model {
	k := keys.DefaultKeyMap()
	m := Model{
		auth:        deps.Auth,
		persistence: deps.Persistence,
		logger:      deps.Logger,
		config:      deps.Config,
		configPath:  deps.ConfigPath,
		currentView: ViewAuth,
		keys:        k,
		opts:        deps.ViewOptions,
		authForm:    authform.New(80, 24),
		taskList:    tasklist.New(time.Now, 80, 20),
		statsView:   stats.New(80),
		taskForm:    taskform.New(80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
	}
	if m.opts == (model.ViewOptions{}) {
		m.opts = model.DefaultViewOptions()
	}

	user, err := m.auth.Restore(ctx)
	if err != nil {
		m.logger.WithError(err).Warn("could not restore session; starting logged out")
		return m
	}
	if user != nil {
		if err := m.startSession(ctx, *user); err != nil {
			m.errMsg = err.Error()
		}
	}
	return m
}

// Init starts the login form when nobody is logged in.
func (m Model) Init() tea.Cmd {
	if m.currentView == ViewAuth {
		return m.authForm.Init()
	}
	return nil
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ready = true
		// Forward to the active view so huh forms can lay out.
		return m.updateActiveView(msg)

	case authform.LoginMsg:
		user, err := m.auth.Login(context.Background(), msg.Email, msg.Password)
		return m.finishAuth(user, err)

	case authform.RegisterMsg:
		user, err := m.auth.Register(context.Background(), msg.Input)
		return m.finishAuth(user, err)

	case taskform.SubmittedMsg:
		m.currentView = ViewDashboard
		return m, m.saveTask(msg)

	case taskform.CancelMsg:
		m.currentView = ViewDashboard
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(msg.Command)

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.currentView {
		case ViewDashboard:
			return m.handleDashboardKeys(msg)
		case ViewTaskCreate, ViewTaskEdit:
			if msg.String() == "esc" {
				m.currentView = ViewDashboard
				return m, nil
			}
		case ViewHelp:
			if msg.String() == "q" || msg.String() == "?" || msg.String() == "esc" {
				m.currentView = m.previousView
			}
			return m, nil
		}
	}

	return m.updateActiveView(msg)
}

// handleDashboardKeys processes key input on the task list.
func (m Model) handleDashboardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errMsg = ""

	switch {
	case matches(msg, m.keys.Quit):
		return m, tea.Quit

	case matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil

	case matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus()

	case matches(msg, m.keys.Add):
		return m, m.openCreateForm()

	case matches(msg, m.keys.Edit):
		task, ok := m.taskList.SelectedTask()
		if !ok {
			return m, nil
		}
		m.currentView = ViewTaskEdit
		return m, m.taskForm.StartEdit(task)

	case matches(msg, m.keys.Toggle):
		return m, m.toggleSelected()

	case matches(msg, m.keys.Delete):
		return m, m.removeSelected()

	case matches(msg, m.keys.CycleSort):
		m.opts.Sort = next(model.SortOptions, m.opts.Sort)
		return m, m.refresh()

	case matches(msg, m.keys.CycleStatus):
		m.opts.Status = next(model.StatusFilters, m.opts.Status)
		return m, m.refresh()

	case matches(msg, m.keys.CycleCategory):
		m.opts.Category = next(model.CategoryFilters, m.opts.Category)
		return m, m.refresh()

	case matches(msg, m.keys.Logout):
		return m, m.logout()
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewAuth:
		m.authForm, cmd = m.authForm.Update(msg)
	case ViewDashboard:
		m.taskList, cmd = m.taskList.Update(msg)
	case ViewTaskCreate, ViewTaskEdit:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("TaskFlow", m.headerSummary())
	statusBar := m.layout.RenderStatusBar(m.keyHints(), m.errMsg)
	return m.layout.RenderWithFrame(header, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewAuth:
		return m.authForm.View()
	case ViewDashboard:
		return m.statsView.View() + "\n\n" + m.taskList.View()
	case ViewTaskCreate, ViewTaskEdit:
		return m.taskForm.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// headerSummary names the user and the active sort and filters.
func (m Model) headerSummary() string {
	if m.user == nil {
		return "not logged in"
	}
	return strings.Join([]string{
		m.user.Name,
		m.opts.Sort.Label(),
		m.opts.Status.Label(),
		m.opts.Category.Label(),
	}, " · ")
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewAuth:
		return "enter next/submit | tab next field | ctrl+r login/register | ctrl+c quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewTaskCreate, ViewTaskEdit:
		return "enter next/submit | esc cancel"
	default:
		return fmt.Sprintf("n new | x done | e edit | d delete | tab sort | s status | c category | ? help | %d shown", m.shownCount())
	}
}

func (m Model) shownCount() int {
	if m.tasks == nil {
		return 0
	}
	return len(m.tasks.View(m.opts))
}

// resize propagates the terminal size to every view.
func (m *Model) resize(width, height int) {
	m.layout = ui.NewLayout(width, height)
	contentWidth := m.layout.ContentWidth()
	contentHeight := m.layout.ContentHeight()

	m.authForm.SetSize(contentWidth, contentHeight)
	m.statsView.SetWidth(contentWidth)
	m.taskList.SetSize(contentWidth, max(contentHeight-stats.Height-1, 0))
	m.taskForm.SetSize(contentWidth, contentHeight)
	m.helpView.SetSize(contentWidth, contentHeight)
	m.commandView.SetSize(contentWidth, contentHeight)
}

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/ui/command"
)

// executeCommand handles a command from the command palette.
func (m *Model) executeCommand(cmd command.Command) tea.Cmd {
	switch cmd.Name {
	case "quit", "q":
		return tea.Quit

	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return nil

	case "new", "add":
		return m.openCreateForm()

	case "logout":
		return m.logout()

	case "sort":
		opt, err := model.ParseSortOption(cmd.Arg)
		if err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.opts.Sort = opt
		return m.refresh()

	case "filter", "status":
		f, err := model.ParseStatusFilter(cmd.Arg)
		if err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.opts.Status = f
		return m.refresh()

	case "category":
		f, err := model.ParseCategoryFilter(cmd.Arg)
		if err != nil {
			m.errMsg = err.Error()
			return nil
		}
		m.opts.Category = f
		return m.refresh()

	case "save":
		return m.saveDisplayOptions()

	case "reset":
		m.opts = model.DefaultViewOptions()
		return m.refresh()

	default:
		m.errMsg = "unknown command: " + cmd.Name
		return nil
	}
}

// saveDisplayOptions writes the current sort and filters to the config file
// so the next start opens the dashboard the same way.
func (m *Model) saveDisplayOptions() tea.Cmd {
	if m.configPath == "" {
		m.errMsg = "no config file to save to"
		return nil
	}

	cfg := model.DefaultAppConfig()
	if m.config != nil {
		copied := *m.config
		cfg = &copied
	}
	cfg.Display = model.DisplayConfigFrom(m.opts)

	if err := model.SaveConfig(m.configPath, cfg); err != nil {
		m.logger.WithError(err).Error("saving display options failed")
		m.errMsg = "could not save options: " + err.Error()
		return nil
	}

	m.config = cfg
	m.logger.WithField("path", m.configPath).Info("display options saved")
	return nil
}

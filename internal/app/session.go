package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/auth"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/store"
	"github.com/nhle/taskflow/internal/tasks"
)

// finishAuth reacts to a login or registration attempt. Credential
// failures are shown on the form; anything else goes to the status bar.
func (m Model) finishAuth(user model.User, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		if auth.IsCredentialError(err) {
			return m, m.authForm.Fail(err.Error())
		}
		m.logger.WithError(err).Error("authentication failed")
		m.errMsg = "could not reach storage: " + err.Error()
		return m, nil
	}

	if err := m.startSession(context.Background(), user); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	return m, m.refresh()
}

// startSession loads the user's tasks and switches to the dashboard. A
// malformed task document is logged and replaced by an empty collection.
func (m *Model) startSession(ctx context.Context, user model.User) error {
	logger := m.logger
	ts, err := tasks.Open(ctx, m.persistence, user.ID, logger)
	switch {
	case errors.Is(err, store.ErrMalformed):
		logger.WithError(err).WithField("user_id", user.ID).Warn("stored tasks unreadable; starting with an empty list")
		ts = tasks.New(m.persistence, user.ID, nil, logger)
	case err != nil:
		logger.WithError(err).Error("loading tasks failed")
		return fmt.Errorf("could not load tasks: %w", err)
	}

	m.user = &user
	m.tasks = ts
	m.errMsg = ""
	m.currentView = ViewDashboard
	m.refresh()
	return nil
}

// logout ends the session and returns to the login form.
func (m *Model) logout() tea.Cmd {
	if err := m.auth.Logout(context.Background()); err != nil {
		m.logger.WithError(err).Error("logout failed")
		m.errMsg = "could not log out: " + err.Error()
		return nil
	}
	m.user = nil
	m.tasks = nil
	m.currentView = ViewAuth
	return m.authForm.Reset()
}

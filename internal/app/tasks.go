package app

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/ui/taskform"
)

// openCreateForm switches to the new-task form.
func (m *Model) openCreateForm() tea.Cmd {
	m.currentView = ViewTaskCreate
	return m.taskForm.StartCreate()
}

// saveTask adds or updates a task from a submitted form.
func (m *Model) saveTask(msg taskform.SubmittedMsg) tea.Cmd {
	ctx := context.Background()

	if msg.ID == "" {
		if _, err := m.tasks.Add(ctx, msg.Input); err != nil {
			m.showError("could not add task", err)
		}
		return m.refresh()
	}

	current, ok := m.tasks.Get(msg.ID)
	if !ok {
		return m.refresh()
	}
	if _, err := m.tasks.Update(ctx, msg.ID, editPatch(current, msg.Input)); err != nil {
		m.showError("could not update task", err)
	}
	return m.refresh()
}

// editPatch holds the form fields that differ from task. The form shows
// deadlines to the minute, so an untouched deadline field keeps the stored
// seconds.
func editPatch(task model.Task, in model.TaskInput) model.TaskPatch {
	in = in.Normalize()
	var patch model.TaskPatch
	if in.Title != task.Title {
		patch.Title = &in.Title
	}
	if in.Description != task.Description {
		patch.Description = &in.Description
	}
	if in.Priority != task.Priority {
		patch.Priority = &in.Priority
	}
	if in.Category != task.Category {
		patch.Category = &in.Category
	}
	if in.Deadline.IsZero() || !sameMinute(in.Deadline, task.Deadline) {
		patch.Deadline = &in.Deadline
	}
	return patch
}

func sameMinute(entered, stored time.Time) bool {
	stored = stored.In(entered.Location())
	return entered.Format(taskform.DateTimeLayout) == stored.Format(taskform.DateTimeLayout)
}

// toggleSelected flips the completion of the task under the cursor.
func (m *Model) toggleSelected() tea.Cmd {
	task, ok := m.taskList.SelectedTask()
	if !ok {
		return nil
	}
	if _, err := m.tasks.ToggleComplete(context.Background(), task.ID); err != nil {
		m.showError("could not update task", err)
	}
	return m.refresh()
}

// removeSelected deletes the task under the cursor.
func (m *Model) removeSelected() tea.Cmd {
	task, ok := m.taskList.SelectedTask()
	if !ok {
		return nil
	}
	if _, err := m.tasks.Remove(context.Background(), task.ID); err != nil {
		m.showError("could not delete task", err)
	}
	return m.refresh()
}

// refresh re-derives the list and the stats panel from the task store.
func (m *Model) refresh() tea.Cmd {
	if m.tasks == nil {
		return nil
	}
	m.statsView.SetStats(m.tasks.Stats())
	return m.taskList.SetTasks(m.tasks.View(m.opts), m.opts)
}

// showError puts a failure on the status bar. Validation problems are the
// user's to fix; anything else is also logged.
func (m *Model) showError(action string, err error) {
	var verr *model.ValidationError
	if !errors.As(err, &verr) {
		m.logger.WithError(err).Error(action)
	}
	m.errMsg = action + ": " + err.Error()
}

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

// next returns the element after cur in items, wrapping around. An unknown
// cur yields the first element.
func next[T comparable](items []T, cur T) T {
	for i, item := range items {
		if item == cur {
			return items[(i+1)%len(items)]
		}
	}
	return items[0]
}

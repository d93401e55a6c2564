// Package tasks holds the task collection of the logged-in user and keeps
// it in sync with durable storage.
package tasks

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/taskview"
)

// Persister loads and saves the whole task collection of a user.
type Persister interface {
	LoadTasks(ctx context.Context, userID string) ([]model.Task, error)
	SaveTasks(ctx context.Context, userID string, tasks []model.Task) error
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Store is the authoritative, insertion-ordered task collection of one
// user. Every mutation writes the full collection back through the
// Persister before returning; if that write fails the mutation is undone.
//
// A Store is owned by a single session and is not safe for concurrent use.
type Store struct {
	persister Persister
	userID    string
	tasks     []model.Task
	logger    logrus.FieldLogger
	now       func() time.Time
	newID     func() string
}

// Open loads the collection of userID and returns a Store bound to it.
func Open(
	ctx context.Context,
	p Persister,
	userID string,
	logger logrus.FieldLogger,
	opts ...Option,
) (*Store, error) {
	loaded, err := p.LoadTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading tasks for user %s: %w", userID, err)
	}
	return New(p, userID, loaded, logger, opts...), nil
}

// New returns a Store holding initial without reading the Persister. The
// first mutation overwrites whatever is stored for userID.
func New(
	p Persister,
	userID string,
	initial []model.Task,
	logger logrus.FieldLogger,
	opts ...Option,
) *Store {
	s := &Store{
		persister: p,
		userID:    userID,
		tasks:     slices.Clone(initial),
		logger:    logger.WithField("user_id", userID),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
	if s.tasks == nil {
		s.tasks = []model.Task{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserID returns the owner of the collection.
func (s *Store) UserID() string {
	return s.userID
}

// Add validates in, appends a new incomplete task and persists.
// A blank title or unknown priority/category yields a *model.ValidationError.
func (s *Store) Add(ctx context.Context, in model.TaskInput) (model.Task, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}

	task := model.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Category:    in.Category,
		CreatedAt:   s.stamp(),
		Deadline:    normalizeTime(in.Deadline),
	}

	prev := s.tasks
	s.tasks = append(slices.Clone(prev), task)
	if err := s.commit(ctx, prev); err != nil {
		return model.Task{}, err
	}

	s.logger.WithField("task_id", task.ID).Info("task added")
	return task, nil
}

// Update merges patch into the task with the given id. It reports false,
// and writes nothing, when no such task exists. An empty patch is not
// written either.
func (s *Store) Update(ctx context.Context, id string, patch model.TaskPatch) (bool, error) {
	patch = patch.Normalize()
	if err := patch.Validate(); err != nil {
		return false, err
	}
	if patch.Deadline != nil {
		deadline := normalizeTime(*patch.Deadline)
		patch.Deadline = &deadline
	}

	i := s.indexOf(id)
	if i < 0 {
		s.logger.WithField("task_id", id).Debug("update of unknown task ignored")
		return false, nil
	}
	if patch.IsEmpty() {
		return true, nil
	}

	prev := s.tasks
	s.tasks = slices.Clone(prev)
	s.tasks[i] = patch.Apply(s.tasks[i])
	if err := s.commit(ctx, prev); err != nil {
		return false, err
	}

	s.logger.WithField("task_id", id).Info("task updated")
	return true, nil
}

// Remove deletes the task with the given id. It reports false when no such
// task exists.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		s.logger.WithField("task_id", id).Debug("removal of unknown task ignored")
		return false, nil
	}

	prev := s.tasks
	s.tasks = slices.Delete(slices.Clone(prev), i, i+1)
	if err := s.commit(ctx, prev); err != nil {
		return false, err
	}

	s.logger.WithField("task_id", id).Info("task removed")
	return true, nil
}

// ToggleComplete flips the completion state of the task with the given id,
// stamping CompletedAt when it becomes complete and clearing it otherwise.
// It reports false when no such task exists.
func (s *Store) ToggleComplete(ctx context.Context, id string) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		s.logger.WithField("task_id", id).Debug("toggle of unknown task ignored")
		return false, nil
	}

	prev := s.tasks
	s.tasks = slices.Clone(prev)
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		at := s.stamp()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	if err := s.commit(ctx, prev); err != nil {
		return false, err
	}

	s.logger.WithFields(logrus.Fields{
		"task_id":   id,
		"completed": s.tasks[i].Completed,
	}).Info("task completion toggled")
	return true, nil
}

// Snapshot returns a copy of the collection in insertion order.
func (s *Store) Snapshot() []model.Task {
	return slices.Clone(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// View returns the filtered and sorted collection for the dashboard.
func (s *Store) View(opts model.ViewOptions) []model.Task {
	return taskview.ApplyAt(s.tasks, opts, s.now())
}

// Stats summarizes the full collection.
func (s *Store) Stats() taskview.Stats {
	return taskview.StatsAt(s.tasks, s.now())
}

// commit persists the current collection, restoring prev on failure.
func (s *Store) commit(ctx context.Context, prev []model.Task) error {
	if err := s.persister.SaveTasks(ctx, s.userID, s.tasks); err != nil {
		s.tasks = prev
		s.logger.WithError(err).Error("saving tasks failed; change reverted")
		return fmt.Errorf("saving tasks for user %s: %w", s.userID, err)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.tasks, func(t model.Task) bool { return t.ID == id })
}

// stamp returns the current time as stored: UTC, millisecond precision.
func (s *Store) stamp() time.Time {
	return normalizeTime(s.now())
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

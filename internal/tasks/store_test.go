package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskflow/internal/logging"
	"github.com/nhle/taskflow/internal/model"
	"github.com/nhle/taskflow/internal/taskview"
	"github.com/nhle/taskflow/tests/testutil"
)

var clockStart = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fakeClock advances by one second on every reading.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(time.Second)
	return now
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

// flakyPersister fails every save after failAfter successful ones.
type flakyPersister struct {
	saved     map[string][]model.Task
	saves     int
	failAfter int
}

func (p *flakyPersister) LoadTasks(_ context.Context, userID string) ([]model.Task, error) {
	return append([]model.Task{}, p.saved[userID]...), nil
}

func (p *flakyPersister) SaveTasks(_ context.Context, userID string, tasks []model.Task) error {
	if p.saves >= p.failAfter {
		return errors.New("disk full")
	}
	p.saves++
	p.saved[userID] = append([]model.Task{}, tasks...)
	return nil
}

func openTestStore(t *testing.T, p Persister, userID string) *Store {
	t.Helper()
	clock := &fakeClock{t: clockStart}
	s, err := Open(context.Background(), p, userID, logging.Discard(),
		WithClock(clock.Now), WithIDGenerator(sequentialIDs()))
	require.NoError(t, err)
	return s
}

func input(title string, p model.Priority, c model.Category, due time.Duration) model.TaskInput {
	return model.TaskInput{
		Title:    title,
		Priority: p,
		Category: c,
		Deadline: clockStart.Add(due),
	}
}

func TestStore_AddPersistsAndStamps(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestPersistence(t)
	s := openTestStore(t, p, "alice")

	task, err := s.Add(ctx, model.TaskInput{
		Title:       "  Write report  ",
		Description: " numbers ",
		Priority:    model.PriorityHigh,
		Category:    model.CategoryWork,
		Deadline:    clockStart.Add(48*time.Hour + 500*time.Microsecond),
	})
	require.NoError(t, err)

	assert.Equal(t, "task-1", task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "numbers", task.Description)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, clockStart, task.CreatedAt)
	assert.Equal(t, clockStart.Add(48*time.Hour), task.Deadline)

	stored, err := p.LoadTasks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, task.ID, stored[0].ID)
	assert.True(t, task.Deadline.Equal(stored[0].Deadline))
}

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, testutil.NewTestPersistence(t), "alice")

	for _, title := range []string{"c", "a", "b"} {
		_, err := s.Add(ctx, input(title, model.PriorityLow, model.CategoryOther, time.Hour))
		require.NoError(t, err)
	}

	var titles []string
	for _, task := range s.Snapshot() {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"c", "a", "b"}, titles)
	assert.Equal(t, 3, s.Len())
}

func TestStore_AddRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		in    model.TaskInput
		field string
	}{
		{"blank title", input("   ", model.PriorityHigh, model.CategoryWork, time.Hour), "title"},
		{"unknown priority", input("x", "urgent", model.CategoryWork, time.Hour), "priority"},
		{"unknown category", input("x", model.PriorityHigh, "chores", time.Hour), "category"},
		{"missing deadline", model.TaskInput{Title: "x", Priority: model.PriorityHigh, Category: model.CategoryWork}, "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			p := testutil.NewTestPersistence(t)
			s := openTestStore(t, p, "alice")

			_, err := s.Add(ctx, tt.in)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Equal(t, 0, s.Len())

			stored, err := p.LoadTasks(ctx, "alice")
			require.NoError(t, err)
			assert.Empty(t, stored)
		})
	}
}

func TestStore_Update(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestPersistence(t)
	s := openTestStore(t, p, "alice")
	task, err := s.Add(ctx, input("Draft", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)

	title := "  Final  "
	priority := model.PriorityHigh
	ok, err := s.Update(ctx, task.ID, model.TaskPatch{Title: &title, Priority: &priority})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found := s.Get(task.ID)
	require.True(t, found)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, model.CategoryWork, got.Category)
	assert.Equal(t, task.CreatedAt, got.CreatedAt)
	assert.Equal(t, task.ID, got.ID)

	stored, err := p.LoadTasks(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Final", stored[0].Title)
}

func TestStore_UpdateWithEmptyPatchWritesNothing(t *testing.T) {
	ctx := context.Background()
	p := &flakyPersister{saved: map[string][]model.Task{}, failAfter: 1}
	s := openTestStore(t, p, "alice")
	task, err := s.Add(ctx, input("Buy milk", model.PriorityLow, model.CategoryShopping, time.Hour))
	require.NoError(t, err)

	ok, err := s.Update(ctx, task.ID, model.TaskPatch{})

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, p.saves)
	got, _ := s.Get(task.ID)
	assert.Equal(t, task, got)
}

func TestStore_UpdateRejectsBlankTitle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, testutil.NewTestPersistence(t), "alice")
	task, err := s.Add(ctx, input("Draft", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)

	blank := " "
	ok, err := s.Update(ctx, task.ID, model.TaskPatch{Title: &blank})

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.False(t, ok)
	got, _ := s.Get(task.ID)
	assert.Equal(t, "Draft", got.Title)
}

func TestStore_UnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	p := &flakyPersister{saved: map[string][]model.Task{}, failAfter: 1}
	s := openTestStore(t, p, "alice")
	_, err := s.Add(ctx, input("Only", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)

	title := "x"
	ok, err := s.Update(ctx, "missing", model.TaskPatch{Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Remove(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.ToggleComplete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// The persister would fail any further save, so nothing was written.
	assert.Equal(t, 1, p.saves)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestPersistence(t)
	s := openTestStore(t, p, "alice")
	first, err := s.Add(ctx, input("first", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)
	second, err := s.Add(ctx, input("second", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)

	ok, err := s.Remove(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, found := s.Get(first.ID)
	assert.False(t, found)

	stored, err := p.LoadTasks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, second.ID, stored[0].ID)
}

func TestStore_ToggleComplete(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestPersistence(t)
	s := openTestStore(t, p, "alice")
	task, err := s.Add(ctx, input("Run", model.PriorityMedium, model.CategoryHealth, time.Hour))
	require.NoError(t, err)

	ok, err := s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, _ := s.Get(task.ID)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, got.CompletedAt.After(got.CreatedAt))

	stored, err := p.LoadTasks(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stored[0].Completed)
	require.NotNil(t, stored[0].CompletedAt)

	ok, err = s.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	require.True(t, ok)

	got, _ = s.Get(task.ID)
	assert.False(t, got.Completed)
	assert.Nil(t, got.CompletedAt)
}

func TestStore_RollsBackWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	p := &flakyPersister{saved: map[string][]model.Task{}, failAfter: 1}
	s := openTestStore(t, p, "alice")
	task, err := s.Add(ctx, input("Keep", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)
	before := s.Snapshot()

	_, err = s.Add(ctx, input("Lost", model.PriorityLow, model.CategoryWork, time.Hour))
	assert.Error(t, err)

	title := "Changed"
	_, err = s.Update(ctx, task.ID, model.TaskPatch{Title: &title})
	assert.Error(t, err)

	_, err = s.ToggleComplete(ctx, task.ID)
	assert.Error(t, err)

	_, err = s.Remove(ctx, task.ID)
	assert.Error(t, err)

	assert.Equal(t, before, s.Snapshot())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, testutil.NewTestPersistence(t), "alice")
	_, err := s.Add(ctx, input("Original", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)

	snap := s.Snapshot()
	snap[0].Title = "mutated"

	assert.Equal(t, "Original", s.Snapshot()[0].Title)
}

func TestStore_ReopenLoadsPersistedTasks(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestPersistence(t)
	s := openTestStore(t, p, "alice")
	_, err := s.Add(ctx, input("Persisted", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)

	reopened := openTestStore(t, p, "alice")
	assert.Equal(t, s.Snapshot(), reopened.Snapshot())

	other := openTestStore(t, p, "bob")
	assert.Equal(t, 0, other.Len())
}

func TestStore_ViewAndStats(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, testutil.NewTestPersistence(t), "alice")

	_, err := s.Add(ctx, input("A", model.PriorityHigh, model.CategoryWork, 24*time.Hour))
	require.NoError(t, err)
	_, err = s.Add(ctx, input("B", model.PriorityLow, model.CategoryPersonal, -24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, taskview.Stats{Total: 2, Completed: 0, Pending: 2, Overdue: 1}, s.Stats())

	view := s.View(model.ViewOptions{Status: model.StatusAll, Category: model.CategoryAll, Sort: model.SortDeadline})
	require.Len(t, view, 2)
	assert.Equal(t, "B", view[0].Title)

	view = s.View(model.ViewOptions{
		Status:   model.StatusActive,
		Category: model.CategoryFilter(model.CategoryWork),
		Sort:     model.SortTitle,
	})
	require.Len(t, view, 1)
	assert.Equal(t, "A", view[0].Title)
}

func TestNew_StartsFromGivenTasksAndOverwritesOnSave(t *testing.T) {
	ctx := context.Background()
	p := testutil.NewTestPersistence(t)
	require.NoError(t, p.SaveTasks(ctx, "alice", []model.Task{{
		ID: "old", Title: "old", Priority: model.PriorityLow, Category: model.CategoryWork,
		CreatedAt: clockStart, Deadline: clockStart,
	}}))

	s := New(p, "alice", nil, logging.Discard(), WithIDGenerator(sequentialIDs()))
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Snapshot())

	_, err := s.Add(ctx, input("fresh", model.PriorityLow, model.CategoryWork, time.Hour))
	require.NoError(t, err)

	stored, err := p.LoadTasks(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "fresh", stored[0].Title)
}

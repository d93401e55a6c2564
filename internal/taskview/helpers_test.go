package taskview

import (
	"time"

	"github.com/nhle/taskflow/internal/model"
)

var refNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// newTask builds a valid incomplete task; mods adjust it.
func newTask(id string, mods ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:        id,
		Title:     "task " + id,
		Priority:  model.PriorityMedium,
		Category:  model.CategoryWork,
		CreatedAt: refNow.Add(-48 * time.Hour),
		Deadline:  refNow.Add(24 * time.Hour),
	}
	for _, mod := range mods {
		mod(&t)
	}
	return t
}

func completed(t *model.Task) {
	at := refNow.Add(-time.Hour)
	t.Completed = true
	t.CompletedAt = &at
}

func withPriority(p model.Priority) func(*model.Task) {
	return func(t *model.Task) { t.Priority = p }
}

func withCategory(c model.Category) func(*model.Task) {
	return func(t *model.Task) { t.Category = c }
}

func dueIn(d time.Duration) func(*model.Task) {
	return func(t *model.Task) { t.Deadline = refNow.Add(d) }
}

func createdAgo(d time.Duration) func(*model.Task) {
	return func(t *model.Task) { t.CreatedAt = refNow.Add(-d) }
}

func titled(title string) func(*model.Task) {
	return func(t *model.Task) { t.Title = title }
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

// mixedTasks covers every category, both completion states and a spread of
// priorities, deadlines and creation times.
func mixedTasks() []model.Task {
	return []model.Task{
		newTask("a", withPriority(model.PriorityHigh), dueIn(5*time.Hour), createdAgo(time.Hour)),
		newTask("b", withPriority(model.PriorityLow), withCategory(model.CategoryPersonal), dueIn(-3*time.Hour), titled("buy milk")),
		newTask("c", completed, withCategory(model.CategoryShopping), titled("Apples")),
		newTask("d", withPriority(model.PriorityMedium), withCategory(model.CategoryHealth), dueIn(72*time.Hour), createdAgo(10*time.Hour)),
		newTask("e", completed, withPriority(model.PriorityHigh), withCategory(model.CategoryWork), dueIn(-48*time.Hour)),
		newTask("f", withPriority(model.PriorityLow), withCategory(model.CategoryOther), dueIn(2*time.Hour), titled("zebra")),
		newTask("g", withPriority(model.PriorityHigh), withCategory(model.CategoryPersonal), dueIn(-30*time.Hour), createdAgo(100*time.Hour)),
	}
}

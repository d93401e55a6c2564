// Package taskview derives what the dashboard shows from a task
// collection: the filtered and sorted list, the summary statistics and the
// deadline labels. Every function treats its input as read-only.
package taskview

import (
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// Filter returns the tasks matching both the status and the category
// filter, in input order. The input slice is never modified; the result
// is always a new slice.
func Filter(tasks []model.Task, status model.StatusFilter, category model.CategoryFilter) []model.Task {
	result := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesStatus(t, status) && matchesCategory(t, category) {
			result = append(result, t)
		}
	}
	return result
}

func matchesStatus(t model.Task, status model.StatusFilter) bool {
	switch status {
	case model.StatusActive:
		return !t.Completed
	case model.StatusCompleted:
		return t.Completed
	default:
		return true
	}
}

func matchesCategory(t model.Task, category model.CategoryFilter) bool {
	if category == model.CategoryAll || category == "" {
		return true
	}
	return model.CategoryFilter(t.Category) == category
}

// Apply filters then sorts tasks according to opts.
func Apply(tasks []model.Task, opts model.ViewOptions) []model.Task {
	return ApplyAt(tasks, opts, time.Now())
}

// ApplyAt is Apply with an explicit reference time for smart sort.
func ApplyAt(tasks []model.Task, opts model.ViewOptions, now time.Time) []model.Task {
	return SortAt(Filter(tasks, opts.Status, opts.Category), opts.Sort, now)
}

package taskview

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nhle/taskflow/internal/model"
)

// Sort returns a sorted copy of tasks. Incomplete tasks always come before
// completed ones; opt orders tasks within each group. The sort is stable,
// so tasks the option considers equal keep their input order.
func Sort(tasks []model.Task, opt model.SortOption) []model.Task {
	return SortAt(tasks, opt, time.Now())
}

// SortAt is Sort with an explicit reference time. now is used for every
// comparison so smart-sort scores stay consistent across the whole call.
func SortAt(tasks []model.Task, opt model.SortOption, now time.Time) []model.Task {
	sorted := make([]model.Task, len(tasks))
	copy(sorted, tasks)

	within := comparator(opt, now)
	slices.SortStableFunc(sorted, func(a, b model.Task) int {
		if a.Completed != b.Completed {
			if a.Completed {
				return 1
			}
			return -1
		}
		return within(a, b)
	})
	return sorted
}

func comparator(opt model.SortOption, now time.Time) func(a, b model.Task) int {
	switch opt {
	case model.SortDeadline:
		return func(a, b model.Task) int {
			return cmp.Compare(SmartScore(a, now), SmartScore(b, now))
		}
	case model.SortPriority:
		return func(a, b model.Task) int {
			return cmp.Compare(b.Priority.Weight(), a.Priority.Weight())
		}
	case model.SortCreatedAt:
		return func(a, b model.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	case model.SortTitle:
		// Collators keep internal buffers; one per sort call.
		c := collate.New(language.English)
		return func(a, b model.Task) int {
			return c.CompareString(a.Title, b.Title)
		}
	default:
		return func(model.Task, model.Task) int { return 0 }
	}
}

// Urgency returns the hours from now until the task's deadline. It is
// negative for overdue tasks.
func Urgency(t model.Task, now time.Time) float64 {
	return float64(t.Deadline.Sub(now)) / float64(time.Hour)
}

// SmartScore is the smart-sort key: urgency divided by the priority weight.
// Lower scores sort first.
//
// For overdue tasks the division pulls higher priorities toward zero, so a
// high-priority overdue task ranks after a low-priority one with the same
// urgency. This ordering is kept as is.
func SmartScore(t model.Task, now time.Time) float64 {
	return Urgency(t, now) / float64(t.Priority.Weight())
}

package taskview

import (
	"math"
	"time"

	"github.com/nhle/taskflow/internal/model"
)

// Stats summarizes a task collection.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// ComputeStats counts tasks, sampling the current time once for overdue
// detection.
func ComputeStats(tasks []model.Task) Stats {
	return StatsAt(tasks, time.Now())
}

// StatsAt is ComputeStats with an explicit reference time.
func StatsAt(tasks []model.Task, now time.Time) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		s.Pending++
		if t.Deadline.Before(now) {
			s.Overdue++
		}
	}
	return s
}

// CompletionRate returns the completed share as a whole percentage,
// rounded half away from zero, or 0 for an empty collection.
func (s Stats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
}

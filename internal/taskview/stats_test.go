package taskview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/taskflow/internal/model"
)

func TestStatsAt(t *testing.T) {
	tests := []struct {
		name  string
		tasks []model.Task
		want  Stats
	}{
		{
			name: "empty",
			want: Stats{},
		},
		{
			name: "one due tomorrow, one overdue",
			tasks: []model.Task{
				newTask("a", withPriority(model.PriorityHigh), dueIn(24*time.Hour)),
				newTask("b", withPriority(model.PriorityLow), dueIn(-24*time.Hour)),
			},
			want: Stats{Total: 2, Completed: 0, Pending: 2, Overdue: 1},
		},
		{
			name: "completed overdue tasks are not overdue",
			tasks: []model.Task{
				newTask("a", completed, dueIn(-24*time.Hour)),
				newTask("b", dueIn(-time.Second)),
			},
			want: Stats{Total: 2, Completed: 1, Pending: 1, Overdue: 1},
		},
		{
			name: "deadline equal to now is not overdue",
			tasks: []model.Task{
				newTask("a", dueIn(0)),
			},
			want: Stats{Total: 1, Pending: 1},
		},
		{
			name:  "mixed",
			tasks: mixedTasks(),
			want:  Stats{Total: 7, Completed: 2, Pending: 5, Overdue: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StatsAt(tt.tasks, refNow)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Total, got.Completed+got.Pending)
			assert.LessOrEqual(t, got.Overdue, got.Pending)
		})
	}
}

func TestStats_CompletionRate(t *testing.T) {
	tests := []struct {
		stats Stats
		want  int
	}{
		{Stats{}, 0},
		{Stats{Total: 3, Completed: 1, Pending: 2}, 33},
		{Stats{Total: 3, Completed: 2, Pending: 1}, 67},
		{Stats{Total: 2, Completed: 1, Pending: 1}, 50},
		{Stats{Total: 8, Completed: 5, Pending: 3}, 63},
		{Stats{Total: 4, Completed: 4}, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.stats.CompletionRate(), "%+v", tt.stats)
	}
}

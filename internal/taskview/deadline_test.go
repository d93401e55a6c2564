package taskview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineLabel(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
		want     string
	}{
		{"later today", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC), "Today"},
		{"earlier today", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), "Today"},
		{"tomorrow", time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC), "Overdue (Mar 9)"},
		{"last year", time.Date(2025, 12, 24, 12, 0, 0, 0, time.UTC), "Overdue (Dec 24)"},
		{"next month", time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC), "Apr 1, 2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeadlineLabel(tt.deadline, refNow))
		})
	}
}

func TestDeadlineLabel_UsesLocationOfNow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2026, 3, 10, 20, 0, 0, 0, tokyo)
	// 2026-03-11 03:00 in Tokyo.
	deadline := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, "Tomorrow", DeadlineLabel(deadline, now))
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		attempts int
		expected int
	}{
		{
			name:     "no attempts",
			correct:  0,
			attempts: 0,
			expected: 0,
		},
		{
			name:     "all correct",
			correct:  3,
			attempts: 3,
			expected: 100,
		},
		{
			name:     "rounds down",
			correct:  1,
			attempts: 3,
			expected: 33,
		},
		{
			name:     "rounds up",
			correct:  2,
			attempts: 3,
			expected: 67,
		},
		{
			name:     "half rounds up",
			correct:  1,
			attempts: 8,
			expected: 13,
		},
		{
			name:     "four of five",
			correct:  4,
			attempts: 5,
			expected: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Accuracy(tt.correct, tt.attempts))
		})
	}
}

func TestNewSummary(t *testing.T) {
	s := NewSummary(4, 1, 5, 3)

	assert.Equal(t, Summary{
		Accuracy:      80,
		TotalAttempts: 5,
		Correct:       4,
		Wrong:         1,
		TotalWords:    3,
	}, s)
}

func TestSessionResult_Duration(t *testing.T) {
	start := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	r := SessionResult{StartedAt: start, FinishedAt: start.Add(90 * time.Second)}
	assert.Equal(t, 90*time.Second, r.Duration())

	r = SessionResult{StartedAt: start, FinishedAt: start.Add(-time.Second)}
	assert.Equal(t, time.Duration(0), r.Duration())
}

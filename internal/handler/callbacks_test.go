package handler

import (
	"testing"

	"wordmatch/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal string",
			input:    "test_data",
			expected: "test_data",
		},
		{
			name:     "string with whitespace",
			input:    "  test_data  ",
			expected: "test_data",
		},
		{
			name:     "string with newline",
			input:    "test\ndata",
			expected: "testdata",
		},
		{
			name:     "string with tab",
			input:    "test\tdata",
			expected: "testdata",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "string with unprintable characters",
			input:    "test\x00data\x01",
			expected: "testdata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParsePick(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedSide domain.Side
		expectedID   int
		expectError  bool
	}{
		{name: "left item", input: "l|3", expectedSide: domain.SideLeft, expectedID: 3},
		{name: "right item", input: "r|0", expectedSide: domain.SideRight, expectedID: 0},
		{name: "with whitespace", input: " r|9\n", expectedSide: domain.SideRight, expectedID: 9},
		{name: "unknown side", input: "x|1", expectError: true},
		{name: "missing separator", input: "l3", expectError: true},
		{name: "not a number", input: "l|three", expectError: true},
		{name: "negative item", input: "l|-1", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, id, err := parsePick(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSide, side)
			assert.Equal(t, tt.expectedID, id)
		})
	}
}

func TestStatsText(t *testing.T) {
	assert.Contains(t, statsText(&domain.PlayerStats{}), "هنوز")

	text := statsText(&domain.PlayerStats{
		SessionsPlayed:  2,
		TotalAttempts:   15,
		Correct:         12,
		Wrong:           3,
		AverageAccuracy: 79.5,
		BestAccuracy:    90,
	})
	assert.Contains(t, text, "بازی‌ها: 2")
	assert.Contains(t, text, "بهترین امتیاز: 90")
}

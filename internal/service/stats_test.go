package service

import (
	"context"
	"fmt"
	"testing"

	"wordmatch/internal/domain"
	"wordmatch/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestStatsService_CleanupOldData(t *testing.T) {
	tests := []struct {
		name          string
		mockError     error
		expectedError bool
	}{
		{
			name:          "successful cleanup",
			mockError:     nil,
			expectedError: false,
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockResultRepository)
			mockRepo.On("CleanOldResults", mock.Anything, 60).Return(tt.mockError)

			service := NewStatsService(mockRepo, testutil.NewTestLogger())

			err := service.CleanupOldData(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStatsService_Record(t *testing.T) {
	result := domain.SessionResult{
		SessionID: "s-1",
		PlayerID:  "web:abc",
		Channel:   domain.ChannelWeb,
		Summary:   domain.NewSummary(4, 1, 5, 3),
	}

	tests := []struct {
		name          string
		result        domain.SessionResult
		mockError     error
		callsRepo     bool
		expectedError bool
	}{
		{
			name:      "saved",
			result:    result,
			callsRepo: true,
		},
		{
			name:          "repository error",
			result:        result,
			mockError:     fmt.Errorf("db error"),
			callsRepo:     true,
			expectedError: true,
		},
		{
			name:          "missing player",
			result:        domain.SessionResult{SessionID: "s-1"},
			callsRepo:     false,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockResultRepository)
			if tt.callsRepo {
				mockRepo.On("SaveResult", mock.Anything, tt.result).Return(tt.mockError)
			}

			service := NewStatsService(mockRepo, testutil.NewTestLogger())
			err := service.Record(context.Background(), tt.result)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStatsService_RecentResults_ClampsLimit(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		expected int
	}{
		{name: "zero uses default", limit: 0, expected: 10},
		{name: "negative uses default", limit: -3, expected: 10},
		{name: "in range", limit: 25, expected: 25},
		{name: "too large", limit: 500, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockResultRepository)
			mockRepo.On("GetRecentResults", mock.Anything, "p", tt.expected).Return([]domain.SessionResult{}, nil)

			service := NewStatsService(mockRepo, testutil.NewTestLogger())
			_, err := service.RecentResults(context.Background(), "p", tt.limit)

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestStatsService_PlayerStats(t *testing.T) {
	stats := &domain.PlayerStats{SessionsPlayed: 3, BestAccuracy: 100}
	mockRepo := new(testutil.MockResultRepository)
	mockRepo.On("GetPlayerStats", mock.Anything, "tg:1").Return(stats, nil)

	service := NewStatsService(mockRepo, testutil.NewTestLogger())
	got, err := service.PlayerStats(context.Background(), "tg:1")

	assert.NoError(t, err)
	assert.Equal(t, stats, got)
	mockRepo.AssertExpectations(t)
}

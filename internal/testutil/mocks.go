package testutil

import (
	"context"

	"wordmatch/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockPlayerRepository is a mock for PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) IsAuthorized(playerID int64) (bool, error) {
	args := m.Called(playerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlayerRepository) AuthorizePlayer(playerID int64) error {
	args := m.Called(playerID)
	return args.Error(0)
}

func (m *MockPlayerRepository) EnsurePlayerExists(playerID int64) error {
	args := m.Called(playerID)
	return args.Error(0)
}

// MockResultRepository is a mock for ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) SaveResult(ctx context.Context, result domain.SessionResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultRepository) GetPlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerStats), args.Error(1)
}

func (m *MockResultRepository) GetRecentResults(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionResult), args.Error(1)
}

func (m *MockResultRepository) CleanOldResults(ctx context.Context, days int) error {
	args := m.Called(ctx, days)
	return args.Error(0)
}

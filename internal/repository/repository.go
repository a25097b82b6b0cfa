package repository

import (
	"context"

	"wordmatch/internal/domain"
)

// PlayerRepository defines bot player access operations
type PlayerRepository interface {
	IsAuthorized(playerID int64) (bool, error)
	AuthorizePlayer(playerID int64) error
	EnsurePlayerExists(playerID int64) error
}

// ResultRepository defines finished session storage
type ResultRepository interface {
	SaveResult(ctx context.Context, result domain.SessionResult) error
	GetPlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error)
	GetRecentResults(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error)
	CleanOldResults(ctx context.Context, days int) error
}

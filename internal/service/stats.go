package service

import (
	"context"
	"fmt"

	"wordmatch/internal/domain"
	"wordmatch/internal/repository"

	"go.uber.org/zap"
)

const (
	retentionDays      = 60
	defaultResultLimit = 10
	maxResultLimit     = 50
)

// StatsService handles finished session results and cleanup
type StatsService struct {
	resultRepo repository.ResultRepository
	logger     *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(resultRepo repository.ResultRepository, logger *zap.Logger) *StatsService {
	return &StatsService{
		resultRepo: resultRepo,
		logger:     logger,
	}
}

// Record stores a finished session
func (s *StatsService) Record(ctx context.Context, result domain.SessionResult) error {
	if result.SessionID == "" || result.PlayerID == "" {
		return fmt.Errorf("session and player id are required")
	}
	if err := s.resultRepo.SaveResult(ctx, result); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	s.logger.Info("Session result recorded",
		zap.String("session_id", result.SessionID),
		zap.String("player_id", result.PlayerID),
		zap.Int("accuracy", result.Summary.Accuracy),
	)
	return nil
}

// PlayerStats returns aggregated stats of a player
func (s *StatsService) PlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error) {
	return s.resultRepo.GetPlayerStats(ctx, playerID)
}

// RecentResults returns the latest results of a player; limit is clamped to [1, 50]
func (s *StatsService) RecentResults(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error) {
	if limit < 1 {
		limit = defaultResultLimit
	}
	if limit > maxResultLimit {
		limit = maxResultLimit
	}
	return s.resultRepo.GetRecentResults(ctx, playerID, limit)
}

// CleanupOldData removes results older than 60 days
func (s *StatsService) CleanupOldData(ctx context.Context) error {
	s.logger.Info("Starting cleanup of old results", zap.Int("retention_days", retentionDays))

	err := s.resultRepo.CleanOldResults(ctx, retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old results", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}

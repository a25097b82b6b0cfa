// Package memory holds in-process repository implementations used when no
// database is configured. State is lost when the process restarts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"wordmatch/internal/domain"
)

// PlayerRepo is a map-backed repository.PlayerRepository
type PlayerRepo struct {
	mu      sync.RWMutex
	players map[int64]bool // player ID -> authorized
}

// NewPlayerRepo creates an empty in-memory player repository
func NewPlayerRepo() *PlayerRepo {
	return &PlayerRepo{players: make(map[int64]bool)}
}

func (r *PlayerRepo) IsAuthorized(playerID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players[playerID], nil
}

func (r *PlayerRepo) AuthorizePlayer(playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[playerID] = true
	return nil
}

func (r *PlayerRepo) EnsurePlayerExists(playerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[playerID]; !ok {
		r.players[playerID] = false
	}
	return nil
}

// ResultRepo is a map-backed repository.ResultRepository
type ResultRepo struct {
	mu      sync.RWMutex
	results map[string]domain.SessionResult // keyed by session ID
	now     func() time.Time
}

// NewResultRepo creates an empty in-memory result repository
func NewResultRepo() *ResultRepo {
	return &ResultRepo{results: make(map[string]domain.SessionResult), now: time.Now}
}

// SaveResult keeps the first result stored for a session ID
func (r *ResultRepo) SaveResult(ctx context.Context, res domain.SessionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.results[res.SessionID]; !ok {
		r.results[res.SessionID] = res
	}
	return nil
}

func (r *ResultRepo) GetPlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s domain.PlayerStats
	accuracySum := 0
	for _, res := range r.results {
		if res.PlayerID != playerID {
			continue
		}
		s.SessionsPlayed++
		s.TotalAttempts += res.Summary.TotalAttempts
		s.Correct += res.Summary.Correct
		s.Wrong += res.Summary.Wrong
		accuracySum += res.Summary.Accuracy
		if res.Summary.Accuracy > s.BestAccuracy {
			s.BestAccuracy = res.Summary.Accuracy
		}
	}
	if s.SessionsPlayed > 0 {
		s.AverageAccuracy = float64(accuracySum) / float64(s.SessionsPlayed)
	}
	return &s, nil
}

// GetRecentResults returns results newest first
func (r *ResultRepo) GetRecentResults(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.SessionResult
	for _, res := range r.results {
		if res.PlayerID == playerID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FinishedAt.After(out[j].FinishedAt)
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ResultRepo) CleanOldResults(ctx context.Context, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().AddDate(0, 0, -days)
	for id, res := range r.results {
		if res.FinishedAt.Before(cutoff) {
			delete(r.results, id)
		}
	}
	return nil
}

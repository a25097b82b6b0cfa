package postgres

import (
	"context"
	"database/sql"

	"wordmatch/internal/domain"
)

// ResultRepo implements repository.ResultRepository
type ResultRepo struct {
	db *sql.DB
}

// NewResultRepo creates a new result repository
func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveResult stores a finished session; saving the same session twice is a no-op
func (r *ResultRepo) SaveResult(ctx context.Context, res domain.SessionResult) error {
	query := `
		INSERT INTO session_results
			(session_id, player_id, channel, accuracy, total_attempts, correct, wrong, total_words, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (session_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		res.SessionID,
		res.PlayerID,
		string(res.Channel),
		res.Summary.Accuracy,
		res.Summary.TotalAttempts,
		res.Summary.Correct,
		res.Summary.Wrong,
		res.Summary.TotalWords,
		res.StartedAt,
		res.FinishedAt,
	)
	return err
}

// GetPlayerStats aggregates every stored result of a player
func (r *ResultRepo) GetPlayerStats(ctx context.Context, playerID string) (*domain.PlayerStats, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(total_attempts), 0),
			COALESCE(SUM(correct), 0),
			COALESCE(SUM(wrong), 0),
			COALESCE(AVG(accuracy), 0),
			COALESCE(MAX(accuracy), 0)
		FROM session_results
		WHERE player_id = $1
	`
	var s domain.PlayerStats
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(
		&s.SessionsPlayed, &s.TotalAttempts, &s.Correct, &s.Wrong, &s.AverageAccuracy, &s.BestAccuracy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetRecentResults returns the latest results of a player, newest first
func (r *ResultRepo) GetRecentResults(ctx context.Context, playerID string, limit int) ([]domain.SessionResult, error) {
	query := `
		SELECT session_id, player_id, channel, accuracy, total_attempts, correct, wrong, total_words, started_at, finished_at
		FROM session_results
		WHERE player_id = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SessionResult
	for rows.Next() {
		var res domain.SessionResult
		var channel string
		if err := rows.Scan(
			&res.SessionID, &res.PlayerID, &channel,
			&res.Summary.Accuracy, &res.Summary.TotalAttempts, &res.Summary.Correct, &res.Summary.Wrong, &res.Summary.TotalWords,
			&res.StartedAt, &res.FinishedAt,
		); err != nil {
			return nil, err
		}
		res.Channel = domain.Channel(channel)
		results = append(results, res)
	}

	return results, rows.Err()
}

// CleanOldResults deletes results finished more than the given number of days ago
func (r *ResultRepo) CleanOldResults(ctx context.Context, days int) error {
	query := `
		DELETE FROM session_results
		WHERE finished_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.ExecContext(ctx, query, days)
	return err
}

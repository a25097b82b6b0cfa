package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wordmatch/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var resultColumns = []string{
	"session_id", "player_id", "channel", "accuracy", "total_attempts",
	"correct", "wrong", "total_words", "started_at", "finished_at",
}

func TestResultRepo_SaveResult(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	started := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	res := domain.SessionResult{
		SessionID:  "s-1",
		PlayerID:   "tg:123",
		Channel:    domain.ChannelTelegram,
		Summary:    domain.NewSummary(4, 1, 5, 3),
		StartedAt:  started,
		FinishedAt: started.Add(time.Minute),
	}

	mock.ExpectExec("INSERT INTO session_results").
		WithArgs("s-1", "tg:123", "telegram", 80, 5, 4, 1, 3, started, started.Add(time.Minute)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.SaveResult(context.Background(), res)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_GetPlayerStats(t *testing.T) {
	tests := []struct {
		name          string
		mockRows      *sqlmock.Rows
		mockError     error
		expected      *domain.PlayerStats
		expectedError bool
	}{
		{
			name: "stats found",
			mockRows: sqlmock.NewRows([]string{"count", "attempts", "correct", "wrong", "avg", "max"}).
				AddRow(2, 30, 25, 5, 82.5, 90),
			expected: &domain.PlayerStats{
				SessionsPlayed:  2,
				TotalAttempts:   30,
				Correct:         25,
				Wrong:           5,
				AverageAccuracy: 82.5,
				BestAccuracy:    90,
			},
		},
		{
			name: "no results yet",
			mockRows: sqlmock.NewRows([]string{"count", "attempts", "correct", "wrong", "avg", "max"}).
				AddRow(0, 0, 0, 0, 0.0, 0),
			expected: &domain.PlayerStats{},
		},
		{
			name:          "database error",
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			repo := NewResultRepo(db)

			q := mock.ExpectQuery("SELECT COUNT\\(\\*\\)").WithArgs("web:abc")
			if tt.mockError != nil {
				q.WillReturnError(tt.mockError)
			} else {
				q.WillReturnRows(tt.mockRows)
			}

			stats, err := repo.GetPlayerStats(context.Background(), "web:abc")

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, stats)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, stats)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestResultRepo_GetRecentResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(resultColumns).
		AddRow("s-2", "web:abc", "web", 100, 10, 10, 0, 10, now.Add(-time.Minute), now).
		AddRow("s-1", "web:abc", "web", 50, 4, 2, 2, 2, now.Add(-time.Hour), now.Add(-50*time.Minute))

	mock.ExpectQuery("SELECT session_id, player_id, channel").
		WithArgs("web:abc", 10).
		WillReturnRows(rows)

	results, err := repo.GetRecentResults(context.Background(), "web:abc", 10)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "s-2", results[0].SessionID)
	assert.Equal(t, domain.ChannelWeb, results[0].Channel)
	assert.Equal(t, 100, results[0].Summary.Accuracy)
	assert.Equal(t, 2, results[1].Summary.Wrong)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_GetRecentResults_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	mock.ExpectQuery("SELECT session_id, player_id, channel").
		WithArgs("web:abc", 5).
		WillReturnError(fmt.Errorf("db error"))

	results, err := repo.GetRecentResults(context.Background(), "web:abc", 5)

	assert.Error(t, err)
	assert.Nil(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_GetRecentResults_ScanError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	rows := sqlmock.NewRows(resultColumns).
		AddRow("s-1", "web:abc", "web", "invalid", 4, 2, 2, 2, time.Now(), time.Now())

	mock.ExpectQuery("SELECT session_id, player_id, channel").
		WithArgs("web:abc", 5).
		WillReturnRows(rows)

	results, err := repo.GetRecentResults(context.Background(), "web:abc", 5)

	assert.Error(t, err)
	assert.Nil(t, results)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResultRepo_CleanOldResults(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewResultRepo(db)

	mock.ExpectExec("DELETE FROM session_results").
		WithArgs(60).
		WillReturnResult(sqlmock.NewResult(0, 12))

	err = repo.CleanOldResults(context.Background(), 60)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

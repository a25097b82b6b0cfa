package domain

import (
	"math"
	"time"
)

// Channel is the front end a session was played on
type Channel string

const (
	ChannelWeb      Channel = "web"
	ChannelTelegram Channel = "telegram"
)

// Summary is the final tally of a session
type Summary struct {
	Accuracy      int `json:"accuracy"`
	TotalAttempts int `json:"totalAttempts"`
	Correct       int `json:"correct"`
	Wrong         int `json:"wrong"`
	TotalWords    int `json:"totalWords"`
}

// NewSummary builds a summary and computes its accuracy
func NewSummary(correct, wrong, totalAttempts, totalWords int) Summary {
	return Summary{
		Accuracy:      Accuracy(correct, totalAttempts),
		TotalAttempts: totalAttempts,
		Correct:       correct,
		Wrong:         wrong,
		TotalWords:    totalWords,
	}
}

// Accuracy returns round(100 * correct / attempts), or 0 without attempts
func Accuracy(correct, attempts int) int {
	if attempts <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(attempts) * 100))
}

// SessionResult is a finished session as stored in the database
type SessionResult struct {
	SessionID  string    `json:"sessionId"`
	PlayerID   string    `json:"playerId"`
	Channel    Channel   `json:"channel"`
	Summary    Summary   `json:"summary"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Duration returns how long the session took
func (r SessionResult) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// PlayerStats aggregates all stored results of one player
type PlayerStats struct {
	SessionsPlayed  int     `json:"sessionsPlayed"`
	TotalAttempts   int     `json:"totalAttempts"`
	Correct         int     `json:"correct"`
	Wrong           int     `json:"wrong"`
	AverageAccuracy float64 `json:"averageAccuracy"`
	BestAccuracy    int     `json:"bestAccuracy"`
}

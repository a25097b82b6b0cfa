package domain

import (
	"strconv"
	"time"
)

// Player represents a bot player
type Player struct {
	PlayerID   int64
	Authorized bool
	CreatedAt  time.Time
}

// TelegramPlayerID returns the results key used for a Telegram user
func TelegramPlayerID(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}

// PlayerState represents a player's current interaction state
type PlayerState string

const (
	StateIdle    PlayerState = "idle"
	StatePlaying PlayerState = "playing"
)

// StateData holds temporary data for a player's current state
type StateData struct {
	State     PlayerState
	SessionID string
	MessageID int // For editing the board message
}

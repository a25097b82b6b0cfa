package service

import (
	"wordmatch/internal/repository"
)

// AuthService handles bot access
type AuthService struct {
	playerRepo  repository.PlayerRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(playerRepo repository.PlayerRepository, botPassword string) *AuthService {
	return &AuthService{
		playerRepo:  playerRepo,
		botPassword: botPassword,
	}
}

// CheckPassword verifies if provided password matches
func (s *AuthService) CheckPassword(password string) bool {
	return s.botPassword != "" && password == s.botPassword
}

// IsAuthorized checks if player is authorized
func (s *AuthService) IsAuthorized(playerID int64) (bool, error) {
	return s.playerRepo.IsAuthorized(playerID)
}

// AuthorizePlayer authorizes a player
func (s *AuthService) AuthorizePlayer(playerID int64) error {
	return s.playerRepo.AuthorizePlayer(playerID)
}

// EnsurePlayerExists creates player record if doesn't exist
func (s *AuthService) EnsurePlayerExists(playerID int64) error {
	return s.playerRepo.EnsurePlayerExists(playerID)
}

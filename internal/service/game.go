package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"wordmatch/internal/domain"
	"wordmatch/internal/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// ResultRecorder stores finished sessions
type ResultRecorder interface {
	Record(ctx context.Context, result domain.SessionResult) error
}

// liveGame is one running session; mu serializes every call into ctrl
type liveGame struct {
	mu        sync.Mutex
	id        string
	playerID  string
	channel   domain.Channel
	ctrl      *session.Controller
	renderer  session.Renderer
	startedAt time.Time
	lastSeen  time.Time
	recorded  bool
}

// GameInfo is a read-only snapshot of a live session
type GameInfo struct {
	ID        string
	PlayerID  string
	Channel   domain.Channel
	Score     session.Score
	Over      bool
	StartedAt time.Time
	Renderer  session.Renderer
}

// GameService owns the live sessions keyed by ID
type GameService struct {
	entries  []domain.Entry
	recorder ResultRecorder
	logger   *zap.Logger
	opts     []session.Option
	now      func() time.Time

	mu    sync.RWMutex
	games map[string]*liveGame
}

// NewGameService creates a game service over the loaded word list
func NewGameService(entries []domain.Entry, recorder ResultRecorder, logger *zap.Logger, opts ...session.Option) *GameService {
	return &GameService{
		entries:  entries,
		recorder: recorder,
		logger:   logger,
		opts:     opts,
		now:      time.Now,
		games:    make(map[string]*liveGame),
	}
}

// WordCount returns the number of loaded pairs
func (s *GameService) WordCount() int {
	return len(s.entries)
}

// Start creates a session, shows its first page and returns its ID
func (s *GameService) Start(ctx context.Context, playerID string, channel domain.Channel, renderer session.Renderer) (string, error) {
	now := s.now()
	g := &liveGame{
		id:        uuid.NewString(),
		playerID:  playerID,
		channel:   channel,
		ctrl:      session.New(s.entries, renderer, s.opts...),
		renderer:  renderer,
		startedAt: now,
		lastSeen:  now,
	}

	// not yet visible to other callers, so g.mu is not needed until it is stored
	if err := g.ctrl.Start(); err != nil {
		return "", err
	}
	s.afterMove(ctx, g)

	s.mu.Lock()
	s.games[g.id] = g
	s.mu.Unlock()

	s.logger.Info("Session started",
		zap.String("session_id", g.id),
		zap.String("player_id", playerID),
		zap.String("channel", string(channel)),
		zap.Int("words", len(s.entries)),
	)
	return g.id, nil
}

// Select forwards a selection to the session.
// The outcome is nil when no match attempt was resolved.
func (s *GameService) Select(ctx context.Context, id string, side domain.Side, item int) (*session.Outcome, error) {
	g, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	out, err := g.ctrl.Select(side, item)
	if err != nil {
		return nil, err
	}
	g.lastSeen = s.now()

	if out != nil {
		s.logger.Debug("Match attempt",
			zap.String("session_id", id),
			zap.Bool("correct", out.Correct),
			zap.String("source", out.Left.Source),
		)
	}
	return out, nil
}

// Advance moves the session to its next page and reports whether it ended
func (s *GameService) Advance(ctx context.Context, id string) (bool, error) {
	g, err := s.lookup(id)
	if err != nil {
		return false, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.ctrl.Advance(); err != nil {
		return g.ctrl.Over(), err
	}
	g.lastSeen = s.now()
	s.afterMove(ctx, g)
	return g.ctrl.Over(), nil
}

// Restart drops a session and starts a new one for the same player and renderer
func (s *GameService) Restart(ctx context.Context, id string) (string, error) {
	g, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	s.Drop(id)

	g.mu.Lock()
	playerID, channel, renderer := g.playerID, g.channel, g.renderer
	g.mu.Unlock()

	return s.Start(ctx, playerID, channel, renderer)
}

// Info returns a snapshot of a session
func (s *GameService) Info(id string) (*GameInfo, error) {
	g, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	return &GameInfo{
		ID:        g.id,
		PlayerID:  g.playerID,
		Channel:   g.channel,
		Score:     g.ctrl.Score(),
		Over:      g.ctrl.Over(),
		StartedAt: g.startedAt,
		Renderer:  g.renderer,
	}, nil
}

// Drop forgets a session
func (s *GameService) Drop(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// EvictIdle drops sessions untouched for longer than maxIdle and returns how many were dropped
func (s *GameService) EvictIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.RLock()
	var stale []string
	for id, g := range s.games {
		g.mu.Lock()
		if g.lastSeen.Before(cutoff) {
			stale = append(stale, id)
		}
		g.mu.Unlock()
	}
	s.mu.RUnlock()

	for _, id := range stale {
		s.Drop(id)
	}
	if len(stale) > 0 {
		s.logger.Info("Evicted idle sessions", zap.Int("count", len(stale)))
	}
	return len(stale)
}

// Len returns the number of sessions held
func (s *GameService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func (s *GameService) lookup(id string) (*liveGame, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return g, nil
}

// afterMove records the result once a session has ended; callers hold g.mu
func (s *GameService) afterMove(ctx context.Context, g *liveGame) {
	if !g.ctrl.Over() || g.recorded {
		return
	}
	g.recorded = true

	summary := g.ctrl.Summary()
	s.logger.Info("Session finished",
		zap.String("session_id", g.id),
		zap.Int("accuracy", summary.Accuracy),
		zap.Int("attempts", summary.TotalAttempts),
	)
	if s.recorder == nil {
		return
	}

	err := s.recorder.Record(ctx, domain.SessionResult{
		SessionID:  g.id,
		PlayerID:   g.playerID,
		Channel:    g.channel,
		Summary:    summary,
		StartedAt:  g.startedAt,
		FinishedAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("Failed to record session result",
			zap.String("session_id", g.id),
			zap.Error(err),
		)
	}
}

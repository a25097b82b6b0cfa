package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"wordmatch/internal/domain"
	"wordmatch/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type selectReq struct {
	Side string `json:"side"` // "left" | "right"
	Item int    `json:"item"`
}

// matchRes reports a resolved match attempt
type matchRes struct {
	Correct      bool   `json:"correct"`
	PageComplete bool   `json:"pageComplete"`
	Source       string `json:"source"`
}

type selectRes struct {
	Board
	Match *matchRes `json:"match,omitempty"`
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	board := NewBoardRenderer()
	id, err := s.games.Start(r.Context(), playerFrom(r.Context()), domain.ChannelWeb, board)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, board.Snapshot(id))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	board, err := s.boardFor(r.Context(), id)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board.Snapshot(id))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	side, ok := domain.ParseSide(req.Side)
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_side")
		return
	}

	id := chi.URLParam(r, "id")
	board, err := s.boardFor(r.Context(), id)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	out, err := s.games.Select(r.Context(), id, side, req.Item)
	if err != nil {
		s.writeGameError(w, err)
		return
	}

	res := selectRes{Board: board.Snapshot(id)}
	if out != nil {
		res.Match = &matchRes{
			Correct:      out.Correct,
			PageComplete: out.PageComplete,
			Source:       out.Left.Source,
		}
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	board, err := s.boardFor(r.Context(), id)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	if _, err := s.games.Advance(r.Context(), id); err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, board.Snapshot(id))
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	board, err := s.boardFor(r.Context(), id)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	newID, err := s.games.Restart(r.Context(), id)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	s.logger.Debug("Session restarted", zap.String("old_id", id), zap.String("session_id", newID))
	writeJSON(w, http.StatusCreated, board.Snapshot(newID))
}

// boardFor returns the board of a web session owned by the requesting player.
// Sessions of other players or channels look like unknown ones.
func (s *Server) boardFor(ctx context.Context, id string) (*BoardRenderer, error) {
	info, err := s.games.Info(id)
	if err != nil {
		return nil, err
	}
	if info.PlayerID != playerFrom(ctx) {
		return nil, service.ErrSessionNotFound
	}
	board, ok := info.Renderer.(*BoardRenderer)
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	return board, nil
}

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// resolvePlayer maps the "me" alias to the caller's cookie identity
func resolvePlayer(r *http.Request) string {
	player := chi.URLParam(r, "player")
	if player == "me" {
		return playerFrom(r.Context())
	}
	return player
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.PlayerStats(r.Context(), resolvePlayer(r))
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handlePlayerResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.stats.RecentResults(r.Context(), resolvePlayer(r), queryInt(r, "limit", 0))
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleWordStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"words": s.games.WordCount()})
}

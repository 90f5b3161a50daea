// apps/term/internal/httpserver/routes_puzzle.go
//
// Puzzle routes mirroring the upstream Wordle API:
//   - GET /svc/wordle/v2/{date}.json  → {"id","solution","print_date","days_since_launch"}
//   - GET /games-assets/v2/words.js   → JS bundle holding `const o=[...]`

package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// launchDate is day zero for days_since_launch.
const launchDate = "2021-06-19"

// puzzleRes mirrors the fields of the upstream puzzle document.
type puzzleRes struct {
	ID              int    `json:"id"`
	Solution        string `json:"solution"`
	PrintDate       string `json:"print_date"`
	DaysSinceLaunch int    `json:"days_since_launch"`
	Editor          string `json:"editor"`
}

func (s *Server) mountPuzzle(r chi.Router) {
	r.Get("/svc/wordle/v2/{date}.json", s.handlePuzzle)
	r.Get("/games-assets/v2/words.js", s.handleBundle)
}

// handlePuzzle returns the answer for the requested date.
func (s *Server) handlePuzzle(w http.ResponseWriter, r *http.Request) {
	date, err := daily.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	answer, err := s.puzzle.Solution(r.Context(), date)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("pick answer")
		writeError(w, http.StatusInternalServerError, "no_answer")
		return
	}

	launch, _ := daily.ParseDate(launchDate)
	days := int(date.Sub(launch).Hours() / 24)
	writeJSON(w, http.StatusOK, puzzleRes{
		ID:              daily.WordIndex(date, s.puzzle.Salt, len(s.puzzle.Answers)),
		Solution:        strings.ToLower(answer),
		PrintDate:       daily.DateKey(date),
		DaysSinceLaunch: days,
		Editor:          "wordle-term",
	})
}

// handleBundle serves the guessable words in the upstream bundle format.
func (s *Server) handleBundle(w http.ResponseWriter, r *http.Request) {
	b, err := words.RenderBundle(s.words.Words())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed")
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

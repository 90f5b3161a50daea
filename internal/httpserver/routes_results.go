// apps/term/internal/httpserver/routes_results.go
//
// Result routes:
//   - POST /results      → record a finished game for the token's player
//   - GET  /leaderboard  → top 20 wins for today (or ?date=YYYY-MM-DD)
//
// Submitted words are re-scored here against the server's own answer, so a
// client can report how it played but not what the verdicts were.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/term/internal/auth"
	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/report"
	"github.com/robalobadob/wordle/apps/term/internal/store"
)

// maxElapsed bounds the play time a submission may report.
const maxElapsed = 24 * time.Hour

type ctxPlayerKey struct{}

func contextWithPlayer(r *http.Request, player string) context.Context {
	return context.WithValue(r.Context(), ctxPlayerKey{}, player)
}

func (s *Server) mountResults(r chi.Router) {
	r.With(s.requireToken).Post("/results", s.handleSubmit)
	r.Get("/leaderboard", s.handleLeaderboard)
}

// requireToken admits requests carrying a valid bearer token and stores the
// token's player in the request context.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(s.secret) == 0 {
			writeError(w, http.StatusForbidden, "submissions_disabled")
			return
		}
		tok, err := auth.Bearer(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		player, err := auth.Verify(s.secret, tok)
		if err != nil {
			hlog.FromRequest(r).Warn().Err(err).Msg("rejected token")
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		next.ServeHTTP(w, r.WithContext(contextWithPlayer(r, player)))
	})
}

// handleSubmit re-plays the submitted words and stores the result.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	player, _ := r.Context().Value(ctxPlayerKey{}).(string)

	var sub report.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if sub.ElapsedMs < 0 || sub.ElapsedMs > maxElapsed.Milliseconds() {
		writeError(w, http.StatusBadRequest, "bad_elapsed")
		return
	}
	date, err := daily.ParseDate(sub.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	answer, err := s.puzzle.Solution(r.Context(), date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_answer")
		return
	}

	sess := game.NewSession(answer, s.words.With(answer))
	if n := sess.Replay(sub.Words); n != len(sub.Words) || !sess.Finished() {
		writeError(w, http.StatusBadRequest, "invalid_game")
		return
	}

	played, err := s.store.AlreadyPlayed(r.Context(), player, sub.Date)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("already played")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if played {
		writeError(w, http.StatusConflict, "already_played")
		return
	}

	res, err := store.FromSession(player, sub.Date, sess, time.Duration(sub.ElapsedMs)*time.Millisecond)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_game")
		return
	}
	res.PlayedAt = s.now().UTC()
	inserted, err := s.store.Save(r.Context(), res)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("save result")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if !inserted {
		// Lost a race with a concurrent submission for the same day.
		writeError(w, http.StatusConflict, "already_played")
		return
	}
	hlog.FromRequest(r).Info().Str("player", player).Str("date", sub.Date).Bool("won", res.Won).Msg("result recorded")
	writeJSON(w, http.StatusCreated, res)
}

// lbRes is returned by /leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []store.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = daily.DateKey(s.now())
	} else if _, err := daily.ParseDate(date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	rows, err := s.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			hlog.FromRequest(r).Error().Err(err).Msg("leaderboard")
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}

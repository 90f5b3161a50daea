// apps/term/internal/httpserver/routes_auth.go
//
// Player accounts:
//   - POST /auth/signup → create an account, respond with a token
//   - POST /auth/login  → exchange name + password for a token
//
// Tokens are the same HS256 tokens POST /results accepts, so a client can
// either hold the shared secret or log in.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/wordle/apps/term/internal/auth"
	"github.com/robalobadob/wordle/apps/term/internal/store"
)

// tokenTTL is how long login tokens stay valid.
const tokenTTL = 14 * 24 * time.Hour

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenRes struct {
	Player    string    `json:"player"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) mountAuth(r chi.Router) {
	r.Post("/auth/signup", s.handleSignup)
	r.Post("/auth/login", s.handleLogin)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if len(s.secret) == 0 {
		writeError(w, http.StatusForbidden, "accounts_disabled")
		return
	}
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	name := auth.NormalizeName(req.Name)
	if err := auth.ValidateSignup(name, req.Password); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	p := store.NewPlayer(name, hash)
	if err := s.store.CreatePlayer(r.Context(), p); err != nil {
		if errors.Is(err, store.ErrNameTaken) {
			writeError(w, http.StatusConflict, "name_taken")
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("create player")
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	hlog.FromRequest(r).Info().Str("player", p.Name).Msg("player registered")
	s.writeToken(w, http.StatusCreated, p.Name)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if len(s.secret) == 0 {
		writeError(w, http.StatusForbidden, "accounts_disabled")
		return
	}
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	p, err := s.store.FindPlayer(r.Context(), auth.NormalizeName(req.Name))
	if err != nil || !auth.CheckPassword(p.PasswordHash, req.Password) {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			hlog.FromRequest(r).Error().Err(err).Msg("find player")
		}
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}
	s.writeToken(w, http.StatusOK, p.Name)
}

func (s *Server) writeToken(w http.ResponseWriter, status int, player string) {
	exp := s.now().Add(tokenTTL)
	tok, err := auth.Sign(s.secret, player, tokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, status, tokenRes{Player: player, Token: tok, ExpiresAt: exp.UTC()})
}

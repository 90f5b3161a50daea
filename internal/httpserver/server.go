// apps/term/internal/httpserver/server.go
//
// HTTP puzzle server.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Puzzle endpoints shaped like the upstream API, so the terminal client's NYT
//     provider can point at this server: see routes_puzzle.go.
//   - Player accounts (bcrypt passwords, HS256 tokens): see routes_auth.go.
//   - Result submission (bearer token) and the daily leaderboard.
//
// Notes:
//   - Daily answers come from the HMAC-based local provider; every server sharing
//     a salt serves the same word.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/provider"
	"github.com/robalobadob/wordle/apps/term/internal/store"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// Server bundles router, puzzle source, word set and result store.
type Server struct {
	r      *chi.Mux
	puzzle *provider.Local
	words  *words.Set
	store  store.Store
	secret []byte
	now    func() time.Time
}

// Option customizes a Server.
type Option func(*Server)

// WithClock overrides the server clock (tests).
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New constructs a Server, installs middleware, and registers routes.
// An empty secret disables POST /results.
func New(puzzle *provider.Local, st store.Store, secret string, opts ...Option) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		puzzle: puzzle,
		words:  words.NewSet(puzzle.Answers, puzzle.Allowed),
		store:  st,
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-term","endpoints":["/health","/svc/wordle/v2/{date}.json","/games-assets/v2/words.js","POST /auth/signup","POST /auth/login","POST /results","/leaderboard"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountPuzzle(s.r)
	s.mountAuth(s.r)
	s.mountResults(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Handler exposes the router (useful for tests and embedding).
func (s *Server) Handler() http.Handler { return s.r }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("http server stopped")
	return nil
}

// Package sshserver lets players connect with any SSH client and play the
// daily puzzle in their terminal. Each connection gets its own session; the
// puzzle, word list and result store are shared.
package sshserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	wishlogging "github.com/charmbracelet/wish/logging"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/provider"
	"github.com/robalobadob/wordle/apps/term/internal/store"
	"github.com/robalobadob/wordle/apps/term/internal/tui"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// Config configures the SSH server.
type Config struct {
	Addr        string // host:port
	HostKeyPath string // generated on first start when missing
	// AuthorizedKeys, when set, restricts play to the keys listed in that file.
	AuthorizedKeys string
}

// Server represents the SSH game server
type Server struct {
	cfg      Config
	provider provider.Provider
	cache    *words.Cache
	store    store.Store
	now      func() time.Time
	wish     *ssh.Server
}

// New creates a server; Start begins accepting connections.
func New(cfg Config, p provider.Provider, cache *words.Cache, st store.Store) (*Server, error) {
	s := &Server{cfg: cfg, provider: p, cache: cache, store: st, now: time.Now}

	if dir := filepath.Dir(cfg.HostKeyPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create SSH directory: %w", err)
		}
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Addr),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		// Middleware executes in reverse order (last to first)
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(), // Require PTY
			wishlogging.MiddlewareWithLogger(&log.Logger),
		),
	}
	if cfg.AuthorizedKeys != "" {
		opts = append(opts, wish.WithPublicKeyAuth(s.publicKeyHandler))
	}

	srv, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.wish = srv
	return s, nil
}

func (s *Server) publicKeyHandler(ctx ssh.Context, key ssh.PublicKey) bool {
	fingerprint := getKeyFingerprint(key)
	authorized := isKeyAuthorized(key, s.cfg.AuthorizedKeys)
	ev := log.Info()
	if !authorized {
		ev = log.Warn()
	}
	ev.Str("user", ctx.User()).
		Str("fingerprint", fingerprint).
		Str("key_type", key.Type()).
		Bool("authorized", authorized).
		Msg("ssh public key")
	return authorized
}

// teaHandler creates a model for each SSH session
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	log.Info().
		Str("user", sess.User()).
		Str("remote_addr", sess.RemoteAddr().String()).
		Str("term", pty.Term).
		Str("window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height)).
		Msg("ssh session started")

	m := s.modelFor(sess.Context(), sess.User(), bubbletea.MakeRenderer(sess))
	return m, []tea.ProgramOption{tea.WithAltScreen()}
}

// modelFor builds the model shown to player: the saved result when today is
// already done, otherwise a fresh game that saves itself when finished.
func (s *Server) modelFor(ctx context.Context, player string, r *lipgloss.Renderer) tea.Model {
	today := s.now()
	d, err := provider.Load(ctx, s.provider, today, s.cache)
	if err != nil {
		log.Error().Err(err).Str("user", player).Msg("load puzzle")
		return messageModel{fmt.Sprintf("Error: %v\n", err)}
	}

	prev, err := s.store.Get(ctx, player, d.Date)
	switch {
	case err == nil:
		return messageModel{alreadyPlayed(prev)}
	case !errors.Is(err, store.ErrNotFound):
		log.Error().Err(err).Str("user", player).Msg("lookup result")
		return messageModel{fmt.Sprintf("Error: %v\n", err)}
	}

	return tui.New(game.NewSession(d.Solution, d.Words), tui.Config{
		Title:    fmt.Sprintf("WORDLE %s · %s", d.Date, player),
		Renderer: r,
		OnFinish: func(sess *game.Session, elapsed time.Duration) {
			res, err := store.FromSession(player, d.Date, sess, elapsed)
			if err != nil {
				log.Error().Err(err).Str("user", player).Msg("build result")
				return
			}
			// The connection may already be closing; the save must still land.
			if _, err := s.store.Save(context.Background(), res); err != nil {
				log.Error().Err(err).Str("user", player).Msg("save result")
			}
		},
	})
}

func alreadyPlayed(r store.Result) string {
	verb := "lost"
	if r.Won {
		verb = fmt.Sprintf("solved it in %d/%d", r.Attempts, game.MaxGuesses)
	}
	return fmt.Sprintf("You already played %s and %s.\n\n%s\n\nCome back tomorrow. Press any key to leave.\n",
		r.Date, verb, r.Grid)
}

// messageModel shows a fixed text and quits on the first key
type messageModel struct {
	text string
}

func (m messageModel) Init() tea.Cmd {
	return nil
}

func (m messageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return m, tea.Quit
	}
	return m, nil
}

func (m messageModel) View() string {
	return m.text
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("ssh server listening")
		errc <- s.wish.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.wish.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown SSH server: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, ssh.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		return err
	}
	log.Info().Msg("ssh server stopped")
	return nil
}

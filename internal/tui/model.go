// Package tui is the interactive terminal front end: a bubbletea model that
// feeds key presses to a game.Session and draws the board.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// FinishFunc is called once when the game ends, with the time played.
type FinishFunc func(s *game.Session, elapsed time.Duration)

// Config holds everything a Model needs besides its session.
type Config struct {
	Title    string
	Renderer *lipgloss.Renderer // nil for the local terminal
	OnFinish FinishFunc
	Now      func() time.Time
}

// Model drives one game.
type Model struct {
	session  *game.Session
	keys     KeyMap
	help     help.Model
	styles   Styles
	title    string
	status   string
	statusOK bool
	onFinish FinishFunc
	now      func() time.Time
	started  time.Time
	elapsed  time.Duration
	quitting bool
}

// New creates a Model around s.
func New(s *game.Session, cfg Config) *Model {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	title := cfg.Title
	if title == "" {
		title = "WORDLE"
	}
	return &Model{
		session:  s,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		styles:   NewStyles(cfg.Renderer),
		title:    title,
		onFinish: cfg.OnFinish,
		now:      now,
		started:  now(),
	}
}

// Session returns the game being played.
func (m *Model) Session() *game.Session { return m.session }

// Elapsed is the time from start to the end of the game (zero while playing).
func (m *Model) Elapsed() time.Duration { return m.elapsed }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		ev, ok := m.keys.Decode(msg)
		if !ok {
			return m, nil
		}
		return m, m.apply(ev)
	}
	return m, nil
}

func (m *Model) apply(ev game.Event) tea.Cmd {
	if m.session.Finished() && ev.Kind == game.Submit {
		ev.Kind = game.Quit
	}

	out := m.session.Apply(ev)
	log.Debug().Stringer("event", ev.Kind).Stringer("outcome", out).Str("pending", m.session.Pending()).Msg("input")

	switch out {
	case game.Quitting:
		m.quitting = true
		return tea.Quit
	case game.TooShort:
		m.setStatus("Not enough letters", false)
	case game.NotInWordList:
		m.setStatus(fmt.Sprintf("%s is not in the word list", m.session.Pending()), false)
	case game.Typed, game.Erased:
		m.status = ""
	case game.Accepted:
		m.status = ""
		if m.session.Finished() {
			m.finish()
		}
	}
	return nil
}

func (m *Model) finish() {
	m.elapsed = m.now().Sub(m.started)
	log.Info().
		Stringer("state", m.session.State()).
		Int("attempts", m.session.Attempts()).
		Dur("elapsed", m.elapsed).
		Msg("game finished")
	if m.onFinish != nil {
		m.onFinish(m.session, m.elapsed)
	}
}

func (m *Model) setStatus(s string, ok bool) {
	m.status = s
	m.statusOK = ok
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	st := m.styles

	var b strings.Builder
	b.WriteString(st.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(Board(st, m.session))
	b.WriteString("\n\n")
	b.WriteString(Keyboard(st, m.session))
	b.WriteString("\n\n")

	switch m.session.State() {
	case game.Won:
		b.WriteString(st.Win.Render(fmt.Sprintf("Solved in %d/%d!", m.session.Attempts(), game.MaxGuesses)))
		b.WriteString("\n")
		b.WriteString(m.session.Grid())
		b.WriteString("\n")
		b.WriteString(st.Status.Render("Press enter or esc to leave."))
	case game.Lost:
		b.WriteString(st.Loss.Render(fmt.Sprintf("Out of guesses. The word was %s.", m.session.Secret())))
		b.WriteString("\n")
		b.WriteString(m.session.Grid())
		b.WriteString("\n")
		b.WriteString(st.Status.Render("Press enter or esc to leave."))
	default:
		if m.status != "" {
			style := st.Error
			if m.statusOK {
				style = st.Status
			}
			b.WriteString(style.Render(m.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(st.Help.Render(m.help.View(m.keys)))
	return b.String()
}

// Run plays m on the local terminal until the player quits or ctx is done.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/store"
	"github.com/robalobadob/wordle/apps/term/internal/tui"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// HistoryCmd lists past games
type HistoryCmd struct {
	Limit int  `help:"Number of games to show (0 = all)" default:"10"`
	Plain bool `help:"Print emoji grids instead of colored letters"`

	out io.Writer `kong:"-"`
}

// Run executes the history command
func (h *HistoryCmd) Run(ctx context.Context, cli *CLI) error {
	if err := cli.setupLogging(true); err != nil {
		return err
	}
	st, err := cli.openStore()
	if err != nil {
		return err
	}
	results, err := st.History(ctx, cli.Player, h.Limit)
	if err != nil {
		return err
	}
	if h.out == nil {
		h.out = os.Stdout
	}
	if len(results) == 0 {
		fmt.Fprintf(h.out, "No games recorded for %s yet.\n", cli.Player)
		return nil
	}

	styles := tui.NewStyles(nil)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(h.out)
		}
		fmt.Fprintln(h.out, historyHeader(r))
		if h.Plain {
			fmt.Fprintln(h.out, r.Grid)
			continue
		}
		fmt.Fprintln(h.out, replayRows(styles, r))
	}
	return nil
}

func historyHeader(r store.Result) string {
	score := "X"
	if r.Won {
		score = fmt.Sprint(r.Attempts)
	}
	return fmt.Sprintf("%s  %s  %s/%d", r.Date, r.Solution, score, game.MaxGuesses)
}

// replayRows re-scores the stored words to draw colored rows. Stored words were
// accepted when played, so they are trusted as the dictionary here.
func replayRows(st tui.Styles, r store.Result) string {
	sess := game.NewSession(r.Solution, words.NewSet(r.Words))
	sess.Replay(r.Words)
	return tui.Rows(st, sess.Guesses())
}

// StatsCmd prints aggregate statistics
type StatsCmd struct {
	out io.Writer `kong:"-"`
}

// Run executes the stats command
func (s *StatsCmd) Run(ctx context.Context, cli *CLI) error {
	if err := cli.setupLogging(true); err != nil {
		return err
	}
	st, err := cli.openStore()
	if err != nil {
		return err
	}
	stats, err := store.PlayerStats(ctx, st, cli.Player)
	if err != nil {
		return err
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	fmt.Fprint(s.out, renderStats(cli.Player, stats))
	return nil
}

var (
	statsLabelStyle = lipgloss.NewStyle().Foreground(tui.ColorMuted)
	statsBarStyle   = lipgloss.NewStyle().Background(tui.ColorCorrect).Foreground(tui.ColorTile)
)

func renderStats(player string, st store.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Statistics for %s\n\n", player)
	fmt.Fprintf(&b, "%s %d\n", statsLabelStyle.Render("Played        "), st.Played)
	fmt.Fprintf(&b, "%s %d%%\n", statsLabelStyle.Render("Win %         "), st.WinRate())
	fmt.Fprintf(&b, "%s %d\n", statsLabelStyle.Render("Current streak"), st.CurrentStreak)
	fmt.Fprintf(&b, "%s %d\n", statsLabelStyle.Render("Max streak    "), st.MaxStreak)

	b.WriteString("\nGuess distribution\n")
	most := 1
	for n := 1; n <= game.MaxGuesses; n++ {
		most = max(most, st.Distribution[n])
	}
	for n := 1; n <= game.MaxGuesses; n++ {
		count := st.Distribution[n]
		width := 1 + count*20/most
		bar := statsBarStyle.Render(fmt.Sprintf("%*d", width, count))
		fmt.Fprintf(&b, "%d %s\n", n, bar)
	}
	return b.String()
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/config"
	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/provider"
	"github.com/robalobadob/wordle/apps/term/internal/report"
	"github.com/robalobadob/wordle/apps/term/internal/store"
	"github.com/robalobadob/wordle/apps/term/internal/tui"
)

// PlayCmd plays one daily puzzle in the terminal
type PlayCmd struct {
	SourceFlags `embed:""`

	Date         string `help:"Play the puzzle of another day (YYYY-MM-DD)"`
	NoSave       bool   `help:"Do not record the result (allows replaying a day)"`
	ReportURL    string `help:"Puzzle server to submit finished games to" env:"WORDLE_REPORT_URL"`
	ReportSecret string `help:"Shared secret for signing submissions" env:"WORDLE_JWT_SECRET"`
	Password     string `help:"Account password on the report server (see register)" env:"WORDLE_PASSWORD"`

	out io.Writer `kong:"-"`
}

// Run executes the game
func (p *PlayCmd) Run(ctx context.Context, cli *CLI) error {
	p.SourceFlags.applySettings(cli.settings)
	if cli.settings != nil {
		config.ApplyString(&p.ReportURL, "", "WORDLE_REPORT_URL", cli.settings.ReportURL)
	}
	if err := cli.setupLogging(true); err != nil {
		return err
	}
	if p.out == nil {
		p.out = os.Stdout
	}

	date := time.Now()
	if p.Date != "" {
		d, err := daily.ParseDate(p.Date)
		if err != nil {
			return err
		}
		date = d
	}
	key := daily.DateKey(date)

	var st store.Store = store.NewMemoryStore()
	if !p.NoSave {
		s, err := cli.openStore()
		if err != nil {
			return err
		}
		st = s
	}

	prev, err := st.Get(ctx, cli.Player, key)
	switch {
	case err == nil:
		p.printResult(prev, "You already played this one.")
		return nil
	case !errors.Is(err, store.ErrNotFound):
		return err
	}

	src, cache, err := p.SourceFlags.provider(cli)
	if err != nil {
		return err
	}
	d, err := provider.Load(ctx, src, date, cache)
	if err != nil {
		if !p.Offline {
			return fmt.Errorf("%w (use --offline to play with the built-in word list)", err)
		}
		return err
	}
	log.Info().Str("date", d.Date).Int("words", d.Words.Len()).Bool("offline", p.Offline).Msg("puzzle loaded")

	var (
		finished *store.Result
		saveErr  error
	)
	model := tui.New(game.NewSession(d.Solution, d.Words), tui.Config{
		Title: "WORDLE " + d.Date,
		OnFinish: func(sess *game.Session, elapsed time.Duration) {
			res, err := store.FromSession(cli.Player, d.Date, sess, elapsed)
			if err != nil {
				saveErr = err
				return
			}
			finished = &res
			_, saveErr = st.Save(ctx, res)
		},
	})
	if err := tui.Run(ctx, model); err != nil {
		return err
	}

	if finished == nil {
		fmt.Fprintln(p.out, "Game left unfinished; nothing was saved.")
		return nil
	}
	if saveErr != nil {
		return fmt.Errorf("save result: %w", saveErr)
	}
	p.printResult(*finished, "")

	if c := report.New(p.ReportURL, p.ReportSecret, p.Password); c != nil {
		if err := c.Submit(ctx, *finished); err != nil {
			log.Warn().Err(err).Msg("report result")
			fmt.Fprintf(p.out, "Could not submit to %s: %v\n", p.ReportURL, err)
		} else {
			fmt.Fprintf(p.out, "Submitted to %s.\n", p.ReportURL)
		}
	}
	return nil
}

// printResult writes the shareable summary of r.
func (p *PlayCmd) printResult(r store.Result, note string) {
	if note != "" {
		fmt.Fprintln(p.out, note)
	}
	score := "X"
	if r.Won {
		score = fmt.Sprint(r.Attempts)
	}
	fmt.Fprintf(p.out, "Wordle %s %s/%d\n\n%s\n", r.Date, score, game.MaxGuesses, r.Grid)
	if !r.Won {
		fmt.Fprintf(p.out, "\nThe word was %s.\n", r.Solution)
	}
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/robalobadob/wordle/apps/term/internal/config"
	"github.com/robalobadob/wordle/apps/term/internal/report"
)

// RegisterCmd creates an account on a puzzle server
type RegisterCmd struct {
	Server   string `help:"Puzzle server URL" env:"WORDLE_REPORT_URL"`
	Password string `help:"Password for the new account" env:"WORDLE_PASSWORD" required:""`
}

// Run executes the register command
func (r *RegisterCmd) Run(ctx context.Context, cli *CLI) error {
	if cli.settings != nil {
		config.ApplyString(&r.Server, "", "WORDLE_REPORT_URL", cli.settings.ReportURL)
	}
	if err := cli.setupLogging(true); err != nil {
		return err
	}
	c := report.New(r.Server, "", r.Password)
	if c == nil {
		return errors.New("no server given (--server or WORDLE_REPORT_URL)")
	}
	if err := c.Register(ctx, cli.Player); err != nil {
		return err
	}
	fmt.Printf("Registered %s on %s. Finished games will be submitted when WORDLE_PASSWORD is set.\n", cli.Player, r.Server)
	return nil
}

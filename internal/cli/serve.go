package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/term/internal/httpserver"
	"github.com/robalobadob/wordle/apps/term/internal/provider"
	"github.com/robalobadob/wordle/apps/term/internal/sshserver"
)

// ServeCmd runs the HTTP puzzle server
type ServeCmd struct {
	Addr      string `help:"HTTP listen address" default:":5175" env:"WORDLE_ADDR"`
	JWTSecret string `help:"Shared secret for result submissions (empty disables them)" env:"WORDLE_JWT_SECRET"`
	SSHAddr   string `help:"Also serve SSH play on this address" env:"WORDLE_SSH_ADDR"`
}

// Run executes the server command
func (s *ServeCmd) Run(ctx context.Context, cli *CLI) error {
	if err := cli.setupLogging(false); err != nil {
		return err
	}
	local, err := provider.NewLocal(cli.Salt)
	if err != nil {
		return err
	}
	st, err := cli.openStore()
	if err != nil {
		return err
	}
	if s.JWTSecret == "" {
		log.Warn().Msg("WORDLE_JWT_SECRET not set; POST /results is disabled")
	}

	// Everything that can fail at setup happens before any listener starts.
	var sshSrv *sshserver.Server
	if s.SSHAddr != "" {
		sshSrv, err = sshserver.New(sshserver.Config{
			Addr:        s.SSHAddr,
			HostKeyPath: filepath.Join(cli.DataDir, "ssh", "id_ed25519"),
		}, local, nil, st)
		if err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.New(local, st, s.JWTSecret).Start(gctx, s.Addr)
	})
	if sshSrv != nil {
		g.Go(func() error { return sshSrv.Start(gctx) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

package cli

import (
	"context"
	"path/filepath"

	"github.com/robalobadob/wordle/apps/term/internal/sshserver"
)

// SSHCmd serves the game over SSH
type SSHCmd struct {
	SourceFlags `embed:""`

	Addr           string `help:"SSH listen address" default:":23234" env:"WORDLE_SSH_ADDR"`
	HostKey        string `help:"Host key path (generated when missing)" type:"path" env:"WORDLE_SSH_HOST_KEY"`
	AuthorizedKeys string `help:"Only admit keys listed in this authorized_keys file" type:"path" env:"WORDLE_SSH_AUTHORIZED_KEYS"`
}

// Run executes the ssh command
func (c *SSHCmd) Run(ctx context.Context, cli *CLI) error {
	c.SourceFlags.applySettings(cli.settings)
	if err := cli.setupLogging(false); err != nil {
		return err
	}
	src, cache, err := c.SourceFlags.provider(cli)
	if err != nil {
		return err
	}
	st, err := cli.openStore()
	if err != nil {
		return err
	}

	hostKey := c.HostKey
	if hostKey == "" {
		hostKey = filepath.Join(cli.DataDir, "ssh", "id_ed25519")
	}
	srv, err := sshserver.New(sshserver.Config{
		Addr:           c.Addr,
		HostKeyPath:    hostKey,
		AuthorizedKeys: c.AuthorizedKeys,
	}, src, cache, st)
	if err != nil {
		return err
	}
	return srv.Start(ctx)
}

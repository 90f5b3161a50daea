// apps/term/main.go
//
// Entry point: loads .env and the YAML settings file, then hands off to the
// kong command tree in internal/cli.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robalobadob/wordle/apps/term/internal/cli"
	"github.com/robalobadob/wordle/apps/term/internal/config"
	"github.com/robalobadob/wordle/apps/term/internal/provider"
)

// Build information injected at build time via ldflags
var (
	Commit  = "unknown"
	Version = "dev"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	settings, err := config.LoadSettings(config.GetEnv("WORDLE_CONFIG", config.DefaultSettingsPath()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load settings: %v\n", err)
		settings = &config.Settings{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vars := kong.Vars{
		"version":    fmt.Sprintf("wordle %s (commit: %s)", Version, Commit),
		"data_dir":   config.DefaultDataDir(),
		"user":       config.GetEnv("USER", "player"),
		"base_url":   provider.DefaultBaseURL,
		"bundle_url": provider.DefaultBundleURL,
	}

	var c cli.CLI
	c.SetSettings(settings, vars)
	kctx := kong.Parse(&c,
		kong.Name("wordle"),
		kong.Description("Play the daily five-letter word puzzle in your terminal."),
		vars,
		kong.UsageOnError(),
		kong.Bind(&c),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	err = kctx.Run()
	c.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

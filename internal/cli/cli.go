// Package cli defines the command-line interface: global options, settings
// precedence and one command per mode (play, serve, ssh, history, stats).
package cli

import (
	"io"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robalobadob/wordle/apps/term/internal/config"
	"github.com/robalobadob/wordle/apps/term/internal/logging"
	"github.com/robalobadob/wordle/apps/term/internal/store"
)

// Defaults shared by flag tags and settings precedence checks.
const (
	defaultLogLevel = "info"
	defaultSalt     = "wordle-term"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version  kong.VersionFlag `help:"Show version information"`
	DataDir  string           `help:"Directory for the result database, word list cache and log" type:"path" default:"${data_dir}" env:"WORDLE_DATA_DIR"`
	LogLevel string           `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"LOG_LEVEL"`
	Player   string           `help:"Player name results are saved under" default:"${user}" env:"WORDLE_PLAYER"`
	Salt     string           `help:"Secret mixed into the offline daily word choice" default:"wordle-term" env:"DAILY_SALT"`

	Play     PlayCmd     `cmd:"" help:"Play today's puzzle (default)" default:"1"`
	Serve    ServeCmd    `cmd:"serve" help:"Run the HTTP puzzle server (and optionally SSH play)"`
	SSH      SSHCmd      `cmd:"ssh" help:"Let players connect over SSH and play in their terminal"`
	History  HistoryCmd  `cmd:"history" help:"Show your past games"`
	Stats    StatsCmd    `cmd:"stats" help:"Show your win rate, streaks and guess distribution"`
	Register RegisterCmd `cmd:"register" help:"Create an account on a puzzle server for submitting results"`

	// Internal field for settings (not a flag)
	settings *config.Settings `kong:"-"`
	defaults kong.Vars        `kong:"-"`
	closers  []io.Closer      `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(s *config.Settings, defaults kong.Vars) {
	c.settings = s
	c.defaults = defaults
}

// AfterApply applies settings with precedence: flags > env vars > settings file > defaults.
func (c *CLI) AfterApply() error {
	if c.settings == nil {
		return nil
	}
	config.ApplyString(&c.DataDir, c.defaults["data_dir"], "WORDLE_DATA_DIR", c.settings.DataDir)
	config.ApplyString(&c.LogLevel, defaultLogLevel, "LOG_LEVEL", c.settings.LogLevel)
	config.ApplyString(&c.Player, c.defaults["user"], "WORDLE_PLAYER", c.settings.Player)
	config.ApplyString(&c.Salt, defaultSalt, "DAILY_SALT", c.settings.Salt)
	return nil
}

// setupLogging installs the global logger. Interactive commands log to a
// file in the data directory so the terminal stays with the UI.
func (c *CLI) setupLogging(toFile bool) error {
	opts := logging.Options{Level: c.LogLevel}
	if toFile {
		opts.File = filepath.Join(c.DataDir, "wordle.log")
	}
	closer, err := logging.Setup(opts)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, closer)
	return nil
}

// openStore opens the result database in the data directory.
func (c *CLI) openStore() (store.Store, error) {
	st, err := store.OpenSQLite(filepath.Join(c.DataDir, "results.db"))
	if err != nil {
		return nil, err
	}
	c.closers = append(c.closers, st)
	return st, nil
}

func (c *CLI) wordCachePath() string {
	return filepath.Join(c.DataDir, ".word-list.cache.txt")
}

// Close releases everything commands opened, newest first.
func (c *CLI) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		_ = c.closers[i].Close()
	}
	c.closers = nil
}

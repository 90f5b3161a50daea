package cli

import (
	"github.com/robalobadob/wordle/apps/term/internal/config"
	"github.com/robalobadob/wordle/apps/term/internal/provider"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// SourceFlags choose where puzzles come from.
type SourceFlags struct {
	Offline   bool   `help:"Use the built-in word lists instead of the online puzzle" env:"WORDLE_OFFLINE"`
	BaseURL   string `help:"Puzzle API base URL" default:"${base_url}" env:"WORDLE_BASE_URL"`
	BundleURL string `help:"URL of the JS bundle holding the word list" default:"${bundle_url}" env:"WORDLE_BUNDLE_URL"`
}

func (f *SourceFlags) applySettings(s *config.Settings) {
	if s == nil {
		return
	}
	config.ApplyBool(&f.Offline, "WORDLE_OFFLINE", s.Offline)
	config.ApplyString(&f.BaseURL, provider.DefaultBaseURL, "WORDLE_BASE_URL", s.BaseURL)
	config.ApplyString(&f.BundleURL, provider.DefaultBundleURL, "WORDLE_BUNDLE_URL", s.BundleURL)
}

// provider returns the puzzle source and, for online sources, the word list
// cache backing it.
func (f *SourceFlags) provider(cli *CLI) (provider.Provider, *words.Cache, error) {
	if f.Offline {
		p, err := provider.NewLocal(cli.Salt)
		return p, nil, err
	}
	return provider.NewNYT(f.BaseURL, f.BundleURL), &words.Cache{Path: cli.wordCachePath()}, nil
}

// apps/term/internal/config/config.go
//
// Configuration sources, lowest precedence first:
//   1. built-in defaults (kong struct tags),
//   2. the optional YAML settings file (~/.config/wordle/config.yaml),
//   3. environment variables, including those loaded from `.env`,
//   4. command-line flags.
//
// Kong resolves 1, 3 and 4 itself; Settings.Apply fills in 2 for any option still
// at its default whose environment variable is unset.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// AppName names the config, data and log directories.
const AppName = "wordle"

// Settings models the YAML settings file. Unset fields leave defaults alone.
type Settings struct {
	Player    string `yaml:"player,omitempty"`
	DataDir   string `yaml:"data_dir,omitempty"`
	Offline   *bool  `yaml:"offline,omitempty"`
	Salt      string `yaml:"salt,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	BundleURL string `yaml:"bundle_url,omitempty"`
	ReportURL string `yaml:"report_url,omitempty"`
	LogLevel  string `yaml:"log_level,omitempty"`
}

// LoadEnv loads `.env` style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// LoadSettings reads the YAML settings at path. A missing file yields empty
// settings.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return s, nil
}

// ApplyString sets *dst to val when *dst still holds def, val is non-empty and
// env is not set.
func ApplyString(dst *string, def, env, val string) {
	if *dst != def || val == "" {
		return
	}
	if _, ok := os.LookupEnv(env); ok {
		return
	}
	*dst = val
}

// ApplyBool is ApplyString for boolean flags that default to false.
func ApplyBool(dst *bool, env string, val *bool) {
	if *dst || val == nil {
		return
	}
	if _, ok := os.LookupEnv(env); ok {
		return
	}
	*dst = *val
}

// GetEnv returns the value of k, or def when unset or empty.
func GetEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// DefaultSettingsPath returns $XDG_CONFIG_HOME/wordle/config.yaml or the OS equivalent.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.yaml")
}

// DefaultDataDir returns the OS-specific directory for the database, the word
// list cache and logs.
func DefaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "." + AppName
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", AppName)
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, AppName)
	default:
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, AppName)
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player: ana\noffline: true\nreport_url: http://localhost:5175\n"), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "ana", s.Player)
	require.NotNil(t, s.Offline)
	assert.True(t, *s.Offline)
	assert.Equal(t, "http://localhost:5175", s.ReportURL)
	assert.Empty(t, s.Salt)
}

func TestLoadSettings_Missing(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Settings{}, s)
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player: [unclosed"), 0o644))
	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestApplyString_Precedence(t *testing.T) {
	t.Setenv("WORDLE_TEST_SET", "from-env")

	v := "default"
	ApplyString(&v, "default", "WORDLE_TEST_UNSET_XYZ", "from-file")
	assert.Equal(t, "from-file", v)

	v = "from-flag"
	ApplyString(&v, "default", "WORDLE_TEST_UNSET_XYZ", "from-file")
	assert.Equal(t, "from-flag", v, "flags beat the settings file")

	v = "default"
	ApplyString(&v, "default", "WORDLE_TEST_SET", "from-file")
	assert.Equal(t, "default", v, "env beats the settings file")
}

func TestApplyBool(t *testing.T) {
	yes := true
	var b bool
	ApplyBool(&b, "WORDLE_TEST_UNSET_XYZ", &yes)
	assert.True(t, b)

	b = false
	ApplyBool(&b, "WORDLE_TEST_UNSET_XYZ", nil)
	assert.False(t, b)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WORDLE_TEST_DOTENV=hello\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("WORDLE_TEST_DOTENV") })

	require.NoError(t, LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "hello", GetEnv("WORDLE_TEST_DOTENV", "x"))
	assert.Equal(t, "x", GetEnv("WORDLE_TEST_UNSET_XYZ", "x"))
}

package words

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLines(t *testing.T) {
	got := ParseLines([]string{" crane ", "CRANE", "toolong", "ab1de", "", "slate", "crâne"})
	assert.Equal(t, []string{"CRANE", "SLATE"}, got)
}

func TestSet(t *testing.T) {
	s := NewSet([]string{"crane", "slate"}, []string{"alloy"})
	assert.True(t, s.Contains("CRANE"))
	assert.True(t, s.Contains("alloy"))
	assert.False(t, s.Contains("LLAMA"))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"ALLOY", "CRANE", "SLATE"}, s.Words())

	w := s.With("llama")
	assert.True(t, w.Contains("LLAMA"))
	assert.False(t, s.Contains("LLAMA"), "With does not mutate the receiver")

	var nilSet *Set
	assert.False(t, nilSet.Contains("CRANE"))
	assert.Equal(t, 0, nilSet.Len())
}

func TestEmbedded(t *testing.T) {
	answers, err := EmbeddedAnswers()
	require.NoError(t, err)
	require.NotEmpty(t, answers)

	set, err := Embedded()
	require.NoError(t, err)
	for _, a := range answers {
		assert.True(t, set.Contains(a), a)
	}
	assert.True(t, set.Contains("ZESTY"), "allowed-only words are guessable")
}

func TestExtractBundle(t *testing.T) {
	src := `var x=1;const o=["aback","abase","nope!"],r=2;function f(){}`
	got, err := ExtractBundle(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABACK", "ABASE"}, got)

	_, err = ExtractBundle("no array here")
	assert.ErrorIs(t, err, ErrNoWordArray)

	_, err = ExtractBundle(`const o=["unterminated`)
	assert.Error(t, err)
}

func TestRenderBundle_RoundTrip(t *testing.T) {
	b, err := RenderBundle([]string{"CRANE", "SLATE"})
	require.NoError(t, err)
	got, err := ExtractBundle(string(b))
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE"}, got)
}

func TestCache_LoadOrFetch(t *testing.T) {
	c := Cache{Path: filepath.Join(t.TempDir(), "nested", ".word-list.cache.txt")}
	calls := 0
	fetch := func(ctx context.Context) ([]string, error) {
		calls++
		return []string{"crane", "slate"}, nil
	}

	s, err := c.LoadOrFetch(context.Background(), fetch)
	require.NoError(t, err)
	assert.True(t, s.Contains("CRANE"))
	assert.Equal(t, 1, calls)

	data, err := os.ReadFile(c.Path)
	require.NoError(t, err)
	assert.Equal(t, "CRANE\nSLATE\n", string(data))

	s, err = c.LoadOrFetch(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, calls, "second load is served from disk")
}

func TestCache_FetchError(t *testing.T) {
	c := Cache{Path: filepath.Join(t.TempDir(), "cache.txt")}
	boom := errors.New("offline")
	_, err := c.LoadOrFetch(context.Background(), func(context.Context) ([]string, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	_, statErr := os.Stat(c.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadList(t *testing.T) {
	fallback := func() ([]string, error) { return []string{"crane"}, nil }

	t.Setenv("TEST_WORDS_FILE", "")
	got, err := readList("TEST_WORDS_FILE", fallback)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane"}, got)

	path := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(path, []byte("slate\nalloy\n"), 0o644))
	t.Setenv("TEST_WORDS_FILE", path)
	got, err = readList("TEST_WORDS_FILE", fallback)
	require.NoError(t, err)
	assert.Equal(t, []string{"SLATE", "ALLOY"}, ParseLines(got))

	t.Setenv("TEST_WORDS_FILE", filepath.Join(t.TempDir(), "missing.txt"))
	_, err = readList("TEST_WORDS_FILE", fallback)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

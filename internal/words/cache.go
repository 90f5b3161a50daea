package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// FetchFunc retrieves a raw word list from somewhere slower than disk.
type FetchFunc func(ctx context.Context) ([]string, error)

// Cache is a one-word-per-line file holding the last fetched word list.
type Cache struct {
	Path string
}

// Read loads the cached list. A missing file yields fs.ErrNotExist.
func (c Cache) Read() ([]string, error) {
	f, err := os.Open(c.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read cache %s: %w", c.Path, err)
	}
	return ParseLines(lines), nil
}

// Write replaces the cache with list, normalized.
func (c Cache) Write(list []string) error {
	if dir := filepath.Dir(c.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("words: mkdir %s: %w", dir, err)
		}
	}
	tmp := c.Path + ".tmp"
	data := strings.Join(ParseLines(list), "\n") + "\n"
	if err := os.WriteFile(tmp, []byte(data), 0o644); err != nil {
		return fmt.Errorf("words: write cache: %w", err)
	}
	return os.Rename(tmp, c.Path)
}

// LoadOrFetch returns the cached word set, fetching and caching it first when the
// cache is missing or empty. A failed cache write is logged, not returned.
func (c Cache) LoadOrFetch(ctx context.Context, fetch FetchFunc) (*Set, error) {
	cached, err := c.Read()
	switch {
	case err == nil && len(cached) > 0:
		log.Debug().Str("path", c.Path).Int("words", len(cached)).Msg("word list cache hit")
		return NewSet(cached), nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		log.Warn().Err(err).Str("path", c.Path).Msg("ignoring unreadable word list cache")
	}

	log.Info().Str("path", c.Path).Msg("fetching word list")
	fetched, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("words: fetch word list: %w", err)
	}
	if err := c.Write(fetched); err != nil {
		log.Warn().Err(err).Str("path", c.Path).Msg("write word list cache")
	}
	return NewSet(fetched), nil
}

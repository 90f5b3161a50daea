// apps/term/internal/words/words.go
//
// Word list management for the game.
//
// Responsibilities:
//   - Normalize raw word lists (trim, uppercase, keep 5-letter A–Z words only).
//   - Provide Set, the read-only membership structure a game session consults.
//   - Supply the built-in lists: the files named by WORDS_ANSWERS_FILE and
//     WORDS_ALLOWED_FILE when set, else the embedded lists from the assets package.
//
// A Set is built once and never mutated afterwards, so it may be shared across
// any number of sessions without locking.

package words

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/term/assets"
	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// Set is an immutable set of uppercase guessable words.
type Set struct {
	m map[string]struct{}
}

var _ game.Dictionary = (*Set)(nil)

// NewSet builds a Set from raw words. Invalid entries are dropped.
func NewSet(lists ...[]string) *Set {
	s := &Set{m: make(map[string]struct{})}
	for _, list := range lists {
		for _, w := range ParseLines(list) {
			s.m[w] = struct{}{}
		}
	}
	return s
}

// Contains reports whether w (any case) is in the set.
func (s *Set) Contains(w string) bool {
	if s == nil {
		return false
	}
	_, ok := s.m[strings.ToUpper(w)]
	return ok
}

// Len is the number of words in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.m)
}

// With returns a new Set holding s plus extra words.
func (s *Set) With(extra ...string) *Set {
	out := &Set{m: make(map[string]struct{}, s.Len()+len(extra))}
	if s != nil {
		for w := range s.m {
			out.m[w] = struct{}{}
		}
	}
	for _, w := range ParseLines(extra) {
		out.m[w] = struct{}{}
	}
	return out
}

// Words returns the words in sorted order.
func (s *Set) Words() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.m))
	for w := range s.m {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// ParseLines uppercases and trims each entry and keeps only valid words,
// preserving order and dropping duplicates.
func ParseLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		w, ok := game.NormalizeWord(line)
		if !ok {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

var (
	embeddedOnce    sync.Once
	embeddedAnswers []string
	embeddedSet     *Set
	embeddedErr     error
)

func initEmbedded() {
	ans, err := readList("WORDS_ANSWERS_FILE", assets.Answers)
	if err != nil {
		embeddedErr = fmt.Errorf("words: read answers: %w", err)
		return
	}
	all, err := readList("WORDS_ALLOWED_FILE", assets.Allowed)
	if err != nil {
		embeddedErr = fmt.Errorf("words: read allowed list: %w", err)
		return
	}
	embeddedAnswers = ParseLines(ans)
	embeddedSet = NewSet(embeddedAnswers, all)
	if len(embeddedAnswers) == 0 {
		embeddedErr = fmt.Errorf("words: embedded answers list is empty")
	}
}

// readList reads the file named by env, or falls back to the embedded list.
func readList(env string, fallback func() ([]string, error)) ([]string, error) {
	path := os.Getenv(env)
	if path == "" {
		return fallback()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return strings.Split(string(data), "\n"), nil
}

// EmbeddedAnswers returns the canonical answer list shipped with the binary.
func EmbeddedAnswers() ([]string, error) {
	embeddedOnce.Do(initEmbedded)
	return embeddedAnswers, embeddedErr
}

// Embedded returns the shipped guess set (answers ∪ allowed).
func Embedded() (*Set, error) {
	embeddedOnce.Do(initEmbedded)
	return embeddedSet, embeddedErr
}

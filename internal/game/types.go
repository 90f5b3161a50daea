// apps/term/internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Verdict: per-letter result of a guess (absent/present/correct), totally ordered.
//   - ScoredLetter: one typed letter plus its verdict.
//   - Guess: exactly WordLength scored letters, in typed order.

package game

import (
	"fmt"
	"strings"
)

const (
	// WordLength is the number of letters in every secret and guess.
	WordLength = 5
	// MaxGuesses is the number of attempts before the game is lost.
	MaxGuesses = 6
)

// Verdict represents the evaluation result for a single letter in a guess.
// The numeric values define the strength order Absent < Present < Correct.
type Verdict uint8

const (
	Absent  Verdict = iota // letter is not in the secret (or all copies already claimed)
	Present                // letter is in the secret at a different position
	Correct                // letter is in the secret at this position
)

// Stronger reports whether v outranks o in the strength order.
func (v Verdict) Stronger(o Verdict) bool { return v > o }

// Max returns the stronger of two verdicts.
func Max(a, b Verdict) Verdict {
	if b.Stronger(a) {
		return b
	}
	return a
}

func (v Verdict) String() string {
	switch v {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("Verdict(%d)", uint8(v))
}

// Emoji returns the share-grid square for v.
func (v Verdict) Emoji() string {
	switch v {
	case Present:
		return "🟨"
	case Correct:
		return "🟩"
	}
	return "⬜"
}

// MarshalText encodes the verdict as its lowercase name.
func (v Verdict) MarshalText() ([]byte, error) {
	if v > Correct {
		return nil, fmt.Errorf("game: invalid verdict %d", uint8(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText decodes a verdict name.
func (v *Verdict) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "absent":
		*v = Absent
	case "present":
		*v = Present
	case "correct":
		*v = Correct
	default:
		return fmt.Errorf("game: unknown verdict %q", b)
	}
	return nil
}

// ScoredLetter pairs an uppercase letter with its verdict.
type ScoredLetter struct {
	Letter  byte    `json:"letter"`
	Verdict Verdict `json:"verdict"`
}

// Guess is one submitted, fully scored attempt.
type Guess [WordLength]ScoredLetter

// Word returns the guessed letters as an uppercase string.
func (g Guess) Word() string {
	var b [WordLength]byte
	for i, sl := range g {
		b[i] = sl.Letter
	}
	return string(b[:])
}

// Solved reports whether every letter is Correct.
func (g Guess) Solved() bool {
	for _, sl := range g {
		if sl.Verdict != Correct {
			return false
		}
	}
	return true
}

// Verdicts returns just the verdicts, in position order.
func (g Guess) Verdicts() [WordLength]Verdict {
	var out [WordLength]Verdict
	for i, sl := range g {
		out[i] = sl.Verdict
	}
	return out
}

// Emoji renders the guess as a row of share-grid squares.
func (g Guess) Emoji() string {
	var sb strings.Builder
	for _, sl := range g {
		sb.WriteString(sl.Verdict.Emoji())
	}
	return sb.String()
}

// Grid renders one emoji row per guess, newline separated.
func Grid(guesses []Guess) string {
	rows := make([]string, len(guesses))
	for i, g := range guesses {
		rows[i] = g.Emoji()
	}
	return strings.Join(rows, "\n")
}

// apps/term/internal/game/engine.go
//
// Guess evaluation for a single secret word.
//
// Notes:
//   - Inputs are uppercased before comparison.
//   - Callers validate length and word-list membership; malformed input here is a
//     programming error and panics.

package game

import (
	"fmt"
	"strings"
)

// Evaluate scores guess against secret using the classic two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches Correct, claiming that occurrence of the letter.
//   - Count the secret's unclaimed letters.
//
// Pass 2:
//   - Left to right over the remaining positions: Present while an unclaimed copy of
//     the letter remains (claiming it), otherwise Absent.
//
// A letter is never credited more often than it occurs in the secret.
func Evaluate(secret, guess string) Guess {
	s := mustWord("secret", secret)
	w := mustWord("guess", guess)

	var res Guess
	var counts [26]int

	// First pass: hits, and counts for the unclaimed secret letters.
	for i := 0; i < WordLength; i++ {
		res[i].Letter = w[i]
		if w[i] == s[i] {
			res[i].Verdict = Correct
		} else {
			counts[idx(s[i])]++
		}
	}

	// Second pass: presents/absents for non-hit tiles.
	for i := 0; i < WordLength; i++ {
		if res[i].Verdict == Correct {
			continue
		}
		j := idx(w[i])
		if counts[j] > 0 {
			res[i].Verdict = Present
			counts[j]--
		} else {
			res[i].Verdict = Absent
		}
	}
	return res
}

// NormalizeWord uppercases s and reports whether it is exactly WordLength ASCII letters.
func NormalizeWord(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != WordLength || !isAlpha(s) {
		return s, false
	}
	return s, true
}

func mustWord(what, s string) string {
	w, ok := NormalizeWord(s)
	if !ok {
		panic(fmt.Sprintf("game: %s %q is not a %d-letter word", what, s, WordLength))
	}
	return w
}

// idx maps an uppercase ASCII letter to 0..25.
func idx(c byte) int { return int(c - 'A') }

// isAlpha checks that a string consists only of uppercase A–Z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// isLetter reports whether r is an ASCII letter of either case.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// upper folds an ASCII letter to uppercase.
func upper(r rune) byte {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	return byte(r)
}

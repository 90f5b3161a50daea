package game

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verdictsOf(g Guess) []Verdict {
	v := g.Verdicts()
	return v[:]
}

func TestEvaluate_KnownResults(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		guess    string
		expected []Verdict
	}{
		{"exact", "CRANE", "CRANE", []Verdict{Correct, Correct, Correct, Correct, Correct}},
		{"nothing shared", "CRANE", "BUILT", []Verdict{Absent, Absent, Absent, Absent, Absent}},
		{"duplicate letters in guess", "ALLOY", "LLAMA", []Verdict{Present, Correct, Present, Absent, Absent}},
		{"exact match claims before present", "ABBEY", "BABBY", []Verdict{Present, Present, Correct, Absent, Correct}},
		{"extra copies are absent", "CRANE", "EERIE", []Verdict{Absent, Absent, Present, Absent, Correct}},
		{"leftmost present wins", "SPEED", "EERIE", []Verdict{Present, Present, Absent, Absent, Absent}},
		{"anagram", "LEAST", "SLATE", []Verdict{Present, Present, Correct, Present, Present}},
		{"lowercase input", "crane", "slate", []Verdict{Absent, Absent, Correct, Absent, Correct}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.secret, tt.guess)
			if diff := cmp.Diff(tt.expected, verdictsOf(got)); diff != "" {
				t.Fatalf("Evaluate(%s, %s) mismatch (-want +got):\n%s", tt.secret, tt.guess, diff)
			}
			assert.Equal(t, strings.ToUpper(tt.guess), got.Word())
		})
	}
}

func TestEvaluate_SelfIsAllCorrect(t *testing.T) {
	for _, w := range []string{"CRANE", "ALLOY", "EERIE", "MAMMA", "QUEUE"} {
		g := Evaluate(w, w)
		assert.True(t, g.Solved(), w)
	}
}

// The number of Correct+Present verdicts for a letter never exceeds its count in
// the secret.
func TestEvaluate_LetterCountConservation(t *testing.T) {
	pool := []string{"ALLOY", "LLAMA", "EERIE", "SPEED", "ABBEY", "BABBY", "MAMMA", "QUEUE", "CRANE", "SLATE", "LEVEL", "ELFEN"}
	for _, secret := range pool {
		for _, guess := range pool {
			g := Evaluate(secret, guess)
			credited := map[byte]int{}
			for _, sl := range g {
				if sl.Verdict != Absent {
					credited[sl.Letter]++
				}
			}
			for letter, n := range credited {
				assert.LessOrEqual(t, n, strings.Count(secret, string(letter)),
					"secret=%s guess=%s letter=%c", secret, guess, letter)
			}
			for i, sl := range g {
				if sl.Verdict == Correct {
					assert.Equal(t, secret[i], sl.Letter)
				}
			}
		}
	}
}

func TestEvaluate_PanicsOnMalformedInput(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		guess  string
	}{
		{"short guess", "CRANE", "CRAN"},
		{"long secret", "CRANES", "CRANE"},
		{"non letter", "CRANE", "CR4NE"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { Evaluate(tt.secret, tt.guess) })
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	w, ok := NormalizeWord("  crane ")
	require.True(t, ok)
	assert.Equal(t, "CRANE", w)

	_, ok = NormalizeWord("crâne")
	assert.False(t, ok)
}

func TestVerdict_OrderAndText(t *testing.T) {
	assert.True(t, Correct.Stronger(Present))
	assert.True(t, Present.Stronger(Absent))
	assert.False(t, Absent.Stronger(Absent))
	assert.Equal(t, Correct, Max(Present, Correct))
	assert.Equal(t, Present, Min(Present, Correct))

	b, err := Present.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "present", string(b))

	var v Verdict
	require.NoError(t, v.UnmarshalText([]byte("CORRECT")))
	assert.Equal(t, Correct, v)
	assert.Error(t, v.UnmarshalText([]byte("green")))
}

func TestGrid(t *testing.T) {
	guesses := []Guess{Evaluate("CRANE", "SLATE"), Evaluate("CRANE", "CRANE")}
	assert.Equal(t, "⬜⬜🟩⬜🟩\n🟩🟩🟩🟩🟩", Grid(guesses))
	assert.Equal(t, "", Grid(nil))
}

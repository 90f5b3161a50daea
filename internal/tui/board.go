package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

var keyboardRows = []string{"QWERTYUIOP", "ASDFGHJKL", "ZXCVBNM"}

// Board renders the guess grid: submitted guesses colored by verdict, then the
// pending input (while playing) colored by what is known, then empty rows.
func Board(st Styles, s *game.Session) string {
	rows := make([]string, 0, game.MaxGuesses)
	for _, g := range s.Guesses() {
		rows = append(rows, guessRow(st, g))
	}
	if !s.Finished() && len(rows) < game.MaxGuesses {
		rows = append(rows, pendingRow(st, s))
	}
	for len(rows) < game.MaxGuesses {
		rows = append(rows, emptyRow(st, 0))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Rows renders only the given guesses, one colored row each.
func Rows(st Styles, guesses []game.Guess) string {
	rows := make([]string, len(guesses))
	for i, g := range guesses {
		rows[i] = guessRow(st, g)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func guessRow(st Styles, g game.Guess) string {
	tiles := make([]string, game.WordLength)
	for i, sl := range g {
		tiles[i] = st.Tile(sl.Letter, sl.Verdict, true)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func pendingRow(st Styles, s *game.Session) string {
	pending := s.Pending()
	v, ok := s.PendingHints()
	tiles := make([]string, 0, game.WordLength)
	for i := 0; i < len(pending); i++ {
		tiles = append(tiles, st.Tile(pending[i], v[i], ok[i]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, append(tiles, emptyRow(st, len(pending)))...)
}

// emptyRow renders the blank tiles after the first filled ones.
func emptyRow(st Styles, filled int) string {
	if filled >= game.WordLength {
		return ""
	}
	tiles := make([]string, game.WordLength-filled)
	for i := range tiles {
		tiles[i] = st.Empty.Render("·")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// Keyboard renders the alphabet colored by the strongest verdict per letter.
func Keyboard(st Styles, s *game.Session) string {
	lines := make([]string, len(keyboardRows))
	for i, row := range keyboardRows {
		keys := make([]string, len(row))
		for j := 0; j < len(row); j++ {
			v, ok := s.LetterHint(row[j])
			keys[j] = st.Tile(row[j], v, ok)
		}
		lines[i] = strings.Repeat(" ", i) + lipgloss.JoinHorizontal(lipgloss.Top, keys...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

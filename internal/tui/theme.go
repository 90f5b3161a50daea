package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordle/apps/term/internal/game"
)

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Verdict colors
const (
	ColorCorrect Color = "28"  // Green
	ColorPresent Color = "178" // Gold
	ColorAbsent  Color = "239" // Dark gray
	ColorUnknown Color = "236" // Near black - never guessed
)

// UI semantic colors
const (
	ColorError  Color = "196" // Bright red
	ColorMuted  Color = "241" // Gray - secondary text
	ColorNormal Color = "250" // Default text
	ColorTile   Color = "255" // White - letters on tiles
	ColorTitle  Color = "99"  // Purple
	ColorWin    Color = "46"  // Bright green
)

// Styles holds every style the board uses, bound to one renderer so SSH
// sessions detect their own client's color profile.
type Styles struct {
	Title   lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Win     lipgloss.Style
	Loss    lipgloss.Style
	Help    lipgloss.Style
	Empty   lipgloss.Style
	Unknown lipgloss.Style
	verdict [3]lipgloss.Style
}

// NewStyles builds Styles for r; nil means the default renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	tile := r.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(ColorTile)

	return Styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(ColorTitle).
			Padding(1, 0),
		Status: r.NewStyle().
			Foreground(ColorNormal),
		Error: r.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Win: r.NewStyle().
			Foreground(ColorWin).
			Bold(true),
		Loss: r.NewStyle().
			Foreground(ColorError),
		Help: r.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0),
		Empty: tile.
			Foreground(ColorMuted),
		Unknown: tile.
			Background(ColorUnknown),
		verdict: [3]lipgloss.Style{
			game.Absent:  tile.Background(ColorAbsent),
			game.Present: tile.Background(ColorPresent),
			game.Correct: tile.Background(ColorCorrect),
		},
	}
}

// Tile renders letter colored by v, or neutral when known is false.
func (s Styles) Tile(letter byte, v game.Verdict, known bool) string {
	if !known {
		return s.Unknown.Render(string(letter))
	}
	return s.verdict[v].Render(string(letter))
}

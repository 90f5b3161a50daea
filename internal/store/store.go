// apps/term/internal/store/store.go
//
// Result persistence for finished games.
// Defines:
//   - Result: one finished daily game (win or six misses) for one player.
//   - Store: the persistence interface, backed by memory or SQLite.
//   - Stats: played/wins/streaks/distribution derived from a player's history.
//
// One result per (player, date); saving a second one for the same pair is ignored,
// so a player cannot replay a day.

package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/game"
)

var (
	// ErrNotFound is returned when no result or player exists for a lookup.
	ErrNotFound = errors.New("store: not found")
	// ErrNameTaken is returned when registering a name that already has an account.
	ErrNameTaken = errors.New("store: name taken")
)

// Result is one finished game.
type Result struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	Date      string    `json:"date"`     // YYYY-MM-DD
	Solution  string    `json:"solution"` // uppercase
	Words     []string  `json:"words"`    // accepted guesses in order
	Grid      string    `json:"grid"`     // emoji summary
	Attempts  int       `json:"attempts"`
	Won       bool      `json:"won"`
	ElapsedMs int64     `json:"elapsedMs"`
	PlayedAt  time.Time `json:"playedAt"`
}

// FromSession builds a Result from a finished session.
func FromSession(player, date string, s *game.Session, elapsed time.Duration) (Result, error) {
	if !s.Finished() {
		return Result{}, errors.New("store: session is not finished")
	}
	return Result{
		ID:        uuid.NewString(),
		Player:    player,
		Date:      date,
		Solution:  s.Secret(),
		Words:     s.Words(),
		Grid:      s.Grid(),
		Attempts:  s.Attempts(),
		Won:       s.State() == game.Won,
		ElapsedMs: elapsed.Milliseconds(),
		PlayedAt:  time.Now().UTC(),
	}, nil
}

// LBRow is one leaderboard entry.
type LBRow struct {
	Player    string `json:"player"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Store defines the persistence interface for finished games.
type Store interface {
	// Save records r and reports whether it was inserted. A second result for the
	// same player and date is ignored.
	Save(ctx context.Context, r Result) (bool, error)

	// Get returns the player's result for date, or ErrNotFound.
	Get(ctx context.Context, player, date string) (Result, error)

	// AlreadyPlayed reports whether the player has a result for date.
	AlreadyPlayed(ctx context.Context, player, date string) (bool, error)

	// History returns the player's results, newest date first.
	History(ctx context.Context, player string, limit int) ([]Result, error)

	// Leaderboard returns the wins for date, fewest attempts then fastest first.
	Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error)

	// CreatePlayer registers an account; names are unique ignoring case.
	CreatePlayer(ctx context.Context, p Player) error

	// FindPlayer returns the account for name (any case), or ErrNotFound.
	FindPlayer(ctx context.Context, name string) (Player, error)

	Close() error
}

// Player is a registered account on a puzzle server.
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewPlayer returns an account with a fresh ID.
func NewPlayer(name, passwordHash string) Player {
	return Player{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// Stats summarizes a player's history.
type Stats struct {
	Played        int                      `json:"played"`
	Wins          int                      `json:"wins"`
	CurrentStreak int                      `json:"currentStreak"`
	MaxStreak     int                      `json:"maxStreak"`
	Distribution  [game.MaxGuesses + 1]int `json:"distribution"` // index = attempts of a win
}

// WinRate is the percentage of games won, rounded down.
func (s Stats) WinRate() int {
	if s.Played == 0 {
		return 0
	}
	return s.Wins * 100 / s.Played
}

// ComputeStats derives Stats from results in any order. Streaks count wins on
// consecutive calendar dates; the current streak must reach the latest result.
func ComputeStats(results []Result) Stats {
	var st Stats
	sorted := append([]Result(nil), results...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	run := 0
	var prev time.Time
	for _, r := range sorted {
		st.Played++
		d, err := daily.ParseDate(r.Date)
		if !r.Won || err != nil {
			run = 0
			prev = time.Time{}
			continue
		}
		st.Wins++
		if r.Attempts >= 1 && r.Attempts <= game.MaxGuesses {
			st.Distribution[r.Attempts]++
		}
		if !prev.IsZero() && d.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		prev = d
		if run > st.MaxStreak {
			st.MaxStreak = run
		}
	}
	st.CurrentStreak = run
	return st
}

// PlayerStats loads the full history of player and summarizes it.
func PlayerStats(ctx context.Context, s Store, player string) (Stats, error) {
	rs, err := s.History(ctx, player, 0)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(rs), nil
}

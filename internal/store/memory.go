// apps/term/internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for --no-save play, SSH sessions without a database, and tests.
//
// Characteristics:
//   - Stores Results keyed by player|date in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex      // guards both maps
	results map[string]Result // keyed by player|date
	players map[string]Player // keyed by lowercase name
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		results: make(map[string]Result),
		players: make(map[string]Player),
	}
}

func key(player, date string) string { return player + "|" + date }

// Save adds r unless the player already has a result for that date.
func (m *memory) Save(ctx context.Context, r Result) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key(r.Player, r.Date)
	if _, ok := m.results[k]; ok {
		return false, nil
	}
	r.Words = append([]string(nil), r.Words...)
	m.results[k] = r
	return true, nil
}

func (m *memory) Get(ctx context.Context, player, date string) (Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.results[key(player, date)]; ok {
		return r, nil
	}
	return Result{}, ErrNotFound
}

func (m *memory) AlreadyPlayed(ctx context.Context, player, date string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.results[key(player, date)]
	return ok, nil
}

func (m *memory) History(ctx context.Context, player string, limit int) ([]Result, error) {
	m.mu.RLock()
	var out []Result
	for _, r := range m.results {
		if r.Player == player {
			out = append(out, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	m.mu.RLock()
	var wins []Result
	for _, r := range m.results {
		if r.Date == date && r.Won {
			wins = append(wins, r)
		}
	}
	m.mu.RUnlock()

	sort.Slice(wins, func(i, j int) bool {
		a, b := wins[i], wins[j]
		if a.Attempts != b.Attempts {
			return a.Attempts < b.Attempts
		}
		if a.ElapsedMs != b.ElapsedMs {
			return a.ElapsedMs < b.ElapsedMs
		}
		return a.PlayedAt.Before(b.PlayedAt)
	})
	out := make([]LBRow, 0, limit)
	for i := 0; i < len(wins) && i < limit; i++ {
		out = append(out, LBRow{Player: wins[i].Player, Attempts: wins[i].Attempts, ElapsedMs: wins[i].ElapsedMs})
	}
	return out, nil
}

func (m *memory) CreatePlayer(ctx context.Context, p Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := strings.ToLower(p.Name)
	if _, ok := m.players[k]; ok {
		return ErrNameTaken
	}
	m.players[k] = p
	return nil
}

func (m *memory) FindPlayer(ctx context.Context, name string) (Player, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.players[strings.ToLower(name)]; ok {
		return p, nil
	}
	return Player{}, ErrNotFound
}

func (m *memory) Close() error { return nil }

// apps/term/internal/provider/provider.go
//
// Sources for the daily secret and the guessable word list.
// Defines:
//   - Provider: narrow interface the game depends on.
//   - Local: offline provider choosing from the embedded answers by date.
//   - Load: fetch solution and (cached) word list concurrently.

package provider

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/game"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

// Provider supplies the puzzle of a date and the list of valid guesses.
type Provider interface {
	// Solution returns the secret word for date (any case).
	Solution(ctx context.Context, date time.Time) (string, error)
	// WordList returns the raw guessable words.
	WordList(ctx context.Context) ([]string, error)
}

// Local picks answers from a fixed list with daily.WordIndex.
type Local struct {
	Salt    string
	Answers []string
	Allowed []string
}

// NewLocal returns a Local provider over the embedded word lists.
func NewLocal(salt string) (*Local, error) {
	answers, err := words.EmbeddedAnswers()
	if err != nil {
		return nil, err
	}
	set, err := words.Embedded()
	if err != nil {
		return nil, err
	}
	return &Local{Salt: salt, Answers: answers, Allowed: set.Words()}, nil
}

func (l *Local) Solution(ctx context.Context, date time.Time) (string, error) {
	return daily.Answer(date, l.Salt, l.Answers)
}

func (l *Local) WordList(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(l.Answers)+len(l.Allowed))
	out = append(out, l.Answers...)
	out = append(out, l.Allowed...)
	return words.ParseLines(out), nil
}

// Daily is everything a session needs to start.
type Daily struct {
	Date     string
	Solution string
	Words    *words.Set
}

// Load fetches the solution and word list for date concurrently. When cache is
// non-nil the word list is read from it, and fetched into it on a miss. The
// solution is always guessable.
func Load(ctx context.Context, p Provider, date time.Time, cache *words.Cache) (Daily, error) {
	var (
		solution string
		set      *words.Set
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.Solution(gctx, date)
		if err != nil {
			return fmt.Errorf("fetch solution: %w", err)
		}
		w, ok := game.NormalizeWord(s)
		if !ok {
			return fmt.Errorf("solution %q is not a %d-letter word", s, game.WordLength)
		}
		solution = w
		return nil
	})
	g.Go(func() error {
		var err error
		if cache != nil {
			set, err = cache.LoadOrFetch(gctx, p.WordList)
			return err
		}
		list, err := p.WordList(gctx)
		if err != nil {
			return fmt.Errorf("fetch word list: %w", err)
		}
		set = words.NewSet(list)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Daily{}, err
	}
	return Daily{
		Date:     daily.DateKey(date),
		Solution: solution,
		Words:    set.With(solution),
	}, nil
}

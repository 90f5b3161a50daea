package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/robalobadob/wordle/apps/term/internal/auth"
	"github.com/robalobadob/wordle/apps/term/internal/provider"
	"github.com/robalobadob/wordle/apps/term/internal/store"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

const secret = "test-secret"

var today = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	local := &provider.Local{
		Salt:    "salt",
		Answers: []string{"CRANE"},
		Allowed: []string{"SLATE", "ALLOY", "BUILT", "DOILY", "PUDGY", "FIGHT", "MOSSY"},
	}
	st := store.NewMemoryStore()
	return New(local, st, secret, WithClock(func() time.Time { return today })), st
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, player string) string {
	t.Helper()
	tok, err := auth.Sign([]byte(secret), player, time.Minute)
	require.NoError(t, err)
	return tok
}

func TestHealth(t *testing.T) {
	defer goleak.VerifyNone(t)
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestPuzzle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/svc/wordle/v2/2026-10-19.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got puzzleRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "crane", got.Solution)
	assert.Equal(t, "2026-10-19", got.PrintDate)
	assert.Equal(t, 1948, got.DaysSinceLaunch)

	rec = do(t, s, http.MethodGet, "/svc/wordle/v2/yesterday.json", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBundle_RoundTripsThroughExtract(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/games-assets/v2/words.js", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/javascript"))

	list, err := words.ExtractBundle(rec.Body.String())
	require.NoError(t, err)
	assert.Contains(t, list, "CRANE")
	assert.Contains(t, list, "MOSSY")
	assert.Len(t, list, 8)
}

func TestNYTProviderAgainstServer(t *testing.T) {
	s, _ := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	p := provider.NewNYT(ts.URL, ts.URL+"/games-assets/v2/words.js")
	d, err := provider.Load(context.Background(), p, today, nil)
	require.NoError(t, err)
	assert.Equal(t, "CRANE", d.Solution)
	assert.True(t, d.Words.Contains("slate"))
}

func TestSubmit(t *testing.T) {
	s, st := newTestServer(t)
	sub := map[string]any{"date": "2026-10-19", "words": []string{"slate", "crane"}, "elapsedMs": 4200}

	rec := do(t, s, http.MethodPost, "/results", "", sub)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/results", "garbage", sub)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/results", token(t, "ana"), sub)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res store.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Won)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, "ana", res.Player)

	saved, err := st.Get(context.Background(), "ana", "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, int64(4200), saved.ElapsedMs)

	rec = do(t, s, http.MethodPost, "/results", token(t, "ana"), sub)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSubmit_RejectsInvalidGames(t *testing.T) {
	s, _ := newTestServer(t)
	tok := token(t, "bo")

	for name, ws := range map[string][]string{
		"unfinished":     {"slate"},
		"unknown word":   {"zzzzz", "crane"},
		"after the win":  {"crane", "slate"},
		"too many words": {"slate", "alloy", "built", "doily", "pudgy", "fight", "mossy"},
		"trailing junk":  {"CRANE???extra"},
		"punctuation":    {"SLATE-XYZ", "c r a n e!"},
		"valid then bad": {"slate", "crane!"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/results", tok, map[string]any{"date": "2026-10-19", "words": ws})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"invalid_game"}`, rec.Body.String())
		})
	}
}

func TestSubmit_RejectsBadElapsed(t *testing.T) {
	s, st := newTestServer(t)
	tok := token(t, "bo")

	for name, ms := range map[string]int64{
		"negative":   -1,
		"over a day": (24*time.Hour).Milliseconds() + 1,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/results", tok, map[string]any{
				"date": "2026-10-19", "words": []string{"crane"}, "elapsedMs": ms,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{"error":"bad_elapsed"}`, rec.Body.String())
		})
	}

	played, err := st.AlreadyPlayed(context.Background(), "bo", "2026-10-19")
	require.NoError(t, err)
	assert.False(t, played)
}

// staleStore answers AlreadyPlayed as if a concurrent submission had not landed yet.
type staleStore struct{ store.Store }

func (staleStore) AlreadyPlayed(context.Context, string, string) (bool, error) { return false, nil }

func TestSubmit_ConcurrentDuplicateIsConflict(t *testing.T) {
	local := &provider.Local{Salt: "salt", Answers: []string{"CRANE"}, Allowed: []string{"SLATE"}}
	st := store.NewMemoryStore()
	s := New(local, staleStore{st}, secret, WithClock(func() time.Time { return today }))
	tok := token(t, "ana")

	rec := do(t, s, http.MethodPost, "/results", tok, map[string]any{
		"date": "2026-10-19", "words": []string{"slate", "crane"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/results", tok, map[string]any{
		"date": "2026-10-19", "words": []string{"crane"},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"already_played"}`, rec.Body.String())

	saved, err := st.Get(context.Background(), "ana", "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Attempts, "first result is kept")
}

func TestSubmit_LossIsRecorded(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/results", token(t, "di"), map[string]any{
		"date":  "2026-10-19",
		"words": []string{"slate", "alloy", "built", "doily", "pudgy", "fight"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var res store.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.Won)
	assert.Equal(t, 6, res.Attempts)
}

func TestSubmit_DisabledWithoutSecret(t *testing.T) {
	local := &provider.Local{Salt: "salt", Answers: []string{"CRANE"}}
	s := New(local, store.NewMemoryStore(), "")
	rec := do(t, s, http.MethodPost, "/results", "x", map[string]any{})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestLeaderboard(t *testing.T) {
	s, _ := newTestServer(t)
	for _, p := range []struct {
		player string
		words  []string
	}{
		{"ana", []string{"slate", "alloy", "crane"}},
		{"bo", []string{"crane"}},
		{"cy", []string{"slate", "alloy", "built", "doily", "pudgy", "fight"}},
	} {
		rec := do(t, s, http.MethodPost, "/results", token(t, p.player), map[string]any{"date": "2026-10-19", "words": p.words})
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got lbRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2026-10-19", got.Date)
	require.Len(t, got.Top, 2)
	assert.Equal(t, "bo", got.Top[0].Player)
	assert.Equal(t, "ana", got.Top[1].Player)

	rec = do(t, s, http.MethodGet, "/leaderboard?date=2026-10-18", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2026-10-18","top":[]}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/leaderboard?date=soon", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupLoginSubmit(t *testing.T) {
	s, st := newTestServer(t)
	creds := map[string]string{"name": "Ana_1", "password": "correct horse"}

	rec := do(t, s, http.MethodPost, "/auth/signup", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, "/auth/signup", "", map[string]string{"name": "ana_1", "password": "whatever123"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/signup", "", map[string]string{"name": "x", "password": "whatever123"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/login", "", map[string]string{"name": "ana_1", "password": "wrong horse"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/login", "", map[string]string{"name": "ana_1", "password": "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	var tok tokenRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(t, "Ana_1", tok.Player, "the registered spelling wins")
	assert.True(t, today.Add(tokenTTL).Equal(tok.ExpiresAt))

	rec = do(t, s, http.MethodPost, "/results", tok.Token, map[string]any{"date": "2026-10-19", "words": []string{"crane"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	played, err := st.AlreadyPlayed(context.Background(), "Ana_1", "2026-10-19")
	require.NoError(t, err)
	assert.True(t, played)
}

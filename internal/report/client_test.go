package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/term/internal/httpserver"
	"github.com/robalobadob/wordle/apps/term/internal/provider"
	"github.com/robalobadob/wordle/apps/term/internal/report"
	"github.com/robalobadob/wordle/apps/term/internal/store"
)

func puzzleServer(t *testing.T, secret string) (*httptest.Server, store.Store) {
	t.Helper()
	local := &provider.Local{Salt: "salt", Answers: []string{"CRANE"}, Allowed: []string{"SLATE"}}
	st := store.NewMemoryStore()
	ts := httptest.NewServer(httpserver.New(local, st, secret).Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func finished(player string) store.Result {
	return store.Result{
		Player:    player,
		Date:      time.Now().Format("2006-01-02"),
		Words:     []string{"SLATE", "CRANE"},
		ElapsedMs: 3000,
	}
}

func TestNew_Unconfigured(t *testing.T) {
	assert.Nil(t, report.New("", "s", ""))
	assert.Nil(t, report.New("http://x", "", ""))
	assert.NotNil(t, report.New("http://x/", "s", ""))
	assert.NotNil(t, report.New("http://x/", "", "pw"))
}

func TestSubmit_EndToEnd(t *testing.T) {
	ts, st := puzzleServer(t, "shared")
	c := report.New(ts.URL, "shared", "")

	r := finished("ana")
	require.NoError(t, c.Submit(context.Background(), r))

	got, err := st.Get(context.Background(), "ana", r.Date)
	require.NoError(t, err)
	assert.True(t, got.Won)
	assert.Equal(t, 2, got.Attempts)
	assert.Equal(t, int64(3000), got.ElapsedMs)

	err = c.Submit(context.Background(), r)
	assert.ErrorContains(t, err, "already_played")
}

func TestSubmit_WrongSecret(t *testing.T) {
	ts, _ := puzzleServer(t, "shared")
	err := report.New(ts.URL, "other", "").Submit(context.Background(), finished("bo"))
	assert.ErrorContains(t, err, "401")
}

func TestSubmit_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()
	err := report.New(url, "s", "").Submit(context.Background(), finished("cy"))
	assert.ErrorContains(t, err, "post result")
}

func TestRegisterThenSubmitWithPassword(t *testing.T) {
	ts, st := puzzleServer(t, "server-only")
	c := report.New(ts.URL, "", "correct horse")

	err := c.Submit(context.Background(), finished("dora"))
	assert.ErrorContains(t, err, "login", "no account yet")

	require.NoError(t, c.Register(context.Background(), "dora"))
	assert.ErrorContains(t, c.Register(context.Background(), "dora"), "name_taken")

	r := finished("dora")
	require.NoError(t, c.Submit(context.Background(), r))
	played, err := st.AlreadyPlayed(context.Background(), "dora", r.Date)
	require.NoError(t, err)
	assert.True(t, played)
}

package daily

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, 10, 19, 23, 30, 0, 0, time.UTC).In(loc)
	assert.Equal(t, "2026-10-20", DateKey(ts), "date is taken in the caller's location")

	back, err := ParseDate("2026-10-20")
	require.NoError(t, err)
	assert.Equal(t, 20, back.Day())

	_, err = ParseDate("20-10-2026")
	assert.Error(t, err)
}

func TestWordIndex_Deterministic(t *testing.T) {
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	a := WordIndex(d, "salt", 100)
	b := WordIndex(d.Add(5*time.Hour), "salt", 100)
	assert.Equal(t, a, b, "same date, same index")
	assert.GreaterOrEqual(t, a, 0)
	assert.Less(t, a, 100)
	assert.Equal(t, 0, WordIndex(d, "salt", 0))
}

func TestWordIndex_VariesWithSaltAndDate(t *testing.T) {
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for i := 0; i < 30; i++ {
		seen[WordIndex(d.AddDate(0, 0, i), "salt", 1000)] = true
	}
	assert.Greater(t, len(seen), 20)
}

func TestAnswer(t *testing.T) {
	d := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	answers := []string{"CRANE", "SLATE", "ALLOY"}
	got, err := Answer(d, "salt", answers)
	require.NoError(t, err)
	assert.Contains(t, answers, got)

	_, err = Answer(d, "salt", nil)
	assert.Error(t, err)
}

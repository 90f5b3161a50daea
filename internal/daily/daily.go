// Package daily picks the puzzle of the day.
//
// The answer for a date is answers[HMAC-SHA256(salt, "YYYY-MM-DD") mod len(answers)],
// so every client and server sharing a salt and answer list agrees on the word
// without talking to each other.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"
)

// DateLayout is the date key format used in URLs and storage.
const DateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a date key.
func ParseDate(key string) (time.Time, error) {
	t, err := time.Parse(DateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("daily: bad date %q: %w", key, err)
	}
	return t, nil
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Answer returns the answer for date from answers.
func Answer(date time.Time, salt string, answers []string) (string, error) {
	if len(answers) == 0 {
		return "", fmt.Errorf("daily: no answers to choose from")
	}
	return answers[WordIndex(date, salt, len(answers))], nil
}

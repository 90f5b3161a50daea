// Package assets embeds the fallback word lists shipped with the binary.
// The offline provider and the puzzle server draw daily answers from answers.txt;
// allowed.txt holds extra guessable words.
package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed allowed.txt answers.txt
var FS embed.FS

// readLines returns the non-empty, non-comment lines of an embedded file.
func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// Answers lists the embedded daily answers in file order.
func Answers() ([]string, error) {
	return readLines("answers.txt")
}

// Allowed lists the embedded extra guesses.
func Allowed() ([]string, error) {
	return readLines("allowed.txt")
}

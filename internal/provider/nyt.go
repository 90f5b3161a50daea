package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/daily"
	"github.com/robalobadob/wordle/apps/term/internal/words"
)

const (
	DefaultBaseURL   = "https://www.nytimes.com"
	DefaultBundleURL = "https://www.nytimes.com/games-assets/v2/9673.7e73cdd39fb6121fa17d.js"

	// maxBody bounds every response we read.
	maxBody = 8 << 20
)

// NYT fetches puzzles from the upstream Wordle API, or from any server speaking
// the same two endpoints (see internal/httpserver).
type NYT struct {
	BaseURL   string
	BundleURL string
	Client    *http.Client
}

// NewNYT returns a provider for baseURL; empty arguments use the upstream defaults.
func NewNYT(baseURL, bundleURL string) *NYT {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if bundleURL == "" {
		bundleURL = DefaultBundleURL
	}
	return &NYT{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		BundleURL: bundleURL,
		Client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// puzzle is the subset of /svc/wordle/v2/{date}.json we read.
type puzzle struct {
	Solution any `json:"solution"`
}

func (n *NYT) Solution(ctx context.Context, date time.Time) (string, error) {
	url := fmt.Sprintf("%s/svc/wordle/v2/%s.json", n.BaseURL, daily.DateKey(date))
	body, err := n.get(ctx, url)
	if err != nil {
		return "", err
	}
	var p puzzle
	if err := json.Unmarshal(body, &p); err != nil {
		return "", fmt.Errorf("decode puzzle: %w", err)
	}
	s, ok := p.Solution.(string)
	if !ok {
		return "", fmt.Errorf("solution value was not a string")
	}
	return s, nil
}

func (n *NYT) WordList(ctx context.Context) ([]string, error) {
	body, err := n.get(ctx, n.BundleURL)
	if err != nil {
		return nil, err
	}
	return words.ExtractBundle(string(body))
}

func (n *NYT) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := n.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer res.Body.Close()

	log.Debug().Str("url", url).Int("status", res.StatusCode).Dur("took", time.Since(start)).Msg("provider request")
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s: unexpected status %s", url, res.Status)
	}
	body, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", url, err)
	}
	return body, nil
}

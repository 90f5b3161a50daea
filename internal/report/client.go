// Package report submits finished results to a puzzle server's leaderboard.
//
// A client authenticates either with the server's shared secret, signing its
// own short-lived token, or with a player account, logging in for a token.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/term/internal/auth"
	"github.com/robalobadob/wordle/apps/term/internal/store"
)

// Client posts results to {BaseURL}/results.
type Client struct {
	BaseURL  string
	Secret   []byte // shared secret; takes precedence over Password
	Password string // account password for the result's player
	HTTP     *http.Client
}

// New returns a Client, or nil when reporting is not configured.
func New(baseURL, secret, password string) *Client {
	if baseURL == "" || (secret == "" && password == "") {
		return nil
	}
	return &Client{
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Secret:   []byte(secret),
		Password: password,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Submission is the body of POST /results.
type Submission struct {
	Date      string   `json:"date"`
	Words     []string `json:"words"`
	ElapsedMs int64    `json:"elapsedMs"`
}

type credentials struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenRes struct {
	Player string `json:"player"`
	Token  string `json:"token"`
}

// Submit sends r. The server re-scores the words itself, so only the guesses,
// date and elapsed time travel.
func (c *Client) Submit(ctx context.Context, r store.Result) error {
	tok, err := c.token(ctx, r.Player)
	if err != nil {
		return err
	}
	body, err := json.Marshal(Submission{Date: r.Date, Words: r.Words, ElapsedMs: r.ElapsedMs})
	if err != nil {
		return err
	}
	if err := c.post(ctx, "/results", tok, body, nil); err != nil {
		return fmt.Errorf("report: post result: %w", err)
	}
	log.Info().Str("player", r.Player).Str("date", r.Date).Msg("result reported")
	return nil
}

// Register creates an account for player with the client's password.
func (c *Client) Register(ctx context.Context, player string) error {
	body, err := json.Marshal(credentials{Name: player, Password: c.Password})
	if err != nil {
		return err
	}
	if err := c.post(ctx, "/auth/signup", "", body, nil); err != nil {
		return fmt.Errorf("report: register: %w", err)
	}
	return nil
}

func (c *Client) token(ctx context.Context, player string) (string, error) {
	if len(c.Secret) > 0 {
		return auth.Sign(c.Secret, player, 5*time.Minute)
	}
	body, err := json.Marshal(credentials{Name: player, Password: c.Password})
	if err != nil {
		return "", err
	}
	var res tokenRes
	if err := c.post(ctx, "/auth/login", "", body, &res); err != nil {
		return "", fmt.Errorf("report: login: %w", err)
	}
	return res.Token, nil
}

// post sends a JSON body and decodes a 2xx response into out when non-nil.
func (c *Client) post(ctx context.Context, path, token string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("server said %s: %s", res.Status, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

package osu

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rank-tracker/core/ratelimit"

	"golang.org/x/oauth2/clientcredentials"
)

// Outcome classifies the upstream response for a tracked user.
type Outcome struct {
	// Found is true when the API returned a valid statistics document.
	Found bool
	// Username is the player's current name (Found only).
	Username string
	// GlobalRank is the player's global rank, 0 when unranked (Found only).
	GlobalRank int
}

// Client fetches player statistics from the osu! v2 API, authenticated via
// OAuth client credentials and throttled by a per-instance rate limiter.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *ratelimit.Limiter
}

// NewClient builds an authenticated Client from configuration. The token is
// fetched lazily on the first request and refreshed by the oauth2 transport.
func NewClient(cfg Config) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       []string{"public"},
	}

	interval := time.Duration(cfg.RequestIntervalMs) * time.Millisecond

	return &Client{
		baseURL: strings.TrimSuffix(cfg.ApiURL, "/"),
		http:    cc.Client(context.Background()),
		limiter: ratelimit.New(interval),
	}
}

// newClientWith wires an explicit HTTP client and limiter, for tests.
func newClientWith(baseURL string, httpClient *http.Client, limiter *ratelimit.Limiter) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    httpClient,
		limiter: limiter,
	}
}

// LookupUser fetches the current statistics of a player in the osu (standard)
// ruleset and classifies the response.
//
// A response object carrying an "error" key, whatever its value, means the
// account no longer resolves upstream: Outcome.Found is false. This matches
// the API's behavior for restricted and deleted accounts and deliberately
// ignores the HTTP status code. Any other body that does not look like a
// statistics document is reported as an error.
func (c *Client) LookupUser(ctx context.Context, osuID int64) (Outcome, error) {
	return c.getUser(ctx, fmt.Sprintf("%s/users/%d/osu", c.baseURL, osuID))
}

func (c *Client) getUser(ctx context.Context, url string) (Outcome, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Outcome{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Outcome{}, fmt.Errorf("osu api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read osu api response: %w", err)
	}

	return classify(body)
}

// classify decides between Found, NotFound and a malformed response.
func classify(body []byte) (Outcome, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Outcome{}, fmt.Errorf("failed to decode osu api response: %w", err)
	}

	// Presence of the key is the signal; the value (usually null) is not.
	if _, ok := raw["error"]; ok {
		return Outcome{Found: false}, nil
	}

	var doc struct {
		Username   string `json:"username"`
		Statistics struct {
			GlobalRank *int `json:"global_rank"`
		} `json:"statistics"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return Outcome{}, fmt.Errorf("failed to decode osu api response: %w", err)
	}
	if doc.Username == "" {
		return Outcome{}, fmt.Errorf("osu api response is neither an error nor a user document")
	}

	out := Outcome{Found: true, Username: doc.Username}
	if doc.Statistics.GlobalRank != nil {
		out.GlobalRank = *doc.Statistics.GlobalRank
	}
	return out, nil
}

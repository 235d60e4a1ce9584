package moderation

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Client calls the tournament moderation API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a moderation API client from configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.ApiURL, "/"),
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Ban requests a ban of the given player, authenticated with the admin's
// opaque hash carried in a session cookie. The call is fire-and-forget:
// the response body and status are not inspected, only transport errors
// surface. The moderation service is the source of truth for the resulting
// is_banned flag; this client never writes it back.
func (c *Client) Ban(ctx context.Context, osuID int64, adminHash string) error {
	endpoint := fmt.Sprintf("%s/user/ban", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build ban request: %w", err)
	}

	q := req.URL.Query()
	q.Set("user_osu_id", strconv.FormatInt(osuID, 10))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Cookie", "user_hash="+adminHash)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ban request failed: %w", err)
	}
	resp.Body.Close()

	return nil
}

package simplefin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client fetches account sets from a SimpleFIN access URL using basic auth.
type Client struct {
	AccessURL string
	Username  string
	Password  string

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// FetchAccounts retrieves all accounts with transactions posted since the
// given time.
func (c *Client) FetchAccounts(ctx context.Context, since time.Time) (AccountSet, error) {
	endpoint := strings.TrimRight(c.AccessURL, "/") + "/accounts"
	u, err := url.Parse(endpoint)
	if err != nil {
		return AccountSet{}, fmt.Errorf("simplefin: parse access url: %w", err)
	}
	q := u.Query()
	q.Set("start-date", strconv.FormatInt(since.Unix(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return AccountSet{}, err
	}
	if c.Username != "" {
		req.SetBasicAuth(c.Username, c.Password)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return AccountSet{}, fmt.Errorf("simplefin: fetch accounts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AccountSet{}, fmt.Errorf("simplefin: fetch accounts: unexpected status %s", resp.Status)
	}

	var set AccountSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return AccountSet{}, fmt.Errorf("simplefin: decode accounts: %w", err)
	}
	return set, nil
}

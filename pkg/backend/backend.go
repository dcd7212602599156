// Package backend wraps the two outbound HTTP lookups used by slash
// commands: the moderation backend's mod check and the lunch-roulette proxy.
// Both are best-effort reads; a failed or empty response means the command
// silently does nothing further.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Lookups is the surface slash-command handlers depend on.
type Lookups interface {
	// IsMod reports whether the user moderates the channel. A status >= 400
	// or an empty result array both mean "no" — the command no-ops.
	IsMod(ctx context.Context, slackID, channelID string) (bool, error)
	// LunchSpots fetches candidate lunch venues near a zip code.
	LunchSpots(ctx context.Context, zip string, radius int) ([]Venue, error)
}

// Venue is one lunch candidate.
type Venue struct {
	Name    string
	Address string
	City    string
}

// Client implements Lookups over HTTP.
type Client struct {
	modsURL  string // e.g. http://localhost:8000/api/mods/
	token    string
	lunchURL string
	http     *http.Client
}

// New builds a client for the configured backend host/port and lunch proxy.
func New(host string, port int, token, lunchURL string) *Client {
	return &Client{
		modsURL:  fmt.Sprintf("http://%s:%d/api/mods/", host, port),
		token:    token,
		lunchURL: lunchURL,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) IsMod(ctx context.Context, slackID, channelID string) (bool, error) {
	q := url.Values{}
	q.Set("slack_id", slackID)
	q.Set("channel_id", channelID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modsURL+"?"+q.Encode(), nil)
	if err != nil {
		return false, fmt.Errorf("backend: build mod check: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("backend: mod check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false, nil
	}

	var mods []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&mods); err != nil {
		return false, fmt.Errorf("backend: decode mod check: %w", err)
	}
	return len(mods) > 0, nil
}

type lunchResponse struct {
	Businesses []struct {
		Name     string `json:"name"`
		Location struct {
			Address1 string `json:"address1"`
			City     string `json:"city"`
		} `json:"location"`
	} `json:"businesses"`
}

func (c *Client) LunchSpots(ctx context.Context, zip string, radius int) ([]Venue, error) {
	q := url.Values{}
	q.Set("zip", zip)
	q.Set("query", "lunch")
	q.Set("radius", fmt.Sprintf("%d", radius))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.lunchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("backend: build lunch lookup: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: lunch lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("backend: lunch lookup: status %d", resp.StatusCode)
	}

	var parsed lunchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("backend: decode lunch lookup: %w", err)
	}

	venues := make([]Venue, 0, len(parsed.Businesses))
	for _, b := range parsed.Businesses {
		venues = append(venues, Venue{Name: b.Name, Address: b.Location.Address1, City: b.Location.City})
	}
	return venues, nil
}

var _ Lookups = (*Client)(nil)

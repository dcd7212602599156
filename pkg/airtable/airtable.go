// Package airtable is the record-keeping collaborator. It resolves mentors
// by their Slack email and records who claimed a mentorship request.
// The bot holds no Airtable state; every call is a fresh round trip.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	mentorsTable  = "Mentors"
	requestsTable = "Mentor Request"
)

// Records is the read/write surface handlers depend on.
type Records interface {
	// MentorIDFromEmail resolves a mentor record ID from a Slack email.
	// A missing mentor is ("", nil) — a recognized outcome, not an error.
	MentorIDFromEmail(ctx context.Context, email string) (string, error)
	// UpdateRequest sets the mentor who claimed a request record.
	UpdateRequest(ctx context.Context, recordID, mentorID string) error
}

// Client talks to the Airtable REST API.
type Client struct {
	baseURL string // e.g. https://api.airtable.com/v0
	baseID  string
	apiKey  string
	http    *http.Client
}

// New creates a client for one Airtable base.
func New(baseURL, baseID, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		baseID:  baseID,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type listResponse struct {
	Records []struct {
		ID string `json:"id"`
	} `json:"records"`
}

func (c *Client) MentorIDFromEmail(ctx context.Context, email string) (string, error) {
	q := url.Values{}
	q.Set("filterByFormula", fmt.Sprintf("{Email}='%s'", email))
	q.Set("maxRecords", "1")

	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.baseID, url.PathEscape(mentorsTable), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("airtable: build mentor lookup: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("airtable: mentor lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("airtable: mentor lookup: status %d: %s", resp.StatusCode, body)
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return "", fmt.Errorf("airtable: decode mentor lookup: %w", err)
	}
	if len(list.Records) == 0 {
		return "", nil
	}
	return list.Records[0].ID, nil
}

func (c *Client) UpdateRequest(ctx context.Context, recordID, mentorID string) error {
	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			"Mentor Assigned": []string{mentorID},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("airtable: encode request update: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.baseID, url.PathEscape(requestsTable), recordID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("airtable: build request update: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("airtable: request update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("airtable: request update %s: status %d: %s", recordID, resp.StatusCode, body)
	}
	return nil
}

var _ Records = (*Client)(nil)

package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultHistoryLimit is the number of transcripts shown in the history pane.
const DefaultHistoryLimit = 5

// ProcessTranscript submits transcript text for action item extraction.
func (c *Client) ProcessTranscript(text string) (*ProcessTranscriptResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("transcript text cannot be empty")
	}

	var resp ProcessTranscriptResponse
	if err := c.Post("/api/transcripts", ProcessTranscriptRequest{Text: text}, &resp); err != nil {
		return nil, fmt.Errorf("failed to process transcript: %w", err)
	}
	return &resp, nil
}

// GetTranscripts returns the most recent transcripts, newest first.
func (c *Client) GetTranscripts(limit int) ([]Transcript, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	transcripts := make([]Transcript, 0)
	if err := c.GetWithQuery("/api/transcripts", query, &transcripts); err != nil {
		return nil, fmt.Errorf("failed to get transcripts: %w", err)
	}
	return transcripts, nil
}

// GetStatus queries the backend health endpoint.
func (c *Client) GetStatus() (*StatusResponse, error) {
	var status StatusResponse
	if err := c.Get("/status", &status); err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &status, nil
}

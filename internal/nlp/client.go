// ABOUTME: HTTP client for the NLP sidecar service (spell correction + NER)
// ABOUTME: Implements the Corrector and Extractor interfaces over JSON/HTTP

package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client talks to the NLP sidecar that hosts the spell-correction and
// named-entity models. The sidecar's algorithms are not our concern; this
// client only moves text across the boundary.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the NLP sidecar at baseURL. Pass zero
// timeout for the default. Pass nil logger for slog.Default().
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "nlp"),
	}
}

// Correct sends text to POST /correct and returns the corrected string.
func (c *Client) Correct(ctx context.Context, text string) (string, error) {
	var resp struct {
		Corrected string `json:"corrected"`
	}
	if err := c.post(ctx, "/correct", map[string]string{"text": text}, &resp); err != nil {
		return "", fmt.Errorf("spell correction: %w", err)
	}
	return resp.Corrected, nil
}

// Extract sends text to POST /entities and returns the extracted entities in
// the order the collaborator emitted them.
func (c *Client) Extract(ctx context.Context, text string) ([]Entity, error) {
	var resp struct {
		Entities []Entity `json:"entities"`
	}
	if err := c.post(ctx, "/entities", map[string]string{"text": text}, &resp); err != nil {
		return nil, fmt.Errorf("entity extraction: %w", err)
	}
	return resp.Entities, nil
}

// post issues a JSON POST and decodes the JSON response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("calling %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}

	return nil
}

var (
	_ Corrector = (*Client)(nil)
	_ Extractor = (*Client)(nil)
)

// Package suggest calls the AI-suggestion backend: opaque text in, suggested
// answer text out. Failures only disable auto-fill; they never block card
// creation.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
)

// Suggester produces a suggested answer for captured text. An empty
// suggestion with a nil error means the backend had nothing to offer.
type Suggester interface {
	Suggest(ctx context.Context, text string) (string, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a suggestion client for the given backend URL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		log:        logger.Default().WithPrefix("suggest"),
	}
}

// Ensure Client implements the interface
var _ Suggester = (*Client)(nil)

type suggestRequest struct {
	Text string `json:"text"`
}

type suggestResponse struct {
	Suggestion *string `json:"suggestion"`
}

func (c *Client) Suggest(ctx context.Context, text string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("suggest")

	payload, err := json.Marshal(suggestRequest{Text: text})
	if err != nil {
		return "", err
	}

	log.Debug("requesting suggestion: %d chars of text", len(text))
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		log.Error("failed to create request: %v", err)
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("suggestion request failed: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	log.Debug("suggestion response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Warn("suggestion request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return "", fmt.Errorf("suggest status %d: %s", resp.StatusCode, string(body))
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		log.Warn("failed to decode suggestion response: %v", err)
		return "", err
	}
	if out.Suggestion == nil {
		log.Debug("backend returned no suggestion")
		return "", nil
	}
	return *out.Suggestion, nil
}

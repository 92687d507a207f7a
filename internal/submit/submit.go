// Package submit posts user-submitted quotes to the configured endpoint.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"quotefeed/internal/logging"
)

const submitTimeout = 10 * time.Second

// Submission is the outbound payload.
type Submission struct {
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// Client dispatches submissions. The transport is opaque: the endpoint
// gives no structured response the caller can use, so success means the
// request left without a transport-level error.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a Client for the given endpoint. An empty endpoint
// means submissions are logged and reported as sent, which keeps the
// form usable in development.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: submitTimeout},
	}
}

// Send dispatches sub fire-and-forget. Returns nil once the request is
// on the wire; the response body and status carry no usable signal and
// are ignored.
func (c *Client) Send(ctx context.Context, sub Submission) error {
	if c.endpoint == "" {
		logging.Info("quote submission (no endpoint configured)", "author", sub.Author)
		return nil
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("dispatch submission: %w", err)
	}
	resp.Body.Close()

	logging.Info("quote submitted", "status", resp.StatusCode)
	return nil
}

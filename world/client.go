package world

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// maxBody bounds how much of a response we read
const maxBody = 8 << 20

// Client talks to the remote world service
type Client struct {
	httpClient *http.Client
	worldURL   string
	submitURL  string
	logger     *slog.Logger
}

// NewClient creates a client; redirects are followed by the underlying http.Client
func NewClient(worldURL, submitURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		worldURL:   worldURL,
		submitURL:  submitURL,
		logger:     logger,
	}
}

// FetchWorld retrieves a starting world
func (c *Client) FetchWorld(ctx context.Context) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.worldURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "[FetchWorld] failed to build request")
	}
	req.Header.Set("Accept", "application/json")

	body, _, err := c.do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[FetchWorld]")
	}

	payload, err := DecodePayload(body)
	if err != nil {
		return nil, err
	}
	c.logger.Info("fetched world",
		"url", c.worldURL,
		"size", payload.Size,
		"generation_count", payload.GenerationCount,
	)
	return payload, nil
}

// Submit posts the computed generations and returns the URL the service
// redirected to, or the submit URL itself if there was no redirect.
func (c *Client) Submit(ctx context.Context, sub *Submission) (string, error) {
	data, err := json.Marshal(sub)
	if err != nil {
		return "", errors.Wrap(err, "[Submit] failed to marshal submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.submitURL, bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, "[Submit] failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	_, finalURL, err := c.do(req)
	if err != nil {
		return "", errors.Wrap(err, "[Submit]")
	}
	c.logger.Info("submitted generations", "url", c.submitURL, "generations", sub.Generations.Len(), "result_url", finalURL)
	return finalURL, nil
}

func (c *Client) do(req *http.Request) ([]byte, string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", errors.Wrapf(err, "%s %s", req.Method, req.URL)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", errors.Wrapf(ErrUnexpectedStatus, "%s %s: %d", req.Method, req.URL, resp.StatusCode)
	}
	return body, resp.Request.URL.String(), nil
}

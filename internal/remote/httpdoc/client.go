// Package httpdoc implements the remote document store over a plain JSON
// HTTP API. The server exposes one keyed collection per entity type:
//
//	GET  {base}/collections/{collection}/records/{id}
//	GET  {base}/collections/{collection}/records?since={rfc3339}
//	POST {base}/collections/{collection}/batch
//
// Batch writes are atomic server-side. Authentication is a static bearer
// token; per-user scoping happens behind it.
package httpdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/triplebook/triplebook/internal/apperrors"
	"github.com/triplebook/triplebook/internal/core/domain"
	"github.com/triplebook/triplebook/internal/core/ports"
)

const defaultTimeout = 30 * time.Second

// Client talks to the remote document store.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a remote store client for the given base URL and bearer
// token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.RemoteStore = (*Client)(nil)

func (c *Client) Get(ctx context.Context, collection domain.Collection, id string) (*ports.RemoteRecord, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/records/%s", c.baseURL, collection, url.PathEscape(id))
	var record ports.RemoteRecord
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) Changes(ctx context.Context, collection domain.Collection, since time.Time) ([]ports.RemoteRecord, error) {
	endpoint := fmt.Sprintf("%s/collections/%s/records?since=%s",
		c.baseURL, collection, url.QueryEscape(since.UTC().Format(time.RFC3339Nano)))
	var records []ports.RemoteRecord
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) PutBatch(ctx context.Context, collection domain.Collection, records []ports.RemoteRecord) error {
	endpoint := fmt.Sprintf("%s/collections/%s/batch", c.baseURL, collection)
	return c.do(ctx, http.MethodPost, endpoint, records, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrSyncTransport, err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.ErrNotFound
	case resp.StatusCode >= 400:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s returned %d: %s", apperrors.ErrSyncTransport, endpoint, resp.StatusCode, payload)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %s", apperrors.ErrSyncTransport, err.Error())
	}
	return nil
}

// Package gateway provides the HTTP client for the upstream image-storage service
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/UnendingLoop/ImageVault/internal/model"
)

// Client talks to the upstream image service. The upstream is the system of
// record for image bytes and canonical URLs; it knows nothing about caller
// identity, so every call here must already be authorized.
// One attempt per call - no retries.
type Client struct {
	baseURL      string
	privateToken string
	http         *http.Client
}

const privateTokenHeader = "Private-Token"

// NewClient creates an upstream client with a bounded per-request timeout.
func NewClient(baseURL, privateToken string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		privateToken: privateToken,
		http:         &http.Client{Timeout: timeout},
	}
}

// Create forwards the caller-supplied payload to the upstream create endpoint
// and returns the upstream-assigned descriptor.
func (c *Client) Create(ctx context.Context, payload *model.ImageCreateData) (*model.UpstreamImage, error) {
	return c.send(ctx, http.MethodPost, c.baseURL+"/images", payload)
}

// Update patches the mutable fields of an upstream image. The verb matters to
// the upstream: PUT replaces, PATCH merges.
func (c *Client) Update(ctx context.Context, id string, patch *model.ImagePatch, method string) (*model.UpstreamImage, error) {
	return c.send(ctx, method, c.baseURL+"/images/"+id, patch)
}

// Delete removes the upstream image.
func (c *Client) Delete(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/images/"+id, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}
	req.Header.Set(privateTokenHeader, c.privateToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d", model.ErrUpstream, resp.StatusCode)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, url string, body any) (*model.UpstreamImage, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(privateTokenHeader, c.privateToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrUpstream, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", model.ErrUpstream, resp.StatusCode)
	}

	var descriptor model.UpstreamImage
	if err := json.NewDecoder(resp.Body).Decode(&descriptor); err != nil {
		return nil, fmt.Errorf("%w: malformed response body: %w", model.ErrUpstream, err)
	}

	return &descriptor, nil
}

// drainAndClose lets the transport reuse the connection
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

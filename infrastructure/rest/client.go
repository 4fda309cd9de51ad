// Package rest talks JSON to the marketplace backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"event-market/errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const requestIDHeader = "X-Request-Id"

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://vyh328h455.execute-api.us-east-1.amazonaws.com/v1"

type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// NewClient builds a client whose only deadline is the transport timeout.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout}, log)
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

// GetJSON decodes the body of a successful GET into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil)
}

// PostJSON sends in as JSON. When accepted is empty any 2xx is a success,
// otherwise the status must be one of accepted.
func (c *Client) PostJSON(ctx context.Context, path string, in any, accepted ...int) error {
	return c.do(ctx, http.MethodPost, path, in, nil, accepted)
}

func (c *Client) PutJSON(ctx context.Context, path string, in any, accepted ...int) error {
	return c.do(ctx, http.MethodPut, path, in, nil, accepted)
}

func (c *Client) Delete(ctx context.Context, path string, accepted ...int) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, accepted)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, accepted []int) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	request.Header.Set(requestIDHeader, requestID)
	request.Header.Set("Accept", "application/json")
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := c.http.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = response.Body.Close() }()

	c.log.Debug("Backend call",
		"method", method,
		"path", path,
		"status", response.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(start))

	if !isAccepted(response.StatusCode, accepted) {
		_, _ = io.Copy(io.Discard, response.Body)
		return fmt.Errorf("%w: %s %s returned %d", errors.ErrUnexpectedStatus, method, path, response.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}
	if err = json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func isAccepted(status int, accepted []int) bool {
	if len(accepted) == 0 {
		return status >= 200 && status < 300
	}
	return lo.Contains(accepted, status)
}

// Package api provides the HTTP client for the GastoControl backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

// ErrUnauthorized indicates the access token was rejected by the server.
// Callers must treat it as a forced logout, not a generic rejection.
var ErrUnauthorized = errors.New("api: unauthorized (token expired or invalid)")

// ErrNotFound indicates the requested resource does not exist.
var ErrNotFound = errors.New("api: not found")

// Error is a typed server rejection carrying the HTTP status and the
// error payload exactly as the server sent it.
type Error struct {
	Status int
	Detail string              // top-level "detail" message, if any
	Fields map[string][]string // field-keyed validation messages, if any
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Detail, e.Status)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
		}
		return fmt.Sprintf("api: %s (status %d)", strings.Join(parts, ", "), e.Status)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// TokenSource supplies the current access token. An empty string means no
// session; the request goes out without an Authorization header.
type TokenSource interface {
	AccessToken() string
}

// Client issues JSON requests against the backend, attaching the bearer
// token from the current session. No retries, no request queuing.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8000/api". tokens may be nil for unauthenticated use.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{},
	}
}

// request performs one HTTP round trip and returns the status and body.
// Transport failures surface as errors; HTTP error statuses do not.
func (c *Client) request(ctx context.Context, method, path string, body any) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("api: encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, fmt.Errorf("api: reading response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// do performs one JSON request. A non-nil out is filled from a 2xx body.
// Non-2xx responses become ErrUnauthorized (401), ErrNotFound (404), or a
// typed *Error carrying the server payload verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	status, data, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}

	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status < 200 || status >= 300:
		return parseServerError(status, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: parsing response: %w", err)
	}
	return nil
}

// parseServerError extracts the structured error payload from a non-2xx
// body. The backend sends either {"detail": "..."} or field-keyed message
// lists; both are surfaced verbatim.
func parseServerError(status int, data []byte) error {
	apiErr := &Error{Status: status}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return apiErr
	}

	for key, val := range raw {
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			if key == "detail" || key == "error" {
				apiErr.Detail = s
				continue
			}
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = []string{s}
			continue
		}

		var list []string
		if err := json.Unmarshal(val, &list); err == nil {
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string][]string)
			}
			apiErr.Fields[key] = list
		}
	}

	return apiErr
}

// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ManuGH/capctl/internal/deeplink"
	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultClientTimeout bounds one request to the daemon.
const DefaultClientTimeout = 10 * time.Second

// Error is a problem response returned by the daemon.
type Error struct {
	Status int    `json:"status"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Code   string `json:"code"`
	Detail string `json:"detail"`
	// Result is set for backend failures: the transition was committed.
	Result *model.ActionResult `json:"result,omitempty"`
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d %s): %s", e.Code, e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("%s (%d %s)", e.Code, e.Status, e.Title)
}

// Client talks to a running capctl daemon.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the daemon listening on addr
// ("host:port" or a full http URL).
func NewClient(addr string) *Client {
	base := strings.TrimRight(addr, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   DefaultClientTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Open forwards one deeplink URL. A routing miss is a successful call with
// Outcome.Matched == false.
func (c *Client) Open(ctx context.Context, url string) (deeplink.Outcome, error) {
	var out deeplink.Outcome
	body, err := json.Marshal(DeeplinkRequest{URL: url})
	if err != nil {
		return out, err
	}
	err = c.do(ctx, http.MethodPost, PathDeeplinks, body, &out)
	return out, err
}

// Actions fetches the daemon's registry.
func (c *Client) Actions(ctx context.Context) (ActionsResponse, error) {
	var out ActionsResponse
	err := c.do(ctx, http.MethodGet, PathActions, nil, &out)
	return out, err
}

// Session fetches the current session snapshot.
func (c *Client) Session(ctx context.Context) (model.Snapshot, error) {
	var out model.Snapshot
	err := c.do(ctx, http.MethodGet, PathSession, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, into any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("contact daemon at %s: %w", c.base, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
		if jerr := json.Unmarshal(raw, apiErr); jerr != nil {
			apiErr.Detail = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

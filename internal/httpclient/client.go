package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hrcore/hrconsole/internal/session"
)

// Client is the single configured adapter every domain service goes
// through. It attaches the bearer token from the session store to each
// request and is the one place where authentication loss is detected:
// any 401 clears the session before the error reaches the caller.
type Client struct {
	base    string
	http    *http.Client
	session *session.Store
	log     *slog.Logger
	metrics *Metrics

	onUnauthorized func()
}

func New(baseURL string, timeout time.Duration, store *session.Store, logger *slog.Logger, metrics *Metrics) *Client {
	return &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		session: store,
		log:     logger,
		metrics: metrics,
	}
}

// OnUnauthorized registers the redirect-to-login analog, invoked after
// the session has been cleared by a 401.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

func (c *Client) Get(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, op, http.MethodGet, path, "", nil, out)
}

func (c *Client) Post(ctx context.Context, op, path string, body, out any) error {
	return c.doJSON(ctx, op, http.MethodPost, path, body, out)
}

// PostQuery issues a POST whose parameters travel in the query string,
// optionally with a raw text body (the feedback submission contract).
func (c *Client) PostQuery(ctx context.Context, op, path string, query url.Values, rawBody string, out any) error {
	var body io.Reader
	contentType := ""
	if rawBody != "" {
		body = strings.NewReader(rawBody)
		contentType = "text/plain"
	}
	return c.do(ctx, op, http.MethodPost, path+"?"+query.Encode(), contentType, body, out)
}

func (c *Client) Put(ctx context.Context, op, path string, body, out any) error {
	return c.doJSON(ctx, op, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, op, path string, body, out any) error {
	return c.doJSON(ctx, op, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, "", nil, nil)
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, op, method, path, contentType, reader, out)
}

func (c *Client) do(ctx context.Context, op, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(op, method, 0)
		c.log.Error("Request failed", slog.String("operation", op), slog.String("error", err.Error()))
		return fmt.Errorf("request %s failed: %w", op, err)
	}
	defer resp.Body.Close()

	c.metrics.observe(op, method, resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized {
		c.log.Warn("Unauthorized response, clearing session", slog.String("operation", op))
		c.session.Logout()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(op, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Error("Error decoding response body", slog.String("operation", op), slog.String("error", err.Error()))
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}

	return nil
}

func (c *Client) apiError(op string, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(data) > 0 {
		var payload struct {
			Message string            `json:"message"`
			Error   string            `json:"error"`
			Errors  map[string]string `json:"errors"`
		}
		if jsonErr := json.Unmarshal(data, &payload); jsonErr == nil {
			apiErr.Message = payload.Message
			if apiErr.Message == "" {
				apiErr.Message = payload.Error
			}
			apiErr.Fields = payload.Errors
		}
	}

	c.log.Warn("API error response",
		slog.String("operation", op),
		slog.Int("status", resp.StatusCode),
		slog.String("message", apiErr.Message),
	)

	return apiErr
}

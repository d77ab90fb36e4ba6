package tokenmetrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/tokenmetrics-go/pkg/httpclient"
)

// Request describes one call relative to the configured base URL.
type Request struct {
	Method string
	Path   string
	Query  Params
	// Body is JSON encoded; only sent when non-nil.
	Body any
}

// Do performs one authenticated request and returns the JSON body unchanged.
// Facades are thin wrappers around Do; it is exported for endpoints they do not cover.
func (c *Client) Do(ctx context.Context, req Request) (Envelope, error) {
	if c == nil || c.http == nil {
		return nil, errors.New("tokenmetrics: client is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := "/" + strings.TrimLeft(strings.TrimSpace(req.Path), "/")
	query := req.Query.Values()

	start := time.Now()
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method:  method,
		URL:     c.cfg.BaseURL + path,
		Query:   query,
		Headers: c.headers(req.Body != nil),
		Body:    req.Body,
	})
	if err != nil {
		c.log.WarnObj("tokenmetrics request failed", "tokenmetrics_request", map[string]any{
			"method":     method,
			"path":       path,
			"elapsed_ms": time.Since(start).Milliseconds(),
			"error":      err.Error(),
		})
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	status := resp.StatusCode()
	body := resp.Body()
	c.log.DebugObj("tokenmetrics request completed", "tokenmetrics_request", map[string]any{
		"method":     method,
		"path":       path,
		"query":      query.Encode(),
		"status":     status,
		"bytes":      len(body),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, newAPIError(method, path, status, body)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return Envelope("null"), nil
	}
	if !json.Valid(body) {
		return nil, &DecodeError{
			Method: method,
			Path:   path,
			Body:   append([]byte(nil), body...),
			Err:    fmt.Errorf("body is not valid JSON: %s", snippet(body)),
		}
	}
	return Envelope(append([]byte(nil), body...)), nil
}

func (c *Client) headers(withBody bool) map[string]string {
	headers := make(map[string]string, len(c.cfg.Headers)+4)
	for k, v := range c.cfg.Headers {
		headers[k] = v
	}
	headers["Accept"] = "application/json"
	headers["User-Agent"] = c.cfg.UserAgent
	headers[APIKeyHeader] = c.cfg.APIKey
	if withBody {
		headers["Content-Type"] = "application/json"
	}
	return headers
}

func snippet(body []byte) string {
	const maxLen = 256
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

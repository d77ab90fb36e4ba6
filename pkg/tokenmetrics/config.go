package tokenmetrics

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/samvad-hq/tokenmetrics-go/pkg/httpclient"
)

const (
	// DefaultBaseURL is the production API host.
	DefaultBaseURL = "https://api.tokenmetrics.com"
	// DefaultTimeout bounds a single request when no timeout is configured.
	DefaultTimeout = 30 * time.Second
	// APIKeyHeader carries the API key on every request.
	APIKeyHeader = "x-api-key"

	defaultUserAgent = "tokenmetrics-go/1.0"
)

// Config is owned by a single Client; clients never share configuration.
type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// Headers are sent with every request. The API key header cannot be overridden here.
	Headers map[string]string
}

func (c Config) normalize() Config {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	c.Headers = sanitizeHeaders(c.Headers)
	return c
}

func (c Config) validate() error {
	if c.APIKey == "" {
		return &ConfigError{Field: "api_key", Err: ErrMissingAPIKey}
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return &ConfigError{Field: "base_url", Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Field: "base_url", Err: fmt.Errorf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &ConfigError{Field: "base_url", Err: errors.New("host is empty")}
	}
	return nil
}

// sanitizeHeaders trims and removes empty headers, and never lets callers replace the API key.
func sanitizeHeaders(headers map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		key := strings.TrimSpace(k)
		val := strings.TrimSpace(v)
		if key == "" || val == "" || strings.EqualFold(key, APIKeyHeader) {
			continue
		}
		out[key] = val
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type options struct {
	cfg    Config
	http   httpclient.Client
	logger Logger
}

// Option configures a new Client.
type Option func(*options)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if strings.TrimSpace(u) != "" {
			o.cfg.BaseURL = u
		}
	}
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.cfg.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.cfg.UserAgent = ua
	}
}

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.cfg.Headers == nil {
			o.cfg.Headers = make(map[string]string)
		}
		o.cfg.Headers[key] = value
	}
}

// WithHTTPClient injects the transport. The configured timeout is not applied to it.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(o *options) {
		if hc != nil {
			o.http = hc
		}
	}
}

// WithRestyClient uses rc as the transport, e.g. one whose round tripper records traffic.
func WithRestyClient(rc *resty.Client) Option {
	return func(o *options) {
		if rc != nil {
			o.http = httpclient.WrapResty(rc)
		}
	}
}

// WithLogger injects a logger for per-request debug entries. The default logs nothing.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

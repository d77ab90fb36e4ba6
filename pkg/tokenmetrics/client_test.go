package tokenmetrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/tokenmetrics-go/pkg/httpclient"
)

// countingHTTPClient records requests without touching the network.
type countingHTTPClient struct {
	calls int
	last  httpclient.Request
	resp  httpclient.Response
	err   error
}

func (c *countingHTTPClient) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	c.calls++
	c.last = req
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

type stubResponse struct {
	status int
	body   string
}

func (s stubResponse) Body() []byte    { return []byte(s.body) }
func (s stubResponse) StatusCode() int { return s.status }

func TestNewRejectsMissingAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		hc := &countingHTTPClient{}
		c, err := New(key, WithHTTPClient(hc))
		require.Error(t, err)
		assert.Nil(t, c)
		assert.ErrorIs(t, err, ErrMissingAPIKey)

		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "api_key", cfgErr.Field)
		assert.Zero(t, hc.calls, "no request may be attempted")
	}
}

func TestNewRejectsInvalidBaseURL(t *testing.T) {
	_, err := New("key", WithBaseURL("ftp://example.com"))
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "base_url", cfgErr.Field)

	_, err = New("key", WithBaseURL("https://"))
	require.ErrorAs(t, err, &cfgErr)
}

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New("  key  ")
	require.NoError(t, err)

	cfg := c.Config()
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, defaultUserAgent, cfg.UserAgent)
	assert.NotNil(t, c.Tokens)
	assert.Equal(t, PathTokens, c.Tokens.Path())
	assert.Equal(t, PathDailyOHLCV, c.DailyOHLCV.Path())
}

func TestClientsDoNotShareConfiguration(t *testing.T) {
	shared := map[string]string{"X-Team": "a"}
	a, err := NewFromConfig(Config{APIKey: "a", Headers: shared}, WithTimeout(5*time.Second))
	require.NoError(t, err)
	b, err := NewFromConfig(Config{APIKey: "b", BaseURL: "http://localhost:8080/"})
	require.NoError(t, err)

	shared["X-Team"] = "mutated"
	cfg := a.Config()
	cfg.Headers["X-Team"] = "mutated-again"

	assert.Equal(t, "a", a.Config().Headers["X-Team"])
	assert.Equal(t, 5*time.Second, a.Config().Timeout)
	assert.Equal(t, "http://localhost:8080", b.Config().BaseURL)
	assert.Equal(t, DefaultTimeout, b.Config().Timeout)
}

func TestHeadersCannotReplaceAPIKey(t *testing.T) {
	hc := &countingHTTPClient{resp: stubResponse{status: 200, body: `{}`}}
	c, err := New("real-key", WithHTTPClient(hc), WithHeader("X-API-KEY", "spoofed"), WithHeader("X-Trace", "1"))
	require.NoError(t, err)

	_, err = c.Tokens.Get(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "real-key", hc.last.Headers[APIKeyHeader])
	assert.Equal(t, "1", hc.last.Headers["X-Trace"])
	_, spoofed := hc.last.Headers["X-API-KEY"]
	assert.False(t, spoofed)
}

package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestyClientDoSendsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "a=1&b=x%2Cy", r.URL.RawQuery)
		assert.Equal(t, "k", r.Header.Get("X-Key"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"q":"hi"}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewRestyClient(2 * time.Second)
	resp, err := c.Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     srv.URL,
		Query:   url.Values{"a": {"1"}, "b": {"x,y"}},
		Headers: map[string]string{"X-Key": "k", "Content-Type": "application/json"},
		Body:    map[string]string{"q": "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode())
	assert.Equal(t, `{"ok":true}`, string(resp.Body()))
}

func TestRestyClientDoReturnsErrorStatusAsResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	resp, err := WrapResty(resty.New()).Do(context.Background(), Request{URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func TestRestyClientDoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := NewRestyClient(time.Second).Do(context.Background(), Request{URL: addr})
	assert.Error(t, err)

	var nilClient *RestyClient
	_, err = nilClient.Do(context.Background(), Request{URL: addr})
	assert.Error(t, err)
}

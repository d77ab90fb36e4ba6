package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
	"github.com/samvad-hq/tokenmetrics-go/pkg/tokenmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	id string
}

func (s stubFetcher) ID() string { return s.id }

func (s stubFetcher) Fetch(context.Context, Job) ([]domain.Record, error) { return nil, nil }

func newAPIClient(t *testing.T, h http.HandlerFunc) *tokenmetrics.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := tokenmetrics.New("test-key", tokenmetrics.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return c
}

func TestFetcherRegistryPrefersJobID(t *testing.T) {
	byResource := stubFetcher{id: "resource"}
	byID := stubFetcher{id: "special"}
	reg := NewResourceFetcherRegistry(map[string]Fetcher{ResourceTokens: byResource}, byID)

	f, err := reg.FetcherFor(Job{ID: "SPECIAL", Resource: ResourceTokens})
	require.NoError(t, err)
	assert.Equal(t, "special", f.ID())

	f, err = reg.FetcherFor(Job{ID: "other", Resource: "Tokens"})
	require.NoError(t, err)
	assert.Equal(t, "resource", f.ID())

	_, err = reg.FetcherFor(Job{ID: "other", Resource: ResourceAIReports})
	assert.Error(t, err)

	_, err = reg.FetcherFor(Job{Resource: ResourceTokens})
	assert.Error(t, err)
}

func TestDefaultFetcherRegistryCoversEveryResource(t *testing.T) {
	_, err := DefaultFetcherRegistry(nil)
	require.Error(t, err)

	c, err := tokenmetrics.New("test-key")
	require.NoError(t, err)
	reg, err := DefaultFetcherRegistry(c)
	require.NoError(t, err)

	for resource := range knownResources {
		f, err := reg.FetcherFor(Job{ID: "job-" + resource, Resource: resource})
		require.NoError(t, err, resource)
		assert.Equal(t, resource, f.ID())
	}
}

func TestResourceFetcherSplitsRows(t *testing.T) {
	c := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/trader-grades", r.URL.Path)
		assert.Equal(t, "limit=2&symbol=BTC%2CETH", r.URL.RawQuery)
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"TOKEN_SYMBOL":"BTC","TM_TRADER_GRADE":71.2},
			{"TM_TRADER_GRADE":55.0}
		]}`)
	})
	reg, err := DefaultFetcherRegistry(c)
	require.NoError(t, err)

	job := Job{ID: "grades", Resource: ResourceTraderGrades, Params: map[string]any{"symbol": "BTC,ETH", "limit": 2}}
	f, err := reg.FetcherFor(job)
	require.NoError(t, err)

	records, err := f.Fetch(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "BTC", records[0].Symbol)
	assert.Equal(t, "BTC,ETH", records[1].Symbol)
	assert.Equal(t, ResourceTraderGrades, records[0].Resource)
	assert.NotEqual(t, records[0].ID, records[1].ID)
	assert.JSONEq(t, `{"TOKEN_SYMBOL":"BTC","TM_TRADER_GRADE":71.2}`, string(records[0].Payload))
}

func TestResourceFetcherRejectsMismatchedJob(t *testing.T) {
	f := &resourceFetcher{resource: ResourceTokens}
	_, err := f.Fetch(context.Background(), Job{ID: "x", Resource: ResourceAIReports})
	assert.Error(t, err)
}

func TestResourceFetcherWrapsAPIError(t *testing.T) {
	c := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid API key"}`)
	})
	reg, err := DefaultFetcherRegistry(c)
	require.NoError(t, err)

	job := Job{ID: "tokens", Resource: ResourceTokens}
	f, err := reg.FetcherFor(job)
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), job)
	require.Error(t, err)
	status, ok := tokenmetrics.StatusCode(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAgentFetcherProducesSingleRecord(t *testing.T) {
	c := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/tmai", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"messages": []any{map[string]any{"user": "How is BTC?"}}}, body)
		_, _ = io.WriteString(w, `{"success":true,"answer":"Bullish."}`)
	})
	reg, err := DefaultFetcherRegistry(c)
	require.NoError(t, err)

	job := Job{ID: "pulse", Resource: ResourceAIAgent, Prompt: "How is BTC?", Params: map[string]any{"symbol": "BTC"}}
	f, err := reg.FetcherFor(job)
	require.NoError(t, err)

	records, err := f.Fetch(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "BTC", records[0].Symbol)
	assert.Equal(t, ResourceAIAgent, records[0].Resource)
	assert.JSONEq(t, `{"success":true,"answer":"Bullish."}`, string(records[0].Payload))
}

func TestAgentFetcherRequiresAnswer(t *testing.T) {
	c := newAPIClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	f := &agentFetcher{agent: c.AIAgent}
	_, err := f.Fetch(context.Background(), Job{ID: "pulse", Resource: ResourceAIAgent, Prompt: "hi"})
	assert.True(t, errors.Is(err, tokenmetrics.ErrNoAnswer))
}

func TestRecordIDsIgnoreKeyOrder(t *testing.T) {
	job := Job{ID: "t", Resource: ResourceTokens}
	a, err := recordsFromEnvelope(job, tokenmetrics.Envelope(`[{"a":1,"b":2}]`))
	require.NoError(t, err)
	b, err := recordsFromEnvelope(job, tokenmetrics.Envelope(`[{ "b":2, "a":1 }]`))
	require.NoError(t, err)
	assert.Equal(t, a[0].ID, b[0].ID)

	other, err := recordsFromEnvelope(Job{ID: "t", Resource: ResourceAIReports}, tokenmetrics.Envelope(`[{"a":1,"b":2}]`))
	require.NoError(t, err)
	assert.NotEqual(t, a[0].ID, other[0].ID)
}

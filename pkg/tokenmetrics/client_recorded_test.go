package tokenmetrics

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnaeon/go-vcr/cassette"
	"github.com/dnaeon/go-vcr/recorder"
	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Replays testdata/cassettes/tokens_btc.yaml. Delete the cassette and set
// RECORD_CASSETTES=1 and TMAI_API_KEY to record it again against the live API.
func TestClientTokens_Recorded(t *testing.T) {
	cassetteName := filepath.Join("testdata", "cassettes", "tokens_btc")
	apiKey := "replay-key"
	if _, err := os.Stat(cassetteName + ".yaml"); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" || os.Getenv("TMAI_API_KEY") == "" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 and TMAI_API_KEY to record: %s.yaml", cassetteName)
		}
		apiKey = os.Getenv("TMAI_API_KEY")
		require.NoError(t, os.MkdirAll(filepath.Dir(cassetteName), 0o755))
	}

	r, err := recorder.New(cassetteName)
	require.NoError(t, err)
	defer func() { _ = r.Stop() }()
	r.AddFilter(func(i *cassette.Interaction) error {
		delete(i.Request.Headers, http.CanonicalHeaderKey(APIKeyHeader))
		return nil
	})

	rc := resty.New().SetTransport(r)
	client, err := New(apiKey, WithRestyClient(rc))
	require.NoError(t, err)

	env, err := client.Tokens.Get(context.Background(), &TokensOptions{TokenFilter: TokenFilter{Symbol: "BTC"}})
	require.NoError(t, err)

	tokens, err := DecodeData[Token](env)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, "BTC", tokens[0].Symbol)
	assert.Equal(t, int64(3375), tokens[0].TokenID)
	assert.Equal(t, "Bitcoin", tokens[0].TokenName)
	success, ok := env.Success()
	assert.True(t, ok)
	assert.True(t, success)
}

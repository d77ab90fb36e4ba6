package jobs

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
	"github.com/samvad-hq/tokenmetrics-go/pkg/tokenmetrics"
)

// symbolKeys are the row columns that carry a token symbol, in lookup order.
var symbolKeys = []string{"TOKEN_SYMBOL", "SYMBOL", "symbol"}

func hashRecord(resource string, payload []byte) string {
	h := sha1.New()
	h.Write([]byte(resource))
	h.Write([]byte{0})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// canonicalJSON re-encodes raw so that key order and whitespace do not affect record ids.
func canonicalJSON(raw json.RawMessage) ([]byte, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func recordsFromEnvelope(job Job, env tokenmetrics.Envelope) ([]domain.Record, error) {
	rows, err := env.Rows()
	if err != nil {
		return nil, err
	}

	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		canon, err := canonicalJSON(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		records = append(records, domain.Record{
			ID:       hashRecord(job.Resource, canon),
			Resource: job.Resource,
			Symbol:   rowSymbol(row, ParamString(job, "symbol", "")),
			Payload:  row,
		})
	}
	return records, nil
}

func rowSymbol(row json.RawMessage, fallback string) string {
	var fields map[string]any
	if err := json.Unmarshal(row, &fields); err != nil {
		return fallback
	}
	for _, key := range symbolKeys {
		if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return fallback
}

// ParamString returns the trimmed string value for key from job.Params or a fallback.
func ParamString(job Job, key, fallback string) string {
	if job.Params != nil {
		if raw, ok := job.Params[key]; ok {
			if val, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(val); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return fallback
}

package domain

import "encoding/json"

// Record is one row harvested from an API response.
type Record struct {
	// ID is stable for identical content, so re-polled rows dedupe.
	ID       string          `json:"id"`
	Resource string          `json:"resource"`
	Symbol   string          `json:"symbol,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

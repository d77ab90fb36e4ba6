package tokenmetrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Envelope is a response body exactly as the API returned it, commonly
// {"success":true,"message":"...","data":[...]}.
type Envelope json.RawMessage

// Raw returns the body bytes.
func (e Envelope) Raw() json.RawMessage { return json.RawMessage(e) }

// MarshalJSON emits the body unchanged.
func (e Envelope) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	return e, nil
}

// UnmarshalJSON stores a copy of data.
func (e *Envelope) UnmarshalJSON(data []byte) error {
	if e == nil {
		return fmt.Errorf("tokenmetrics: UnmarshalJSON on nil Envelope")
	}
	*e = append((*e)[:0], data...)
	return nil
}

// Decode unmarshals the whole body into v.
func (e Envelope) Decode(v any) error {
	if len(e) == 0 {
		return fmt.Errorf("tokenmetrics: empty envelope")
	}
	return json.Unmarshal(e, v)
}

// Map decodes the body as a JSON object.
func (e Envelope) Map() (map[string]any, error) {
	var m map[string]any
	if err := e.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

func (e Envelope) fields() map[string]json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(e, &m); err != nil {
		return nil
	}
	return m
}

// Data returns the raw "data" member, or nil when absent.
func (e Envelope) Data() json.RawMessage {
	return e.fields()["data"]
}

// Message returns the "message" member, if it is a string.
func (e Envelope) Message() string {
	var msg string
	if raw, ok := e.fields()["message"]; ok {
		_ = json.Unmarshal(raw, &msg)
	}
	return msg
}

// Success reports the "success" flag; ok is false when the body has none.
func (e Envelope) Success() (success, ok bool) {
	raw, present := e.fields()["success"]
	if !present {
		return false, false
	}
	if err := json.Unmarshal(raw, &success); err != nil {
		return false, false
	}
	return success, true
}

// Answer returns the AI agent's answer text from "answer" or "data.answer".
func (e Envelope) Answer() (string, bool) {
	f := e.fields()
	if s, ok := stringField(f, "answer"); ok {
		return s, true
	}
	if data, ok := f["data"]; ok {
		return Envelope(data).Answer()
	}
	return "", false
}

func stringField(f map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := f[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// Rows splits the payload into records: the elements of "data" when it is an
// array, "data" itself when it is an object, or the elements of a top-level array.
func (e Envelope) Rows() ([]json.RawMessage, error) {
	body := bytes.TrimSpace(e)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}
	if body[0] == '[' {
		return splitArray(body)
	}

	f := e.fields()
	if f == nil {
		return nil, fmt.Errorf("tokenmetrics: envelope is neither an object nor an array")
	}
	data := bytes.TrimSpace(f["data"])
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		return nil, nil
	case data[0] == '[':
		return splitArray(data)
	case data[0] == '{':
		return []json.RawMessage{json.RawMessage(data)}, nil
	default:
		return nil, fmt.Errorf("tokenmetrics: data member is not an object or array")
	}
}

func splitArray(raw []byte) ([]json.RawMessage, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("tokenmetrics: decode data rows: %w", err)
	}
	return rows, nil
}

// DecodeData decodes every row of e into T.
func DecodeData[T any](e Envelope) ([]T, error) {
	rows, err := e.Rows()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		var v T
		if err := json.Unmarshal(row, &v); err != nil {
			return nil, fmt.Errorf("tokenmetrics: decode row %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

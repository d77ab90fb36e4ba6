package tokenmetrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingAPIKey is returned by New when no API key is supplied.
	ErrMissingAPIKey = errors.New("api key is required")
	// ErrEmptyPrompt is returned by the AI agent before any request when the prompt is blank.
	ErrEmptyPrompt = errors.New("tokenmetrics: prompt is empty")
	// ErrNoAnswer is returned by AnswerText when the envelope carries no answer text.
	ErrNoAnswer = errors.New("tokenmetrics: response carries no answer")
)

// ConfigError reports an invalid client configuration. It is raised at
// construction time, before any network call.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("tokenmetrics: invalid config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError wraps failures below HTTP: DNS, connection, TLS, timeouts, cancellation.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("tokenmetrics: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the remote "message" (or "error") field, else the status text.
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tokenmetrics: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// DecodeError reports a 2xx response whose body is not JSON.
type DecodeError struct {
	Method string
	Path   string
	Body   []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tokenmetrics: %s %s: decode response: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusCode extracts the remote status code from err, if it carries one.
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	return &APIError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    remoteMessage(status, body),
		Body:       append([]byte(nil), body...),
	}
}

func remoteMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(payload.Error); msg != "" {
			return msg
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}

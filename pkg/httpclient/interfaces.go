package httpclient

import (
	"context"
	"net/url"
)

// Request describes a single outbound HTTP call.
type Request struct {
	Method  string
	URL     string
	Query   url.Values
	Headers map[string]string
	// Body is serialized by the transport; nil sends no body.
	Body any
}

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}

package publishers

import (
	"context"

	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
)

// Publisher sends events to a downstream sink (SQS, SNS, Pub/Sub, HTTP).
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Sender delivers one encoded event to a queue-like sink.
type Sender interface {
	Send(ctx context.Context, evt Event) error
	Close() error
}

func ensureLogger(log logger.Logger) logger.Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}

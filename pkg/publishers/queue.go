package publishers

import (
	"context"

	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
)

// queuePublisher adapts a Sender to the Publisher interface.
type queuePublisher struct {
	id     string
	typ    string
	sender Sender
	log    logger.Logger
}

func newQueuePublisher(id, typ string, sender Sender, log logger.Logger) *queuePublisher {
	return &queuePublisher{id: id, typ: typ, sender: sender, log: ensureLogger(log)}
}

func (q *queuePublisher) ID() string   { return q.id }
func (q *queuePublisher) Type() string { return q.typ }

func (q *queuePublisher) Publish(ctx context.Context, evt Event) error {
	if err := q.sender.Send(ctx, evt); err != nil {
		q.log.ErrorObj("publisher send failed", "publisher_error", map[string]any{
			"publisher_id":   q.id,
			"publisher_type": q.typ,
			"event_id":       evt.ID,
			"error":          err.Error(),
		})
		return err
	}
	q.log.DebugObj("publisher delivered event", "publisher_delivery", map[string]any{
		"publisher_id":   q.id,
		"publisher_type": q.typ,
		"event_id":       evt.ID,
	})
	return nil
}

func (q *queuePublisher) Close() error { return q.sender.Close() }

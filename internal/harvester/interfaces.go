package harvester

import (
	"context"

	"github.com/samvad-hq/tokenmetrics-go/pkg/publishers"
)

// EventPublisher publishes harvested records downstream and reports how many sinks accepted each event.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// Deduper remembers which records were already published.
type Deduper interface {
	SeenRecord(id string) (bool, error)
	MarkRecords(ids ...string) error
}

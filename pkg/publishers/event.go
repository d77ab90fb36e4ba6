package publishers

import (
	"time"

	"github.com/google/uuid"
	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
)

// Event represents the payload published downstream.
type Event struct {
	ID          string        `json:"id"`
	JobID       string        `json:"job_id"`
	Resource    string        `json:"resource"`
	Record      domain.Record `json:"record"`
	CollectedAt time.Time     `json:"collected_at"`
}

// NewEvent constructs an Event for the given job + record.
func NewEvent(jobID string, record domain.Record) Event {
	return Event{
		ID:          uuid.NewString(),
		JobID:       jobID,
		Resource:    record.Resource,
		Record:      record,
		CollectedAt: time.Now().UTC(),
	}
}

// attributes returns the routing attributes queue sinks attach to each message.
func (e Event) attributes() map[string]string {
	attrs := map[string]string{
		"job_id":   e.JobID,
		"resource": e.Resource,
	}
	if e.Record.Symbol != "" {
		attrs["symbol"] = e.Record.Symbol
	}
	return attrs
}

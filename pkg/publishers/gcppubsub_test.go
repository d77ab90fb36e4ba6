package publishers

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
)

func TestGCPPubSubSenderPublishes(t *testing.T) {
	// Use the in-memory Pub/Sub emulator.
	server := pstest.NewServer()
	defer server.Close()
	t.Setenv("PUBSUB_EMULATOR_HOST", server.Addr)

	ctx := context.Background()
	client, err := pubsub.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	defer client.Close()
	if _, err := client.CreateTopic(ctx, "topic-1"); err != nil {
		t.Fatalf("create topic: %v", err)
	}

	sender, err := newGCPPubSubSender(ctx, &GCPQueueConfig{
		ProjectID: "test-project",
		Topic:     "topic-1",
	}, nil)
	if err != nil {
		t.Fatalf("newGCPPubSubSender: %v", err)
	}
	defer sender.Close()

	err = sender.Send(ctx, Event{
		ID:       "evt-1",
		JobID:    "p1",
		Resource: "tokens",
		Record:   domain.Record{ID: "a1", Resource: "tokens", Symbol: "ETH"},
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	msgs := server.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message on the emulator, got %d", len(msgs))
	}
	if got := msgs[0].Attributes["symbol"]; got != "ETH" {
		t.Fatalf("symbol attribute = %q", got)
	}
	var evt Event
	if err := json.Unmarshal(msgs[0].Data, &evt); err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if evt.Record.ID != "a1" || evt.JobID != "p1" {
		t.Fatalf("unexpected event %+v", evt)
	}
}

func TestNewGCPPubSubSenderRejectsNilConfig(t *testing.T) {
	if _, err := newGCPPubSubSender(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/tokenmetrics-go/internal/domain"
	"github.com/samvad-hq/tokenmetrics-go/internal/logger"
)

type stubPublisher struct {
	id       string
	typ      string
	err      error
	closeErr error
	calls    int
	closed   bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}
func (s *stubPublisher) Close() error {
	s.closed = true
	return s.closeErr
}

type stubSender struct {
	err  error
	sent []Event
}

func (s *stubSender) Send(_ context.Context, evt Event) error {
	s.sent = append(s.sent, evt)
	return s.err
}
func (s *stubSender) Close() error { return nil }

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubPublisher{id: "ok", typ: "http"}
	bad := &stubPublisher{id: "bad", typ: "http", err: errors.New("failed")}
	fanout := NewFanout([]Publisher{ok, nil, bad})

	if fanout.Size() != 2 {
		t.Fatalf("expected nil publishers to be dropped, size %d", fanout.Size())
	}
	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Fatalf("expected every publisher to be called once")
	}
}

func TestFanoutCloseClosesAll(t *testing.T) {
	a := &stubPublisher{id: "a", typ: "sqs", closeErr: errors.New("close failed")}
	b := &stubPublisher{id: "b", typ: "sns"}
	if err := NewFanout([]Publisher{a, b}).Close(); err == nil {
		t.Fatalf("expected close error to surface")
	}
	if !a.closed || !b.closed {
		t.Fatalf("expected both publishers closed")
	}

	var nilFanout *Fanout
	if n, err := nilFanout.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout should be a no-op, got %d, %v", n, err)
	}
}

func TestQueuePublisherDelegatesToSender(t *testing.T) {
	sender := &stubSender{}
	pub := newQueuePublisher("q1", TypeSQS, sender, logger.NopLogger{})

	evt := NewEvent("job-1", domain.Record{ID: "r1", Resource: "tokens"})
	if err := pub.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].ID != evt.ID {
		t.Fatalf("sender did not receive event")
	}
	if pub.ID() != "q1" || pub.Type() != TypeSQS {
		t.Fatalf("unexpected identity %s/%s", pub.ID(), pub.Type())
	}

	sender.err = errors.New("down")
	if err := pub.Publish(context.Background(), evt); err == nil {
		t.Fatalf("expected sender error")
	}
}

func TestNewEventAssignsIdentity(t *testing.T) {
	a := NewEvent("job-1", domain.Record{ID: "r1", Resource: "tokens"})
	b := NewEvent("job-1", domain.Record{ID: "r1", Resource: "tokens"})
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected unique event ids, got %q and %q", a.ID, b.ID)
	}
	if a.Resource != "tokens" || a.CollectedAt.IsZero() {
		t.Fatalf("unexpected event %+v", a)
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
}

func TestBuildAllClosesBuiltPublishersOnFailure(t *testing.T) {
	built := &stubPublisher{id: "first", typ: "stub"}
	reg := NewRegistry(map[string]Builder{
		"stub": func(context.Context, PublisherConfig, logger.Logger) (Publisher, error) { return built, nil },
	})

	_, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "first", Type: "stub"},
		{ID: "second", Type: "kafka"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
	if !built.closed {
		t.Fatalf("expected already-built publisher to be closed")
	}
}

package nats

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/infrastructure/resilience"
)

type publisherFake struct {
	failures int
	err      error
	calls    int
	subject  string
	data     []byte
}

func (p *publisherFake) Publish(subject string, data []byte) error {
	p.calls++
	if p.calls <= p.failures {
		return p.err
	}
	p.subject = subject
	p.data = data
	return nil
}

func TestPublishSearchEventEncodesJSON(t *testing.T) {
	pub := &publisherFake{}
	q := &Queue{pub: pub, subject: "search.events"}

	event := domain.NewSearchEvent(domain.ActionSearch, "shabbat", time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC))
	if err := q.PublishSearchEvent(context.Background(), event); err != nil {
		t.Fatalf("PublishSearchEvent() error = %v", err)
	}
	if pub.subject != "search.events" {
		t.Fatalf("unexpected subject: %s", pub.subject)
	}
	decoded, err := decodeEvent(pub.data)
	if err != nil {
		t.Fatalf("decodeEvent() error = %v", err)
	}
	if decoded.ID != event.ID || decoded.Action != domain.ActionSearch || decoded.Label != "shabbat" {
		t.Fatalf("unexpected decoded event: %#v", decoded)
	}
	if !decoded.OccurredAt.Equal(event.OccurredAt) {
		t.Fatalf("occurred_at mismatch: %v != %v", decoded.OccurredAt, event.OccurredAt)
	}
}

func TestPublishSearchEventRetriesConnectionErrors(t *testing.T) {
	pub := &publisherFake{failures: 1, err: nats.ErrConnectionReconnecting}
	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
	})
	q := &Queue{pub: pub, subject: "search.events", executor: exec}

	if err := q.PublishSearchEvent(context.Background(), domain.NewSearchEvent(domain.ActionSearch, "x", time.Now())); err != nil {
		t.Fatalf("PublishSearchEvent() error = %v", err)
	}
	if pub.calls != 2 {
		t.Fatalf("expected 2 publish attempts, got %d", pub.calls)
	}
}

func TestPublishSearchEventWrapsTemporary(t *testing.T) {
	pub := &publisherFake{failures: 10, err: nats.ErrConnectionClosed}
	q := &Queue{pub: pub, subject: "search.events"}

	err := q.PublishSearchEvent(context.Background(), domain.NewSearchEvent(domain.ActionSearch, "x", time.Now()))
	if !errors.Is(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
}

func TestHandleMessageSkipsUndecodablePayload(t *testing.T) {
	called := false
	handler := func(context.Context, domain.SearchEvent) error {
		called = true
		return nil
	}

	handleMessage(context.Background(), []byte("not json"), handler)
	handleMessage(context.Background(), []byte(`{"action":"Search Box Search"}`), handler)
	if called {
		t.Fatalf("handler must not run for invalid payloads")
	}
}

func TestHandleMessageDeliversEvent(t *testing.T) {
	var got domain.SearchEvent
	handler := func(_ context.Context, event domain.SearchEvent) error {
		got = event
		return fmt.Errorf("store down")
	}

	handleMessage(context.Background(), []byte(`{"id":"e1","category":"Search","action":"Search Box Search","label":"q"}`), handler)
	if got.ID != "e1" || got.Label != "q" {
		t.Fatalf("unexpected delivered event: %#v", got)
	}
}

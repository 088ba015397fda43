package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell/content-service/internal/core/domain"
)

type recordingAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recordingAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *recordingAuditRepo) snapshot() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}

func waitForEvents(t *testing.T, repo *recordingAuditRepo, n int) []domain.AuditEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if events := repo.snapshot(); len(events) >= n {
			return events
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", n, len(repo.snapshot()))
	return nil
}

func TestDispatcher_RecordPersistsAsync(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Record(domain.AuditEvent{Subject: "1", Action: domain.AuditLogin, Success: true})
	d.Record(domain.AuditEvent{Subject: "2", Action: domain.AuditRegister, Success: true})

	events := waitForEvents(t, repo, 2)

	actions := map[string]bool{}
	for _, e := range events {
		actions[e.Action] = true
	}
	if !actions[domain.AuditLogin] || !actions[domain.AuditRegister] {
		t.Fatalf("missing events: %+v", events)
	}
}

func TestDispatcher_SameSubjectKeepsOrder(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	details := []string{"first", "second", "third"}
	for _, detail := range details {
		d.Record(domain.AuditEvent{Subject: "7", Action: domain.AuditAccountUpdate, Detail: detail})
	}

	events := waitForEvents(t, repo, len(details))
	for i, want := range details {
		if events[i].Detail != want {
			t.Fatalf("event %d out of order: got %q, want %q", i, events[i].Detail, want)
		}
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditRepo{}, zerolog.Nop())

	for _, subject := range []string{"", "1", "42", "someone"} {
		first := d.shardIndex(subject)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(subject); got != first {
				t.Fatalf("shard for %q not stable: %d vs %d", subject, got, first)
			}
		}
		if first < 0 || first >= 8 {
			t.Fatalf("shard %d out of range for %q", first, subject)
		}
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	repo := &recordingAuditRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	// Not started: the worker never drains, so the buffer fills and
	// further records must drop instead of blocking.

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.AuditEvent{Subject: "1", Action: domain.AuditLogin})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on a full queue")
	}
}

package gate

import (
	"context"
	"errors"
	"testing"
)

type countingStore struct {
	seen  map[string]bool
	err   error
	reads int
}

func (s *countingStore) LandingSeen(_ context.Context, visitorID string) (bool, error) {
	s.reads++
	if s.err != nil {
		return false, s.err
	}
	return s.seen[visitorID], nil
}

func (s *countingStore) SetLandingSeen(_ context.Context, visitorID string) error {
	if s.err != nil {
		return s.err
	}
	if s.seen == nil {
		s.seen = map[string]bool{}
	}
	s.seen[visitorID] = true
	return nil
}

type recordingTelemetry struct {
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func TestAllowBlocksUntilMarked(t *testing.T) {
	store := NewMemoryVisitorStore()
	g := New(store, nil)
	ctx := context.Background()

	if g.Allow(ctx, "visitor-1") {
		t.Fatalf("expected unseen visitor to be blocked")
	}
	if err := g.MarkSeen(ctx, "visitor-1"); err != nil {
		t.Fatalf("MarkSeen returned error: %v", err)
	}
	if !g.Allow(ctx, "visitor-1") {
		t.Fatalf("expected marked visitor to pass")
	}
	if g.Allow(ctx, "visitor-2") {
		t.Fatalf("expected other visitors to stay blocked")
	}
}

func TestAllowFailsClosed(t *testing.T) {
	ctx := context.Background()

	if New(nil, nil).Allow(ctx, "visitor-1") {
		t.Fatalf("nil store must block")
	}

	var nilGate *Gate
	if nilGate.Allow(ctx, "visitor-1") {
		t.Fatalf("nil gate must block")
	}

	store := &countingStore{seen: map[string]bool{"visitor-1": true}}
	g := New(store, nil)
	if g.Allow(ctx, "") {
		t.Fatalf("empty visitor id must block")
	}
	if store.reads != 0 {
		t.Fatalf("empty id should not reach the store")
	}

	store.err = errors.New("database locked")
	if g.Allow(ctx, "visitor-1") {
		t.Fatalf("store error must block, even for previously seen visitors")
	}
}

func TestAllowPerformsExactlyOneRead(t *testing.T) {
	store := &countingStore{seen: map[string]bool{"visitor-1": true}}
	g := New(store, nil)
	g.Allow(context.Background(), "visitor-1")
	if store.reads != 1 {
		t.Fatalf("expected one store read, got %d", store.reads)
	}
}

func TestMarkSeenValidation(t *testing.T) {
	g := New(NewMemoryVisitorStore(), nil)
	if err := g.MarkSeen(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty visitor id")
	}
	if err := New(nil, nil).MarkSeen(context.Background(), "visitor-1"); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestGateRecordsTelemetry(t *testing.T) {
	telemetry := &recordingTelemetry{}
	g := New(&countingStore{}, telemetry)
	ctx := context.Background()

	g.Allow(ctx, "visitor-1")
	_ = g.MarkSeen(ctx, "visitor-1")

	want := []string{"gate.check", "gate.mark_seen"}
	if len(telemetry.events) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), telemetry.events)
	}
	for i, event := range want {
		if telemetry.events[i] != event {
			t.Fatalf("expected event %q at %d, got %v", event, i, telemetry.events)
		}
	}
}

func TestGateRecordsCheckErrors(t *testing.T) {
	telemetry := &recordingTelemetry{}
	g := New(&countingStore{err: errors.New("boom")}, telemetry)
	g.Allow(context.Background(), "visitor-1")
	if len(telemetry.events) != 1 || telemetry.events[0] != "gate.check_error" {
		t.Fatalf("expected check_error event, got %v", telemetry.events)
	}
}

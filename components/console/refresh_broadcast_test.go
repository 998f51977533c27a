package console

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestBroadcastHookFansOutToSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	first, cancelFirst := hook.Subscribe()
	second, cancelSecond := hook.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	event := PanelEvent{PageCode: "console.page.arpe", Reason: "refresh"}
	if err := hook.PanelUpdated(context.Background(), event); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}

	for _, ch := range []<-chan PanelEvent{first, second} {
		select {
		case got := <-ch:
			if got.PageCode != "console.page.arpe" {
				t.Fatalf("unexpected event %#v", got)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber did not receive event")
		}
	}
}

func TestBroadcastHookSkipsSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	_, cancel := hook.Subscribe()
	defer cancel()

	// Fill the buffer without draining; further publishes must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			_ = hook.PanelUpdated(context.Background(), PanelEvent{Reason: "refresh"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	cancel()
	cancel() // safe to call twice

	if _, ok := <-events; ok {
		t.Fatalf("expected closed channel after cancel")
	}
	if err := hook.PanelUpdated(context.Background(), PanelEvent{}); err != nil {
		t.Fatalf("publish after cancel returned error: %v", err)
	}
}

func TestServeSSEWritesEventFrames(t *testing.T) {
	hook := NewBroadcastHook()

	ctx, cancelCtx := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/console/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		hook.ServeSSE(rec, req)
		close(done)
	}()

	// The handler subscribes asynchronously; retry until a subscriber exists.
	deadline := time.Now().Add(2 * time.Second)
	for {
		hook.mu.RLock()
		subscribed := len(hook.subs) > 0
		hook.mu.RUnlock()
		if subscribed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("handler never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := hook.PanelUpdated(context.Background(), PanelEvent{PageCode: "console.page.ceis", Reason: "refresh"}); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	cancelCtx()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("ServeSSE did not stop on context cancellation")
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "data: ") || !strings.Contains(body, "console.page.ceis") {
		t.Fatalf("expected SSE data frame, got %q", body)
	}
}

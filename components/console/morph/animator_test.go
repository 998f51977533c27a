package morph

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestNewAnimatorValidatesCycle(t *testing.T) {
	if _, err := NewAnimator(Cycle{Texts: []string{"only"}, Morph: time.Second}, 0, nil); err == nil {
		t.Fatalf("expected invalid cycle rejection")
	}
	animator, err := NewAnimator(testCycle(), 0, nil)
	if err != nil {
		t.Fatalf("NewAnimator returned error: %v", err)
	}
	if animator.every != DefaultFrameInterval {
		t.Fatalf("expected default interval, got %v", animator.every)
	}
}

func TestAnimatorEmitsFramesUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	var frames atomic.Int64
	got := make(chan Frame, 1)
	animator, err := NewAnimator(testCycle(), 10*time.Millisecond, func(_ context.Context, frame Frame) {
		frames.Add(1)
		select {
		case got <- frame:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewAnimator returned error: %v", err)
	}

	animator.Start()
	select {
	case frame := <-got:
		if frame.Outgoing == "" || frame.Incoming == "" {
			t.Fatalf("expected populated frame, got %#v", frame)
		}
	case <-time.After(time.Second):
		t.Fatalf("no frame emitted within 1s")
	}

	animator.Stop()
	after := frames.Load()
	time.Sleep(50 * time.Millisecond)
	if frames.Load() != after {
		t.Fatalf("frame emitted after Stop returned")
	}
}

func TestAnimatorStopBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	animator, err := NewAnimator(testCycle(), time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewAnimator returned error: %v", err)
	}
	animator.Stop()
	animator.Stop()
}

func TestAnimatorStartIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	animator, err := NewAnimator(testCycle(), time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewAnimator returned error: %v", err)
	}
	animator.Start()
	animator.Start()
	animator.Stop()
}

package simulate

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestSimulatorRegisterValidation(t *testing.T) {
	sim := New(nil, nil)
	if err := sim.Register(Feed{Source: NewBandSource(0, 1, "")}); err == nil {
		t.Fatalf("expected error for unnamed feed")
	}
	if err := sim.Register(Feed{Name: "feed"}); err == nil {
		t.Fatalf("expected error for missing source")
	}
	if err := sim.Register(Feed{Name: "feed", Source: NewBandSource(0, 1, ""), Every: time.Millisecond}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if sim.feeds[0].Every != MinPeriod {
		t.Fatalf("expected period clamped to %v, got %v", MinPeriod, sim.feeds[0].Every)
	}
}

func TestSimulatorRejectsRegistrationAfterStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	sim := New(nil, nil)
	if err := sim.Register(Feed{Name: "feed", Source: NewBandSource(0, 1, "")}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	sim.Start()
	defer sim.Stop()

	if err := sim.Register(Feed{Name: "late", Source: NewBandSource(0, 1, "")}); err == nil {
		t.Fatalf("expected registration after start to fail")
	}
}

func TestSimulatorPublishesThenStopsCleanly(t *testing.T) {
	defer goleak.VerifyNone(t)

	var published atomic.Int64
	got := make(chan Snapshot, 1)
	sim := New(func(_ context.Context, snap Snapshot) {
		published.Add(1)
		select {
		case got <- snap:
		default:
		}
	}, nil)

	if err := sim.Register(Feed{
		Name:   "console.page.arpe",
		Source: NewBandSource(60, 80, "%"),
		Every:  MinPeriod,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	sim.Start()

	select {
	case snap := <-got:
		if snap.Feed != "console.page.arpe" {
			t.Fatalf("unexpected feed %q", snap.Feed)
		}
		if snap.Reading.Value < 60 || snap.Reading.Value >= 80 {
			t.Fatalf("reading %v escaped band", snap.Reading.Value)
		}
	case <-time.After(2 * MinPeriod):
		t.Fatalf("no snapshot published within %v", 2*MinPeriod)
	}

	sim.Stop()
	after := published.Load()
	time.Sleep(MinPeriod + 500*time.Millisecond)
	if published.Load() != after {
		t.Fatalf("snapshot published after Stop returned")
	}
}

func TestSimulatorStopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	sim := New(nil, nil)
	sim.Stop()
	sim.Stop()

	started := New(nil, nil)
	_ = started.Register(Feed{Name: "feed", Source: NewBandSource(0, 1, "")})
	started.Start()
	started.Start()
	started.Stop()
	started.Stop()
}

func TestSimulatorSkipsFailingSamples(t *testing.T) {
	defer goleak.VerifyNone(t)

	var published atomic.Int64
	sim := New(func(context.Context, Snapshot) {
		published.Add(1)
	}, nil)
	_ = sim.Register(Feed{
		Name: "broken",
		Source: SourceFunc(func(context.Context) (Reading, error) {
			return Reading{}, context.DeadlineExceeded
		}),
		Every: MinPeriod,
	})
	sim.Start()
	time.Sleep(MinPeriod + 500*time.Millisecond)
	sim.Stop()
	if published.Load() != 0 {
		t.Fatalf("expected failed samples to be dropped, got %d publishes", published.Load())
	}
}

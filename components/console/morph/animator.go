package morph

import (
	"context"
	"sync"
	"time"
)

// Emit receives computed frames.
type Emit func(ctx context.Context, frame Frame)

// Animator drives a Cycle from a ticker using wall-clock deltas. The loop is
// owned by the animator and cancelled by Stop through an explicit quit
// channel; once Stop returns, no further frames are emitted.
type Animator struct {
	cycle Cycle
	every time.Duration
	emit  Emit

	mu      sync.Mutex
	started bool
	quit    chan struct{}
	done    chan struct{}
}

// DefaultFrameInterval approximates a browser animation-frame cadence without
// saturating transports.
const DefaultFrameInterval = 100 * time.Millisecond

// NewAnimator builds an animator. A non-positive interval falls back to
// DefaultFrameInterval.
func NewAnimator(cycle Cycle, every time.Duration, emit Emit) (*Animator, error) {
	if err := cycle.Validate(); err != nil {
		return nil, err
	}
	if every <= 0 {
		every = DefaultFrameInterval
	}
	return &Animator{
		cycle: cycle,
		every: every,
		emit:  emit,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}, nil
}

// Start launches the frame loop. Subsequent calls are no-ops.
func (a *Animator) Start() {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	go a.run()
}

// Stop cancels the loop and waits for it to exit. Safe to call repeatedly
// and before Start.
func (a *Animator) Stop() {
	a.mu.Lock()
	select {
	case <-a.quit:
	default:
		close(a.quit)
	}
	started := a.started
	a.mu.Unlock()
	if started {
		<-a.done
	}
}

func (a *Animator) run() {
	defer close(a.done)
	epoch := time.Now()
	ticker := time.NewTicker(a.every)
	defer ticker.Stop()
	for {
		select {
		case <-a.quit:
			return
		case now := <-ticker.C:
			// Elapsed is measured from the epoch, not accumulated per tick,
			// so missed ticks cannot drift the animation.
			frame, err := a.cycle.At(now.Sub(epoch))
			if err != nil {
				return
			}
			if a.emit != nil {
				a.emit(context.Background(), frame)
			}
		}
	}
}

package console

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/strategicai/console/components/console/morph"
)

// HeadlineMorphProvider renders the rotating hero headline. The frame is a
// pure function of the time elapsed since the instance was first fetched, so
// every transport (HTML, JSON, SSE) sees a consistent animation state.
type HeadlineMorphProvider struct {
	mu     sync.Mutex
	epochs map[string]time.Time
	now    func() time.Time
}

// NewHeadlineMorphProvider builds the provider.
func NewHeadlineMorphProvider() *HeadlineMorphProvider {
	return &HeadlineMorphProvider{
		epochs: make(map[string]time.Time),
		now:    time.Now,
	}
}

// Fetch computes the current morph frame for the instance.
func (p *HeadlineMorphProvider) Fetch(_ context.Context, meta PanelContext) (PanelData, error) {
	cfg := meta.Instance.Configuration
	cycle := morph.Cycle{
		Texts:    stringSliceValue(cfg["texts"]),
		Morph:    durationSeconds(cfg["morph_seconds"], time.Second),
		Cooldown: durationSeconds(cfg["cooldown_seconds"], 500*time.Millisecond),
	}
	if err := cycle.Validate(); err != nil {
		return nil, fmt.Errorf("headline morph %s: %w", meta.Instance.ID, err)
	}

	p.mu.Lock()
	epoch, ok := p.epochs[meta.Instance.ID]
	if !ok {
		epoch = p.now()
		p.epochs[meta.Instance.ID] = epoch
	}
	now := p.now()
	p.mu.Unlock()

	frame, err := cycle.At(now.Sub(epoch))
	if err != nil {
		return nil, err
	}
	return PanelData{
		"texts":            cycle.Texts,
		"frame":            frame,
		"morph_seconds":    cycle.Morph.Seconds(),
		"cooldown_seconds": cycle.Cooldown.Seconds(),
	}, nil
}

func durationSeconds(v any, fallback time.Duration) time.Duration {
	seconds := float64Value(v)
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds * float64(time.Second))
}

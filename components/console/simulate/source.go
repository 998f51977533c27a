// Package simulate produces the demo telemetry behind console panels. Feeds
// are plain Sources behind one interface so a real upstream can replace the
// simulator without touching providers or transports.
package simulate

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Reading is a single sampled value.
type Reading struct {
	Value float64   `json:"value"`
	Unit  string    `json:"unit,omitempty"`
	Trend string    `json:"trend,omitempty"`
	At    time.Time `json:"at"`
}

// Source produces readings on demand. Implementations must be safe for
// concurrent use.
type Source interface {
	Sample(ctx context.Context) (Reading, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(ctx context.Context) (Reading, error)

// Sample satisfies the Source interface.
func (f SourceFunc) Sample(ctx context.Context) (Reading, error) {
	return f(ctx)
}

// BandSource re-randomizes uniformly within [Floor, Ceiling) on every sample,
// the "60 + rand*20" style of demo metric.
type BandSource struct {
	floor   float64
	ceiling float64
	unit    string

	mu  sync.Mutex
	rng *rand.Rand
}

// NewBandSource builds a band source. A ceiling at or below the floor
// collapses to a constant reading at the floor.
func NewBandSource(floor, ceiling float64, unit string) *BandSource {
	if ceiling < floor {
		ceiling = floor
	}
	return &BandSource{
		floor:   floor,
		ceiling: ceiling,
		unit:    unit,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample returns a fresh value inside the band.
func (s *BandSource) Sample(_ context.Context) (Reading, error) {
	s.mu.Lock()
	value := s.floor
	if s.ceiling > s.floor {
		value += s.rng.Float64() * (s.ceiling - s.floor)
	}
	s.mu.Unlock()
	return Reading{Value: value, Unit: s.unit, At: time.Now()}, nil
}

// WalkSource perturbs the previous value by a bounded random step and clamps
// the result, so successive readings stay coherent.
type WalkSource struct {
	min  float64
	max  float64
	step float64
	unit string

	mu    sync.Mutex
	value float64
	rng   *rand.Rand
}

// NewWalkSource builds a walk source starting at start.
func NewWalkSource(start, min, max, step float64, unit string) *WalkSource {
	if max < min {
		max = min
	}
	return &WalkSource{
		min:   min,
		max:   max,
		step:  step,
		unit:  unit,
		value: clamp(start, min, max),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Sample advances the walk one step and reports the direction taken.
func (s *WalkSource) Sample(_ context.Context) (Reading, error) {
	s.mu.Lock()
	previous := s.value
	delta := (s.rng.Float64()*2 - 1) * s.step
	s.value = clamp(s.value+delta, s.min, s.max)
	value := s.value
	s.mu.Unlock()

	trend := "flat"
	switch {
	case value > previous:
		trend = "up"
	case value < previous:
		trend = "down"
	}
	return Reading{Value: value, Unit: s.unit, Trend: trend, At: time.Now()}, nil
}

// Value returns the current walk position without advancing it.
func (s *WalkSource) Value() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

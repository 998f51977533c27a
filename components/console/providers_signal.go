package console

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/strategicai/console/components/console/simulate"
)

// BandMetricProvider renders a metric card whose value is re-randomized
// inside a configured band on every fetch, the stand-in for live telemetry
// the demo deployments use.
type BandMetricProvider struct {
	mu      sync.Mutex
	sources map[string]*simulate.BandSource
}

// NewBandMetricProvider builds the provider.
func NewBandMetricProvider() *BandMetricProvider {
	return &BandMetricProvider{sources: make(map[string]*simulate.BandSource)}
}

// Fetch samples the instance's band source.
func (p *BandMetricProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	cfg := meta.Instance.Configuration
	label := stringValue(cfg["label"], "Metric")
	unit := stringValue(cfg["unit"], "")
	floor := float64Value(cfg["floor"])
	ceiling := float64Value(cfg["ceiling"])
	if ceiling <= floor {
		return nil, fmt.Errorf("band metric %s: ceiling must exceed floor", meta.Instance.ID)
	}

	p.mu.Lock()
	src, ok := p.sources[meta.Instance.ID]
	if !ok {
		src = simulate.NewBandSource(floor, ceiling, unit)
		p.sources[meta.Instance.ID] = src
	}
	p.mu.Unlock()

	reading, err := src.Sample(ctx)
	if err != nil {
		return nil, err
	}
	return PanelData{
		"label":           label,
		"value":           reading.Value,
		"unit":            reading.Unit,
		"sampled_at":      reading.At,
		"refresh_seconds": refreshSeconds(cfg),
	}, nil
}

// WalkMetricProvider renders a metric card driven by a clamped random walk,
// keeping one walk per panel instance so successive fetches stay coherent.
type WalkMetricProvider struct {
	mu      sync.Mutex
	sources map[string]*simulate.WalkSource
}

// NewWalkMetricProvider builds the provider.
func NewWalkMetricProvider() *WalkMetricProvider {
	return &WalkMetricProvider{sources: make(map[string]*simulate.WalkSource)}
}

// Fetch advances the instance's walk one step.
func (p *WalkMetricProvider) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	cfg := meta.Instance.Configuration
	label := stringValue(cfg["label"], "Metric")
	unit := stringValue(cfg["unit"], "")
	min := float64Value(cfg["min"])
	max := float64Value(cfg["max"])
	if max <= min {
		return nil, fmt.Errorf("walk metric %s: max must exceed min", meta.Instance.ID)
	}
	start := float64Value(cfg["start"])
	if start == 0 {
		start = (min + max) / 2
	}
	step := float64Value(cfg["step"])
	if step <= 0 {
		step = (max - min) / 20
	}

	p.mu.Lock()
	src, ok := p.sources[meta.Instance.ID]
	if !ok {
		src = simulate.NewWalkSource(start, min, max, step, unit)
		p.sources[meta.Instance.ID] = src
	}
	p.mu.Unlock()

	reading, err := src.Sample(ctx)
	if err != nil {
		return nil, err
	}
	return PanelData{
		"label":           label,
		"value":           reading.Value,
		"unit":            reading.Unit,
		"trend":           reading.Trend,
		"sampled_at":      reading.At,
		"refresh_seconds": refreshSeconds(cfg),
	}, nil
}

var statusStates = []string{"operational", "operational", "operational", "degraded", "maintenance"}

// StatusGridProvider renders a component health grid. States skew heavily
// toward operational, matching the demo deployments.
type StatusGridProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStatusGridProvider builds the provider.
func NewStatusGridProvider() *StatusGridProvider {
	return &StatusGridProvider{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Fetch assigns a state to each configured component.
func (p *StatusGridProvider) Fetch(_ context.Context, meta PanelContext) (PanelData, error) {
	components := stringSliceValue(meta.Instance.Configuration["components"])
	if len(components) == 0 {
		return nil, fmt.Errorf("status grid %s: components are required", meta.Instance.ID)
	}
	checks := make([]map[string]any, 0, len(components))
	p.mu.Lock()
	for _, name := range components {
		checks = append(checks, map[string]any{
			"name":   name,
			"status": statusStates[p.rng.Intn(len(statusStates))],
		})
	}
	p.mu.Unlock()
	return PanelData{
		"checks":          checks,
		"refresh_seconds": refreshSeconds(meta.Instance.Configuration),
	}, nil
}

func refreshSeconds(cfg map[string]any) int {
	seconds := intValue(cfg["refresh_seconds"], 5)
	clamped := simulate.ClampPeriod(time.Duration(seconds) * time.Second)
	return int(clamped / time.Second)
}

package simulate

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Refresh period bounds. Feeds outside the band are clamped, never rejected.
const (
	MinPeriod = 2 * time.Second
	MaxPeriod = 12 * time.Second
)

// Feed couples a named source with its refresh period.
type Feed struct {
	Name   string
	Source Source
	Every  time.Duration
}

// Snapshot is one emitted sample from a feed.
type Snapshot struct {
	Feed    string  `json:"feed"`
	Reading Reading `json:"reading"`
}

// Publisher receives snapshots. Implementations must tolerate concurrent
// calls; the simulator runs one goroutine per feed.
type Publisher func(ctx context.Context, snap Snapshot)

// Simulator drives every registered feed from its own ticker. Each ticker is
// owned by exactly one loop and is torn down by Stop: once Stop returns, no
// further snapshots are published.
type Simulator struct {
	publish Publisher
	logger  *zap.Logger

	mu      sync.Mutex
	feeds   []Feed
	started bool
	quit    chan struct{}
	wg      sync.WaitGroup
}

// New builds an idle simulator. A nil logger is replaced with zap.NewNop.
func New(publish Publisher, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		publish: publish,
		logger:  logger,
		quit:    make(chan struct{}),
	}
}

// Register adds a feed. Registration after Start is rejected so every loop
// has a single owner for its full lifetime.
func (s *Simulator) Register(feed Feed) error {
	if feed.Name == "" {
		return errors.New("simulate: feed name is required")
	}
	if feed.Source == nil {
		return errors.New("simulate: feed source is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("simulate: cannot register feeds after start")
	}
	feed.Every = ClampPeriod(feed.Every)
	s.feeds = append(s.feeds, feed)
	return nil
}

// Start launches one sampling loop per registered feed.
func (s *Simulator) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	feeds := append([]Feed(nil), s.feeds...)
	s.mu.Unlock()

	for _, feed := range feeds {
		s.wg.Add(1)
		go s.run(feed)
	}
	s.logger.Info("simulator started", zap.Int("feeds", len(feeds)))
}

// Stop halts every loop and waits for them to exit. Safe to call more than
// once; after the first return no snapshot is published again.
func (s *Simulator) Stop() {
	s.mu.Lock()
	select {
	case <-s.quit:
	default:
		close(s.quit)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Simulator) run(feed Feed) {
	defer s.wg.Done()
	ticker := time.NewTicker(feed.Every)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.sample(feed)
		}
	}
}

func (s *Simulator) sample(feed Feed) {
	ctx, cancel := context.WithTimeout(context.Background(), feed.Every)
	defer cancel()
	reading, err := feed.Source.Sample(ctx)
	if err != nil {
		s.logger.Warn("feed sample failed", zap.String("feed", feed.Name), zap.Error(err))
		return
	}
	if s.publish != nil {
		s.publish(ctx, Snapshot{Feed: feed.Name, Reading: reading})
	}
}

// ClampPeriod forces a refresh period into the supported band.
func ClampPeriod(d time.Duration) time.Duration {
	if d < MinPeriod {
		return MinPeriod
	}
	if d > MaxPeriod {
		return MaxPeriod
	}
	return d
}

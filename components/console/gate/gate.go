// Package gate implements the landing-page gate: dashboards stay blocked for
// a visitor until the landing page has been seen. The check is a soft client
// gate persisted server-side; storage failures read as "not seen" so the
// gate fails closed.
package gate

import (
	"context"
	"errors"
	"sync"
)

// VisitorStore persists the landing-seen flag per visitor.
type VisitorStore interface {
	LandingSeen(ctx context.Context, visitorID string) (bool, error)
	SetLandingSeen(ctx context.Context, visitorID string) error
}

// Telemetry mirrors the console telemetry seam so gate decisions are
// observable without a logger dependency.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// Gate answers whether a visitor may enter the dashboards.
type Gate struct {
	store     VisitorStore
	telemetry Telemetry
}

var errMissingVisitor = errors.New("gate: visitor id is required")

// New builds a gate. A nil store blocks everyone (fail closed).
func New(store VisitorStore, telemetry Telemetry) *Gate {
	return &Gate{store: store, telemetry: telemetry}
}

// Allow reports whether the visitor has seen the landing page. Exactly one
// store read is performed per call; any store error blocks.
func (g *Gate) Allow(ctx context.Context, visitorID string) bool {
	if g == nil || g.store == nil || visitorID == "" {
		return false
	}
	seen, err := g.store.LandingSeen(ctx, visitorID)
	if err != nil {
		g.record(ctx, "gate.check_error", map[string]any{"error": err.Error()})
		return false
	}
	g.record(ctx, "gate.check", map[string]any{"visitor": visitorID, "allowed": seen})
	return seen
}

// MarkSeen records that the visitor has completed the landing page.
func (g *Gate) MarkSeen(ctx context.Context, visitorID string) error {
	if g == nil || g.store == nil {
		return errors.New("gate: visitor store not configured")
	}
	if visitorID == "" {
		return errMissingVisitor
	}
	if err := g.store.SetLandingSeen(ctx, visitorID); err != nil {
		return err
	}
	g.record(ctx, "gate.mark_seen", map[string]any{"visitor": visitorID})
	return nil
}

func (g *Gate) record(ctx context.Context, event string, payload map[string]any) {
	if g.telemetry != nil {
		g.telemetry.Record(ctx, event, payload)
	}
}

// MemoryVisitorStore is a concurrency-safe in-memory VisitorStore for demos
// and tests.
type MemoryVisitorStore struct {
	mu   sync.RWMutex
	seen map[string]bool
}

// NewMemoryVisitorStore creates an empty store.
func NewMemoryVisitorStore() *MemoryVisitorStore {
	return &MemoryVisitorStore{seen: make(map[string]bool)}
}

// LandingSeen reports the stored flag; unknown visitors read false.
func (s *MemoryVisitorStore) LandingSeen(_ context.Context, visitorID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seen[visitorID], nil
}

// SetLandingSeen marks the visitor.
func (s *MemoryVisitorStore) SetLandingSeen(_ context.Context, visitorID string) error {
	if visitorID == "" {
		return errMissingVisitor
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[visitorID] = true
	return nil
}

package console

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]LayoutOverrides
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]LayoutOverrides),
	}
}

// LayoutOverrides returns stored overrides or safe defaults. An anonymous
// viewer always reads the expanded-sidebar default instead of an error.
func (s *InMemoryPreferenceStore) LayoutOverrides(_ context.Context, viewer ViewerContext) (LayoutOverrides, error) {
	if viewer.UserID == "" {
		return defaultOverrides(viewer), nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if overrides, ok := s.data[s.key(viewer)]; ok {
		s.normalize(&overrides)
		if overrides.Locale == "" {
			overrides.Locale = viewer.Locale
		}
		return overrides, nil
	}
	return defaultOverrides(viewer), nil
}

// SaveLayoutOverrides persists overrides for a viewer.
func (s *InMemoryPreferenceStore) SaveLayoutOverrides(_ context.Context, viewer ViewerContext, overrides LayoutOverrides) error {
	if viewer.UserID == "" {
		return fmt.Errorf("preference store requires viewer user id")
	}
	if overrides.Locale == "" {
		overrides.Locale = viewer.Locale
	}
	s.normalize(&overrides)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(viewer)] = overrides
	return nil
}

func (s *InMemoryPreferenceStore) key(viewer ViewerContext) string {
	if viewer.Locale == "" {
		return viewer.UserID
	}
	return viewer.UserID + "::" + viewer.Locale
}

func (s *InMemoryPreferenceStore) normalize(overrides *LayoutOverrides) {
	if overrides.PageOrder == nil {
		overrides.PageOrder = map[string][]string{}
	}
	if overrides.HiddenPanels == nil {
		overrides.HiddenPanels = map[string]bool{}
	}
}

func defaultOverrides(viewer ViewerContext) LayoutOverrides {
	return LayoutOverrides{
		Locale:           viewer.Locale,
		PageOrder:        map[string][]string{},
		HiddenPanels:     map[string]bool{},
		SidebarCollapsed: false,
	}
}

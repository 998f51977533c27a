package console

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryPanelStore is an in-memory PanelStore for demos and tests.
type MemoryPanelStore struct {
	mu          sync.RWMutex
	pages       map[string]PageDefinition
	definitions map[string]PanelDefinition
	instances   map[string]PanelInstance
	assignments map[string][]string
}

// NewMemoryPanelStore creates an empty store.
func NewMemoryPanelStore() *MemoryPanelStore {
	return &MemoryPanelStore{
		pages:       map[string]PageDefinition{},
		definitions: map[string]PanelDefinition{},
		instances:   map[string]PanelInstance{},
		assignments: map[string][]string{},
	}
}

// EnsurePage registers the page if it does not exist yet.
func (s *MemoryPanelStore) EnsurePage(_ context.Context, def PageDefinition) (bool, error) {
	if def.Code == "" {
		return false, fmt.Errorf("console: page code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[def.Code]; ok {
		return false, nil
	}
	s.pages[def.Code] = def
	return true, nil
}

// EnsureDefinition registers the definition if it does not exist yet.
func (s *MemoryPanelStore) EnsureDefinition(_ context.Context, def PanelDefinition) (bool, error) {
	if def.Code == "" {
		return false, fmt.Errorf("console: definition code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.definitions[def.Code]; ok {
		return false, nil
	}
	s.definitions[def.Code] = def
	return true, nil
}

// CreateInstance stores a new panel instance.
func (s *MemoryPanelStore) CreateInstance(_ context.Context, input CreatePanelInstanceInput) (PanelInstance, error) {
	if input.DefinitionID == "" {
		return PanelInstance{}, fmt.Errorf("console: definition id is required")
	}
	instance := PanelInstance{
		ID:            uuid.NewString(),
		DefinitionID:  input.DefinitionID,
		Configuration: input.Configuration,
		Metadata:      input.Metadata,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[instance.ID] = instance
	return instance, nil
}

// DeleteInstance removes the instance and any page assignment.
func (s *MemoryPanelStore) DeleteInstance(_ context.Context, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[instanceID]; !ok {
		return fmt.Errorf("console: instance %s not found", instanceID)
	}
	delete(s.instances, instanceID)
	for page, ids := range s.assignments {
		filtered := ids[:0]
		for _, id := range ids {
			if id != instanceID {
				filtered = append(filtered, id)
			}
		}
		s.assignments[page] = filtered
	}
	return nil
}

// AssignInstance appends (or inserts) the instance on the given page.
func (s *MemoryPanelStore) AssignInstance(_ context.Context, input AssignPanelInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.instances[input.InstanceID]; !ok {
		return fmt.Errorf("console: instance %s not found", input.InstanceID)
	}
	ids := s.assignments[input.PageCode]
	if input.Position != nil && *input.Position >= 0 && *input.Position < len(ids) {
		pos := *input.Position
		ids = append(ids[:pos], append([]string{input.InstanceID}, ids[pos:]...)...)
	} else {
		ids = append(ids, input.InstanceID)
	}
	s.assignments[input.PageCode] = ids
	return nil
}

// ReorderPage replaces the ordering for a page.
func (s *MemoryPanelStore) ReorderPage(_ context.Context, input ReorderPageInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[input.PageCode] = append([]string(nil), input.PanelIDs...)
	return nil
}

// ResolvePage returns the assigned panel instances in order.
func (s *MemoryPanelStore) ResolvePage(_ context.Context, input ResolvePageInput) (ResolvedPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.assignments[input.PageCode]
	panels := make([]PanelInstance, 0, len(ids))
	for _, id := range ids {
		if instance, ok := s.instances[id]; ok {
			instance.PageCode = input.PageCode
			panels = append(panels, instance)
		}
	}
	return ResolvedPage{PageCode: input.PageCode, Panels: panels}, nil
}

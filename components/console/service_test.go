package console

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfigureLayoutFiltersByAuthorizer(t *testing.T) {
	store := &fakePanelStore{
		resolved: map[string][]PanelInstance{
			"console.page.arpe": {
				{ID: "p1", DefinitionID: "console.panel.metric_band"},
				{ID: "p2", DefinitionID: "console.panel.metric_band"},
			},
		},
	}
	auth := allowListAuthorizer{allowed: map[string]bool{"p2": true}}
	service := NewService(Options{
		PanelStore:      store,
		Authorizer:      auth,
		PreferenceStore: NewInMemoryPreferenceStore(),
		Pages:           []string{"console.page.arpe"},
	})
	layout, err := service.ConfigureLayout(context.Background(), ViewerContext{UserID: "user-1"})
	if err != nil {
		t.Fatalf("ConfigureLayout returned error: %v", err)
	}
	if len(layout.Pages["console.page.arpe"]) != 1 || layout.Pages["console.page.arpe"][0].ID != "p2" {
		t.Fatalf("expected filtered panel, got %#v", layout.Pages["console.page.arpe"])
	}
}

func TestConfigureLayoutAppliesHiddenOverrides(t *testing.T) {
	store := &fakePanelStore{
		resolved: map[string][]PanelInstance{
			"console.page.ceis": {
				{ID: "p1", DefinitionID: "console.panel.metric_walk"},
				{ID: "p2", DefinitionID: "console.panel.metric_walk"},
			},
		},
	}
	prefs := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "user-3"}
	_ = prefs.SaveLayoutOverrides(context.Background(), viewer, LayoutOverrides{
		PageOrder:    map[string][]string{"console.page.ceis": {"p1", "p2"}},
		HiddenPanels: map[string]bool{"p2": true},
	})
	service := NewService(Options{
		PanelStore:      store,
		PreferenceStore: prefs,
		Pages:           []string{"console.page.ceis"},
	})
	layout, err := service.ConfigureLayout(context.Background(), viewer)
	if err != nil {
		t.Fatalf("ConfigureLayout returned error: %v", err)
	}
	panels := layout.Pages["console.page.ceis"]
	if len(panels) != 1 || panels[0].ID != "p1" {
		t.Fatalf("expected hidden panel filtered, got %#v", panels)
	}
}

func TestConfigureLayoutAppliesPreferenceOrder(t *testing.T) {
	store := &fakePanelStore{
		resolved: map[string][]PanelInstance{
			"console.page.drad": {
				{ID: "p1", DefinitionID: "console.panel.alert_feed"},
				{ID: "p2", DefinitionID: "console.panel.metric_band"},
			},
		},
	}
	prefs := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "user-2"}
	_ = prefs.SaveLayoutOverrides(context.Background(), viewer, LayoutOverrides{
		PageOrder: map[string][]string{"console.page.drad": {"p2", "p1"}},
	})
	service := NewService(Options{
		PanelStore:      store,
		PreferenceStore: prefs,
		Pages:           []string{"console.page.drad"},
	})
	layout, err := service.ConfigureLayout(context.Background(), viewer)
	if err != nil {
		t.Fatalf("ConfigureLayout returned error: %v", err)
	}
	order := layout.Pages["console.page.drad"]
	if len(order) != 2 || order[0].ID != "p2" {
		t.Fatalf("expected preference order applied, got %#v", order)
	}
}

func TestAddPanelEmitsRefreshHook(t *testing.T) {
	store := &fakePanelStore{
		createInstanceFn: func(input CreatePanelInstanceInput) (PanelInstance, error) {
			return PanelInstance{ID: "instance-1", DefinitionID: input.DefinitionID}, nil
		},
	}
	hook := &collectingHook{}
	service := NewService(Options{
		PanelStore:      store,
		PreferenceStore: NewInMemoryPreferenceStore(),
		RefreshHook:     hook,
	})
	req := AddPanelRequest{
		DefinitionID: "console.panel.metric_band",
		PageCode:     "console.page.arpe",
		Configuration: map[string]any{
			"label":   "Prediction Accuracy",
			"floor":   60,
			"ceiling": 80,
		},
		Roles: []string{"analyst"},
		StartAt: func() *time.Time {
			now := time.Now().UTC()
			return &now
		}(),
	}
	if err := service.AddPanel(context.Background(), req); err != nil {
		t.Fatalf("AddPanel returned error: %v", err)
	}
	if hook.events != 1 {
		t.Fatalf("expected hook to be invoked, got %d", hook.events)
	}
	if store.assignCalls != 1 {
		t.Fatalf("expected assign call, got %d", store.assignCalls)
	}
}

func TestAddPanelRequiresPageAndDefinition(t *testing.T) {
	service := NewService(Options{PanelStore: &fakePanelStore{}})
	if err := service.AddPanel(context.Background(), AddPanelRequest{DefinitionID: "x"}); err == nil {
		t.Fatalf("expected error for missing page code")
	}
	if err := service.AddPanel(context.Background(), AddPanelRequest{PageCode: "console.page.arpe"}); err == nil {
		t.Fatalf("expected error for missing definition id")
	}
}

func TestSidebarCollapsedDefaultsFalse(t *testing.T) {
	service := NewService(Options{PanelStore: &fakePanelStore{}})
	if service.SidebarCollapsed(context.Background(), ViewerContext{}) {
		t.Fatalf("expected expanded sidebar for anonymous viewer")
	}

	var nilService *Service
	if nilService.SidebarCollapsed(context.Background(), ViewerContext{}) {
		t.Fatalf("expected nil service to report expanded sidebar")
	}
}

func TestSidebarCollapsedSurvivesStoreError(t *testing.T) {
	service := NewService(Options{
		PanelStore:      &fakePanelStore{},
		PreferenceStore: failingPreferenceStore{},
	})
	if service.SidebarCollapsed(context.Background(), ViewerContext{UserID: "user-1"}) {
		t.Fatalf("expected store error to read as expanded")
	}
}

func TestToggleSidebarFlipsExactlyOnce(t *testing.T) {
	prefs := NewInMemoryPreferenceStore()
	service := NewService(Options{
		PanelStore:      &fakePanelStore{},
		PreferenceStore: prefs,
	})
	viewer := ViewerContext{UserID: "user-9"}

	collapsed, err := service.ToggleSidebar(context.Background(), viewer)
	if err != nil {
		t.Fatalf("ToggleSidebar returned error: %v", err)
	}
	if !collapsed {
		t.Fatalf("expected first toggle to collapse")
	}
	if !service.SidebarCollapsed(context.Background(), viewer) {
		t.Fatalf("expected collapsed state persisted")
	}

	collapsed, err = service.ToggleSidebar(context.Background(), viewer)
	if err != nil {
		t.Fatalf("ToggleSidebar returned error: %v", err)
	}
	if collapsed {
		t.Fatalf("expected second toggle to expand")
	}
}

func TestToggleSidebarRequiresUser(t *testing.T) {
	service := NewService(Options{PanelStore: &fakePanelStore{}})
	if _, err := service.ToggleSidebar(context.Background(), ViewerContext{}); err == nil {
		t.Fatalf("expected error for anonymous toggle")
	}
}

func TestAttachProviderDataSetsMetadata(t *testing.T) {
	store := &fakePanelStore{
		resolved: map[string][]PanelInstance{
			"console.page.qeso": {
				{ID: "p1", DefinitionID: "demo.panel.static"},
			},
		},
	}
	registry := NewRegistry()
	_ = registry.RegisterDefinition(PanelDefinition{Code: "demo.panel.static", Name: "Static"})
	_ = registry.RegisterProvider("demo.panel.static", ProviderFunc(func(context.Context, PanelContext) (PanelData, error) {
		return PanelData{"value": 42}, nil
	}))
	service := NewService(Options{
		PanelStore: store,
		Providers:  registry,
		Pages:      []string{"console.page.qeso"},
	})
	layout, err := service.ConfigureLayout(context.Background(), ViewerContext{UserID: "user-1"})
	if err != nil {
		t.Fatalf("ConfigureLayout returned error: %v", err)
	}
	panels := layout.Pages["console.page.qeso"]
	if len(panels) != 1 {
		t.Fatalf("expected 1 panel, got %d", len(panels))
	}
	data, ok := panels[0].Metadata["data"].(PanelData)
	if !ok || data["value"] != 42 {
		t.Fatalf("expected provider data attached, got %#v", panels[0].Metadata)
	}
}

type fakePanelStore struct {
	resolved         map[string][]PanelInstance
	createInstanceFn func(CreatePanelInstanceInput) (PanelInstance, error)
	assignCalls      int
	reorderCalls     int
	deleteCalls      int
}

func (f *fakePanelStore) EnsurePage(context.Context, PageDefinition) (bool, error) {
	return true, nil
}

func (f *fakePanelStore) EnsureDefinition(context.Context, PanelDefinition) (bool, error) {
	return true, nil
}

func (f *fakePanelStore) CreateInstance(_ context.Context, input CreatePanelInstanceInput) (PanelInstance, error) {
	if f.createInstanceFn != nil {
		return f.createInstanceFn(input)
	}
	return PanelInstance{ID: input.DefinitionID + "-instance", DefinitionID: input.DefinitionID}, nil
}

func (f *fakePanelStore) DeleteInstance(context.Context, string) error {
	f.deleteCalls++
	return nil
}

func (f *fakePanelStore) AssignInstance(context.Context, AssignPanelInput) error {
	f.assignCalls++
	return nil
}

func (f *fakePanelStore) ReorderPage(context.Context, ReorderPageInput) error {
	f.reorderCalls++
	return nil
}

func (f *fakePanelStore) ResolvePage(_ context.Context, input ResolvePageInput) (ResolvedPage, error) {
	return ResolvedPage{PageCode: input.PageCode, Panels: f.resolved[input.PageCode]}, nil
}

type allowListAuthorizer struct {
	allowed map[string]bool
}

func (a allowListAuthorizer) CanViewPanel(_ context.Context, _ ViewerContext, instance PanelInstance) bool {
	return a.allowed[instance.ID]
}

type collectingHook struct {
	events int
	last   PanelEvent
}

func (h *collectingHook) PanelUpdated(_ context.Context, event PanelEvent) error {
	h.events++
	h.last = event
	return nil
}

type failingPreferenceStore struct{}

func (failingPreferenceStore) LayoutOverrides(context.Context, ViewerContext) (LayoutOverrides, error) {
	return LayoutOverrides{}, errors.New("boom")
}

func (failingPreferenceStore) SaveLayoutOverrides(context.Context, ViewerContext, LayoutOverrides) error {
	return errors.New("boom")
}

package console

import (
	"context"
	"time"
)

// PanelStore encapsulates persistence for pages, panel definitions, and panel
// instances. Implementations ensure thread safety and idempotency.
type PanelStore interface {
	EnsurePage(ctx context.Context, def PageDefinition) (bool, error)
	EnsureDefinition(ctx context.Context, def PanelDefinition) (bool, error)
	CreateInstance(ctx context.Context, input CreatePanelInstanceInput) (PanelInstance, error)
	DeleteInstance(ctx context.Context, instanceID string) error
	AssignInstance(ctx context.Context, input AssignPanelInput) error
	ReorderPage(ctx context.Context, input ReorderPageInput) error
	ResolvePage(ctx context.Context, input ResolvePageInput) (ResolvedPage, error)
}

// Authorizer determines if a viewer can see a panel instance.
type Authorizer interface {
	CanViewPanel(ctx context.Context, viewer ViewerContext, instance PanelInstance) bool
}

// PreferenceStore returns layout overrides per viewer.
type PreferenceStore interface {
	LayoutOverrides(ctx context.Context, viewer ViewerContext) (LayoutOverrides, error)
	SaveLayoutOverrides(ctx context.Context, viewer ViewerContext, overrides LayoutOverrides) error
}

// ProviderRegistry stores panel definitions/providers discoverable via hooks
// or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def PanelDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (PanelDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []PanelDefinition
}

// RefreshHook notifies transports (REST/WebSocket/SSE) about panel changes.
type RefreshHook interface {
	PanelUpdated(ctx context.Context, event PanelEvent) error
}

// PageDefinition models a console page, e.g. the SNSE or Compliance dashboard.
type PageDefinition struct {
	Code        string
	Name        string
	Description string
}

// PanelDefinition describes a panel schema known to the console.
type PanelDefinition struct {
	Code                 string
	Name                 string
	NameLocalized        map[string]string
	Description          string
	DescriptionLocalized map[string]string
	Schema               map[string]any
	Category             string
}

// PanelInstance is a configured panel assigned to a page.
type PanelInstance struct {
	ID            string
	DefinitionID  string
	PageCode      string
	Configuration map[string]any
	Metadata      map[string]any
}

// CreatePanelInstanceInput configures new instances.
type CreatePanelInstanceInput struct {
	DefinitionID  string
	Configuration map[string]any
	Visibility    PanelVisibility
	Metadata      map[string]any
}

// PanelVisibility defines runtime visibility constraints.
type PanelVisibility struct {
	Roles    []string
	StartAt  *time.Time
	EndAt    *time.Time
	Audience []string
}

// AssignPanelInput associates a panel instance with a page.
type AssignPanelInput struct {
	PageCode   string
	InstanceID string
	Position   *int
}

// ReorderPageInput represents a new ordering for panels within a page.
type ReorderPageInput struct {
	PageCode string
	PanelIDs []string
}

// ResolvePageInput requests panel instances for a given page and audience.
type ResolvePageInput struct {
	PageCode string
	Audience []string
	Locale   string
}

// ResolvedPage is a container for panels returned by the store.
type ResolvedPage struct {
	PageCode string
	Panels   []PanelInstance
}

// LayoutOverrides captures per-viewer adjustments. SidebarCollapsed is the
// single cross-page piece of shell state; everything else is per page.
type LayoutOverrides struct {
	Locale           string
	PageOrder        map[string][]string
	HiddenPanels     map[string]bool
	SidebarCollapsed bool
}

// ViewerContext captures the active user/locale information needed to render
// console pages.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// Layout describes the resolved panel instances per console page.
type Layout struct {
	Pages map[string][]PanelInstance
}

// PanelEvent describes changes that transports might care about.
type PanelEvent struct {
	PageCode string
	Instance PanelInstance
	Reason   string
	Payload  map[string]any
}

package console

import (
	"context"
	"errors"
	"time"
)

var (
	errMissingPanelStore = errors.New("console: panel store not configured")
	errInvalidPage       = errors.New("console: page code is required")
	errInvalidDefinition = errors.New("console: definition id is required")
)

// Options configures the console Service. Every collaborator is provided via
// interface so applications can swap implementations without importing
// internal console packages.
type Options struct {
	PanelStore      PanelStore
	Authorizer      Authorizer
	PreferenceStore PreferenceStore
	Providers       ProviderRegistry
	ConfigValidator ConfigValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Translator      TranslationService
	Pages           []string
}

// Service orchestrates console panels across pages.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Authorizer == nil {
		opts.Authorizer = allowAllAuthorizer{}
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.ConfigValidator == nil {
		opts.ConfigValidator = NewJSONSchemaValidator()
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	return &Service{opts: opts}
}

// AddPanelRequest captures the data required to create panel assignments.
type AddPanelRequest struct {
	DefinitionID  string
	PageCode      string
	Configuration map[string]any
	Position      *int
	Roles         []string
	StartAt       *time.Time
	EndAt         *time.Time
	UserID        string
}

// AddPanel creates a panel instance and assigns it to a page.
func (s *Service) AddPanel(ctx context.Context, req AddPanelRequest) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if req.PageCode == "" {
		return errInvalidPage
	}
	if req.DefinitionID == "" {
		return errInvalidDefinition
	}
	if err := s.validateConfiguration(req.DefinitionID, req.Configuration); err != nil {
		return err
	}
	instance, err := store.CreateInstance(ctx, CreatePanelInstanceInput{
		DefinitionID:  req.DefinitionID,
		Configuration: req.Configuration,
		Visibility: PanelVisibility{
			Roles:   req.Roles,
			StartAt: req.StartAt,
			EndAt:   req.EndAt,
		},
		Metadata: map[string]any{
			"user_id": req.UserID,
		},
	})
	if err != nil {
		return err
	}
	if err := store.AssignInstance(ctx, AssignPanelInput{
		PageCode:   req.PageCode,
		InstanceID: instance.ID,
		Position:   req.Position,
	}); err != nil {
		return err
	}
	event := PanelEvent{
		PageCode: req.PageCode,
		Instance: instance,
		Reason:   "add",
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.add", map[string]any{
		"page_code":     req.PageCode,
		"definition_id": req.DefinitionID,
	})
	return nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

// RemovePanel deletes the panel instance.
func (s *Service) RemovePanel(ctx context.Context, panelID string) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if panelID == "" {
		return errors.New("console: panel id is required")
	}
	if err := store.DeleteInstance(ctx, panelID); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		Instance: PanelInstance{ID: panelID},
		Reason:   "delete",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.remove", map[string]any{"panel_id": panelID})
	return nil
}

// ReorderPanels changes panel ordering within a page.
func (s *Service) ReorderPanels(ctx context.Context, pageCode string, panelIDs []string) error {
	store, err := s.panelStore()
	if err != nil {
		return err
	}
	if pageCode == "" {
		return errInvalidPage
	}
	if err := store.ReorderPage(ctx, ReorderPageInput{
		PageCode: pageCode,
		PanelIDs: panelIDs,
	}); err != nil {
		return err
	}
	if err := s.opts.RefreshHook.PanelUpdated(ctx, PanelEvent{
		PageCode: pageCode,
		Reason:   "reorder",
	}); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.reorder", map[string]any{
		"page_code": pageCode,
		"count":     len(panelIDs),
	})
	return nil
}

// ConfigureLayout resolves panels for each console page respecting
// preferences + auth.
func (s *Service) ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error) {
	store, err := s.panelStore()
	if err != nil {
		return Layout{}, err
	}
	overrides, err := s.opts.PreferenceStore.LayoutOverrides(ctx, viewer)
	if err != nil {
		return Layout{}, err
	}
	layout := Layout{Pages: make(map[string][]PanelInstance)}
	for _, page := range s.pageList() {
		resolved, err := store.ResolvePage(ctx, ResolvePageInput{
			PageCode: page,
			Audience: viewer.Roles,
			Locale:   viewer.Locale,
		})
		if err != nil {
			return Layout{}, err
		}
		for i := range resolved.Panels {
			resolved.Panels[i].PageCode = page
		}
		filtered := s.filterAuthorized(ctx, viewer, resolved.Panels)
		ordered := applyOrderOverride(filtered, overrides.PageOrder[page])
		layout.Pages[page] = applyHiddenFilter(ordered, overrides.HiddenPanels)
	}
	s.recordTelemetry(ctx, "console.layout.resolve", map[string]any{
		"viewer": viewer.UserID,
	})
	return layout, nil
}

// ResolvePage retrieves a single page layout for the viewer.
func (s *Service) ResolvePage(ctx context.Context, viewer ViewerContext, pageCode string) (ResolvedPage, error) {
	store, err := s.panelStore()
	if err != nil {
		return ResolvedPage{}, err
	}
	resolved, err := store.ResolvePage(ctx, ResolvePageInput{
		PageCode: pageCode,
		Audience: viewer.Roles,
		Locale:   viewer.Locale,
	})
	if err != nil {
		return ResolvedPage{}, err
	}
	resolved.Panels = s.filterAuthorized(ctx, viewer, resolved.Panels)
	s.recordTelemetry(ctx, "console.page.resolve", map[string]any{
		"viewer":    viewer.UserID,
		"page_code": pageCode,
	})
	return resolved, nil
}

// SidebarCollapsed reports the viewer's sidebar preference. A nil or empty
// preference store yields the safe default (expanded) rather than an error.
func (s *Service) SidebarCollapsed(ctx context.Context, viewer ViewerContext) bool {
	if s == nil || s.opts.PreferenceStore == nil {
		return false
	}
	overrides, err := s.opts.PreferenceStore.LayoutOverrides(ctx, viewer)
	if err != nil {
		s.recordTelemetry(ctx, "console.sidebar.read_error", map[string]any{"error": err.Error()})
		return false
	}
	return overrides.SidebarCollapsed
}

// ToggleSidebar flips the viewer's sidebar preference exactly once and
// returns the new state.
func (s *Service) ToggleSidebar(ctx context.Context, viewer ViewerContext) (bool, error) {
	if viewer.UserID == "" {
		return false, errors.New("console: viewer context missing user id")
	}
	overrides, err := s.opts.PreferenceStore.LayoutOverrides(ctx, viewer)
	if err != nil {
		return false, err
	}
	overrides.SidebarCollapsed = !overrides.SidebarCollapsed
	s.normalizeOverrides(&overrides)
	if err := s.opts.PreferenceStore.SaveLayoutOverrides(ctx, viewer, overrides); err != nil {
		return false, err
	}
	s.recordTelemetry(ctx, "console.sidebar.toggle", map[string]any{
		"user_id":   viewer.UserID,
		"collapsed": overrides.SidebarCollapsed,
	})
	return overrides.SidebarCollapsed, nil
}

func (s *Service) panelStore() (PanelStore, error) {
	if s.opts.PanelStore == nil {
		return nil, errMissingPanelStore
	}
	return s.opts.PanelStore, nil
}

func (s *Service) validateConfiguration(definitionID string, config map[string]any) error {
	if s.opts.ConfigValidator == nil || s.opts.Providers == nil {
		return nil
	}
	def, ok := s.opts.Providers.Definition(definitionID)
	if !ok {
		return nil
	}
	return s.opts.ConfigValidator.Validate(def, config)
}

func (s *Service) pageList() []string {
	if len(s.opts.Pages) > 0 {
		return s.opts.Pages
	}
	return DefaultPageCodes()
}

func (s *Service) filterAuthorized(ctx context.Context, viewer ViewerContext, panels []PanelInstance) []PanelInstance {
	if len(panels) == 0 {
		return panels
	}
	var filtered []PanelInstance
	for _, p := range panels {
		if s.opts.Authorizer.CanViewPanel(ctx, viewer, p) {
			filtered = append(filtered, p)
		}
	}
	return s.attachProviderData(ctx, viewer, filtered)
}

func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, panels []PanelInstance) []PanelInstance {
	if len(panels) == 0 || s.opts.Providers == nil {
		return panels
	}
	enriched := make([]PanelInstance, len(panels))
	copy(enriched, panels)
	for i, inst := range enriched {
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			continue
		}
		data, err := provider.Fetch(ctx, PanelContext{
			Instance:   inst,
			Viewer:     viewer,
			Translator: s.opts.Translator,
		})
		if err != nil {
			s.recordTelemetry(ctx, "console.panel.provider_error", map[string]any{
				"definition_id": inst.DefinitionID,
				"error":         err.Error(),
			})
			continue
		}
		if enriched[i].Metadata == nil {
			enriched[i].Metadata = map[string]any{}
		}
		enriched[i].Metadata["data"] = data
	}
	return enriched
}

// NotifyPanelUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyPanelUpdated(ctx context.Context, event PanelEvent) error {
	if err := s.opts.RefreshHook.PanelUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "console.panel.event", map[string]any{
		"page_code": event.PageCode,
		"panel_id":  event.Instance.ID,
		"reason":    event.Reason,
	})
	return nil
}

// SavePreferences persists per-viewer layout overrides.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, overrides LayoutOverrides) error {
	if viewer.UserID == "" {
		return errors.New("console: viewer context missing user id")
	}
	s.normalizeOverrides(&overrides)
	return s.opts.PreferenceStore.SaveLayoutOverrides(ctx, viewer, overrides)
}

func (s *Service) normalizeOverrides(overrides *LayoutOverrides) {
	if overrides.PageOrder == nil {
		overrides.PageOrder = map[string][]string{}
	}
	if overrides.HiddenPanels == nil {
		overrides.HiddenPanels = map[string]bool{}
	}
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) CanViewPanel(context.Context, ViewerContext, PanelInstance) bool {
	return true
}

type noopRefreshHook struct{}

func (noopRefreshHook) PanelUpdated(context.Context, PanelEvent) error {
	return nil
}

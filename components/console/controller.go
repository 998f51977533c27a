package console

import (
	"context"
	"fmt"
	"io"
)

const (
	shellTemplate   = "console"
	landingTemplate = "landing"
)

// Controller assembles view models for the HTML transport and renders them
// through the configured Renderer. JSON transports reuse the same payloads.
type Controller struct {
	service       *Service
	renderer      Renderer
	providers     ProviderRegistry
	pages         []PageDefinition
	theme         ThemeProvider
	themeSelector ThemeSelectorFunc
	title         string
}

// ControllerOption customizes controller construction.
type ControllerOption func(*Controller)

// WithRenderer injects the template renderer.
func WithRenderer(renderer Renderer) ControllerOption {
	return func(c *Controller) {
		c.renderer = renderer
	}
}

// WithControllerPages overrides the navigation pages.
func WithControllerPages(pages []PageDefinition) ControllerOption {
	return func(c *Controller) {
		c.pages = pages
	}
}

// WithControllerProviders lets the controller resolve panel definition names.
func WithControllerProviders(providers ProviderRegistry) ControllerOption {
	return func(c *Controller) {
		c.providers = providers
	}
}

// WithControllerTheme wires an optional theme provider and selector.
func WithControllerTheme(provider ThemeProvider, selector ThemeSelectorFunc) ControllerOption {
	return func(c *Controller) {
		c.theme = provider
		c.themeSelector = selector
	}
}

// WithControllerTitle overrides the shell title.
func WithControllerTitle(title string) ControllerOption {
	return func(c *Controller) {
		c.title = title
	}
}

// NewController wires the service into a controller.
func NewController(service *Service, opts ...ControllerOption) *Controller {
	c := &Controller{
		service: service,
		pages:   DefaultPageDefinitions(),
		title:   "Strategic Console",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NavItem is a sidebar navigation entry.
type NavItem struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// PanelView is a render-ready panel.
type PanelView struct {
	ID           string         `json:"id"`
	DefinitionID string         `json:"definition_id"`
	Title        string         `json:"title"`
	Category     string         `json:"category"`
	Data         PanelData      `json:"data"`
	Config       map[string]any `json:"config,omitempty"`
}

// ShellView is the full data set the console shell template consumes.
type ShellView struct {
	Title            string          `json:"title"`
	Nav              []NavItem       `json:"nav"`
	ActivePage       string          `json:"active_page"`
	SidebarCollapsed bool            `json:"sidebar_collapsed"`
	Panels           []PanelView     `json:"panels"`
	Theme            *ThemeSelection `json:"-"`
	ThemeCSS         string          `json:"-"`
}

// Render resolves the full layout for a viewer.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.service == nil {
		return Layout{}, nil
	}
	return c.service.ConfigureLayout(ctx, viewer)
}

// LayoutPayload returns the JSON representation of the viewer's layout,
// including shell state the browser needs before first paint.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return nil, err
	}
	pages := make(map[string][]PanelView, len(layout.Pages))
	for code, panels := range layout.Pages {
		pages[code] = c.panelViews(viewer, panels)
	}
	return map[string]any{
		"pages":             pages,
		"nav":               c.navItems(viewer, ""),
		"sidebar_collapsed": c.service.SidebarCollapsed(ctx, viewer),
	}, nil
}

// PageView builds the shell view for a single console page.
func (c *Controller) PageView(ctx context.Context, viewer ViewerContext, pageCode string) (ShellView, error) {
	if c.service == nil {
		return ShellView{}, fmt.Errorf("console: controller has no service")
	}
	if pageCode == "" {
		pageCode = c.defaultPage()
	}
	resolved, err := c.service.ResolvePage(ctx, viewer, pageCode)
	if err != nil {
		return ShellView{}, err
	}
	view := ShellView{
		Title:            c.title,
		Nav:              c.navItems(viewer, pageCode),
		ActivePage:       pageCode,
		SidebarCollapsed: c.service.SidebarCollapsed(ctx, viewer),
		Panels:           c.panelViews(viewer, resolved.Panels),
	}
	if theme := c.selectTheme(ctx, viewer); theme != nil {
		view.Theme = theme
		view.ThemeCSS = theme.CSSVariablesInline()
	}
	return view, nil
}

// RenderTemplate renders the console shell for a page into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, pageCode string, out io.Writer) error {
	if c.renderer == nil {
		return fmt.Errorf("console: controller has no renderer")
	}
	view, err := c.PageView(ctx, viewer, pageCode)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(shellTemplate, view.templateContext(), out)
	return err
}

func (v ShellView) templateContext() map[string]any {
	return map[string]any{
		"title":             v.Title,
		"nav":               v.Nav,
		"active_page":       v.ActivePage,
		"sidebar_collapsed": v.SidebarCollapsed,
		"panels":            v.Panels,
		"theme_css":         v.ThemeCSS,
	}
}

// RenderLanding renders the marketing/gate page into out.
func (c *Controller) RenderLanding(_ context.Context, out io.Writer) error {
	if c.renderer == nil {
		return fmt.Errorf("console: controller has no renderer")
	}
	_, err := c.renderer.Render(landingTemplate, map[string]any{
		"title": c.title,
	}, out)
	return err
}

func (c *Controller) navItems(viewer ViewerContext, active string) []NavItem {
	items := make([]NavItem, 0, len(c.pages))
	for _, page := range c.pages {
		items = append(items, NavItem{
			Code:        page.Code,
			Name:        page.Name,
			Description: page.Description,
			Active:      page.Code == active,
		})
	}
	return items
}

func (c *Controller) panelViews(viewer ViewerContext, panels []PanelInstance) []PanelView {
	views := make([]PanelView, 0, len(panels))
	for _, inst := range panels {
		view := PanelView{
			ID:           inst.ID,
			DefinitionID: inst.DefinitionID,
			Title:        c.panelTitle(viewer, inst),
			Config:       inst.Configuration,
		}
		if c.providers != nil {
			if def, ok := c.providers.Definition(inst.DefinitionID); ok {
				view.Category = def.Category
			}
		}
		if data, ok := inst.Metadata["data"].(PanelData); ok {
			view.Data = data
		}
		views = append(views, view)
	}
	return views
}

func (c *Controller) panelTitle(viewer ViewerContext, inst PanelInstance) string {
	if label, ok := inst.Configuration["label"].(string); ok && label != "" {
		return label
	}
	if title, ok := inst.Configuration["title"].(string); ok && title != "" {
		return title
	}
	if c.providers != nil {
		if def, ok := c.providers.Definition(inst.DefinitionID); ok {
			return def.NameForLocale(viewer.Locale)
		}
	}
	return inst.DefinitionID
}

func (c *Controller) defaultPage() string {
	if len(c.pages) > 0 {
		return c.pages[0].Code
	}
	if codes := DefaultPageCodes(); len(codes) > 0 {
		return codes[0]
	}
	return ""
}

func (c *Controller) selectTheme(ctx context.Context, viewer ViewerContext) *ThemeSelection {
	if c.theme == nil {
		return nil
	}
	selector := ThemeSelector{}
	if c.themeSelector != nil {
		selector = c.themeSelector(ctx, viewer)
	}
	selection, err := c.theme.SelectTheme(ctx, selector)
	if err != nil || selection == nil {
		return nil
	}
	return cloneThemeSelection(selection)
}

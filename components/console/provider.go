package console

import "context"

// Provider fetches data required to render a panel instance.
type Provider interface {
	Fetch(ctx context.Context, meta PanelContext) (PanelData, error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, meta PanelContext) (PanelData, error)

// Fetch satisfies the Provider interface.
func (f ProviderFunc) Fetch(ctx context.Context, meta PanelContext) (PanelData, error) {
	return f(ctx, meta)
}

// PanelContext contains the metadata needed by providers.
type PanelContext struct {
	Instance   PanelInstance
	Viewer     ViewerContext
	Translator TranslationService
}

// PanelData is an opaque payload passed to templates.
type PanelData map[string]any

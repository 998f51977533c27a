package console

import (
	"fmt"
	"sync"
)

// PanelHook lets packages register panels/providers during init().
type PanelHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []PanelHook
)

// RegisterPanelHook registers a hook executed against new registries.
func RegisterPanelHook(h PanelHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// PanelManifest represents config-driven registration entries.
type PanelManifest struct {
	Definition PanelDefinition
	Provider   Provider
}

// Registry implements ProviderRegistry with hook + manifest support.
type Registry struct {
	mu           sync.RWMutex
	definitions  map[string]PanelDefinition
	providers    map[string]Provider
	manifestMeta map[string]ManifestProvider
}

// NewRegistry builds an empty registry and applies global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions:  map[string]PanelDefinition{},
		providers:    map[string]Provider{},
		manifestMeta: map[string]ManifestProvider{},
	}
	reg.registerDefaults()
	_ = reg.ApplyHooks()
	return reg
}

func (r *Registry) registerDefaults() {
	for _, def := range DefaultPanelDefinitions() {
		_ = r.RegisterDefinition(def)
		if provider, ok := defaultProviders[def.Code]; ok {
			_ = r.RegisterProvider(def.Code, provider)
		}
	}
}

// ApplyHooks executes registered panel hooks.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// LoadManifest registers definitions/providers from config manifests.
func (r *Registry) LoadManifest(items []PanelManifest) error {
	for _, item := range items {
		if err := r.RegisterDefinition(item.Definition); err != nil {
			return err
		}
		if item.Provider != nil {
			if err := r.RegisterProvider(item.Definition.Code, item.Provider); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterDefinition stores panel metadata.
func (r *Registry) RegisterDefinition(def PanelDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("panel definition code is required")
	}
	def.normalizeLocalizedFields()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// RegisterProvider associates a provider implementation with a definition.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return fmt.Errorf("panel definition code is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("panel definition %s not found", code)
	}
	r.providers[code] = provider
	return nil
}

// Definition fetches a panel definition by code.
func (r *Registry) Definition(code string) (PanelDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches a panel provider by code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// ProviderMetadata returns any manifest metadata registered for a panel.
func (r *Registry) ProviderMetadata(code string) (ManifestProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.manifestMeta[code]
	return meta, ok
}

// Definitions returns all registered definitions.
func (r *Registry) Definitions() []PanelDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]PanelDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	return defs
}

func (r *Registry) recordProviderMetadata(code string, meta ManifestProvider) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifestMeta[code] = meta
}

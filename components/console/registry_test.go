package console

import (
	"context"
	"testing"
)

func TestNewRegistryRegistersDefaults(t *testing.T) {
	reg := NewRegistry()
	for _, code := range []string{
		"console.panel.metric_band",
		"console.panel.metric_walk",
		"console.panel.status_grid",
		"console.panel.headline_morph",
		"console.panel.predictions",
		"console.panel.alert_feed",
	} {
		if _, ok := reg.Definition(code); !ok {
			t.Fatalf("expected default definition %s", code)
		}
		if _, ok := reg.Provider(code); !ok {
			t.Fatalf("expected default provider %s", code)
		}
	}
}

func TestRegisterDefinitionRequiresCode(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterDefinition(PanelDefinition{Name: "Nameless"}); err == nil {
		t.Fatalf("expected error for missing code")
	}
}

func TestRegisterProviderRequiresDefinition(t *testing.T) {
	reg := NewRegistry()
	provider := ProviderFunc(func(context.Context, PanelContext) (PanelData, error) {
		return PanelData{}, nil
	})
	if err := reg.RegisterProvider("console.panel.unknown", provider); err == nil {
		t.Fatalf("expected error registering provider without definition")
	}
	if err := reg.RegisterProvider("console.panel.metric_band", nil); err == nil {
		t.Fatalf("expected error registering nil provider")
	}
}

func TestRegisterDefinitionNormalizesLocales(t *testing.T) {
	reg := NewRegistry()
	err := reg.RegisterDefinition(PanelDefinition{
		Code: "demo.panel.localized",
		Name: "Localized",
		NameLocalized: map[string]string{
			" ES ": "Panel localizado",
			"fr":   "",
		},
	})
	if err != nil {
		t.Fatalf("RegisterDefinition returned error: %v", err)
	}
	def, ok := reg.Definition("demo.panel.localized")
	if !ok {
		t.Fatalf("definition not stored")
	}
	if def.NameForLocale("es-MX") != "Panel localizado" {
		t.Fatalf("expected normalized locale lookup, got %q", def.NameForLocale("es-MX"))
	}
	if def.NameForLocale("fr") != "Localized" {
		t.Fatalf("expected empty translation to fall back, got %q", def.NameForLocale("fr"))
	}
}

func TestPanelHooksApplyToNewRegistries(t *testing.T) {
	RegisterPanelHook(func(reg *Registry) error {
		return reg.RegisterDefinition(PanelDefinition{
			Code: "hooked.panel.example",
			Name: "Hooked",
		})
	})
	reg := NewRegistry()
	if _, ok := reg.Definition("hooked.panel.example"); !ok {
		t.Fatalf("expected hook definition to be registered")
	}
}

func TestLoadManifestEntries(t *testing.T) {
	reg := NewRegistry()
	provider := ProviderFunc(func(context.Context, PanelContext) (PanelData, error) {
		return PanelData{"ok": true}, nil
	})
	err := reg.LoadManifest([]PanelManifest{
		{
			Definition: PanelDefinition{Code: "demo.panel.manifest", Name: "Manifest"},
			Provider:   provider,
		},
	})
	if err != nil {
		t.Fatalf("LoadManifest returned error: %v", err)
	}
	if _, ok := reg.Provider("demo.panel.manifest"); !ok {
		t.Fatalf("expected manifest provider registered")
	}
}

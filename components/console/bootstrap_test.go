package console

import (
	"context"
	"testing"
)

func TestRegisterPagesIsIdempotent(t *testing.T) {
	store := NewMemoryPanelStore()
	ctx := context.Background()

	if err := RegisterPages(ctx, store); err != nil {
		t.Fatalf("RegisterPages returned error: %v", err)
	}
	if err := RegisterPages(ctx, store); err != nil {
		t.Fatalf("second RegisterPages returned error: %v", err)
	}
	for _, code := range DefaultPageCodes() {
		created, err := store.EnsurePage(ctx, PageDefinition{Code: code, Name: "x"})
		if err != nil {
			t.Fatalf("EnsurePage returned error: %v", err)
		}
		if created {
			t.Fatalf("expected page %s already registered", code)
		}
	}
}

func TestRegisterPagesRequiresStore(t *testing.T) {
	if err := RegisterPages(context.Background(), nil); err == nil {
		t.Fatalf("expected error without store")
	}
	if err := RegisterDefinitions(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error without store")
	}
}

func TestRegisterDefinitionsPopulatesRegistry(t *testing.T) {
	store := NewMemoryPanelStore()
	registry := &Registry{
		definitions:  map[string]PanelDefinition{},
		providers:    map[string]Provider{},
		manifestMeta: map[string]ManifestProvider{},
	}
	if err := RegisterDefinitions(context.Background(), store, registry); err != nil {
		t.Fatalf("RegisterDefinitions returned error: %v", err)
	}
	if len(registry.Definitions()) != len(DefaultPanelDefinitions()) {
		t.Fatalf("expected %d definitions, got %d", len(DefaultPanelDefinitions()), len(registry.Definitions()))
	}
}

func TestSeedLayoutPopulatesEveryPage(t *testing.T) {
	store := NewMemoryPanelStore()
	registry := NewRegistry()
	service := NewService(Options{
		PanelStore: store,
		Providers:  registry,
	})
	ctx := context.Background()

	if err := RegisterPages(ctx, store); err != nil {
		t.Fatalf("RegisterPages returned error: %v", err)
	}
	if err := RegisterDefinitions(ctx, store, registry); err != nil {
		t.Fatalf("RegisterDefinitions returned error: %v", err)
	}
	if err := SeedLayout(ctx, service); err != nil {
		t.Fatalf("SeedLayout returned error: %v", err)
	}

	for _, code := range DefaultPageCodes() {
		page, err := store.ResolvePage(ctx, ResolvePageInput{PageCode: code})
		if err != nil {
			t.Fatalf("ResolvePage(%s) returned error: %v", code, err)
		}
		if len(page.Panels) == 0 {
			t.Fatalf("expected seeded panels on %s", code)
		}
	}
}

func TestSeedLayoutRequiresService(t *testing.T) {
	if err := SeedLayout(context.Background(), nil); err == nil {
		t.Fatalf("expected error without service")
	}
}

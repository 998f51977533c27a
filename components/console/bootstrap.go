package console

import (
	"context"
	"errors"
	"fmt"
)

// RegisterPages ensures console pages exist in the panel store.
func RegisterPages(ctx context.Context, store PanelStore) error {
	if store == nil {
		return errMissingPanelStore
	}
	for _, page := range DefaultPageDefinitions() {
		if _, err := store.EnsurePage(ctx, page); err != nil {
			return fmt.Errorf("register page %s: %w", page.Code, err)
		}
	}
	return nil
}

// RegisterDefinitions registers built-in panel definitions.
func RegisterDefinitions(ctx context.Context, store PanelStore, registry ProviderRegistry) error {
	if store == nil {
		return errMissingPanelStore
	}
	for _, def := range DefaultPanelDefinitions() {
		if _, err := store.EnsureDefinition(ctx, def); err != nil {
			return fmt.Errorf("register definition %s: %w", def.Code, err)
		}
		if registry != nil {
			if err := registry.RegisterDefinition(def); err != nil {
				return fmt.Errorf("register definition in registry %s: %w", def.Code, err)
			}
		}
	}
	return nil
}

// SeedLayout creates the starter panel assignments for every console page.
func SeedLayout(ctx context.Context, service *Service) error {
	if service == nil {
		return errors.New("console: service is required to seed layout")
	}
	var seedErr error
	for _, req := range DefaultSeedPanels() {
		if err := service.AddPanel(ctx, req); err != nil {
			seedErr = errors.Join(seedErr, err)
		}
	}
	return seedErr
}

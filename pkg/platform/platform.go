// Package platform embeds the console into a host application shell: menu
// seeding, landing gate wiring, and activity emission.
package platform

import (
	"context"
	"errors"

	activitypkg "github.com/strategicai/console/pkg/activity"
	consolepkg "github.com/strategicai/console/pkg/console"

	"github.com/strategicai/console/components/console/gate"
)

// MenuBuilder ensures console entries exist within the host navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures console link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires console service, gate, and feature flags into a host shell.
type Config struct {
	EnableConsole   bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *consolepkg.Service
	Gate            *gate.Gate
	DefaultMenuItem MenuItem
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Platform exposes helpers for applications hosting the console.
type Platform struct {
	cfg     Config
	emitter *activitypkg.Emitter
}

// New creates a Platform helper that can seed console menus.
func New(cfg Config) (*Platform, error) {
	if cfg.EnableConsole && cfg.Service == nil {
		return nil, errors.New("platform: console service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "platform.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Console"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "/console"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "layout"
	}
	return &Platform{
		cfg:     cfg,
		emitter: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Console exposes the configured console service when enabled.
func (p *Platform) Console() *consolepkg.Service {
	if !p.cfg.EnableConsole {
		return nil
	}
	return p.cfg.Service
}

// Gate exposes the landing gate, nil when none is configured.
func (p *Platform) Gate() *gate.Gate {
	return p.cfg.Gate
}

// Activity exposes the configured activity emitter.
func (p *Platform) Activity() *activitypkg.Emitter {
	return p.emitter
}

// Bootstrap seeds menu entries when console support is enabled.
func (p *Platform) Bootstrap(ctx context.Context) error {
	if !p.cfg.EnableConsole || p.cfg.MenuBuilder == nil {
		return nil
	}
	if err := p.cfg.MenuBuilder.EnsureMenuItem(ctx, p.cfg.MenuCode, p.cfg.DefaultMenuItem); err != nil {
		return err
	}
	return p.emitter.Emit(ctx, activitypkg.Event{
		Verb:       "bootstrap",
		ObjectType: "menu",
		ObjectID:   p.cfg.MenuCode,
	})
}

package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/strategicai/console/components/console"
)

// SaveLayoutPreferencesInput captures viewer overrides for layout
// customization.
type SaveLayoutPreferencesInput struct {
	Viewer           console.ViewerContext `json:"viewer"`
	Locale           string                `json:"locale"`
	PageOrder        map[string][]string   `json:"page_order"`
	HiddenPanels     []string              `json:"hidden_panel_ids"`
	SidebarCollapsed bool                  `json:"sidebar_collapsed"`
}

type preferenceService interface {
	SavePreferences(ctx context.Context, viewer console.ViewerContext, overrides console.LayoutOverrides) error
}

// SaveLayoutPreferencesCommand persists per-user layout overrides.
type SaveLayoutPreferencesCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSaveLayoutPreferencesCommand creates the command.
func NewSaveLayoutPreferencesCommand(service preferenceService, telemetry Telemetry) *SaveLayoutPreferencesCommand {
	return &SaveLayoutPreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SaveLayoutPreferencesInput] = (*SaveLayoutPreferencesCommand)(nil)

// Execute stores the provided overrides for the viewer.
func (c *SaveLayoutPreferencesCommand) Execute(ctx context.Context, msg SaveLayoutPreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("preferences command requires viewer user id")
	}
	overrides := console.LayoutOverrides{
		Locale:           msg.Locale,
		PageOrder:        msg.PageOrder,
		HiddenPanels:     make(map[string]bool, len(msg.HiddenPanels)),
		SidebarCollapsed: msg.SidebarCollapsed,
	}
	for _, id := range msg.HiddenPanels {
		overrides.HiddenPanels[id] = true
	}
	if err := c.service.SavePreferences(ctx, msg.Viewer, overrides); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.preferences.save", map[string]any{
		"user_id":    msg.Viewer.UserID,
		"pages":      len(msg.PageOrder),
		"hidden_cnt": len(msg.HiddenPanels),
	})
	return nil
}

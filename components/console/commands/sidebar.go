package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/strategicai/console/components/console"
)

// ToggleSidebarInput identifies the viewer whose sidebar state flips.
type ToggleSidebarInput struct {
	Viewer console.ViewerContext `json:"viewer"`
}

type sidebarService interface {
	ToggleSidebar(ctx context.Context, viewer console.ViewerContext) (bool, error)
}

// ToggleSidebarCommand flips the viewer's sidebar preference.
type ToggleSidebarCommand struct {
	service   sidebarService
	telemetry Telemetry
}

// NewToggleSidebarCommand creates the command.
func NewToggleSidebarCommand(service sidebarService, telemetry Telemetry) *ToggleSidebarCommand {
	return &ToggleSidebarCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleSidebarInput] = (*ToggleSidebarCommand)(nil)

// Execute toggles the preference exactly once.
func (c *ToggleSidebarCommand) Execute(ctx context.Context, msg ToggleSidebarInput) error {
	if c.service == nil {
		return errors.New("sidebar command requires service")
	}
	collapsed, err := c.service.ToggleSidebar(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.sidebar.toggle", map[string]any{
		"user_id":   msg.Viewer.UserID,
		"collapsed": collapsed,
	})
	return nil
}

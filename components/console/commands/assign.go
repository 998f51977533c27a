package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	console "github.com/strategicai/console/components/console"
)

type assignService interface {
	AddPanel(ctx context.Context, req console.AddPanelRequest) error
}

// AssignPanelCommand translates incoming requests into service calls and emits
// telemetry so operators can observe panel assignment activity.
type AssignPanelCommand struct {
	service   assignService
	telemetry Telemetry
}

// NewAssignPanelCommand creates a command instance.
func NewAssignPanelCommand(service assignService, telemetry Telemetry) *AssignPanelCommand {
	return &AssignPanelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[console.AddPanelRequest] = (*AssignPanelCommand)(nil)

// Execute delegates to the console service.
func (c *AssignPanelCommand) Execute(ctx context.Context, msg console.AddPanelRequest) error {
	if c.service == nil {
		return errors.New("assign command requires service")
	}
	if err := c.service.AddPanel(ctx, msg); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "console.panel.assign", map[string]any{
		"definition_id": msg.DefinitionID,
		"page_code":     msg.PageCode,
	})
	return nil
}

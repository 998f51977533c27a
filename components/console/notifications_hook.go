package console

import "context"

// NotificationsClient defines the minimal interface needed from an external
// notifications service.
type NotificationsClient interface {
	PublishConsoleEvent(ctx context.Context, event PanelEvent) error
}

// NotificationsHook forwards panel events to an external notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// PanelUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) PanelUpdated(ctx context.Context, event PanelEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishConsoleEvent(ctx, event)
}

package activity

import "context"

// Config toggles activity emission.
type Config struct {
	Enabled bool
}

// Emitter publishes events when enabled and at least one hook is registered.
type Emitter struct {
	hooks Hooks
	cfg   Config
}

// NewEmitter builds an emitter over the provided hooks.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{hooks: hooks, cfg: cfg}
}

// Enabled reports whether events will actually be delivered.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Emit delivers the event to every hook; it is a no-op when disabled.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	return e.hooks.Notify(ctx, evt)
}

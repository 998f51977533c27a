// Package activity publishes console activity events to pluggable hooks.
package activity

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Event describes something a user or agent did inside the console.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// DefaultChannel is used when an event does not name one.
const DefaultChannel = "console"

// Hook receives normalized activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func(ctx context.Context, evt Event) error

// Notify calls the wrapped function.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans an event out to every registered hook.
type Hooks []Hook

// Notify normalizes the event and delivers it to each hook. Events without a
// verb are skipped. Hook errors are collected rather than short-circuiting.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	normalized := NormalizeEvent(evt)
	if normalized.Verb == "" {
		return nil
	}
	var errs error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, normalized); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}

// NormalizeEvent trims identifier fields, applies defaults, and clones the
// mutable members so hooks cannot alias caller state.
func NormalizeEvent(evt Event) Event {
	evt.Verb = strings.TrimSpace(evt.Verb)
	evt.ObjectType = strings.TrimSpace(evt.ObjectType)
	evt.ObjectID = strings.TrimSpace(evt.ObjectID)
	evt.Channel = strings.TrimSpace(evt.Channel)
	if evt.Channel == "" {
		evt.Channel = DefaultChannel
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}
	if evt.Metadata != nil {
		cloned := make(map[string]any, len(evt.Metadata))
		for k, v := range evt.Metadata {
			cloned[k] = v
		}
		evt.Metadata = cloned
	}
	if evt.Recipients != nil {
		evt.Recipients = append([]string(nil), evt.Recipients...)
	}
	return evt
}

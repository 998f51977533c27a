// Package console re-exports the core console service types so applications
// can depend on a stable import path.
package console

import (
	core "github.com/strategicai/console/components/console"
)

// Service exposes the underlying components/console.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ViewerContext re-export for convenience.
type ViewerContext = core.ViewerContext

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

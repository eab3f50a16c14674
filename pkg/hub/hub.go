package hub

import (
	core "github.com/goliatone/go-contact-hub/components/hub"
)

// Service exposes the underlying components/hub.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// WidgetConfig re-export for convenience.
type WidgetConfig = core.WidgetConfig

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

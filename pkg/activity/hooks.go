package activity

import (
	"context"
	"errors"
	"sync"
)

// Hook receives normalized activity events.
type Hook interface {
	Notify(ctx context.Context, evt Event) error
}

// HookFunc adapts a function into a Hook.
type HookFunc func(ctx context.Context, evt Event) error

// Notify calls f.
func (f HookFunc) Notify(ctx context.Context, evt Event) error {
	return f(ctx, evt)
}

// Hooks fans an event out to every registered hook.
type Hooks []Hook

// Notify normalizes the event and forwards it to each hook. Invalid events are
// dropped silently. Hook errors are joined and returned after all hooks ran.
func (h Hooks) Notify(ctx context.Context, evt Event) error {
	evt = NormalizeEvent(evt)
	if !evt.Valid() {
		return nil
	}
	var errs []error
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.Notify(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CaptureHook stores events in memory. Useful in tests and demos.
type CaptureHook struct {
	mu     sync.Mutex
	Events []Event
}

// Notify appends the event.
func (c *CaptureHook) Notify(_ context.Context, evt Event) error {
	c.mu.Lock()
	c.Events = append(c.Events, evt)
	c.mu.Unlock()
	return nil
}

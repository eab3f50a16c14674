package activity

import (
	"context"
	"strings"
)

// Config toggles activity emission. Verbs, when set, limits emission to the
// listed verbs, for example only hub.widget.submit on a busy site.
type Config struct {
	Enabled bool
	Channel string
	Verbs   []string
}

// Emitter applies Config before handing events to Hooks.
type Emitter struct {
	hooks Hooks
	cfg   Config
	verbs map[string]struct{}
}

// NewEmitter builds an emitter. The channel defaults to DefaultChannel.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	em := &Emitter{hooks: hooks, cfg: cfg}
	for _, verb := range cfg.Verbs {
		if verb = strings.TrimSpace(verb); verb != "" {
			if em.verbs == nil {
				em.verbs = make(map[string]struct{}, len(cfg.Verbs))
			}
			em.verbs[verb] = struct{}{}
		}
	}
	return em
}

// Enabled reports whether events will reach at least one hook.
func (e *Emitter) Enabled() bool {
	return e != nil && e.cfg.Enabled && len(e.hooks) > 0
}

// Allows reports whether verb passes the Verbs filter.
func (e *Emitter) Allows(verb string) bool {
	if e == nil || len(e.verbs) == 0 {
		return true
	}
	_, ok := e.verbs[strings.TrimSpace(verb)]
	return ok
}

// Emit forwards the event when the emitter is enabled and the verb allowed.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() || !e.Allows(evt.Verb) {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.cfg.Channel
	}
	return e.hooks.Notify(ctx, evt)
}

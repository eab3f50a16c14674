package hub

import (
	"context"
	"sync"
	"time"
)

// Session drives one panel instance on the server side. It is the preview
// counterpart of the emitted script: both feed the same reducer and
// transition table.
type Session struct {
	cfg       WidgetConfig
	transport Transport
	preview   bool
	clock     func() time.Time

	mu      sync.Mutex
	state   PanelState
	history []PanelState
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithSessionClock overrides the submission timestamp source.
func WithSessionClock(clock func() time.Time) SessionOption {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// AsEmbed makes submissions behave like a production embed: unconfigured
// widgets fail instead of simulating.
func AsEmbed() SessionOption {
	return func(s *Session) { s.preview = false }
}

// NewSession starts a closed panel for cfg. A nil transport uses a Relay
// with only the simulator.
func NewSession(cfg WidgetConfig, transport Transport, opts ...SessionOption) *Session {
	if transport == nil {
		transport = NewRelay(nil, nil)
	}
	s := &Session{
		cfg:       cfg.Clone(),
		transport: transport,
		preview:   true,
		clock:     time.Now,
		state:     InitialPanelState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = []PanelState{s.state}
	return s
}

// State returns the current panel state.
func (s *Session) State() PanelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns every state the panel went through, starting with the
// initial one.
func (s *Session) History() []PanelState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PanelState(nil), s.history...)
}

// Dispatch applies one action without running effects.
func (s *Session) Dispatch(action Action) (PanelState, Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, effect := Reduce(s.cfg, s.state, action)
	if next != s.state {
		s.history = append(s.history, next)
	}
	s.state = next
	return next, effect
}

// Run dispatches actions in order and performs any submission they trigger
// before moving on. The transport result is fed back as succeed or fail.
func (s *Session) Run(ctx context.Context, actions ...Action) (PanelState, error) {
	var state PanelState
	for _, action := range actions {
		var effect Effect
		state, effect = s.Dispatch(action)
		if !effect.Submit {
			continue
		}
		var err error
		state, err = s.perform(ctx, effect)
		if err != nil && ctx.Err() != nil {
			return state, ctx.Err()
		}
	}
	if len(actions) == 0 {
		state = s.State()
	}
	return state, nil
}

func (s *Session) perform(ctx context.Context, effect Effect) (PanelState, error) {
	sub := Submission{
		BotToken:   s.cfg.BotToken,
		ChatID:     s.cfg.ChatID,
		WidgetID:   s.cfg.ID,
		WidgetName: s.cfg.Name,
		Channel:    effect.Channel,
		Contact:    effect.Contact,
		Message:    effect.Message,
		Preview:    s.preview,
		At:         s.clock(),
	}
	err := s.transport.Submit(ctx, sub)
	if err != nil {
		state, _ := s.Dispatch(Action{Kind: ActionFail, Attempt: effect.Attempt, Value: UserMessage(err)})
		return state, err
	}
	state, _ := s.Dispatch(Action{Kind: ActionSucceed, Attempt: effect.Attempt})
	return state, nil
}

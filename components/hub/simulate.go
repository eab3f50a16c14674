package hub

import (
	"context"
	"sync"
	"time"
)

// SimulatedTransport pretends to deliver submissions. Previews use it so the
// panel works end to end without live credentials.
type SimulatedTransport struct {
	delay time.Duration

	mu   sync.Mutex
	sent []string
}

var _ Transport = (*SimulatedTransport)(nil)

// NewSimulatedTransport builds a simulator that waits delay before succeeding.
func NewSimulatedTransport(delay time.Duration) *SimulatedTransport {
	return &SimulatedTransport{delay: delay}
}

// Submit records the composed notification and reports success.
func (s *SimulatedTransport) Submit(ctx context.Context, sub Submission) error {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	text := ComposeNotification(sub)
	s.mu.Lock()
	s.sent = append(s.sent, text)
	s.mu.Unlock()
	return nil
}

// Sent returns every notification the simulator accepted.
func (s *SimulatedTransport) Sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sent...)
}

// Relay routes a submission: configured widgets go to the live transport,
// unconfigured previews go to the simulator and unconfigured embeds fail.
type Relay struct {
	Live      Transport
	Simulated Transport
}

var _ Transport = Relay{}

// NewRelay builds a relay with a zero-delay simulator when sim is nil.
func NewRelay(live, sim Transport) Relay {
	if sim == nil {
		sim = NewSimulatedTransport(0)
	}
	return Relay{Live: live, Simulated: sim}
}

// Submit dispatches sub to the right transport.
func (r Relay) Submit(ctx context.Context, sub Submission) error {
	hasCredentials := TrimBlank(sub.BotToken) != "" && TrimBlank(sub.ChatID) != ""
	switch {
	case hasCredentials && r.Live != nil:
		return r.Live.Submit(ctx, sub)
	case !hasCredentials && sub.Preview && r.Simulated != nil:
		return r.Simulated.Submit(ctx, sub)
	default:
		return ErrMissingCredentials
	}
}

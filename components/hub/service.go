package hub

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-contact-hub/pkg/activity"
	"github.com/sirupsen/logrus"
)

// Options configures the hub Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Store          WidgetStore
	Transport      Transport
	Emitter        *Emitter
	Telemetry      Telemetry
	ActivityHooks  activity.Hooks
	ActivityConfig activity.Config
	Logger         logrus.FieldLogger
	Suggester      Suggester
	Clock          func() time.Time
	IDGenerator    func() string
}

// Service manages widget configurations and everything derived from them.
type Service struct {
	opts     Options
	activity *activity.Emitter

	mu sync.Mutex

	emitterOnce sync.Once
	emitterErr  error
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	opts.Logger = normalizeLogger(opts.Logger)
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	if opts.Transport == nil {
		opts.Transport = NewRelay(NewTelegramTransport(TelegramConfig{Logger: opts.Logger}), NewSimulatedTransport(0))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.IDGenerator == nil {
		opts.IDGenerator = NewWidgetID
	}
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// CreateWidgetRequest carries the inputs for a new widget.
type CreateWidgetRequest struct {
	Name        string
	Title       string
	Description string
}

// SubmitRequest is a visitor submission relayed through the server.
type SubmitRequest struct {
	WidgetID string      `json:"widgetId"`
	Channel  ChannelType `json:"channel"`
	Contact  string      `json:"contact"`
	Message  string      `json:"message"`
	Preview  bool        `json:"preview"`
}

// ListWidgets returns every stored widget ordered as stored.
func (s *Service) ListWidgets(ctx context.Context) ([]WidgetConfig, error) {
	store, err := s.store()
	if err != nil {
		return nil, err
	}
	widgets, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("hub: load widgets: %w", err)
	}
	return widgets, nil
}

// Widget returns one widget by id.
func (s *Service) Widget(ctx context.Context, id string) (WidgetConfig, error) {
	if strings.TrimSpace(id) == "" {
		return WidgetConfig{}, ErrMissingWidgetID
	}
	widgets, err := s.ListWidgets(ctx)
	if err != nil {
		return WidgetConfig{}, err
	}
	idx := indexOf(widgets, id)
	if idx < 0 {
		return WidgetConfig{}, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
	}
	return widgets[idx], nil
}

// CreateWidget stores a new widget built from defaults.
func (s *Service) CreateWidget(ctx context.Context, req CreateWidgetRequest) (WidgetConfig, error) {
	cfg := NewWidgetConfig(s.opts.IDGenerator(), s.opts.Clock())
	if name := strings.TrimSpace(req.Name); name != "" {
		cfg.Name = name
	}
	if req.Title != "" {
		cfg.Title = req.Title
	}
	if req.Description != "" {
		cfg.Description = req.Description
	}
	if err := ValidateConfig(cfg); err != nil {
		return WidgetConfig{}, err
	}
	err := s.mutate(ctx, func(widgets []WidgetConfig) ([]WidgetConfig, error) {
		return append(widgets, cfg), nil
	})
	if err != nil {
		return WidgetConfig{}, err
	}
	s.recordTelemetry(ctx, EventWidgetCreate, map[string]any{"widget_id": cfg.ID})
	s.emitActivity(ctx, VerbWidgetCreate, cfg.ID, map[string]any{"name": cfg.Name})
	return cfg, nil
}

// UpdateWidget replaces a stored widget. The id and creation time of the
// stored copy are kept.
func (s *Service) UpdateWidget(ctx context.Context, cfg WidgetConfig) (WidgetConfig, error) {
	if strings.TrimSpace(cfg.ID) == "" {
		return WidgetConfig{}, ErrMissingWidgetID
	}
	var updated WidgetConfig
	err := s.mutate(ctx, func(widgets []WidgetConfig) ([]WidgetConfig, error) {
		idx := indexOf(widgets, cfg.ID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrWidgetNotFound, cfg.ID)
		}
		next := ApplyDefaults(cfg.Clone())
		next.CreatedAt = widgets[idx].CreatedAt
		if err := ValidateConfig(next); err != nil {
			return nil, err
		}
		widgets[idx] = next
		updated = next
		return widgets, nil
	})
	if err != nil {
		return WidgetConfig{}, err
	}
	s.recordTelemetry(ctx, EventWidgetUpdate, map[string]any{"widget_id": updated.ID})
	s.emitActivity(ctx, VerbWidgetUpdate, updated.ID, map[string]any{"panel_style": string(updated.PanelStyle)})
	return updated, nil
}

// UpdateChannel applies a partial update to one channel of a widget. The
// channel type is the lookup key and never changes.
func (s *Service) UpdateChannel(ctx context.Context, widgetID string, channel ChannelType, update ChannelUpdate) (WidgetConfig, error) {
	if strings.TrimSpace(widgetID) == "" {
		return WidgetConfig{}, ErrMissingWidgetID
	}
	var updated WidgetConfig
	err := s.mutate(ctx, func(widgets []WidgetConfig) ([]WidgetConfig, error) {
		idx := indexOf(widgets, widgetID)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrWidgetNotFound, widgetID)
		}
		next := widgets[idx].Clone()
		found := false
		for i, ch := range next.Channels {
			if ch.Type == channel {
				next.Channels[i] = update.Apply(ch)
				found = true
				break
			}
		}
		if !found {
			return nil, newValidationError("channel", fmt.Sprintf("widget has no %s channel", channel), nil)
		}
		if err := ValidateConfig(next); err != nil {
			return nil, err
		}
		widgets[idx] = next
		updated = next
		return widgets, nil
	})
	if err != nil {
		return WidgetConfig{}, err
	}
	s.recordTelemetry(ctx, EventChannelUpdate, map[string]any{
		"widget_id": widgetID,
		"channel":   string(channel),
	})
	s.emitActivity(ctx, VerbChannelUpdate, widgetID, map[string]any{"channel_type": string(channel)})
	return updated, nil
}

// DeleteWidget removes a widget.
func (s *Service) DeleteWidget(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingWidgetID
	}
	var name string
	err := s.mutate(ctx, func(widgets []WidgetConfig) ([]WidgetConfig, error) {
		idx := indexOf(widgets, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s", ErrWidgetNotFound, id)
		}
		name = widgets[idx].Name
		return append(widgets[:idx], widgets[idx+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.recordTelemetry(ctx, EventWidgetDelete, map[string]any{"widget_id": id})
	s.emitActivity(ctx, VerbWidgetDelete, id, map[string]any{"name": name})
	return nil
}

// ImportProject decodes a project file and stores it as a new widget. The
// store is untouched when the file is rejected.
func (s *Service) ImportProject(ctx context.Context, filename string, size int64, r io.Reader) (WidgetConfig, error) {
	decoded, err := DecodeProject(filename, size, r)
	if err != nil {
		s.recordTelemetry(ctx, EventProjectImportRejected, map[string]any{"filename": filename})
		s.opts.Logger.WithError(err).WithField("filename", filename).Warn("hub: project import rejected")
		return WidgetConfig{}, err
	}
	cfg, err := PrepareImported(decoded, s.opts.IDGenerator(), s.opts.Clock())
	if err != nil {
		return WidgetConfig{}, err
	}
	err = s.mutate(ctx, func(widgets []WidgetConfig) ([]WidgetConfig, error) {
		return append(widgets, cfg), nil
	})
	if err != nil {
		return WidgetConfig{}, err
	}
	s.recordTelemetry(ctx, EventProjectImport, map[string]any{"widget_id": cfg.ID})
	s.emitActivity(ctx, VerbProjectImport, cfg.ID, map[string]any{
		"filename":  filename,
		"source_id": decoded.ID,
	})
	return cfg, nil
}

// ExportProject serializes a widget into a downloadable project file.
func (s *Service) ExportProject(ctx context.Context, id string) ([]byte, string, error) {
	cfg, err := s.Widget(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data, filename, err := ExportProject(cfg)
	if err != nil {
		return nil, "", err
	}
	s.recordTelemetry(ctx, EventProjectExport, map[string]any{"widget_id": id})
	return data, filename, nil
}

// ResolveStyle returns the effective style of a widget.
func (s *Service) ResolveStyle(ctx context.Context, id string) (ResolvedStyle, error) {
	cfg, err := s.Widget(ctx, id)
	if err != nil {
		return ResolvedStyle{}, err
	}
	return Resolve(cfg), nil
}

// EmitScript renders the self-contained script of a widget.
func (s *Service) EmitScript(ctx context.Context, id string, mode EmitMode) (string, error) {
	cfg, err := s.Widget(ctx, id)
	if err != nil {
		return "", err
	}
	emitter, err := s.emitter()
	if err != nil {
		return "", err
	}
	script, err := emitter.Emit(cfg, mode)
	if err != nil {
		return "", err
	}
	s.recordTelemetry(ctx, EventScriptEmit, map[string]any{
		"widget_id": id,
		"mode":      string(mode),
		"bytes":     len(script),
	})
	return script, nil
}

// EmitDemo renders the standalone demo page of a widget.
func (s *Service) EmitDemo(ctx context.Context, id string) (string, error) {
	cfg, err := s.Widget(ctx, id)
	if err != nil {
		return "", err
	}
	emitter, err := s.emitter()
	if err != nil {
		return "", err
	}
	page, err := emitter.DemoHTML(cfg)
	if err != nil {
		return "", err
	}
	s.recordTelemetry(ctx, EventDemoEmit, map[string]any{"widget_id": id})
	return page, nil
}

// NewPreviewSession opens a server side panel for a widget. Submissions from
// unconfigured widgets are simulated.
func (s *Service) NewPreviewSession(ctx context.Context, id string) (*Session, error) {
	cfg, err := s.Widget(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, s.opts.Transport, WithSessionClock(s.opts.Clock)), nil
}

// Submit relays a visitor submission using the widget's credentials. The
// draft goes through the same panel reducer the emitted script uses, so
// validation and formatting match the browser.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) error {
	cfg, err := s.Widget(ctx, req.WidgetID)
	if err != nil {
		return err
	}
	ch, ok := cfg.Channel(req.Channel)
	if !ok || !ch.Enabled {
		return newValidationError("channel", fmt.Sprintf("channel %q is not available", req.Channel), nil)
	}
	opts := []SessionOption{WithSessionClock(s.opts.Clock)}
	if !req.Preview {
		opts = append(opts, AsEmbed())
	}
	session := NewSession(cfg, s.opts.Transport, opts...)
	session.Dispatch(Action{Kind: ActionToggle})
	session.Dispatch(Action{Kind: ActionSelect, Channel: req.Channel})
	session.Dispatch(Action{Kind: ActionInput, Value: req.Contact})
	session.Dispatch(Action{Kind: ActionMessage, Value: req.Message})
	state, effect := session.Dispatch(Action{Kind: ActionSubmit})
	if !effect.Submit {
		field := "contact"
		if state.Error == DefaultPanelCopy().MessageRequired {
			field = "message"
		}
		return newValidationError(field, state.Error, nil)
	}

	logger := s.opts.Logger.WithFields(logrus.Fields{
		"widget_id": cfg.ID,
		"channel":   string(req.Channel),
		"preview":   req.Preview,
	})
	if _, err := session.perform(ctx, effect); err != nil {
		s.recordTelemetry(ctx, EventSubmissionFailed, submissionPayload(cfg.ID, req.Channel, err))
		logger.WithError(err).Warn("hub: submission failed")
		return err
	}
	s.recordTelemetry(ctx, EventSubmissionSent, submissionPayload(cfg.ID, req.Channel, nil))
	s.emitActivity(ctx, VerbWidgetSubmit, cfg.ID, map[string]any{
		"channel_type": string(req.Channel),
		"preview":      req.Preview,
	})
	logger.Info("hub: submission relayed")
	return nil
}

// Suggest asks the configured Suggester for copy ideas. Without one it
// returns nil.
func (s *Service) Suggest(ctx context.Context, description string) (*Suggestion, error) {
	if s.opts.Suggester == nil {
		return nil, nil
	}
	suggestion, err := s.opts.Suggester.Suggest(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("hub: suggest: %w", err)
	}
	return suggestion, nil
}

// Emitter returns the script emitter used by the service.
func (s *Service) Emitter() (*Emitter, error) {
	return s.emitter()
}

func (s *Service) emitter() (*Emitter, error) {
	s.emitterOnce.Do(func() {
		if s.opts.Emitter != nil {
			return
		}
		s.opts.Emitter, s.emitterErr = NewEmitter(EmitterConfig{Cache: NewScriptCache(time.Minute)})
	})
	if s.emitterErr != nil {
		return nil, s.emitterErr
	}
	return s.opts.Emitter, nil
}

func (s *Service) store() (WidgetStore, error) {
	if s.opts.Store == nil {
		return nil, ErrMissingStore
	}
	return s.opts.Store, nil
}

func (s *Service) mutate(ctx context.Context, fn func([]WidgetConfig) ([]WidgetConfig, error)) error {
	store, err := s.store()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	widgets, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("hub: load widgets: %w", err)
	}
	next, err := fn(widgets)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, next); err != nil {
		return fmt.Errorf("hub: save widgets: %w", err)
	}
	return nil
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) emitActivity(ctx context.Context, verb, widgetID string, metadata map[string]any) {
	if !s.activity.Enabled() {
		return
	}
	evt := widgetEvent(ctx, verb, widgetID, metadata)
	if err := s.activity.Emit(ctx, evt); err != nil && !errors.Is(err, context.Canceled) {
		s.opts.Logger.WithError(err).WithField("verb", verb).Warn("hub: activity hook failed")
	}
}

func indexOf(widgets []WidgetConfig, id string) int {
	for i, w := range widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

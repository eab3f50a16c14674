package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// CreateWidgetInput describes a new widget. Result receives the stored
// widget when set.
type CreateWidgetInput struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Result      *hub.WidgetConfig `json:"-"`
}

type createService interface {
	CreateWidget(ctx context.Context, req hub.CreateWidgetRequest) (hub.WidgetConfig, error)
}

// CreateWidgetCommand wraps Service.CreateWidget so transports can create
// widgets without linking directly against the service.
type CreateWidgetCommand struct {
	service   createService
	telemetry Telemetry
}

// NewCreateWidgetCommand creates a command instance.
func NewCreateWidgetCommand(service createService, telemetry Telemetry) *CreateWidgetCommand {
	return &CreateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CreateWidgetInput] = (*CreateWidgetCommand)(nil)

// Execute delegates to the hub service.
func (c *CreateWidgetCommand) Execute(ctx context.Context, msg CreateWidgetInput) error {
	if c.service == nil {
		return errors.New("create command requires service")
	}
	cfg, err := c.service.CreateWidget(ctx, hub.CreateWidgetRequest{
		Name:        msg.Name,
		Title:       msg.Title,
		Description: msg.Description,
	})
	if err != nil {
		recordResult(ctx, c.telemetry, CommandCreate, err, nil)
		return err
	}
	if msg.Result != nil {
		*msg.Result = cfg
	}
	recordResult(ctx, c.telemetry, CommandCreate, nil, map[string]any{"widget_id": cfg.ID})
	return nil
}

package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// UpdateWidgetInput replaces a widget configuration.
type UpdateWidgetInput struct {
	Widget hub.WidgetConfig  `json:"widget"`
	Result *hub.WidgetConfig `json:"-"`
}

type updateService interface {
	UpdateWidget(ctx context.Context, cfg hub.WidgetConfig) (hub.WidgetConfig, error)
}

// UpdateWidgetCommand saves an edited widget.
type UpdateWidgetCommand struct {
	service   updateService
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates the command.
func NewUpdateWidgetCommand(service updateService, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute stores the widget.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.service == nil {
		return errors.New("update command requires service")
	}
	if msg.Widget.ID == "" {
		return hub.ErrMissingWidgetID
	}
	cfg, err := c.service.UpdateWidget(ctx, msg.Widget)
	if err != nil {
		recordResult(ctx, c.telemetry, CommandUpdate, err, map[string]any{"widget_id": msg.Widget.ID})
		return err
	}
	if msg.Result != nil {
		*msg.Result = cfg
	}
	recordResult(ctx, c.telemetry, CommandUpdate, nil, map[string]any{
		"widget_id":   cfg.ID,
		"panel_style": string(cfg.PanelStyle),
	})
	return nil
}

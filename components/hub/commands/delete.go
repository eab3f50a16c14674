package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// DeleteWidgetInput identifies the widget to delete.
type DeleteWidgetInput struct {
	WidgetID string `json:"widget_id"`
}

type deleteService interface {
	DeleteWidget(ctx context.Context, id string) error
}

// DeleteWidgetCommand removes a widget.
type DeleteWidgetCommand struct {
	service   deleteService
	telemetry Telemetry
}

// NewDeleteWidgetCommand creates the command.
func NewDeleteWidgetCommand(service deleteService, telemetry Telemetry) *DeleteWidgetCommand {
	return &DeleteWidgetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[DeleteWidgetInput] = (*DeleteWidgetCommand)(nil)

// Execute deletes the widget.
func (c *DeleteWidgetCommand) Execute(ctx context.Context, msg DeleteWidgetInput) error {
	if c.service == nil {
		return errors.New("delete command requires service")
	}
	if msg.WidgetID == "" {
		return errors.New("delete command requires widget id")
	}
	err := c.service.DeleteWidget(ctx, msg.WidgetID)
	recordResult(ctx, c.telemetry, CommandDelete, err, map[string]any{"widget_id": msg.WidgetID})
	return err
}

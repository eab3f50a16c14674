package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
)

type submitService interface {
	Submit(ctx context.Context, req hub.SubmitRequest) error
}

// SubmitCommand relays a visitor submission through the server.
type SubmitCommand struct {
	service   submitService
	telemetry Telemetry
}

// NewSubmitCommand creates the command.
func NewSubmitCommand(service submitService, telemetry Telemetry) *SubmitCommand {
	return &SubmitCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[hub.SubmitRequest] = (*SubmitCommand)(nil)

// Execute delegates to the hub service.
func (c *SubmitCommand) Execute(ctx context.Context, msg hub.SubmitRequest) error {
	if c.service == nil {
		return errors.New("submit command requires service")
	}
	err := c.service.Submit(ctx, msg)
	recordResult(ctx, c.telemetry, CommandSubmit, err, map[string]any{
		"widget_id": msg.WidgetID,
		"channel":   string(msg.Channel),
		"outcome":   hub.SubmissionOutcome(err),
	})
	return err
}

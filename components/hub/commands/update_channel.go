package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// UpdateChannelInput changes one channel of a widget.
type UpdateChannelInput struct {
	WidgetID string            `json:"widget_id"`
	Channel  hub.ChannelType   `json:"channel"`
	Update   hub.ChannelUpdate `json:"update"`
	Result   *hub.WidgetConfig `json:"-"`
}

type channelService interface {
	UpdateChannel(ctx context.Context, widgetID string, channel hub.ChannelType, update hub.ChannelUpdate) (hub.WidgetConfig, error)
}

// UpdateChannelCommand toggles or relabels a channel.
type UpdateChannelCommand struct {
	service   channelService
	telemetry Telemetry
}

// NewUpdateChannelCommand creates the command.
func NewUpdateChannelCommand(service channelService, telemetry Telemetry) *UpdateChannelCommand {
	return &UpdateChannelCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateChannelInput] = (*UpdateChannelCommand)(nil)

// Execute applies the channel update.
func (c *UpdateChannelCommand) Execute(ctx context.Context, msg UpdateChannelInput) error {
	if c.service == nil {
		return errors.New("update channel command requires service")
	}
	if msg.Channel == "" {
		return errors.New("update channel command requires channel type")
	}
	cfg, err := c.service.UpdateChannel(ctx, msg.WidgetID, msg.Channel, msg.Update)
	if err != nil {
		recordResult(ctx, c.telemetry, CommandUpdateChannel, err, map[string]any{
			"widget_id": msg.WidgetID,
			"channel":   string(msg.Channel),
		})
		return err
	}
	if msg.Result != nil {
		*msg.Result = cfg
	}
	recordResult(ctx, c.telemetry, CommandUpdateChannel, nil, map[string]any{
		"widget_id": msg.WidgetID,
		"channel":   string(msg.Channel),
	})
	return nil
}

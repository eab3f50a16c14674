package commands

import (
	"context"
	"errors"
	"io"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// ImportProjectInput carries an uploaded project file. Size may be -1 when
// the transport does not know it.
type ImportProjectInput struct {
	Filename string
	Size     int64
	Body     io.Reader
	Result   *hub.WidgetConfig
}

type importService interface {
	ImportProject(ctx context.Context, filename string, size int64, r io.Reader) (hub.WidgetConfig, error)
}

// ImportProjectCommand turns a project file into a new widget.
type ImportProjectCommand struct {
	service   importService
	telemetry Telemetry
}

// NewImportProjectCommand creates the command.
func NewImportProjectCommand(service importService, telemetry Telemetry) *ImportProjectCommand {
	return &ImportProjectCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ImportProjectInput] = (*ImportProjectCommand)(nil)

// Execute imports the project.
func (c *ImportProjectCommand) Execute(ctx context.Context, msg ImportProjectInput) error {
	if c.service == nil {
		return errors.New("import command requires service")
	}
	cfg, err := c.service.ImportProject(ctx, msg.Filename, msg.Size, msg.Body)
	if err != nil {
		recordResult(ctx, c.telemetry, CommandImport, err, map[string]any{"filename": msg.Filename})
		return err
	}
	if msg.Result != nil {
		*msg.Result = cfg
	}
	recordResult(ctx, c.telemetry, CommandImport, nil, map[string]any{
		"widget_id": cfg.ID,
		"filename":  msg.Filename,
	})
	return nil
}

package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// ScriptInput selects a widget and the delivery mode of its script.
type ScriptInput struct {
	WidgetID string       `json:"widget_id"`
	Mode     hub.EmitMode `json:"mode"`
}

// ExportResult is a downloadable project file.
type ExportResult struct {
	Filename string
	Data     []byte
}

type styleService interface {
	ResolveStyle(ctx context.Context, id string) (hub.ResolvedStyle, error)
}

type scriptService interface {
	EmitScript(ctx context.Context, id string, mode hub.EmitMode) (string, error)
}

type demoService interface {
	EmitDemo(ctx context.Context, id string) (string, error)
}

type exportService interface {
	ExportProject(ctx context.Context, id string) ([]byte, string, error)
}

// StyleQuery resolves the visual style of a widget.
type StyleQuery struct {
	service styleService
}

// NewStyleQuery builds the query.
func NewStyleQuery(service styleService) *StyleQuery {
	return &StyleQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, hub.ResolvedStyle] = (*StyleQuery)(nil)

// Query resolves the style.
func (q *StyleQuery) Query(ctx context.Context, input WidgetInput) (hub.ResolvedStyle, error) {
	if q.service == nil {
		return hub.ResolvedStyle{}, errors.New("style query requires service")
	}
	return q.service.ResolveStyle(ctx, input.WidgetID)
}

// ScriptQuery emits the self-contained widget script.
type ScriptQuery struct {
	service scriptService
}

// NewScriptQuery builds the query.
func NewScriptQuery(service scriptService) *ScriptQuery {
	return &ScriptQuery{service: service}
}

var _ gocommand.Querier[ScriptInput, string] = (*ScriptQuery)(nil)

// Query emits the script. An empty mode means embed.
func (q *ScriptQuery) Query(ctx context.Context, input ScriptInput) (string, error) {
	if q.service == nil {
		return "", errors.New("script query requires service")
	}
	mode := input.Mode
	if mode == "" {
		mode = hub.ModeEmbed
	}
	return q.service.EmitScript(ctx, input.WidgetID, mode)
}

// DemoQuery renders the standalone demo page.
type DemoQuery struct {
	service demoService
}

// NewDemoQuery builds the query.
func NewDemoQuery(service demoService) *DemoQuery {
	return &DemoQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, string] = (*DemoQuery)(nil)

// Query renders the demo page.
func (q *DemoQuery) Query(ctx context.Context, input WidgetInput) (string, error) {
	if q.service == nil {
		return "", errors.New("demo query requires service")
	}
	return q.service.EmitDemo(ctx, input.WidgetID)
}

// ExportQuery serializes a widget as a project file.
type ExportQuery struct {
	service exportService
}

// NewExportQuery builds the query.
func NewExportQuery(service exportService) *ExportQuery {
	return &ExportQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, ExportResult] = (*ExportQuery)(nil)

// Query exports the widget.
func (q *ExportQuery) Query(ctx context.Context, input WidgetInput) (ExportResult, error) {
	if q.service == nil {
		return ExportResult{}, errors.New("export query requires service")
	}
	data, filename, err := q.service.ExportProject(ctx, input.WidgetID)
	if err != nil {
		return ExportResult{}, err
	}
	return ExportResult{Filename: filename, Data: data}, nil
}

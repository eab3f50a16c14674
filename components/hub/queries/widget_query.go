package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// WidgetInput identifies a widget.
type WidgetInput struct {
	WidgetID string `json:"widget_id"`
}

// ListWidgetsInput is the empty input of ListWidgetsQuery.
type ListWidgetsInput struct{}

type widgetService interface {
	Widget(ctx context.Context, id string) (hub.WidgetConfig, error)
}

type listService interface {
	ListWidgets(ctx context.Context) ([]hub.WidgetConfig, error)
}

// WidgetQuery loads a single widget.
type WidgetQuery struct {
	service widgetService
}

// NewWidgetQuery builds the query.
func NewWidgetQuery(service widgetService) *WidgetQuery {
	return &WidgetQuery{service: service}
}

var _ gocommand.Querier[WidgetInput, hub.WidgetConfig] = (*WidgetQuery)(nil)

// Query returns the stored widget.
func (q *WidgetQuery) Query(ctx context.Context, input WidgetInput) (hub.WidgetConfig, error) {
	if q.service == nil {
		return hub.WidgetConfig{}, errors.New("widget query requires service")
	}
	return q.service.Widget(ctx, input.WidgetID)
}

// ListWidgetsQuery returns every widget in the hub.
type ListWidgetsQuery struct {
	service listService
}

// NewListWidgetsQuery builds the query.
func NewListWidgetsQuery(service listService) *ListWidgetsQuery {
	return &ListWidgetsQuery{service: service}
}

var _ gocommand.Querier[ListWidgetsInput, []hub.WidgetConfig] = (*ListWidgetsQuery)(nil)

// Query lists widgets.
func (q *ListWidgetsQuery) Query(ctx context.Context, _ ListWidgetsInput) ([]hub.WidgetConfig, error) {
	if q.service == nil {
		return nil, errors.New("list query requires service")
	}
	return q.service.ListWidgets(ctx)
}

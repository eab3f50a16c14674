package hub

import (
	"context"
	"strings"

	"github.com/goliatone/go-contact-hub/pkg/activity"
)

// Activity verbs emitted by Service. Every event targets one widget.
const (
	VerbWidgetCreate  = "hub.widget.create"
	VerbWidgetUpdate  = "hub.widget.update"
	VerbWidgetDelete  = "hub.widget.delete"
	VerbChannelUpdate = "hub.channel.update"
	VerbProjectImport = "hub.project.import"
	VerbWidgetSubmit  = "hub.widget.submit"
)

const activityObjectType = "widget"

// ActivityContext identifies who touched a widget: the editor acting in the
// admin, the account they act for and the tenant owning the hub.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

// IsZero reports whether no identifier is set.
func (a ActivityContext) IsZero() bool {
	return a.ActorID == "" && a.UserID == "" && a.TenantID == ""
}

// ContextWithActivity attaches meta to ctx. Blank identifiers are ignored, and
// identifiers already on ctx survive unless meta replaces them.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	meta = ActivityContext{
		ActorID:  strings.TrimSpace(meta.ActorID),
		UserID:   strings.TrimSpace(meta.UserID),
		TenantID: strings.TrimSpace(meta.TenantID),
	}
	if meta.IsZero() {
		return ctx
	}
	current := ActivityFromContext(ctx)
	if meta.ActorID != "" {
		current.ActorID = meta.ActorID
	}
	if meta.UserID != "" {
		current.UserID = meta.UserID
	}
	if meta.TenantID != "" {
		current.TenantID = meta.TenantID
	}
	return context.WithValue(ctx, activityContextKey{}, current)
}

// ActivityFromContext returns the identifiers stored by ContextWithActivity.
func ActivityFromContext(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	meta, _ := ctx.Value(activityContextKey{}).(ActivityContext)
	return meta
}

type activityContextKey struct{}

// widgetEvent builds the activity event for verb on widgetID. The definition
// code drops the "hub." prefix and joins subject and action with a colon, so
// hub.project.import becomes project:import.
func widgetEvent(ctx context.Context, verb, widgetID string, metadata map[string]any) activity.Event {
	actor := ActivityFromContext(ctx)
	code := strings.TrimPrefix(verb, "hub.")
	if i := strings.LastIndex(code, "."); i >= 0 {
		code = code[:i] + ":" + code[i+1:]
	}
	return activity.Event{
		Verb:           verb,
		ActorID:        actor.ActorID,
		UserID:         actor.UserID,
		TenantID:       actor.TenantID,
		ObjectType:     activityObjectType,
		ObjectID:       widgetID,
		DefinitionCode: code,
		Metadata:       metadata,
	}
}

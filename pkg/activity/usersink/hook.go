package usersink

import (
	"context"
	"strings"

	"github.com/goliatone/go-contact-hub/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Sink is the go-users activity sink contract.
type Sink interface {
	Log(ctx context.Context, record types.ActivityRecord) error
}

// Hook maps hub activity events into go-users activity records.
type Hook struct {
	Sink Sink
}

var _ activity.Hook = Hook{}

// Notify converts and logs the event. Events without a verb are skipped.
func (h Hook) Notify(ctx context.Context, evt activity.Event) error {
	if h.Sink == nil || strings.TrimSpace(evt.Verb) == "" {
		return nil
	}
	evt = activity.NormalizeEvent(evt)
	data := make(map[string]any, len(evt.Metadata)+5)
	for k, v := range evt.Metadata {
		data[k] = v
	}
	if evt.DefinitionCode != "" {
		data["definition_code"] = evt.DefinitionCode
	}
	if len(evt.Recipients) > 0 {
		data["recipients"] = evt.Recipients
	}
	channel := evt.Channel
	if channel == "" {
		channel = activity.DefaultChannel
	}
	return h.Sink.Log(ctx, types.ActivityRecord{
		ActorID:    identity(data, "actor_ref", evt.ActorID),
		UserID:     identity(data, "user_ref", evt.UserID),
		TenantID:   identity(data, "tenant_ref", evt.TenantID),
		Verb:       evt.Verb,
		ObjectType: evt.ObjectType,
		ObjectID:   evt.ObjectID,
		Channel:    channel,
		Data:       data,
		OccurredAt: evt.OccurredAt,
	})
}

// identity parses value as a UUID. Hub actors often arrive as plain header
// values such as "editor-7"; those keep uuid.Nil and are stored under key.
func identity(data map[string]any, key, value string) uuid.UUID {
	if value == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		data[key] = value
		return uuid.Nil
	}
	return id
}

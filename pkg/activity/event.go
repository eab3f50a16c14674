package activity

import (
	"strings"
	"time"
)

// DefaultChannel labels events emitted by the contact hub.
const DefaultChannel = "hub"

// Event describes something that happened to a widget or a submission.
type Event struct {
	Verb           string
	ActorID        string
	UserID         string
	TenantID       string
	ObjectType     string
	ObjectID       string
	Channel        string
	DefinitionCode string
	Recipients     []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// Valid reports whether the event carries the minimum identifying fields.
func (e Event) Valid() bool {
	return e.Verb != "" && e.ObjectType != "" && e.ObjectID != ""
}

// NormalizeEvent trims identifiers and clones reference fields so hooks can
// keep the event without sharing memory with the caller.
func NormalizeEvent(evt Event) Event {
	out := evt
	out.Verb = strings.TrimSpace(evt.Verb)
	out.ActorID = strings.TrimSpace(evt.ActorID)
	out.UserID = strings.TrimSpace(evt.UserID)
	out.TenantID = strings.TrimSpace(evt.TenantID)
	out.ObjectType = strings.TrimSpace(evt.ObjectType)
	out.ObjectID = strings.TrimSpace(evt.ObjectID)
	out.Channel = strings.TrimSpace(evt.Channel)
	out.DefinitionCode = strings.TrimSpace(evt.DefinitionCode)
	if len(evt.Metadata) > 0 {
		out.Metadata = make(map[string]any, len(evt.Metadata))
		for k, v := range evt.Metadata {
			out.Metadata[k] = v
		}
	}
	if len(evt.Recipients) > 0 {
		out.Recipients = append([]string(nil), evt.Recipients...)
	}
	if out.OccurredAt.IsZero() {
		out.OccurredAt = time.Now().UTC()
	}
	return out
}

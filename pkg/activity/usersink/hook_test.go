package usersink

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-contact-hub/pkg/activity"
	"github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

type recordingSink struct {
	records []types.ActivityRecord
	err     error
}

func (s *recordingSink) Log(_ context.Context, record types.ActivityRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestHookRecordsSubmission(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}

	at := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	tenantID := uuid.New()
	event := activity.Event{
		Verb:           "hub.widget.submit",
		TenantID:       tenantID.String(),
		ObjectType:     "widget",
		ObjectID:       "w-sales",
		DefinitionCode: "widget:submit",
		Metadata: map[string]any{
			"channel_type": "whatsapp",
			"preview":      false,
		},
		OccurredAt: at,
	}
	if err := hook.Notify(context.Background(), event); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if len(sink.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(sink.records))
	}
	record := sink.records[0]
	if record.Verb != "hub.widget.submit" || record.ObjectType != "widget" || record.ObjectID != "w-sales" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.TenantID != tenantID || record.ActorID != uuid.Nil {
		t.Fatalf("expected tenant %s and no actor, got %s %s", tenantID, record.TenantID, record.ActorID)
	}
	if record.Channel != activity.DefaultChannel || !record.OccurredAt.Equal(at) {
		t.Fatalf("expected hub channel at %v, got %q %v", at, record.Channel, record.OccurredAt)
	}
	if record.Data["definition_code"] != "widget:submit" || record.Data["channel_type"] != "whatsapp" {
		t.Fatalf("expected submission metadata, got %v", record.Data)
	}
}

func TestHookKeepsHeaderActorsAsReferences(t *testing.T) {
	sink := &recordingSink{}
	hook := Hook{Sink: sink}
	userID := uuid.New()

	err := hook.Notify(context.Background(), activity.Event{
		Verb:       "hub.project.import",
		ActorID:    "editor-7",
		UserID:     userID.String(),
		ObjectType: "widget",
		ObjectID:   "w-imported",
		Recipients: []string{"owner@example.com"},
		Metadata:   map[string]any{"filename": "sales-widget-project.json"},
	})
	if err != nil {
		t.Fatalf("notify: %v", err)
	}
	record := sink.records[0]
	if record.ActorID != uuid.Nil || record.Data["actor_ref"] != "editor-7" {
		t.Fatalf("expected actor reference in data, got %s %v", record.ActorID, record.Data)
	}
	if record.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, record.UserID)
	}
	if _, ok := record.Data["user_ref"]; ok {
		t.Fatalf("parsed ids should not be duplicated in data")
	}
	recipients, ok := record.Data["recipients"].([]string)
	if !ok || len(recipients) != 1 || recipients[0] != "owner@example.com" {
		t.Fatalf("expected recipients metadata, got %v", record.Data["recipients"])
	}
	if record.Data["filename"] != "sales-widget-project.json" {
		t.Fatalf("expected filename metadata, got %v", record.Data["filename"])
	}
}

func TestHookSkipsEventsWithoutVerb(t *testing.T) {
	sink := &recordingSink{}
	if err := (Hook{Sink: sink}).Notify(context.Background(), activity.Event{ObjectType: "widget", ObjectID: "w-1"}); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if err := (Hook{}).Notify(context.Background(), activity.Event{Verb: "hub.widget.delete"}); err != nil {
		t.Fatalf("nil sink notify: %v", err)
	}
	if len(sink.records) != 0 {
		t.Fatalf("expected no records, got %d", len(sink.records))
	}
}

func TestHookReturnsSinkError(t *testing.T) {
	sink := &recordingSink{err: errors.New("activity table locked")}
	err := Hook{Sink: sink}.Notify(context.Background(), activity.Event{Verb: "hub.widget.delete", ObjectType: "widget", ObjectID: "w-1"})
	if err == nil {
		t.Fatalf("expected sink error")
	}
}

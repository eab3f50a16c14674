package hub

import (
	"context"
	"errors"
)

// Telemetry event names recorded by Service. Widget and project events carry
// a widget_id; submission events add channel and outcome.
const (
	EventWidgetCreate          = "hub.widget.create"
	EventWidgetUpdate          = "hub.widget.update"
	EventWidgetDelete          = "hub.widget.delete"
	EventChannelUpdate         = "hub.channel.update"
	EventProjectImport         = "hub.project.import"
	EventProjectImportRejected = "hub.project.import_rejected"
	EventProjectExport         = "hub.project.export"
	EventScriptEmit            = "hub.script.emit"
	EventDemoEmit              = "hub.demo.emit"
	EventSubmissionSent        = "hub.submission.sent"
	EventSubmissionFailed      = "hub.submission.failed"
)

// Submission outcomes reported in the "outcome" payload key.
const (
	OutcomeSent         = "sent"
	OutcomeUnconfigured = "unconfigured"
	OutcomeInvalid      = "invalid"
	OutcomeAPIError     = "api_error"
	OutcomeNetworkError = "network_error"
	OutcomeError        = "error"
)

// Telemetry records hub events.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// TelemetryFunc adapts a function into Telemetry.
type TelemetryFunc func(ctx context.Context, event string, payload map[string]any)

// Record calls f.
func (f TelemetryFunc) Record(ctx context.Context, event string, payload map[string]any) {
	f(ctx, event, payload)
}

// Telemetries fans an event out, for example to metrics and a debug log.
type Telemetries []Telemetry

// Record forwards the event to every non nil recorder.
func (t Telemetries) Record(ctx context.Context, event string, payload map[string]any) {
	for _, rec := range t {
		if rec != nil {
			rec.Record(ctx, event, payload)
		}
	}
}

// SubmissionOutcome classifies the result of a relay attempt.
func SubmissionOutcome(err error) string {
	var apiErr *APIError
	var netErr *NetworkError
	switch {
	case err == nil:
		return OutcomeSent
	case errors.Is(err, ErrMissingCredentials):
		return OutcomeUnconfigured
	case errors.As(err, &apiErr):
		return OutcomeAPIError
	case errors.As(err, &netErr):
		return OutcomeNetworkError
	case IsValidation(err):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

func submissionPayload(widgetID string, channel ChannelType, err error) map[string]any {
	payload := map[string]any{
		"widget_id": widgetID,
		"channel":   string(channel),
		"outcome":   SubmissionOutcome(err),
	}
	if err != nil {
		payload["status"] = StatusCode(err)
	}
	return payload
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

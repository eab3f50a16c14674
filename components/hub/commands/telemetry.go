package commands

import (
	"context"
	"errors"

	hub "github.com/goliatone/go-contact-hub/components/hub"
)

// Command names used in telemetry. A run records "hub.command.<name>" when
// it succeeds and "hub.command.<name>_failed" when the service rejects it.
const (
	CommandCreate        = "create"
	CommandUpdate        = "update"
	CommandUpdateChannel = "update_channel"
	CommandDelete        = "delete"
	CommandImport        = "import"
	CommandSubmit        = "submit"
)

// Telemetry receives one event per command run. Every payload names the
// command; failures add the HTTP status and error code transports answer with.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

// CommandEvent returns the event name recorded for a command run.
func CommandEvent(command string, failed bool) string {
	if failed {
		return "hub.command." + command + "_failed"
	}
	return "hub.command." + command
}

func recordResult(ctx context.Context, t Telemetry, command string, err error, payload map[string]any) {
	if payload == nil {
		payload = make(map[string]any, 3)
	}
	payload["command"] = command
	if err == nil {
		t.Record(ctx, CommandEvent(command, false), payload)
		return
	}
	payload["status"] = hub.StatusCode(err)
	var coded interface{ ErrCode() string }
	if errors.As(err, &coded) {
		payload["code"] = coded.ErrCode()
	}
	t.Record(ctx, CommandEvent(command, true), payload)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

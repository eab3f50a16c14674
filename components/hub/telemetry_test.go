package hub

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionOutcome(t *testing.T) {
	cases := map[string]struct {
		err  error
		want string
	}{
		"sent":          {nil, OutcomeSent},
		"unconfigured":  {fmt.Errorf("relay: %w", ErrMissingCredentials), OutcomeUnconfigured},
		"api error":     {&APIError{Status: 400, Description: "Bad Request: chat not found"}, OutcomeAPIError},
		"network error": {&NetworkError{Err: errors.New("dial tcp: timeout")}, OutcomeNetworkError},
		"invalid":       {newValidationError("contact", "required", nil), OutcomeInvalid},
		"other":         {errors.New("boom"), OutcomeError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, SubmissionOutcome(tc.err))
		})
	}
}

func TestTelemetriesFanOut(t *testing.T) {
	var got []string
	rec := TelemetryFunc(func(_ context.Context, event string, payload map[string]any) {
		got = append(got, fmt.Sprintf("%s:%v", event, payload["widget_id"]))
	})
	Telemetries{rec, nil, rec}.Record(context.Background(), EventWidgetCreate, map[string]any{"widget_id": "w-1"})
	assert.Equal(t, []string{"hub.widget.create:w-1", "hub.widget.create:w-1"}, got)
}

func TestServiceRecordsSubmissionOutcomes(t *testing.T) {
	type recorded struct {
		event   string
		payload map[string]any
	}
	var events []recorded
	telemetry := TelemetryFunc(func(_ context.Context, event string, payload map[string]any) {
		if event == EventSubmissionSent || event == EventSubmissionFailed {
			events = append(events, recorded{event, payload})
		}
	})
	svc := newTestService(t, Options{
		Telemetry: telemetry,
		Transport: NewRelay(&countingTransport{}, NewSimulatedTransport(0)),
	})
	ctx := context.Background()
	cfg, err := svc.CreateWidget(ctx, CreateWidgetRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.Submit(ctx, SubmitRequest{WidgetID: cfg.ID, Channel: ChannelGmail, Contact: "jane", Message: "hi", Preview: true}))
	require.Error(t, svc.Submit(ctx, SubmitRequest{WidgetID: cfg.ID, Channel: ChannelGmail, Contact: "jane", Message: "hi"}))

	require.Len(t, events, 2)
	assert.Equal(t, EventSubmissionSent, events[0].event)
	assert.Equal(t, OutcomeSent, events[0].payload["outcome"])
	assert.Equal(t, "gmail", events[0].payload["channel"])
	assert.Equal(t, EventSubmissionFailed, events[1].event)
	assert.Equal(t, OutcomeUnconfigured, events[1].payload["outcome"])
	assert.Equal(t, StatusCode(ErrMissingCredentials), events[1].payload["status"])
}

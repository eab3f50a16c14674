package hub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRunWithoutMessageField(t *testing.T) {
	cfg := testWidget()
	hidden := false
	cfg.ShowMessageField = &hidden
	sim := NewSimulatedTransport(0)
	session := NewSession(cfg, NewRelay(nil, sim), WithSessionClock(func() time.Time { return fixedAt }))

	state, err := session.Run(context.Background(),
		Action{Kind: ActionToggle},
		Action{Kind: ActionSelect, Channel: ChannelTelegram},
		Action{Kind: ActionInput, Value: "john@doe"},
		Action{Kind: ActionSubmit},
	)
	require.NoError(t, err)
	assert.Equal(t, StepSuccess, state.Step)
	require.Len(t, sim.Sent(), 1)
	assert.NotContains(t, sim.Sent()[0], "Message:")
	assert.Contains(t, sim.Sent()[0], "<code>@johndoe</code>")
	assert.Contains(t, sim.Sent()[0], "Fri, 01 Mar 2024 12:30:00 GMT")
}

func TestSessionEmbedWithoutCredentialsFails(t *testing.T) {
	cfg := testWidget()
	session := NewSession(cfg, nil, AsEmbed())
	state, err := session.Run(context.Background(),
		Action{Kind: ActionToggle},
		Action{Kind: ActionSelect, Channel: ChannelGmail},
		Action{Kind: ActionInput, Value: "someone"},
		Action{Kind: ActionMessage, Value: "hello"},
		Action{Kind: ActionSubmit},
	)
	require.NoError(t, err)
	assert.Equal(t, StepContact, state.Step)
	assert.Equal(t, DefaultPanelCopy().NotConfigured, state.Error)
	assert.False(t, state.Submitting)
}

func TestSessionTransportErrorSurfacesMessage(t *testing.T) {
	cfg := testWidget()
	cfg.BotToken = "t"
	cfg.ChatID = "c"
	live := &countingTransport{err: &NetworkError{Err: errors.New("dial")}}
	session := NewSession(cfg, NewRelay(live, nil))
	state, err := session.Run(context.Background(),
		Action{Kind: ActionToggle},
		Action{Kind: ActionSelect, Channel: ChannelWhatsApp},
		Action{Kind: ActionInput, Value: "+1 555"},
		Action{Kind: ActionMessage, Value: "hi"},
		Action{Kind: ActionSubmit},
	)
	require.NoError(t, err)
	assert.Equal(t, DefaultPanelCopy().NetworkFailed, state.Error)
	require.Len(t, live.calls, 1)
	assert.Equal(t, "+1555", live.calls[0].Contact)
	assert.Equal(t, "hi", live.calls[0].Message)
}

func TestSessionHistoryRecordsChanges(t *testing.T) {
	session := NewSession(testWidget(), nil)
	session.Dispatch(Action{Kind: ActionToggle})
	session.Dispatch(Action{Kind: ActionSubmit})
	session.Dispatch(Action{Kind: ActionClose})
	history := session.History()
	require.Len(t, history, 3)
	assert.Equal(t, StepClosed, history[0].Step)
	assert.Equal(t, StepChannels, history[1].Step)
	assert.Equal(t, 1, history[2].Attempt)
}

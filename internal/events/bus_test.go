package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/royalty-recon/internal/events"
)

type recordingNotifier struct {
	seen []events.Event
	err  error
}

func (r *recordingNotifier) Notify(_ context.Context, ev events.Event) error {
	r.seen = append(r.seen, ev)
	return r.err
}

func TestEmitFansOutToNotifiers(t *testing.T) {
	first := &recordingNotifier{}
	second := &recordingNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{first, second}}

	ev, err := bus.Emit(context.Background(), events.TopicSearchCompleted, "s-1", map[string]any{"isbn": "123"})
	require.NoError(t, err)
	require.Equal(t, events.TopicSearchCompleted, ev.Topic)
	require.Equal(t, "s-1", ev.SessionID)
	require.False(t, ev.OccurredAt.IsZero())
	require.Len(t, first.seen, 1)
	require.Len(t, second.seen, 1)
	require.JSONEq(t, `{"isbn":"123"}`, string(first.seen[0].Payload))
}

func TestEmitJoinsNotifierFailures(t *testing.T) {
	failing := &recordingNotifier{err: errors.New("sink down")}
	healthy := &recordingNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{failing, healthy}}

	_, err := bus.Emit(context.Background(), events.TopicRatesUpdated, "s-1", nil)
	require.Error(t, err)
	// The failure must not stop the fan-out.
	require.Len(t, healthy.seen, 1)
}

func TestEmitValidatesTopicAndSession(t *testing.T) {
	bus := &events.Bus{}
	_, err := bus.Emit(context.Background(), "", "s-1", nil)
	require.Error(t, err)
	_, err = bus.Emit(context.Background(), events.TopicRatesReset, " ", nil)
	require.Error(t, err)
}

func TestEmitPayloadEncoding(t *testing.T) {
	sink := &recordingNotifier{}
	bus := &events.Bus{Notifiers: []events.Notifier{sink}}

	_, err := bus.Emit(context.Background(), events.TopicRatesUpdated, "s-1", json.RawMessage(`{"updated":2}`))
	require.NoError(t, err)
	require.JSONEq(t, `{"updated":2}`, string(sink.seen[0].Payload))

	_, err = bus.Emit(context.Background(), events.TopicRatesReset, "s-1", nil)
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(sink.seen[1].Payload))

	_, err = bus.Emit(context.Background(), events.TopicRatesUpdated, "s-1", json.RawMessage(`not json`))
	require.Error(t, err)
}

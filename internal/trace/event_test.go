package trace

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderAndMulti(t *testing.T) {
	var a, b Recorder
	obs := Multi(&a, nil, &b)
	obs.Observe(Event{Time: 0, Kind: KindDispatch, PID: 1, Duration: 2})
	obs.Observe(Event{Time: 2, Kind: KindComplete, PID: 1})

	assert.Len(t, a.Events, 2)
	assert.Equal(t, a.Events, b.Events)
	assert.Equal(t, 1, a.Count(KindComplete))
	assert.Equal(t, 0, a.Count(KindDeadlineMiss))
}

func TestKindMarshalsAsText(t *testing.T) {
	data, err := json.Marshal(Event{Time: 3, Kind: KindDeadlineMiss, PID: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":3,"kind":"deadline_miss","pid":7}`, string(data))
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestKindRoundTripsThroughJSON(t *testing.T) {
	in := []Event{{Time: 0, Kind: KindIdle, Duration: 2}, {Time: 2, Kind: KindRelease, PID: 4}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	var out []Event
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("nap")))
}

func TestLogObserverSkipsIdle(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := NewLogObserver(l, "edf")

	obs.Observe(Event{Time: 0, Kind: KindIdle})
	assert.Zero(t, buf.Len())

	obs.Observe(Event{Time: 4, Kind: KindDeadlineMiss, PID: 2})
	assert.Contains(t, buf.String(), "kind=deadline_miss")
	assert.Contains(t, buf.String(), "algorithm=edf")
}

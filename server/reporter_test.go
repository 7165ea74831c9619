package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities/metrics"
	"github.com/mergington/activities/registry"
)

func TestRosterReporter_Run(t *testing.T) {
	received := make(chan []prompb.TimeSeries, 1)
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		decoded, err := snappy.Decode(nil, body)
		require.NoError(t, err)

		var writeReq prompb.WriteRequest
		require.NoError(t, proto.Unmarshal(decoded, &writeReq))

		received <- writeReq.Timeseries
		w.WriteHeader(http.StatusOK)
	}))
	defer remote.Close()

	reg := registry.New([]registry.Activity{
		{
			Name:            "Chess Club",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
	})
	pusher := metrics.NewPusher(metrics.PushConfig{URL: remote.URL, Prefix: "activities"})
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	reporter := NewRosterReporter(reg, pusher, logger)
	require.NoError(t, reporter.Run(context.Background()))

	timeseries := <-received
	require.Len(t, timeseries, 2)

	values := make(map[string]float64, len(timeseries))
	for _, ts := range timeseries {
		var name, activity string
		for _, l := range ts.Labels {
			switch l.Name {
			case "__name__":
				name = l.Value
			case "activity":
				activity = l.Value
			}
		}
		require.Len(t, ts.Samples, 1)
		assert.Equal(t, "Chess Club", activity)
		values[name] = ts.Samples[0].Value
	}

	assert.Equal(t, 2.0, values["activities_participants"])
	assert.Equal(t, 12.0, values["activities_max_participants"])
}

func TestRosterReporter_RunPushError(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer remote.Close()

	reg := registry.New(registry.DefaultSeed())
	pusher := metrics.NewPusher(metrics.PushConfig{URL: remote.URL})
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	reporter := NewRosterReporter(reg, pusher, logger)
	assert.Error(t, reporter.Run(context.Background()))
}

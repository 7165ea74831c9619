package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/snappy"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/prometheus/prompb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mergington/activities/registry"
)

type fakeSnapshotter struct {
	activities map[string]registry.Activity
}

func (f *fakeSnapshotter) Snapshot() map[string]registry.Activity {
	return f.activities
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	handler := promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetrics_Counters(t *testing.T) {
	m := New(&fakeSnapshotter{})

	m.Signups.WithLabelValues("Chess Club").Inc()
	m.Signups.WithLabelValues("Chess Club").Inc()
	m.Unregisters.WithLabelValues("Chess Club").Inc()
	m.Rejections.WithLabelValues("activity_not_found").Inc()

	body := scrape(t, m)
	assert.Contains(t, body, `activities_signups_total{activity="Chess Club"} 2`)
	assert.Contains(t, body, `activities_unregisters_total{activity="Chess Club"} 1`)
	assert.Contains(t, body, `activities_rejections_total{reason="activity_not_found"} 1`)
}

func TestMetrics_RosterGauges(t *testing.T) {
	snapshotter := &fakeSnapshotter{
		activities: map[string]registry.Activity{
			"Chess Club": {
				Name:            "Chess Club",
				MaxParticipants: 12,
				Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
			},
		},
	}
	m := New(snapshotter)

	body := scrape(t, m)
	assert.Contains(t, body, `activities_participants{activity="Chess Club"} 2`)
	assert.Contains(t, body, `activities_max_participants{activity="Chess Club"} 12`)

	// Gauges track the live snapshot, not a cached value.
	a := snapshotter.activities["Chess Club"]
	a.Participants = append(a.Participants, "testuser@mergington.edu")
	snapshotter.activities["Chess Club"] = a

	body = scrape(t, m)
	assert.Contains(t, body, `activities_participants{activity="Chess Club"} 3`)
}

func TestPusher_Push(t *testing.T) {
	receivedMetrics := make(chan []prompb.TimeSeries, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "snappy", r.Header.Get("Content-Encoding"))
		assert.Equal(t, "application/x-protobuf", r.Header.Get("Content-Type"))
		assert.Equal(t, "0.1.0", r.Header.Get("X-Prometheus-Remote-Write-Version"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		decoded, err := snappy.Decode(nil, body)
		require.NoError(t, err)

		var writeReq prompb.WriteRequest
		require.NoError(t, proto.Unmarshal(decoded, &writeReq))

		receivedMetrics <- writeReq.Timeseries
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	pusher := NewPusher(PushConfig{
		URL:      server.URL,
		Prefix:   "activities",
		Job:      "activities-server",
		Instance: "testhost",
	})

	err := pusher.Push(context.Background(), Metric{
		Name:   "participants",
		Value:  3,
		Labels: map[string]string{"activity": "Chess Club"},
	})
	require.NoError(t, err)

	select {
	case received := <-receivedMetrics:
		require.Len(t, received, 1)
		ts := received[0]

		findLabel := func(labels []prompb.Label, name string) string {
			for _, l := range labels {
				if l.Name == name {
					return l.Value
				}
			}
			return ""
		}

		assert.Equal(t, "activities_participants", findLabel(ts.Labels, "__name__"))
		assert.Equal(t, "activities-server", findLabel(ts.Labels, "job"))
		assert.Equal(t, "testhost", findLabel(ts.Labels, "instance"))
		assert.Equal(t, "Chess Club", findLabel(ts.Labels, "activity"))

		require.Len(t, ts.Samples, 1)
		assert.Equal(t, 3.0, ts.Samples[0].Value)

	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for metrics to be received")
	}
}

func TestPusher_Push_NoMetrics(t *testing.T) {
	pusher := NewPusher(PushConfig{URL: "http://localhost:8428"})
	assert.NoError(t, pusher.Push(context.Background()))
}

func TestPusher_Push_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "out of disk", http.StatusInternalServerError)
	}))
	defer server.Close()

	pusher := NewPusher(PushConfig{URL: server.URL})

	err := pusher.Push(context.Background(), Metric{Name: "participants", Value: 1})
	assert.ErrorContains(t, err, "unexpected status 500")
}

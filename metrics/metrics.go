// Package metrics provides Prometheus instrumentation for the
// activities service.
//
// Signup traffic is counted as it happens; roster sizes are read from
// the registry at scrape time. The same numbers can also be pushed to a
// VictoriaMetrics/Prometheus remote write endpoint via Pusher.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mergington/activities/registry"
)

// Snapshotter provides the current activity rosters.
type Snapshotter interface {
	Snapshot() map[string]registry.Activity
}

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	Signups     *prometheus.CounterVec
	Unregisters *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
}

// New creates the service metrics and registers them, together with a
// roster collector reading from the given snapshotter, on a fresh
// Prometheus registry.
func New(snapshotter Snapshotter) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_signups_total",
			Help: "Number of successful signups per activity.",
		}, []string{"activity"}),
		Unregisters: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_unregisters_total",
			Help: "Number of successful unregistrations per activity.",
		}, []string{"activity"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "activities_rejections_total",
			Help: "Number of rejected signup/unregister requests by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(m.Signups, m.Unregisters, m.Rejections)
	m.registry.MustRegister(newRosterCollector(snapshotter))

	return m
}

// Registry returns the Prometheus registry backing the /metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// rosterCollector exposes per-activity roster gauges. Values are read
// from the registry at scrape time instead of being tracked separately,
// so they can never drift from the actual rosters.
type rosterCollector struct {
	snapshotter  Snapshotter
	participants *prometheus.Desc
	capacity     *prometheus.Desc
}

func newRosterCollector(snapshotter Snapshotter) *rosterCollector {
	return &rosterCollector{
		snapshotter: snapshotter,
		participants: prometheus.NewDesc(
			"activities_participants",
			"Current number of participants per activity.",
			[]string{"activity"}, nil,
		),
		capacity: prometheus.NewDesc(
			"activities_max_participants",
			"Advisory participant capacity per activity.",
			[]string{"activity"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *rosterCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.participants
	ch <- c.capacity
}

// Collect implements prometheus.Collector.
func (c *rosterCollector) Collect(ch chan<- prometheus.Metric) {
	for name, a := range c.snapshotter.Snapshot() {
		ch <- prometheus.MustNewConstMetric(
			c.participants, prometheus.GaugeValue, float64(len(a.Participants)), name)
		ch <- prometheus.MustNewConstMetric(
			c.capacity, prometheus.GaugeValue, float64(a.MaxParticipants), name)
	}
}

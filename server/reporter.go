package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/mergington/activities/metrics"
)

// RosterReporter pushes per-activity roster gauges to a remote write
// endpoint. It implements cron.Runnable so it can be driven by the
// server's cron trigger.
type RosterReporter struct {
	lister metrics.Snapshotter
	pusher *metrics.Pusher
	logger *slog.Logger
}

// NewRosterReporter creates a RosterReporter reading from the given
// registry and pushing through the given pusher.
func NewRosterReporter(lister metrics.Snapshotter, pusher *metrics.Pusher, logger *slog.Logger) *RosterReporter {
	return &RosterReporter{
		lister: lister,
		pusher: pusher,
		logger: logger,
	}
}

// Run snapshots the registry and pushes one participants gauge and one
// capacity gauge per activity.
func (r *RosterReporter) Run(ctx context.Context) error {
	snap := r.lister.Snapshot()
	now := time.Now()

	ms := make([]metrics.Metric, 0, 2*len(snap))
	for name, a := range snap {
		ms = append(ms,
			metrics.Metric{
				Name:      "participants",
				Value:     float64(len(a.Participants)),
				Labels:    map[string]string{"activity": name},
				Timestamp: now,
			},
			metrics.Metric{
				Name:      "max_participants",
				Value:     float64(a.MaxParticipants),
				Labels:    map[string]string{"activity": name},
				Timestamp: now,
			},
		)
	}

	if err := r.pusher.Push(ctx, ms...); err != nil {
		return err
	}

	r.logger.Debug("roster metrics pushed", "activities", len(snap))
	return nil
}

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activitiesCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "energy_service",
		Subsystem: "catalog",
		Name:      "activities_created_total",
		Help:      "Number of catalog activities created, by kind.",
	}, []string{"kind"})
	activitiesDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "energy_service",
		Subsystem: "catalog",
		Name:      "activities_deleted_total",
		Help:      "Number of catalog activities deleted.",
	})
	snapshotSavedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "energy_service",
		Subsystem: "snapshots",
		Name:      "last_snapshot_saved_timestamp_seconds",
		Help:      "Unix timestamp of the most recent daily snapshot write.",
	})
)

func init() {
	prometheus.MustRegister(activitiesCreated, activitiesDeleted, snapshotSavedGauge)
}

// RecordActivityCreated increments the per-kind creation counter.
func RecordActivityCreated(kind string) {
	activitiesCreated.WithLabelValues(kind).Inc()
}

// RecordActivityDeleted increments the deletion counter.
func RecordActivityDeleted() {
	activitiesDeleted.Inc()
}

// RecordSnapshotSaved updates the snapshot watermark gauge.
func RecordSnapshotSaved() {
	snapshotSavedGauge.Set(float64(time.Now().Unix()))
}

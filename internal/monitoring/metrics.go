// Package monitoring exposes Prometheus metrics for the scheduling
// service.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_operations_total",
			Help: "Scheduling operations by outcome",
		},
		[]string{"operation", "status"},
	)

	scheduledEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_events_scheduled",
			Help: "Number of events currently in the catalog",
		},
	)

	notifications = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scheduler_notifications_total",
			Help: "Cascade announcements sent",
		},
	)
)

// RecordOperation counts one scheduling operation with its outcome.
func RecordOperation(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "rejected"
	}
	operations.WithLabelValues(operation, status).Inc()
}

// SetEventCount updates the scheduled-events gauge.
func SetEventCount(n int) {
	scheduledEvents.Set(float64(n))
}

// RecordNotification counts one cascade announcement.
func RecordNotification() {
	notifications.Inc()
}

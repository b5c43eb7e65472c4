package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testdrive",
			Name:      "booking_created_total",
			Help:      "Count of test-drive bookings created.",
		},
	)

	bookingConflict = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testdrive",
			Name:      "booking_conflict_total",
			Help:      "Count of booking attempts rejected because the slot was taken.",
		},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "testdrive",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled.",
		},
	)

	statusOverride = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "testdrive",
			Name:      "status_override_total",
			Help:      "Count of administrative status overwrites by target status.",
		},
		[]string{"status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingConflict, bookingCancelled, statusOverride)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingConflict() {
	bookingConflict.Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncStatusOverride(status string) {
	statusOverride.WithLabelValues(status).Inc()
}

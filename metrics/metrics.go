package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_booking",
			Name:      "bookings_created_total",
			Help:      "Bookings created, by service.",
		},
		[]string{"service"},
	)

	bookingsCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel_booking",
			Name:      "bookings_cancelled_total",
			Help:      "Bookings cancelled.",
		},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel_booking",
			Name:      "slot_conflicts_total",
			Help:      "Create or update attempts rejected because the slot was taken.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingsCancelled, slotConflicts)
	})
}

// IncBookingsCreated increments the created counter for a service label.
func IncBookingsCreated(service string) {
	bookingsCreated.WithLabelValues(service).Inc()
}

func IncBookingsCancelled() {
	bookingsCancelled.Inc()
}

func IncSlotConflicts() {
	slotConflicts.Inc()
}

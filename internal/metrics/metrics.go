package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	StatusOK          = "ok"
	StatusEmpty       = "empty"
	StatusInvalid     = "invalid"
	StatusConflict    = "conflict"
	StatusRejected    = "rejected"
	StatusRateLimited = "rate_limited"
	StatusError       = "error"
)

// BookingMetrics counts the slot picker backend traffic by outcome.
type BookingMetrics struct {
	availabilityTotal *prometheus.CounterVec
	bookingsTotal     *prometheus.CounterVec
	adminSessions     *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotpicker",
			Subsystem: "availability",
			Name:      "lookups_total",
			Help:      "Available-times lookups by outcome",
		}, []string{"status"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotpicker",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Booking attempts by outcome",
		}, []string{"status"}),
		adminSessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slotpicker",
			Subsystem: "admin",
			Name:      "sessions_total",
			Help:      "Admin session attempts by outcome",
		}, []string{"status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityTotal, m.bookingsTotal, m.adminSessions)
	return m
}

func (m *BookingMetrics) ObserveAvailability(status string) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveBooking(status string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(status).Inc()
}

func (m *BookingMetrics) ObserveAdminSession(status string) {
	if m == nil {
		return
	}
	m.adminSessions.WithLabelValues(status).Inc()
}

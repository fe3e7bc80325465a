package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the booking counters. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	AppointmentsCreated prometheus.Counter
	CapacityRejections  prometheus.Counter
	PaymentsRecorded    *prometheus.CounterVec
	GatewayCallbacks    *prometheus.CounterVec
	Notifications       *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		AppointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "appointments_created_total",
			Help:      "Appointments successfully booked",
		}),
		CapacityRejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_rejections_total",
			Help:      "Bookings rejected because the slot was full",
		}),
		PaymentsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payments_recorded_total",
			Help:      "Payments written to the ledger",
		}, []string{"method"}),
		GatewayCallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_callbacks_total",
			Help:      "Payment gateway callbacks by outcome",
		}, []string{"result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries by outcome",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.AppointmentsCreated,
		m.CapacityRejections,
		m.PaymentsRecorded,
		m.GatewayCallbacks,
		m.Notifications,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) AppointmentCreated() {
	if m != nil {
		m.AppointmentsCreated.Inc()
	}
}

func (m *Metrics) CapacityRejected() {
	if m != nil {
		m.CapacityRejections.Inc()
	}
}

func (m *Metrics) PaymentRecorded(method string) {
	if m != nil {
		m.PaymentsRecorded.WithLabelValues(method).Inc()
	}
}

func (m *Metrics) GatewayCallback(result string) {
	if m != nil {
		m.GatewayCallbacks.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) Notification(result string) {
	if m != nil {
		m.Notifications.WithLabelValues(result).Inc()
	}
}

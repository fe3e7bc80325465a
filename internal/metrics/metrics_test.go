package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New("spa")

	m.AppointmentCreated()
	m.AppointmentCreated()
	m.CapacityRejected()
	m.PaymentRecorded("cash")
	m.GatewayCallback("applied")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppointmentsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CapacityRejections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentsRecorded.WithLabelValues("cash")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewayCallbacks.WithLabelValues("applied")))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.AppointmentCreated()
		m.CapacityRejected()
		m.PaymentRecorded("cash")
		m.GatewayCallback("applied")
		m.Notification("sent")
	})
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New("spa")
	m.AppointmentCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "spa_appointments_created_total 1"))
}

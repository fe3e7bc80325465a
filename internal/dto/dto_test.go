package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

func TestAppointmentMapping(t *testing.T) {
	ap := &models.Appointment{
		ID:              7,
		AppointmentDate: "2026-10-20",
		AppointmentTime: "09:30:00",
		PaymentMethod:   "e-wallet",
		Services: []models.AppointmentService{
			{ID: 3, ServiceID: 1, ServiceName: "Bath", Price: 200000},
		},
	}

	got := AppointmentWithPayments(ap, []models.Payment{{ID: 12, AppointmentID: 7, PaymentMethod: "cash"}})

	assert.Equal(t, "APT-0007", got.Code)
	assert.Equal(t, "09:30", got.AppointmentTime)
	assert.Equal(t, "VNPAY", got.MethodLabel)
	assert.Equal(t, "AS-0003", got.Services[0].Code)
	assert.Equal(t, "PAY-0012", got.Payments[0].Code)
	assert.Equal(t, "APT-0007", got.Payments[0].AppointmentCode)
	assert.Equal(t, "Cash", got.Payments[0].MethodLabel)
}

func TestEmptyListsEncodeAsArrays(t *testing.T) {
	assert.NotNil(t, Appointments(nil))
	assert.NotNil(t, Appointment(&models.Appointment{}).Services)
	assert.Equal(t, "STS-0002", TimeSlot(&models.TimeSlot{ID: 2}).Code)
}

package notification

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type sentMail struct {
	to, subject, body string
}

type fakeSender struct {
	mu   sync.Mutex
	err  error
	sent []sentMail
}

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func sampleAppointment() *models.Appointment {
	return &models.Appointment{
		ID:              7,
		PetName:         "Milo",
		PetType:         "dog",
		FullName:        "Nguyen Van A",
		PhoneNumber:     "0901234567",
		Email:           "a@example.com",
		AppointmentDate: "2025-06-01",
		AppointmentTime: "09:00:00",
		TotalAmount:     500000,
		Status:          "confirmed",
		PaymentStatus:   "paid",
		PaymentMethod:   "e-wallet",
		Services: []models.AppointmentService{
			{ServiceName: "Bath", Price: 200000},
			{ServiceName: "Haircut", Price: 300000},
		},
	}
}

func TestDispatcherDeliversRenderedNotice(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, zerolog.Nop(), nil, 4)

	Send(d, KindPaymentReceived, sampleAppointment())
	d.Close()

	require.Len(t, sender.sent, 1)
	mail := sender.sent[0]
	assert.Equal(t, "a@example.com", mail.to)
	assert.Equal(t, "Payment received for appointment APT-0007", mail.subject)
	assert.Contains(t, mail.body, "VNPAY")
	assert.Contains(t, mail.body, "500.000 VND")
	assert.Contains(t, mail.body, "09:00")
	assert.NotContains(t, mail.body, "e-wallet")
}

func TestDispatcherSwallowsSendFailures(t *testing.T) {
	var logs bytes.Buffer
	sender := &fakeSender{err: errors.New("smtp down")}
	d := NewDispatcher(sender, zerolog.New(&logs), nil, 4)

	assert.NotPanics(t, func() {
		Send(d, KindBookingConfirmation, sampleAppointment())
		d.Close()
	})
	assert.Empty(t, sender.sent)
	assert.Contains(t, logs.String(), "smtp down")
}

func TestSendSkipsAppointmentsWithoutEmail(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, zerolog.Nop(), nil, 4)

	ap := sampleAppointment()
	ap.Email = ""
	Send(d, KindBookingConfirmation, ap)
	d.Close()

	assert.Empty(t, sender.sent)
}

func TestRenderRejectsUnknownKind(t *testing.T) {
	_, _, err := Render(Notice{Kind: "nope"})
	assert.Error(t, err)
}

func TestFormatVND(t *testing.T) {
	assert.Equal(t, "0 VND", formatVND(0))
	assert.Equal(t, "950 VND", formatVND(950))
	assert.Equal(t, "1.000 VND", formatVND(1000))
	assert.Equal(t, "1.250.000 VND", formatVND(1250000))
}

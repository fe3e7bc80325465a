package notification

import (
	"context"

	dompay "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/validators"
)

type Kind string

const (
	KindBookingConfirmation Kind = "booking_confirmation"
	KindPaymentReceived     Kind = "payment_received"
	KindMethodChanged       Kind = "payment_method_changed"
	KindRescheduled         Kind = "appointment_rescheduled"
)

type ServiceLine struct {
	Name  string
	Price int64
}

// AppointmentView is the appointment as the customer sees it in an
// email. PaymentMethod holds the display label, not the stored value.
type AppointmentView struct {
	Code          string
	PetName       string
	PetType       string
	FullName      string
	PhoneNumber   string
	Date          string
	Time          string
	Services      []ServiceLine
	TotalAmount   int64
	PaymentMethod string
	Status        string
	PaymentStatus string
}

type Notice struct {
	Kind        Kind
	To          string
	Appointment AppointmentView
}

// Notifier accepts notices without blocking the caller. Delivery
// failures never reach the caller.
type Notifier interface {
	Notify(n Notice)
}

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

func ViewOf(ap *models.Appointment) AppointmentView {
	v := AppointmentView{
		Code:          ap.Code(),
		PetName:       ap.PetName,
		PetType:       ap.PetType,
		FullName:      ap.FullName,
		PhoneNumber:   ap.PhoneNumber,
		Date:          ap.AppointmentDate,
		Time:          validators.ShortTime(ap.AppointmentTime),
		TotalAmount:   ap.TotalAmount,
		PaymentMethod: dompay.Label(ap.PaymentMethod),
		Status:        ap.Status,
		PaymentStatus: ap.PaymentStatus,
	}
	for _, s := range ap.Services {
		v.Services = append(v.Services, ServiceLine{Name: s.ServiceName, Price: s.Price})
	}
	return v
}

// For builds a notice for the appointment, or returns false when the
// customer left no email.
func For(kind Kind, ap *models.Appointment) (Notice, bool) {
	if ap.Email == "" {
		return Notice{}, false
	}
	return Notice{Kind: kind, To: ap.Email, Appointment: ViewOf(ap)}, true
}

// Send is a shortcut for For followed by Notify.
func Send(n Notifier, kind Kind, ap *models.Appointment) {
	if n == nil {
		return
	}
	if notice, ok := For(kind, ap); ok {
		n.Notify(notice)
	}
}

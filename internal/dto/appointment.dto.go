package dto

import (
	"time"

	dompay "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type AppointmentServiceDTO struct {
	Code      string `json:"code"`
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

type AppointmentDTO struct {
	ID     uint   `json:"id"`
	Code   string `json:"code"`
	UserID *uint  `json:"user_id"`

	PetName  string `json:"pet_name"`
	PetType  string `json:"pet_type"`
	PetBreed string `json:"pet_breed"`
	PetSize  string `json:"pet_size"`
	PetNotes string `json:"pet_notes"`

	AppointmentDate string `json:"appointment_date"`
	// HH:MM
	AppointmentTime string `json:"appointment_time"`

	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`

	TotalAmount   int64  `json:"total_amount"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	PaymentMethod string `json:"payment_method"`
	MethodLabel   string `json:"payment_method_label"`

	Services []AppointmentServiceDTO `json:"services"`
	Payments []PaymentDTO            `json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func Appointment(ap *models.Appointment) AppointmentDTO {
	out := AppointmentDTO{
		ID:              ap.ID,
		Code:            ap.Code(),
		UserID:          ap.UserID,
		PetName:         ap.PetName,
		PetType:         ap.PetType,
		PetBreed:        ap.PetBreed,
		PetSize:         ap.PetSize,
		PetNotes:        ap.PetNotes,
		AppointmentDate: ap.AppointmentDate,
		AppointmentTime: shortTime(ap.AppointmentTime),
		FullName:        ap.FullName,
		PhoneNumber:     ap.PhoneNumber,
		Email:           ap.Email,
		TotalAmount:     ap.TotalAmount,
		Status:          ap.Status,
		PaymentStatus:   ap.PaymentStatus,
		PaymentMethod:   ap.PaymentMethod,
		MethodLabel:     dompay.Label(ap.PaymentMethod),
		Services:        make([]AppointmentServiceDTO, 0, len(ap.Services)),
		CreatedAt:       ap.CreatedAt,
		UpdatedAt:       ap.UpdatedAt,
	}

	for _, s := range ap.Services {
		out.Services = append(out.Services, AppointmentServiceDTO{
			Code:      s.Code(),
			ServiceID: s.ServiceID,
			Name:      s.ServiceName,
			Price:     s.Price,
		})
	}
	return out
}

// AppointmentWithPayments includes the ledger, newest first.
func AppointmentWithPayments(ap *models.Appointment, payments []models.Payment) AppointmentDTO {
	out := Appointment(ap)
	out.Payments = Payments(payments)
	return out
}

func Appointments(list []models.Appointment) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(list))
	for i := range list {
		out = append(out, Appointment(&list[i]))
	}
	return out
}

func shortTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

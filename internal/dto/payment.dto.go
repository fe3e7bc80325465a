package dto

import (
	"time"

	dompay "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type PaymentDTO struct {
	ID              uint      `json:"id"`
	Code            string    `json:"code"`
	AppointmentID   uint      `json:"appointment_id"`
	AppointmentCode string    `json:"appointment_code"`
	Amount          int64     `json:"amount"`
	PaymentMethod   string    `json:"payment_method"`
	MethodLabel     string    `json:"payment_method_label"`
	TransactionID   *string   `json:"transaction_id"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	PaymentDate     time.Time `json:"payment_date"`
	CreatedAt       time.Time `json:"created_at"`
}

func Payment(p *models.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              p.ID,
		Code:            p.Code(),
		AppointmentID:   p.AppointmentID,
		AppointmentCode: models.FormatCode(models.PrefixAppointment, p.AppointmentID),
		Amount:          p.Amount,
		PaymentMethod:   p.PaymentMethod,
		MethodLabel:     dompay.Label(p.PaymentMethod),
		TransactionID:   p.TransactionID,
		Status:          p.Status,
		Notes:           p.Notes,
		PaymentDate:     p.PaymentDate,
		CreatedAt:       p.CreatedAt,
	}
}

func Payments(list []models.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(list))
	for i := range list {
		out = append(out, Payment(&list[i]))
	}
	return out
}

package appointment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	dompay "github.com/BruksfildServices01/petspa-booking/internal/domain/payment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/notification"
	"github.com/BruksfildServices01/petspa-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	UserID *uint

	PetName  string
	PetType  string
	PetBreed string
	PetSize  string
	PetNotes string

	Date string
	Time string

	FullName    string
	PhoneNumber string
	Email       string

	// optional, defaults to cash
	PaymentMethod string

	// Prices are always taken from the catalog.
	ServiceIDs []uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	Deps
}

func NewCreateAppointment(d Deps) *CreateAppointment {
	return &CreateAppointment{Deps: d}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields and formats
	// --------------------------------------------------
	if missing := missingFields(in); len(missing) > 0 {
		return nil, httperr.Validation(
			"missing_required_fields",
			"Please fill in all required fields.",
			missing...,
		)
	}

	petType, err := domain.ParsePetType(strings.ToLower(strings.TrimSpace(in.PetType)))
	if err != nil {
		return nil, err
	}

	if !validators.IsDate(in.Date) {
		return nil, httperr.Validation("invalid_date", "Date must use the YYYY-MM-DD format.", "date")
	}
	slotTime, err := validators.NormalizeTimeOfDay(in.Time)
	if err != nil {
		return nil, httperr.Validation("invalid_time", "Time must use the HH:MM format.", "time")
	}

	if !validators.IsPhoneValid(in.PhoneNumber) {
		return nil, httperr.Validation("invalid_phone", "Phone number is not valid.", "phone_number")
	}
	email := strings.TrimSpace(in.Email)
	if email != "" && !validators.IsEmailValid(email) {
		return nil, httperr.Validation("invalid_email", "Email address is not valid.", "email")
	}

	method := dompay.MethodCash
	if strings.TrimSpace(in.PaymentMethod) != "" {
		if method, err = dompay.ParseMethod(in.PaymentMethod); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 2. Not in the past
	// --------------------------------------------------
	at, err := uc.Clock.At(in.Date, slotTime)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "Date must use the YYYY-MM-DD format.", "date")
	}
	if !at.After(uc.Clock.Now()) {
		return nil, httperr.Validation("appointment_in_past", "The appointment time has already passed.", "date", "time")
	}

	// --------------------------------------------------
	// 3. Price services from the catalog
	// --------------------------------------------------
	lines, total, err := uc.priceServices(ctx, in.ServiceIDs, petType)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:          in.UserID,
		PetName:         strings.TrimSpace(in.PetName),
		PetType:         string(petType),
		PetBreed:        strings.TrimSpace(in.PetBreed),
		PetSize:         strings.TrimSpace(in.PetSize),
		PetNotes:        strings.TrimSpace(in.PetNotes),
		AppointmentDate: in.Date,
		AppointmentTime: slotTime,
		FullName:        strings.TrimSpace(in.FullName),
		PhoneNumber:     strings.TrimSpace(in.PhoneNumber),
		Email:           email,
		TotalAmount:     total,
		Status:          string(domain.InitialStatus()),
		PaymentStatus:   string(domain.PaymentPending),
		PaymentMethod:   string(method),
	}

	// --------------------------------------------------
	// 4. Seat + rows, atomically
	// --------------------------------------------------
	err = uc.Repo.Transaction(ctx, func(ctx context.Context) error {
		if _, err := uc.reserveSeat(ctx, ap.AppointmentDate, ap.AppointmentTime, 0); err != nil {
			return err
		}
		if err := uc.Repo.CreateAppointment(ctx, ap, lines); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Side effects, never fatal
	// --------------------------------------------------
	uc.Metrics.AppointmentCreated()
	uc.auditor().Dispatch(audit.Event{
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: ap.Code(),
		Metadata: map[string]any{
			"date":   ap.AppointmentDate,
			"time":   ap.AppointmentTime,
			"total":  ap.TotalAmount,
			"method": ap.PaymentMethod,
		},
	})
	notification.Send(uc.Notifier, notification.KindBookingConfirmation, ap)

	return ap, nil
}

func missingFields(in CreateInput) []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("pet_name", in.PetName)
	check("pet_type", in.PetType)
	check("date", in.Date)
	check("time", in.Time)
	check("full_name", in.FullName)
	check("phone_number", in.PhoneNumber)
	if len(in.ServiceIDs) == 0 {
		missing = append(missing, "services")
	}
	return missing
}

// priceServices snapshots the current catalog price of every requested
// service. Repeated ids are booked once.
func (uc *CreateAppointment) priceServices(
	ctx context.Context,
	ids []uint,
	petType domain.PetType,
) ([]models.AppointmentService, int64, error) {

	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	catalog, err := uc.Repo.ListServicesByIDs(ctx, unique)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	byID := make(map[uint]models.SpaService, len(catalog))
	for _, s := range catalog {
		byID[s.ID] = s
	}

	var (
		lines   []models.AppointmentService
		total   int64
		unknown []string
	)
	for _, id := range unique {
		svc, ok := byID[id]
		if !ok || !svc.Active {
			unknown = append(unknown, strconv.FormatUint(uint64(id), 10))
			continue
		}
		if svc.PetType != "" && svc.PetType != string(petType) {
			return nil, 0, httperr.Validation(
				"service_not_for_pet_type",
				fmt.Sprintf("%s is not offered for %ss.", svc.Name, petType),
				"services",
			)
		}
		lines = append(lines, models.AppointmentService{
			ServiceID:   svc.ID,
			ServiceName: svc.Name,
			Price:       svc.Price,
		})
		total += svc.Price
	}

	if len(unknown) > 0 {
		return nil, 0, httperr.Validation("unknown_service", "Some services do not exist or are no longer offered.", unknown...)
	}
	return lines, total, nil
}

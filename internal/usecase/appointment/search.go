package appointment

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

type SearchInput struct {
	Phone     string
	Email     string
	BookingID string
}

type SearchAppointments struct {
	repo domain.Repository
}

func NewSearchAppointments(repo domain.Repository) *SearchAppointments {
	return &SearchAppointments{repo: repo}
}

// Execute searches by the first criterion given, in the order booking
// id, phone, email.
func (uc *SearchAppointments) Execute(ctx context.Context, in SearchInput) ([]models.Appointment, error) {
	var (
		by    domain.SearchBy
		value string
	)
	switch {
	case strings.TrimSpace(in.BookingID) != "":
		by, value = domain.SearchByBookingID, in.BookingID
	case strings.TrimSpace(in.Phone) != "":
		by, value = domain.SearchByPhone, in.Phone
	case strings.TrimSpace(in.Email) != "":
		by, value = domain.SearchByEmail, in.Email
	default:
		return nil, httperr.Validation(
			"missing_search_criteria",
			"Search by phone, email or booking_id.",
			"phone", "email", "booking_id",
		)
	}

	apps, err := uc.repo.SearchAppointments(ctx, by, value)
	if err != nil {
		return nil, fmt.Errorf("search appointments: %w", err)
	}
	return apps, nil
}

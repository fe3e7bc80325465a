package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/httpresp"
	"github.com/BruksfildServices01/petspa-booking/internal/usecase/appointment"
)

// PublicHandler serves what the booking page reads before a customer
// picks a slot.
type PublicHandler struct {
	availability *appointment.GetAvailability
}

func NewPublicHandler(repo domain.Repository) *PublicHandler {
	return &PublicHandler{availability: appointment.NewGetAvailability(repo)}
}

type AvailabilityResponse struct {
	Date  string              `json:"date"`
	Slots domain.Availability `json:"slots"`
}

func (h *PublicHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_params", "Date is required.", "date")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, AvailabilityResponse{Date: date, Slots: slots})
}

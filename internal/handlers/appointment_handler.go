package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/dto"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/httpresp"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	uc "github.com/BruksfildServices01/petspa-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create        *uc.CreateAppointment
	get           *uc.GetAppointment
	search        *uc.SearchAppointments
	list          *uc.ListAppointments
	details       *uc.UpdateDetails
	status        *uc.UpdateStatus
	paymentStatus *uc.UpdatePaymentStatus
	reschedule    *uc.Reschedule
	restore       *uc.RestoreAppointment
	remove        *uc.DeleteAppointment
}

func NewAppointmentHandler(d uc.Deps) *AppointmentHandler {
	return &AppointmentHandler{
		create:        uc.NewCreateAppointment(d),
		get:           uc.NewGetAppointment(d.Repo),
		search:        uc.NewSearchAppointments(d.Repo),
		list:          uc.NewListAppointments(d.Repo),
		details:       uc.NewUpdateDetails(d),
		status:        uc.NewUpdateStatus(d),
		paymentStatus: uc.NewUpdatePaymentStatus(d),
		reschedule:    uc.NewReschedule(d),
		restore:       uc.NewRestoreAppointment(d),
		remove:        uc.NewDeleteAppointment(d),
	}
}

// ======================================================
// REQUESTS
// ======================================================

// ServiceRef accepts {"id": 1} or {"service_id": 1}. Any price sent by
// the client is ignored.
type ServiceRef struct {
	ID        uint `json:"id"`
	ServiceID uint `json:"service_id"`
}

func (r ServiceRef) serviceID() uint {
	if r.ServiceID != 0 {
		return r.ServiceID
	}
	return r.ID
}

type CreateAppointmentRequest struct {
	UserID *uint `json:"user_id"`

	PetName  string `json:"pet_name"`
	PetType  string `json:"pet_type"`
	PetBreed string `json:"pet_breed"`
	PetSize  string `json:"pet_size"`
	PetNotes string `json:"pet_notes"`

	AppointmentDate string `json:"appointment_date"`
	AppointmentTime string `json:"appointment_time"`

	FullName      string `json:"full_name"`
	PhoneNumber   string `json:"phone_number"`
	Email         string `json:"email"`
	PaymentMethod string `json:"payment_method"`

	Services []ServiceRef `json:"services"`
}

type UpdateAppointmentRequest struct {
	PetName  *string `json:"pet_name"`
	PetType  *string `json:"pet_type"`
	PetBreed *string `json:"pet_breed"`
	PetSize  *string `json:"pet_size"`
	PetNotes *string `json:"pet_notes"`

	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
	Email       *string `json:"email"`

	// only present to reject them with a useful message
	AppointmentDate *string `json:"appointment_date"`
	AppointmentTime *string `json:"appointment_time"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

type RescheduleRequest struct {
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
}

// ======================================================
// PUBLIC
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := make([]uint, 0, len(req.Services))
	for _, s := range req.Services {
		ids = append(ids, s.serviceID())
	}

	ap, err := h.create.Execute(c.Request.Context(), uc.CreateInput{
		UserID:        req.UserID,
		PetName:       req.PetName,
		PetType:       req.PetType,
		PetBreed:      req.PetBreed,
		PetSize:       req.PetSize,
		PetNotes:      req.PetNotes,
		Date:          req.AppointmentDate,
		Time:          req.AppointmentTime,
		FullName:      req.FullName,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		PaymentMethod: req.PaymentMethod,
		ServiceIDs:    ids,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Appointment booked.", dto.Appointment(ap))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	ap, payments, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.AppointmentWithPayments(ap, payments))
}

func (h *AppointmentHandler) Search(c *gin.Context) {
	list, err := h.search.Execute(c.Request.Context(), uc.SearchInput{
		Phone:     c.Query("phone"),
		Email:     c.Query("email"),
		BookingID: c.Query("booking_id"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.Appointments(list))
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	list, total, f, err := h.list.Execute(c.Request.Context(), appointment.ListFilter{
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		FromDate:      c.Query("from_date"),
		ToDate:        c.Query("to_date"),
		Page:          queryInt(c, "page", 1),
		Limit:         queryInt(c, "limit", uc.DefaultPageSize),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.Appointments(list), total, f.Page, f.Limit)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.AppointmentDate != nil || req.AppointmentTime != nil {
		httperr.BadRequest(c, "use_reschedule",
			"Date and time are changed through the reschedule endpoint.",
			"appointment_date", "appointment_time")
		return
	}

	ap, err := h.details.Execute(c.Request.Context(), id, uc.DetailsInput{
		PetName:     req.PetName,
		PetType:     req.PetType,
		PetBreed:    req.PetBreed,
		PetSize:     req.PetSize,
		PetNotes:    req.PetNotes,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Appointment updated.", dto.Appointment(ap))
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.status.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Appointment status updated.", dto.Appointment(ap))
}

func (h *AppointmentHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	var req PaymentStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.paymentStatus.Execute(c.Request.Context(), id, req.PaymentStatus)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Payment status updated.", dto.Appointment(ap))
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_required_fields",
			"New date and time are required.", "appointment_date", "appointment_time")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), id, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Appointment rescheduled.", dto.Appointment(ap))
}

func (h *AppointmentHandler) Restore(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	ap, err := h.restore.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Appointment restored.", dto.Appointment(ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, models.PrefixAppointment)
	if !ok {
		return
	}

	ap, err := h.remove.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Appointment deleted.", gin.H{"deleted": dto.Appointment(ap)})
}

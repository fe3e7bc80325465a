package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/petspa-booking/internal/domain/timeslot"
	"github.com/BruksfildServices01/petspa-booking/internal/dto"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/httpresp"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
	"github.com/BruksfildServices01/petspa-booking/internal/usecase/timeslot"
)

type TimeSlotHandler struct {
	registry *timeslot.Registry
}

func NewTimeSlotHandler(registry *timeslot.Registry) *TimeSlotHandler {
	return &TimeSlotHandler{registry: registry}
}

type CreateTimeSlotRequest struct {
	TimeSlot    string `json:"time_slot"`
	MaxCapacity int    `json:"max_capacity"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateTimeSlotRequest struct {
	TimeSlot    *string `json:"time_slot"`
	MaxCapacity *int    `json:"max_capacity"`
	IsActive    *bool   `json:"is_active"`
}

// List serves the admin listing with every filter.
func (h *TimeSlotHandler) List(c *gin.Context) {
	h.list(c, queryBool(c, "active"))
}

// ListActive is the public listing; inactive slots are never shown.
func (h *TimeSlotHandler) ListActive(c *gin.Context) {
	active := true
	h.list(c, &active)
}

func (h *TimeSlotHandler) list(c *gin.Context, active *bool) {
	slots, total, f, err := h.registry.List(c.Request.Context(), domain.ListFilter{
		Active:   active,
		FromTime: c.Query("from_time"),
		ToTime:   c.Query("to_time"),
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", timeslot.DefaultPageSize),
		Sort:     c.Query("sort"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, dto.TimeSlots(slots), total, f.Page, f.Limit)
}

func (h *TimeSlotHandler) Get(c *gin.Context) {
	id, ok := pathID(c, models.PrefixTimeSlot)
	if !ok {
		return
	}

	slot, err := h.registry.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.TimeSlot(slot))
}

func (h *TimeSlotHandler) Create(c *gin.Context) {
	var req CreateTimeSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.registry.Create(c.Request.Context(), timeslot.CreateInput{
		Time:        req.TimeSlot,
		MaxCapacity: req.MaxCapacity,
		IsActive:    req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Time slot created.", dto.TimeSlot(slot))
}

func (h *TimeSlotHandler) Update(c *gin.Context) {
	id, ok := pathID(c, models.PrefixTimeSlot)
	if !ok {
		return
	}

	var req UpdateTimeSlotRequest
	if !bindJSON(c, &req) {
		return
	}

	slot, err := h.registry.Update(c.Request.Context(), id, timeslot.UpdateInput{
		Time:        req.TimeSlot,
		MaxCapacity: req.MaxCapacity,
		IsActive:    req.IsActive,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Time slot updated.", dto.TimeSlot(slot))
}

func (h *TimeSlotHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, models.PrefixTimeSlot)
	if !ok {
		return
	}

	if err := h.registry.Delete(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Time slot deleted.", gin.H{"id": id})
}

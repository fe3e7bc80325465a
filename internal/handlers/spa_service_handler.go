package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petspa-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/httpresp"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

// SpaServiceHandler is plain catalog CRUD with no rules beyond field
// validation, so it talks to the store directly.
type SpaServiceHandler struct {
	db *gorm.DB
}

func NewSpaServiceHandler(db *gorm.DB) *SpaServiceHandler {
	return &SpaServiceHandler{db: db}
}

// --------- Requests ---------

type CreateSpaServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
	Price       int64  `json:"price" binding:"required,min=1"`
	PetType     string `json:"pet_type"`
	Active      *bool  `json:"active"`
}

// --------- Handlers ---------

// List returns active services, optionally those bookable for a pet type.
func (h *SpaServiceHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Where("active = ?", true)

	if petType := strings.ToLower(strings.TrimSpace(c.Query("pet_type"))); petType != "" {
		if _, err := appointment.ParsePetType(petType); err != nil {
			httperr.Respond(c, err)
			return
		}
		q = q.Where("pet_type = '' OR pet_type = ?", petType)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.SpaService
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, services)
}

func (h *SpaServiceHandler) Create(c *gin.Context) {
	var req CreateSpaServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, duration and price are required.",
			"name", "duration_min", "price")
		return
	}

	petType := strings.ToLower(strings.TrimSpace(req.PetType))
	if petType != "" {
		if _, err := appointment.ParsePetType(petType); err != nil {
			httperr.Respond(c, err)
			return
		}
	}

	svc := models.SpaService{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		DurationMin: req.DurationMin,
		Price:       req.Price,
		PetType:     petType,
		Active:      req.Active == nil || *req.Active,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, "Service created.", svc)
}

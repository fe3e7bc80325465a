package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petspa-booking/internal/audit"
	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/httpresp"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs  *audit.Logger
	clock timezone.Clock
}

func NewAuditLogsHandler(logs *audit.Logger, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, clock: clock}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	f := audit.Filter{
		Action:   c.Query("action"),
		Entity:   c.Query("entity"),
		EntityID: c.Query("entity_id"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 50),
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}

	// from/to are store-local calendar days, both inclusive
	var ok bool
	if f.From, ok = h.day(c, "from"); !ok {
		return
	}
	if f.To, ok = h.day(c, "to"); !ok {
		return
	}
	if !f.To.IsZero() {
		f.To = f.To.AddDate(0, 0, 1)
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, logs, total, f.Page, f.Limit)
}

func (h *AuditLogsHandler) day(c *gin.Context, key string) (time.Time, bool) {
	v := c.Query(key)
	if v == "" {
		return time.Time{}, true
	}
	t, err := time.ParseInLocation("2006-01-02", v, h.clock.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", key+" must use the YYYY-MM-DD format.", key)
		return time.Time{}, false
	}
	return t, true
}

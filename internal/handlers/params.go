package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
	"github.com/BruksfildServices01/petspa-booking/internal/models"
)

// pathID reads the :id parameter as a code ("APT-0007") or a bare
// number. It writes the 400 itself and returns false on bad input.
func pathID(c *gin.Context, prefix string) (uint, bool) {
	id, ok := models.ParseCode(prefix, c.Param("id"))
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Invalid identifier.", "id")
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) int {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// queryBool returns nil when the parameter is absent or not a boolean.
func queryBool(c *gin.Context, key string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return nil
	}
	return &v
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Request body is not valid JSON for this endpoint.")
		return false
	}
	return true
}

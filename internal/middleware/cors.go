package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders = "Content-Type, Authorization, " + HeaderRequestID
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsPreflightTTL = "600"
)

// CORS allows the listed origins; an empty list allows any origin, which
// is what local development uses.
func CORS(allowed ...string) gin.HandlerFunc {
	origins := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins[o] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" && originAllowed(origins, origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Expose-Headers", HeaderRequestID)
			h.Set("Access-Control-Max-Age", corsPreflightTTL)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func originAllowed(origins map[string]struct{}, origin string) bool {
	if len(origins) == 0 {
		return true
	}
	_, ok := origins[origin]
	return ok
}

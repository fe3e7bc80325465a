package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/petspa-booking/internal/httperr"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"

	RoleAdmin = "admin"
)

// AdminAuth accepts HMAC-signed bearer tokens whose role claim is admin.
// Tokens are issued by the store's account service, not here.
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "invalid_token_claims")
			return
		}

		role, _ := claims["role"].(string)
		if role != RoleAdmin {
			httperr.Write(c, http.StatusForbidden, "forbidden", "Administrator access required.")
			c.Abort()
			return
		}

		// sub is optional for service tokens
		if sub, ok := claims["sub"].(float64); ok {
			c.Set(ContextUserID, uint(sub))
		}
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Authentication required.")
	c.Abort()
}

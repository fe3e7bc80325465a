package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Success bool     `json:"success"`
	Code    string   `json:"error_code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func Write(c *gin.Context, status int, code, message string, fields ...string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
		Fields:  fields,
	})
}

func BadRequest(c *gin.Context, code, message string, fields ...string) {
	Write(c, http.StatusBadRequest, code, message, fields...)
}

func NotFoundResponse(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond writes err using the status of its kind. Any other error is a
// dependency failure: it is logged with the request logger and the
// client only sees a generic 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("route", c.FullPath()).
			Msg("request failed")
		Internal(c, "internal_error", "Something went wrong, please try again later.")
		return
	}

	message := be.Message
	if message == "" {
		message = be.Code
	}

	switch be.Kind {
	case KindValidation, KindIntegrity:
		Write(c, http.StatusBadRequest, be.Code, message, be.Fields...)
	case KindNotFound:
		Write(c, http.StatusNotFound, be.Code, message, be.Fields...)
	case KindConflict:
		Write(c, http.StatusConflict, be.Code, message, be.Fields...)
	default:
		Write(c, http.StatusBadRequest, be.Code, message, be.Fields...)
	}
}

package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessErrorMatchesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("book: %w", Conflict("slot_full", "No capacity left."))

	assert.True(t, IsBusiness(err, "slot_full"))
	assert.False(t, IsBusiness(err, "slot_locked"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, "book: slot_full: No capacity left.", err.Error())

	plain := errors.New("boom")
	assert.False(t, IsBusiness(plain, "slot_full"))
	assert.Equal(t, Kind(""), KindOf(plain))
}

func TestBusinessErrorWithoutMessage(t *testing.T) {
	assert.Equal(t, "not_found", NotFound("not_found", "").Error())
}

func TestRespondStatusByKind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Validation("missing_fields", "Fill everything in.", "email"), http.StatusBadRequest, "missing_fields"},
		{"integrity", Integrity("invalid_signature", "Bad signature."), http.StatusBadRequest, "invalid_signature"},
		{"not found", NotFound("appointment_not_found", "No such appointment."), http.StatusNotFound, "appointment_not_found"},
		{"conflict", Conflict("slot_full", "No capacity left."), http.StatusConflict, "slot_full"},
		{"dependency", errors.New("connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			var body HTTPError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Code)
			assert.False(t, body.Success)
		})
	}
}

func TestRespondKeepsFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, Validation("missing_fields", "Fill everything in.", "email", "phone_number"))

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"email", "phone_number"}, body.Fields)
}

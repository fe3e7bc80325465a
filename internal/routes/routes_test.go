package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/petspa-booking/internal/config"
	"github.com/BruksfildServices01/petspa-booking/internal/infra/vnpay"
	"github.com/BruksfildServices01/petspa-booking/internal/metrics"
	"github.com/BruksfildServices01/petspa-booking/internal/testsupport"
	"github.com/BruksfildServices01/petspa-booking/internal/timezone"
)

func newEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{JWTSecret: "route-secret", PublicRatePerMinute: 100}
	clock := timezone.NewClock(timezone.DefaultTimezone)

	r := gin.New()
	RegisterRoutes(r, Dependencies{
		DB:       testsupport.NewDB(t),
		Config:   cfg,
		Clock:    clock,
		Log:      zerolog.Nop(),
		Audit:    &testsupport.Auditor{},
		Notifier: &testsupport.Notifier{},
		Metrics:  metrics.New("spa"),
		Gateway:  vnpay.New(cfg.VNPay, clock),
	})
	return r
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOpsRoutes(t *testing.T) {
	r := newEngine(t)

	w := get(r, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = get(r, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "spa_appointments_created_total")
}

func TestAdminRoutesNeedAdminToken(t *testing.T) {
	r := newEngine(t)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/admin/appointments", "").Code)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  1,
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("route-secret"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, "/api/admin/appointments", token).Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/admin/audit-logs", token).Code)
}

func TestPublicRoutes(t *testing.T) {
	r := newEngine(t)

	assert.Equal(t, http.StatusOK, get(r, "/api/time-slots", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/services", "").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/api/appointments/search", "").Code)
	assert.Equal(t, http.StatusNotFound, get(r, "/api/appointments/APT-0001", "").Code)
}

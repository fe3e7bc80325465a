package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SMTP_PORT", "TIMEZONE", "PUBLIC_RATE_PER_MINUTE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "Asia/Ho_Chi_Minh", cfg.Timezone)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 30, cfg.PublicRatePerMinute)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("VNPAY_TMN_CODE", "DEMO1234")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example,https://admin.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "DEMO1234", cfg.VNPay.TmnCode)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSOrigins)
}

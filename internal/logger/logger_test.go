package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	log := New("debug", &buf)

	log.Info().Str("appointment", "APT-0001").Msg("booked")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "APT-0001", line["appointment"])
	assert.Equal(t, "petspa-booking", line["service"])
}

func TestNewFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("loud", &buf)

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}

package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "hairline-api", "production")

	logger.Info().Str("clinic_id", "clinic-1").Msg("clinic saved")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hairline-api", entry["service"])
	assert.Equal(t, "clinic-1", entry["clinic_id"])
	assert.Equal(t, "clinic saved", entry["message"])
	assert.Contains(t, entry, "caller")
}

func TestNewLoggerDevelopmentIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "hairline-api", "development")

	logger.Warn().Msg("orphaned review")

	assert.Contains(t, buf.String(), "orphaned review")
	assert.False(t, json.Valid(buf.Bytes()))
}

package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/crop-profile-etl/internal/config"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info", "json")

	logger.Info("profiles written", "count", 3)
	logger.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "profiles written", line["msg"])
	assert.Equal(t, float64(3), line["count"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "text")

	logger.Debug("light defaulted", "crop", "Tea")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "crop=Tea")
}

func TestNewLogger_FromConfig(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "text"})
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.in))
		})
	}
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	// Two runs in one process must not panic on duplicate registration.
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.RecordsLoaded.Add(5)
	m1.CategoryDefaults.WithLabelValues("Humidity").Inc()

	assert.InDelta(t, 5, testutil.ToFloat64(m1.RecordsLoaded), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(m2.RecordsLoaded), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m1.CategoryDefaults.WithLabelValues("Humidity")), 0)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.ProfilesWritten.Add(12)

	path := filepath.Join(t.TempDir(), "crops.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "crop_etl_profiles_written_total 12")
}

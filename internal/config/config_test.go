package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/rwanda_comprehensive_crop_data.csv", cfg.SourcePath)
	assert.Equal(t, "rwanda_crops_processed.json", cfg.OutputPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.MetricsTextfile)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "crop-profiles", cfg.KafkaTopic)
	assert.Equal(t, 10*time.Second, cfg.KafkaWriteTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("CROPS_SOURCE_PATH", "/srv/in/crops.csv")
	t.Setenv("CROPS_OUTPUT_PATH", "/srv/out/crops.json")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("METRICS_TEXTFILE", "/var/lib/node_exporter/crops.prom")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_CROPS_TOPIC", "custom-crops")
	t.Setenv("KAFKA_WRITE_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/in/crops.csv", cfg.SourcePath)
	assert.Equal(t, "/srv/out/crops.json", cfg.OutputPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "/var/lib/node_exporter/crops.prom", cfg.MetricsTextfile)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "custom-crops", cfg.KafkaTopic)
	assert.Equal(t, 30*time.Second, cfg.KafkaWriteTimeout)
}

func TestLoad_InvalidKafkaWriteTimeout(t *testing.T) {
	t.Setenv("KAFKA_WRITE_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_WRITE_TIMEOUT")
}

func TestLoad_NegativeKafkaWriteTimeout(t *testing.T) {
	t.Setenv("KAFKA_WRITE_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_WRITE_TIMEOUT")
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_FORMAT")
}

func TestLoad_BlankBrokersDisablesKafka(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "   ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled())
}

package config

import (
	"errors"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all job settings, populated from environment variables.
type Config struct {
	SourcePath string
	OutputPath string
	LogLevel   string
	LogFormat  string

	// MetricsTextfile, when set, receives the run metrics in Prometheus text
	// format for a node-exporter textfile collector.
	MetricsTextfile string

	// Optional publishing of profiles to Kafka. Disabled when no brokers are set.
	KafkaBrokers      []string
	KafkaTopic        string
	KafkaWriteTimeout time.Duration
}

// KafkaEnabled reports whether profiles should also be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	kafkaTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("KAFKA_WRITE_TIMEOUT", "10s"))
	if err != nil || kafkaTimeout <= 0 {
		return nil, errors.New("invalid KAFKA_WRITE_TIMEOUT")
	}

	var brokers []string
	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		SourcePath:      sharedcfg.EnvOrDefault("CROPS_SOURCE_PATH", "data/rwanda_comprehensive_crop_data.csv"),
		OutputPath:      sharedcfg.EnvOrDefault("CROPS_OUTPUT_PATH", "rwanda_crops_processed.json"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),

		KafkaBrokers:      brokers,
		KafkaTopic:        sharedcfg.EnvOrDefault("KAFKA_CROPS_TOPIC", "crop-profiles"),
		KafkaWriteTimeout: kafkaTimeout,
	}

	if strings.TrimSpace(cfg.SourcePath) == "" {
		return nil, errors.New("CROPS_SOURCE_PATH is required")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return nil, errors.New("CROPS_OUTPUT_PATH is required")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, errors.New("LOG_FORMAT must be json or text")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_CROPS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

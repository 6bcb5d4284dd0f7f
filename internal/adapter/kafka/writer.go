package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/couchcryptid/crop-profile-etl/internal/config"
	"github.com/couchcryptid/crop-profile-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes crop profiles to a Kafka topic, one message per crop.
// It implements pipeline.Loader.
type Writer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured crop topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		WriteTimeout:           cfg.KafkaWriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, topic: cfg.KafkaTopic, logger: logger}
}

// Name identifies the sink in logs and reports.
func (w *Writer) Name() string { return "kafka:" + w.topic }

// Load serializes and publishes every profile in a single WriteMessages call.
// Failures are returned as *domain.SinkWriteError.
func (w *Writer) Load(ctx context.Context, profiles []domain.CropProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(profiles))
	for i := range profiles {
		msg, err := serializeToMessage(profiles[i])
		if err != nil {
			return &domain.SinkWriteError{Destination: w.Name(), Err: err}
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return &domain.SinkWriteError{Destination: w.Name(), Err: err}
	}
	w.logger.Info("crop profiles published", "topic", w.topic, "messages", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a CropProfile into a Kafka message keyed by crop
// name, so consumers can deduplicate by name.
func serializeToMessage(profile domain.CropProfile) (kafkago.Message, error) {
	data, err := json.Marshal(profile)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize crop profile: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(profile.Name),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "scientific_name", Value: []byte(profile.ScientificName)},
			{Key: "stage_count", Value: []byte(strconv.Itoa(len(profile.Stages)))},
		},
	}, nil
}

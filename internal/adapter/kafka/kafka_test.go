package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/crop-profile-etl/internal/config"
	"github.com/couchcryptid/crop-profile-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProfile(name string) domain.CropProfile {
	return domain.CropProfile{
		Name:           name,
		ScientificName: "Zea mays",
		Light:          domain.LightBright,
		Stages: []domain.Stage{
			{Name: domain.StageInitial, Duration: 20, Kc: 0.3},
			{Name: domain.StageDevelopment, Duration: 30, Kc: 0.725},
			{Name: domain.StageMid, Duration: 40, Kc: 1.15},
			{Name: domain.StageLate, Duration: 25, Kc: 0.6},
		},
	}
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(testProfile("Maize"))
	require.NoError(t, err)

	assert.Equal(t, []byte("Maize"), msg.Key)
	assert.Contains(t, string(msg.Value), `"name":"Maize"`)
	assert.Contains(t, string(msg.Value), `"light":"Bright"`)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "scientific_name", msg.Headers[0].Key)
	assert.Equal(t, []byte("Zea mays"), msg.Headers[0].Value)
	assert.Equal(t, "stage_count", msg.Headers[1].Key)
	assert.Equal(t, []byte("4"), msg.Headers[1].Value)
}

func TestWriter_Load(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, topic: "crop-profiles", logger: discardLogger()}

	err := w.Load(context.Background(), []domain.CropProfile{testProfile("Maize"), testProfile("Beans")})
	require.NoError(t, err)

	require.Len(t, fw.msgs, 2)
	assert.Equal(t, []byte("Maize"), fw.msgs[0].Key)
	assert.Equal(t, []byte("Beans"), fw.msgs[1].Key)
}

func TestWriter_Load_Empty(t *testing.T) {
	fw := &fakeWriter{err: errors.New("must not be called")}
	w := &Writer{writer: fw, topic: "crop-profiles", logger: discardLogger()}

	require.NoError(t, w.Load(context.Background(), nil))
}

func TestWriter_Load_Error(t *testing.T) {
	fw := &fakeWriter{err: errors.New("broker unavailable")}
	w := &Writer{writer: fw, topic: "crop-profiles", logger: discardLogger()}

	err := w.Load(context.Background(), []domain.CropProfile{testProfile("Maize")})

	var sinkErr *domain.SinkWriteError
	require.ErrorAs(t, err, &sinkErr)
	assert.Equal(t, "kafka:crop-profiles", sinkErr.Destination)
	assert.Contains(t, err.Error(), "broker unavailable")
}

func TestWriter_Close(t *testing.T) {
	fw := &fakeWriter{}
	w := &Writer{writer: fw, logger: discardLogger()}

	require.NoError(t, w.Close())
	assert.True(t, fw.closed)
}

func TestNewWriter(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:      []string{"localhost:9092"},
		KafkaTopic:        "crop-profiles",
		KafkaWriteTimeout: 3 * time.Second,
	}

	w := NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = w.Close() })

	kw, ok := w.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "crop-profiles", kw.Topic)
	assert.Equal(t, 3*time.Second, kw.WriteTimeout)
	assert.Equal(t, "kafka:crop-profiles", w.Name())
}

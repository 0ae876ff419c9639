package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ufo-globe-etl/internal/config"
	"github.com/couchcryptid/ufo-globe-etl/internal/domain"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
)

// publishChunkSize bounds the number of messages per WriteMessages call so a
// full-dataset run does not build one giant request.
const publishChunkSize = 500

// Writer publishes cleaned sightings to a Kafka topic. It implements
// pipeline.SightingSink.
type Writer struct {
	writer *kafkago.Writer
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, clock: clock, logger: logger}
}

// Publish serializes and writes all sightings to the sink topic in chunks.
func (w *Writer) Publish(ctx context.Context, sightings []domain.Sighting) error {
	for start := 0; start < len(sightings); start += publishChunkSize {
		end := min(start+publishChunkSize, len(sightings))

		msgs := make([]kafkago.Message, 0, end-start)
		for _, s := range sightings[start:end] {
			msg, err := w.serializeToMessage(s)
			if err != nil {
				return err
			}
			msgs = append(msgs, msg)
		}

		if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("write sightings %d-%d: %w", start, end, err)
		}
	}
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a sighting into a Kafka message keyed by its
// deterministic sighting key.
func (w *Writer) serializeToMessage(s domain.Sighting) (kafkago.Message, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize sighting: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.Key()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "shape", Value: []byte(s.Shape)},
			{Key: "processed_at", Value: []byte(w.clock.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}

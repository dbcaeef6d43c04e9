package ledger

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/farmchainx/trace-engine/internal/model"
)

// MessageWriter is the slice of kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher streams appended ledger entries to the provenance topic. The
// stream is observability-grade: write failures are logged and swallowed,
// never failing the mutation that produced the event.
type Publisher struct {
	writer MessageWriter
	logger *zap.Logger
}

// NewPublisher wraps a message writer. Use NewWriter for the kafka-backed
// default.
func NewPublisher(writer MessageWriter, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{writer: writer, logger: logger}
}

// NewWriter builds a kafka writer for the given brokers and topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// Publish sends one event, keyed by crop id so per-crop ordering holds.
func (p *Publisher) Publish(ctx context.Context, event model.TransactionEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal ledger event", zap.Error(err))
		return
	}
	msg := kafka.Message{
		Key:   []byte(event.CropID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish ledger event",
			zap.String("event_id", event.ID),
			zap.String("crop_id", event.CropID),
			zap.Error(err))
	}
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

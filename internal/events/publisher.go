package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"airsync/internal/logger"

	"github.com/segmentio/kafka-go"
)

// Topic carries one message per handled webhook, consumed by the worker for
// the sync audit trail.
const Topic = "sync-events"

// SyncEvent is the audit record emitted after a webhook is handled.
type SyncEvent struct {
	ID             string    `json:"id"`
	SKU            string    `json:"sku"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	VariantID      int64     `json:"variant_id,omitempty"`
	UpdatedFields  []string  `json:"updated_fields,omitempty"`
	SkippedMarkets []string  `json:"skipped_markets,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

const (
	StatusSuccess  = "success"
	StatusNotFound = "not_found"
	StatusFailed   = "failed"
)

type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

func NewPublisher(brokers string, logger *logger.Logger) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	return &Publisher{
		writer: writer,
		logger: logger,
	}
}

// Publish writes one event to the sync topic. Callers treat publish failures
// as non-fatal; the webhook response never depends on the broker.
func (p *Publisher) Publish(ctx context.Context, event SyncEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SKU),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("published sync event %s for sku %s", event.ID, event.SKU)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/djolof-farm/backend/internal/config"
	"github.com/djolof-farm/backend/internal/domain/model"
)

func TestLogPublisherAcceptsEverything(t *testing.T) {
	publisher := NewLogPublisher(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	event := model.OrderEvent{ID: 1, OrderID: "o1", Type: model.EventOrderCreated}
	if err := publisher.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := publisher.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewPublisherSelection(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	p := newPublisher(publisherParams{Config: &config.Config{}, Logger: logger})
	if _, ok := p.(*LogPublisher); !ok {
		t.Fatalf("expected log fallback without brokers, got %T", p)
	}

	p = newPublisher(publisherParams{
		Config: &config.Config{KafkaBrokers: []string{"broker-1:9092"}, KafkaTopic: "farm.order-events"},
		Logger: logger,
	})
	kafkaPublisher, ok := p.(*KafkaPublisher)
	if !ok {
		t.Fatalf("expected kafka publisher, got %T", p)
	}
	defer kafkaPublisher.Close()
}

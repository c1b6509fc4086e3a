package kafka

import (
	"context"
	"errors"
	"testing"

	kafka_config "stockhold/pkg/kafka/config"
)

func testProducer(t *testing.T) *Producer {
	t.Helper()
	cfg, err := kafka_config.Load([]string{"localhost:9092"})
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	p, err := NewProducer(cfg, "reservation-events")
	if err != nil {
		t.Fatalf("NewProducer failed: %v", err)
	}
	return p
}

func TestNewProducerValidation(t *testing.T) {
	if _, err := NewProducer(nil, "topic"); err == nil {
		t.Error("expected an error for nil config")
	}

	cfg, err := kafka_config.Load([]string{"localhost:9092"})
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	if _, err := NewProducer(cfg, ""); err == nil {
		t.Error("expected an error for empty topic")
	}
}

func TestPublishRejectsInvalidMessages(t *testing.T) {
	p := testProducer(t)
	defer p.Close()

	err := p.Publish(context.Background(), Message{Value: []byte(`{}`)})
	if !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}

	err = p.Publish(context.Background(), Message{Key: "LAPTOP-001"})
	if !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}
}

func TestPublishAfterClose(t *testing.T) {
	p := testProducer(t)
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	msg := NewMessage().WithKey("LAPTOP-001").WithRawValue([]byte(`{}`)).Build()
	if err := p.Publish(context.Background(), msg); !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}

	if err := p.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

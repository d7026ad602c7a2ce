// Package events publica eventos de catálogo en Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/stockroom-api/internal/application/ports"
	"github.com/jhoicas/stockroom-api/pkg/config"
)

const (
	writeTimeout = 5 * time.Second
	// Cada evento se escribe solo; no se espera a completar un lote.
	batchTimeout = 10 * time.Millisecond
)

var _ ports.ProductEventPublisher = (*KafkaPublisher)(nil)

// messageWriter es el subconjunto de *kafka.Writer que usa el publicador.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implementa ports.ProductEventPublisher sobre kafka-go.
type KafkaPublisher struct {
	w messageWriter
}

// NewKafkaPublisher crea un writer hacia cfg.Topic. La clave del mensaje es el ID
// del producto, así los eventos de un mismo producto caen en la misma partición.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{w: &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           writeTimeout,
		BatchSize:              1,
		BatchTimeout:           batchTimeout,
		AllowAutoTopicCreation: true,
	}}
}

// Publish serializa el evento en JSON y lo escribe.
func (p *KafkaPublisher) Publish(ctx context.Context, event ports.ProductEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:     []byte(event.ProductID),
		Value:   data,
		Headers: []kafka.Header{{Key: "type", Value: []byte(event.Type)}},
		Time:    event.OccurredAt,
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka: write %s: %w", event.Type, err)
	}
	return nil
}

// Close vacía y cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.w.Close()
}

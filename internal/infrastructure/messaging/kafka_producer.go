// Package messaging publica eventos de stock en Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
	"github.com/jhoicas/inventory-tracker/internal/application/inventory"
)

const publishTimeout = 5 * time.Second

var _ inventory.StockEventPublisher = (*KafkaProducer)(nil)

// messageWriter subconjunto de *kafka.Writer usado por el productor.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer implementa inventory.StockEventPublisher sobre kafka-go.
type KafkaProducer struct {
	writer messageWriter
}

// NewKafkaProducer construye el productor. Los mensajes se particionan por id de producto
// para conservar el orden de los cambios de un mismo producto.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchSize:              100,
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
	}
	return &KafkaProducer{writer: writer}
}

// PublishStockChanged serializa el evento y lo escribe con timeout propio.
func (p *KafkaProducer) PublishStockChanged(ctx context.Context, event dto.StockChangedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento de stock: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.ProductID, 10)),
		Value: payload,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("escribir evento de stock en kafka: %w", err)
	}
	return nil
}

// Close vacía el buffer y cierra las conexiones.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

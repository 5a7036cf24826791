package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/segmentio/kafka-go"

	"ms-catering/internal/logger"
	"ms-catering/internal/models"
)

type Consumer struct {
	reader *kafka.Reader
	logger *logger.Logger
}

// NewConsumer creates a Kafka consumer for the given topic and group.
func NewConsumer(brokers []string, topic, groupID string, log *logger.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Consumer{reader: reader, logger: log}
}

// Start consumes order events until ctx is cancelled or the reader is
// closed, passing each decoded event to handler.
func (c *Consumer) Start(ctx context.Context, handler func(event models.OrderEvent)) {
	c.logger.Info("KAFKA", "consumer started on topic "+c.reader.Config().Topic)

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			c.logger.Error("KAFKA", "error reading message: "+err.Error())
			continue
		}

		var event models.OrderEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error("KAFKA", "failed to unmarshal order event: "+err.Error())
			continue
		}

		c.logger.LogKafka("CONSUME", c.reader.Config().Topic, event.Type+" for order "+event.OrderID)
		handler(event)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

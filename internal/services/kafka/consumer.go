package kafka

import (
	"context"
	"errors"

	"github.com/iwtcode/pendantService/internal/config"
	"github.com/iwtcode/pendantService/internal/interfaces"
	"github.com/iwtcode/pendantService/internal/middleware/logging"

	"github.com/segmentio/kafka-go"
)

// messageReader - часть kafka.Reader, которой пользуется потребитель.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// SignalConsumer читает сигналы датчиков из топика и передает их в порядке смещений.
type SignalConsumer struct {
	reader messageReader
	logger *logging.Logger
}

// NewSignalConsumer создает потребителя топика сигналов датчиков
func NewSignalConsumer(cfg *config.AppConfig, logger *logging.Logger) (interfaces.SignalConsumer, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.SignalsTopic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 1 << 20,
	})
	return newSignalConsumer(reader, logger), nil
}

func newSignalConsumer(reader messageReader, logger *logging.Logger) *SignalConsumer {
	return &SignalConsumer{reader: reader, logger: logger.WithPrefix("KAFKA")}
}

// Run читает сообщения до отмены ctx или закрытия читателя.
func (c *SignalConsumer) Run(ctx context.Context, handle func(raw []byte)) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			c.logger.Error("Failed to read sensor signal", "error", err)
			return err
		}
		c.logger.Debug("Sensor signal received", "partition", msg.Partition, "offset", msg.Offset)
		handle(msg.Value)
	}
}

// Close закрывает соединение с Kafka
func (c *SignalConsumer) Close() error {
	return c.reader.Close()
}

package interfaces

import (
	"context"
)

// KafkaService определяет контракт для отправки данных во внешние системы
type KafkaService interface {
	Produce(ctx context.Context, key, value []byte) error
	Close() error
}

// SignalConsumer читает сырые сигналы датчиков и передает их обработчику в порядке поступления.
type SignalConsumer interface {
	Run(ctx context.Context, handle func(raw []byte)) error
	Close() error
}

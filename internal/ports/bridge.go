package ports

import (
	"context"
	"time"
)

// MessageProducer - отправка пачки тестовых записей key-{i}/value-{i}.
type MessageProducer interface {
	SendN(ctx context.Context, topic string, count int) (int, error)
}

// TopicCatalog - список пользовательских топиков кластера.
type TopicCatalog interface {
	FetchTopicMetadata(ctx context.Context, timeout time.Duration) ([]string, error)
}

// ConsumeSession - дескриптор запущенного цикла потребления.
type ConsumeSession interface {
	ID() string
	Topics() []string
	Stop()
	Done() <-chan struct{}
	Err() error
}

// EventStreamer - запуск и остановка цикла потребления с доставкой подписчику.
type EventStreamer interface {
	StartConsuming(ctx context.Context, topics []string, sub Subscriber) (ConsumeSession, error)
	StopConsuming(s ConsumeSession)
}

// BridgeService - операции, доступные внешним вызывающим (HTTP, CLI).
type BridgeService interface {
	Send(ctx context.Context, count int) (string, error)
	StartConsuming(ctx context.Context) (string, error)
	StopConsuming(ctx context.Context) error
	ListTopics(ctx context.Context) ([]string, error)
}

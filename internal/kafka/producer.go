package kafka

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
	"github.com/Gunvolt24/kafkabridge/pkg/validate"
	"github.com/segmentio/kafka-go"
)

var _ ports.MessageProducer = (*Producer)(nil)

// writer - минимальный контракт над kafka.Writer, чтобы подменять его моками в тестах.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerOptions - параметры записи (обычно из config.Producer).
type ProducerOptions struct {
	Async        bool
	BatchSize    int
	BatchTimeout time.Duration
	MaxAttempts  int
	RequiredAcks string // all|one|none
	SendTimeout  time.Duration
}

// Producer - общий на процесс kafka.Writer. Безопасен для конкурентных Send.
type Producer struct {
	writer      writer
	log         ports.Logger
	async       bool
	sendTimeout time.Duration
	closeOnce   sync.Once
}

// NewProducer - конструктор. Топик у Writer не задан: он берётся из каждой записи.
// Балансировщик Hash держит записи с одним ключом в одной партиции.
func NewProducer(cfg BrokerConfig, opts ProducerOptions, log ports.Logger) *Producer {
	st := opts.SendTimeout
	if st <= 0 {
		st = 10 * time.Second
	}

	p := &Producer{
		log:         log,
		async:       opts.Async,
		sendTimeout: st,
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers()...),
		Balancer:               &kafka.Hash{},
		BatchSize:              opts.BatchSize,
		BatchTimeout:           opts.BatchTimeout,
		MaxAttempts:            opts.MaxAttempts,
		RequiredAcks:           parseRequiredAcks(opts.RequiredAcks),
		Async:                  opts.Async,
		AllowAutoTopicCreation: true,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID()},
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			log.Errorf(context.Background(), "kafka writer: "+msg, args...)
		}),
	}
	if opts.Async {
		w.Completion = p.onCompletion
	}
	p.writer = w

	return p
}

// Send - одна запись в topic. В async-режиме успех означает «принято в буфер»,
// итог доставки приходит в onCompletion.
func (p *Producer) Send(ctx context.Context, topic string, key, payload []byte) error {
	if p == nil || p.writer == nil {
		return newError("send", ErrSendConfig, nil)
	}
	if err := validate.TopicName(topic); err != nil {
		return newError("send", ErrSendConfig, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.sendTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Key: key, Value: payload}); err != nil {
		metrics.ProducerRecords.WithLabelValues(topic, "failed").Inc()
		return newError("send", ErrSendTransport, err)
	}

	result := "delivered"
	if p.async {
		result = "enqueued"
	}
	metrics.ProducerRecords.WithLabelValues(topic, result).Inc()
	return nil
}

// SendN отправляет count-1 записей: key-{i}/value-{i}, i = 1..count-1.
// На первой ошибке останавливается и возвращает число уже отправленных.
func (p *Producer) SendN(ctx context.Context, topic string, count int) (int, error) {
	sent := 0
	for i := 1; i < count; i++ {
		key := fmt.Sprintf("key-%d", i)
		payload := fmt.Sprintf("value-%d", i)
		if err := p.Send(ctx, topic, []byte(key), []byte(payload)); err != nil {
			return sent, err
		}
		sent++
	}
	return sent, nil
}

// Close - сбрасывает накопленные батчи и закрывает writer.
func (p *Producer) Close() (retErr error) {
	if p == nil || p.writer == nil {
		return nil
	}
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

func (p *Producer) onCompletion(messages []kafka.Message, err error) {
	for i := range messages {
		if err != nil {
			metrics.ProducerRecords.WithLabelValues(messages[i].Topic, "failed").Inc()
			continue
		}
		metrics.ProducerRecords.WithLabelValues(messages[i].Topic, "delivered").Inc()
	}
	if err != nil {
		p.log.Warnf(context.Background(), "async delivery failed for %d record(s): %v", len(messages), err)
	}
}

func parseRequiredAcks(s string) kafka.RequiredAcks {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "0":
		return kafka.RequireNone
	case "one", "1":
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

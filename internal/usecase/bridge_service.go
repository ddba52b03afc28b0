package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultMetadataTimeout = 60 * time.Second
	DefaultMaxSendCount    = 10000
)

var ErrInvalidCount = errors.New("invalid count")

var _ ports.BridgeService = (*BridgeService)(nil)

type Options struct {
	Topic           string
	MetadataTimeout time.Duration
	MaxSendCount    int
}

// BridgeService - прикладные команды моста (без знаний о транспорте).
type BridgeService struct {
	producer ports.MessageProducer
	catalog  ports.TopicCatalog
	streamer ports.EventStreamer
	sub      ports.Subscriber
	log      ports.Logger
	tracer   trace.Tracer

	topic           string
	metadataTimeout time.Duration
	maxSendCount    int

	mu      sync.Mutex
	session ports.ConsumeSession
}

// NewBridgeService - DI-конструктор.
func NewBridgeService(
	producer ports.MessageProducer,
	catalog ports.TopicCatalog,
	streamer ports.EventStreamer,
	sub ports.Subscriber,
	log ports.Logger,
	opts Options,
) *BridgeService {
	if opts.MetadataTimeout <= 0 {
		opts.MetadataTimeout = DefaultMetadataTimeout
	}
	if opts.MaxSendCount <= 0 {
		opts.MaxSendCount = DefaultMaxSendCount
	}
	return &BridgeService{
		producer:        producer,
		catalog:         catalog,
		streamer:        streamer,
		sub:             sub,
		log:             log,
		tracer:          telemetry.Tracer("kafkabridge/usecase"),
		topic:           opts.Topic,
		metadataTimeout: opts.MetadataTimeout,
		maxSendCount:    opts.MaxSendCount,
	}
}

func (s *BridgeService) Topic() string { return s.topic }

// Send - отправить count-1 тестовых записей в рабочий топик.
func (s *BridgeService) Send(ctx context.Context, count int) (string, error) {
	ctx, span := s.tracer.Start(ctx, "BridgeService.Send",
		trace.WithAttributes(attribute.String("messaging.destination", s.topic), attribute.Int("count", count)))
	defer span.End()

	if count < 1 || count > s.maxSendCount {
		err := fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidCount, count, s.maxSendCount)
		recordErr(span, err)
		return "", err
	}

	start := time.Now()
	sent, err := s.producer.SendN(ctx, s.topic, count)
	span.SetAttributes(attribute.Int("sent", sent))
	if err != nil {
		recordErr(span, err)
		s.log.Errorf(ctx, "send failed topic=%s sent=%d of %d err=%v", s.topic, sent, count-1, err)
		return "", err
	}

	s.log.Infof(ctx, "send topic=%s records=%d took=%s", s.topic, sent, time.Since(start))
	return fmt.Sprintf("sent %d to %s topic", count, s.topic), nil
}

// StartConsuming - запустить сессию потребления рабочего топика; возвращает id сессии.
func (s *BridgeService) StartConsuming(ctx context.Context) (string, error) {
	ctx, span := s.tracer.Start(ctx, "BridgeService.StartConsuming",
		trace.WithAttributes(attribute.String("messaging.destination", s.topic)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.streamer.StartConsuming(ctx, []string{s.topic}, s.sub)
	if err != nil {
		recordErr(span, err)
		s.log.Warnf(ctx, "start consuming topic=%s err=%v", s.topic, err)
		return "", err
	}
	s.session = sess

	span.SetAttributes(attribute.String("session.id", sess.ID()))
	s.log.Infof(ctx, "consuming requested topic=%s session=%s", s.topic, sess.ID())
	return sess.ID(), nil
}

// StopConsuming - идемпотентная остановка; ждёт выхода цикла в пределах ctx.
func (s *BridgeService) StopConsuming(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "BridgeService.StopConsuming")
	defer span.End()

	s.mu.Lock()
	sess := s.session
	s.mu.Unlock()

	if sess == nil {
		s.log.Infof(ctx, "stop consuming: no session")
		return nil
	}
	span.SetAttributes(attribute.String("session.id", sess.ID()))

	s.streamer.StopConsuming(sess)

	select {
	case <-sess.Done():
	case <-ctx.Done():
		recordErr(span, ctx.Err())
		return fmt.Errorf("wait for session %s: %w", sess.ID(), ctx.Err())
	}

	if err := sess.Err(); err != nil {
		s.log.Warnf(ctx, "consuming stopped session=%s with error: %v", sess.ID(), err)
	} else {
		s.log.Infof(ctx, "consuming stopped session=%s", sess.ID())
	}
	return nil
}

// ListTopics - пользовательские топики кластера.
func (s *BridgeService) ListTopics(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "BridgeService.ListTopics")
	defer span.End()

	topics, err := s.catalog.FetchTopicMetadata(ctx, s.metadataTimeout)
	if err != nil {
		recordErr(span, err)
		s.log.Errorf(ctx, "list topics failed err=%v", err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("topics", len(topics)))
	return topics, nil
}

func recordErr(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

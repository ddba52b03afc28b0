// Package bridge превращает pull-потребление из брокера в поток событий для подписчика.
package bridge

import (
	"context"
	"errors"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/domain"
	"github.com/Gunvolt24/kafkabridge/internal/kafka"
	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/pkg/ctxmeta"
	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
	"github.com/Gunvolt24/kafkabridge/pkg/validate"
	"github.com/google/uuid"
)

// PolicyBlockThenDrop - цикл ждёт подписчика не дольше одного receive timeout,
// после чего событие отбрасывается и учитывается в метриках.
const PolicyBlockThenDrop = "block-then-drop"

const unsubscribeTimeout = 10 * time.Second

var (
	ErrAlreadyConsuming = errors.New("consumer session already running")
	ErrNoSubscriber     = errors.New("subscriber is required")
)

var _ ports.EventStreamer = (*Bridge)(nil)

// recordSource - то, что мосту нужно от kafka.Consumer.
type recordSource interface {
	Subscribe(ctx context.Context, topics []string) error
	Unsubscribe(ctx context.Context) error
	ReceiveOne(ctx context.Context, timeout time.Duration) (*kafka.Record, error)
}

type Options struct {
	ReceiveTimeout time.Duration
	RetryInitial   time.Duration // первая пауза после ошибки receive
	RetryMax       time.Duration // потолок паузы; по умолчанию равен ReceiveTimeout
}

// Bridge гарантирует, что поверх одного источника работает не больше одного цикла чтения.
type Bridge struct {
	source         recordSource
	log            ports.Logger
	receiveTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	// jitterRand используется только горутиной цикла; циклы не пересекаются во времени.
	jitterRand *rand.Rand

	mu     sync.Mutex
	active *Session
}

func New(source recordSource, log ports.Logger, opts Options) *Bridge {
	rt := opts.ReceiveTimeout
	if rt <= 0 {
		rt = time.Second
	}
	rInit := opts.RetryInitial
	if rInit <= 0 {
		rInit = 100 * time.Millisecond
	}
	rMax := opts.RetryMax
	if rMax <= 0 {
		rMax = rt
	}
	if rInit > rMax {
		rInit = rMax
	}

	return &Bridge{
		source:         source,
		log:            log,
		receiveTimeout: rt,
		retryInitial:   rInit,
		retryMax:       rMax,
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Session - дескриптор одного цикла чтения.
type Session struct {
	id     string
	topics []string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	stopRequested atomic.Bool
	delivered     atomic.Int64
	dropped       atomic.Int64

	mu  sync.Mutex
	err error
}

func newSession(topics []string) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		id:     uuid.NewString(),
		topics: topics,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (s *Session) ID() string            { return s.id }
func (s *Session) Topics() []string      { return slices.Clone(s.topics) }
func (s *Session) Done() <-chan struct{} { return s.done }
func (s *Session) Delivered() int64      { return s.delivered.Load() }
func (s *Session) Dropped() int64        { return s.dropped.Load() }

// Stop - просьба остановиться; идемпотентна. Идущий receive прерывается.
func (s *Session) Stop() {
	s.stopRequested.Store(true)
	s.cancel()
}

// Err - причина аварийного завершения (nil при штатной остановке).
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}

// StartConsuming запускает фоновый цикл: подписка, чтение по одной записи,
// доставка подписчику. Пока предыдущая сессия жива, возвращает ErrAlreadyConsuming;
// если её уже попросили остановиться, дожидается завершения (в пределах ctx).
func (b *Bridge) StartConsuming(ctx context.Context, topics []string, sub ports.Subscriber) (ports.ConsumeSession, error) {
	norm, err := validate.Topics(topics)
	if err != nil {
		return nil, &kafka.Error{Op: "subscribe", Kind: kafka.ErrInvalidTopics, Err: err}
	}
	if sub == nil {
		return nil, ErrNoSubscriber
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if prev := b.active; prev != nil {
		select {
		case <-prev.done:
		default:
			if !prev.stopRequested.Load() {
				return nil, ErrAlreadyConsuming
			}
			select {
			case <-prev.done:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	s := newSession(norm)
	b.active = s
	go b.run(s, sub)
	return s, nil
}

// StopConsuming - идемпотентный сигнал остановки. Отписку выполняет сам цикл на выходе.
func (b *Bridge) StopConsuming(s ports.ConsumeSession) {
	if s == nil {
		return
	}
	s.Stop()
}

// Active - текущая незавершённая сессия, если есть.
func (b *Bridge) Active() (ports.ConsumeSession, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.active == nil {
		return nil, false
	}
	select {
	case <-b.active.done:
		return nil, false
	default:
		return b.active, true
	}
}

func (b *Bridge) run(s *Session, sub ports.Subscriber) {
	defer close(s.done)
	ctx := ctxmeta.WithSessionID(s.ctx, s.id)

	if err := b.source.Subscribe(ctx, s.topics); err != nil {
		s.setErr(err)
		b.log.Errorf(ctx, "subscribe failed topics=%v: %v", s.topics, err)
		sub.Notify(context.WithoutCancel(ctx), b.status(s, domain.SessionFailed, err))
		return
	}

	metrics.SessionsActive.Inc()
	metrics.BackpressurePolicy.WithLabelValues(PolicyBlockThenDrop).Set(1)
	b.log.Infof(ctx, "consuming started topics=%v receive_timeout=%s backpressure=%s",
		s.topics, b.receiveTimeout, PolicyBlockThenDrop)
	sub.Notify(ctx, b.status(s, domain.SessionStarted, nil))

	defer b.finish(s, sub)

	// Экспоненциальный backoff на ошибках receive с equal-jitter
	retry := b.retryInitial

	for {
		if s.stopRequested.Load() {
			return
		}

		rec, err := b.source.ReceiveOne(ctx, b.receiveTimeout)
		switch {
		case err == nil:
			retry = b.retryInitial
			if rec != nil {
				b.deliver(ctx, s, sub, rec)
			}
		case errors.Is(err, kafka.ErrRecvCancelled):
			if !s.stopRequested.Load() {
				s.setErr(err)
				b.log.Warnf(ctx, "receive cancelled outside of stop: %v", err)
			}
			return
		default:
			// Временная ошибка брокера/сети: сессия жива, подписчику сообщаем, ждём и повторяем.
			metrics.ReceiveErrors.Inc()
			sleep := b.withJitterEqual(retry)
			b.log.Warnf(ctx, "receive failed: %v (will retry in %s)", err, sleep)
			sub.Notify(ctx, b.status(s, domain.SessionReceiveError, err))
			if !sleepWithBackoff(ctx, sleep) {
				return
			}
			retry = b.nextBackoff(retry)
		}
	}
}

// finish - выход цикла: отписка (чтобы источник можно было переиспользовать) и финальный статус.
func (b *Bridge) finish(s *Session, sub ports.Subscriber) {
	metrics.SessionsActive.Dec()

	ctx, cancel := context.WithTimeout(ctxmeta.WithSessionID(context.Background(), s.id), unsubscribeTimeout)
	defer cancel()

	if err := b.source.Unsubscribe(ctx); err != nil {
		b.log.Warnf(ctx, "unsubscribe failed: %v", err)
	}

	state := domain.SessionStopped
	if s.Err() != nil {
		state = domain.SessionFailed
	}
	b.log.Infof(ctx, "consuming %s delivered=%d dropped=%d", state, s.Delivered(), s.Dropped())
	sub.Notify(ctx, b.status(s, state, s.Err()))
}

func (b *Bridge) deliver(ctx context.Context, s *Session, sub ports.Subscriber, rec *kafka.Record) {
	ev, fallbacks := toEvent(rec)
	for _, field := range fallbacks {
		metrics.DecodeFallbacks.WithLabelValues(field).Inc()
		b.log.Warnf(ctx, "record %s: %s is not valid UTF-8, sent as empty string", ev.ID(), field)
	}

	// Остановка сессии не обрывает доставку уже полученной записи.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.receiveTimeout)
	defer cancel()

	if err := sub.Publish(dctx, ev); err != nil {
		s.dropped.Add(1)
		metrics.EventsDropped.WithLabelValues(rec.Topic, PolicyBlockThenDrop).Inc()
		b.log.Warnf(ctx, "event %s dropped (policy=%s): %v", ev.ID(), PolicyBlockThenDrop, err)
		return
	}
	s.delivered.Add(1)
	metrics.EventsDelivered.WithLabelValues(rec.Topic).Inc()
}

func (b *Bridge) status(s *Session, state domain.SessionState, err error) domain.SessionStatus {
	st := domain.SessionStatus{
		SessionID: s.id,
		State:     state,
		Topics:    s.Topics(),
		At:        time.Now().UTC(),
	}
	if err != nil {
		st.Error = err.Error()
	}
	return st
}

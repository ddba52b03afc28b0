package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
	"github.com/Gunvolt24/kafkabridge/pkg/validate"
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/kmsg"
)

var _ ports.TopicCatalog = (*Consumer)(nil)

// groupClient - минимальный контракт над *kgo.Client,
// чтобы подменять его моками в тестах.
type groupClient interface {
	AddConsumeTopics(topics ...string)
	PurgeTopicsFromConsuming(topics ...string)
	PollRecords(ctx context.Context, maxPollRecords int) kgo.Fetches
	Request(ctx context.Context, req kmsg.Request) (kmsg.Response, error)
	CommitUncommittedOffsets(ctx context.Context) error
	Close()
}

// State - состояние подписки потребителя.
type State int32

const (
	StateIdle State = iota
	StateSubscribed
	StateConsuming
	StateUnsubscribed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubscribed:
		return "subscribed"
	case StateConsuming:
		return "consuming"
	case StateUnsubscribed:
		return "unsubscribed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Consumer - одно соединение с группой потребителей на весь процесс.
// Idle → Subscribed → Consuming → Unsubscribed; после Unsubscribe можно
// снова вызвать Subscribe. Одновременно допускается только один ReceiveOne.
type Consumer struct {
	client     groupClient
	observer   ConsumerObserver
	log        ports.Logger
	autoCommit bool

	// subMu сериализует Subscribe/Unsubscribe целиком (вместе с вызовами клиента).
	subMu sync.Mutex

	// mu защищает поля состояния; вызовы клиента под ним не делаются.
	mu        sync.Mutex
	state     State
	topics    []string
	subCtx    context.Context
	subCancel context.CancelFunc
	seen      map[TopicPartition]int64
	closed    bool

	// assignMu трогают только колбэки ребаланса.
	assignMu sync.Mutex
	assigned map[TopicPartition]struct{}

	receiving atomic.Bool
	closeOnce sync.Once
}

// NewConsumer создаёт клиента группы из BrokerConfig. Ошибка создания - ErrConfig
// (фатальна при старте). opts - дополнительные опции kgo (логгер, хуки).
func NewConsumer(cfg BrokerConfig, observer ConsumerObserver, log ports.Logger, opts ...kgo.Opt) (*Consumer, error) {
	c := &Consumer{
		observer:   observer,
		log:        log,
		autoCommit: cfg.AutoCommit(),
		state:      StateIdle,
	}

	kopts := append(cfg.consumerOpts(),
		kgo.OnPartitionsAssigned(c.onAssigned),
		kgo.OnPartitionsRevoked(c.onRevoked),
		kgo.OnPartitionsLost(c.onLost),
	)
	if cfg.AutoCommit() {
		kopts = append(kopts, kgo.AutoCommitCallback(c.onAutoCommit))
	}
	kopts = append(kopts, opts...)

	client, err := kgo.NewClient(kopts...)
	if err != nil {
		return nil, newError("init", ErrConfig, err)
	}
	c.client = client
	return c, nil
}

// Subscribe подписывает группу на topics. Разрешён из Idle и Unsubscribed.
func (c *Consumer) Subscribe(ctx context.Context, topics []string) error {
	norm, err := validate.Topics(topics)
	if err != nil {
		return newError("subscribe", ErrInvalidTopics, err)
	}

	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return newError("subscribe", ErrSubscribeTransport, kgo.ErrClientClosed)
	case c.state == StateSubscribed || c.state == StateConsuming:
		c.mu.Unlock()
		return newError("subscribe", ErrAlreadySubscribed, nil)
	}
	subCtx, cancel := context.WithCancel(context.Background())
	c.state = StateSubscribed
	c.topics = norm
	c.subCtx, c.subCancel = subCtx, cancel
	c.seen = make(map[TopicPartition]int64)
	c.mu.Unlock()

	c.client.AddConsumeTopics(norm...)
	c.log.Infof(ctx, "subscribed topics=%v", norm)
	return nil
}

// Unsubscribe прерывает идущий ReceiveOne, при ручном коммите фиксирует
// прочитанные оффсеты и убирает топики из потребления. Соединение остаётся открытым.
func (c *Consumer) Unsubscribe(ctx context.Context) error {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.mu.Lock()
	active := c.state == StateSubscribed || c.state == StateConsuming
	topics, cancel, closed := c.topics, c.subCancel, c.closed
	c.state = StateUnsubscribed
	c.topics, c.subCancel = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if !active || closed {
		return nil
	}

	var commitErr error
	if !c.autoCommit {
		commitErr = c.Commit(ctx)
	}
	c.client.PurgeTopicsFromConsuming(topics...)
	c.log.Infof(ctx, "unsubscribed topics=%v", topics)
	return commitErr
}

// ReceiveOne ждёт одну запись не дольше timeout.
// (nil, nil) - за timeout ничего не пришло; ErrRecvTransport - ошибка брокера,
// цикл можно продолжать; ErrRecvCancelled - отписка, отмена ctx или закрытый клиент.
func (c *Consumer) ReceiveOne(ctx context.Context, timeout time.Duration) (*Record, error) {
	if !c.receiving.CompareAndSwap(false, true) {
		return nil, newError("receive", ErrReceiveInProgress, nil)
	}
	defer c.receiving.Store(false)

	c.mu.Lock()
	if c.state != StateSubscribed && c.state != StateConsuming {
		c.mu.Unlock()
		return nil, newError("receive", ErrRecvCancelled, ErrNotSubscribed)
	}
	c.state = StateConsuming
	subCtx := c.subCtx
	c.mu.Unlock()

	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	// Отписка из другой горутины прерывает ожидание сразу.
	stop := context.AfterFunc(subCtx, cancel)
	defer stop()

	fetches := c.client.PollRecords(pollCtx, 1)

	var fetchErr error
	fetches.EachError(func(topic string, partition int32, err error) {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, kgo.ErrClientClosed) {
			return
		}
		if fetchErr == nil {
			fetchErr = fmt.Errorf("topic=%s partition=%d: %w", topic, partition, err)
		}
	})

	recs := fetches.Records()
	if len(recs) == 0 {
		switch {
		case fetches.IsClientClosed():
			return nil, newError("receive", ErrRecvCancelled, kgo.ErrClientClosed)
		case ctx.Err() != nil:
			return nil, newError("receive", ErrRecvCancelled, ctx.Err())
		case subCtx.Err() != nil:
			return nil, newError("receive", ErrRecvCancelled, ErrNotSubscribed)
		case fetchErr != nil:
			return nil, newError("receive", ErrRecvTransport, fetchErr)
		default:
			return nil, nil
		}
	}
	if fetchErr != nil {
		c.log.Warnf(ctx, "fetch error alongside records: %v", fetchErr)
	}

	rec := recs[0]
	tp := TopicPartition{Topic: rec.Topic, Partition: rec.Partition}

	// Повторная доставка после ребаланса: уже отданные в этой сессии оффсеты пропускаем.
	c.mu.Lock()
	last, ok := c.seen[tp]
	dup := ok && rec.Offset <= last
	if !dup && c.seen != nil {
		c.seen[tp] = rec.Offset
	}
	c.mu.Unlock()

	if dup {
		metrics.DuplicatesSkipped.WithLabelValues(rec.Topic).Inc()
		return nil, nil
	}

	metrics.RecordsReceived.WithLabelValues(rec.Topic).Inc()
	return fromKgoRecord(rec), nil
}

// Commit фиксирует оффсеты всех выданных записей (используется при выключенном автокоммите).
func (c *Consumer) Commit(ctx context.Context) error {
	err := c.client.CommitUncommittedOffsets(ctx)
	c.notifyCommit(CommitResult{Auto: false, Err: err})
	if err != nil {
		return newError("commit", ErrCommit, err)
	}
	return nil
}

// State - текущее состояние подписки.
func (c *Consumer) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Assignment - партиции, назначенные этому участнику группы.
func (c *Consumer) Assignment() []TopicPartition {
	c.assignMu.Lock()
	defer c.assignMu.Unlock()

	m := make(map[string][]int32, len(c.assigned))
	for tp := range c.assigned {
		m[tp.Topic] = append(m[tp.Topic], tp.Partition)
	}
	return toTopicPartitions(m)
}

// Close - отписывается и закрывает клиента (с выходом из группы).
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.Unsubscribe(context.Background())

		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.client.Close()
	})
	return retErr
}

func (c *Consumer) onAssigned(_ context.Context, _ *kgo.Client, assigned map[string][]int32) {
	c.assignMu.Lock()
	if c.assigned == nil {
		c.assigned = make(map[TopicPartition]struct{})
	}
	for _, tp := range toTopicPartitions(assigned) {
		c.assigned[tp] = struct{}{}
	}
	c.assignMu.Unlock()

	c.notifyRebalance(PartitionsAssigned, assigned)
}

// onRevoked повторяет поведение kgo по умолчанию: при автокоммите
// фиксирует выданные оффсеты до того, как партиции уйдут другому участнику.
func (c *Consumer) onRevoked(ctx context.Context, cl *kgo.Client, revoked map[string][]int32) {
	if c.autoCommit && cl != nil {
		err := cl.CommitUncommittedOffsets(ctx)
		c.notifyCommit(CommitResult{Auto: true, Err: err})
	}
	c.dropAssigned(revoked)
	c.notifyRebalance(PartitionsRevoked, revoked)
}

func (c *Consumer) onLost(_ context.Context, _ *kgo.Client, lost map[string][]int32) {
	c.dropAssigned(lost)
	c.notifyRebalance(PartitionsLost, lost)
}

func (c *Consumer) onAutoCommit(_ *kgo.Client, req *kmsg.OffsetCommitRequest, resp *kmsg.OffsetCommitResponse, err error) {
	c.notifyCommit(commitResultFrom(true, req, resp, err))
}

func (c *Consumer) dropAssigned(m map[string][]int32) {
	c.assignMu.Lock()
	defer c.assignMu.Unlock()
	for _, tp := range toTopicPartitions(m) {
		delete(c.assigned, tp)
	}
}

func (c *Consumer) notifyRebalance(kind RebalanceKind, m map[string][]int32) {
	if c.observer == nil || len(m) == 0 {
		return
	}
	c.observer.OnRebalance(RebalanceEvent{
		Kind:       kind,
		Partitions: toTopicPartitions(m),
		Assignment: c.Assignment(),
	})
}

func (c *Consumer) notifyCommit(res CommitResult) {
	if c.observer == nil {
		return
	}
	c.observer.OnCommit(res)
}

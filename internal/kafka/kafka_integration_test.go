//go:build integration

package kafka_test

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/kafkabridge/internal/bridge"
	"github.com/Gunvolt24/kafkabridge/internal/domain"
	ikafka "github.com/Gunvolt24/kafkabridge/internal/kafka"
	"github.com/Gunvolt24/kafkabridge/internal/testutil"
	"github.com/Gunvolt24/kafkabridge/internal/usecase"
	"github.com/Gunvolt24/kafkabridge/pkg/logger"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

// collector - подписчик, собирающий события и статусы.
type collector struct {
	mu       sync.Mutex
	events   []*domain.RecordEvent
	statuses []domain.SessionStatus
}

func (c *collector) Publish(_ context.Context, ev *domain.RecordEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
	return nil
}

func (c *collector) Notify(_ context.Context, st domain.SessionStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, st)
}

func (c *collector) snapshot() []*domain.RecordEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*domain.RecordEvent(nil), c.events...)
}

type stack struct {
	svc      *usecase.BridgeService
	consumer *ikafka.Consumer
	sub      *collector
}

func newStack(t *testing.T, brokers []string, topic, group string) *stack {
	t.Helper()

	logg, cleanupLog, err := logger.NewZapLogger(false, "info")
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanupLog() })

	cfg, err := ikafka.NewBrokerConfig(ikafka.BrokerOptions{
		Brokers:     brokers,
		GroupID:     group,
		StartOffset: ikafka.StartOffsetFirst,
		AutoCommit:  true,
		LogLevel:    "warn",
	})
	require.NoError(t, err)

	kopt := ikafka.WithZapLogger(logg.Base(), cfg.LogLevel())

	consumer, err := ikafka.NewConsumer(cfg, ikafka.NewLoggingObserver(logg), logg, kopt)
	require.NoError(t, err)
	t.Cleanup(func() { _ = consumer.Close() })

	catalog, err := ikafka.NewCatalog(cfg, logg, kopt)
	require.NoError(t, err)
	t.Cleanup(catalog.Close)

	// синхронная запись: к возврату Send записи уже в брокере
	producer := ikafka.NewProducer(cfg, ikafka.ProducerOptions{
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: "all",
	}, logg)
	t.Cleanup(func() { _ = producer.Close() })

	br := bridge.New(consumer, logg, bridge.Options{ReceiveTimeout: 500 * time.Millisecond})
	sub := &collector{}
	svc := usecase.NewBridgeService(producer, catalog, br, sub, logg, usecase.Options{
		Topic:           topic,
		MetadataTimeout: 10 * time.Second,
	})
	return &stack{svc: svc, consumer: consumer, sub: sub}
}

// send(5) → 4 записи key-1..key-4 → события в порядке оффсетов → stop → топик в списке
func TestBridge_EndToEnd_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "bridge-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	st := newStack(t, kf.Brokers, topic, group)

	res, err := st.svc.Send(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, "sent 5 to "+topic+" topic", res)

	_, err = st.svc.StartConsuming(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(st.sub.snapshot()) >= 4 }, 45*time.Second, 200*time.Millisecond)

	require.NoError(t, st.svc.StopConsuming(ctx))
	require.Equal(t, ikafka.StateUnsubscribed, st.consumer.State())

	events := st.sub.snapshot()
	require.Len(t, events, 4)
	last := int64(-1)
	for i, ev := range events {
		require.NotNil(t, ev.Key)
		require.Equal(t, "key-"+strconv.Itoa(i+1), *ev.Key)
		require.Equal(t, "value-"+strconv.Itoa(i+1), ev.Payload)
		require.Equal(t, topic, ev.Topic)
		require.Greater(t, ev.Offset, last)
		require.NotNil(t, ev.Timestamp)
		last = ev.Offset
	}

	// после остановки новых событий нет
	_, err = st.svc.Send(ctx, 2)
	require.NoError(t, err)
	time.Sleep(time.Second)
	require.Len(t, st.sub.snapshot(), 4)

	topics, err := st.svc.ListTopics(ctx)
	require.NoError(t, err)
	require.Contains(t, topics, topic)

	// повторный старт после остановки работает и дочитывает новую запись
	_, err = st.svc.StartConsuming(ctx)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(st.sub.snapshot()) >= 5 }, 45*time.Second, 200*time.Millisecond)
	require.NoError(t, st.svc.StopConsuming(ctx))
}

// Несколько партиций: ключ всегда в одной партиции, внутри партиции порядок
// оффсетов и отправки сохраняется, всего ровно count-1 записей.
func TestBridge_MultiPartitionOrdering_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "parts-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	const partitions, count = 3, 31

	topic, group := testutil.UniqueTopicAndGroup(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopicPartitions(ctx, kf.Brokers[0], topic, partitions))

	st := newStack(t, kf.Brokers, topic, group)

	_, err = st.svc.Send(ctx, count)
	require.NoError(t, err)

	admin, err := testutil.NewAdmin(kf.Brokers[0])
	require.NoError(t, err)
	defer admin.Close()

	ends, err := admin.EndOffsets(ctx, topic)
	require.NoError(t, err)
	require.Len(t, ends, partitions)
	var total int64
	for _, end := range ends {
		total += end
	}
	require.EqualValues(t, count-1, total)

	_, err = st.svc.StartConsuming(ctx)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(st.sub.snapshot()) >= count-1 }, 45*time.Second, 200*time.Millisecond)
	require.NoError(t, st.svc.StopConsuming(ctx))

	events := st.sub.snapshot()
	require.Len(t, events, count-1)

	lastOffset := map[int32]int64{}
	lastKey := map[int32]int{}
	keyPartition := map[string]int32{}
	for _, ev := range events {
		require.NotNil(t, ev.Key)
		n, err := strconv.Atoi(strings.TrimPrefix(*ev.Key, "key-"))
		require.NoError(t, err)
		require.Equal(t, "value-"+strconv.Itoa(n), ev.Payload)

		_, seen := keyPartition[*ev.Key]
		require.False(t, seen, "key %s delivered twice", *ev.Key)
		keyPartition[*ev.Key] = ev.Partition

		if prev, ok := lastOffset[ev.Partition]; ok {
			require.Greater(t, ev.Offset, prev, "partition %d", ev.Partition)
			require.Greater(t, n, lastKey[ev.Partition], "partition %d", ev.Partition)
		}
		lastOffset[ev.Partition] = ev.Offset
		lastKey[ev.Partition] = n
	}
	require.Len(t, keyPartition, count-1)
	require.Greater(t, len(lastOffset), 1, "keys must spread over partitions")
}

// listTopics: пустой кластер → пусто; после создания a и b → ровно {a, b}
func TestListTopics_ExactSet_TC(t *testing.T) {
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "topics-itc", testutil.WithoutAutoCreateTopics())
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	st := newStack(t, kf.Brokers, "a", "topics-itc-group")

	topics, err := st.svc.ListTopics(ctx)
	require.NoError(t, err)
	require.Empty(t, topics)

	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], "a"))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], "b"))

	require.Eventually(t, func() bool {
		got, err := st.svc.ListTopics(ctx)
		return err == nil && len(got) == 2 && got[0] == "a" && got[1] == "b"
	}, 20*time.Second, 200*time.Millisecond)
}

// Метаданные при недоступном брокере - типизированная ошибка, а не зависание.
func TestListTopics_UnreachableBroker(t *testing.T) {
	st := newStack(t, []string{"127.0.0.1:1"}, "rust", "unreachable")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := st.svc.ListTopics(ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, ikafka.ErrMetadataTimeout) || errors.Is(err, ikafka.ErrMetadataTransport), "got %v", err)
}

//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// UniqueTopicAndGroup - уникальные topic/group для одного теста.
// Пример: base="bridge-itc" → "bridge-itc-20250826T010203123456789" и "...-group".
func UniqueTopicAndGroup(base string) (topic, group string) {
	s := strings.ReplaceAll(time.Now().UTC().Format("20060102T150405.000000000"), ".", "")
	topic = fmt.Sprintf("%s-%s", base, s)
	return topic, topic + "-group"
}

// Admin - административный клиент тестового брокера.
type Admin struct {
	client *kgo.Client
	adm    *kadm.Client
}

// NewAdmin - broker в виде "host:port" (KafkaSeedBroker у redpanda-контейнера).
func NewAdmin(broker string) (*Admin, error) {
	cl, err := kgo.NewClient(kgo.SeedBrokers(broker))
	if err != nil {
		return nil, fmt.Errorf("admin client: %w", err)
	}
	return &Admin{client: cl, adm: kadm.NewClient(cl)}, nil
}

func (a *Admin) Close() { a.client.Close() }

// CreateTopics создаёт топики с partitions партициями (уже существующие - не ошибка)
// и ждёт, пока у каждого в метаданных появятся все партиции.
func (a *Admin) CreateTopics(ctx context.Context, partitions int32, topics ...string) error {
	resp, err := a.adm.CreateTopics(ctx, partitions, 1, nil, topics...)
	if err != nil {
		return fmt.Errorf("create topics %v: %w", topics, err)
	}
	for _, t := range topics {
		r, ok := resp[t]
		if !ok {
			return fmt.Errorf("topic %q missing in create response", t)
		}
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %q: %w", t, r.Err)
		}
	}
	return a.waitPartitions(ctx, int(partitions), topics...)
}

// EndOffsets - конец лога по партициям топика (сколько записей в нём лежит).
func (a *Admin) EndOffsets(ctx context.Context, topic string) (map[int32]int64, error) {
	offs, err := a.adm.ListEndOffsets(ctx, topic)
	if err != nil {
		return nil, err
	}
	out := make(map[int32]int64)
	offs.Each(func(o kadm.ListedOffset) {
		if o.Err == nil {
			out[o.Partition] = o.Offset
		}
	})
	return out, nil
}

func (a *Admin) waitPartitions(ctx context.Context, partitions int, topics ...string) error {
	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	var lastErr error
	for {
		details, err := a.adm.ListTopics(ctx, topics...)
		if err == nil {
			lastErr = nil
			for _, t := range topics {
				d, ok := details[t]
				if !ok || d.Err != nil || len(d.Partitions) < partitions {
					lastErr = fmt.Errorf("topic %q: %d/%d partitions", t, len(d.Partitions), partitions)
					break
				}
			}
			if lastErr == nil {
				return nil
			}
		} else {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("topics %v not ready: %w", topics, errors.Join(ctx.Err(), lastErr))
		case <-tick.C:
		}
	}
}

// EnsureTopic - однопартиционный топик; см. EnsureTopicPartitions.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	return EnsureTopicPartitions(ctx, broker, topic, 1)
}

// EnsureTopicPartitions создаёт топик через одноразовый Admin и ждёт его готовности.
func EnsureTopicPartitions(ctx context.Context, broker, topic string, partitions int32) error {
	a, err := NewAdmin(broker)
	if err != nil {
		return err
	}
	defer a.Close()
	return a.CreateTopics(ctx, partitions, topic)
}

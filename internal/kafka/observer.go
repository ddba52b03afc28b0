package kafka

import (
	"context"

	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kmsg"
)

// RebalanceKind - тип изменения назначения партиций.
type RebalanceKind string

const (
	PartitionsAssigned RebalanceKind = "assigned"
	PartitionsRevoked  RebalanceKind = "revoked"
	PartitionsLost     RebalanceKind = "lost"
)

// RebalanceEvent - изменение назначения; Assignment - все партиции участника после него.
type RebalanceEvent struct {
	Kind       RebalanceKind
	Partitions []TopicPartition
	Assignment []TopicPartition
}

// CommittedOffset - оффсет, отправленный брокеру в коммите.
type CommittedOffset struct {
	TopicPartition
	Offset int64
	Err    error // ошибка брокера для конкретной партиции
}

// CommitResult - итог одной попытки коммита.
type CommitResult struct {
	Auto    bool
	Offsets []CommittedOffset
	Err     error
}

// ConsumerObserver получает уведомления о ребалансах и коммитах.
// Вызывается из горутин клиента: реализации не должны блокироваться.
type ConsumerObserver interface {
	OnRebalance(ev RebalanceEvent)
	OnCommit(res CommitResult)
}

// LoggingObserver - наблюдатель только для логов и метрик.
type LoggingObserver struct {
	log ports.Logger
}

var _ ConsumerObserver = (*LoggingObserver)(nil)

func NewLoggingObserver(log ports.Logger) *LoggingObserver {
	return &LoggingObserver{log: log}
}

func (o *LoggingObserver) OnRebalance(ev RebalanceEvent) {
	metrics.Rebalances.WithLabelValues(string(ev.Kind)).Inc()
	o.log.Infof(context.Background(), "partitions %s: %v owned=%v", ev.Kind, ev.Partitions, ev.Assignment)
}

func (o *LoggingObserver) OnCommit(res CommitResult) {
	if res.Err != nil {
		metrics.Commits.WithLabelValues("error").Inc()
		o.log.Warnf(context.Background(), "offset commit failed (auto=%t): %v", res.Auto, res.Err)
		return
	}
	failed := 0
	for _, off := range res.Offsets {
		if off.Err != nil {
			failed++
			o.log.Warnf(context.Background(), "offset commit rejected topic=%s partition=%d offset=%d: %v",
				off.Topic, off.Partition, off.Offset, off.Err)
		}
	}
	if failed > 0 {
		metrics.Commits.WithLabelValues("error").Inc()
		return
	}
	metrics.Commits.WithLabelValues("ok").Inc()
}

// commitResultFrom собирает CommitResult из запроса/ответа OffsetCommit.
func commitResultFrom(auto bool, req *kmsg.OffsetCommitRequest, resp *kmsg.OffsetCommitResponse, err error) CommitResult {
	res := CommitResult{Auto: auto, Err: err}
	if req == nil {
		return res
	}

	partErrs := make(map[TopicPartition]error)
	if resp != nil {
		for _, t := range resp.Topics {
			for _, p := range t.Partitions {
				if pErr := kerr.ErrorForCode(p.ErrorCode); pErr != nil {
					partErrs[TopicPartition{Topic: t.Topic, Partition: p.Partition}] = pErr
				}
			}
		}
	}

	for _, t := range req.Topics {
		for _, p := range t.Partitions {
			tp := TopicPartition{Topic: t.Topic, Partition: p.Partition}
			res.Offsets = append(res.Offsets, CommittedOffset{TopicPartition: tp, Offset: p.Offset, Err: partErrs[tp]})
		}
	}
	return res
}

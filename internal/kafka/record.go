package kafka

import (
	"sort"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Record - запись, полученная из брокера.
type Record struct {
	Key       []byte // nil, если ключа нет
	Payload   []byte
	Topic     string
	Partition int32
	Offset    int64
	Timestamp time.Time // нулевое значение, если брокер не прислал время
}

// TopicPartition - партиция топика.
type TopicPartition struct {
	Topic     string
	Partition int32
}

func fromKgoRecord(r *kgo.Record) *Record {
	return &Record{
		Key:       r.Key,
		Payload:   r.Value,
		Topic:     r.Topic,
		Partition: r.Partition,
		Offset:    r.Offset,
		Timestamp: r.Timestamp,
	}
}

// toTopicPartitions разворачивает map topic→partitions в отсортированный список.
func toTopicPartitions(m map[string][]int32) []TopicPartition {
	out := make([]TopicPartition, 0, len(m))
	for topic, parts := range m {
		for _, p := range parts {
			out = append(out, TopicPartition{Topic: topic, Partition: p})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic != out[j].Topic {
			return out[i].Topic < out[j].Topic
		}
		return out[i].Partition < out[j].Partition
	})
	return out
}

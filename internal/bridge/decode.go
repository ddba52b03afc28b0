package bridge

import (
	"unicode/utf8"

	"github.com/Gunvolt24/kafkabridge/internal/domain"
	"github.com/Gunvolt24/kafkabridge/internal/kafka"
)

// toEvent переводит запись в событие. Невалидный UTF-8 в ключе или payload
// заменяется пустой строкой; имена таких полей возвращаются вторым значением.
func toEvent(rec *kafka.Record) (*domain.RecordEvent, []string) {
	var fallbacks []string

	ev := &domain.RecordEvent{
		Topic:     rec.Topic,
		Partition: rec.Partition,
		Offset:    rec.Offset,
	}

	payload, ok := decodeText(rec.Payload)
	if !ok {
		fallbacks = append(fallbacks, "payload")
	}
	ev.Payload = payload

	if rec.Key != nil {
		key, ok := decodeText(rec.Key)
		if !ok {
			fallbacks = append(fallbacks, "key")
		}
		ev.Key = &key
	}

	if !rec.Timestamp.IsZero() {
		ms := rec.Timestamp.UnixMilli()
		ev.Timestamp = &ms
	}

	return ev, fallbacks
}

func decodeText(b []byte) (string, bool) {
	if !utf8.Valid(b) {
		return "", false
	}
	return string(b), true
}

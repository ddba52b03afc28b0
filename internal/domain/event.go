// Package domain - транспортно-нейтральные типы, которые мост отдаёт подписчикам.
package domain

import (
	"fmt"
	"time"
)

// RecordEvent - одна запись брокера в виде, пригодном для подписчика.
// Key равен nil, если у записи нет ключа; Timestamp - epoch millis или nil.
type RecordEvent struct {
	Key       *string `json:"key"`
	Payload   string  `json:"payload"`
	Topic     string  `json:"topic"`
	Partition int32   `json:"partition"`
	Offset    int64   `json:"offset"`
	Timestamp *int64  `json:"timestamp"`
}

// ID - уникальный в пределах кластера идентификатор записи: topic/partition/offset.
func (e *RecordEvent) ID() string {
	return fmt.Sprintf("%s/%d/%d", e.Topic, e.Partition, e.Offset)
}

// Clone - глубокая копия (ключ и таймстемп - указатели).
func (e *RecordEvent) Clone() *RecordEvent {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Key != nil {
		k := *e.Key
		cp.Key = &k
	}
	if e.Timestamp != nil {
		ts := *e.Timestamp
		cp.Timestamp = &ts
	}
	return &cp
}

// SessionState - жизненный цикл сессии потребления, как его видит подписчик.
type SessionState string

const (
	SessionStarted      SessionState = "started"
	SessionReceiveError SessionState = "receive-error"
	SessionStopped      SessionState = "stopped"
	SessionFailed       SessionState = "failed"
)

// SessionStatus - служебное событие: позволяет подписчику отличить
// «сообщений сейчас нет» от «сессия умерла».
type SessionStatus struct {
	SessionID string       `json:"session_id"`
	State     SessionState `json:"state"`
	Topics    []string     `json:"topics,omitempty"`
	Error     string       `json:"error,omitempty"`
	At        time.Time    `json:"at"`
}

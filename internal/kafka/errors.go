package kafka

import (
	"errors"
	"fmt"
)

// Виды ошибок брокерного слоя. Сравнивать через errors.Is.
var (
	// ConfigError - фатальна при старте.
	ErrConfig = errors.New("invalid broker config")

	// SubscribeError.
	ErrInvalidTopics      = errors.New("invalid topics")
	ErrAlreadySubscribed  = errors.New("already subscribed")
	ErrSubscribeTransport = errors.New("subscribe transport failure")

	// SendError.
	ErrSendTransport = errors.New("send transport failure")
	ErrSendConfig    = errors.New("producer not configured")

	// RecvError.
	ErrRecvTransport     = errors.New("receive transport failure")
	ErrRecvCancelled     = errors.New("receive cancelled")
	ErrReceiveInProgress = errors.New("another receive is in progress")

	// MetadataError.
	ErrMetadataTimeout   = errors.New("metadata request timed out")
	ErrMetadataTransport = errors.New("metadata transport failure")

	// ErrCommit - ручной коммит оффсетов не удался.
	ErrCommit = errors.New("offset commit failed")

	// ErrNotSubscribed - причина ErrRecvCancelled, когда подписки нет.
	ErrNotSubscribed = errors.New("not subscribed")
)

// Error - ошибка операции с брокером: вид (Kind) + исходная причина (Err).
// errors.Is совпадает и с видом, и с причиной.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("kafka %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("kafka %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func newError(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

package ports

import (
	"context"

	"github.com/Gunvolt24/kafkabridge/internal/domain"
)

// Subscriber - внешний получатель событий моста (браузер через SSE, терминал).
type Subscriber interface {
	// Publish доставляет событие записи. Блокируется не дольше, чем позволяет ctx;
	// ошибка означает, что событие не принято (хотя бы одним получателем).
	Publish(ctx context.Context, ev *domain.RecordEvent) error
	// Notify - служебное событие жизненного цикла сессии, best-effort без блокировки.
	Notify(ctx context.Context, st domain.SessionStatus)
}

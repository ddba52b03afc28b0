// Package console - подписчик моста, печатающий события в терминал.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/Gunvolt24/kafkabridge/internal/domain"
	"github.com/Gunvolt24/kafkabridge/internal/ports"
)

var _ ports.Subscriber = (*Writer)(nil)

// Writer пишет каждое событие одной JSON-строкой в out; статусы сессии уходят в лог.
type Writer struct {
	log ports.Logger

	mu  sync.Mutex
	out io.Writer
	enc *json.Encoder
	n   int64
}

func NewWriter(out io.Writer, log ports.Logger) *Writer {
	return &Writer{log: log, out: out, enc: json.NewEncoder(out)}
}

func (w *Writer) Publish(ctx context.Context, ev *domain.RecordEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.enc.Encode(ev); err != nil {
		return fmt.Errorf("console: write event %s: %w", ev.ID(), err)
	}
	w.n++
	return nil
}

func (w *Writer) Notify(ctx context.Context, st domain.SessionStatus) {
	if st.Error != "" {
		w.log.Warnf(ctx, "consumer session %s %s topics=%v: %s", st.SessionID, st.State, st.Topics, st.Error)
		return
	}
	w.log.Infof(ctx, "consumer session %s %s topics=%v", st.SessionID, st.State, st.Topics)
}

// Written - сколько событий напечатано.
func (w *Writer) Written() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

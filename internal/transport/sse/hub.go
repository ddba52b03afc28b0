// Package sse раздаёт события моста браузерам по Server-Sent Events.
package sse

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/domain"
	"github.com/Gunvolt24/kafkabridge/internal/ports"
	"github.com/Gunvolt24/kafkabridge/pkg/ctxmeta"
	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Имена SSE-событий.
const (
	EventConnected = "connected"
	EventMessage   = "update-message"
	EventStatus    = "consumer-status"
)

var (
	ErrSlowClient = errors.New("sse client is not keeping up")
	ErrHubClosed  = errors.New("sse hub closed")
)

var _ ports.Subscriber = (*Hub)(nil)

// replayStore - буфер последних событий для новых подключений.
type replayStore interface {
	Add(ctx context.Context, ev *domain.RecordEvent)
	Snapshot(ctx context.Context) []*domain.RecordEvent
}

type Options struct {
	ClientBuffer int           // размер очереди на одного клиента
	KeepAlive    time.Duration // период комментария-пинга; 0 - выключен
}

type message struct {
	id    string
	event string
	data  any
}

type client struct {
	id        string
	ch        chan message
	done      chan struct{}
	closeOnce sync.Once
}

func (cl *client) close() {
	cl.closeOnce.Do(func() { close(cl.done) })
}

// Hub - подписчик моста, который веером раздаёт события всем подключённым клиентам.
type Hub struct {
	log          ports.Logger
	replay       replayStore
	clientBuffer int
	keepAlive    time.Duration

	mu         sync.RWMutex
	clients    map[string]*client
	lastStatus *domain.SessionStatus
	closed     bool
}

// NewHub - replay может быть nil, тогда новые клиенты получают только свежие события.
func NewHub(log ports.Logger, replay replayStore, opts Options) *Hub {
	buf := opts.ClientBuffer
	if buf <= 0 {
		buf = 64
	}
	return &Hub{
		log:          log,
		replay:       replay,
		clientBuffer: buf,
		keepAlive:    opts.KeepAlive,
		clients:      make(map[string]*client),
	}
}

// Publish кладёт событие в очередь каждого клиента, ожидая не дольше ctx.
// Клиент, не успевший принять событие, отключается: браузер переподключится
// и получит пропущенное из буфера повторов.
func (h *Hub) Publish(ctx context.Context, ev *domain.RecordEvent) error {
	if ev == nil {
		return nil
	}
	if h.replay != nil {
		h.replay.Add(ctx, ev)
	}

	msg := message{id: ev.ID(), event: EventMessage, data: ev}

	var slow []*client
	for _, cl := range h.snapshotClients() {
		if !offer(ctx, cl, msg) {
			slow = append(slow, cl)
		}
	}
	if len(slow) == 0 {
		return nil
	}

	for _, cl := range slow {
		h.log.Warnf(ctx, "sse client %s is too slow, disconnecting", cl.id)
		h.unregister(cl)
	}
	return fmt.Errorf("%w: %d client(s) dropped event %s", ErrSlowClient, len(slow), ev.ID())
}

// offer - false, только если у клиента так и не освободилось место до истечения ctx.
// Клиент со свободной очередью получает событие и после истечения ctx.
func offer(ctx context.Context, cl *client, msg message) bool {
	select {
	case cl.ch <- msg:
		return true
	case <-cl.done:
		return true
	default:
	}
	if ctx.Err() != nil {
		return false
	}

	select {
	case cl.ch <- msg:
		return true
	case <-cl.done:
		return true
	case <-ctx.Done():
		return false
	}
}

// Notify рассылает статус сессии без ожидания; клиенты с полной очередью его пропускают.
func (h *Hub) Notify(_ context.Context, st domain.SessionStatus) {
	h.mu.Lock()
	h.lastStatus = &st
	h.mu.Unlock()

	msg := message{event: EventStatus, data: st}
	for _, cl := range h.snapshotClients() {
		select {
		case cl.ch <- msg:
		default:
		}
	}
}

// Clients - число подключённых клиентов.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close отключает всех клиентов; новые подключения получают 503.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for id, cl := range h.clients {
		cl.close()
		delete(h.clients, id)
	}
	metrics.SSEClients.Set(0)
}

// ServeSSE - gin-хендлер потока событий. Держит соединение, пока клиент
// не отключится или хаб не закроется.
func (h *Hub) ServeSSE(c *gin.Context) {
	ctx := c.Request.Context()

	rid, _ := ctxmeta.RequestIDFromContext(ctx)
	cl, err := h.register(rid)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	defer h.unregister(cl)
	h.log.Infof(ctx, "sse client %s connected clients=%d", cl.id, h.Clients())

	// поток живёт дольше WriteTimeout сервера
	rc := http.NewResponseController(c.Writer)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil && !errors.Is(err, http.ErrNotSupported) {
		h.log.Warnf(ctx, "sse: reset write deadline: %v", err)
	}

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	replayed, err := h.writeInitial(ctx, w, cl, c.GetHeader("Last-Event-ID"))
	if err != nil {
		return
	}

	var tick <-chan time.Time
	if h.keepAlive > 0 {
		t := time.NewTicker(h.keepAlive)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-cl.done:
			return
		case msg := <-cl.ch:
			// событие, опубликованное между регистрацией и снимком буфера, уже отправлено
			if _, dup := replayed[msg.id]; dup && msg.event == EventMessage {
				delete(replayed, msg.id)
				continue
			}
			if err := writeMessage(w, msg); err != nil {
				h.log.Warnf(ctx, "sse client %s write failed: %v", cl.id, err)
				return
			}
		case <-tick:
			if _, err := w.WriteString(": keepalive\n\n"); err != nil {
				return
			}
			w.Flush()
		}
	}
}

// writeInitial - приветствие, затем пропущенные события и последний статус.
// Если клиент прислал Last-Event-ID, повторяются только события после него.
// Возвращает id отправленных повторов.
func (h *Hub) writeInitial(ctx context.Context, w gin.ResponseWriter, cl *client, lastID string) (map[string]struct{}, error) {
	if err := writeMessage(w, message{event: EventConnected, data: gin.H{"client_id": cl.id}}); err != nil {
		return nil, err
	}

	replayed := make(map[string]struct{})

	if h.replay != nil {
		events := h.replay.Snapshot(ctx)
		if lastID != "" {
			for i, ev := range events {
				if ev.ID() == lastID {
					events = events[i+1:]
					break
				}
			}
		}
		for _, ev := range events {
			if err := writeMessage(w, message{id: ev.ID(), event: EventMessage, data: ev}); err != nil {
				return nil, err
			}
			replayed[ev.ID()] = struct{}{}
		}
	}

	h.mu.RLock()
	st := h.lastStatus
	h.mu.RUnlock()
	if st != nil {
		if err := writeMessage(w, message{event: EventStatus, data: *st}); err != nil {
			return nil, err
		}
	}
	return replayed, nil
}

func writeMessage(w gin.ResponseWriter, msg message) error {
	err := sse.Encode(w, sse.Event{
		Id:    msg.id,
		Event: msg.event,
		Data:  msg.data,
	})
	if err != nil {
		return err
	}
	w.Flush()
	return nil
}

// register - id клиента берётся из X-Request-ID; пустой или уже занятый
// заменяется UUID, чтобы переподключение с тем же заголовком не вытесняло живой поток.
func (h *Hub) register(requestID string) (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	id := requestID
	if _, taken := h.clients[id]; id == "" || taken {
		id = uuid.NewString()
	}
	cl := &client{
		id:   id,
		ch:   make(chan message, h.clientBuffer),
		done: make(chan struct{}),
	}
	h.clients[cl.id] = cl
	metrics.SSEClients.Set(float64(len(h.clients)))
	return cl, nil
}

func (h *Hub) unregister(cl *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cl.close()
	if _, ok := h.clients[cl.id]; ok {
		delete(h.clients, cl.id)
		metrics.SSEClients.Set(float64(len(h.clients)))
	}
}

func (h *Hub) snapshotClients() []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*client, 0, len(h.clients))
	for _, cl := range h.clients {
		out = append(out, cl)
	}
	return out
}

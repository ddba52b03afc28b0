// Package memory - in-memory буфер последних событий для повторной отдачи новым SSE-клиентам.
package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/domain"
	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
)

type entry struct {
	id        string
	event     *domain.RecordEvent
	expiresAt time.Time
}

// RecentEvents хранит не больше capacity последних событий; старые вытесняются,
// просроченные по TTL выбрасываются при записи и чтении.
type RecentEvents struct {
	capacity int
	ttl      time.Duration

	ll    *list.List // front - самое свежее
	index map[string]*list.Element

	mu sync.Mutex
}

func NewRecentEvents(capacity int, ttl time.Duration) *RecentEvents {
	if capacity <= 0 {
		capacity = 1
	}
	return &RecentEvents{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

// Add запоминает копию события. Повтор того же topic/partition/offset
// обновляет запись и делает её самой свежей.
func (c *RecentEvents) Add(_ context.Context, ev *domain.RecordEvent) {
	if ev == nil {
		return
	}
	id := ev.ID()
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[id]; ok {
		ent := elem.Value.(*entry)
		ent.event = ev.Clone()
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		metrics.ReplayOps.WithLabelValues("updated").Inc()
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        id,
		event:     ev.Clone(),
		expiresAt: c.expiryFrom(now),
	})
	c.index[id] = elem
	metrics.ReplayOps.WithLabelValues("added").Inc()

	if c.ll.Len() > c.capacity {
		c.evictOldest()
	}
	metrics.ReplaySize.Set(float64(c.ll.Len()))
}

// Snapshot - копии актуальных событий от старых к новым.
func (c *RecentEvents) Snapshot(_ context.Context) []*domain.RecordEvent {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneExpiredFromBack(now)
	metrics.ReplaySize.Set(float64(c.ll.Len()))
	metrics.ReplayOps.WithLabelValues("snapshot").Inc()

	out := make([]*domain.RecordEvent, 0, c.ll.Len())
	for elem := c.ll.Back(); elem != nil; elem = elem.Prev() {
		out = append(out, elem.Value.(*entry).event.Clone())
	}
	return out
}

func (c *RecentEvents) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

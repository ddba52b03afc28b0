package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/kafkabridge/pkg/metrics"
)

// evictOldest - удаляет самое старое событие.
func (c *RecentEvents) evictOldest() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.ReplayOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement - удаляет элемент из списка и индекса.
func (c *RecentEvents) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.id)
	}
	c.ll.Remove(elem)
}

// expiryFrom - вычисляет момент истечения для текущего времени.
func (c *RecentEvents) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack - удаляет события с истекшим TTL из хвоста до первого актуального.
// Хвост всегда старше головы, поэтому проверять дальше первого живого не нужно.
func (c *RecentEvents) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent, ok := back.Value.(*entry)
		if !ok || now.After(ent.expiresAt) {
			c.removeElement(back)
			metrics.ReplayOps.WithLabelValues("expired").Inc()
			continue
		}
		return
	}
}

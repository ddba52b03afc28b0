package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/kafkabridge/internal/domain"
)

func newEvent(offset int64) *domain.RecordEvent {
	key := "key"
	return &domain.RecordEvent{
		Key:     &key,
		Payload: "value",
		Topic:   "rust",
		Offset:  offset,
	}
}

func TestAddSnapshot_OldestFirst(t *testing.T) {
	c := NewRecentEvents(10, 0)
	ctx := context.Background()

	if got := c.Snapshot(ctx); len(got) != 0 {
		t.Fatalf("expected empty snapshot, got %d", len(got))
	}

	for i := int64(1); i <= 3; i++ {
		c.Add(ctx, newEvent(i))
	}
	got := c.Snapshot(ctx)
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	for i, ev := range got {
		if ev.Offset != int64(i+1) {
			t.Fatalf("position %d: expected offset %d, got %d", i, i+1, ev.Offset)
		}
	}
}

func TestCapacityEviction(t *testing.T) {
	c := NewRecentEvents(2, 0)
	ctx := context.Background()

	c.Add(ctx, newEvent(1))
	c.Add(ctx, newEvent(2))
	c.Add(ctx, newEvent(3))

	got := c.Snapshot(ctx)
	if len(got) != 2 || got[0].Offset != 2 || got[1].Offset != 3 {
		t.Fatalf("expected offsets [2 3], got %+v", got)
	}
	if c.Len() != 2 || len(c.index) != 2 {
		t.Fatalf("list and index must stay in sync")
	}
}

func TestAdd_SameIDRefreshes(t *testing.T) {
	c := NewRecentEvents(2, 0)
	ctx := context.Background()

	c.Add(ctx, newEvent(1))
	c.Add(ctx, newEvent(2))
	// повтор offset 1 становится самым свежим, вытесняться будет 2
	c.Add(ctx, newEvent(1))
	c.Add(ctx, newEvent(3))

	got := c.Snapshot(ctx)
	if len(got) != 2 || got[0].Offset != 1 || got[1].Offset != 3 {
		t.Fatalf("expected offsets [1 3], got %+v", got)
	}
}

func TestTTL_Expiry(t *testing.T) {
	c := NewRecentEvents(10, 100*time.Millisecond)
	ctx := context.Background()

	c.Add(ctx, newEvent(1))
	if len(c.Snapshot(ctx)) != 1 {
		t.Fatalf("expected event right after Add")
	}
	time.Sleep(150 * time.Millisecond)
	if got := c.Snapshot(ctx); len(got) != 0 {
		t.Fatalf("expected empty snapshot after TTL, got %d", len(got))
	}
	if c.Len() != 0 {
		t.Fatalf("expired events must be removed")
	}
}

func TestCloneImmutability(t *testing.T) {
	c := NewRecentEvents(1, 0)
	ctx := context.Background()

	orig := newEvent(1)
	c.Add(ctx, orig)
	*orig.Key = "changed-before-read"

	first := c.Snapshot(ctx)[0]
	if *first.Key != "key" {
		t.Fatalf("cache must store a copy, got key %q", *first.Key)
	}
	*first.Key = "changed"
	first.Payload = "changed"

	second := c.Snapshot(ctx)[0]
	if *second.Key != "key" || second.Payload != "value" {
		t.Fatalf("snapshot must return copies")
	}
}

func TestAdd_NilAndZeroCapacity(t *testing.T) {
	c := NewRecentEvents(0, 0)
	ctx := context.Background()

	c.Add(ctx, nil)
	if c.Len() != 0 {
		t.Fatalf("nil event must be ignored")
	}
	c.Add(ctx, newEvent(1))
	c.Add(ctx, newEvent(2))
	if c.Len() != 1 {
		t.Fatalf("capacity must be clamped to 1, got %d", c.Len())
	}
}

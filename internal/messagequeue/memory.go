package messagequeue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
)

// MemoryConfig configures the in-memory FIFO queue
type MemoryConfig struct {
	// VisibilityTimeout is how long a polled message stays hidden before redelivery
	VisibilityTimeout time.Duration
	// DedupWindow is how long a dedup ID suppresses repeated sends
	DedupWindow time.Duration
}

// DefaultMemoryConfig mirrors the SQS FIFO defaults
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		VisibilityTimeout: 30 * time.Second,
		DedupWindow:       5 * time.Minute,
	}
}

type memoryEntry struct {
	id        string
	body      []byte
	receipt   string
	visibleAt time.Time
}

// MemoryQueue is an in-process FIFO queue with SQS FIFO semantics.
// It is the deterministic queue used in tests and single-process deployments.
type MemoryQueue struct {
	mu     sync.Mutex
	cfg    MemoryConfig
	clock  adapter.Clock
	groups map[string][]*memoryEntry
	dedup  map[string]time.Time
}

// NewMemoryQueue creates an empty in-memory queue
func NewMemoryQueue(cfg MemoryConfig, clock adapter.Clock) *MemoryQueue {
	return &MemoryQueue{
		cfg:    cfg,
		clock:  clock,
		groups: make(map[string][]*memoryEntry),
		dedup:  make(map[string]time.Time),
	}
}

func (q *MemoryQueue) Send(ctx context.Context, msg *Message, dedupID, group string) error {
	body, err := Encode(msg)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.clock.Now()
	q.expireDedup(now)
	if _, ok := q.dedup[dedupID]; ok {
		return nil
	}
	q.dedup[dedupID] = now.Add(q.cfg.DedupWindow)

	q.groups[group] = append(q.groups[group], &memoryEntry{
		id:   uuid.NewString(),
		body: body,
	})
	return nil
}

func (q *MemoryQueue) Poll(ctx context.Context) (map[string][]Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.clock.Now()
	out := make(map[string][]Delivery)
	for group, entries := range q.groups {
		if q.blocked(entries, now) {
			continue
		}

		deliveries := make([]Delivery, 0, len(entries))
		for _, e := range entries {
			e.receipt = ulid.Make().String()
			e.visibleAt = now.Add(q.cfg.VisibilityTimeout)
			deliveries = append(deliveries, newDelivery(e.id, e.receipt, e.body))
		}
		out[group] = deliveries
	}

	return out, nil
}

func (q *MemoryQueue) Delete(ctx context.Context, receipt string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for group, entries := range q.groups {
		for i, e := range entries {
			if e.receipt != receipt || receipt == "" {
				continue
			}

			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(q.groups, group)
			} else {
				q.groups[group] = entries
			}
			return nil
		}
	}

	return fmt.Errorf("%w: %s", ErrUnknownReceipt, receipt)
}

// Len returns the number of messages not yet deleted
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := 0
	for _, entries := range q.groups {
		n += len(entries)
	}
	return n
}

// blocked reports whether any message of the group is still in flight
func (q *MemoryQueue) blocked(entries []*memoryEntry, now time.Time) bool {
	for _, e := range entries {
		if e.receipt != "" && now.Before(e.visibleAt) {
			return true
		}
	}
	return false
}

func (q *MemoryQueue) expireDedup(now time.Time) {
	for id, until := range q.dedup {
		if !now.Before(until) {
			delete(q.dedup, id)
		}
	}
}

package block

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/logger"
)

// head is the last chain head read from the node
type head struct {
	number    uint64
	fetchedAt time.Time
}

// HeadTracker reports the newest block that is deep enough to index.
// It caches the chain head for a TTL so that callers polling in a loop do not
// hit the RPC provider on every iteration.
//
//go:generate mockgen -source=head.go -destination=../mocks/block_head.go -package=mocks -mock_names=HeadTracker=MockHeadTracker,Fetcher=MockHeadFetcher
type HeadTracker interface {
	// LatestBlock returns the chain head, potentially from cache
	LatestBlock(ctx context.Context) (uint64, error)
	// ConfirmedHead returns the chain head minus the confirmation depth.
	// The bool is false while the chain is shorter than the confirmation depth.
	ConfirmedHead(ctx context.Context) (uint64, bool, error)
}

// Fetcher reads the chain head from a node
type Fetcher interface {
	LatestBlock(ctx context.Context) (uint64, error)
}

// Config holds configuration for the HeadTracker
type Config struct {
	// TTL is how long to cache the head
	TTL time.Duration

	// StaleWindow is how long a cached head may serve when fetching fails
	StaleWindow time.Duration

	// Confirmations is how many blocks a log must be buried under before it is indexed
	Confirmations uint64
}

type headTracker struct {
	fetcher Fetcher
	config  Config
	clock   adapter.Clock

	mu     sync.RWMutex
	cached *head
}

// NewHeadTracker creates a HeadTracker backed by fetcher
func NewHeadTracker(fetcher Fetcher, config Config, clock adapter.Clock) HeadTracker {
	return &headTracker{
		fetcher: fetcher,
		config:  config,
		clock:   clock,
	}
}

func (t *headTracker) LatestBlock(ctx context.Context) (uint64, error) {
	t.mu.RLock()
	cached := t.cached
	t.mu.RUnlock()

	now := t.clock.Now()

	if cached != nil && now.Sub(cached.fetchedAt) < t.config.TTL {
		logger.DebugCtx(ctx, "Using cached chain head", zap.Uint64("block_number", cached.number))
		return cached.number, nil
	}

	number, err := t.fetcher.LatestBlock(ctx)
	if err != nil {
		if cached != nil && now.Sub(cached.fetchedAt) < t.config.StaleWindow {
			logger.WarnCtx(ctx, "Serving stale chain head", zap.Uint64("block_number", cached.number), zap.Error(err))
			return cached.number, nil
		}
		return 0, fmt.Errorf("failed to fetch chain head and no valid cache available: %w", err)
	}

	// a node behind a load balancer may briefly report an older head
	if cached != nil && number < cached.number {
		number = cached.number
	}

	t.mu.Lock()
	t.cached = &head{number: number, fetchedAt: now}
	t.mu.Unlock()

	return number, nil
}

func (t *headTracker) ConfirmedHead(ctx context.Context) (uint64, bool, error) {
	latest, err := t.LatestBlock(ctx)
	if err != nil {
		return 0, false, err
	}
	if latest < t.config.Confirmations {
		return 0, false, nil
	}
	return latest - t.config.Confirmations, true, nil
}

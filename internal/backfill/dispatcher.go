package backfill

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/logger"
)

// ErrDispatcherStopped is returned when a backfill is dispatched after Stop
var ErrDispatcherStopped = errors.New("backfill dispatcher stopped")

// Dispatcher starts backfills without waiting for them
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/backfill_dispatcher.go -package=mocks -mock_names=Dispatcher=MockBackfillDispatcher
type Dispatcher interface {
	// Dispatch schedules a backfill of the account. A backfill already
	// running for the account absorbs the request.
	Dispatch(ctx context.Context, accountID uuid.UUID) error
}

// PoolConfig holds the configuration for the in-process dispatcher
type PoolConfig struct {
	// PoolSize is the number of backfills run concurrently
	PoolSize int
	// QueueSize bounds the backfills waiting for a worker
	QueueSize int
	// Timeout bounds one backfill, 0 for none
	Timeout time.Duration
}

// PoolDispatcher runs backfills on a bounded in-process worker pool
type PoolDispatcher struct {
	worker Worker
	config PoolConfig
	pool   pond.Pool
	ctx    context.Context

	mu      sync.Mutex
	running map[uuid.UUID]struct{}
}

// NewPoolDispatcher creates a dispatcher whose backfills run under ctx.
// Backfills outlive the request that dispatched them.
func NewPoolDispatcher(ctx context.Context, w Worker, cfg PoolConfig) *PoolDispatcher {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	return &PoolDispatcher{
		worker:  w,
		config:  cfg,
		pool:    pond.NewPool(cfg.PoolSize, pond.WithQueueSize(cfg.QueueSize), pond.WithContext(ctx)),
		ctx:     ctx,
		running: make(map[uuid.UUID]struct{}),
	}
}

func (d *PoolDispatcher) Dispatch(_ context.Context, accountID uuid.UUID) error {
	if d.pool.Stopped() {
		return ErrDispatcherStopped
	}

	d.mu.Lock()
	if _, ok := d.running[accountID]; ok {
		d.mu.Unlock()
		logger.Debug("Backfill already scheduled", logger.AccountID(accountID))
		return nil
	}
	d.running[accountID] = struct{}{}
	d.mu.Unlock()

	_, ok := d.pool.TrySubmit(func() {
		defer d.release(accountID)
		d.run(accountID)
	})
	if !ok {
		d.release(accountID)
		return errors.New("backfill queue is full")
	}

	return nil
}

func (d *PoolDispatcher) run(accountID uuid.UUID) {
	ctx := d.ctx
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	result, err := d.worker.BackfillAccount(ctx, accountID)
	if err != nil {
		logger.ErrorCtx(ctx, err, logger.AccountID(accountID), zap.String("message", "Backfill failed"))
		return
	}

	logger.InfoCtx(ctx, "Backfill finished",
		logger.AccountID(accountID),
		zap.Uint64("slots", result.Slots),
		zap.Int("messages", result.Messages))
}

func (d *PoolDispatcher) release(accountID uuid.UUID) {
	d.mu.Lock()
	delete(d.running, accountID)
	d.mu.Unlock()
}

// Stop waits for running and queued backfills
func (d *PoolDispatcher) Stop() {
	d.pool.StopAndWait()
}

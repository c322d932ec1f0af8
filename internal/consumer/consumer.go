// Package consumer drains the message queue into the state applicator.
//
// Each poll returns messages keyed by group. Groups are processed concurrently
// on a worker pool; the messages of one group are processed strictly in order,
// and a message that must be retried later stops the rest of its group. The
// consumer keeps polling while groups are in progress, so one slow group never
// holds back the others.
package consumer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/applicator"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/metrics"
)

// Config holds the configuration for the consumer
type Config struct {
	// PoolSize is the number of groups processed concurrently
	PoolSize int
	// QueueSize bounds the groups waiting for a worker
	QueueSize int
	// PollInterval is the pause after an empty or failed poll
	PollInterval time.Duration
	// DeferWindow is how long a message about an untracked object is retried in place
	// before it is re-routed, repaired by a backfill or dropped
	DeferWindow time.Duration
	// TransientRetryWindow is how long a transient failure is retried in place
	TransientRetryWindow time.Duration
	// InitialRetryInterval is the first backoff interval of both retry loops
	InitialRetryInterval time.Duration
}

// DefaultConfig returns the default consumer configuration
func DefaultConfig() Config {
	return Config{
		PoolSize:             16,
		QueueSize:            1024,
		PollInterval:         time.Second,
		DeferWindow:          10 * time.Second,
		TransientRetryWindow: 30 * time.Second,
		InitialRetryInterval: 200 * time.Millisecond,
	}
}

// Consumer defines the interface for the queue consumer
type Consumer interface {
	// Run polls the queue until ctx is cancelled
	Run(ctx context.Context) error
}

// GroupResolver resolves the account group of a recovery ID or nullifier message,
// returning "" when no registered account owns it
type GroupResolver interface {
	Message(ctx context.Context, msg *messagequeue.Message) (string, error)
}

type consumer struct {
	queue    messagequeue.MessageQueue
	handler  Handler
	resolver GroupResolver
	backfill applicator.BackfillTrigger
	config   Config
	clock    adapter.Clock
	pool     pond.Pool

	mu       sync.Mutex
	busy     map[string]bool
	inflight sync.WaitGroup
}

// NewConsumer creates a new queue consumer.
// resolver and backfill settle messages that stay untracked past the deferral window.
func NewConsumer(
	queue messagequeue.MessageQueue,
	h Handler,
	resolver GroupResolver,
	backfill applicator.BackfillTrigger,
	cfg Config,
	clock adapter.Clock,
) Consumer {
	def := DefaultConfig()
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = def.PoolSize
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}

	return &consumer{
		queue:    queue,
		handler:  h,
		resolver: resolver,
		backfill: backfill,
		config:   cfg,
		clock:    clock,
		busy:     make(map[string]bool),
	}
}

// Run polls the queue and dispatches each group to the worker pool.
// It waits for in-flight groups before returning.
func (c *consumer) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Starting queue consumer",
		zap.Int("pool_size", c.config.PoolSize),
		zap.Duration("defer_window", c.config.DeferWindow))

	c.pool = pond.NewPool(
		c.config.PoolSize,
		pond.WithQueueSize(c.config.QueueSize),
		pond.WithContext(ctx),
	)
	defer c.pool.StopAndWait()

	for {
		if ctx.Err() != nil {
			logger.InfoCtx(ctx, "Shutting down queue consumer")
			return ctx.Err()
		}

		n, err := c.pollOnce(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logger.WarnCtx(ctx, "Failed to poll queue", zap.Error(err))
		}
		if err != nil || n == 0 {
			select {
			case <-ctx.Done():
			case <-c.clock.After(c.config.PollInterval):
			}
		}
	}
}

// pollOnce submits the groups of one poll to the pool without waiting for
// them and returns the number of deliveries submitted
func (c *consumer) pollOnce(ctx context.Context) (int, error) {
	polled, err := c.queue.Poll(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, deliveries := range polled {
		total += len(deliveries)
	}
	if total == 0 {
		return 0, nil
	}
	metrics.MessagesPolledAdd(total)

	submitted := 0
	for group, deliveries := range polled {
		if !c.claim(group) {
			// the queue handed the group out again after its visibility
			// timeout; these deliveries come back once the first run ends
			logger.WarnCtx(ctx, "Group still in progress, skipping its redelivery",
				zap.String("group", group),
				zap.Int("deliveries", len(deliveries)))
			continue
		}

		c.inflight.Add(1)
		submitted += len(deliveries)
		c.pool.Submit(func() {
			defer c.inflight.Done()
			defer c.release(group)
			c.processGroup(ctx, group, deliveries)
		})
	}

	return submitted, nil
}

func (c *consumer) claim(group string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy[group] {
		return false
	}
	c.busy[group] = true
	return true
}

func (c *consumer) release(group string) {
	c.mu.Lock()
	delete(c.busy, group)
	c.mu.Unlock()
}

// processGroup handles a group's deliveries in order, stopping at the first one left in the queue
func (c *consumer) processGroup(ctx context.Context, group string, deliveries []messagequeue.Delivery) {
	start := c.clock.Now()
	defer func() {
		metrics.GroupDuration(c.clock.Since(start))
	}()

	for _, d := range deliveries {
		if !c.process(ctx, group, d) {
			return
		}
	}
}

// process handles one delivery and reports whether the rest of the group may proceed
func (c *consumer) process(ctx context.Context, group string, d messagequeue.Delivery) bool {
	fields := []zap.Field{
		zap.String("group", group),
		zap.String("message_id", d.MessageID),
	}

	if d.Err != nil {
		logger.ErrorCtx(ctx, d.Err, append(fields, zap.String("message", "Dropping undecodable message"))...)
		return c.delete(ctx, d, metrics.MessageDeadLettered, fields)
	}
	fields = append(fields, zap.String("kind", d.Message.Kind()), zap.Bool("backfill", d.Message.IsBackfill()))

	err := c.handle(ctx, d.Message)
	switch {
	case err == nil:
		return c.delete(ctx, d, metrics.MessageDeleted, fields)

	case domain.IsConsistency(err):
		// left for the queue's redrive policy
		logger.ErrorCtx(ctx, err, append(fields, zap.String("message", "Consistency violation, leaving message in queue"))...)
		metrics.MessageInc(metrics.MessageRetained)
		return false

	case errors.Is(err, domain.ErrUntracked):
		return c.settleUntracked(ctx, group, d, fields)

	case domain.IsData(err):
		logger.ErrorCtx(ctx, err, append(fields, zap.String("message", "Dropping message with invalid data"))...)
		return c.delete(ctx, d, metrics.MessageDeadLettered, fields)

	default:
		logger.WarnCtx(ctx, "Message failed, leaving it for redelivery", append(fields, zap.Error(err))...)
		metrics.MessageInc(metrics.MessageRetained)
		return false
	}
}

// handle runs the handler, retrying transient failures and untracked objects
// with backoff inside their windows
func (c *consumer) handle(ctx context.Context, msg *messagequeue.Message) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.config.InitialRetryInterval
	b.MaxElapsedTime = max(c.config.TransientRetryWindow, c.config.DeferWindow)

	start := c.clock.Now()
	return backoff.Retry(func() error {
		err := c.handler.Handle(ctx, msg)
		switch {
		case err == nil:
			return nil
		case domain.IsConsistency(err), domain.IsData(err):
			return backoff.Permanent(err)
		case errors.Is(err, domain.ErrUntracked):
			if c.clock.Since(start) >= c.config.DeferWindow {
				return backoff.Permanent(err)
			}
			return err
		}

		if c.clock.Since(start) >= c.config.TransientRetryWindow {
			return backoff.Permanent(err)
		}
		logger.DebugCtx(ctx, "Retrying message", zap.String("kind", msg.Kind()), zap.Error(err))
		return err
	}, backoff.WithContext(b, ctx))
}

// settleUntracked handles a message whose target is still unknown after the
// deferral window. A fact that now resolves to another group is re-sent there.
// A fact that belongs to the account owning this group means the account
// missed a predecessor, so the account is backfilled. Anything else belongs to
// no registered account and is dropped.
func (c *consumer) settleUntracked(ctx context.Context, group string, d messagequeue.Delivery, fields []zap.Field) bool {
	target := ""
	if c.resolver != nil {
		var err error
		target, err = c.resolver.Message(ctx, d.Message)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to resolve untracked message, leaving it for redelivery", append(fields, zap.Error(err))...)
			metrics.MessageInc(metrics.MessageRetained)
			return false
		}
	}

	if target != "" && target != group {
		if err := c.queue.Send(ctx, d.Message, "reroute:"+d.Message.DedupID(), target); err != nil {
			logger.WarnCtx(ctx, "Failed to re-route message, leaving it for redelivery", append(fields, zap.Error(err))...)
			metrics.MessageInc(metrics.MessageRetained)
			return false
		}
		logger.InfoCtx(ctx, "Re-routed message to its account group", append(fields, zap.String("target", target))...)
		return c.delete(ctx, d, metrics.MessageRerouted, fields)
	}

	if target == "" {
		target = group
	}
	accountID, err := uuid.Parse(target)
	if err != nil || c.backfill == nil {
		logger.DebugCtx(ctx, "Dropping message about an untracked object", fields...)
		return c.delete(ctx, d, metrics.MessageDeferred, fields)
	}

	if err := c.backfill.Dispatch(ctx, accountID); err != nil {
		logger.WarnCtx(ctx, "Failed to start backfill for untracked message, leaving it for redelivery",
			append(fields, zap.Error(err))...)
		metrics.MessageInc(metrics.MessageRetained)
		return false
	}
	logger.InfoCtx(ctx, "Account missed a predecessor, backfill started", append(fields, logger.AccountID(accountID))...)
	return c.delete(ctx, d, metrics.MessageBackfilled, fields)
}

func (c *consumer) delete(ctx context.Context, d messagequeue.Delivery, outcome string, fields []zap.Field) bool {
	if err := c.queue.Delete(ctx, d.Receipt); err != nil {
		// the message comes back after its visibility timeout; later messages must wait for it
		logger.WarnCtx(ctx, "Failed to delete message", append(fields, zap.Error(err))...)
		return false
	}

	metrics.MessageInc(outcome)
	return true
}

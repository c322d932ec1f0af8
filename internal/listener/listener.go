// Package listener turns darkpool contract logs into queue messages.
package listener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/block"
	"github.com/feral-file/darkpool-indexer/internal/chain"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/metrics"
	"github.com/feral-file/darkpool-indexer/internal/routing"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

// Config holds the configuration for the chain listener
type Config struct {
	// StartBlock is where scanning begins when no position has been recorded.
	// A recorded position below it is skipped.
	StartBlock uint64
	// MaxBlockRange caps the number of blocks read per scan
	MaxBlockRange uint64
	// PollInterval is how long to wait once the listener has caught up with the head
	PollInterval time.Duration
	// MaxRetryInterval caps the backoff after a failed scan
	MaxRetryInterval time.Duration
}

// Listener defines the interface for the chain event listener
type Listener interface {
	// Run scans confirmed blocks until ctx is cancelled
	Run(ctx context.Context) error
	// Close releases the chain connection
	Close()
}

type listener struct {
	chain   chain.Client
	head    block.HeadTracker
	queue   messagequeue.MessageQueue
	router  routing.Router
	cursors store.CursorStore
	config  Config
	clock   adapter.Clock
}

// NewListener creates a new chain listener
func NewListener(
	chainClient chain.Client,
	head block.HeadTracker,
	queue messagequeue.MessageQueue,
	router routing.Router,
	cursors store.CursorStore,
	cfg Config,
	clock adapter.Clock,
) Listener {
	if cfg.MaxBlockRange == 0 {
		cfg.MaxBlockRange = 1000
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxRetryInterval == 0 {
		cfg.MaxRetryInterval = time.Minute
	}

	return &listener{
		chain:   chainClient,
		head:    head,
		queue:   queue,
		router:  router,
		cursors: cursors,
		config:  cfg,
		clock:   clock,
	}
}

// Run resumes after the last block it sent and follows the confirmed head.
// Failed scans are retried with exponential backoff; Run only returns when ctx is done.
func (l *listener) Run(ctx context.Context) error {
	next, err := l.resumeBlock(ctx)
	if err != nil {
		return err
	}
	logger.InfoCtx(ctx, "Starting chain listener", zap.Uint64("block", next))

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = l.config.MaxRetryInterval
	bo.MaxElapsedTime = 0

	for {
		wait := time.Duration(0)

		scanned, caughtUp, err := l.scan(ctx, next)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait = bo.NextBackOff()
			logger.WarnCtx(ctx, "Chain scan failed, retrying",
				zap.Uint64("from_block", next),
				zap.Duration("retry_in", wait),
				zap.Error(err))
		case caughtUp:
			bo.Reset()
			wait = l.config.PollInterval
		default:
			bo.Reset()
			next = scanned + 1
			metrics.ListenerBlockSet(scanned)
		}

		if wait == 0 {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.clock.After(wait):
		}
	}
}

// Close closes the chain connection
func (l *listener) Close() {
	l.chain.Close()
}

// resumeBlock returns the block after the last fully sent one. Without a
// recorded position it falls back to the lowest block any event kind still
// needs, resuming at a cursor's own block since only some facts of that block
// may have been applied. Re-sent facts are idempotent.
func (l *listener) resumeBlock(ctx context.Context) (uint64, error) {
	sent, ok, err := l.cursors.GetListenerBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get listener position: %w", err)
	}
	if ok {
		return max(sent+1, l.config.StartBlock), nil
	}

	var start *uint64
	for _, kind := range domain.EventKinds {
		cursor, err := l.cursors.GetLastIndexedBlock(ctx, kind)
		if err != nil {
			return 0, fmt.Errorf("failed to get %s cursor: %w", kind, err)
		}

		b := l.config.StartBlock
		if cursor > b {
			b = cursor
		}
		if start == nil || b < *start {
			start = &b
		}
	}

	return *start, nil
}

// scan reads one range of confirmed blocks starting at from and sends its facts.
// It returns the last block scanned, or caughtUp when from is beyond the confirmed head.
func (l *listener) scan(ctx context.Context, from uint64) (last uint64, caughtUp bool, err error) {
	head, ok, err := l.head.ConfirmedHead(ctx)
	if err != nil {
		return 0, false, err
	}
	if !ok || from > head {
		return 0, true, nil
	}

	to := from + l.config.MaxBlockRange - 1
	if to > head || to < from {
		to = head
	}

	events, err := l.chain.FilterEvents(ctx, from, to)
	if err != nil {
		return 0, false, err
	}

	for _, ev := range events {
		if err := l.send(ctx, ev); err != nil {
			return 0, false, err
		}
	}

	if err := l.cursors.AdvanceListenerBlock(ctx, to); err != nil {
		return 0, false, err
	}

	logger.DebugCtx(ctx, "Scanned blocks",
		zap.Uint64("from_block", from),
		zap.Uint64("to_block", to),
		zap.Int("events", len(events)))

	return to, false, nil
}

func (l *listener) send(ctx context.Context, ev chain.Event) error {
	msg, err := messageFor(ev)
	if err != nil {
		return err
	}

	group, err := l.group(ctx, ev)
	if err != nil {
		return err
	}
	if group == "" {
		group = msg.FactKey()
	}

	if err := l.queue.Send(ctx, msg, msg.DedupID(), group); err != nil {
		return fmt.Errorf("failed to send %s message: %w", msg.Kind(), err)
	}

	metrics.ListenerMessageInc(msg.Kind())
	logger.DebugCtx(ctx, "Sent chain fact",
		zap.String("kind", msg.Kind()),
		zap.String("group", group),
		zap.Uint64("block_number", ev.BlockNumber),
		zap.String("tx_hash", ev.TxHash.Hex()))
	return nil
}

// group resolves the account that owns the fact so that its messages are
// ordered with the rest of that account's traffic. Unknown facts return "".
func (l *listener) group(ctx context.Context, ev chain.Event) (string, error) {
	switch ev.Type {
	case chain.EventRecoveryIDRegistered:
		return l.router.RecoveryID(ctx, ev.RecoveryID)
	case chain.EventNullifierSpent:
		return l.router.Nullifier(ctx, ev.Nullifier)
	}
	return l.router.Owner(ctx, ev.Owner)
}

var errUnknownEvent = errors.New("unknown event type")

func messageFor(ev chain.Event) (*messagequeue.Message, error) {
	switch ev.Type {
	case chain.EventRecoveryIDRegistered:
		return messagequeue.NewRegisterRecoveryID(ev.RecoveryID, ev.TxHash, false), nil
	case chain.EventNullifierSpent:
		return messagequeue.NewNullifierSpend(ev.Nullifier, ev.TxHash, false), nil
	case chain.EventPublicIntentCreated:
		return messagequeue.NewCreatePublicIntent(ev.IntentHash, ev.TxHash, false), nil
	case chain.EventPublicIntentUpdated:
		return messagequeue.NewUpdatePublicIntent(ev.IntentHash, ev.Version, ev.TxHash, false), nil
	case chain.EventPublicIntentCancelled:
		return messagequeue.NewCancelPublicIntent(ev.IntentHash, ev.Version, ev.TxHash, false), nil
	}
	return nil, fmt.Errorf("%w: %s", errUnknownEvent, ev.Type)
}

// Package backfill reconstructs an account's state from the chain.
//
// The worker walks the account's object slots in order, looking up each slot's
// recovery ID on chain and then each successive nullifier of the slot's
// object, and enqueues every fact it finds into the account's message group.
// The consumer applies them like live facts, so backfill only reads state and
// sends messages.
package backfill

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/chain"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/metrics"
	"github.com/feral-file/darkpool-indexer/internal/store"
	"github.com/feral-file/darkpool-indexer/internal/streams"
)

//go:generate mockgen -source=worker.go -destination=../mocks/backfill.go -package=mocks -mock_names=Worker=MockBackfillWorker

// Worker reconstructs accounts
type Worker interface {
	// BackfillAccount enqueues every on-chain fact of the account
	BackfillAccount(ctx context.Context, accountID uuid.UUID) (*Result, error)
}

// Result summarizes a backfill run
type Result struct {
	// Slots is the number of object slots found on chain
	Slots uint64 `json:"slots"`
	// Messages is the number of messages enqueued
	Messages int `json:"messages"`
}

// Config holds the configuration for the backfill worker
type Config struct {
	// MaxSlots bounds the slot walk of one account
	MaxSlots uint64
	// MaxVersions bounds the nullifier walk of one object
	MaxVersions uint64
}

type worker struct {
	store  store.Store
	chain  chain.Client
	queue  messagequeue.MessageQueue
	config Config
	clock  adapter.Clock
}

// NewWorker creates a new backfill worker
func NewWorker(st store.Store, chainClient chain.Client, queue messagequeue.MessageQueue, cfg Config, clock adapter.Clock) Worker {
	if cfg.MaxSlots == 0 {
		cfg.MaxSlots = 100_000
	}
	if cfg.MaxVersions == 0 {
		cfg.MaxVersions = 1_000_000
	}

	return &worker{
		store:  st,
		chain:  chainClient,
		queue:  queue,
		config: cfg,
		clock:  clock,
	}
}

// run carries the state of one backfill
type run struct {
	accountID uuid.UUID
	group     string
	result    Result
}

func (w *worker) BackfillAccount(ctx context.Context, accountID uuid.UUID) (*Result, error) {
	start := w.clock.Now()

	result, err := w.backfill(ctx, accountID)

	outcome := "succeeded"
	if err != nil {
		outcome = "failed"
	}
	metrics.BackfillObserve(outcome, w.clock.Since(start))

	return result, err
}

func (w *worker) backfill(ctx context.Context, accountID uuid.UUID) (*Result, error) {
	seed, err := w.store.GetMasterViewSeed(ctx, accountID)
	if err != nil {
		return nil, domain.NewTransientError("backfill", fmt.Errorf("failed to get master view seed: %w", err))
	}
	if seed == nil {
		return nil, domain.NewDataError("backfill", fmt.Errorf("%w: %s", domain.ErrMasterViewSeedNotFound, accountID))
	}

	r := &run{accountID: accountID, group: accountID.String()}
	logger.InfoCtx(ctx, "Starting account backfill", logger.AccountID(accountID))

	if err := w.walkSlots(ctx, r, seed); err != nil {
		return nil, err
	}
	if err := w.publicIntents(ctx, r, seed); err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Account backfill enqueued",
		logger.AccountID(accountID),
		zap.Uint64("slots", r.result.Slots),
		zap.Int("messages", r.result.Messages))

	return &r.result, nil
}

// walkSlots visits slots in order until the first slot whose object was never created
func (w *worker) walkSlots(ctx context.Context, r *run, seed *domain.MasterViewSeed) error {
	for i := uint64(0); i < w.config.MaxSlots; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		slot := streams.DeriveSlot(seed.Seed, i)

		obj, err := w.store.GetStateObject(ctx, slot.RecoveryStreamSeed)
		if err != nil {
			return domain.NewTransientError("backfill", fmt.Errorf("failed to get object of slot %d: %w", i, err))
		}
		if obj != nil {
			r.result.Slots++
			if err := w.walkSpends(ctx, r, slot, obj.Version); err != nil {
				return err
			}
			continue
		}

		recoveryID := slot.RecoveryID(0)
		ev, err := w.chain.FindRecoveryIDRegistration(ctx, recoveryID)
		if err != nil {
			return err
		}
		if ev == nil {
			logger.DebugCtx(ctx, "Reached first unregistered slot",
				logger.AccountID(r.accountID),
				zap.Uint64("slot", i))
			return nil
		}

		r.result.Slots++
		if err := w.send(ctx, r, messagequeue.NewRegisterRecoveryID(recoveryID, ev.TxHash, true)); err != nil {
			return err
		}
		if err := w.walkSpends(ctx, r, slot, 0); err != nil {
			return err
		}
	}

	return domain.NewDataError("backfill", fmt.Errorf("account %s has more than %d slots", r.accountID, w.config.MaxSlots))
}

// walkSpends enqueues the spends of a slot's object from version v until the first unspent nullifier
func (w *worker) walkSpends(ctx context.Context, r *run, slot streams.Slot, v uint64) error {
	for limit := v + w.config.MaxVersions; v < limit; v++ {
		nullifier := slot.Nullifier(v)

		ev, err := w.chain.FindNullifierSpend(ctx, nullifier)
		if err != nil {
			return err
		}
		if ev == nil {
			return nil
		}

		if err := w.send(ctx, r, messagequeue.NewNullifierSpend(nullifier, ev.TxHash, true)); err != nil {
			return err
		}
	}

	return domain.NewDataError("backfill", fmt.Errorf("slot %d has more than %d versions", slot.Index, w.config.MaxVersions))
}

// publicIntents enqueues the public intent history of the account's owner address
func (w *worker) publicIntents(ctx context.Context, r *run, seed *domain.MasterViewSeed) error {
	events, err := w.chain.PublicIntentEventsByOwner(ctx, seed.OwnerAddress)
	if err != nil {
		return err
	}

	for _, ev := range events {
		var msg *messagequeue.Message
		switch ev.Type {
		case chain.EventPublicIntentCreated:
			msg = messagequeue.NewCreatePublicIntent(ev.IntentHash, ev.TxHash, true)
		case chain.EventPublicIntentUpdated:
			msg = messagequeue.NewUpdatePublicIntent(ev.IntentHash, ev.Version, ev.TxHash, true)
		case chain.EventPublicIntentCancelled:
			msg = messagequeue.NewCancelPublicIntent(ev.IntentHash, ev.Version, ev.TxHash, true)
		default:
			continue
		}

		if err := w.send(ctx, r, msg); err != nil {
			return err
		}
	}

	return nil
}

func (w *worker) send(ctx context.Context, r *run, msg *messagequeue.Message) error {
	if err := w.queue.Send(ctx, msg, msg.DedupID(), r.group); err != nil {
		return domain.NewTransientError("backfill", fmt.Errorf("failed to send %s: %w", msg.Kind(), err))
	}
	r.result.Messages++
	return nil
}


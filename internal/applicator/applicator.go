// Package applicator applies typed state transitions to the store.
// Every transition runs in one serializable transaction that checks the
// idempotency guard, mutates state, marks the guard and advances the
// resume cursor, so a transition may be retried or redelivered freely.
package applicator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/metrics"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

//go:generate mockgen -source=applicator.go -destination=../mocks/applicator.go -package=mocks -mock_names=Applicator=MockApplicator,BackfillTrigger=MockBackfillTrigger

// Applicator applies state transitions
type Applicator interface {
	// Apply applies a transition atomically. Applying an already applied
	// transition is a no-op.
	Apply(ctx context.Context, t Transition) error
}

// BackfillTrigger starts reconstruction of a newly registered account
type BackfillTrigger interface {
	Dispatch(ctx context.Context, accountID uuid.UUID) error
}

// Config holds the configuration for the applicator
type Config struct {
	// MaxRetryElapsedTime bounds retries of serialization failures
	MaxRetryElapsedTime time.Duration
	// InitialRetryInterval is the first backoff interval
	InitialRetryInterval time.Duration
}

// DefaultConfig returns the default applicator configuration
func DefaultConfig() Config {
	return Config{
		MaxRetryElapsedTime:  5 * time.Second,
		InitialRetryInterval: 20 * time.Millisecond,
	}
}

type applicator struct {
	store    store.Store
	backfill BackfillTrigger
	clock    adapter.Clock
	config   Config
}

// NewApplicator creates a new state applicator.
// backfill may be nil, in which case registering a seed starts no backfill.
func NewApplicator(st store.Store, backfill BackfillTrigger, clock adapter.Clock, cfg Config) Applicator {
	return &applicator{
		store:    st,
		backfill: backfill,
		clock:    clock,
		config:   cfg,
	}
}

// errSkipped reports a guard hit from a transaction body. The transaction still commits.
var errSkipped = errors.New("transition already applied")

// Apply applies a transition atomically
func (a *applicator) Apply(ctx context.Context, t Transition) error {
	start := a.clock.Now()
	src := SourceOf(t)

	var registered *uuid.UUID
	fn, err := a.transaction(t, &registered)
	if err != nil {
		metrics.TransitionObserve(t.Name(), metrics.OutcomeFailed, a.clock.Since(start))
		return err
	}

	skipped := false
	err = a.retry(ctx, func() error {
		skipped = false
		registered = nil
		return a.store.Transaction(ctx, func(tx store.Store) error {
			err := fn(ctx, tx)
			if errors.Is(err, errSkipped) {
				skipped = true
				return nil
			}
			return err
		})
	})
	if err != nil {
		metrics.TransitionObserve(t.Name(), metrics.OutcomeFailed, a.clock.Since(start))
		return classify(t.Name(), err)
	}

	if skipped {
		metrics.TransitionObserve(t.Name(), metrics.OutcomeSkipped, a.clock.Since(start))
		return nil
	}
	metrics.TransitionObserve(t.Name(), metrics.OutcomeApplied, a.clock.Since(start))

	logger.DebugCtx(ctx, "Applied state transition",
		zap.String("transition", t.Name()),
		zap.Uint64("block_number", src.BlockNumber),
		zap.Bool("backfill", src.Backfill),
	)

	if registered != nil && a.backfill != nil {
		if err := a.backfill.Dispatch(ctx, *registered); err != nil {
			// The seed is committed; a failed dispatch is recovered through the backfill endpoint
			logger.ErrorCtx(ctx, fmt.Errorf("failed to dispatch backfill: %w", err), logger.AccountID(*registered))
		}
	}

	return nil
}

type txFunc func(ctx context.Context, tx store.Store) error

// transaction selects the transaction body of a transition
func (a *applicator) transaction(t Transition, registered **uuid.UUID) (txFunc, error) {
	switch t := t.(type) {
	case RegisterMasterViewSeed:
		return func(ctx context.Context, tx store.Store) error {
			created, err := a.registerMasterViewSeed(ctx, tx, t)
			if created {
				*registered = &t.AccountID
			}
			return err
		}, nil
	case CreateBalance:
		return func(ctx context.Context, tx store.Store) error {
			return a.createBalance(ctx, tx, t)
		}, nil
	case CreateIntent:
		return func(ctx context.Context, tx store.Store) error {
			return a.createIntent(ctx, tx, t)
		}, nil
	case Deposit:
		return func(ctx context.Context, tx store.Store) error {
			return a.reencryptBalance(ctx, tx, t.Nullifier, domain.BalanceShareAmount, t.NewAmountShare, t.Source)
		}, nil
	case Withdraw:
		return func(ctx context.Context, tx store.Store) error {
			return a.reencryptBalance(ctx, tx, t.Nullifier, domain.BalanceShareAmount, t.NewAmountShare, t.Source)
		}, nil
	case PayProtocolFee:
		return func(ctx context.Context, tx store.Store) error {
			return a.reencryptBalance(ctx, tx, t.Nullifier, domain.BalanceShareProtocolFeeBalance, t.NewProtocolFeeShare, t.Source)
		}, nil
	case PayRelayerFee:
		return func(ctx context.Context, tx store.Store) error {
			return a.reencryptBalance(ctx, tx, t.Nullifier, domain.BalanceShareRelayerFeeBalance, t.NewRelayerFeeShare, t.Source)
		}, nil
	case SettleMatchIntoBalance:
		return func(ctx context.Context, tx store.Store) error {
			return a.settleMatchIntoBalance(ctx, tx, t)
		}, nil
	case SettleMatchIntoIntent:
		return func(ctx context.Context, tx store.Store) error {
			return a.settleMatchIntoIntent(ctx, tx, t)
		}, nil
	case CancelOrder:
		return func(ctx context.Context, tx store.Store) error {
			return a.cancelOrder(ctx, tx, t)
		}, nil
	case CreatePublicIntent:
		return func(ctx context.Context, tx store.Store) error {
			return a.createPublicIntent(ctx, tx, t)
		}, nil
	case SettleMatchIntoPublicIntent:
		return func(ctx context.Context, tx store.Store) error {
			return a.settleMatchIntoPublicIntent(ctx, tx, t)
		}, nil
	case CancelPublicIntent:
		return func(ctx context.Context, tx store.Store) error {
			return a.cancelPublicIntent(ctx, tx, t)
		}, nil
	default:
		return nil, domain.NewDataError("apply", fmt.Errorf("unsupported transition %T", t))
	}
}

// retry re-runs op while it fails with a serialization failure, deadlock or guard race
func (a *applicator) retry(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = a.config.InitialRetryInterval
	b.MaxElapsedTime = a.config.MaxRetryElapsedTime

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if store.IsRetryable(err) {
			logger.Debug("Retrying state transition", zap.Error(err))
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(b, ctx))
}

// classify leaves classified errors and ErrUntracked as they are and marks the rest transient
func classify(name string, err error) error {
	if errors.Is(err, domain.ErrUntracked) {
		return err
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	return domain.NewTransientError(name, err)
}

// advanceCursor moves the resume cursor of a live transition's event kind
func advanceCursor(ctx context.Context, tx store.Store, kind domain.EventKind, src domain.Source) error {
	if src.Backfill || src.BlockNumber == 0 {
		return nil
	}
	return tx.AdvanceLastIndexedBlock(ctx, kind, src.BlockNumber)
}

// untracked reports a missing target. Live facts may belong to another user or
// arrive before their predecessor; during backfill the target must exist.
func untracked(op string, src domain.Source) error {
	if src.Backfill {
		return domain.NewConsistencyError(op, domain.ErrUntracked)
	}
	return domain.ErrUntracked
}

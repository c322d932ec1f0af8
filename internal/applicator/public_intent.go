package applicator

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

func (a *applicator) createPublicIntent(ctx context.Context, tx store.Store, t CreatePublicIntent) error {
	processed, err := tx.IsPublicIntentCreationProcessed(ctx, t.IntentHash)
	if err != nil {
		return err
	}
	if processed {
		logger.WarnCtx(ctx, "Public intent creation already processed, skipping",
			zap.String("intent_hash", t.IntentHash.Hex()))
		return errSkipped
	}

	seed, err := tx.GetMasterViewSeedByOwner(ctx, t.Intent.Owner)
	if err != nil {
		return err
	}
	if seed == nil {
		return untracked(t.Name(), t.Source)
	}

	intent := t.Intent
	remaining, err := decrement(t.Name(), intent.AmountIn, t.AmountIn)
	if err != nil {
		return err
	}
	intent.AmountIn = remaining

	created, err := tx.CreatePublicIntent(ctx, domain.NewPublicIntent(t.IntentHash, seed.AccountID, intent))
	if err != nil {
		return err
	}
	if !created {
		logger.WarnCtx(ctx, "Public intent already exists, marking creation processed",
			zap.String("intent_hash", t.IntentHash.Hex()))
	}

	if err := tx.MarkPublicIntentCreationProcessed(ctx, t.IntentHash, t.Source); err != nil {
		return err
	}
	if err := advanceCursor(ctx, tx, domain.EventKindPublicIntentCreation, t.Source); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Created public intent",
		logger.AccountID(seed.AccountID),
		zap.String("intent_hash", t.IntentHash.Hex()),
		zap.String("amount_in", remaining.Dec()),
	)

	return nil
}

// updatePublicIntent applies mutate to a public intent under the versioned update guard
func (a *applicator) updatePublicIntent(
	ctx context.Context,
	tx store.Store,
	op string,
	hash common.Hash,
	version uint64,
	src domain.Source,
	mutate func(pi *domain.PublicIntent) error,
) error {
	processed, err := tx.IsPublicIntentUpdateProcessed(ctx, hash, version)
	if err != nil {
		return err
	}
	if processed {
		logger.WarnCtx(ctx, "Public intent update already processed, skipping",
			zap.String("transition", op),
			zap.String("intent_hash", hash.Hex()),
			zap.Uint64("version", version))
		return errSkipped
	}

	pi, err := tx.GetPublicIntent(ctx, hash)
	if err != nil {
		return err
	}
	if pi == nil {
		return untracked(op, src)
	}

	if err := mutate(pi); err != nil {
		return err
	}
	// fills commute, so a late lower version still applies but never moves the version back
	pi.Version = max(pi.Version, version)
	if err := tx.UpdatePublicIntent(ctx, pi); err != nil {
		return err
	}

	if err := tx.MarkPublicIntentUpdateProcessed(ctx, hash, version, src); err != nil {
		return err
	}
	if err := advanceCursor(ctx, tx, domain.EventKindPublicIntentUpdate, src); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Updated public intent",
		zap.String("transition", op),
		logger.AccountID(pi.AccountID),
		zap.String("intent_hash", hash.Hex()),
		zap.Uint64("version", version),
		zap.Bool("active", pi.Active),
	)

	return nil
}

func (a *applicator) settleMatchIntoPublicIntent(ctx context.Context, tx store.Store, t SettleMatchIntoPublicIntent) error {
	return a.updatePublicIntent(ctx, tx, t.Name(), t.IntentHash, t.Version, t.Source, func(pi *domain.PublicIntent) error {
		remaining, err := decrement(t.Name(), pi.Intent.AmountIn, t.AmountIn)
		if err != nil {
			return err
		}
		pi.Intent.AmountIn = remaining
		return nil
	})
}

func (a *applicator) cancelPublicIntent(ctx context.Context, tx store.Store, t CancelPublicIntent) error {
	return a.updatePublicIntent(ctx, tx, t.Name(), t.IntentHash, t.Version, t.Source, func(pi *domain.PublicIntent) error {
		pi.Active = false
		return nil
	})
}

// decrement returns amount - fill, failing on underflow
func decrement(op string, amount, fill *uint256.Int) (*uint256.Int, error) {
	amount, fill = orZero(amount), orZero(fill)
	if amount.Lt(fill) {
		return nil, domain.NewDataError(op, fmt.Errorf("fill %s exceeds remaining amount %s", fill.Dec(), amount.Dec()))
	}
	return new(uint256.Int).Sub(amount, fill), nil
}

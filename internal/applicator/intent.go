package applicator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

// spendIntent applies mutate to the intent whose current nullifier was spent
func (a *applicator) spendIntent(
	ctx context.Context,
	tx store.Store,
	op string,
	nullifier domain.Scalar,
	src domain.Source,
	mutate func(intent *domain.IntentObject) error,
) error {
	processed, err := tx.IsNullifierProcessed(ctx, nullifier)
	if err != nil {
		return err
	}
	if processed {
		logger.WarnCtx(ctx, "Nullifier already processed, skipping",
			zap.String("transition", op), logger.Scalar("nullifier", nullifier))
		return errSkipped
	}

	intent, err := tx.GetIntentByNullifier(ctx, nullifier)
	if err != nil {
		return err
	}
	if intent == nil {
		return untracked(op, src)
	}

	if err := mutate(intent); err != nil {
		return err
	}
	if err := tx.UpdateIntent(ctx, intent); err != nil {
		return err
	}

	if err := tx.MarkNullifierProcessed(ctx, nullifier, src); err != nil {
		return err
	}
	if err := advanceCursor(ctx, tx, domain.EventKindNullifierSpend, src); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Updated intent",
		zap.String("transition", op),
		logger.AccountID(intent.AccountID),
		logger.Scalar("nullifier", nullifier),
		zap.Uint64("version", intent.Version),
		zap.Bool("active", intent.Active),
	)

	return nil
}

func (a *applicator) settleMatchIntoIntent(ctx context.Context, tx store.Store, t SettleMatchIntoIntent) error {
	return a.spendIntent(ctx, tx, t.Name(), t.Nullifier, t.Source, func(intent *domain.IntentObject) error {
		obj := &intent.StateObject

		switch s := t.Settlement.(type) {
		case IntentPrivateFill:
			return reencrypt(obj, domain.IntentShareAmountIn, []domain.Scalar{s.UpdatedAmountShare})
		case IntentPublicFill:
			if err := subFromShare(obj, domain.IntentShareAmountIn, orZero(s.Obligation.AmountIn)); err != nil {
				return err
			}
			nextVersion(obj)
			return nil
		default:
			return domain.NewDataError(t.Name(), fmt.Errorf("unsupported settlement %T", t.Settlement))
		}
	})
}

// cancelOrder deactivates the intent; the row is kept at its last version
func (a *applicator) cancelOrder(ctx context.Context, tx store.Store, t CancelOrder) error {
	return a.spendIntent(ctx, tx, t.Name(), t.Nullifier, t.Source, func(intent *domain.IntentObject) error {
		intent.Active = false
		return nil
	})
}

package applicator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/store"
	"github.com/feral-file/darkpool-indexer/internal/streams"
)

// registerMasterViewSeed stores a new seed with the expected object of slot 0.
// It reports whether the seed was newly created.
func (a *applicator) registerMasterViewSeed(ctx context.Context, tx store.Store, t RegisterMasterViewSeed) (bool, error) {
	owner, err := tx.GetMasterViewSeedByOwner(ctx, t.OwnerAddress)
	if err != nil {
		return false, err
	}
	if owner != nil && owner.AccountID != t.AccountID {
		return false, domain.NewDataError("register master view seed",
			fmt.Errorf("owner %s is registered to account %s", t.OwnerAddress.Hex(), owner.AccountID))
	}

	seed := &domain.MasterViewSeed{
		AccountID:    t.AccountID,
		OwnerAddress: t.OwnerAddress,
		Seed:         t.Seed,
	}
	created, err := tx.CreateMasterViewSeed(ctx, seed)
	if err != nil {
		return false, err
	}
	if !created {
		logger.WarnCtx(ctx, "Master view seed already registered, skipping", logger.AccountID(t.AccountID))
		return false, errSkipped
	}

	slot := streams.ClaimNextSlot(seed)
	expected := slot.Expected(seed)
	if err := tx.InsertExpectedStateObject(ctx, &expected); err != nil {
		return false, err
	}
	if err := tx.UpdateMasterViewSeedIndices(ctx, seed); err != nil {
		return false, err
	}

	logger.InfoCtx(ctx, "Registered master view seed",
		logger.AccountID(t.AccountID),
		zap.String("owner", t.OwnerAddress.Hex()),
		logger.Scalar("recovery_id", expected.RecoveryID),
	)

	return true, nil
}

func (a *applicator) createBalance(ctx context.Context, tx store.Store, t CreateBalance) error {
	return a.createObject(ctx, tx, t.RecoveryID, domain.BalanceShareCount, t.PublicShares, t.Source,
		func(obj domain.StateObject) error {
			obj.Kind = domain.ObjectKindBalance
			return tx.CreateBalance(ctx, &domain.BalanceObject{StateObject: obj})
		})
}

func (a *applicator) createIntent(ctx context.Context, tx store.Store, t CreateIntent) error {
	return a.createObject(ctx, tx, t.RecoveryID, domain.IntentShareCount, t.PublicShares, t.Source,
		func(obj domain.StateObject) error {
			obj.Kind = domain.ObjectKindIntent
			intent := &domain.IntentObject{
				StateObject:  obj,
				MatchingPool: domain.GlobalMatchingPool,
			}
			decoded, err := intent.Intent()
			if err != nil {
				return domain.NewDataError("create intent", err)
			}
			intent.MinFillSize = decoded.AmountIn
			return tx.CreateIntent(ctx, intent)
		})
}

// createObject consumes the expected object announced by recoveryID, stores the
// new object through insert, and rotates the account to its next slot
func (a *applicator) createObject(
	ctx context.Context,
	tx store.Store,
	recoveryID domain.Scalar,
	shareCount int,
	publicShares []domain.Scalar,
	src domain.Source,
	insert func(obj domain.StateObject) error,
) error {
	processed, err := tx.IsRecoveryIDProcessed(ctx, recoveryID)
	if err != nil {
		return err
	}
	if processed {
		logger.WarnCtx(ctx, "Recovery ID already processed, skipping object creation",
			logger.Scalar("recovery_id", recoveryID))
		return errSkipped
	}

	if len(publicShares) != shareCount {
		return domain.NewDataError("create state object",
			fmt.Errorf("got %d public shares, want %d", len(publicShares), shareCount))
	}

	expected, err := tx.GetExpectedStateObject(ctx, recoveryID)
	if err != nil {
		return err
	}
	if expected == nil {
		return untracked("create state object", src)
	}

	seed, err := tx.LockMasterViewSeed(ctx, expected.AccountID)
	if err != nil {
		return err
	}
	if seed == nil {
		return domain.NewConsistencyError("create state object",
			fmt.Errorf("expected object of account %s has no master view seed", expected.AccountID))
	}
	if seed.RecoverySeedIndex != expected.SlotIndex+1 {
		return domain.NewConsistencyError("create state object",
			fmt.Errorf("expected slot %d does not precede seed index %d", expected.SlotIndex, seed.RecoverySeedIndex))
	}

	if err := insert(newStateObject(expected, publicShares)); err != nil {
		return err
	}

	if err := tx.DeleteExpectedStateObject(ctx, recoveryID); err != nil {
		return err
	}
	next := streams.ClaimNextSlot(seed).Expected(seed)
	if err := tx.InsertExpectedStateObject(ctx, &next); err != nil {
		return err
	}
	if err := tx.UpdateMasterViewSeedIndices(ctx, seed); err != nil {
		return err
	}

	if err := tx.MarkRecoveryIDProcessed(ctx, recoveryID, src); err != nil {
		return err
	}
	if err := advanceCursor(ctx, tx, domain.EventKindRecoveryID, src); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Created state object",
		logger.AccountID(expected.AccountID),
		logger.Scalar("recovery_id", recoveryID),
		zap.Uint64("slot", expected.SlotIndex),
		zap.Uint64("block_number", src.BlockNumber),
	)

	return nil
}

package applicator

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/store"
)

// privateFillShareStart is the first balance share rewritten by a private fill
const privateFillShareStart = domain.BalanceShareRelayerFeeBalance

// spendBalance applies mutate to the balance whose current nullifier was spent
func (a *applicator) spendBalance(
	ctx context.Context,
	tx store.Store,
	op string,
	nullifier domain.Scalar,
	src domain.Source,
	mutate func(balance *domain.BalanceObject) error,
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

	balance, err := tx.GetBalanceByNullifier(ctx, nullifier)
	if err != nil {
		return err
	}
	if balance == nil {
		return untracked(op, src)
	}

	if err := mutate(balance); err != nil {
		return err
	}
	if err := tx.UpdateBalance(ctx, balance); err != nil {
		return err
	}

	if err := tx.MarkNullifierProcessed(ctx, nullifier, src); err != nil {
		return err
	}
	if err := advanceCursor(ctx, tx, domain.EventKindNullifierSpend, src); err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Updated balance",
		zap.String("transition", op),
		logger.AccountID(balance.AccountID),
		logger.Scalar("nullifier", nullifier),
		zap.Uint64("version", balance.Version),
		zap.Uint64("block_number", src.BlockNumber),
	)

	return nil
}

// reencryptBalance replaces one balance share after a deposit, withdrawal or fee payment
func (a *applicator) reencryptBalance(
	ctx context.Context,
	tx store.Store,
	nullifier domain.Scalar,
	index int,
	share domain.Scalar,
	src domain.Source,
) error {
	return a.spendBalance(ctx, tx, "reencrypt balance", nullifier, src, func(balance *domain.BalanceObject) error {
		return reencrypt(&balance.StateObject, index, []domain.Scalar{share})
	})
}

func (a *applicator) settleMatchIntoBalance(ctx context.Context, tx store.Store, t SettleMatchIntoBalance) error {
	return a.spendBalance(ctx, tx, t.Name(), t.Nullifier, t.Source, func(balance *domain.BalanceObject) error {
		return applyBalanceSettlement(balance, t.Settlement)
	})
}

func applyBalanceSettlement(balance *domain.BalanceObject, settlement BalanceSettlement) error {
	obj := &balance.StateObject

	switch s := settlement.(type) {
	case PrivateFill:
		if len(s.UpdatedShares) != domain.BalanceShareCount-privateFillShareStart {
			return domain.NewDataError("private fill",
				fmt.Errorf("got %d updated shares, want %d", len(s.UpdatedShares), domain.BalanceShareCount-privateFillShareStart))
		}
		return reencrypt(obj, privateFillShareStart, s.UpdatedShares)

	case PublicFillInput:
		if err := subFromShare(obj, domain.BalanceShareAmount, orZero(s.Obligation.AmountIn)); err != nil {
			return err
		}
		nextVersion(obj)
		return nil

	case PublicFillOutput:
		receive := orZero(s.Obligation.AmountOut)
		fees := domain.ComputeFeeTake(receive, s.RelayerFeeRate, s.ProtocolFeeRate)
		if receive.Lt(fees.Total()) {
			return domain.NewDataError("public fill",
				fmt.Errorf("fees %s exceed received amount %s", fees.Total().Dec(), receive.Dec()))
		}

		net := new(uint256.Int).Sub(receive, fees.Total())
		addToShare(obj, domain.BalanceShareAmount, net)
		addToShare(obj, domain.BalanceShareRelayerFeeBalance, fees.RelayerFee)
		addToShare(obj, domain.BalanceShareProtocolFeeBalance, fees.ProtocolFee)
		nextVersion(obj)
		return nil

	default:
		return domain.NewDataError("settle match into balance", fmt.Errorf("unsupported settlement %T", settlement))
	}
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

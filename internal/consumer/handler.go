package consumer

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/darkpool-indexer/internal/applicator"
	"github.com/feral-file/darkpool-indexer/internal/chain"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
)

//go:generate mockgen -source=handler.go -destination=../mocks/handler.go -package=mocks -mock_names=Handler=MockMessageHandler

// Handler applies one queue message
type Handler interface {
	// Handle resolves msg to a state transition and applies it
	Handle(ctx context.Context, msg *messagequeue.Message) error
}

type handler struct {
	chain      chain.Client
	applicator applicator.Applicator
}

// NewHandler creates a message handler that resolves chain facts through chainClient
func NewHandler(chainClient chain.Client, app applicator.Applicator) Handler {
	return &handler{
		chain:      chainClient,
		applicator: app,
	}
}

func (h *handler) Handle(ctx context.Context, msg *messagequeue.Message) error {
	t, err := h.transition(ctx, msg)
	if err != nil {
		return err
	}
	if t == nil {
		return nil
	}

	return h.applicator.Apply(ctx, t)
}

// transition resolves msg to the state change it describes.
// A nil transition means the fact changes nothing the indexer stores.
func (h *handler) transition(ctx context.Context, msg *messagequeue.Message) (applicator.Transition, error) {
	switch {
	case msg.RegisterMasterViewSeed != nil:
		m := msg.RegisterMasterViewSeed
		return applicator.RegisterMasterViewSeed{
			AccountID:    m.AccountID,
			OwnerAddress: m.OwnerAddress,
			Seed:         m.Seed,
		}, nil

	case msg.RegisterRecoveryID != nil:
		m := msg.RegisterRecoveryID
		reg, err := h.chain.RecoveryIDRegistration(ctx, m.RecoveryID, m.TxHash)
		if err != nil {
			return nil, err
		}
		src := domain.Source{BlockNumber: reg.BlockNumber, TxHash: m.TxHash, Backfill: m.IsBackfill}

		switch {
		case reg.NewBalance != nil:
			return applicator.CreateBalance{RecoveryID: m.RecoveryID, PublicShares: reg.NewBalance, Source: src}, nil
		case reg.NewIntent != nil:
			return applicator.CreateIntent{RecoveryID: m.RecoveryID, PublicShares: reg.NewIntent, Source: src}, nil
		}

		// the recovery ID announces the next version of an object whose state
		// change arrives with the matching nullifier spend
		logger.DebugCtx(ctx, "Recovery id re-registers an existing object",
			logger.Scalar("recovery_id", m.RecoveryID),
			zap.String("tx_hash", m.TxHash.Hex()))
		return nil, nil

	case msg.NullifierSpend != nil:
		m := msg.NullifierSpend
		spend, err := h.chain.NullifierSpend(ctx, m.Nullifier, m.TxHash)
		if err != nil {
			return nil, err
		}
		src := domain.Source{BlockNumber: spend.BlockNumber, TxHash: m.TxHash, Backfill: m.IsBackfill}
		return spendTransition(spend, src)

	case msg.CreatePublicIntent != nil:
		m := msg.CreatePublicIntent
		created, err := h.chain.PublicIntentCreation(ctx, m.IntentHash, m.TxHash)
		if err != nil {
			return nil, err
		}
		return applicator.CreatePublicIntent{
			IntentHash: m.IntentHash,
			Intent:     created.Intent,
			AmountIn:   created.FillAmount,
			Source:     domain.Source{BlockNumber: created.BlockNumber, TxHash: m.TxHash, Backfill: m.IsBackfill},
		}, nil

	case msg.UpdatePublicIntent != nil:
		m := msg.UpdatePublicIntent
		updated, err := h.chain.PublicIntentUpdate(ctx, m.IntentHash, m.Version, m.TxHash)
		if err != nil {
			return nil, err
		}
		return applicator.SettleMatchIntoPublicIntent{
			IntentHash: m.IntentHash,
			Version:    m.Version,
			AmountIn:   updated.FillAmount,
			Source:     domain.Source{BlockNumber: updated.BlockNumber, TxHash: m.TxHash, Backfill: m.IsBackfill},
		}, nil

	case msg.CancelPublicIntent != nil:
		m := msg.CancelPublicIntent
		cancelled, err := h.chain.PublicIntentCancellation(ctx, m.IntentHash, m.Version, m.TxHash)
		if err != nil {
			return nil, err
		}
		return applicator.CancelPublicIntent{
			IntentHash: m.IntentHash,
			Version:    m.Version,
			Source:     domain.Source{BlockNumber: cancelled.BlockNumber, TxHash: m.TxHash, Backfill: m.IsBackfill},
		}, nil
	}

	return nil, domain.NewDataError("handle message", messagequeue.ErrEmptyMessage)
}

var errShareCount = errors.New("unexpected number of updated shares")

// spendTransition maps the operation that spent a nullifier to its transition
func spendTransition(spend *chain.NullifierSpend, src domain.Source) (applicator.Transition, error) {
	n := spend.Nullifier

	switch spend.Kind {
	case chain.SpendDeposit:
		return applicator.Deposit{Nullifier: n, NewAmountShare: spend.NewShare, Source: src}, nil
	case chain.SpendWithdraw:
		return applicator.Withdraw{Nullifier: n, NewAmountShare: spend.NewShare, Source: src}, nil
	case chain.SpendPayProtocolFee:
		return applicator.PayProtocolFee{Nullifier: n, NewProtocolFeeShare: spend.NewShare, Source: src}, nil
	case chain.SpendPayRelayerFee:
		return applicator.PayRelayerFee{Nullifier: n, NewRelayerFeeShare: spend.NewShare, Source: src}, nil
	case chain.SpendCancelOrder:
		return applicator.CancelOrder{Nullifier: n, Source: src}, nil
	}

	fill := spend.Fill
	if fill == nil {
		return nil, domain.NewDataError("map nullifier spend", fmt.Errorf("%s spend of %s has no fill", spend.Kind, n))
	}

	switch spend.Kind {
	case chain.SpendIntentFill:
		if fill.Public {
			return applicator.SettleMatchIntoIntent{
				Nullifier:  n,
				Settlement: applicator.IntentPublicFill{Obligation: fill.Obligation},
				Source:     src,
			}, nil
		}
		if len(fill.Shares) != 1 {
			return nil, domain.NewDataError("map intent fill", fmt.Errorf("%w: got %d, want 1", errShareCount, len(fill.Shares)))
		}
		return applicator.SettleMatchIntoIntent{
			Nullifier:  n,
			Settlement: applicator.IntentPrivateFill{UpdatedAmountShare: fill.Shares[0]},
			Source:     src,
		}, nil

	case chain.SpendInputBalanceFill, chain.SpendOutputBalanceFill:
		var settlement applicator.BalanceSettlement
		switch {
		case !fill.Public:
			if len(fill.Shares) != 3 {
				return nil, domain.NewDataError("map balance fill", fmt.Errorf("%w: got %d, want 3", errShareCount, len(fill.Shares)))
			}
			settlement = applicator.PrivateFill{UpdatedShares: fill.Shares}
		case spend.Kind == chain.SpendInputBalanceFill:
			settlement = applicator.PublicFillInput{Obligation: fill.Obligation}
		default:
			settlement = applicator.PublicFillOutput{
				Obligation:      fill.Obligation,
				RelayerFeeRate:  fill.RelayerFeeRate,
				ProtocolFeeRate: fill.ProtocolFeeRate,
			}
		}
		return applicator.SettleMatchIntoBalance{Nullifier: n, Settlement: settlement, Source: src}, nil
	}

	return nil, domain.NewDataError("map nullifier spend", fmt.Errorf("unknown spend kind %q", spend.Kind))
}

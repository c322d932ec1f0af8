package store

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/store/schema"
)

func addressKey(addr common.Address) string {
	return strings.ToLower(addr.Hex())
}

func hashKey(hash common.Hash) string {
	return hash.Hex()
}

func cloneUint(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(v)
}

func masterViewSeedToSchema(seed *domain.MasterViewSeed) schema.MasterViewSeed {
	return schema.MasterViewSeed{
		AccountID:         seed.AccountID,
		OwnerAddress:      addressKey(seed.OwnerAddress),
		Seed:              seed.Seed,
		RecoverySeedIndex: int64(seed.RecoverySeedIndex), //nolint:gosec,G115
		ShareSeedIndex:    int64(seed.ShareSeedIndex),    //nolint:gosec,G115
	}
}

func masterViewSeedFromSchema(row *schema.MasterViewSeed) *domain.MasterViewSeed {
	return &domain.MasterViewSeed{
		AccountID:         row.AccountID,
		OwnerAddress:      common.HexToAddress(row.OwnerAddress),
		Seed:              row.Seed,
		RecoverySeedIndex: uint64(row.RecoverySeedIndex), //nolint:gosec,G115
		ShareSeedIndex:    uint64(row.ShareSeedIndex),    //nolint:gosec,G115
	}
}

func expectedToSchema(obj *domain.ExpectedStateObject) schema.ExpectedStateObject {
	return schema.ExpectedStateObject{
		RecoveryID:         obj.RecoveryID,
		AccountID:          obj.AccountID,
		OwnerAddress:       addressKey(obj.OwnerAddress),
		SlotIndex:          int64(obj.SlotIndex), //nolint:gosec,G115
		IdentifierSeed:     obj.IdentifierSeed,
		RecoveryStreamSeed: obj.RecoveryStreamSeed,
		ShareStreamSeed:    obj.ShareStreamSeed,
		Nullifier:          obj.Nullifier,
	}
}

func expectedFromSchema(row *schema.ExpectedStateObject) *domain.ExpectedStateObject {
	return &domain.ExpectedStateObject{
		RecoveryID:         row.RecoveryID,
		AccountID:          row.AccountID,
		OwnerAddress:       common.HexToAddress(row.OwnerAddress),
		SlotIndex:          uint64(row.SlotIndex), //nolint:gosec,G115
		IdentifierSeed:     row.IdentifierSeed,
		RecoveryStreamSeed: row.RecoveryStreamSeed,
		ShareStreamSeed:    row.ShareStreamSeed,
		Nullifier:          row.Nullifier,
	}
}

func stateObjectToSchema(obj *domain.StateObject) schema.StateObjectColumns {
	return schema.StateObjectColumns{
		RecoveryStreamSeed: obj.RecoveryStreamSeed,
		AccountID:          obj.AccountID,
		IdentifierSeed:     obj.IdentifierSeed,
		ShareStreamSeed:    obj.ShareStreamSeed,
		ShareStreamIndex:   int64(obj.ShareStreamIndex), //nolint:gosec,G115
		Version:            int64(obj.Version),          //nolint:gosec,G115
		Nullifier:          obj.Nullifier,
		Active:             obj.Active,
		PublicShares:       append([]domain.Scalar(nil), obj.PublicShares...),
		PrivateShares:      append([]domain.Scalar(nil), obj.PrivateShares...),
	}
}

func stateObjectFromSchema(row *schema.StateObjectColumns, kind domain.ObjectKind) domain.StateObject {
	return domain.StateObject{
		RecoveryStreamSeed: row.RecoveryStreamSeed,
		AccountID:          row.AccountID,
		Kind:               kind,
		IdentifierSeed:     row.IdentifierSeed,
		ShareStreamSeed:    row.ShareStreamSeed,
		ShareStreamIndex:   uint64(row.ShareStreamIndex), //nolint:gosec,G115
		Version:            uint64(row.Version),          //nolint:gosec,G115
		Nullifier:          row.Nullifier,
		Active:             row.Active,
		PublicShares:       []domain.Scalar(row.PublicShares),
		PrivateShares:      []domain.Scalar(row.PrivateShares),
	}
}

func balanceToSchema(obj *domain.BalanceObject) (schema.Balance, error) {
	balance, err := obj.Balance()
	if err != nil {
		return schema.Balance{}, fmt.Errorf("failed to decode balance: %w", err)
	}

	return schema.Balance{
		StateObjectColumns: stateObjectToSchema(&obj.StateObject),
		Mint:               addressKey(balance.Mint),
		Amount:             balance.Amount,
		AllowPublicFills:   obj.AllowPublicFills,
	}, nil
}

func balanceFromSchema(row *schema.Balance) *domain.BalanceObject {
	return &domain.BalanceObject{
		StateObject:      stateObjectFromSchema(&row.StateObjectColumns, domain.ObjectKindBalance),
		AllowPublicFills: row.AllowPublicFills,
	}
}

func intentToSchema(obj *domain.IntentObject) (schema.Intent, error) {
	intent, err := obj.Intent()
	if err != nil {
		return schema.Intent{}, fmt.Errorf("failed to decode intent: %w", err)
	}

	return schema.Intent{
		StateObjectColumns:          stateObjectToSchema(&obj.StateObject),
		InputMint:                   addressKey(intent.InputMint),
		OutputMint:                  addressKey(intent.OutputMint),
		AmountIn:                    intent.AmountIn,
		MatchingPool:                obj.MatchingPool,
		AllowExternalMatches:        obj.AllowExternalMatches,
		MinFillSize:                 cloneUint(obj.MinFillSize),
		PrecomputeCancellationProof: obj.PrecomputeCancellationProof,
	}, nil
}

func intentFromSchema(row *schema.Intent) *domain.IntentObject {
	return &domain.IntentObject{
		StateObject:                 stateObjectFromSchema(&row.StateObjectColumns, domain.ObjectKindIntent),
		MatchingPool:                row.MatchingPool,
		AllowExternalMatches:        row.AllowExternalMatches,
		MinFillSize:                 cloneUint(row.MinFillSize),
		PrecomputeCancellationProof: row.PrecomputeCancellationProof,
	}
}

func publicIntentToSchema(pi *domain.PublicIntent) schema.PublicIntent {
	return schema.PublicIntent{
		IntentHash:                  hashKey(pi.IntentHash),
		AccountID:                   pi.AccountID,
		Version:                     int64(pi.Version), //nolint:gosec,G115
		Active:                      pi.Active,
		InputMint:                   addressKey(pi.Intent.InputMint),
		OutputMint:                  addressKey(pi.Intent.OutputMint),
		Owner:                       addressKey(pi.Intent.Owner),
		MinPrice:                    pi.Intent.MinPrice,
		AmountIn:                    cloneUint(pi.Intent.AmountIn),
		MatchingPool:                pi.MatchingPool,
		AllowExternalMatches:        pi.AllowExternalMatches,
		MinFillSize:                 cloneUint(pi.MinFillSize),
		PrecomputeCancellationProof: pi.PrecomputeCancellationProof,
	}
}

func publicIntentFromSchema(row *schema.PublicIntent) *domain.PublicIntent {
	return &domain.PublicIntent{
		IntentHash: common.HexToHash(row.IntentHash),
		AccountID:  row.AccountID,
		Version:    uint64(row.Version), //nolint:gosec,G115
		Active:     row.Active,
		Intent: domain.Intent{
			InputMint:  common.HexToAddress(row.InputMint),
			OutputMint: common.HexToAddress(row.OutputMint),
			Owner:      common.HexToAddress(row.Owner),
			MinPrice:   row.MinPrice,
			AmountIn:   cloneUint(row.AmountIn),
		},
		MatchingPool:                row.MatchingPool,
		AllowExternalMatches:        row.AllowExternalMatches,
		MinFillSize:                 cloneUint(row.MinFillSize),
		PrecomputeCancellationProof: row.PrecomputeCancellationProof,
	}
}

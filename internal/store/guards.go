package store

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/store/schema"
)

func (s *pgStore) exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(model).Where(query, args...).Limit(1).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func blockNumber(src domain.Source) int64 {
	return int64(src.BlockNumber) //nolint:gosec,G115
}

// IsNullifierProcessed checks the nullifier spend guard
func (s *pgStore) IsNullifierProcessed(ctx context.Context, nullifier domain.Scalar) (bool, error) {
	ok, err := s.exists(ctx, &schema.ProcessedNullifier{}, "nullifier = ?", nullifier)
	if err != nil {
		return false, fmt.Errorf("failed to check processed nullifier: %w", err)
	}
	return ok, nil
}

// MarkNullifierProcessed records a nullifier spend as applied.
// A concurrent duplicate surfaces as a unique violation and is retried by the caller.
func (s *pgStore) MarkNullifierProcessed(ctx context.Context, nullifier domain.Scalar, src domain.Source) error {
	row := schema.ProcessedNullifier{
		Nullifier:   nullifier,
		BlockNumber: blockNumber(src),
		IsBackfill:  src.Backfill,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to mark nullifier processed: %w", err)
	}
	return nil
}

// IsRecoveryIDProcessed checks the recovery ID guard
func (s *pgStore) IsRecoveryIDProcessed(ctx context.Context, recoveryID domain.Scalar) (bool, error) {
	ok, err := s.exists(ctx, &schema.ProcessedRecoveryID{}, "recovery_id = ?", recoveryID)
	if err != nil {
		return false, fmt.Errorf("failed to check processed recovery id: %w", err)
	}
	return ok, nil
}

// MarkRecoveryIDProcessed records a recovery ID registration as applied
func (s *pgStore) MarkRecoveryIDProcessed(ctx context.Context, recoveryID domain.Scalar, src domain.Source) error {
	row := schema.ProcessedRecoveryID{
		RecoveryID:  recoveryID,
		BlockNumber: blockNumber(src),
		IsBackfill:  src.Backfill,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to mark recovery id processed: %w", err)
	}
	return nil
}

// IsPublicIntentCreationProcessed checks the public intent creation guard
func (s *pgStore) IsPublicIntentCreationProcessed(ctx context.Context, hash common.Hash) (bool, error) {
	ok, err := s.exists(ctx, &schema.ProcessedPublicIntentCreation{}, "intent_hash = ?", hashKey(hash))
	if err != nil {
		return false, fmt.Errorf("failed to check processed public intent creation: %w", err)
	}
	return ok, nil
}

// MarkPublicIntentCreationProcessed records a public intent creation as applied
func (s *pgStore) MarkPublicIntentCreationProcessed(ctx context.Context, hash common.Hash, src domain.Source) error {
	row := schema.ProcessedPublicIntentCreation{
		IntentHash:  hashKey(hash),
		BlockNumber: blockNumber(src),
		IsBackfill:  src.Backfill,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to mark public intent creation processed: %w", err)
	}
	return nil
}

// IsPublicIntentUpdateProcessed checks the versioned public intent update guard
func (s *pgStore) IsPublicIntentUpdateProcessed(ctx context.Context, hash common.Hash, version uint64) (bool, error) {
	ok, err := s.exists(ctx, &schema.ProcessedPublicIntentUpdate{},
		"intent_hash = ? AND version = ?", hashKey(hash), int64(version)) //nolint:gosec,G115
	if err != nil {
		return false, fmt.Errorf("failed to check processed public intent update: %w", err)
	}
	return ok, nil
}

// MarkPublicIntentUpdateProcessed records a versioned public intent update as applied
func (s *pgStore) MarkPublicIntentUpdateProcessed(ctx context.Context, hash common.Hash, version uint64, src domain.Source) error {
	row := schema.ProcessedPublicIntentUpdate{
		IntentHash:  hashKey(hash),
		Version:     int64(version), //nolint:gosec,G115
		BlockNumber: blockNumber(src),
		IsBackfill:  src.Backfill,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to mark public intent update processed: %w", err)
	}
	return nil
}

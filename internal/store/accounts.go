package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/store/schema"
)

// CreateMasterViewSeed inserts a seed unless the account already has one
func (s *pgStore) CreateMasterViewSeed(ctx context.Context, seed *domain.MasterViewSeed) (bool, error) {
	row := masterViewSeedToSchema(seed)

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create master view seed: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (s *pgStore) getMasterViewSeed(db *gorm.DB, query string, args ...any) (*domain.MasterViewSeed, error) {
	var row schema.MasterViewSeed
	err := db.Where(query, args...).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get master view seed: %w", err)
	}

	return masterViewSeedFromSchema(&row), nil
}

// GetMasterViewSeed retrieves an account's seed
func (s *pgStore) GetMasterViewSeed(ctx context.Context, accountID uuid.UUID) (*domain.MasterViewSeed, error) {
	return s.getMasterViewSeed(s.db.WithContext(ctx), "account_id = ?", accountID)
}

// LockMasterViewSeed retrieves an account's seed with FOR UPDATE
func (s *pgStore) LockMasterViewSeed(ctx context.Context, accountID uuid.UUID) (*domain.MasterViewSeed, error) {
	db := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return s.getMasterViewSeed(db, "account_id = ?", accountID)
}

// GetMasterViewSeedByOwner retrieves the seed registered for an owner address
func (s *pgStore) GetMasterViewSeedByOwner(ctx context.Context, owner common.Address) (*domain.MasterViewSeed, error) {
	return s.getMasterViewSeed(s.db.WithContext(ctx), "owner_address = ?", addressKey(owner))
}

// UpdateMasterViewSeedIndices persists the seed's stream indices
func (s *pgStore) UpdateMasterViewSeedIndices(ctx context.Context, seed *domain.MasterViewSeed) error {
	result := s.db.WithContext(ctx).
		Model(&schema.MasterViewSeed{}).
		Where("account_id = ?", seed.AccountID).
		Updates(map[string]any{
			"recovery_seed_index": int64(seed.RecoverySeedIndex), //nolint:gosec,G115
			"share_seed_index":    int64(seed.ShareSeedIndex),    //nolint:gosec,G115
			"updated_at":          gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update master view seed indices: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMasterViewSeedNotFound
	}

	return nil
}

// InsertExpectedStateObject stores the next expected slot of an account
func (s *pgStore) InsertExpectedStateObject(ctx context.Context, obj *domain.ExpectedStateObject) error {
	row := expectedToSchema(obj)
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to insert expected state object: %w", err)
	}
	return nil
}

func (s *pgStore) getExpectedStateObject(ctx context.Context, query string, args ...any) (*domain.ExpectedStateObject, error) {
	var row schema.ExpectedStateObject
	err := s.db.WithContext(ctx).Where(query, args...).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expected state object: %w", err)
	}

	return expectedFromSchema(&row), nil
}

// GetExpectedStateObject retrieves the expected slot announced by a recovery ID
func (s *pgStore) GetExpectedStateObject(ctx context.Context, recoveryID domain.Scalar) (*domain.ExpectedStateObject, error) {
	return s.getExpectedStateObject(ctx, "recovery_id = ?", recoveryID)
}

// GetExpectedStateObjectByAccount retrieves an account's expected slot
func (s *pgStore) GetExpectedStateObjectByAccount(ctx context.Context, accountID uuid.UUID) (*domain.ExpectedStateObject, error) {
	return s.getExpectedStateObject(ctx, "account_id = ?", accountID)
}

// DeleteExpectedStateObject removes a consumed expected slot
func (s *pgStore) DeleteExpectedStateObject(ctx context.Context, recoveryID domain.Scalar) error {
	err := s.db.WithContext(ctx).
		Where("recovery_id = ?", recoveryID).
		Delete(&schema.ExpectedStateObject{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete expected state object: %w", err)
	}
	return nil
}

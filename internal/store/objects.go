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

func stateObjectUpdates(cols schema.StateObjectColumns) map[string]any {
	return map[string]any{
		"share_stream_index": cols.ShareStreamIndex,
		"version":            cols.Version,
		"nullifier":          cols.Nullifier,
		"active":             cols.Active,
		"public_shares":      cols.PublicShares,
		"private_shares":     cols.PrivateShares,
		"updated_at":         gorm.Expr("now()"),
	}
}

// CreateBalance inserts a new balance
func (s *pgStore) CreateBalance(ctx context.Context, balance *domain.BalanceObject) error {
	row, err := balanceToSchema(balance)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create balance: %w", err)
	}
	return nil
}

// UpdateBalance writes a balance's versioned fields and its decoded columns
func (s *pgStore) UpdateBalance(ctx context.Context, balance *domain.BalanceObject) error {
	row, err := balanceToSchema(balance)
	if err != nil {
		return err
	}

	updates := stateObjectUpdates(row.StateObjectColumns)
	updates["mint"] = row.Mint
	updates["amount"] = row.Amount
	updates["allow_public_fills"] = row.AllowPublicFills

	result := s.db.WithContext(ctx).
		Model(&schema.Balance{}).
		Where("recovery_stream_seed = ?", row.RecoveryStreamSeed).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrStateObjectNotFound
	}

	return nil
}

// GetBalanceByNullifier retrieves the balance whose current nullifier matches, locking the row
func (s *pgStore) GetBalanceByNullifier(ctx context.Context, nullifier domain.Scalar) (*domain.BalanceObject, error) {
	var row schema.Balance
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("nullifier = ?", nullifier).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance by nullifier: %w", err)
	}

	return balanceFromSchema(&row), nil
}

// CreateIntent inserts a new intent
func (s *pgStore) CreateIntent(ctx context.Context, intent *domain.IntentObject) error {
	row, err := intentToSchema(intent)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create intent: %w", err)
	}
	return nil
}

// UpdateIntent writes an intent's versioned fields and its decoded columns
func (s *pgStore) UpdateIntent(ctx context.Context, intent *domain.IntentObject) error {
	row, err := intentToSchema(intent)
	if err != nil {
		return err
	}

	updates := stateObjectUpdates(row.StateObjectColumns)
	updates["amount_in"] = row.AmountIn
	updates["matching_pool"] = row.MatchingPool
	updates["allow_external_matches"] = row.AllowExternalMatches
	updates["min_fill_size"] = row.MinFillSize
	updates["precompute_cancellation_proof"] = row.PrecomputeCancellationProof

	result := s.db.WithContext(ctx).
		Model(&schema.Intent{}).
		Where("recovery_stream_seed = ?", row.RecoveryStreamSeed).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update intent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrStateObjectNotFound
	}

	return nil
}

// GetIntentByNullifier retrieves the intent whose current nullifier matches, locking the row
func (s *pgStore) GetIntentByNullifier(ctx context.Context, nullifier domain.Scalar) (*domain.IntentObject, error) {
	var row schema.Intent
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("nullifier = ?", nullifier).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get intent by nullifier: %w", err)
	}

	return intentFromSchema(&row), nil
}

// GetStateObject retrieves the balance or intent keyed by a recovery stream seed
func (s *pgStore) GetStateObject(ctx context.Context, recoveryStreamSeed domain.Scalar) (*domain.StateObject, error) {
	var balance schema.Balance
	err := s.db.WithContext(ctx).Where("recovery_stream_seed = ?", recoveryStreamSeed).First(&balance).Error
	if err == nil {
		obj := stateObjectFromSchema(&balance.StateObjectColumns, domain.ObjectKindBalance)
		return &obj, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	var intent schema.Intent
	err = s.db.WithContext(ctx).Where("recovery_stream_seed = ?", recoveryStreamSeed).First(&intent).Error
	if err == nil {
		obj := stateObjectFromSchema(&intent.StateObjectColumns, domain.ObjectKindIntent)
		return &obj, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get intent: %w", err)
	}

	return nil, nil
}

// GetNullifierOwner resolves the object whose current nullifier matches.
// An expected slot answers for its version 0 nullifier before the object exists.
func (s *pgStore) GetNullifierOwner(ctx context.Context, nullifier domain.Scalar) (*domain.NullifierOwner, error) {
	for _, table := range []string{"balances", "intents"} {
		var row schema.StateObjectColumns
		err := s.db.WithContext(ctx).
			Table(table).
			Select("account_id", "identifier_seed", "version").
			Where("nullifier = ?", nullifier).
			Take(&row).Error
		if err == nil {
			return &domain.NullifierOwner{
				AccountID:      row.AccountID,
				IdentifierSeed: row.IdentifierSeed,
				Version:        uint64(row.Version), //nolint:gosec,G115
			}, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to resolve nullifier from %s: %w", table, err)
		}
	}

	var expected schema.ExpectedStateObject
	err := s.db.WithContext(ctx).Where("nullifier = ?", nullifier).Take(&expected).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve nullifier from expected_state_objects: %w", err)
	}

	return &domain.NullifierOwner{
		AccountID:      expected.AccountID,
		IdentifierSeed: expected.IdentifierSeed,
	}, nil
}

// CreatePublicIntent inserts a public intent unless the hash already exists
func (s *pgStore) CreatePublicIntent(ctx context.Context, intent *domain.PublicIntent) (bool, error) {
	row := publicIntentToSchema(intent)

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "intent_hash"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create public intent: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// GetPublicIntent retrieves a public intent by hash, locking the row
func (s *pgStore) GetPublicIntent(ctx context.Context, hash common.Hash) (*domain.PublicIntent, error) {
	var row schema.PublicIntent
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("intent_hash = ?", hashKey(hash)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get public intent: %w", err)
	}

	return publicIntentFromSchema(&row), nil
}

// UpdatePublicIntent writes a public intent's versioned fields
func (s *pgStore) UpdatePublicIntent(ctx context.Context, intent *domain.PublicIntent) error {
	row := publicIntentToSchema(intent)

	result := s.db.WithContext(ctx).
		Model(&schema.PublicIntent{}).
		Where("intent_hash = ?", row.IntentHash).
		Updates(map[string]any{
			"version":                       row.Version,
			"active":                        row.Active,
			"amount_in":                     row.AmountIn,
			"matching_pool":                 row.MatchingPool,
			"allow_external_matches":        row.AllowExternalMatches,
			"min_fill_size":                 row.MinFillSize,
			"precompute_cancellation_proof": row.PrecomputeCancellationProof,
			"updated_at":                    gorm.Expr("now()"),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update public intent: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrPublicIntentNotFound
	}

	return nil
}

// GetUserState retrieves the active objects of an account, from a replica when one is configured
func (s *pgStore) GetUserState(ctx context.Context, accountID uuid.UUID) (*domain.UserState, error) {
	db := s.readDB(ctx)

	var balances []schema.Balance
	if err := db.Where("account_id = ? AND active", accountID).Order("created_at").Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to get balances: %w", err)
	}

	var intents []schema.Intent
	if err := db.Where("account_id = ? AND active", accountID).Order("created_at").Find(&intents).Error; err != nil {
		return nil, fmt.Errorf("failed to get intents: %w", err)
	}

	var publicIntents []schema.PublicIntent
	if err := db.Where("account_id = ? AND active", accountID).Order("created_at").Find(&publicIntents).Error; err != nil {
		return nil, fmt.Errorf("failed to get public intents: %w", err)
	}

	state := &domain.UserState{
		Balances:      make([]domain.BalanceObject, 0, len(balances)),
		Intents:       make([]domain.IntentObject, 0, len(intents)),
		PublicIntents: make([]domain.PublicIntent, 0, len(publicIntents)),
	}
	for i := range balances {
		state.Balances = append(state.Balances, *balanceFromSchema(&balances[i]))
	}
	for i := range intents {
		state.Intents = append(state.Intents, *intentFromSchema(&intents[i]))
	}
	for i := range publicIntents {
		state.PublicIntents = append(state.PublicIntents, *publicIntentFromSchema(&publicIntents[i]))
	}

	return state, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/store/schema"
)

// CursorStore defines the interface for the per-event-kind resume cursors
// and the listener's own scan position
type CursorStore interface {
	// GetLastIndexedBlock retrieves the last block applied for an event kind, 0 if none
	GetLastIndexedBlock(ctx context.Context, kind domain.EventKind) (uint64, error)
	// AdvanceLastIndexedBlock moves the cursor forward to blockNumber. It never moves backwards.
	AdvanceLastIndexedBlock(ctx context.Context, kind domain.EventKind, blockNumber uint64) error
	// GetListenerBlock retrieves the last block whose facts were all sent to the queue
	GetListenerBlock(ctx context.Context) (uint64, bool, error)
	// AdvanceListenerBlock moves the listener position forward to blockNumber. It never moves backwards.
	AdvanceListenerBlock(ctx context.Context, blockNumber uint64) error
}

const listenerBlockKey = "listener_block"

func lastIndexedBlockKey(kind domain.EventKind) string {
	return fmt.Sprintf("last_indexed_block:%s", kind)
}

// GetLastIndexedBlock retrieves the last block applied for an event kind
func (s *pgStore) GetLastIndexedBlock(ctx context.Context, kind domain.EventKind) (uint64, error) {
	blockNumber, _, err := s.getBlock(ctx, lastIndexedBlockKey(kind))
	if err != nil {
		return 0, fmt.Errorf("failed to get last indexed block: %w", err)
	}
	return blockNumber, nil
}

// AdvanceLastIndexedBlock upserts the cursor only when blockNumber is ahead of the stored value
func (s *pgStore) AdvanceLastIndexedBlock(ctx context.Context, kind domain.EventKind, blockNumber uint64) error {
	if err := s.advanceBlock(ctx, lastIndexedBlockKey(kind), blockNumber); err != nil {
		return fmt.Errorf("failed to advance last indexed block: %w", err)
	}
	return nil
}

func (s *pgStore) GetListenerBlock(ctx context.Context) (uint64, bool, error) {
	blockNumber, ok, err := s.getBlock(ctx, listenerBlockKey)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get listener block: %w", err)
	}
	return blockNumber, ok, nil
}

func (s *pgStore) AdvanceListenerBlock(ctx context.Context, blockNumber uint64) error {
	if err := s.advanceBlock(ctx, listenerBlockKey, blockNumber); err != nil {
		return fmt.Errorf("failed to advance listener block: %w", err)
	}
	return nil
}

func (s *pgStore) getBlock(ctx context.Context, key string) (uint64, bool, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse %s: %w", key, err)
	}

	return blockNumber, true, nil
}

func (s *pgStore) advanceBlock(ctx context.Context, key string, blockNumber uint64) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: strconv.FormatUint(blockNumber, 10),
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "key_value_store.value::numeric < excluded.value::numeric"},
		}},
	}).Create(&kv).Error
}

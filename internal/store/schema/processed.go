package schema

import (
	"time"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// ProcessedNullifier marks a nullifier spend as applied
type ProcessedNullifier struct {
	Nullifier   domain.Scalar `gorm:"column:nullifier;primaryKey;type:numeric(78,0)"`
	BlockNumber int64         `gorm:"column:block_number;not null"`
	IsBackfill  bool          `gorm:"column:is_backfill;not null;default:false"`
	CreatedAt   time.Time     `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

func (ProcessedNullifier) TableName() string {
	return "processed_nullifiers"
}

// ProcessedRecoveryID marks a recovery ID registration as applied
type ProcessedRecoveryID struct {
	RecoveryID  domain.Scalar `gorm:"column:recovery_id;primaryKey;type:numeric(78,0)"`
	BlockNumber int64         `gorm:"column:block_number;not null"`
	IsBackfill  bool          `gorm:"column:is_backfill;not null;default:false"`
	CreatedAt   time.Time     `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

func (ProcessedRecoveryID) TableName() string {
	return "processed_recovery_ids"
}

// ProcessedPublicIntentCreation marks a public intent creation as applied
type ProcessedPublicIntentCreation struct {
	IntentHash  string    `gorm:"column:intent_hash;primaryKey;type:text"`
	BlockNumber int64     `gorm:"column:block_number;not null"`
	IsBackfill  bool      `gorm:"column:is_backfill;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

func (ProcessedPublicIntentCreation) TableName() string {
	return "processed_public_intent_creations"
}

// ProcessedPublicIntentUpdate marks a versioned public intent update as applied
type ProcessedPublicIntentUpdate struct {
	IntentHash  string    `gorm:"column:intent_hash;primaryKey;type:text"`
	Version     int64     `gorm:"column:version;primaryKey"`
	BlockNumber int64     `gorm:"column:block_number;not null"`
	IsBackfill  bool      `gorm:"column:is_backfill;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

func (ProcessedPublicIntentUpdate) TableName() string {
	return "processed_public_intent_updates"
}

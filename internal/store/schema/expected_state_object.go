package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// ExpectedStateObject represents the expected_state_objects table - the next object slot per account
type ExpectedStateObject struct {
	// RecoveryID is the version 0 recovery ID of the expected slot
	RecoveryID domain.Scalar `gorm:"column:recovery_id;primaryKey;type:numeric(78,0)"`
	// AccountID is the account expecting the object
	AccountID uuid.UUID `gorm:"column:account_id;not null;type:uuid;index:idx_expected_state_objects_account"`
	// OwnerAddress is the lowercase hex owner address of the account
	OwnerAddress string `gorm:"column:owner_address;not null;type:text"`
	// SlotIndex is the index of the slot in the account's seed streams
	SlotIndex int64 `gorm:"column:slot_index;not null"`
	// IdentifierSeed derives the recovery IDs and nullifiers of the slot's object
	IdentifierSeed domain.Scalar `gorm:"column:identifier_seed;not null;type:numeric(78,0)"`
	// RecoveryStreamSeed becomes the primary key of the object once created
	RecoveryStreamSeed domain.Scalar `gorm:"column:recovery_stream_seed;not null;type:numeric(78,0)"`
	// ShareStreamSeed seeds the object's private shares
	ShareStreamSeed domain.Scalar `gorm:"column:share_stream_seed;not null;type:numeric(78,0)"`
	// Nullifier is the version 0 nullifier of the object once created
	Nullifier domain.Scalar `gorm:"column:nullifier;not null;type:numeric(78,0);uniqueIndex:idx_expected_state_objects_nullifier"`
	// CreatedAt is the timestamp when the slot was claimed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ExpectedStateObject model
func (ExpectedStateObject) TableName() string {
	return "expected_state_objects"
}

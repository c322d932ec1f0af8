package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// MasterViewSeed represents the master_view_seeds table - one root secret per account
type MasterViewSeed struct {
	// AccountID is the account the seed belongs to
	AccountID uuid.UUID `gorm:"column:account_id;primaryKey;type:uuid"`
	// OwnerAddress is the lowercase hex address that owns the account's public intents
	OwnerAddress string `gorm:"column:owner_address;not null;type:text;uniqueIndex:idx_master_view_seeds_owner"`
	// Seed is the master view seed
	Seed domain.Scalar `gorm:"column:seed;not null;type:numeric(78,0)"`
	// RecoverySeedIndex is the next slot index of the recovery seed stream
	RecoverySeedIndex int64 `gorm:"column:recovery_seed_index;not null;default:0"`
	// ShareSeedIndex is the next slot index of the share seed stream
	ShareSeedIndex int64 `gorm:"column:share_seed_index;not null;default:0"`
	// CreatedAt is the timestamp when the seed was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the indices last advanced
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the MasterViewSeed model
func (MasterViewSeed) TableName() string {
	return "master_view_seeds"
}

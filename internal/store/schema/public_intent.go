package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// PublicIntent represents the public_intents table - intents posted in the clear
type PublicIntent struct {
	// IntentHash is the 0x-prefixed on-chain intent hash
	IntentHash string `gorm:"column:intent_hash;primaryKey;type:text"`
	// AccountID is the account whose owner address posted the intent
	AccountID uuid.UUID `gorm:"column:account_id;not null;type:uuid;index:idx_public_intents_account"`
	// Version is the number of fills applied after creation
	Version int64 `gorm:"column:version;not null;default:0"`
	// Active is false once the intent is cancelled
	Active bool `gorm:"column:active;not null;default:true"`
	// InputMint is the lowercase hex address of the token sold
	InputMint string `gorm:"column:input_mint;not null;type:text"`
	// OutputMint is the lowercase hex address of the token bought
	OutputMint string `gorm:"column:output_mint;not null;type:text"`
	// Owner is the lowercase hex owner address
	Owner string `gorm:"column:owner;not null;type:text"`
	// MinPrice is the fixed-point minimum price
	MinPrice domain.Scalar `gorm:"column:min_price;not null;type:numeric(78,0)"`
	// AmountIn is the remaining input amount
	AmountIn *uint256.Int `gorm:"column:amount_in;not null;type:numeric(78,0)"`
	// MatchingPool is the pool the intent matches in
	MatchingPool string `gorm:"column:matching_pool;not null;type:text"`
	// AllowExternalMatches lets the intent match against external flow
	AllowExternalMatches bool `gorm:"column:allow_external_matches;not null;default:false"`
	// MinFillSize is the smallest fill the intent accepts
	MinFillSize *uint256.Int `gorm:"column:min_fill_size;not null;type:numeric(78,0)"`
	// PrecomputeCancellationProof asks the relayer to keep a cancellation proof ready
	PrecomputeCancellationProof bool `gorm:"column:precompute_cancellation_proof;not null;default:false"`
	// CreatedAt is the timestamp when the intent was first indexed
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the intent last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the PublicIntent model
func (PublicIntent) TableName() string {
	return "public_intents"
}

package schema

import (
	"time"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"gorm.io/datatypes"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// StateObjectColumns are the columns shared by every nullifier-linked state object table
type StateObjectColumns struct {
	// RecoveryStreamSeed identifies the object across versions
	RecoveryStreamSeed domain.Scalar `gorm:"column:recovery_stream_seed;primaryKey;type:numeric(78,0)"`
	// AccountID is the owning account
	AccountID uuid.UUID `gorm:"column:account_id;not null;type:uuid"`
	// IdentifierSeed derives the object's recovery IDs and nullifiers
	IdentifierSeed domain.Scalar `gorm:"column:identifier_seed;not null;type:numeric(78,0)"`
	// ShareStreamSeed seeds the object's private shares
	ShareStreamSeed domain.Scalar `gorm:"column:share_stream_seed;not null;type:numeric(78,0)"`
	// ShareStreamIndex is the number of private shares drawn so far
	ShareStreamIndex int64 `gorm:"column:share_stream_index;not null"`
	// Version is the current object version
	Version int64 `gorm:"column:version;not null"`
	// Nullifier is the nullifier that will be spent when the current version is superseded
	Nullifier domain.Scalar `gorm:"column:nullifier;not null;type:numeric(78,0)"`
	// Active is false once the object is cancelled
	Active bool `gorm:"column:active;not null;default:true"`
	// PublicShares are the on-chain shares as decimal strings
	PublicShares datatypes.JSONSlice[domain.Scalar] `gorm:"column:public_shares;not null;type:jsonb"`
	// PrivateShares are the shares drawn from the share stream
	PrivateShares datatypes.JSONSlice[domain.Scalar] `gorm:"column:private_shares;not null;type:jsonb"`
	// CreatedAt is the timestamp when the object was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the object last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// Balance represents the balances table
type Balance struct {
	StateObjectColumns `gorm:"embedded"`
	// Mint is the lowercase hex token address
	Mint string `gorm:"column:mint;not null;type:text"`
	// Amount is the decrypted amount, kept for querying
	Amount *uint256.Int `gorm:"column:amount;not null;type:numeric(78,0)"`
	// AllowPublicFills lets the balance back public fills
	AllowPublicFills bool `gorm:"column:allow_public_fills;not null;default:false"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}

// Intent represents the intents table
type Intent struct {
	StateObjectColumns `gorm:"embedded"`
	// InputMint is the lowercase hex address of the token sold
	InputMint string `gorm:"column:input_mint;not null;type:text"`
	// OutputMint is the lowercase hex address of the token bought
	OutputMint string `gorm:"column:output_mint;not null;type:text"`
	// AmountIn is the decrypted remaining input amount
	AmountIn *uint256.Int `gorm:"column:amount_in;not null;type:numeric(78,0)"`
	// MatchingPool is the pool the intent matches in
	MatchingPool string `gorm:"column:matching_pool;not null;type:text"`
	// AllowExternalMatches lets the intent match against external flow
	AllowExternalMatches bool `gorm:"column:allow_external_matches;not null;default:false"`
	// MinFillSize is the smallest fill the intent accepts
	MinFillSize *uint256.Int `gorm:"column:min_fill_size;not null;type:numeric(78,0)"`
	// PrecomputeCancellationProof asks the relayer to keep a cancellation proof ready
	PrecomputeCancellationProof bool `gorm:"column:precompute_cancellation_proof;not null;default:false"`
}

// TableName specifies the table name for the Intent model
func (Intent) TableName() string {
	return "intents"
}

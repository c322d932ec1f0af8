package store

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore

// Store defines the interface for database operations.
// Lookups that find nothing return (nil, nil).
type Store interface {
	// Transaction runs fn inside one serializable transaction pinned to the primary.
	// The Store passed to fn is bound to that transaction.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// CreateMasterViewSeed inserts a seed, reporting false if the account already has one
	CreateMasterViewSeed(ctx context.Context, seed *domain.MasterViewSeed) (bool, error)
	// GetMasterViewSeed retrieves an account's seed
	GetMasterViewSeed(ctx context.Context, accountID uuid.UUID) (*domain.MasterViewSeed, error)
	// LockMasterViewSeed retrieves an account's seed with a row lock
	LockMasterViewSeed(ctx context.Context, accountID uuid.UUID) (*domain.MasterViewSeed, error)
	// GetMasterViewSeedByOwner retrieves the seed registered for an owner address
	GetMasterViewSeedByOwner(ctx context.Context, owner common.Address) (*domain.MasterViewSeed, error)
	// UpdateMasterViewSeedIndices persists the seed's stream indices
	UpdateMasterViewSeedIndices(ctx context.Context, seed *domain.MasterViewSeed) error

	// InsertExpectedStateObject stores the next expected slot of an account
	InsertExpectedStateObject(ctx context.Context, obj *domain.ExpectedStateObject) error
	// GetExpectedStateObject retrieves the expected slot announced by a recovery ID
	GetExpectedStateObject(ctx context.Context, recoveryID domain.Scalar) (*domain.ExpectedStateObject, error)
	// GetExpectedStateObjectByAccount retrieves an account's expected slot
	GetExpectedStateObjectByAccount(ctx context.Context, accountID uuid.UUID) (*domain.ExpectedStateObject, error)
	// DeleteExpectedStateObject removes a consumed expected slot
	DeleteExpectedStateObject(ctx context.Context, recoveryID domain.Scalar) error

	// CreateBalance inserts a new balance
	CreateBalance(ctx context.Context, balance *domain.BalanceObject) error
	// UpdateBalance writes a balance's versioned fields
	UpdateBalance(ctx context.Context, balance *domain.BalanceObject) error
	// GetBalanceByNullifier retrieves, with a row lock, the balance whose current nullifier matches
	GetBalanceByNullifier(ctx context.Context, nullifier domain.Scalar) (*domain.BalanceObject, error)

	// CreateIntent inserts a new intent
	CreateIntent(ctx context.Context, intent *domain.IntentObject) error
	// UpdateIntent writes an intent's versioned fields
	UpdateIntent(ctx context.Context, intent *domain.IntentObject) error
	// GetIntentByNullifier retrieves, with a row lock, the intent whose current nullifier matches
	GetIntentByNullifier(ctx context.Context, nullifier domain.Scalar) (*domain.IntentObject, error)

	// GetStateObject retrieves the balance or intent keyed by a recovery stream seed
	GetStateObject(ctx context.Context, recoveryStreamSeed domain.Scalar) (*domain.StateObject, error)
	// GetNullifierOwner resolves the balance, intent or expected slot whose current nullifier matches
	GetNullifierOwner(ctx context.Context, nullifier domain.Scalar) (*domain.NullifierOwner, error)

	// CreatePublicIntent inserts a public intent, reporting false if the hash already exists
	CreatePublicIntent(ctx context.Context, intent *domain.PublicIntent) (bool, error)
	// GetPublicIntent retrieves, with a row lock, a public intent by hash
	GetPublicIntent(ctx context.Context, hash common.Hash) (*domain.PublicIntent, error)
	// UpdatePublicIntent writes a public intent's versioned fields
	UpdatePublicIntent(ctx context.Context, intent *domain.PublicIntent) error

	// GetUserState retrieves the active objects of an account
	GetUserState(ctx context.Context, accountID uuid.UUID) (*domain.UserState, error)

	GuardStore
	CursorStore
}

// GuardStore records which chain facts have been applied
type GuardStore interface {
	// IsNullifierProcessed checks the nullifier spend guard
	IsNullifierProcessed(ctx context.Context, nullifier domain.Scalar) (bool, error)
	// MarkNullifierProcessed records a nullifier spend as applied
	MarkNullifierProcessed(ctx context.Context, nullifier domain.Scalar, src domain.Source) error
	// IsRecoveryIDProcessed checks the recovery ID guard
	IsRecoveryIDProcessed(ctx context.Context, recoveryID domain.Scalar) (bool, error)
	// MarkRecoveryIDProcessed records a recovery ID registration as applied
	MarkRecoveryIDProcessed(ctx context.Context, recoveryID domain.Scalar, src domain.Source) error
	// IsPublicIntentCreationProcessed checks the public intent creation guard
	IsPublicIntentCreationProcessed(ctx context.Context, hash common.Hash) (bool, error)
	// MarkPublicIntentCreationProcessed records a public intent creation as applied
	MarkPublicIntentCreationProcessed(ctx context.Context, hash common.Hash, src domain.Source) error
	// IsPublicIntentUpdateProcessed checks the versioned public intent update guard
	IsPublicIntentUpdateProcessed(ctx context.Context, hash common.Hash, version uint64) (bool, error)
	// MarkPublicIntentUpdateProcessed records a versioned public intent update as applied
	MarkPublicIntentUpdateProcessed(ctx context.Context, hash common.Hash, version uint64, src domain.Source) error
}

package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// GlobalMatchingPool is the matching pool new intents are placed in
const GlobalMatchingPool = "global"

// ObjectKind is the type of a nullifier-linked state object
type ObjectKind string

const (
	ObjectKindBalance ObjectKind = "balance"
	ObjectKindIntent  ObjectKind = "intent"
)

// EventKind identifies a watched chain event kind. Each kind has its own resume cursor.
type EventKind string

const (
	EventKindNullifierSpend       EventKind = "nullifier_spend"
	EventKindRecoveryID           EventKind = "recovery_id"
	EventKindPublicIntentCreation EventKind = "public_intent_creation"
	EventKindPublicIntentUpdate   EventKind = "public_intent_update"
)

// EventKinds lists every cursor-bearing event kind
var EventKinds = []EventKind{
	EventKindNullifierSpend,
	EventKindRecoveryID,
	EventKindPublicIntentCreation,
	EventKindPublicIntentUpdate,
}

// Source describes the chain fact behind a transition
type Source struct {
	BlockNumber uint64      `json:"block_number"`
	TxHash      common.Hash `json:"tx_hash"`
	Backfill    bool        `json:"is_backfill,omitempty"`
}

// MasterViewSeed is an account's root secret.
// RecoverySeedIndex and ShareSeedIndex hold the next slot index to derive.
type MasterViewSeed struct {
	AccountID         uuid.UUID      `json:"account_id"`
	OwnerAddress      common.Address `json:"owner_address"`
	Seed              Scalar         `json:"seed"`
	RecoverySeedIndex uint64         `json:"recovery_seed_index"`
	ShareSeedIndex    uint64         `json:"share_seed_index"`
}

// ExpectedStateObject points at the next object slot an account is expected to create
type ExpectedStateObject struct {
	RecoveryID         Scalar         `json:"recovery_id"`
	AccountID          uuid.UUID      `json:"account_id"`
	OwnerAddress       common.Address `json:"owner_address"`
	SlotIndex          uint64         `json:"slot_index"`
	IdentifierSeed     Scalar         `json:"identifier_seed"`
	RecoveryStreamSeed Scalar         `json:"recovery_stream_seed"`
	ShareStreamSeed    Scalar         `json:"share_stream_seed"`
	// Nullifier is the version 0 nullifier the object will carry once created
	Nullifier Scalar `json:"nullifier"`
}

// NullifierOwner locates the object, created or expected, whose current nullifier matches
type NullifierOwner struct {
	AccountID      uuid.UUID
	IdentifierSeed Scalar
	Version        uint64
}

// StateObject is the kind-independent part of a balance or intent.
// Plaintext values are PublicShares[i] + PrivateShares[i].
type StateObject struct {
	RecoveryStreamSeed Scalar     `json:"recovery_stream_seed"`
	AccountID          uuid.UUID  `json:"account_id"`
	Kind               ObjectKind `json:"kind"`
	IdentifierSeed     Scalar     `json:"-"`
	ShareStreamSeed    Scalar     `json:"-"`
	ShareStreamIndex   uint64     `json:"-"`
	Version            uint64     `json:"version"`
	Nullifier          Scalar     `json:"nullifier"`
	Active             bool       `json:"active"`
	PublicShares       []Scalar   `json:"public_shares"`
	PrivateShares      []Scalar   `json:"-"`
}

// Values returns the plaintext field values of the object
func (o *StateObject) Values() []Scalar {
	values := make([]Scalar, len(o.PublicShares))
	for i := range o.PublicShares {
		values[i] = o.PublicShares[i].Add(o.PrivateShares[i])
	}
	return values
}

// Value returns the plaintext value at index i
func (o *StateObject) Value(i int) Scalar {
	return o.PublicShares[i].Add(o.PrivateShares[i])
}

// BalanceObject is a balance state object with its indexer-side metadata
type BalanceObject struct {
	StateObject
	AllowPublicFills bool `json:"allow_public_fills"`
}

// Balance decodes the plaintext balance
func (b *BalanceObject) Balance() (Balance, error) {
	return DecodeBalance(b.Values())
}

// IntentObject is an intent state object with its matching metadata
type IntentObject struct {
	StateObject
	MatchingPool                string       `json:"matching_pool"`
	AllowExternalMatches        bool         `json:"allow_external_matches"`
	MinFillSize                 *uint256.Int `json:"min_fill_size"`
	PrecomputeCancellationProof bool         `json:"precompute_cancellation_proof"`
}

// Intent decodes the plaintext intent
func (i *IntentObject) Intent() (Intent, error) {
	return DecodeIntent(i.Values())
}

// PublicIntent is an intent posted in the clear, keyed by its on-chain hash
type PublicIntent struct {
	IntentHash                  common.Hash  `json:"intent_hash"`
	AccountID                   uuid.UUID    `json:"account_id"`
	Version                     uint64       `json:"version"`
	Active                      bool         `json:"active"`
	Intent                      Intent       `json:"intent"`
	MatchingPool                string       `json:"matching_pool"`
	AllowExternalMatches        bool         `json:"allow_external_matches"`
	MinFillSize                 *uint256.Int `json:"min_fill_size"`
	PrecomputeCancellationProof bool         `json:"precompute_cancellation_proof"`
}

// NewPublicIntent creates a version 0 public intent with default metadata
func NewPublicIntent(hash common.Hash, accountID uuid.UUID, intent Intent) *PublicIntent {
	return &PublicIntent{
		IntentHash:   hash,
		AccountID:    accountID,
		Active:       true,
		Intent:       intent,
		MatchingPool: GlobalMatchingPool,
		MinFillSize:  new(uint256.Int).Set(intent.AmountIn),
	}
}

// UserState is the set of active objects owned by an account
type UserState struct {
	Balances      []BalanceObject `json:"balances"`
	Intents       []IntentObject  `json:"intents"`
	PublicIntents []PublicIntent  `json:"public_intents"`
}

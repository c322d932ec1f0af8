package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// EventType names a darkpool contract event
type EventType string

const (
	EventRecoveryIDRegistered  EventType = "RecoveryIdRegistered"
	EventNullifierSpent        EventType = "NullifierSpent"
	EventPublicIntentCreated   EventType = "PublicIntentCreated"
	EventPublicIntentUpdated   EventType = "PublicIntentUpdated"
	EventPublicIntentCancelled EventType = "PublicIntentCancelled"
)

// Event is a parsed darkpool log.
// Only the fields relevant to Type are set.
type Event struct {
	Type        EventType
	BlockNumber uint64
	TxHash      common.Hash
	LogIndex    uint

	RecoveryID domain.Scalar
	Nullifier  domain.Scalar
	IntentHash common.Hash
	Owner      common.Address
	Version    uint64
}

// CursorKind returns the LastIndexedBlock cursor that tracks events of this type
func (e Event) CursorKind() domain.EventKind {
	switch e.Type {
	case EventRecoveryIDRegistered:
		return domain.EventKindRecoveryID
	case EventNullifierSpent:
		return domain.EventKindNullifierSpend
	case EventPublicIntentCreated:
		return domain.EventKindPublicIntentCreation
	default:
		return domain.EventKindPublicIntentUpdate
	}
}

// RecoveryIDRegistration is a recovery ID registration resolved against its transaction.
// NewBalance or NewIntent holds the public shares of the object the registration
// creates. Both are nil when the recovery ID announces a new version of an
// existing object.
type RecoveryIDRegistration struct {
	RecoveryID  domain.Scalar
	BlockNumber uint64
	TxHash      common.Hash
	NewBalance  []domain.Scalar
	NewIntent   []domain.Scalar
}

// SpendKind is the darkpool operation that spent a nullifier
type SpendKind string

const (
	SpendDeposit           SpendKind = "deposit"
	SpendWithdraw          SpendKind = "withdraw"
	SpendPayProtocolFee    SpendKind = "pay_protocol_fee"
	SpendPayRelayerFee     SpendKind = "pay_relayer_fee"
	SpendCancelOrder       SpendKind = "cancel_order"
	SpendIntentFill        SpendKind = "intent_fill"
	SpendInputBalanceFill  SpendKind = "input_balance_fill"
	SpendOutputBalanceFill SpendKind = "output_balance_fill"
)

// NullifierSpend is a nullifier spend resolved against its transaction
type NullifierSpend struct {
	Nullifier   domain.Scalar
	BlockNumber uint64
	TxHash      common.Hash
	Kind        SpendKind
	// NewShare is the re-encrypted public share of a deposit, withdrawal or fee payment
	NewShare domain.Scalar
	// Fill is set for the settlement kinds
	Fill *Fill
}

// Fill is one party's side of a settled match
type Fill struct {
	Public bool
	// Shares are the re-encrypted public shares of a private fill
	Shares          []domain.Scalar
	Obligation      domain.SettlementObligation
	RelayerFeeRate  domain.FixedPoint
	ProtocolFeeRate domain.FixedPoint
}

// PublicIntentCreation is the first fill of a public intent
type PublicIntentCreation struct {
	IntentHash  common.Hash
	Intent      domain.Intent
	FillAmount  *uint256.Int
	BlockNumber uint64
	TxHash      common.Hash
}

// PublicIntentUpdate is a later fill of a public intent
type PublicIntentUpdate struct {
	IntentHash  common.Hash
	Version     uint64
	FillAmount  *uint256.Int
	BlockNumber uint64
	TxHash      common.Hash
}

// PublicIntentCancellation is the cancellation of a public intent
type PublicIntentCancellation struct {
	IntentHash  common.Hash
	Version     uint64
	BlockNumber uint64
	TxHash      common.Hash
}

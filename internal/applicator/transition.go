package applicator

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// Transition is a typed state change. The set of implementations is closed.
type Transition interface {
	// Name identifies the transition kind in logs and metrics
	Name() string

	origin() domain.Source
}

// RegisterMasterViewSeed registers an account and claims its first object slot
type RegisterMasterViewSeed struct {
	AccountID    uuid.UUID
	OwnerAddress common.Address
	Seed         domain.Scalar
}

// CreateBalance creates the balance announced by the recovery ID of an expected slot
type CreateBalance struct {
	RecoveryID   domain.Scalar
	PublicShares []domain.Scalar
	Source       domain.Source
}

// Deposit re-encrypts a balance's amount after a deposit
type Deposit struct {
	Nullifier      domain.Scalar
	NewAmountShare domain.Scalar
	Source         domain.Source
}

// Withdraw re-encrypts a balance's amount after a withdrawal
type Withdraw struct {
	Nullifier      domain.Scalar
	NewAmountShare domain.Scalar
	Source         domain.Source
}

// PayProtocolFee re-encrypts a balance's protocol fee after it is paid out
type PayProtocolFee struct {
	Nullifier           domain.Scalar
	NewProtocolFeeShare domain.Scalar
	Source              domain.Source
}

// PayRelayerFee re-encrypts a balance's relayer fee after it is paid out
type PayRelayerFee struct {
	Nullifier          domain.Scalar
	NewRelayerFeeShare domain.Scalar
	Source             domain.Source
}

// SettleMatchIntoBalance applies one side of a match to a balance
type SettleMatchIntoBalance struct {
	Nullifier  domain.Scalar
	Settlement BalanceSettlement
	Source     domain.Source
}

// BalanceSettlement is how a match touches a balance
type BalanceSettlement interface {
	isBalanceSettlement()
}

// PrivateFill carries re-encrypted public shares for the relayer fee,
// protocol fee and amount fields, in that order
type PrivateFill struct {
	UpdatedShares []domain.Scalar
}

// PublicFillInput debits the input side of a match settled in the clear
type PublicFillInput struct {
	Obligation domain.SettlementObligation
}

// PublicFillOutput credits the output side of a match settled in the clear, net of fees
type PublicFillOutput struct {
	Obligation      domain.SettlementObligation
	RelayerFeeRate  domain.FixedPoint
	ProtocolFeeRate domain.FixedPoint
}

func (PrivateFill) isBalanceSettlement()      {}
func (PublicFillInput) isBalanceSettlement()  {}
func (PublicFillOutput) isBalanceSettlement() {}

// CreateIntent creates the intent announced by the recovery ID of an expected slot
type CreateIntent struct {
	RecoveryID   domain.Scalar
	PublicShares []domain.Scalar
	Source       domain.Source
}

// SettleMatchIntoIntent applies a fill to an intent
type SettleMatchIntoIntent struct {
	Nullifier  domain.Scalar
	Settlement IntentSettlement
	Source     domain.Source
}

// IntentSettlement is how a match touches an intent
type IntentSettlement interface {
	isIntentSettlement()
}

// IntentPrivateFill carries the re-encrypted amount share of the intent
type IntentPrivateFill struct {
	UpdatedAmountShare domain.Scalar
}

// IntentPublicFill decrements the intent by an obligation settled in the clear
type IntentPublicFill struct {
	Obligation domain.SettlementObligation
}

func (IntentPrivateFill) isIntentSettlement() {}
func (IntentPublicFill) isIntentSettlement()  {}

// CancelOrder deactivates an intent
type CancelOrder struct {
	Nullifier domain.Scalar
	Source    domain.Source
}

// CreatePublicIntent records a public intent posted as part of its first fill
type CreatePublicIntent struct {
	IntentHash common.Hash
	Intent     domain.Intent
	// AmountIn is the size of the fill settled when the intent was posted
	AmountIn *uint256.Int
	Source   domain.Source
}

// SettleMatchIntoPublicIntent applies a versioned fill to a public intent
type SettleMatchIntoPublicIntent struct {
	IntentHash common.Hash
	Version    uint64
	AmountIn   *uint256.Int
	Source     domain.Source
}

// CancelPublicIntent deactivates a public intent at a version
type CancelPublicIntent struct {
	IntentHash common.Hash
	Version    uint64
	Source     domain.Source
}

func (RegisterMasterViewSeed) Name() string      { return "register_master_view_seed" }
func (CreateBalance) Name() string               { return "create_balance" }
func (Deposit) Name() string                     { return "deposit" }
func (Withdraw) Name() string                    { return "withdraw" }
func (PayProtocolFee) Name() string              { return "pay_protocol_fee" }
func (PayRelayerFee) Name() string               { return "pay_relayer_fee" }
func (SettleMatchIntoBalance) Name() string      { return "settle_match_into_balance" }
func (CreateIntent) Name() string                { return "create_intent" }
func (SettleMatchIntoIntent) Name() string       { return "settle_match_into_intent" }
func (CancelOrder) Name() string                 { return "cancel_order" }
func (CreatePublicIntent) Name() string          { return "create_public_intent" }
func (SettleMatchIntoPublicIntent) Name() string { return "settle_match_into_public_intent" }
func (CancelPublicIntent) Name() string          { return "cancel_public_intent" }

func (RegisterMasterViewSeed) origin() domain.Source        { return domain.Source{} }
func (t CreateBalance) origin() domain.Source               { return t.Source }
func (t Deposit) origin() domain.Source                     { return t.Source }
func (t Withdraw) origin() domain.Source                    { return t.Source }
func (t PayProtocolFee) origin() domain.Source              { return t.Source }
func (t PayRelayerFee) origin() domain.Source               { return t.Source }
func (t SettleMatchIntoBalance) origin() domain.Source      { return t.Source }
func (t CreateIntent) origin() domain.Source                { return t.Source }
func (t SettleMatchIntoIntent) origin() domain.Source       { return t.Source }
func (t CancelOrder) origin() domain.Source                 { return t.Source }
func (t CreatePublicIntent) origin() domain.Source          { return t.Source }
func (t SettleMatchIntoPublicIntent) origin() domain.Source { return t.Source }
func (t CancelPublicIntent) origin() domain.Source          { return t.Source }

// SourceOf returns the chain fact behind a transition
func SourceOf(t Transition) domain.Source {
	return t.origin()
}

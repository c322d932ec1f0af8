package messagequeue

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// Message kinds, used as the single key of the JSON encoding
const (
	KindRegisterMasterViewSeed = "RegisterMasterViewSeed"
	KindRegisterRecoveryID     = "RegisterRecoveryId"
	KindNullifierSpend         = "NullifierSpend"
	KindCreatePublicIntent     = "CreatePublicIntent"
	KindUpdatePublicIntent     = "UpdatePublicIntent"
	KindCancelPublicIntent     = "CancelPublicIntent"
)

var (
	// ErrEmptyMessage is returned when a message carries no variant
	ErrEmptyMessage = errors.New("message has no variant")
	// ErrAmbiguousMessage is returned when a message carries more than one variant
	ErrAmbiguousMessage = errors.New("message has more than one variant")
)

// RegisterMasterViewSeed registers an account's root secret
type RegisterMasterViewSeed struct {
	AccountID    uuid.UUID      `json:"account_id"`
	OwnerAddress common.Address `json:"owner_address"`
	Seed         domain.Scalar  `json:"seed"`
}

// RegisterRecoveryID reports an on-chain recovery ID registration
type RegisterRecoveryID struct {
	RecoveryID domain.Scalar `json:"recovery_id"`
	TxHash     common.Hash   `json:"tx_hash"`
	IsBackfill bool          `json:"is_backfill,omitempty"`
}

// NullifierSpend reports an on-chain nullifier spend
type NullifierSpend struct {
	Nullifier  domain.Scalar `json:"nullifier"`
	TxHash     common.Hash   `json:"tx_hash"`
	IsBackfill bool          `json:"is_backfill,omitempty"`
}

// CreatePublicIntent reports a public intent creation
type CreatePublicIntent struct {
	IntentHash common.Hash `json:"intent_hash"`
	TxHash     common.Hash `json:"tx_hash"`
	IsBackfill bool        `json:"is_backfill,omitempty"`
}

// UpdatePublicIntent reports a fill against a public intent
type UpdatePublicIntent struct {
	IntentHash common.Hash `json:"intent_hash"`
	Version    uint64      `json:"version"`
	TxHash     common.Hash `json:"tx_hash"`
	IsBackfill bool        `json:"is_backfill,omitempty"`
}

// CancelPublicIntent reports a public intent cancellation
type CancelPublicIntent struct {
	IntentHash common.Hash `json:"intent_hash"`
	Version    uint64      `json:"version"`
	TxHash     common.Hash `json:"tx_hash"`
	IsBackfill bool        `json:"is_backfill,omitempty"`
}

// Message is the tagged union carried by the queue. Exactly one field is set.
type Message struct {
	RegisterMasterViewSeed *RegisterMasterViewSeed `json:"RegisterMasterViewSeed,omitempty"`
	RegisterRecoveryID     *RegisterRecoveryID     `json:"RegisterRecoveryId,omitempty"`
	NullifierSpend         *NullifierSpend         `json:"NullifierSpend,omitempty"`
	CreatePublicIntent     *CreatePublicIntent     `json:"CreatePublicIntent,omitempty"`
	UpdatePublicIntent     *UpdatePublicIntent     `json:"UpdatePublicIntent,omitempty"`
	CancelPublicIntent     *CancelPublicIntent     `json:"CancelPublicIntent,omitempty"`
}

// NewRegisterMasterViewSeed builds a seed registration message
func NewRegisterMasterViewSeed(accountID uuid.UUID, owner common.Address, seed domain.Scalar) *Message {
	return &Message{RegisterMasterViewSeed: &RegisterMasterViewSeed{AccountID: accountID, OwnerAddress: owner, Seed: seed}}
}

// NewRegisterRecoveryID builds a recovery ID message
func NewRegisterRecoveryID(recoveryID domain.Scalar, txHash common.Hash, backfill bool) *Message {
	return &Message{RegisterRecoveryID: &RegisterRecoveryID{RecoveryID: recoveryID, TxHash: txHash, IsBackfill: backfill}}
}

// NewNullifierSpend builds a nullifier spend message
func NewNullifierSpend(nullifier domain.Scalar, txHash common.Hash, backfill bool) *Message {
	return &Message{NullifierSpend: &NullifierSpend{Nullifier: nullifier, TxHash: txHash, IsBackfill: backfill}}
}

// NewCreatePublicIntent builds a public intent creation message
func NewCreatePublicIntent(hash, txHash common.Hash, backfill bool) *Message {
	return &Message{CreatePublicIntent: &CreatePublicIntent{IntentHash: hash, TxHash: txHash, IsBackfill: backfill}}
}

// NewUpdatePublicIntent builds a public intent update message
func NewUpdatePublicIntent(hash common.Hash, version uint64, txHash common.Hash, backfill bool) *Message {
	return &Message{UpdatePublicIntent: &UpdatePublicIntent{IntentHash: hash, Version: version, TxHash: txHash, IsBackfill: backfill}}
}

// NewCancelPublicIntent builds a public intent cancellation message
func NewCancelPublicIntent(hash common.Hash, version uint64, txHash common.Hash, backfill bool) *Message {
	return &Message{CancelPublicIntent: &CancelPublicIntent{IntentHash: hash, Version: version, TxHash: txHash, IsBackfill: backfill}}
}

// Kind returns the name of the variant that is set, or "" for an empty message
func (m *Message) Kind() string {
	switch {
	case m == nil:
		return ""
	case m.RegisterMasterViewSeed != nil:
		return KindRegisterMasterViewSeed
	case m.RegisterRecoveryID != nil:
		return KindRegisterRecoveryID
	case m.NullifierSpend != nil:
		return KindNullifierSpend
	case m.CreatePublicIntent != nil:
		return KindCreatePublicIntent
	case m.UpdatePublicIntent != nil:
		return KindUpdatePublicIntent
	case m.CancelPublicIntent != nil:
		return KindCancelPublicIntent
	}
	return ""
}

// Validate checks that exactly one variant is set
func (m *Message) Validate() error {
	if m == nil {
		return ErrEmptyMessage
	}

	set := 0
	for _, ok := range []bool{
		m.RegisterMasterViewSeed != nil,
		m.RegisterRecoveryID != nil,
		m.NullifierSpend != nil,
		m.CreatePublicIntent != nil,
		m.UpdatePublicIntent != nil,
		m.CancelPublicIntent != nil,
	} {
		if ok {
			set++
		}
	}

	switch {
	case set == 0:
		return ErrEmptyMessage
	case set > 1:
		return ErrAmbiguousMessage
	}
	return nil
}

// IsBackfill reports whether the message was produced by a backfill run
func (m *Message) IsBackfill() bool {
	switch m.Kind() {
	case KindRegisterRecoveryID:
		return m.RegisterRecoveryID.IsBackfill
	case KindNullifierSpend:
		return m.NullifierSpend.IsBackfill
	case KindCreatePublicIntent:
		return m.CreatePublicIntent.IsBackfill
	case KindUpdatePublicIntent:
		return m.UpdatePublicIntent.IsBackfill
	case KindCancelPublicIntent:
		return m.CancelPublicIntent.IsBackfill
	}
	return false
}

// FactKey identifies the chain fact (or registration) a message reports.
// Two messages with the same key describe the same fact.
func (m *Message) FactKey() string {
	switch m.Kind() {
	case KindRegisterMasterViewSeed:
		return "master_view_seed:" + m.RegisterMasterViewSeed.AccountID.String()
	case KindRegisterRecoveryID:
		return "recovery_id:" + m.RegisterRecoveryID.RecoveryID.String()
	case KindNullifierSpend:
		return "nullifier:" + m.NullifierSpend.Nullifier.String()
	case KindCreatePublicIntent:
		return "public_intent_creation:" + m.CreatePublicIntent.IntentHash.Hex()
	case KindUpdatePublicIntent:
		return fmt.Sprintf("public_intent_update:%s:%d", m.UpdatePublicIntent.IntentHash.Hex(), m.UpdatePublicIntent.Version)
	case KindCancelPublicIntent:
		return fmt.Sprintf("public_intent_cancel:%s:%d", m.CancelPublicIntent.IntentHash.Hex(), m.CancelPublicIntent.Version)
	}
	return ""
}

// DedupID is the deduplication ID used when sending the message.
// Backfill copies get their own ID so that a live message dropped
// earlier does not suppress the repair.
func (m *Message) DedupID() string {
	if m.IsBackfill() {
		return "backfill:" + m.FactKey()
	}
	return m.FactKey()
}

// UnmarshalJSON decodes the single-key tagged encoding, rejecting unknown
// variants and objects with zero or several keys.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return ErrEmptyMessage
	}
	if len(raw) > 1 {
		return ErrAmbiguousMessage
	}

	var out Message
	for key, body := range raw {
		var target any
		switch key {
		case KindRegisterMasterViewSeed:
			out.RegisterMasterViewSeed = &RegisterMasterViewSeed{}
			target = out.RegisterMasterViewSeed
		case KindRegisterRecoveryID:
			out.RegisterRecoveryID = &RegisterRecoveryID{}
			target = out.RegisterRecoveryID
		case KindNullifierSpend:
			out.NullifierSpend = &NullifierSpend{}
			target = out.NullifierSpend
		case KindCreatePublicIntent:
			out.CreatePublicIntent = &CreatePublicIntent{}
			target = out.CreatePublicIntent
		case KindUpdatePublicIntent:
			out.UpdatePublicIntent = &UpdatePublicIntent{}
			target = out.UpdatePublicIntent
		case KindCancelPublicIntent:
			out.CancelPublicIntent = &CancelPublicIntent{}
			target = out.CancelPublicIntent
		default:
			return fmt.Errorf("unknown message variant %q", key)
		}

		if err := json.Unmarshal(body, target); err != nil {
			return fmt.Errorf("failed to decode %s: %w", key, err)
		}
	}

	*m = out
	return nil
}

// Encode serializes a message after validating it
func Encode(m *Message) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// Decode parses a message body
func Decode(body []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

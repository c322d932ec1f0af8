package rest

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// BackfillRequest is the body of POST /backfill
type BackfillRequest struct {
	AccountID uuid.UUID `json:"account_id" binding:"required"`
}

// SubmitMessageResponse is returned by POST /messages
type SubmitMessageResponse struct {
	Kind    string `json:"kind"`
	Group   string `json:"group"`
	DedupID string `json:"dedup_id"`
}

// UserStateResponse is returned by GET /users/:account_id/state
type UserStateResponse struct {
	ActiveStateObjects []StateObject `json:"active_state_objects"`
}

// StateObject is a tagged state object; exactly one field is set
type StateObject struct {
	Balance      *Balance      `json:"Balance,omitempty"`
	Intent       *Intent       `json:"Intent,omitempty"`
	PublicIntent *PublicIntent `json:"PublicIntent,omitempty"`
}

type Balance struct {
	RecoveryStreamSeed domain.Scalar   `json:"recovery_stream_seed"`
	Version            uint64          `json:"version"`
	Nullifier          domain.Scalar   `json:"nullifier"`
	PublicShares       []domain.Scalar `json:"public_shares"`
	Balance            domain.Balance  `json:"balance"`
	AllowPublicFills   bool            `json:"allow_public_fills"`
}

type Intent struct {
	RecoveryStreamSeed          domain.Scalar   `json:"recovery_stream_seed"`
	Version                     uint64          `json:"version"`
	Nullifier                   domain.Scalar   `json:"nullifier"`
	PublicShares                []domain.Scalar `json:"public_shares"`
	Intent                      domain.Intent   `json:"intent"`
	MatchingPool                string          `json:"matching_pool"`
	AllowExternalMatches        bool            `json:"allow_external_matches"`
	MinFillSize                 *uint256.Int    `json:"min_fill_size"`
	PrecomputeCancellationProof bool            `json:"precompute_cancellation_proof"`
}

type PublicIntent struct {
	IntentHash                  common.Hash   `json:"intent_hash"`
	Version                     uint64        `json:"version"`
	Intent                      domain.Intent `json:"intent"`
	MatchingPool                string        `json:"matching_pool"`
	AllowExternalMatches        bool          `json:"allow_external_matches"`
	MinFillSize                 *uint256.Int  `json:"min_fill_size"`
	PrecomputeCancellationProof bool          `json:"precompute_cancellation_proof"`
}

// newUserStateResponse decodes every active object of state. Balances come
// first, then intents, then public intents.
func newUserStateResponse(state *domain.UserState) (*UserStateResponse, error) {
	resp := &UserStateResponse{ActiveStateObjects: []StateObject{}}
	if state == nil {
		return resp, nil
	}

	for i := range state.Balances {
		b := &state.Balances[i]
		balance, err := b.Balance()
		if err != nil {
			return nil, fmt.Errorf("failed to decode balance %s: %w", b.RecoveryStreamSeed, err)
		}
		resp.ActiveStateObjects = append(resp.ActiveStateObjects, StateObject{Balance: &Balance{
			RecoveryStreamSeed: b.RecoveryStreamSeed,
			Version:            b.Version,
			Nullifier:          b.Nullifier,
			PublicShares:       b.PublicShares,
			Balance:            balance,
			AllowPublicFills:   b.AllowPublicFills,
		}})
	}

	for i := range state.Intents {
		in := &state.Intents[i]
		intent, err := in.Intent()
		if err != nil {
			return nil, fmt.Errorf("failed to decode intent %s: %w", in.RecoveryStreamSeed, err)
		}
		resp.ActiveStateObjects = append(resp.ActiveStateObjects, StateObject{Intent: &Intent{
			RecoveryStreamSeed:          in.RecoveryStreamSeed,
			Version:                     in.Version,
			Nullifier:                   in.Nullifier,
			PublicShares:                in.PublicShares,
			Intent:                      intent,
			MatchingPool:                in.MatchingPool,
			AllowExternalMatches:        in.AllowExternalMatches,
			MinFillSize:                 in.MinFillSize,
			PrecomputeCancellationProof: in.PrecomputeCancellationProof,
		}})
	}

	for i := range state.PublicIntents {
		p := &state.PublicIntents[i]
		resp.ActiveStateObjects = append(resp.ActiveStateObjects, StateObject{PublicIntent: &PublicIntent{
			IntentHash:                  p.IntentHash,
			Version:                     p.Version,
			Intent:                      p.Intent,
			MatchingPool:                p.MatchingPool,
			AllowExternalMatches:        p.AllowExternalMatches,
			MinFillSize:                 p.MinFillSize,
			PrecomputeCancellationProof: p.PrecomputeCancellationProof,
		}})
	}

	return resp, nil
}

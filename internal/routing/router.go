// Package routing resolves the account group a chain fact belongs to.
//
// Facts of one account must be applied in chain order, so the listener sends
// them to the account's queue group. The store only knows objects that have
// been applied; the router also remembers what an account will see next
// (the first nullifier of a claimed slot, the following slot's recovery ID
// and the nullifier of an object's next version) so that a burst of facts
// about one account lands in the same group even when none of them has been
// applied yet.
package routing

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/store"
	"github.com/feral-file/darkpool-indexer/internal/streams"
)

// DefaultCacheSize is the number of predicted routes kept when none is configured
const DefaultCacheSize = 65536

//go:generate mockgen -source=router.go -destination=../mocks/router.go -package=mocks -mock_names=Router=MockRouter

// Router resolves chain facts to account groups.
// Every method returns "" when no registered account owns the fact.
type Router interface {
	// RecoveryID resolves the account expecting an object under a recovery ID
	RecoveryID(ctx context.Context, recoveryID domain.Scalar) (string, error)
	// Nullifier resolves the account owning the object that spends a nullifier
	Nullifier(ctx context.Context, nullifier domain.Scalar) (string, error)
	// Owner resolves the account registered for an owner address
	Owner(ctx context.Context, owner common.Address) (string, error)
	// Message resolves the account of a recovery ID or nullifier message
	Message(ctx context.Context, msg *messagequeue.Message) (string, error)
}

// route is a cached resolution. Slot routes carry the master seed so the
// following slot can be derived without a store round trip.
type route struct {
	accountID uuid.UUID

	// recovery ID routes
	master domain.Scalar
	slot   *streams.Slot

	// nullifier routes
	identifierSeed domain.Scalar
	version        uint64
}

type router struct {
	store store.Store
	cache *lru.Cache[string, route]
}

// NewRouter creates a router over st keeping at most size predicted routes
func NewRouter(st store.Store, size int) (Router, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, route](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create route cache: %w", err)
	}
	return &router{store: st, cache: cache}, nil
}

func recoveryKey(id domain.Scalar) string { return "recovery:" + id.String() }
func nullifierKey(n domain.Scalar) string { return "nullifier:" + n.String() }
func ownerKey(owner common.Address) string { return "owner:" + owner.Hex() }

func (r *router) RecoveryID(ctx context.Context, recoveryID domain.Scalar) (string, error) {
	if rt, ok := r.cache.Get(recoveryKey(recoveryID)); ok {
		r.learnSlot(rt)
		return rt.accountID.String(), nil
	}

	expected, err := r.store.GetExpectedStateObject(ctx, recoveryID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve recovery id %s: %w", recoveryID, err)
	}
	if expected == nil {
		return "", nil
	}

	seed, err := r.store.GetMasterViewSeed(ctx, expected.AccountID)
	if err != nil {
		return "", fmt.Errorf("failed to get master view seed of %s: %w", expected.AccountID, err)
	}
	if seed != nil {
		slot := streams.DeriveSlot(seed.Seed, expected.SlotIndex)
		r.learnSlot(route{accountID: expected.AccountID, master: seed.Seed, slot: &slot})
	} else {
		r.cache.Add(nullifierKey(expected.Nullifier), route{
			accountID:      expected.AccountID,
			identifierSeed: expected.IdentifierSeed,
		})
	}

	return expected.AccountID.String(), nil
}

// learnSlot records the first nullifier of a slot being created and the
// recovery ID that will announce the account's following slot
func (r *router) learnSlot(rt route) {
	if rt.slot == nil {
		return
	}
	r.cache.Add(nullifierKey(rt.slot.Nullifier(0)), route{
		accountID:      rt.accountID,
		identifierSeed: rt.slot.IdentifierSeed,
	})

	next := streams.DeriveSlot(rt.master, rt.slot.Index+1)
	r.cache.Add(recoveryKey(next.RecoveryID(0)), route{
		accountID: rt.accountID,
		master:    rt.master,
		slot:      &next,
	})
}

func (r *router) Nullifier(ctx context.Context, nullifier domain.Scalar) (string, error) {
	rt, ok := r.cache.Get(nullifierKey(nullifier))
	if !ok {
		owner, err := r.store.GetNullifierOwner(ctx, nullifier)
		if err != nil {
			return "", fmt.Errorf("failed to resolve nullifier %s: %w", nullifier, err)
		}
		if owner == nil {
			return "", nil
		}
		rt = route{
			accountID:      owner.AccountID,
			identifierSeed: owner.IdentifierSeed,
			version:        owner.Version,
		}
	}

	// spending version v reveals the nullifier of version v+1
	r.cache.Add(nullifierKey(streams.Nullifier(rt.identifierSeed, rt.version+1)), route{
		accountID:      rt.accountID,
		identifierSeed: rt.identifierSeed,
		version:        rt.version + 1,
	})

	return rt.accountID.String(), nil
}

func (r *router) Owner(ctx context.Context, owner common.Address) (string, error) {
	if rt, ok := r.cache.Get(ownerKey(owner)); ok {
		return rt.accountID.String(), nil
	}

	seed, err := r.store.GetMasterViewSeedByOwner(ctx, owner)
	if err != nil {
		return "", fmt.Errorf("failed to resolve intent owner %s: %w", owner.Hex(), err)
	}
	if seed == nil {
		return "", nil
	}

	r.cache.Add(ownerKey(owner), route{accountID: seed.AccountID})
	return seed.AccountID.String(), nil
}

func (r *router) Message(ctx context.Context, msg *messagequeue.Message) (string, error) {
	switch {
	case msg.RegisterRecoveryID != nil:
		return r.RecoveryID(ctx, msg.RegisterRecoveryID.RecoveryID)
	case msg.NullifierSpend != nil:
		return r.Nullifier(ctx, msg.NullifierSpend.Nullifier)
	}
	return "", nil
}

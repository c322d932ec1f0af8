package routing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/mocks"
	"github.com/feral-file/darkpool-indexer/internal/routing"
	"github.com/feral-file/darkpool-indexer/internal/streams"
)

func setupRouter(t *testing.T) (*mocks.MockStore, routing.Router) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	r, err := routing.NewRouter(st, 128)
	require.NoError(t, err)
	return st, r
}

func testSeed() *domain.MasterViewSeed {
	return &domain.MasterViewSeed{
		AccountID:         uuid.MustParse("7a4a1d8e-2a7b-4d0f-9b1a-3f1c5e6d7a8b"),
		OwnerAddress:      common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		Seed:              domain.NewScalar(424242),
		RecoverySeedIndex: 4,
	}
}

func TestRouter_RecoveryIDLearnsTheSlotsFuture(t *testing.T) {
	st, r := setupRouter(t)
	ctx := context.Background()
	seed := testSeed()

	slot := streams.DeriveSlot(seed.Seed, 3)
	expected := slot.Expected(seed)
	st.EXPECT().GetExpectedStateObject(gomock.Any(), expected.RecoveryID).Return(&expected, nil)
	st.EXPECT().GetMasterViewSeed(gomock.Any(), seed.AccountID).Return(seed, nil)

	group, err := r.RecoveryID(ctx, expected.RecoveryID)
	require.NoError(t, err)
	assert.Equal(t, seed.AccountID.String(), group)

	// none of these exist in the store yet; the router answers from what it learned
	group, err = r.Nullifier(ctx, slot.Nullifier(0))
	require.NoError(t, err)
	assert.Equal(t, seed.AccountID.String(), group, "first spend of the new object")

	group, err = r.Nullifier(ctx, slot.Nullifier(1))
	require.NoError(t, err)
	assert.Equal(t, seed.AccountID.String(), group, "spend of the version the first spend produced")

	next := streams.DeriveSlot(seed.Seed, 4)
	group, err = r.RecoveryID(ctx, next.RecoveryID(0))
	require.NoError(t, err)
	assert.Equal(t, seed.AccountID.String(), group, "creation in the following slot")

	group, err = r.Nullifier(ctx, next.Nullifier(0))
	require.NoError(t, err)
	assert.Equal(t, seed.AccountID.String(), group)
}

func TestRouter_NullifierFromStore(t *testing.T) {
	st, r := setupRouter(t)
	ctx := context.Background()
	accountID := uuid.New()
	idSeed := domain.NewScalar(77)
	n2 := streams.Nullifier(idSeed, 2)

	st.EXPECT().GetNullifierOwner(gomock.Any(), n2).Return(&domain.NullifierOwner{
		AccountID:      accountID,
		IdentifierSeed: idSeed,
		Version:        2,
	}, nil)

	group, err := r.Nullifier(ctx, n2)
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), group)

	group, err = r.Nullifier(ctx, streams.Nullifier(idSeed, 3))
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), group)
}

func TestRouter_UnknownFacts(t *testing.T) {
	st, r := setupRouter(t)
	ctx := context.Background()

	st.EXPECT().GetExpectedStateObject(gomock.Any(), domain.NewScalar(1)).Return(nil, nil)
	st.EXPECT().GetNullifierOwner(gomock.Any(), domain.NewScalar(2)).Return(nil, nil)
	st.EXPECT().GetMasterViewSeedByOwner(gomock.Any(), common.HexToAddress("0x01")).Return(nil, nil)

	group, err := r.RecoveryID(ctx, domain.NewScalar(1))
	require.NoError(t, err)
	assert.Empty(t, group)

	group, err = r.Nullifier(ctx, domain.NewScalar(2))
	require.NoError(t, err)
	assert.Empty(t, group)

	group, err = r.Owner(ctx, common.HexToAddress("0x01"))
	require.NoError(t, err)
	assert.Empty(t, group)
}

func TestRouter_OwnerIsCached(t *testing.T) {
	st, r := setupRouter(t)
	ctx := context.Background()
	seed := testSeed()

	st.EXPECT().GetMasterViewSeedByOwner(gomock.Any(), seed.OwnerAddress).Return(seed, nil).Times(1)

	for i := 0; i < 3; i++ {
		group, err := r.Owner(ctx, seed.OwnerAddress)
		require.NoError(t, err)
		assert.Equal(t, seed.AccountID.String(), group)
	}
}

func TestRouter_StoreError(t *testing.T) {
	st, r := setupRouter(t)
	boom := errors.New("connection reset")

	st.EXPECT().GetNullifierOwner(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := r.Nullifier(context.Background(), domain.NewScalar(9))
	assert.ErrorIs(t, err, boom)
}

func TestRouter_Message(t *testing.T) {
	st, r := setupRouter(t)
	ctx := context.Background()
	accountID := uuid.New()

	st.EXPECT().GetNullifierOwner(gomock.Any(), domain.NewScalar(5)).
		Return(&domain.NullifierOwner{AccountID: accountID, IdentifierSeed: domain.NewScalar(6)}, nil)

	group, err := r.Message(ctx, messagequeue.NewNullifierSpend(domain.NewScalar(5), common.Hash{}, false))
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), group)

	group, err = r.Message(ctx, messagequeue.NewCreatePublicIntent(common.HexToHash("0x01"), common.Hash{}, false))
	require.NoError(t, err)
	assert.Empty(t, group, "public intents are routed by owner")
}

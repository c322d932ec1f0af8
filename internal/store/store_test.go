package store

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestSeed creates a master view seed with a random account and owner
func buildTestSeed() *domain.MasterViewSeed {
	id := uuid.New()
	return &domain.MasterViewSeed{
		AccountID:    id,
		OwnerAddress: common.BytesToAddress(id[:]),
		Seed:         domain.ScalarFromBytes(id[:]),
	}
}

// buildTestBalance creates an active version 0 balance for an account
func buildTestBalance(accountID uuid.UUID, key uint64, amount uint64) *domain.BalanceObject {
	balance := domain.Balance{
		Mint:               common.HexToAddress("0x1111111111111111111111111111111111111111"),
		Owner:              common.HexToAddress("0x2222222222222222222222222222222222222222"),
		RelayerFeeBalance:  uint256.NewInt(0),
		ProtocolFeeBalance: uint256.NewInt(0),
		Amount:             uint256.NewInt(amount),
	}
	public := balance.Scalars()
	private := make([]domain.Scalar, len(public))

	return &domain.BalanceObject{
		StateObject: domain.StateObject{
			RecoveryStreamSeed: domain.NewScalar(key),
			AccountID:          accountID,
			Kind:               domain.ObjectKindBalance,
			IdentifierSeed:     domain.NewScalar(key + 1),
			ShareStreamSeed:    domain.NewScalar(key + 2),
			ShareStreamIndex:   uint64(len(public)),
			Nullifier:          domain.NewScalar(key + 3),
			Active:             true,
			PublicShares:       public,
			PrivateShares:      private,
		},
	}
}

// buildTestIntent creates an active version 0 intent for an account
func buildTestIntent(accountID uuid.UUID, key uint64, amountIn uint64) *domain.IntentObject {
	intent := domain.Intent{
		InputMint:  common.HexToAddress("0x1111111111111111111111111111111111111111"),
		OutputMint: common.HexToAddress("0x3333333333333333333333333333333333333333"),
		Owner:      common.HexToAddress("0x2222222222222222222222222222222222222222"),
		MinPrice:   domain.NewScalar(1),
		AmountIn:   uint256.NewInt(amountIn),
	}
	public := intent.Scalars()

	return &domain.IntentObject{
		StateObject: domain.StateObject{
			RecoveryStreamSeed: domain.NewScalar(key),
			AccountID:          accountID,
			Kind:               domain.ObjectKindIntent,
			IdentifierSeed:     domain.NewScalar(key + 1),
			ShareStreamSeed:    domain.NewScalar(key + 2),
			ShareStreamIndex:   uint64(len(public)),
			Nullifier:          domain.NewScalar(key + 3),
			Active:             true,
			PublicShares:       public,
			PrivateShares:      make([]domain.Scalar, len(public)),
		},
		MatchingPool: domain.GlobalMatchingPool,
		MinFillSize:  uint256.NewInt(amountIn),
	}
}

func createTestSeed(t *testing.T, store Store) *domain.MasterViewSeed {
	seed := buildTestSeed()
	created, err := store.CreateMasterViewSeed(context.Background(), seed)
	require.NoError(t, err)
	require.True(t, created)
	return seed
}

// =============================================================================
// Test: MasterViewSeed
// =============================================================================

func testMasterViewSeed(t *testing.T, store Store) {
	ctx := context.Background()
	seed := createTestSeed(t, store)

	t.Run("duplicate registration is reported", func(t *testing.T) {
		created, err := store.CreateMasterViewSeed(ctx, seed)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("lookup by account and owner", func(t *testing.T) {
		got, err := store.GetMasterViewSeed(ctx, seed.AccountID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, seed.OwnerAddress, got.OwnerAddress)
		assert.True(t, seed.Seed.Equal(got.Seed))

		byOwner, err := store.GetMasterViewSeedByOwner(ctx, seed.OwnerAddress)
		require.NoError(t, err)
		require.NotNil(t, byOwner)
		assert.Equal(t, seed.AccountID, byOwner.AccountID)
	})

	t.Run("indices persist", func(t *testing.T) {
		seed.RecoverySeedIndex = 3
		seed.ShareSeedIndex = 3
		require.NoError(t, store.UpdateMasterViewSeedIndices(ctx, seed))

		got, err := store.LockMasterViewSeed(ctx, seed.AccountID)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), got.RecoverySeedIndex)
		assert.Equal(t, uint64(3), got.ShareSeedIndex)
	})

	t.Run("missing account", func(t *testing.T) {
		got, err := store.GetMasterViewSeed(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)

		err = store.UpdateMasterViewSeedIndices(ctx, buildTestSeed())
		assert.ErrorIs(t, err, domain.ErrMasterViewSeedNotFound)
	})
}

// =============================================================================
// Test: ExpectedStateObject
// =============================================================================

func testExpectedStateObject(t *testing.T, store Store) {
	ctx := context.Background()
	seed := createTestSeed(t, store)

	expected := &domain.ExpectedStateObject{
		RecoveryID:         domain.MustParseScalar("21888242871839275222246405745257275088548364400416034343698204186575808495616"),
		AccountID:          seed.AccountID,
		OwnerAddress:       seed.OwnerAddress,
		SlotIndex:          0,
		IdentifierSeed:     domain.NewScalar(11),
		RecoveryStreamSeed: domain.NewScalar(12),
		ShareStreamSeed:    domain.NewScalar(13),
		Nullifier:          domain.NewScalar(14),
	}
	require.NoError(t, store.InsertExpectedStateObject(ctx, expected))

	got, err := store.GetExpectedStateObject(ctx, expected.RecoveryID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, expected, got, "large field elements survive the numeric column")

	byAccount, err := store.GetExpectedStateObjectByAccount(ctx, seed.AccountID)
	require.NoError(t, err)
	require.NotNil(t, byAccount)
	assert.True(t, byAccount.RecoveryID.Equal(expected.RecoveryID))

	// a spend of the first nullifier can be routed before the object exists
	owner, err := store.GetNullifierOwner(ctx, expected.Nullifier)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, seed.AccountID, owner.AccountID)
	assert.True(t, owner.IdentifierSeed.Equal(expected.IdentifierSeed))
	assert.Equal(t, uint64(0), owner.Version)

	require.NoError(t, store.DeleteExpectedStateObject(ctx, expected.RecoveryID))
	got, err = store.GetExpectedStateObject(ctx, expected.RecoveryID)
	require.NoError(t, err)
	assert.Nil(t, got)

	owner, err = store.GetNullifierOwner(ctx, expected.Nullifier)
	require.NoError(t, err)
	assert.Nil(t, owner)
}

// =============================================================================
// Test: Balances and Intents
// =============================================================================

func testBalances(t *testing.T, store Store) {
	ctx := context.Background()
	seed := createTestSeed(t, store)
	balance := buildTestBalance(seed.AccountID, 1000, 50)

	require.NoError(t, store.CreateBalance(ctx, balance))

	got, err := store.GetBalanceByNullifier(ctx, balance.Nullifier)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, balance.PublicShares, got.PublicShares)
	decoded, err := got.Balance()
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(50), decoded.Amount)

	t.Run("update moves the nullifier", func(t *testing.T) {
		oldNullifier := got.Nullifier
		got.Version = 1
		got.Nullifier = domain.NewScalar(99999)
		got.PublicShares[domain.BalanceShareAmount] = domain.NewScalar(75)
		require.NoError(t, store.UpdateBalance(ctx, got))

		stale, err := store.GetBalanceByNullifier(ctx, oldNullifier)
		require.NoError(t, err)
		assert.Nil(t, stale)

		fresh, err := store.GetBalanceByNullifier(ctx, domain.NewScalar(99999))
		require.NoError(t, err)
		require.NotNil(t, fresh)
		assert.Equal(t, uint64(1), fresh.Version)

		owner, err := store.GetNullifierOwner(ctx, domain.NewScalar(99999))
		require.NoError(t, err)
		require.NotNil(t, owner)
		assert.Equal(t, seed.AccountID, owner.AccountID)
		assert.Equal(t, uint64(1), owner.Version)
		assert.True(t, owner.IdentifierSeed.Equal(balance.IdentifierSeed))
	})

	t.Run("generic lookup by recovery stream seed", func(t *testing.T) {
		obj, err := store.GetStateObject(ctx, balance.RecoveryStreamSeed)
		require.NoError(t, err)
		require.NotNil(t, obj)
		assert.Equal(t, domain.ObjectKindBalance, obj.Kind)

		missing, err := store.GetStateObject(ctx, domain.NewScalar(424242))
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("updating a missing balance", func(t *testing.T) {
		err := store.UpdateBalance(ctx, buildTestBalance(seed.AccountID, 5000, 1))
		assert.ErrorIs(t, err, domain.ErrStateObjectNotFound)
	})
}

func testIntents(t *testing.T, store Store) {
	ctx := context.Background()
	seed := createTestSeed(t, store)
	intent := buildTestIntent(seed.AccountID, 2000, 300)

	require.NoError(t, store.CreateIntent(ctx, intent))

	got, err := store.GetIntentByNullifier(ctx, intent.Nullifier)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.GlobalMatchingPool, got.MatchingPool)
	assert.Equal(t, uint256.NewInt(300), got.MinFillSize)

	got.Active = false
	require.NoError(t, store.UpdateIntent(ctx, got))

	obj, err := store.GetStateObject(ctx, intent.RecoveryStreamSeed)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.Equal(t, domain.ObjectKindIntent, obj.Kind)
	assert.False(t, obj.Active)

	owner, err := store.GetNullifierOwner(ctx, intent.Nullifier)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, seed.AccountID, owner.AccountID)

	missing, err := store.GetNullifierOwner(ctx, domain.NewScalar(1))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// =============================================================================
// Test: Public intents
// =============================================================================

func testPublicIntents(t *testing.T, store Store) {
	ctx := context.Background()
	seed := createTestSeed(t, store)
	hash := common.HexToHash("0xabcdef")

	pi := domain.NewPublicIntent(hash, seed.AccountID, domain.Intent{
		InputMint:  common.HexToAddress("0x01"),
		OutputMint: common.HexToAddress("0x02"),
		Owner:      seed.OwnerAddress,
		MinPrice:   domain.NewScalar(7),
		AmountIn:   uint256.NewInt(1000),
	})

	created, err := store.CreatePublicIntent(ctx, pi)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.CreatePublicIntent(ctx, pi)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := store.GetPublicIntent(ctx, hash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, seed.OwnerAddress, got.Intent.Owner)
	assert.Equal(t, uint256.NewInt(1000), got.MinFillSize)

	got.Version = 2
	got.Intent.AmountIn = uint256.NewInt(400)
	require.NoError(t, store.UpdatePublicIntent(ctx, got))

	got, err = store.GetPublicIntent(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.Version)
	assert.Equal(t, uint256.NewInt(400), got.Intent.AmountIn)

	missing, err := store.GetPublicIntent(ctx, common.HexToHash("0x01"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// =============================================================================
// Test: Guards
// =============================================================================

func testGuards(t *testing.T, store Store) {
	ctx := context.Background()
	src := domain.Source{BlockNumber: 10}

	nullifier := domain.NewScalar(777)
	ok, err := store.IsNullifierProcessed(ctx, nullifier)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.MarkNullifierProcessed(ctx, nullifier, src))
	ok, err = store.IsNullifierProcessed(ctx, nullifier)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("duplicate mark is a retryable unique violation", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Store) error {
			return tx.MarkNullifierProcessed(ctx, nullifier, src)
		})
		require.Error(t, err)
		assert.True(t, IsRetryable(err))
	})

	recoveryID := domain.NewScalar(888)
	require.NoError(t, store.MarkRecoveryIDProcessed(ctx, recoveryID, src))
	ok, err = store.IsRecoveryIDProcessed(ctx, recoveryID)
	require.NoError(t, err)
	assert.True(t, ok)

	hash := common.HexToHash("0xfeed")
	require.NoError(t, store.MarkPublicIntentCreationProcessed(ctx, hash, src))
	ok, err = store.IsPublicIntentCreationProcessed(ctx, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.MarkPublicIntentUpdateProcessed(ctx, hash, 1, src))
	ok, err = store.IsPublicIntentUpdateProcessed(ctx, hash, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.IsPublicIntentUpdateProcessed(ctx, hash, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

// =============================================================================
// Test: LastIndexedBlock
// =============================================================================

func testLastIndexedBlock(t *testing.T, store Store) {
	ctx := context.Background()
	kind := domain.EventKindNullifierSpend

	block, err := store.GetLastIndexedBlock(ctx, kind)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), block)

	require.NoError(t, store.AdvanceLastIndexedBlock(ctx, kind, 100))
	require.NoError(t, store.AdvanceLastIndexedBlock(ctx, kind, 50))

	block, err = store.GetLastIndexedBlock(ctx, kind)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), block, "cursor never moves backwards")

	require.NoError(t, store.AdvanceLastIndexedBlock(ctx, kind, 150))
	block, err = store.GetLastIndexedBlock(ctx, kind)
	require.NoError(t, err)
	assert.Equal(t, uint64(150), block)

	other, err := store.GetLastIndexedBlock(ctx, domain.EventKindRecoveryID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), other)
}

func testListenerBlock(t *testing.T, store Store) {
	ctx := context.Background()

	_, ok, err := store.GetListenerBlock(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.AdvanceListenerBlock(ctx, 0))
	block, ok, err := store.GetListenerBlock(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "block 0 is a recorded position")
	assert.Equal(t, uint64(0), block)

	require.NoError(t, store.AdvanceListenerBlock(ctx, 500))
	require.NoError(t, store.AdvanceListenerBlock(ctx, 400))
	block, _, err = store.GetListenerBlock(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), block)

	// independent of the applied cursors
	applied, err := store.GetLastIndexedBlock(ctx, domain.EventKindNullifierSpend)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), applied)
}

// =============================================================================
// Test: Transaction and UserState
// =============================================================================

func testTransactionRollback(t *testing.T, store Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Transaction(ctx, func(tx Store) error {
		require.NoError(t, tx.MarkNullifierProcessed(ctx, domain.NewScalar(31337), domain.Source{BlockNumber: 1}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ok, err := store.IsNullifierProcessed(ctx, domain.NewScalar(31337))
	require.NoError(t, err)
	assert.False(t, ok)
}

func testUserState(t *testing.T, store Store) {
	ctx := context.Background()
	seed := createTestSeed(t, store)

	require.NoError(t, store.CreateBalance(ctx, buildTestBalance(seed.AccountID, 3000, 10)))
	inactive := buildTestBalance(seed.AccountID, 3100, 20)
	inactive.Active = false
	require.NoError(t, store.CreateBalance(ctx, inactive))
	require.NoError(t, store.CreateIntent(ctx, buildTestIntent(seed.AccountID, 3200, 30)))

	state, err := store.GetUserState(ctx, seed.AccountID)
	require.NoError(t, err)
	assert.Len(t, state.Balances, 1)
	assert.Len(t, state.Intents, 1)
	assert.Empty(t, state.PublicIntents)

	empty, err := store.GetUserState(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty.Balances)
}

// RunStoreTests runs every store test against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"MasterViewSeed", testMasterViewSeed},
		{"ExpectedStateObject", testExpectedStateObject},
		{"Balances", testBalances},
		{"Intents", testIntents},
		{"PublicIntents", testPublicIntents},
		{"Guards", testGuards},
		{"LastIndexedBlock", testLastIndexedBlock},
		{"ListenerBlock", testListenerBlock},
		{"TransactionRollback", testTransactionRollback},
		{"UserState", testUserState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

package applicator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/applicator"
	"github.com/feral-file/darkpool-indexer/internal/backfill"
	"github.com/feral-file/darkpool-indexer/internal/chain"
	"github.com/feral-file/darkpool-indexer/internal/consumer"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/mocks"
	"github.com/feral-file/darkpool-indexer/internal/routing"
	"github.com/feral-file/darkpool-indexer/internal/store"
	"github.com/feral-file/darkpool-indexer/internal/streams"
)

// drain runs a consumer over queue until every message has been deleted
func drain(t *testing.T, queue *messagequeue.MemoryQueue, c consumer.Consumer) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return queue.Len() == 0 }, 10*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// TestBackfillFlow reconstructs a balance that was created and then withdrawn from
// before the account registered, going through the worker, the queue, the consumer
// and the applicator, and checks that repeated backfills and late live copies of the
// same facts leave the state unchanged
func TestBackfillFlow(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	clock := adapter.NewClock()

	st := store.NewPGStore(testDB)
	app := applicator.NewApplicator(st, nil, clock, applicator.DefaultConfig())

	acc := newAccount()
	require.NoError(t, app.Apply(ctx, acc.register()))

	slot := streams.DeriveSlot(acc.seed, 0)
	next := streams.DeriveSlot(acc.seed, 1)
	createTx := common.HexToHash("0xc1")
	withdrawTx := common.HexToHash("0xc2")

	ch := mocks.NewMockChainClient(ctrl)

	// the first two runs find the chain history, the third starts from the stored object
	ch.EXPECT().FindRecoveryIDRegistration(gomock.Any(), slot.RecoveryID(0)).Return(&chain.Event{
		Type:        chain.EventRecoveryIDRegistered,
		BlockNumber: 10,
		TxHash:      createTx,
		RecoveryID:  slot.RecoveryID(0),
	}, nil).Times(2)
	ch.EXPECT().FindNullifierSpend(gomock.Any(), slot.Nullifier(0)).Return(&chain.Event{
		Type:        chain.EventNullifierSpent,
		BlockNumber: 11,
		TxHash:      withdrawTx,
		Nullifier:   slot.Nullifier(0),
	}, nil).Times(2)
	ch.EXPECT().FindNullifierSpend(gomock.Any(), slot.Nullifier(1)).Return(nil, nil).Times(3)
	ch.EXPECT().FindRecoveryIDRegistration(gomock.Any(), next.RecoveryID(0)).Return(nil, nil).Times(3)
	ch.EXPECT().PublicIntentEventsByOwner(gomock.Any(), acc.owner).Return(nil, nil).Times(3)

	// resolved once by the backfill copy and once by the late live copy
	ch.EXPECT().RecoveryIDRegistration(gomock.Any(), slot.RecoveryID(0), createTx).Return(&chain.RecoveryIDRegistration{
		RecoveryID:  slot.RecoveryID(0),
		BlockNumber: 10,
		TxHash:      createTx,
		NewBalance:  encrypt(balanceValues(acc.owner, 100), slot.ShareStreamSeed, 0),
	}, nil).Times(2)
	ch.EXPECT().NullifierSpend(gomock.Any(), slot.Nullifier(0), withdrawTx).Return(&chain.NullifierSpend{
		Nullifier:   slot.Nullifier(0),
		BlockNumber: 11,
		TxHash:      withdrawTx,
		Kind:        chain.SpendWithdraw,
		NewShare:    encrypt([]domain.Scalar{domain.NewScalar(40)}, slot.ShareStreamSeed, 7)[0],
	}, nil).Times(2)

	queue := messagequeue.NewMemoryQueue(messagequeue.DefaultMemoryConfig(), clock)
	worker := backfill.NewWorker(st, ch, queue, backfill.Config{}, clock)
	routes, err := routing.NewRouter(st, 0)
	require.NoError(t, err)
	c := consumer.NewConsumer(queue, consumer.NewHandler(ch, app), routes, nil, consumer.Config{
		PollInterval:         10 * time.Millisecond,
		InitialRetryInterval: time.Millisecond,
	}, clock)

	result, err := worker.BackfillAccount(ctx, acc.id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Slots)
	assert.Equal(t, 2, result.Messages)

	// a second dispatch before the first is applied sends the same backfill ids
	_, err = worker.BackfillAccount(ctx, acc.id)
	require.NoError(t, err)
	assert.Equal(t, 2, queue.Len(), "repeated backfill messages are deduplicated")

	drain(t, queue, c)

	balance, err := st.GetBalanceByNullifier(ctx, slot.Nullifier(1))
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, uint64(1), balance.Version)
	decoded, err := balance.Balance()
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(40), decoded.Amount)
	assert.Equal(t, usdc, decoded.Mint)

	processed, err := st.IsNullifierProcessed(ctx, slot.Nullifier(0))
	require.NoError(t, err)
	assert.True(t, processed)

	// once applied, a new run starts from the stored version and finds nothing new
	result, err = worker.BackfillAccount(ctx, acc.id)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Slots)
	assert.Zero(t, result.Messages)
	assert.Zero(t, queue.Len())

	// live copies of the same facts arrive under their own ids and change nothing
	for _, msg := range []*messagequeue.Message{
		messagequeue.NewRegisterRecoveryID(slot.RecoveryID(0), createTx, false),
		messagequeue.NewNullifierSpend(slot.Nullifier(0), withdrawTx, false),
	} {
		require.NoError(t, queue.Send(ctx, msg, msg.DedupID(), acc.id.String()))
	}
	drain(t, queue, c)

	again, err := st.GetBalanceByNullifier(ctx, slot.Nullifier(1))
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, balance.Version, again.Version)
	assert.Equal(t, balance.ShareStreamIndex, again.ShareStreamIndex, "no second re-encryption")

	stale, err := st.GetBalanceByNullifier(ctx, slot.Nullifier(0))
	require.NoError(t, err)
	assert.Nil(t, stale)
}

// TestBackfillFlowStopsOnChainError leaves the queue empty when the chain walk fails
func TestBackfillFlowStopsOnChainError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	clock := adapter.NewClock()

	st := store.NewPGStore(testDB)
	app := applicator.NewApplicator(st, nil, clock, applicator.DefaultConfig())

	acc := newAccount()
	require.NoError(t, app.Apply(ctx, acc.register()))

	boom := errors.New("rpc unavailable")
	ch := mocks.NewMockChainClient(ctrl)
	ch.EXPECT().FindRecoveryIDRegistration(gomock.Any(), gomock.Any()).Return(nil, boom)

	queue := messagequeue.NewMemoryQueue(messagequeue.DefaultMemoryConfig(), clock)
	worker := backfill.NewWorker(st, ch, queue, backfill.Config{}, clock)

	_, err := worker.BackfillAccount(ctx, acc.id)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, queue.Len())
}

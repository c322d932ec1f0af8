package consumer_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/darkpool-indexer/internal/consumer"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/logger"
	"github.com/feral-file/darkpool-indexer/internal/messagequeue"
	"github.com/feral-file/darkpool-indexer/internal/mocks"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type testConsumerMocks struct {
	queue    *mocks.MockMessageQueue
	handler  *mocks.MockMessageHandler
	router   *mocks.MockRouter
	backfill *mocks.MockBackfillTrigger
	clock    *mocks.MockClock
	consumer consumer.Consumer

	mu      sync.Mutex
	elapsed time.Duration
	tick    time.Duration
}

func setupTest(t *testing.T, cfg consumer.Config) *testConsumerMocks {
	ctrl := gomock.NewController(t)

	tm := &testConsumerMocks{
		queue:    mocks.NewMockMessageQueue(ctrl),
		handler:  mocks.NewMockMessageHandler(ctrl),
		router:   mocks.NewMockRouter(ctrl),
		backfill: mocks.NewMockBackfillTrigger(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}

	// every Since call moves the clock forward by tick
	tm.clock.EXPECT().Now().Return(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).DoAndReturn(func(time.Time) time.Duration {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		tm.elapsed += tm.tick
		return tm.elapsed
	}).AnyTimes()

	if cfg.InitialRetryInterval == 0 {
		cfg.InitialRetryInterval = time.Millisecond
	}
	tm.consumer = consumer.NewConsumer(tm.queue, tm.handler, tm.router, tm.backfill, cfg, tm.clock)
	return tm
}

func delivery(receipt string, msg *messagequeue.Message) messagequeue.Delivery {
	return messagequeue.Delivery{MessageID: "id-" + receipt, Receipt: receipt, Message: msg}
}

func spendMsg(n uint64) *messagequeue.Message {
	return messagequeue.NewNullifierSpend(domain.NewScalar(n), common.HexToHash("0x01"), false)
}

func TestConsumer_ProcessesGroupsInOrder(t *testing.T) {
	tm := setupTest(t, consumer.Config{PoolSize: 4})
	ctx := context.Background()

	m1, m2, m3 := spendMsg(1), spendMsg(2), spendMsg(3)
	other := spendMsg(4)

	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"account-a": {delivery("r1", m1), delivery("r2", m2), delivery("r3", m3)},
		"account-b": {delivery("r4", other)},
	}, nil)

	var mu sync.Mutex
	var order []*messagequeue.Message
	tm.handler.EXPECT().Handle(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, msg *messagequeue.Message) error {
		mu.Lock()
		defer mu.Unlock()
		if msg != other {
			order = append(order, msg)
		}
		return nil
	}).Times(4)

	for _, r := range []string{"r1", "r2", "r3", "r4"} {
		tm.queue.EXPECT().Delete(ctx, r).Return(nil)
	}

	n, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []*messagequeue.Message{m1, m2, m3}, order)
}

func TestConsumer_EmptyPoll(t *testing.T) {
	tm := setupTest(t, consumer.Config{})
	ctx := context.Background()

	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{}, nil)

	n, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConsumer_DropsUndecodableMessage(t *testing.T) {
	tm := setupTest(t, consumer.Config{})
	ctx := context.Background()

	next := spendMsg(2)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"g": {
			{MessageID: "bad", Receipt: "r1", Err: errors.New("invalid character")},
			delivery("r2", next),
		},
	}, nil)

	gomock.InOrder(
		tm.queue.EXPECT().Delete(ctx, "r1").Return(nil),
		tm.handler.EXPECT().Handle(ctx, next).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r2").Return(nil),
	)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_DataErrorDeletesAndContinues(t *testing.T) {
	tm := setupTest(t, consumer.Config{})
	ctx := context.Background()

	first, second := spendMsg(1), spendMsg(2)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"g": {delivery("r1", first), delivery("r2", second)},
	}, nil)

	gomock.InOrder(
		tm.handler.EXPECT().Handle(ctx, first).Return(domain.NewDataError("resolve nullifier spend", errors.New("reverted"))),
		tm.queue.EXPECT().Delete(ctx, "r1").Return(nil),
		tm.handler.EXPECT().Handle(ctx, second).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r2").Return(nil),
	)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_ConsistencyErrorStopsGroup(t *testing.T) {
	tm := setupTest(t, consumer.Config{})
	ctx := context.Background()

	first := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"g": {delivery("r1", first), delivery("r2", spendMsg(2))},
	}, nil)

	// an untracked backfill fact is a consistency violation, not a deferral
	tm.handler.EXPECT().Handle(ctx, first).
		Return(domain.NewConsistencyError("create balance", domain.ErrUntracked)).
		Times(1)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_TransientErrorRetriedInPlace(t *testing.T) {
	tm := setupTest(t, consumer.Config{TransientRetryWindow: time.Minute})
	tm.tick = time.Second
	ctx := context.Background()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{"g": {delivery("r1", msg)}}, nil)

	gomock.InOrder(
		tm.handler.EXPECT().Handle(ctx, msg).Return(domain.NewTransientError("resolve nullifier spend", errors.New("503"))),
		tm.handler.EXPECT().Handle(ctx, msg).Return(errors.New("connection reset")),
		tm.handler.EXPECT().Handle(ctx, msg).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r1").Return(nil),
	)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_TransientErrorLeavesMessageAfterWindow(t *testing.T) {
	tm := setupTest(t, consumer.Config{TransientRetryWindow: 10 * time.Second})
	tm.tick = 4 * time.Second
	ctx := context.Background()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"g": {delivery("r1", msg), delivery("r2", spendMsg(2))},
	}, nil)

	// 4s, 8s, 12s
	tm.handler.EXPECT().Handle(ctx, msg).Return(errors.New("503")).Times(3)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_UntrackedOfNoAccountDropped(t *testing.T) {
	tm := setupTest(t, consumer.Config{DeferWindow: 10 * time.Second})
	tm.tick = 4 * time.Second
	ctx := context.Background()

	msg, next := spendMsg(1), spendMsg(2)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"nullifier:1": {delivery("r1", msg), delivery("r2", next)},
	}, nil)

	gomock.InOrder(
		tm.handler.EXPECT().Handle(ctx, msg).Return(domain.ErrUntracked).Times(3),
		tm.router.EXPECT().Message(ctx, msg).Return("", nil),
		tm.queue.EXPECT().Delete(ctx, "r1").Return(nil),
		tm.handler.EXPECT().Handle(ctx, next).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r2").Return(nil),
	)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_UntrackedReroutedToAccountGroup(t *testing.T) {
	tm := setupTest(t, consumer.Config{DeferWindow: 10 * time.Second})
	tm.tick = 4 * time.Second
	ctx := context.Background()
	account := uuid.New().String()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"nullifier:1": {delivery("r1", msg)},
	}, nil)

	gomock.InOrder(
		tm.handler.EXPECT().Handle(ctx, msg).Return(domain.ErrUntracked).Times(3),
		tm.router.EXPECT().Message(ctx, msg).Return(account, nil),
		tm.queue.EXPECT().Send(ctx, msg, "reroute:nullifier:1", account).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r1").Return(nil),
	)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_UntrackedRerouteFailureRetains(t *testing.T) {
	tm := setupTest(t, consumer.Config{DeferWindow: 10 * time.Second})
	tm.tick = 4 * time.Second
	ctx := context.Background()
	account := uuid.New().String()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"nullifier:1": {delivery("r1", msg)},
	}, nil)

	tm.handler.EXPECT().Handle(ctx, msg).Return(domain.ErrUntracked).Times(3)
	tm.router.EXPECT().Message(ctx, msg).Return(account, nil)
	tm.queue.EXPECT().Send(ctx, msg, gomock.Any(), account).Return(errors.New("queue unavailable"))

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_UntrackedInAccountGroupStartsBackfill(t *testing.T) {
	tm := setupTest(t, consumer.Config{DeferWindow: 10 * time.Second})
	tm.tick = 4 * time.Second
	ctx := context.Background()
	account := uuid.New()

	msg, next := spendMsg(1), spendMsg(2)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		account.String(): {delivery("r1", msg), delivery("r2", next)},
	}, nil)

	gomock.InOrder(
		tm.handler.EXPECT().Handle(ctx, msg).Return(domain.ErrUntracked).Times(3),
		tm.router.EXPECT().Message(ctx, msg).Return("", nil),
		tm.backfill.EXPECT().Dispatch(ctx, account).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r1").Return(nil),
		tm.handler.EXPECT().Handle(ctx, next).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r2").Return(nil),
	)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_UntrackedBackfillFailureRetains(t *testing.T) {
	tm := setupTest(t, consumer.Config{DeferWindow: 10 * time.Second})
	tm.tick = 4 * time.Second
	ctx := context.Background()
	account := uuid.New()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		account.String(): {delivery("r1", msg), delivery("r2", spendMsg(2))},
	}, nil)

	tm.handler.EXPECT().Handle(ctx, msg).Return(domain.ErrUntracked).Times(3)
	tm.router.EXPECT().Message(ctx, msg).Return(account.String(), nil)
	tm.backfill.EXPECT().Dispatch(ctx, account).Return(errors.New("temporal unavailable"))

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_UntrackedResolveFailureRetains(t *testing.T) {
	tm := setupTest(t, consumer.Config{DeferWindow: 10 * time.Second})
	tm.tick = 4 * time.Second
	ctx := context.Background()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"nullifier:1": {delivery("r1", msg)},
	}, nil)

	tm.handler.EXPECT().Handle(ctx, msg).Return(domain.ErrUntracked).Times(3)
	tm.router.EXPECT().Message(ctx, msg).Return("", errors.New("db down"))

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_UntrackedAppliedOncePredecessorLands(t *testing.T) {
	tm := setupTest(t, consumer.Config{DeferWindow: 10 * time.Second})
	tm.tick = time.Second
	ctx := context.Background()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{"g": {delivery("r1", msg)}}, nil)

	gomock.InOrder(
		tm.handler.EXPECT().Handle(ctx, msg).Return(domain.ErrUntracked),
		tm.handler.EXPECT().Handle(ctx, msg).Return(nil),
		tm.queue.EXPECT().Delete(ctx, "r1").Return(nil),
	)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_DeleteFailureStopsGroup(t *testing.T) {
	tm := setupTest(t, consumer.Config{})
	ctx := context.Background()

	msg := spendMsg(1)
	tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
		"g": {delivery("r1", msg), delivery("r2", spendMsg(2))},
	}, nil)

	tm.handler.EXPECT().Handle(ctx, msg).Return(nil)
	tm.queue.EXPECT().Delete(ctx, "r1").Return(messagequeue.ErrUnknownReceipt)

	_, err := consumer.PollOnce(ctx, tm.consumer)
	require.NoError(t, err)
}

func TestConsumer_SlowGroupDoesNotBlockOtherGroups(t *testing.T) {
	tm := setupTest(t, consumer.Config{PoolSize: 4})
	ctx := context.Background()

	slow, fast := spendMsg(1), spendMsg(2)
	release := make(chan struct{})
	fastDone := make(chan struct{})

	gomock.InOrder(
		tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
			"account-a": {delivery("r1", slow)},
		}, nil),
		// a's delivery shows up again, e.g. after its visibility timeout
		tm.queue.EXPECT().Poll(ctx).Return(map[string][]messagequeue.Delivery{
			"account-a": {delivery("r1-again", slow)},
			"account-b": {delivery("r2", fast)},
		}, nil),
	)

	tm.handler.EXPECT().Handle(ctx, slow).DoAndReturn(func(context.Context, *messagequeue.Message) error {
		<-release
		return nil
	}).Times(1)
	tm.handler.EXPECT().Handle(ctx, fast).Return(nil)
	tm.queue.EXPECT().Delete(ctx, "r2").DoAndReturn(func(context.Context, string) error {
		close(fastDone)
		return nil
	})
	tm.queue.EXPECT().Delete(ctx, "r1").Return(nil)

	n, err := consumer.StartPoll(ctx, tm.consumer)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = consumer.StartPoll(ctx, tm.consumer)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "the group still in progress is skipped")

	select {
	case <-fastDone:
	case <-time.After(5 * time.Second):
		t.Fatal("account-b waited for account-a")
	}

	close(release)
	consumer.Wait(tm.consumer)
}

// signalQueue reports every receipt deleted from the wrapped queue
type signalQueue struct {
	*messagequeue.MemoryQueue
	deleted chan string
}

func (q *signalQueue) Delete(ctx context.Context, receipt string) error {
	err := q.MemoryQueue.Delete(ctx, receipt)
	q.deleted <- receipt
	return err
}

// A spend seen before the creation it depends on lands in its own fact group.
// Once the deferral window passes it must reach the account group and apply
// after the creation instead of being lost.
func TestConsumer_DepositAheadOfCreationIsApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := mocks.NewMockMessageHandler(ctrl)
	router := mocks.NewMockRouter(ctrl)
	clock := mocks.NewMockClock(ctrl)

	var mu sync.Mutex
	var elapsed time.Duration
	clock.EXPECT().Now().Return(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).DoAndReturn(func(time.Time) time.Duration {
		mu.Lock()
		defer mu.Unlock()
		elapsed += 50 * time.Millisecond
		return elapsed
	}).AnyTimes()

	queue := &signalQueue{
		MemoryQueue: messagequeue.NewMemoryQueue(messagequeue.DefaultMemoryConfig(), clock),
		deleted:     make(chan string, 8),
	}
	c := consumer.NewConsumer(queue, handler, router, nil, consumer.Config{
		PoolSize:             2,
		DeferWindow:          100 * time.Millisecond,
		InitialRetryInterval: time.Millisecond,
	}, clock)
	ctx := context.Background()

	account := uuid.New().String()
	create := messagequeue.NewRegisterRecoveryID(domain.NewScalar(10), common.HexToHash("0x0a"), false)
	deposit := spendMsg(11)
	require.NoError(t, queue.Send(ctx, create, create.DedupID(), account))
	require.NoError(t, queue.Send(ctx, deposit, deposit.DedupID(), deposit.FactKey()))

	created, deposited := false, false
	hold := make(chan struct{})
	handler.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, msg *messagequeue.Message) error {
		if msg.FactKey() == create.FactKey() {
			// the creation is slow enough for the deposit's window to pass
			<-hold
		}

		mu.Lock()
		defer mu.Unlock()
		switch msg.FactKey() {
		case create.FactKey():
			created = true
		case deposit.FactKey():
			if !created {
				return domain.ErrUntracked
			}
			deposited = true
		}
		return nil
	}).AnyTimes()
	router.EXPECT().Message(gomock.Any(), gomock.Any()).Return(account, nil)

	_, err := consumer.StartPoll(ctx, c)
	require.NoError(t, err)

	// the deposit leaves its fact group while the creation is still running
	select {
	case <-queue.deleted:
	case <-time.After(5 * time.Second):
		t.Fatal("deposit was never settled")
	}
	assert.Equal(t, 2, queue.Len(), "creation in flight and the re-routed deposit behind it")

	close(hold)
	consumer.Wait(c)

	n, err := consumer.PollOnce(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, created)
	assert.True(t, deposited)
	assert.Zero(t, queue.Len())
}

func TestConsumer_Run_StopsOnCancel(t *testing.T) {
	tm := setupTest(t, consumer.Config{PollInterval: 5 * time.Second})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.queue.EXPECT().Poll(gomock.Any()).Return(nil, errors.New("queue unavailable"))
	tm.clock.EXPECT().After(5 * time.Second).DoAndReturn(func(time.Duration) <-chan time.Time {
		cancel()
		return make(chan time.Time)
	})

	err := tm.consumer.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

package applicator_test

import (
	"context"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/feral-file/darkpool-indexer/internal/adapter"
	"github.com/feral-file/darkpool-indexer/internal/applicator"
	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/mocks"
	"github.com/feral-file/darkpool-indexer/internal/store"
	"github.com/feral-file/darkpool-indexer/internal/streams"
)

var (
	usdc = common.HexToAddress("0xaf88d065e77c8cc2239327c5edb3a432268e5831")
	weth = common.HexToAddress("0x82af49447d8a07e3bd95bd0d56f35241523fbab1")
)

// =============================================================================
// Helpers
// =============================================================================

// account is a registered test account with its master seed
type account struct {
	id    uuid.UUID
	owner common.Address
	seed  domain.Scalar
}

func newAccount() account {
	id := uuid.New()
	return account{
		id:    id,
		owner: common.BytesToAddress(id[:]),
		seed:  streams.HashToScalar(id[:]),
	}
}

func (a account) register() applicator.RegisterMasterViewSeed {
	return applicator.RegisterMasterViewSeed{AccountID: a.id, OwnerAddress: a.owner, Seed: a.seed}
}

// encrypt produces public shares for plaintext values given the share stream position
func encrypt(values []domain.Scalar, shareStreamSeed domain.Scalar, from uint64) []domain.Scalar {
	stream := &streams.CSPRNG{Seed: shareStreamSeed, Index: from}
	public := make([]domain.Scalar, len(values))
	for i, v := range values {
		public[i] = v.Sub(stream.Next())
	}
	return public
}

func balanceValues(owner common.Address, amount uint64) []domain.Scalar {
	return domain.Balance{
		Mint:   usdc,
		Owner:  owner,
		Amount: uint256.NewInt(amount),
	}.Scalars()
}

func intentValues(owner common.Address, amountIn uint64) []domain.Scalar {
	return domain.Intent{
		InputMint:  usdc,
		OutputMint: weth,
		Owner:      owner,
		MinPrice:   domain.NewScalar(3),
		AmountIn:   uint256.NewInt(amountIn),
	}.Scalars()
}

func live(block uint64) domain.Source {
	return domain.Source{BlockNumber: block, TxHash: common.BigToHash(uint256.NewInt(block).ToBig())}
}

func backfilled(block uint64) domain.Source {
	src := live(block)
	src.Backfill = true
	return src
}

// fixedPoint returns the fixed-point representation of num/den
func fixedPoint(num, den uint64) domain.FixedPoint {
	repr := new(uint256.Int).Lsh(uint256.NewInt(num), domain.FixedPointPrecision)
	return domain.FixedPoint{Repr: repr.Div(repr, uint256.NewInt(den))}
}

// =============================================================================
// Suite
// =============================================================================

type ApplicatorTestSuite struct {
	suite.Suite

	ctx      context.Context
	ctrl     *gomock.Controller
	tx       *gorm.DB
	store    store.Store
	backfill *mocks.MockBackfillTrigger
	app      applicator.Applicator
}

func TestApplicatorSuite(t *testing.T) {
	suite.Run(t, new(ApplicatorTestSuite))
}

func (s *ApplicatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.tx = testDB.Begin()
	s.Require().NoError(s.tx.Error)
	s.store = store.NewPGStore(s.tx)
	s.backfill = mocks.NewMockBackfillTrigger(s.ctrl)
	s.app = applicator.NewApplicator(s.store, s.backfill, adapter.NewClock(), applicator.DefaultConfig())
}

func (s *ApplicatorTestSuite) TearDownTest() {
	s.tx.Rollback()
	s.ctrl.Finish()
}

// registered registers a fresh account and returns it
func (s *ApplicatorTestSuite) registered() account {
	acc := newAccount()
	s.backfill.EXPECT().Dispatch(gomock.Any(), acc.id).Return(nil)
	s.Require().NoError(s.app.Apply(s.ctx, acc.register()))
	return acc
}

// createBalance creates the balance of the account's next expected slot
func (s *ApplicatorTestSuite) createBalance(acc account, amount uint64, src domain.Source) (streams.Slot, *domain.BalanceObject) {
	expected, err := s.store.GetExpectedStateObjectByAccount(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Require().NotNil(expected)

	slot := streams.DeriveSlot(acc.seed, expected.SlotIndex)
	s.Require().NoError(s.app.Apply(s.ctx, applicator.CreateBalance{
		RecoveryID:   expected.RecoveryID,
		PublicShares: encrypt(balanceValues(acc.owner, amount), slot.ShareStreamSeed, 0),
		Source:       src,
	}))

	balance, err := s.store.GetBalanceByNullifier(s.ctx, slot.Nullifier(0))
	s.Require().NoError(err)
	s.Require().NotNil(balance)
	return slot, balance
}

func (s *ApplicatorTestSuite) createIntent(acc account, amountIn uint64) (streams.Slot, *domain.IntentObject) {
	expected, err := s.store.GetExpectedStateObjectByAccount(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Require().NotNil(expected)

	slot := streams.DeriveSlot(acc.seed, expected.SlotIndex)
	s.Require().NoError(s.app.Apply(s.ctx, applicator.CreateIntent{
		RecoveryID:   expected.RecoveryID,
		PublicShares: encrypt(intentValues(acc.owner, amountIn), slot.ShareStreamSeed, 0),
		Source:       live(10),
	}))

	intent, err := s.store.GetIntentByNullifier(s.ctx, slot.Nullifier(0))
	s.Require().NoError(err)
	s.Require().NotNil(intent)
	return slot, intent
}

func (s *ApplicatorTestSuite) balanceAt(slot streams.Slot, version uint64) domain.Balance {
	obj, err := s.store.GetBalanceByNullifier(s.ctx, slot.Nullifier(version))
	s.Require().NoError(err)
	s.Require().NotNil(obj, "no balance at version %d", version)
	s.Require().Equal(version, obj.Version)

	balance, err := obj.Balance()
	s.Require().NoError(err)
	return balance
}

func (s *ApplicatorTestSuite) cursor(kind domain.EventKind) uint64 {
	block, err := s.store.GetLastIndexedBlock(s.ctx, kind)
	s.Require().NoError(err)
	return block
}

// =============================================================================
// Test: registration and object creation
// =============================================================================

func (s *ApplicatorTestSuite) TestRegisterMasterViewSeed() {
	acc := s.registered()

	expected, err := s.store.GetExpectedStateObjectByAccount(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Require().NotNil(expected)
	s.True(expected.RecoveryID.Equal(streams.RecoveryID(streams.IdentifierSeed(acc.seed, 0), 0)))
	s.Equal(uint64(0), expected.SlotIndex)

	seed, err := s.store.GetMasterViewSeed(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Equal(uint64(1), seed.RecoverySeedIndex)
	s.Equal(uint64(1), seed.ShareSeedIndex)

	// Re-registering is a no-op and does not start another backfill
	s.Require().NoError(s.app.Apply(s.ctx, acc.register()))
	seed, err = s.store.GetMasterViewSeed(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Equal(uint64(1), seed.RecoverySeedIndex)
}

func (s *ApplicatorTestSuite) TestRegisterMasterViewSeed_OwnerTaken() {
	acc := s.registered()

	other := newAccount()
	other.owner = acc.owner
	err := s.app.Apply(s.ctx, other.register())
	s.Require().Error(err)
	s.True(domain.IsData(err))
}

func (s *ApplicatorTestSuite) TestCreateBalance() {
	acc := s.registered()
	slot, balance := s.createBalance(acc, 500, live(42))

	s.True(balance.RecoveryStreamSeed.Equal(streams.RecoveryStreamSeed(acc.seed, 0)))
	s.True(balance.Active)
	s.False(balance.AllowPublicFills)
	s.Equal(uint64(0), balance.Version)
	s.Equal(uint64(domain.BalanceShareCount), balance.ShareStreamIndex)

	decoded, err := balance.Balance()
	s.Require().NoError(err)
	s.Equal(uint256.NewInt(500), decoded.Amount)
	s.Equal(usdc, decoded.Mint)

	next, err := s.store.GetExpectedStateObjectByAccount(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Equal(uint64(1), next.SlotIndex)
	s.True(next.RecoveryID.Equal(streams.DeriveSlot(acc.seed, 1).RecoveryID(0)))

	seed, err := s.store.GetMasterViewSeed(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Equal(uint64(2), seed.RecoverySeedIndex)

	processed, err := s.store.IsRecoveryIDProcessed(s.ctx, slot.RecoveryID(0))
	s.Require().NoError(err)
	s.True(processed)
	s.GreaterOrEqual(s.cursor(domain.EventKindRecoveryID), uint64(42))
}

func (s *ApplicatorTestSuite) TestCreateBalance_Idempotent() {
	acc := s.registered()
	slot, _ := s.createBalance(acc, 500, live(42))

	// Redelivery of the same registration
	err := s.app.Apply(s.ctx, applicator.CreateBalance{
		RecoveryID:   slot.RecoveryID(0),
		PublicShares: encrypt(balanceValues(acc.owner, 999), slot.ShareStreamSeed, 0),
		Source:       live(42),
	})
	s.Require().NoError(err)

	s.Equal(uint256.NewInt(500), s.balanceAt(slot, 0).Amount)

	state, err := s.store.GetUserState(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Len(state.Balances, 1)

	next, err := s.store.GetExpectedStateObjectByAccount(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Equal(uint64(1), next.SlotIndex)
}

func (s *ApplicatorTestSuite) TestCreateBalance_UnknownRecoveryID() {
	err := s.app.Apply(s.ctx, applicator.CreateBalance{
		RecoveryID:   domain.NewScalar(123456789),
		PublicShares: make([]domain.Scalar, domain.BalanceShareCount),
		Source:       live(1),
	})
	s.ErrorIs(err, domain.ErrUntracked)
	s.False(domain.IsConsistency(err))

	err = s.app.Apply(s.ctx, applicator.CreateBalance{
		RecoveryID:   domain.NewScalar(123456789),
		PublicShares: make([]domain.Scalar, domain.BalanceShareCount),
		Source:       backfilled(1),
	})
	s.True(domain.IsConsistency(err))
}

func (s *ApplicatorTestSuite) TestCreateBalance_WrongShareCount() {
	acc := s.registered()
	expected, err := s.store.GetExpectedStateObjectByAccount(s.ctx, acc.id)
	s.Require().NoError(err)

	err = s.app.Apply(s.ctx, applicator.CreateBalance{
		RecoveryID:   expected.RecoveryID,
		PublicShares: make([]domain.Scalar, 3),
		Source:       live(1),
	})
	s.True(domain.IsData(err))
}

func (s *ApplicatorTestSuite) TestBackfillDoesNotAdvanceCursor() {
	before := s.cursor(domain.EventKindRecoveryID)
	acc := s.registered()
	s.createBalance(acc, 1, backfilled(before+1000))

	s.Equal(before, s.cursor(domain.EventKindRecoveryID))
}

// =============================================================================
// Test: balance updates
// =============================================================================

func (s *ApplicatorTestSuite) TestDepositThenWithdraw() {
	acc := s.registered()
	slot, _ := s.createBalance(acc, 100, live(10))

	// Private share for the amount is drawn at share stream index 7
	deposit := applicator.Deposit{
		Nullifier:      slot.Nullifier(0),
		NewAmountShare: encrypt([]domain.Scalar{domain.NewScalar(250)}, slot.ShareStreamSeed, 7)[0],
		Source:         live(11),
	}
	s.Require().NoError(s.app.Apply(s.ctx, deposit))
	s.Equal(uint256.NewInt(250), s.balanceAt(slot, 1).Amount)

	// Redelivery is a no-op
	s.Require().NoError(s.app.Apply(s.ctx, deposit))
	s.Equal(uint256.NewInt(250), s.balanceAt(slot, 1).Amount)

	s.Require().NoError(s.app.Apply(s.ctx, applicator.Withdraw{
		Nullifier:      slot.Nullifier(1),
		NewAmountShare: encrypt([]domain.Scalar{domain.NewScalar(40)}, slot.ShareStreamSeed, 8)[0],
		Source:         live(12),
	}))
	balance := s.balanceAt(slot, 2)
	s.Equal(uint256.NewInt(40), balance.Amount)
	s.Equal(usdc, balance.Mint, "untouched shares keep their value")

	for _, v := range []uint64{0, 1} {
		processed, err := s.store.IsNullifierProcessed(s.ctx, slot.Nullifier(v))
		s.Require().NoError(err)
		s.True(processed)
	}
	s.GreaterOrEqual(s.cursor(domain.EventKindNullifierSpend), uint64(12))
}

func (s *ApplicatorTestSuite) TestPayFees() {
	acc := s.registered()
	slot, _ := s.createBalance(acc, 100, live(10))

	s.Require().NoError(s.app.Apply(s.ctx, applicator.PayProtocolFee{
		Nullifier:           slot.Nullifier(0),
		NewProtocolFeeShare: encrypt([]domain.Scalar{domain.NewScalar(0)}, slot.ShareStreamSeed, 7)[0],
		Source:              live(11),
	}))
	s.Require().NoError(s.app.Apply(s.ctx, applicator.PayRelayerFee{
		Nullifier:          slot.Nullifier(1),
		NewRelayerFeeShare: encrypt([]domain.Scalar{domain.NewScalar(0)}, slot.ShareStreamSeed, 8)[0],
		Source:             live(12),
	}))

	balance := s.balanceAt(slot, 2)
	s.True(balance.ProtocolFeeBalance.IsZero())
	s.True(balance.RelayerFeeBalance.IsZero())
	s.Equal(uint256.NewInt(100), balance.Amount)
}

func (s *ApplicatorTestSuite) TestSettleMatchIntoBalance() {
	acc := s.registered()
	slot, _ := s.createBalance(acc, 1000, live(10))

	s.Run("private fill", func() {
		updated := encrypt([]domain.Scalar{
			domain.NewScalar(3),
			domain.NewScalar(2),
			domain.NewScalar(900),
		}, slot.ShareStreamSeed, 7)

		s.Require().NoError(s.app.Apply(s.ctx, applicator.SettleMatchIntoBalance{
			Nullifier:  slot.Nullifier(0),
			Settlement: applicator.PrivateFill{UpdatedShares: updated},
			Source:     live(11),
		}))

		balance := s.balanceAt(slot, 1)
		s.Equal(uint256.NewInt(900), balance.Amount)
		s.Equal(uint256.NewInt(3), balance.RelayerFeeBalance)
		s.Equal(uint256.NewInt(2), balance.ProtocolFeeBalance)
	})

	s.Run("public fill input side", func() {
		s.Require().NoError(s.app.Apply(s.ctx, applicator.SettleMatchIntoBalance{
			Nullifier: slot.Nullifier(1),
			Settlement: applicator.PublicFillInput{Obligation: domain.SettlementObligation{
				InputToken: usdc, OutputToken: weth,
				AmountIn: uint256.NewInt(400), AmountOut: uint256.NewInt(1),
			}},
			Source: live(12),
		}))

		s.Equal(uint256.NewInt(500), s.balanceAt(slot, 2).Amount)
	})

	s.Run("public fill output side", func() {
		s.Require().NoError(s.app.Apply(s.ctx, applicator.SettleMatchIntoBalance{
			Nullifier: slot.Nullifier(2),
			Settlement: applicator.PublicFillOutput{
				Obligation: domain.SettlementObligation{
					InputToken: weth, OutputToken: usdc,
					AmountIn: uint256.NewInt(1), AmountOut: uint256.NewInt(1000),
				},
				RelayerFeeRate:  fixedPoint(1, 100),
				ProtocolFeeRate: fixedPoint(1, 200),
			},
			Source: live(13),
		}))

		balance := s.balanceAt(slot, 3)
		relayerFee := fixedPoint(1, 100).FloorMulInt(uint256.NewInt(1000))
		protocolFee := fixedPoint(1, 200).FloorMulInt(uint256.NewInt(1000))

		wantAmount := uint256.NewInt(1500)
		wantAmount.Sub(wantAmount, relayerFee)
		wantAmount.Sub(wantAmount, protocolFee)
		s.Equal(wantAmount, balance.Amount)
		s.Equal(new(uint256.Int).Add(uint256.NewInt(3), relayerFee), balance.RelayerFeeBalance)
		s.Equal(new(uint256.Int).Add(uint256.NewInt(2), protocolFee), balance.ProtocolFeeBalance)
	})

	s.Run("public fill larger than balance", func() {
		err := s.app.Apply(s.ctx, applicator.SettleMatchIntoBalance{
			Nullifier: slot.Nullifier(3),
			Settlement: applicator.PublicFillInput{Obligation: domain.SettlementObligation{
				AmountIn: uint256.NewInt(1_000_000),
			}},
			Source: live(14),
		})
		s.True(domain.IsConsistency(err))

		processed, err := s.store.IsNullifierProcessed(s.ctx, slot.Nullifier(3))
		s.Require().NoError(err)
		s.False(processed, "failed transitions leave no guard row")
	})
}

func (s *ApplicatorTestSuite) TestSpendOfUntrackedNullifier() {
	err := s.app.Apply(s.ctx, applicator.Deposit{
		Nullifier:      domain.NewScalar(987654321),
		NewAmountShare: domain.NewScalar(1),
		Source:         live(5),
	})
	s.ErrorIs(err, domain.ErrUntracked)

	processed, err := s.store.IsNullifierProcessed(s.ctx, domain.NewScalar(987654321))
	s.Require().NoError(err)
	s.False(processed)
}

// =============================================================================
// Test: intents
// =============================================================================

func (s *ApplicatorTestSuite) TestIntentLifecycle() {
	acc := s.registered()
	slot, intent := s.createIntent(acc, 800)

	s.Equal(domain.GlobalMatchingPool, intent.MatchingPool)
	s.Equal(uint256.NewInt(800), intent.MinFillSize)
	s.False(intent.AllowExternalMatches)

	s.Require().NoError(s.app.Apply(s.ctx, applicator.SettleMatchIntoIntent{
		Nullifier: slot.Nullifier(0),
		Settlement: applicator.IntentPrivateFill{
			UpdatedAmountShare: encrypt([]domain.Scalar{domain.NewScalar(600)}, slot.ShareStreamSeed, 5)[0],
		},
		Source: live(11),
	}))

	s.Require().NoError(s.app.Apply(s.ctx, applicator.SettleMatchIntoIntent{
		Nullifier: slot.Nullifier(1),
		Settlement: applicator.IntentPublicFill{Obligation: domain.SettlementObligation{
			InputToken: usdc, OutputToken: weth,
			AmountIn: uint256.NewInt(100), AmountOut: uint256.NewInt(1),
		}},
		Source: live(12),
	}))

	updated, err := s.store.GetIntentByNullifier(s.ctx, slot.Nullifier(2))
	s.Require().NoError(err)
	s.Require().NotNil(updated)
	decoded, err := updated.Intent()
	s.Require().NoError(err)
	s.Equal(uint256.NewInt(500), decoded.AmountIn)
	s.Equal(weth, decoded.OutputMint)

	s.Require().NoError(s.app.Apply(s.ctx, applicator.CancelOrder{Nullifier: slot.Nullifier(2), Source: live(13)}))

	state, err := s.store.GetUserState(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Empty(state.Intents, "cancelled intents are not active")

	obj, err := s.store.GetStateObject(s.ctx, slot.RecoveryStreamSeed)
	s.Require().NoError(err)
	s.Require().NotNil(obj)
	s.False(obj.Active)
}

func (s *ApplicatorTestSuite) TestObjectsClaimSequentialSlots() {
	acc := s.registered()
	balanceSlot, _ := s.createBalance(acc, 1, live(10))
	intentSlot, _ := s.createIntent(acc, 5)

	s.Equal(uint64(0), balanceSlot.Index)
	s.Equal(uint64(1), intentSlot.Index)

	seed, err := s.store.GetMasterViewSeed(s.ctx, acc.id)
	s.Require().NoError(err)
	s.Equal(uint64(3), seed.RecoverySeedIndex)
	s.Equal(uint64(3), seed.ShareSeedIndex)
}

// =============================================================================
// Test: public intents
// =============================================================================

func (s *ApplicatorTestSuite) TestPublicIntentLifecycle() {
	acc := s.registered()
	hash := common.BytesToHash(acc.id[:])

	intent := domain.Intent{
		InputMint:  usdc,
		OutputMint: weth,
		Owner:      acc.owner,
		MinPrice:   domain.NewScalar(7),
		AmountIn:   uint256.NewInt(1000),
	}
	create := applicator.CreatePublicIntent{
		IntentHash: hash,
		Intent:     intent,
		AmountIn:   uint256.NewInt(100),
		Source:     live(20),
	}
	s.Require().NoError(s.app.Apply(s.ctx, create))
	s.Require().NoError(s.app.Apply(s.ctx, create))

	pi, err := s.store.GetPublicIntent(s.ctx, hash)
	s.Require().NoError(err)
	s.Require().NotNil(pi)
	s.Equal(acc.id, pi.AccountID)
	s.Equal(uint256.NewInt(900), pi.Intent.AmountIn)
	s.Equal(uint256.NewInt(900), pi.MinFillSize)

	fill := applicator.SettleMatchIntoPublicIntent{IntentHash: hash, Version: 1, AmountIn: uint256.NewInt(300), Source: live(21)}
	s.Require().NoError(s.app.Apply(s.ctx, fill))
	s.Require().NoError(s.app.Apply(s.ctx, fill))

	pi, err = s.store.GetPublicIntent(s.ctx, hash)
	s.Require().NoError(err)
	s.Equal(uint64(1), pi.Version)
	s.Equal(uint256.NewInt(600), pi.Intent.AmountIn, "a redelivered fill applies once")

	s.Require().NoError(s.app.Apply(s.ctx, applicator.CancelPublicIntent{IntentHash: hash, Version: 2, Source: live(22)}))

	pi, err = s.store.GetPublicIntent(s.ctx, hash)
	s.Require().NoError(err)
	s.False(pi.Active)
	s.Equal(uint64(2), pi.Version)
	s.GreaterOrEqual(s.cursor(domain.EventKindPublicIntentUpdate), uint64(22))
	s.GreaterOrEqual(s.cursor(domain.EventKindPublicIntentCreation), uint64(20))
}

func (s *ApplicatorTestSuite) TestPublicIntentLateFillKeepsNewerVersion() {
	acc := s.registered()
	hash := common.BytesToHash(acc.owner[:])

	s.Require().NoError(s.app.Apply(s.ctx, applicator.CreatePublicIntent{
		IntentHash: hash,
		Intent:     domain.Intent{InputMint: usdc, OutputMint: weth, Owner: acc.owner, AmountIn: uint256.NewInt(1000)},
		AmountIn:   uint256.NewInt(0),
		Source:     live(30),
	}))

	// version 3 is applied before the fills of versions 1 and 2 arrive
	s.Require().NoError(s.app.Apply(s.ctx, applicator.SettleMatchIntoPublicIntent{
		IntentHash: hash, Version: 3, AmountIn: uint256.NewInt(100), Source: live(33),
	}))
	s.Require().NoError(s.app.Apply(s.ctx, applicator.SettleMatchIntoPublicIntent{
		IntentHash: hash, Version: 1, AmountIn: uint256.NewInt(200), Source: live(31),
	}))
	s.Require().NoError(s.app.Apply(s.ctx, applicator.CancelPublicIntent{
		IntentHash: hash, Version: 2, Source: live(32),
	}))

	pi, err := s.store.GetPublicIntent(s.ctx, hash)
	s.Require().NoError(err)
	s.Equal(uint64(3), pi.Version, "a late update never moves the version back")
	s.Equal(uint256.NewInt(700), pi.Intent.AmountIn, "every fill is applied once")
	s.False(pi.Active)
}

func (s *ApplicatorTestSuite) TestPublicIntentOfUnknownOwner() {
	err := s.app.Apply(s.ctx, applicator.CreatePublicIntent{
		IntentHash: common.HexToHash("0x1234"),
		Intent:     domain.Intent{Owner: common.HexToAddress("0xdead"), AmountIn: uint256.NewInt(10)},
		AmountIn:   uint256.NewInt(1),
		Source:     live(1),
	})
	s.ErrorIs(err, domain.ErrUntracked)

	err = s.app.Apply(s.ctx, applicator.SettleMatchIntoPublicIntent{
		IntentHash: common.HexToHash("0x1234"),
		Version:    1,
		AmountIn:   uint256.NewInt(1),
		Source:     live(1),
	})
	s.ErrorIs(err, domain.ErrUntracked)
}

// =============================================================================
// Concurrency: deliveries racing on the shared database
// =============================================================================

// TestConcurrentRedelivery applies the same deposit from several goroutines,
// each in its own serializable transaction, and expects exactly one mutation
func TestConcurrentRedelivery(t *testing.T) {
	ctx := context.Background()
	st := store.NewPGStore(testDB)
	app := applicator.NewApplicator(st, nil, adapter.NewClock(), applicator.DefaultConfig())

	acc := newAccount()
	require.NoError(t, app.Apply(ctx, acc.register()))

	slot := streams.DeriveSlot(acc.seed, 0)
	require.NoError(t, app.Apply(ctx, applicator.CreateBalance{
		RecoveryID:   slot.RecoveryID(0),
		PublicShares: encrypt(balanceValues(acc.owner, 10), slot.ShareStreamSeed, 0),
	}))

	deposit := applicator.Deposit{
		Nullifier:      slot.Nullifier(0),
		NewAmountShare: encrypt([]domain.Scalar{domain.NewScalar(20)}, slot.ShareStreamSeed, 7)[0],
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = app.Apply(ctx, deposit)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}

	balance, err := st.GetBalanceByNullifier(ctx, slot.Nullifier(1))
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, uint64(1), balance.Version)
	assert.Equal(t, uint64(domain.BalanceShareCount+1), balance.ShareStreamIndex, "exactly one re-encryption")

	decoded, err := balance.Balance()
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(20), decoded.Amount)
}

// TestOrderingWithinGroup checks that a create followed by a deposit leaves the
// deposited amount regardless of how other accounts interleave
func TestOrderingWithinGroup(t *testing.T) {
	ctx := context.Background()
	st := store.NewPGStore(testDB)
	app := applicator.NewApplicator(st, nil, adapter.NewClock(), applicator.DefaultConfig())

	const accounts = 4
	var wg sync.WaitGroup
	slots := make([]streams.Slot, accounts)
	errs := make([]error, accounts)
	for i := 0; i < accounts; i++ {
		acc := newAccount()
		require.NoError(t, app.Apply(ctx, acc.register()))
		slots[i] = streams.DeriveSlot(acc.seed, 0)

		wg.Add(1)
		go func(i int, acc account) {
			defer wg.Done()
			slot := slots[i]
			if err := app.Apply(ctx, applicator.CreateBalance{
				RecoveryID:   slot.RecoveryID(0),
				PublicShares: encrypt(balanceValues(acc.owner, 1), slot.ShareStreamSeed, 0),
			}); err != nil {
				errs[i] = err
				return
			}
			errs[i] = app.Apply(ctx, applicator.Deposit{
				Nullifier:      slot.Nullifier(0),
				NewAmountShare: encrypt([]domain.Scalar{domain.NewScalar(77)}, slot.ShareStreamSeed, 7)[0],
			})
		}(i, acc)
	}
	wg.Wait()

	for i := range slots {
		require.NoError(t, errs[i])
		balance, err := st.GetBalanceByNullifier(ctx, slots[i].Nullifier(1))
		require.NoError(t, err)
		require.NotNil(t, balance)
		decoded, err := balance.Balance()
		require.NoError(t, err)
		assert.Equal(t, uint256.NewInt(77), decoded.Amount)
	}
}

package chain

import (
	_ "embed"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

//go:embed darkpool.abi.json
var darkpoolABIJSON string

var darkpoolABI = mustParseABI(darkpoolABIJSON)

// Event topics
var (
	topicRecoveryIDRegistered  = crypto.Keccak256Hash([]byte("RecoveryIdRegistered(uint256)"))
	topicNullifierSpent        = crypto.Keccak256Hash([]byte("NullifierSpent(uint256)"))
	topicPublicIntentCreated   = crypto.Keccak256Hash([]byte("PublicIntentCreated(bytes32,address)"))
	topicPublicIntentUpdated   = crypto.Keccak256Hash([]byte("PublicIntentUpdated(bytes32,address,uint256)"))
	topicPublicIntentCancelled = crypto.Keccak256Hash([]byte("PublicIntentCancelled(bytes32,address,uint256)"))

	allTopics          = []common.Hash{topicRecoveryIDRegistered, topicNullifierSpent, topicPublicIntentCreated, topicPublicIntentUpdated, topicPublicIntentCancelled}
	publicIntentTopics = []common.Hash{topicPublicIntentCreated, topicPublicIntentUpdated, topicPublicIntentCancelled}
)

// Darkpool method names
const (
	methodDepositNewBalance  = "depositNewBalance"
	methodDeposit            = "deposit"
	methodWithdraw           = "withdraw"
	methodPayProtocolFee     = "payProtocolFee"
	methodPayRelayerFee      = "payRelayerFee"
	methodCancelOrder        = "cancelOrder"
	methodSettleMatch        = "settleMatch"
	methodSettlePublicIntent = "settlePublicIntent"
	methodCancelPublicIntent = "cancelPublicIntent"
)

const (
	fillKindPrivate uint8 = 0
	fillKindPublic  uint8 = 1
)

// errNotInCalldata is returned when a decoded call does not reference the fact being resolved
var errNotInCalldata = errors.New("fact not found in transaction calldata")

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid darkpool ABI: %v", err))
	}
	return parsed
}

type obligationTuple struct {
	InputToken  common.Address
	OutputToken common.Address
	AmountIn    *big.Int
	AmountOut   *big.Int
}

type partyBundle struct {
	FillKind               uint8
	IntentNullifier        *big.Int
	IntentRecoveryId       *big.Int //nolint:revive
	IntentShares           []*big.Int
	InputBalanceNullifier  *big.Int
	InputBalanceShares     []*big.Int
	OutputBalanceNullifier *big.Int
	OutputBalanceShares    []*big.Int
	Obligation             obligationTuple
	RelayerFeeRate         *big.Int
	ProtocolFeeRate        *big.Int
}

type intentTuple struct {
	InputMint  common.Address
	OutputMint common.Address
	Owner      common.Address
	MinPrice   *big.Int
	AmountIn   *big.Int
}

// decodedCall is a darkpool call with its unpacked arguments
type decodedCall struct {
	method string
	args   []interface{}
}

func decodeCall(data []byte) (*decodedCall, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("calldata too short: %d bytes", len(data))
	}

	method, err := darkpoolABI.MethodById(data[:4])
	if err != nil {
		return nil, fmt.Errorf("unknown darkpool method: %w", err)
	}

	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method.Name, err)
	}

	return &decodedCall{method: method.Name, args: args}, nil
}

// parties returns the party bundles of a settlement call
func (c *decodedCall) parties() []partyBundle {
	switch c.method {
	case methodSettleMatch:
		return []partyBundle{
			*abi.ConvertType(c.args[0], new(partyBundle)).(*partyBundle),
			*abi.ConvertType(c.args[1], new(partyBundle)).(*partyBundle),
		}
	case methodSettlePublicIntent:
		return []partyBundle{*abi.ConvertType(c.args[3], new(partyBundle)).(*partyBundle)}
	}
	return nil
}

// recoveryIDRegistration locates a recovery ID in the call and reports which object it creates
func (c *decodedCall) recoveryIDRegistration(recoveryID domain.Scalar) (*RecoveryIDRegistration, error) {
	reg := &RecoveryIDRegistration{RecoveryID: recoveryID}
	want := recoveryID.BigInt()

	switch c.method {
	case methodDepositNewBalance:
		if c.args[0].(*big.Int).Cmp(want) != 0 {
			return nil, errNotInCalldata
		}

		raw := c.args[1].([7]*big.Int)
		shares, err := scalars(raw[:])
		if err != nil {
			return nil, err
		}
		reg.NewBalance = shares
		return reg, nil

	case methodDeposit, methodWithdraw, methodPayProtocolFee, methodPayRelayerFee:
		if c.args[1].(*big.Int).Cmp(want) != 0 {
			return nil, errNotInCalldata
		}
		return reg, nil

	case methodSettleMatch, methodSettlePublicIntent:
		for _, party := range c.parties() {
			if party.IntentRecoveryId == nil || party.IntentRecoveryId.Cmp(want) != 0 {
				continue
			}

			// a zero intent nullifier means the settlement created the intent
			if party.IntentNullifier == nil || party.IntentNullifier.Sign() == 0 {
				shares, err := scalars(party.IntentShares)
				if err != nil {
					return nil, err
				}
				reg.NewIntent = shares
			}
			return reg, nil
		}

		// balances re-registered by a settlement are not listed in the bundle
		return reg, nil
	}

	return nil, errNotInCalldata
}

// nullifierSpend locates a nullifier in the call and decodes the operation that spent it
func (c *decodedCall) nullifierSpend(nullifier domain.Scalar) (*NullifierSpend, error) {
	spend := &NullifierSpend{Nullifier: nullifier}
	want := nullifier.BigInt()

	switch c.method {
	case methodDeposit, methodWithdraw, methodPayProtocolFee, methodPayRelayerFee:
		if c.args[0].(*big.Int).Cmp(want) != 0 {
			return nil, errNotInCalldata
		}

		share, err := domain.CanonicalScalar(c.args[2].(*big.Int))
		if err != nil {
			return nil, err
		}
		spend.NewShare = share
		spend.Kind = map[string]SpendKind{
			methodDeposit:        SpendDeposit,
			methodWithdraw:       SpendWithdraw,
			methodPayProtocolFee: SpendPayProtocolFee,
			methodPayRelayerFee:  SpendPayRelayerFee,
		}[c.method]
		return spend, nil

	case methodCancelOrder:
		if c.args[0].(*big.Int).Cmp(want) != 0 {
			return nil, errNotInCalldata
		}
		spend.Kind = SpendCancelOrder
		return spend, nil

	case methodSettleMatch, methodSettlePublicIntent:
		for _, party := range c.parties() {
			kind, shares, ok := party.spentBy(want)
			if !ok {
				continue
			}

			fill, err := party.fill(shares)
			if err != nil {
				return nil, err
			}
			spend.Kind = kind
			spend.Fill = fill
			return spend, nil
		}
	}

	return nil, errNotInCalldata
}

// publicIntentFill returns the intent and fill amount of a public intent settlement
func (c *decodedCall) publicIntentFill(hash common.Hash) (*domain.Intent, *uint256.Int, error) {
	if c.method != methodSettlePublicIntent {
		return nil, nil, errNotInCalldata
	}
	if common.Hash(c.args[0].([32]byte)) != hash {
		return nil, nil, errNotInCalldata
	}

	raw := *abi.ConvertType(c.args[1], new(intentTuple)).(*intentTuple)
	minPrice, err := domain.CanonicalScalar(raw.MinPrice)
	if err != nil {
		return nil, nil, err
	}
	amountIn, err := amount(raw.AmountIn)
	if err != nil {
		return nil, nil, err
	}
	fill, err := amount(c.args[2].(*big.Int))
	if err != nil {
		return nil, nil, err
	}

	return &domain.Intent{
		InputMint:  raw.InputMint,
		OutputMint: raw.OutputMint,
		Owner:      raw.Owner,
		MinPrice:   minPrice,
		AmountIn:   amountIn,
	}, fill, nil
}

// spentBy reports which of the party's objects carries the nullifier
func (p partyBundle) spentBy(nullifier *big.Int) (SpendKind, []*big.Int, bool) {
	switch {
	case nonZeroEqual(p.IntentNullifier, nullifier):
		return SpendIntentFill, p.IntentShares, true
	case nonZeroEqual(p.InputBalanceNullifier, nullifier):
		return SpendInputBalanceFill, p.InputBalanceShares, true
	case nonZeroEqual(p.OutputBalanceNullifier, nullifier):
		return SpendOutputBalanceFill, p.OutputBalanceShares, true
	}
	return "", nil, false
}

func (p partyBundle) fill(shares []*big.Int) (*Fill, error) {
	if p.FillKind != fillKindPrivate && p.FillKind != fillKindPublic {
		return nil, fmt.Errorf("unknown fill kind %d", p.FillKind)
	}

	amountIn, err := amount(p.Obligation.AmountIn)
	if err != nil {
		return nil, err
	}
	amountOut, err := amount(p.Obligation.AmountOut)
	if err != nil {
		return nil, err
	}
	relayerFeeRate, err := amount(p.RelayerFeeRate)
	if err != nil {
		return nil, err
	}
	protocolFeeRate, err := amount(p.ProtocolFeeRate)
	if err != nil {
		return nil, err
	}

	fill := &Fill{
		Public: p.FillKind == fillKindPublic,
		Obligation: domain.SettlementObligation{
			InputToken:  p.Obligation.InputToken,
			OutputToken: p.Obligation.OutputToken,
			AmountIn:    amountIn,
			AmountOut:   amountOut,
		},
		RelayerFeeRate:  domain.FixedPoint{Repr: relayerFeeRate},
		ProtocolFeeRate: domain.FixedPoint{Repr: protocolFeeRate},
	}
	if !fill.Public {
		fill.Shares, err = scalars(shares)
		if err != nil {
			return nil, err
		}
	}

	return fill, nil
}

// parseLog converts a darkpool log into an Event
func parseLog(l types.Log) (*Event, error) {
	if len(l.Topics) == 0 {
		return nil, fmt.Errorf("log without topics")
	}

	ev := &Event{
		BlockNumber: l.BlockNumber,
		TxHash:      l.TxHash,
		LogIndex:    l.Index,
	}

	var err error
	switch l.Topics[0] {
	case topicRecoveryIDRegistered:
		if err = requireTopics(l, 2); err != nil {
			return nil, err
		}
		ev.Type = EventRecoveryIDRegistered
		ev.RecoveryID, err = domain.CanonicalScalar(l.Topics[1].Big())

	case topicNullifierSpent:
		if err = requireTopics(l, 2); err != nil {
			return nil, err
		}
		ev.Type = EventNullifierSpent
		ev.Nullifier, err = domain.CanonicalScalar(l.Topics[1].Big())

	case topicPublicIntentCreated:
		if err = requireTopics(l, 3); err != nil {
			return nil, err
		}
		ev.Type = EventPublicIntentCreated
		ev.IntentHash = l.Topics[1]
		ev.Owner = common.BytesToAddress(l.Topics[2].Bytes())

	case topicPublicIntentUpdated, topicPublicIntentCancelled:
		if err = requireTopics(l, 3); err != nil {
			return nil, err
		}
		ev.Type = EventPublicIntentUpdated
		if l.Topics[0] == topicPublicIntentCancelled {
			ev.Type = EventPublicIntentCancelled
		}
		ev.IntentHash = l.Topics[1]
		ev.Owner = common.BytesToAddress(l.Topics[2].Bytes())
		ev.Version, err = unpackVersion(string(ev.Type), l.Data)

	default:
		return nil, fmt.Errorf("unknown event topic %s", l.Topics[0].Hex())
	}
	if err != nil {
		return nil, err
	}

	return ev, nil
}

func unpackVersion(event string, data []byte) (uint64, error) {
	out, err := darkpoolABI.Events[event].Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return 0, fmt.Errorf("failed to unpack %s: %w", event, err)
	}

	v := out[0].(*big.Int)
	if !v.IsUint64() {
		return 0, fmt.Errorf("version %s overflows uint64", v)
	}
	return v.Uint64(), nil
}

func requireTopics(l types.Log, n int) error {
	if len(l.Topics) != n {
		return fmt.Errorf("log %s:%d has %d topics, want %d", l.TxHash.Hex(), l.Index, len(l.Topics), n)
	}
	return nil
}

func scalars(values []*big.Int) ([]domain.Scalar, error) {
	out := make([]domain.Scalar, len(values))
	for i, v := range values {
		s, err := domain.CanonicalScalar(v)
		if err != nil {
			return nil, fmt.Errorf("share %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

func amount(v *big.Int) (*uint256.Int, error) {
	if v == nil {
		return new(uint256.Int), nil
	}
	out, overflow := uint256.FromBig(v)
	if overflow || v.Sign() < 0 {
		return nil, fmt.Errorf("amount %s out of range", v)
	}
	return out, nil
}

func nonZeroEqual(a, b *big.Int) bool {
	return a != nil && a.Sign() != 0 && a.Cmp(b) == 0
}

func scalarTopic(s domain.Scalar) common.Hash {
	return common.Hash(s.Bytes32())
}

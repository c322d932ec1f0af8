package domain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Balance share layout
const (
	BalanceShareMint = iota
	BalanceShareOwner
	BalanceShareRelayerFeeRecipient
	BalanceShareOneTimeAuthority
	BalanceShareRelayerFeeBalance
	BalanceShareProtocolFeeBalance
	BalanceShareAmount

	BalanceShareCount
)

// Intent share layout
const (
	IntentShareInputMint = iota
	IntentShareOutputMint
	IntentShareOwner
	IntentShareMinPrice
	IntentShareAmountIn

	IntentShareCount
)

// Balance is a decrypted balance
type Balance struct {
	Mint                common.Address `json:"mint"`
	Owner               common.Address `json:"owner"`
	RelayerFeeRecipient common.Address `json:"relayer_fee_recipient"`
	OneTimeAuthority    common.Address `json:"one_time_authority"`
	RelayerFeeBalance   *uint256.Int   `json:"relayer_fee_balance"`
	ProtocolFeeBalance  *uint256.Int   `json:"protocol_fee_balance"`
	Amount              *uint256.Int   `json:"amount"`
}

// DecodeBalance decodes the plaintext values of a balance
func DecodeBalance(values []Scalar) (Balance, error) {
	if len(values) != BalanceShareCount {
		return Balance{}, fmt.Errorf("balance has %d values, want %d", len(values), BalanceShareCount)
	}

	return Balance{
		Mint:                values[BalanceShareMint].Address(),
		Owner:               values[BalanceShareOwner].Address(),
		RelayerFeeRecipient: values[BalanceShareRelayerFeeRecipient].Address(),
		OneTimeAuthority:    values[BalanceShareOneTimeAuthority].Address(),
		RelayerFeeBalance:   values[BalanceShareRelayerFeeBalance].Uint256(),
		ProtocolFeeBalance:  values[BalanceShareProtocolFeeBalance].Uint256(),
		Amount:              values[BalanceShareAmount].Uint256(),
	}, nil
}

// Scalars encodes the balance in share layout order
func (b Balance) Scalars() []Scalar {
	return []Scalar{
		ScalarFromAddress(b.Mint),
		ScalarFromAddress(b.Owner),
		ScalarFromAddress(b.RelayerFeeRecipient),
		ScalarFromAddress(b.OneTimeAuthority),
		ScalarFromUint256(orZero(b.RelayerFeeBalance)),
		ScalarFromUint256(orZero(b.ProtocolFeeBalance)),
		ScalarFromUint256(orZero(b.Amount)),
	}
}

// Intent is a decrypted intent.
// MinPrice is a fixed-point value in its field representation.
type Intent struct {
	InputMint  common.Address `json:"input_mint"`
	OutputMint common.Address `json:"output_mint"`
	Owner      common.Address `json:"owner"`
	MinPrice   Scalar         `json:"min_price"`
	AmountIn   *uint256.Int   `json:"amount_in"`
}

// DecodeIntent decodes the plaintext values of an intent
func DecodeIntent(values []Scalar) (Intent, error) {
	if len(values) != IntentShareCount {
		return Intent{}, fmt.Errorf("intent has %d values, want %d", len(values), IntentShareCount)
	}

	return Intent{
		InputMint:  values[IntentShareInputMint].Address(),
		OutputMint: values[IntentShareOutputMint].Address(),
		Owner:      values[IntentShareOwner].Address(),
		MinPrice:   values[IntentShareMinPrice],
		AmountIn:   values[IntentShareAmountIn].Uint256(),
	}, nil
}

// Scalars encodes the intent in share layout order
func (i Intent) Scalars() []Scalar {
	return []Scalar{
		ScalarFromAddress(i.InputMint),
		ScalarFromAddress(i.OutputMint),
		ScalarFromAddress(i.Owner),
		i.MinPrice,
		ScalarFromUint256(orZero(i.AmountIn)),
	}
}

func orZero(v *uint256.Int) *uint256.Int {
	if v == nil {
		return new(uint256.Int)
	}
	return v
}

package domain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// FixedPointPrecision is the number of fractional bits in a fixed-point value
const FixedPointPrecision = 63

// FixedPoint is a non-negative fixed-point number stored as floor(v * 2^63)
type FixedPoint struct {
	Repr *uint256.Int
}

// FloorMulInt returns floor(f * x). The intermediate product is 512 bits wide.
func (f FixedPoint) FloorMulInt(x *uint256.Int) *uint256.Int {
	if f.Repr == nil || x == nil {
		return new(uint256.Int)
	}

	divisor := new(uint256.Int).Lsh(uint256.NewInt(1), FixedPointPrecision)
	res, _ := new(uint256.Int).MulDivOverflow(f.Repr, x, divisor)
	return res
}

// SettlementObligation is what one party of a match sends and receives
type SettlementObligation struct {
	InputToken  common.Address `json:"input_token"`
	OutputToken common.Address `json:"output_token"`
	AmountIn    *uint256.Int   `json:"amount_in"`
	AmountOut   *uint256.Int   `json:"amount_out"`
}

// FeeTake is the fees charged on the receive side of a match
type FeeTake struct {
	RelayerFee  *uint256.Int `json:"relayer_fee"`
	ProtocolFee *uint256.Int `json:"protocol_fee"`
}

// Total returns the sum of both fees
func (f FeeTake) Total() *uint256.Int {
	return new(uint256.Int).Add(orZero(f.RelayerFee), orZero(f.ProtocolFee))
}

// ComputeFeeTake charges both fee rates on the amount received
func ComputeFeeTake(receive *uint256.Int, relayerFeeRate, protocolFeeRate FixedPoint) FeeTake {
	return FeeTake{
		RelayerFee:  relayerFeeRate.FloorMulInt(receive),
		ProtocolFee: protocolFeeRate.FloorMulInt(receive),
	}
}

package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Scalar is an element of the BN254 scalar field.
// The zero value is the field element 0.
type Scalar struct {
	e fr.Element
}

// NewScalar returns the field element for v
func NewScalar(v uint64) Scalar {
	var s Scalar
	s.e.SetUint64(v)
	return s
}

// ScalarFromBig reduces v modulo the field order
func ScalarFromBig(v *big.Int) Scalar {
	var s Scalar
	s.e.SetBigInt(v)
	return s
}

// ScalarFromBytes interprets b as a big-endian integer reduced modulo the field order
func ScalarFromBytes(b []byte) Scalar {
	var s Scalar
	s.e.SetBytes(b)
	return s
}

// ScalarFromUint256 reduces v modulo the field order
func ScalarFromUint256(v *uint256.Int) Scalar {
	b := v.Bytes32()
	return ScalarFromBytes(b[:])
}

// ScalarFromAddress embeds an address in the low 20 bytes of a field element
func ScalarFromAddress(addr common.Address) Scalar {
	return ScalarFromBytes(addr.Bytes())
}

// ParseScalar parses a decimal or 0x-prefixed hex string.
// Values outside [0, r) are rejected rather than reduced.
func ParseScalar(s string) (Scalar, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Scalar{}, fmt.Errorf("empty scalar")
	}

	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Scalar{}, fmt.Errorf("invalid scalar %q", s)
	}

	return CanonicalScalar(v)
}

// CanonicalScalar converts v without reduction, rejecting values outside [0, r)
func CanonicalScalar(v *big.Int) (Scalar, error) {
	if v == nil || v.Sign() < 0 || v.Cmp(fr.Modulus()) >= 0 {
		return Scalar{}, fmt.Errorf("scalar %v out of field range", v)
	}
	return ScalarFromBig(v), nil
}

// MustParseScalar is ParseScalar for constants and tests
func MustParseScalar(s string) Scalar {
	v, err := ParseScalar(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Add returns s + o
func (s Scalar) Add(o Scalar) Scalar {
	var r Scalar
	r.e.Add(&s.e, &o.e)
	return r
}

// Sub returns s - o
func (s Scalar) Sub(o Scalar) Scalar {
	var r Scalar
	r.e.Sub(&s.e, &o.e)
	return r
}

// Equal reports whether both scalars are the same field element
func (s Scalar) Equal(o Scalar) bool {
	return s.e.Equal(&o.e)
}

// IsZero reports whether s is the field element 0
func (s Scalar) IsZero() bool {
	return s.e.IsZero()
}

// BigInt returns the canonical integer representative of s
func (s Scalar) BigInt() *big.Int {
	return s.e.BigInt(new(big.Int))
}

// Bytes32 returns the canonical big-endian encoding of s
func (s Scalar) Bytes32() [32]byte {
	return s.e.Bytes()
}

// Uint256 returns the canonical integer representative of s
func (s Scalar) Uint256() *uint256.Int {
	b := s.Bytes32()
	return new(uint256.Int).SetBytes32(b[:])
}

// Address returns the low 20 bytes of s as an address
func (s Scalar) Address() common.Address {
	b := s.Bytes32()
	return common.BytesToAddress(b[12:])
}

// String returns the decimal representation of s
func (s Scalar) String() string {
	return s.BigInt().String()
}

// Hex returns the 0x-prefixed 32-byte hex representation of s
func (s Scalar) Hex() string {
	b := s.Bytes32()
	return hexutil.Encode(b[:])
}

// MarshalJSON encodes s as a decimal string
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a decimal or 0x-prefixed hex string
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("scalar must be a string: %w", err)
	}

	v, err := ParseScalar(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Value stores s as a decimal string so numeric(78,0) columns hold it without loss
func (s Scalar) Value() (driver.Value, error) {
	return s.String(), nil
}

// Scan reads a numeric column
func (s *Scalar) Scan(src any) error {
	var str string
	switch v := src.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	case int64:
		if v < 0 {
			return fmt.Errorf("negative scalar %d", v)
		}
		*s = NewScalar(uint64(v))
		return nil
	case nil:
		*s = Scalar{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Scalar", src)
	}

	v, err := ParseScalar(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

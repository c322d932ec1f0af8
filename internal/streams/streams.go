// Package streams derives the per-object cryptographic material of an account
// from its master view seed. Every function here is pure.
package streams

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/feral-file/darkpool-indexer/internal/domain"
)

// Domain separation messages for the per-account seed streams
const (
	IdentifierSeedMessage = "identifier-seed-csprng"
	RecoverySeedMessage   = "recovery-seed-csprng"
	EncryptionSeedMessage = "encryption-seed-csprng"
)

// HashToScalar hashes msg into the field.
// Two chained keccak256 rounds give 64 bytes of entropy, which are then
// reduced modulo the field order so the result is close to uniform.
func HashToScalar(msg []byte) domain.Scalar {
	first := crypto.Keccak256(msg)
	second := crypto.Keccak256(first)

	extended := make([]byte, 0, len(first)+len(second))
	extended = append(extended, first...)
	extended = append(extended, second...)

	return domain.ScalarFromBytes(extended)
}

// Hash is the field-native hash over a sequence of field elements
func Hash(inputs ...domain.Scalar) domain.Scalar {
	h := mimc.NewMiMC()
	for _, in := range inputs {
		b := in.Bytes32()
		// Canonical encodings are always below the modulus, so Write cannot fail
		_, _ = h.Write(b[:])
	}
	return domain.ScalarFromBytes(h.Sum(nil))
}

// CSPRNG is a seekable stream of field elements: the i-th output is Hash(seed, i)
type CSPRNG struct {
	Seed  domain.Scalar
	Index uint64
}

// NewCSPRNG returns a stream positioned at its first element
func NewCSPRNG(seed domain.Scalar) *CSPRNG {
	return &CSPRNG{Seed: seed}
}

// Nth returns the i-th element of the stream without moving it
func (c *CSPRNG) Nth(i uint64) domain.Scalar {
	return Hash(c.Seed, domain.NewScalar(i))
}

// Next returns the element at the current index and advances the stream
func (c *CSPRNG) Next() domain.Scalar {
	v := c.Nth(c.Index)
	c.Index++
	return v
}

// Take returns the next n elements
func (c *CSPRNG) Take(n int) []domain.Scalar {
	out := make([]domain.Scalar, n)
	for i := range out {
		out[i] = c.Next()
	}
	return out
}

func seedStream(master domain.Scalar, message string) *CSPRNG {
	b := master.Bytes32()
	msg := make([]byte, 0, len(b)+len(message))
	msg = append(msg, b[:]...)
	msg = append(msg, message...)
	return NewCSPRNG(HashToScalar(msg))
}

// IdentifierSeed returns the identifier seed of slot i
func IdentifierSeed(master domain.Scalar, i uint64) domain.Scalar {
	return seedStream(master, IdentifierSeedMessage).Nth(i)
}

// RecoveryStreamSeed returns the recovery stream seed of slot i
func RecoveryStreamSeed(master domain.Scalar, i uint64) domain.Scalar {
	return seedStream(master, RecoverySeedMessage).Nth(i)
}

// ShareStreamSeed returns the encryption (share) stream seed of slot i
func ShareStreamSeed(master domain.Scalar, i uint64) domain.Scalar {
	return seedStream(master, EncryptionSeedMessage).Nth(i)
}

// RecoveryID returns the recovery ID announcing version v of an object
func RecoveryID(identifierSeed domain.Scalar, v uint64) domain.Scalar {
	return NewCSPRNG(identifierSeed).Nth(v)
}

// Nullifier returns the nullifier spent when version v of an object is superseded
func Nullifier(identifierSeed domain.Scalar, v uint64) domain.Scalar {
	return Hash(RecoveryID(identifierSeed, v), identifierSeed)
}

// Slot is the cryptographic material of the i-th object of an account
type Slot struct {
	Index              uint64
	IdentifierSeed     domain.Scalar
	RecoveryStreamSeed domain.Scalar
	ShareStreamSeed    domain.Scalar
}

// DeriveSlot derives the seeds of slot i
func DeriveSlot(master domain.Scalar, i uint64) Slot {
	return Slot{
		Index:              i,
		IdentifierSeed:     IdentifierSeed(master, i),
		RecoveryStreamSeed: RecoveryStreamSeed(master, i),
		ShareStreamSeed:    ShareStreamSeed(master, i),
	}
}

// RecoveryID returns the recovery ID of version v of the slot's object
func (s Slot) RecoveryID(v uint64) domain.Scalar {
	return RecoveryID(s.IdentifierSeed, v)
}

// Nullifier returns the nullifier of version v of the slot's object
func (s Slot) Nullifier(v uint64) domain.Scalar {
	return Nullifier(s.IdentifierSeed, v)
}

// ShareStream returns the slot's private share stream at its first element
func (s Slot) ShareStream() *CSPRNG {
	return NewCSPRNG(s.ShareStreamSeed)
}

// Expected returns the expected state object announcing the slot's creation
func (s Slot) Expected(seed *domain.MasterViewSeed) domain.ExpectedStateObject {
	return domain.ExpectedStateObject{
		RecoveryID:         s.RecoveryID(0),
		AccountID:          seed.AccountID,
		OwnerAddress:       seed.OwnerAddress,
		SlotIndex:          s.Index,
		IdentifierSeed:     s.IdentifierSeed,
		RecoveryStreamSeed: s.RecoveryStreamSeed,
		ShareStreamSeed:    s.ShareStreamSeed,
		Nullifier:          s.Nullifier(0),
	}
}

// ClaimNextSlot derives the slot at the seed's current indices and advances both indices.
// Callers persist the seed and the returned slot's expected object in one transaction.
func ClaimNextSlot(seed *domain.MasterViewSeed) Slot {
	slot := DeriveSlot(seed.Seed, seed.RecoverySeedIndex)
	seed.RecoverySeedIndex++
	seed.ShareSeedIndex++
	return slot
}

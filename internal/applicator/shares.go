package applicator

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/feral-file/darkpool-indexer/internal/domain"
	"github.com/feral-file/darkpool-indexer/internal/streams"
)

// newStateObject builds version 0 of the object in an expected slot.
// Private shares are the first len(publicShares) values of the share stream.
func newStateObject(expected *domain.ExpectedStateObject, publicShares []domain.Scalar) domain.StateObject {
	shareStream := streams.NewCSPRNG(expected.ShareStreamSeed)
	private := shareStream.Take(len(publicShares))

	return domain.StateObject{
		RecoveryStreamSeed: expected.RecoveryStreamSeed,
		AccountID:          expected.AccountID,
		IdentifierSeed:     expected.IdentifierSeed,
		ShareStreamSeed:    expected.ShareStreamSeed,
		ShareStreamIndex:   shareStream.Index,
		Version:            0,
		Nullifier:          streams.Nullifier(expected.IdentifierSeed, 0),
		Active:             true,
		PublicShares:       append([]domain.Scalar(nil), publicShares...),
		PrivateShares:      private,
	}
}

// nextVersion moves the object to its next version and current nullifier
func nextVersion(obj *domain.StateObject) {
	obj.Version++
	obj.Nullifier = streams.Nullifier(obj.IdentifierSeed, obj.Version)
}

// reencrypt overwrites the public shares starting at start and draws fresh
// private shares for them from the object's share stream
func reencrypt(obj *domain.StateObject, start int, public []domain.Scalar) error {
	if start < 0 || start+len(public) > len(obj.PublicShares) {
		return domain.NewDataError("reencrypt",
			fmt.Errorf("shares [%d, %d) out of range for %d shares", start, start+len(public), len(obj.PublicShares)))
	}

	shareStream := &streams.CSPRNG{Seed: obj.ShareStreamSeed, Index: obj.ShareStreamIndex}
	private := shareStream.Take(len(public))

	copy(obj.PublicShares[start:], public)
	copy(obj.PrivateShares[start:], private)
	obj.ShareStreamIndex = shareStream.Index

	nextVersion(obj)
	return nil
}

// addToShare adds a plaintext delta to a field through its public share
func addToShare(obj *domain.StateObject, i int, delta *uint256.Int) {
	obj.PublicShares[i] = obj.PublicShares[i].Add(domain.ScalarFromUint256(delta))
}

// subFromShare subtracts a plaintext delta from a field through its public share.
// The field's plaintext value must be at least delta.
func subFromShare(obj *domain.StateObject, i int, delta *uint256.Int) error {
	current := obj.Value(i).Uint256()
	if current.Lt(delta) {
		return domain.NewConsistencyError("public fill",
			fmt.Errorf("value %s at share %d is less than %s", current.Dec(), i, delta.Dec()))
	}
	obj.PublicShares[i] = obj.PublicShares[i].Sub(domain.ScalarFromUint256(delta))
	return nil
}

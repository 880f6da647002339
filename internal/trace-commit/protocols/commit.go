package protocols

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/utils"
)

// HashLeaves hashes the canonical encoding of every value, preserving order
func HashLeaves(h core.Hasher, values []core.Element, workers int) []core.Digest {
	leaves := make([]core.Digest, len(values))
	parallelFor(len(values), workers, func(start, end int) {
		for i := start; i < end; i++ {
			leaves[i] = h.Sum(values[i].Bytes())
		}
	})
	return leaves
}

// hashFieldLeaves is HashLeaves for hashers with a field-element digest
func hashFieldLeaves(h core.FieldHasher, values []core.Element, workers int) []hash.Digest {
	leaves := make([]hash.Digest, len(values))
	parallelFor(len(values), workers, func(start, end int) {
		for i := start; i < end; i++ {
			leaves[i] = h.FieldDigest(values[i].Bytes())
		}
	})
	return leaves
}

// CommitTree builds the Merkle tree over the hashed values.
// Field hashers keep full digests up to the root; byte hashers use core.MerkleTree.
func CommitTree(h core.Hasher, values []core.Element, workers int) (core.CommitmentTree, error) {
	if !utils.IsPowerOfTwo(len(values)) {
		return nil, core.NewError(core.ErrCodeCommitmentConstruction,
			"cannot commit to %d values, need a non-zero power of two", len(values))
	}
	if fh, ok := h.(core.FieldHasher); ok {
		tree, err := core.NewTip5Tree(hashFieldLeaves(fh, values, workers))
		if err != nil {
			return nil, err
		}
		return tree, nil
	}
	tree, err := core.NewMerkleTree(h, HashLeaves(h, values, workers))
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// Commit returns the Merkle root over the hashed values
func Commit(h core.Hasher, values []core.Element, workers int) (core.Digest, error) {
	tree, err := CommitTree(h, values, workers)
	if err != nil {
		return core.Digest{}, err
	}
	return tree.Root(), nil
}

package core

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/merkle"
)

// Tip5Tree commits to full Tip5 leaf digests with the vybium-crypto Merkle
// tree. Only the root is truncated to DigestSize bytes; inner nodes and
// authentication paths keep all hash.DigestLen elements.
type Tip5Tree struct {
	tree *merkle.MerkleTree
}

// NewTip5Tree builds the tree from already hashed leaves
func NewTip5Tree(leaves []hash.Digest) (*Tip5Tree, error) {
	if len(leaves) == 0 || len(leaves)&(len(leaves)-1) != 0 {
		return nil, NewError(ErrCodeCommitmentConstruction,
			"number of leaves must be a non-zero power of two, got %d", len(leaves))
	}
	tree, err := merkle.New(leaves)
	if err != nil {
		return nil, WrapError(ErrCodeCommitmentConstruction, err, "failed to build tip5 Merkle tree")
	}
	return &Tip5Tree{tree: tree}, nil
}

// Root returns the truncated Merkle root
func (t *Tip5Tree) Root() Digest {
	return truncateDigest(t.tree.Root())
}

// RootElements returns every element of the untruncated root
func (t *Tip5Tree) RootElements() []uint64 {
	return digestElements(t.tree.Root())
}

// Depth returns log2 of the number of leaves
func (t *Tip5Tree) Depth() int {
	return int(t.tree.Height())
}

// NumLeaves returns the number of leaves
func (t *Tip5Tree) NumLeaves() int {
	return int(t.tree.NumLeafs())
}

// Proof returns the authentication path for the leaf at index
func (t *Tip5Tree) Proof(index int) ([]ProofNode, error) {
	if index < 0 || index >= t.NumLeaves() {
		return nil, NewError(ErrCodeInvalidOpeningIndex,
			"index %d out of range [0, %d)", index, t.NumLeaves())
	}

	path, err := t.tree.AuthenticationPath(uint64(index))
	if err != nil {
		return nil, WrapError(ErrCodeInvalidOpeningIndex, err, "no authentication path for index %d", index)
	}

	proof := make([]ProofNode, len(path))
	current := index
	for i, sibling := range path {
		proof[i] = ProofNode{
			Hash:     truncateDigest(sibling),
			IsRight:  current%2 == 0,
			Elements: digestElements(sibling),
		}
		current /= 2
	}
	return proof, nil
}

// VerifyTip5Proof checks that leafData hashes up to the root whose full
// elements are rootElements and whose truncation is root.
func VerifyTip5Proof(h FieldHasher, root Digest, rootElements []uint64, leafData []byte, proof []ProofNode, index int) bool {
	if index < 0 || (len(proof) < 63 && index >= 1<<len(proof)) {
		return false
	}

	fullRoot, ok := elementsDigest(rootElements)
	if !ok || truncateDigest(fullRoot) != root {
		return false
	}

	path := make([]hash.Digest, len(proof))
	current := index
	for i, node := range proof {
		sibling, ok := elementsDigest(node.Elements)
		if !ok || node.IsRight != (current%2 == 0) || truncateDigest(sibling) != node.Hash {
			return false
		}
		path[i] = sibling
		current /= 2
	}

	return merkle.VerifyInclusionProof(fullRoot, uint64(index), h.FieldDigest(leafData), path)
}

func digestElements(d hash.Digest) []uint64 {
	out := make([]uint64, hash.DigestLen)
	for i := range out {
		out[i] = d[i].Value()
	}
	return out
}

// elementsDigest rejects non-canonical limbs so every digest has one encoding
func elementsDigest(values []uint64) (hash.Digest, bool) {
	var d hash.Digest
	if len(values) != hash.DigestLen {
		return d, false
	}
	for i, v := range values {
		if v >= field.P {
			return d, false
		}
		d[i] = field.New(v)
	}
	return d, true
}

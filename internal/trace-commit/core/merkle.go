package core

// CommitmentTree is a Merkle tree over hashed leaves that can open single leaves
type CommitmentTree interface {
	Root() Digest
	Depth() int
	NumLeaves() int
	Proof(index int) ([]ProofNode, error)
}

// MerkleTree represents a binary Merkle tree over a power-of-two number of leaf digests
type MerkleTree struct {
	hasher Hasher
	levels [][]Digest
}

// ProofNode represents a node in a Merkle authentication path.
// Elements carries the full sibling digest for trees whose native digest is
// wider than Hash; Hash is then its truncation.
type ProofNode struct {
	Hash     Digest   `json:"hash"`
	IsRight  bool     `json:"is_right"` // true if this node is the right child, false if left
	Elements []uint64 `json:"elements,omitempty"`
}

// NewMerkleTree builds the tree bottom-up from already hashed leaves.
// Inner nodes are hasher.Sum(left || right).
func NewMerkleTree(hasher Hasher, leaves []Digest) (*MerkleTree, error) {
	if len(leaves) == 0 {
		return nil, NewError(ErrCodeCommitmentConstruction, "cannot create Merkle tree with no leaves")
	}
	if len(leaves)&(len(leaves)-1) != 0 {
		return nil, NewError(ErrCodeCommitmentConstruction,
			"number of leaves must be a power of two, got %d", len(leaves))
	}

	level := make([]Digest, len(leaves))
	copy(level, leaves)
	levels := [][]Digest{level}

	var buf [2 * DigestSize]byte
	for len(level) > 1 {
		next := make([]Digest, len(level)/2)
		for i := range next {
			copy(buf[:DigestSize], level[2*i][:])
			copy(buf[DigestSize:], level[2*i+1][:])
			next[i] = hasher.Sum(buf[:])
		}
		levels = append(levels, next)
		level = next
	}

	return &MerkleTree{hasher: hasher, levels: levels}, nil
}

// Root returns the Merkle root
func (mt *MerkleTree) Root() Digest {
	return mt.levels[len(mt.levels)-1][0]
}

// Depth returns log2 of the number of leaves
func (mt *MerkleTree) Depth() int {
	return len(mt.levels) - 1
}

// NumLeaves returns the number of leaves
func (mt *MerkleTree) NumLeaves() int {
	return len(mt.levels[0])
}

// Leaf returns the leaf digest at index
func (mt *MerkleTree) Leaf(index int) Digest {
	return mt.levels[0][index]
}

// Proof generates the authentication path for the leaf at index
func (mt *MerkleTree) Proof(index int) ([]ProofNode, error) {
	if index < 0 || index >= mt.NumLeaves() {
		return nil, NewError(ErrCodeInvalidOpeningIndex,
			"index %d out of range [0, %d)", index, mt.NumLeaves())
	}

	proof := make([]ProofNode, 0, mt.Depth())
	current := index
	for level := 0; level < mt.Depth(); level++ {
		sibling := current ^ 1
		proof = append(proof, ProofNode{
			Hash:    mt.levels[level][sibling],
			IsRight: current%2 == 0,
		})
		current /= 2
	}
	return proof, nil
}

// VerifyProof checks that leafData hashes up to root along proof at index
func VerifyProof(hasher Hasher, root Digest, leafData []byte, proof []ProofNode, index int) bool {
	if index < 0 || (len(proof) < 63 && index >= 1<<len(proof)) {
		return false
	}

	h := hasher.Sum(leafData)
	current := index
	var buf [2 * DigestSize]byte
	for _, node := range proof {
		if node.IsRight != (current%2 == 0) || node.Elements != nil {
			return false
		}
		if node.IsRight {
			// Sibling is on the right, current hash goes on the left
			copy(buf[:DigestSize], h[:])
			copy(buf[DigestSize:], node.Hash[:])
		} else {
			copy(buf[:DigestSize], node.Hash[:])
			copy(buf[DigestSize:], h[:])
		}
		h = hasher.Sum(buf[:])
		current /= 2
	}

	return h == root
}

package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
)

func tip5Leaves(t *testing.T, n int) (FieldHasher, [][]byte, []hash.Digest) {
	t.Helper()
	h, err := NewHasher(HashTip5)
	if err != nil {
		t.Fatalf("NewHasher(tip5): %v", err)
	}
	fh := h.(FieldHasher)

	data := make([][]byte, n)
	leaves := make([]hash.Digest, n)
	for i := range data {
		data[i] = []byte(fmt.Sprintf("leaf-%d", i))
		leaves[i] = fh.FieldDigest(data[i])
	}
	return fh, data, leaves
}

func TestTip5TreeRoot(t *testing.T) {
	_, _, leaves := tip5Leaves(t, 4)

	tree, err := NewTip5Tree(leaves)
	if err != nil {
		t.Fatalf("Failed to create tip5 tree: %v", err)
	}

	left := hash.Digest(hash.HashPair(leaves[0], leaves[1]))
	right := hash.Digest(hash.HashPair(leaves[2], leaves[3]))
	want := hash.Digest(hash.HashPair(left, right))

	if tree.Root() != truncateDigest(want) {
		t.Errorf("Root() = %s, want %s", tree.Root(), truncateDigest(want))
	}
	if got := tree.RootElements(); len(got) != hash.DigestLen || got[4] != want[4].Value() {
		t.Errorf("RootElements() = %v, want all %d elements", got, hash.DigestLen)
	}
	if tree.Depth() != 2 || tree.NumLeaves() != 4 {
		t.Errorf("Depth() = %d, NumLeaves() = %d", tree.Depth(), tree.NumLeaves())
	}
}

func TestTip5TreeRejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, 3, 6} {
		_, _, leaves := tip5Leaves(t, n)
		if _, err := NewTip5Tree(leaves); !errors.Is(err, ErrCommitmentConstruction) {
			t.Errorf("n=%d: expected ErrCommitmentConstruction, got %v", n, err)
		}
	}
}

func TestTip5TreeProof(t *testing.T) {
	fh, data, leaves := tip5Leaves(t, 8)

	tree, err := NewTip5Tree(leaves)
	if err != nil {
		t.Fatalf("Failed to create tip5 tree: %v", err)
	}
	root, rootElements := tree.Root(), tree.RootElements()

	for i := range data {
		proof, err := tree.Proof(i)
		if err != nil {
			t.Fatalf("Proof(%d): %v", i, err)
		}
		if len(proof) != 3 {
			t.Fatalf("Proof(%d) has %d nodes, want 3", i, len(proof))
		}
		if !VerifyTip5Proof(fh, root, rootElements, data[i], proof, i) {
			t.Errorf("Proof(%d) did not verify", i)
		}
		if VerifyTip5Proof(fh, root, rootElements, data[i], proof, i^1) {
			t.Errorf("Proof(%d) verified at sibling index", i)
		}
		if VerifyTip5Proof(fh, root, rootElements, []byte("tampered"), proof, i) {
			t.Errorf("Proof(%d) verified tampered data", i)
		}
		if VerifyProof(fh, root, data[i], proof, i) {
			t.Errorf("Proof(%d) verified as a byte-hasher path", i)
		}
	}

	proof, _ := tree.Proof(2)

	t.Run("RootMismatch", func(t *testing.T) {
		other := append([]uint64(nil), rootElements...)
		other[0]++
		if VerifyTip5Proof(fh, root, other, data[2], proof, 2) {
			t.Error("root elements that disagree with the truncated root verified")
		}
		if VerifyTip5Proof(fh, root, rootElements[:4], data[2], proof, 2) {
			t.Error("short root verified")
		}
	})

	t.Run("NonCanonicalLimb", func(t *testing.T) {
		if _, ok := elementsDigest([]uint64{field.P, 0, 0, 0, 0}); ok {
			t.Error("limb equal to p accepted")
		}
		if _, ok := elementsDigest([]uint64{field.P - 1, 0, 0, 0, 0}); !ok {
			t.Error("limb p-1 rejected")
		}
	})

	t.Run("TruncationMismatch", func(t *testing.T) {
		forged := make([]ProofNode, len(proof))
		copy(forged, proof)
		forged[1].Hash[0] ^= 1
		if VerifyTip5Proof(fh, root, rootElements, data[2], forged, 2) {
			t.Error("sibling whose Hash disagrees with its elements verified")
		}
	})

	for _, index := range []int{8, -1} {
		if _, err := tree.Proof(index); !errors.Is(err, ErrInvalidOpeningIndex) {
			t.Errorf("Proof(%d): expected ErrInvalidOpeningIndex, got %v", index, err)
		}
	}
	if VerifyTip5Proof(fh, root, rootElements, data[2], proof, 2+8) {
		t.Error("index beyond tree width should not verify")
	}
}

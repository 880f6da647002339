package protocols

import (
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
)

// Opening reveals one extended evaluation together with its Merkle path.
// It lets a holder of the root spot-check a single LDE value.
// RootElements is set only for field hashers, whose root is truncated in the proof.
type Opening struct {
	Index        int              `json:"index"`
	Value        []byte           `json:"value"`
	Path         []core.ProofNode `json:"path"`
	RootElements []uint64         `json:"root_elements,omitempty"`
}

// VerifyOpening checks that the opened value hashes up to root
func VerifyOpening(h core.Hasher, root core.Digest, o *Opening) bool {
	if o == nil {
		return false
	}
	if fh, ok := h.(core.FieldHasher); ok {
		return core.VerifyTip5Proof(fh, root, o.RootElements, o.Value, o.Path, o.Index)
	}
	if o.RootElements != nil {
		return false
	}
	return core.VerifyProof(h, root, o.Value, o.Path, o.Index)
}

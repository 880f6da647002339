package protocols

import (
	"encoding/hex"
	"encoding/json"

	"github.com/holiman/uint256"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
)

// ProofSize is the serialized size of a proof in bytes
const ProofSize = core.DigestSize

// Proof is the Merkle root of the low-degree extended trace.
//
// It binds the exact trace it was generated from and nothing else: checking
// it requires the full trace, and it carries no proximity or soundness
// argument about how the trace was produced.
type Proof struct {
	Root core.Digest
}

// ByteOrder selects how the root bytes are read as an integer
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// NewProof wraps a commitment root
func NewProof(root core.Digest) Proof {
	return Proof{Root: root}
}

// ProofFromBytes parses a raw 32-byte proof
func ProofFromBytes(data []byte) (Proof, error) {
	if len(data) != ProofSize {
		return Proof{}, core.NewError(core.ErrCodeInvalidProof,
			"proof must be %d bytes, got %d", ProofSize, len(data))
	}
	var p Proof
	copy(p.Root[:], data)
	return p, nil
}

// ParseProof parses the hex form produced by Proof.Hex
func ParseProof(s string) (Proof, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Proof{}, core.WrapError(core.ErrCodeInvalidProof, err, "invalid proof hex")
	}
	return ProofFromBytes(raw)
}

// Bytes returns a copy of the root bytes
func (p Proof) Bytes() []byte {
	out := make([]byte, ProofSize)
	copy(out, p.Root[:])
	return out
}

// Hex returns the root as lowercase hex
func (p Proof) Hex() string {
	return p.Root.Hex()
}

// String returns the hex form of the proof
func (p Proof) String() string {
	return p.Hex()
}

// Equal compares roots for exact equality
func (p Proof) Equal(other Proof) bool {
	return p.Root == other.Root
}

// Uint256 interprets the root as an unsigned 256-bit integer
func (p Proof) Uint256(order ByteOrder) *uint256.Int {
	buf := p.Root
	if order == LittleEndian {
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
	}
	return new(uint256.Int).SetBytes32(buf[:])
}

type proofJSON struct {
	Root core.Digest `json:"root"`
}

// MarshalJSON encodes the proof as {"root": "<hex>"}
func (p Proof) MarshalJSON() ([]byte, error) {
	return json.Marshal(proofJSON{Root: p.Root})
}

// UnmarshalJSON decodes the form written by MarshalJSON
func (p *Proof) UnmarshalJSON(data []byte) error {
	var raw proofJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return core.WrapError(core.ErrCodeInvalidProof, err, "invalid proof JSON")
	}
	p.Root = raw.Root
	return nil
}

// MarshalText encodes the proof as hex
func (p Proof) MarshalText() ([]byte, error) {
	return p.Root.MarshalText()
}

// UnmarshalText decodes a hex proof
func (p *Proof) UnmarshalText(text []byte) error {
	return p.Root.UnmarshalText(text)
}

package tracecommit

import (
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/protocols"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/utils"
)

// Element is an immutable prime-field element
type Element = core.Element

// Field is the prime-field capability a trace lives in
type Field = core.Field

// Trace is an ordered single-column execution trace
type Trace = protocols.Trace

// Proof is the 32-byte Merkle root committing to a trace
type Proof = protocols.Proof

// Opening reveals one extended evaluation with its authentication path
type Opening = protocols.Opening

// Config selects the field, hash function, blowup factor, interpolation
// method and worker count
type Config = utils.Config

// ByteOrder selects how a proof root is read as an integer
type ByteOrder = protocols.ByteOrder

// Byte orders for Proof.Uint256
const (
	LittleEndian = protocols.LittleEndian
	BigEndian    = protocols.BigEndian
)

// ProofSize is the serialized size of a proof in bytes
const ProofSize = protocols.ProofSize

// Field, hash and interpolation names accepted by Config
const (
	FieldGoldilocks = core.FieldGoldilocks
	FieldStark101   = core.FieldStark101

	HashBlake3 = core.HashBlake3
	HashSHA3   = core.HashSHA3
	HashSHA256 = core.HashSHA256
	HashTip5   = core.HashTip5

	InterpolationNTT      = utils.InterpolationNTT
	InterpolationLagrange = utils.InterpolationLagrange
)

// DefaultConfig returns Goldilocks, BLAKE3-256, blowup 2 and NTT interpolation
func DefaultConfig() *Config {
	return utils.DefaultConfig()
}

// LoadConfig reads a JSON configuration file on top of DefaultConfig
func LoadConfig(path string) (*Config, error) {
	return utils.LoadConfig(path)
}

// ParseProof parses the hex form of a proof
func ParseProof(s string) (Proof, error) {
	return protocols.ParseProof(s)
}

// ProofFromBytes parses a raw 32-byte proof
func ProofFromBytes(data []byte) (Proof, error) {
	return protocols.ProofFromBytes(data)
}

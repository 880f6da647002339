package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/sha3"
)

// DigestSize is the width of every digest produced by a Hasher
const DigestSize = 32

// Digest is a fixed-size hash output
type Digest [DigestSize]byte

// Hex returns the digest as a lowercase hex string
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// String returns the hex form of the digest
func (d Digest) String() string {
	return d.Hex()
}

// Hasher is the cryptographic hash capability used for Merkle leaves and nodes
type Hasher interface {
	Name() string
	Sum(data []byte) Digest
}

// Hash function names accepted by NewHasher
const (
	HashBlake3 = "blake3"
	HashSHA3   = "sha3"
	HashSHA256 = "sha256"
	HashTip5   = "tip5"
)

// NewHasher returns the hash function registered under name
func NewHasher(name string) (Hasher, error) {
	switch name {
	case HashBlake3, "":
		return blake3Hasher{}, nil
	case HashSHA3:
		return sha3Hasher{}, nil
	case HashSHA256:
		return sha256Hasher{}, nil
	case HashTip5:
		return tip5Hasher{}, nil
	default:
		return nil, NewError(ErrCodeInvalidConfig,
			"hash function must be 'blake3', 'sha3', 'sha256', or 'tip5', got '%s'", name)
	}
}

type blake3Hasher struct{}

func (blake3Hasher) Name() string { return HashBlake3 }

func (blake3Hasher) Sum(data []byte) Digest { return blake3.Sum256(data) }

type sha3Hasher struct{}

func (sha3Hasher) Name() string { return HashSHA3 }

func (sha3Hasher) Sum(data []byte) Digest { return sha3.Sum256(data) }

type sha256Hasher struct{}

func (sha256Hasher) Name() string { return HashSHA256 }

func (sha256Hasher) Sum(data []byte) Digest { return sha256.Sum256(data) }

// FieldHasher is a Hasher whose native digest is a vector of Goldilocks
// elements. Sum returns the digest truncated to DigestSize bytes.
type FieldHasher interface {
	Hasher
	FieldDigest(data []byte) hash.Digest
}

// tip5Hasher absorbs the input as little-endian 8-byte limbs (reduced into
// Goldilocks) and keeps the first four digest elements.
type tip5Hasher struct{}

func (tip5Hasher) Name() string { return HashTip5 }

func (tip5Hasher) FieldDigest(data []byte) hash.Digest {
	// the length limb keeps inputs that differ only in trailing zeros apart
	elems := make([]field.Element, 0, len(data)/8+2)
	elems = append(elems, field.New(uint64(len(data))))
	for i := 0; i < len(data); i += 8 {
		var limb [8]byte
		copy(limb[:], data[i:])
		elems = append(elems, field.New(binary.LittleEndian.Uint64(limb[:])))
	}
	return hash.HashVarlen(elems)
}

func (h tip5Hasher) Sum(data []byte) Digest {
	return truncateDigest(h.FieldDigest(data))
}

// truncateDigest keeps the first four elements of d, little-endian
func truncateDigest(d hash.Digest) Digest {
	var out Digest
	for i := 0; i < DigestSize/8; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], d[i].Value())
	}
	return out
}

// MarshalText encodes the digest as hex
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// UnmarshalText decodes a hex digest of exactly DigestSize bytes
func (d *Digest) UnmarshalText(text []byte) error {
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return WrapError(ErrCodeInvalidProof, err, "invalid digest hex")
	}
	if len(raw) != DigestSize {
		return NewError(ErrCodeInvalidProof, "digest must be %d bytes, got %d", DigestSize, len(raw))
	}
	copy(d[:], raw)
	return nil
}

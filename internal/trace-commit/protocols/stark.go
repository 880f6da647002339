package protocols

import (
	"fmt"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/log"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/utils"
)

// STARK commits to single-column traces: interpolate, extend, hash, Merkle root.
//
// A STARK holds only immutable configuration and is safe for concurrent use.
type STARK struct {
	config *utils.Config
	field  core.Field
	hasher core.Hasher
	logger *log.Logger
}

// Commitment holds the intermediate values of one GenerateProof run
type Commitment struct {
	Polynomial *core.Polynomial
	Extended   []core.Element
	Tree       core.CommitmentTree
}

// Proof returns the root of the commitment tree
func (c *Commitment) Proof() Proof {
	return NewProof(c.Tree.Root())
}

// NewSTARK creates a new commitment pipeline with the given configuration
func NewSTARK(config *utils.Config) (*STARK, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	f, err := core.FieldByName(config.Field)
	if err != nil {
		return nil, err
	}
	hasher, err := core.NewHasher(config.HashFunction)
	if err != nil {
		return nil, err
	}

	return &STARK{
		config: config.Clone(),
		field:  f,
		hasher: hasher,
		logger: log.Default().Module("stark"),
	}, nil
}

// WithLogger returns a copy of s that logs to l
func (s *STARK) WithLogger(l *log.Logger) *STARK {
	clone := *s
	clone.logger = l
	return &clone
}

// Field returns the field used by the STARK instance
func (s *STARK) Field() core.Field {
	return s.field
}

// Hasher returns the hash function used for the Merkle tree
func (s *STARK) Hasher() core.Hasher {
	return s.hasher
}

// Config returns a copy of the configuration
func (s *STARK) Config() *utils.Config {
	return s.config.Clone()
}

// NewTrace lifts integer values into the STARK's field
func (s *STARK) NewTrace(values []uint64) (Trace, error) {
	return NewTrace(s.field, values)
}

// Commit runs the full pipeline and keeps the intermediate values.
// Errors from each stage are returned unchanged.
func (s *STARK) Commit(trace Trace) (*Commitment, error) {
	n := trace.Len()
	if err := ValidateTraceLength(s.field, n); err != nil {
		return nil, err
	}
	// the extended domain must exist too; compare exponents so n*blowup cannot overflow
	if k := utils.Log2(n) + utils.Log2(s.config.BlowupFactor); k > s.field.TwoAdicity() {
		return nil, core.NewError(core.ErrCodeInvalidTraceLength,
			"extended domain 2^%d exceeds max root-of-unity order 2^%d of %s", k, s.field.TwoAdicity(), s.field.Name())
	}
	if err := ValidateElements(s.field, trace); err != nil {
		return nil, err
	}

	poly, err := Interpolate(s.field, trace, s.config.Interpolation)
	if err != nil {
		return nil, err
	}

	extended, err := Extend(poly, n, s.config.BlowupFactor, s.config.Interpolation, s.config.Workers)
	if err != nil {
		return nil, err
	}

	tree, err := CommitTree(s.hasher, extended, s.config.Workers)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("trace committed",
		"n", n,
		"lde", len(extended),
		"degree", poly.Degree(),
		"root", tree.Root().Hex())

	return &Commitment{Polynomial: poly, Extended: extended, Tree: tree}, nil
}

// GenerateProof returns the Merkle root of the low-degree extension of trace
func (s *STARK) GenerateProof(trace Trace) (Proof, error) {
	c, err := s.Commit(trace)
	if err != nil {
		return Proof{}, err
	}
	return c.Proof(), nil
}

// VerifyProof recomputes the commitment of trace and compares it with proof.
// A trace that cannot be committed does not verify.
func (s *STARK) VerifyProof(trace Trace, proof Proof) bool {
	regenerated, err := s.GenerateProof(trace)
	if err != nil {
		s.logger.Debug("verification failed to regenerate proof", "err", err)
		return false
	}
	return regenerated.Equal(proof)
}

// Open commits to trace and reveals the extended evaluation at index
func (s *STARK) Open(trace Trace, index int) (*Opening, Proof, error) {
	c, err := s.Commit(trace)
	if err != nil {
		return nil, Proof{}, err
	}

	path, err := c.Tree.Proof(index)
	if err != nil {
		return nil, Proof{}, err
	}

	o := &Opening{
		Index: index,
		Value: c.Extended[index].Bytes(),
		Path:  path,
	}
	if t, ok := c.Tree.(*core.Tip5Tree); ok {
		o.RootElements = t.RootElements()
	}
	return o, c.Proof(), nil
}

// VerifyOpening checks an opening against proof using the STARK's hash function
func (s *STARK) VerifyOpening(proof Proof, o *Opening) bool {
	return VerifyOpening(s.hasher, proof.Root, o)
}

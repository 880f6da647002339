package tracecommit

import (
	"fmt"
	"log/slog"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/log"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/protocols"
)

// Prover generates trace commitments
type Prover struct {
	stark *protocols.STARK
}

// NewProver creates a prover with the given configuration
func NewProver(config *Config) (*Prover, error) {
	stark, err := newSTARK(config)
	if err != nil {
		return nil, err
	}
	return &Prover{stark: stark}, nil
}

// WithLogger returns a copy of the prover that logs pipeline stages to l.
// A nil l silences the prover.
func (p *Prover) WithLogger(l *slog.Logger) *Prover {
	return &Prover{stark: p.stark.WithLogger(log.FromSlog(l).Module("prover"))}
}

// Field returns the field traces are lifted into
func (p *Prover) Field() Field {
	return p.stark.Field()
}

// NewTrace lifts integer values into the prover's field. Values that are
// not canonical (v >= p) fail with ErrInvalidTraceElement.
func (p *Prover) NewTrace(values []uint64) (Trace, error) {
	return p.stark.NewTrace(values)
}

// GenerateProof commits to trace and returns the Merkle root.
// Stage errors are returned unchanged and can be matched with errors.Is.
func (p *Prover) GenerateProof(trace Trace) (Proof, error) {
	return p.stark.GenerateProof(trace)
}

// Open commits to trace and reveals the extended evaluation at index
func (p *Prover) Open(trace Trace, index int) (*Opening, Proof, error) {
	return p.stark.Open(trace, index)
}

// Verifier checks trace commitments by recomputation
type Verifier struct {
	stark *protocols.STARK
}

// NewVerifier creates a verifier with the given configuration. It must match
// the configuration the proof was generated with.
func NewVerifier(config *Config) (*Verifier, error) {
	stark, err := newSTARK(config)
	if err != nil {
		return nil, err
	}
	return &Verifier{stark: stark}, nil
}

// WithLogger returns a copy of the verifier that logs to l.
// A nil l silences the verifier.
func (v *Verifier) WithLogger(l *slog.Logger) *Verifier {
	return &Verifier{stark: v.stark.WithLogger(log.FromSlog(l).Module("verifier"))}
}

// NewTrace lifts integer values into the verifier's field
func (v *Verifier) NewTrace(values []uint64) (Trace, error) {
	return v.stark.NewTrace(values)
}

// VerifyProof reports whether trace commits to proof. A trace that cannot be
// committed returns false.
func (v *Verifier) VerifyProof(trace Trace, proof Proof) bool {
	return v.stark.VerifyProof(trace, proof)
}

// VerifyOpening reports whether the opening hashes up to proof
func (v *Verifier) VerifyOpening(proof Proof, o *Opening) bool {
	return v.stark.VerifyOpening(proof, o)
}

// GenerateProof commits to values under DefaultConfig
func GenerateProof(values []uint64) (Proof, error) {
	p, err := NewProver(DefaultConfig())
	if err != nil {
		return Proof{}, err
	}
	trace, err := p.NewTrace(values)
	if err != nil {
		return Proof{}, err
	}
	return p.GenerateProof(trace)
}

// VerifyProof checks values against proof under DefaultConfig.
// Non-canonical values never verify.
func VerifyProof(values []uint64, proof Proof) bool {
	v, err := NewVerifier(DefaultConfig())
	if err != nil {
		return false
	}
	trace, err := v.NewTrace(values)
	if err != nil {
		return false
	}
	return v.VerifyProof(trace, proof)
}

func newSTARK(config *Config) (*protocols.STARK, error) {
	if config == nil {
		config = DefaultConfig()
	}
	stark, err := protocols.NewSTARK(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create STARK: %w", err)
	}
	return stark, nil
}

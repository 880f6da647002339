package integration_test

import (
	"errors"
	"testing"

	"github.com/vybium/vybium-trace-commit/pkg/tracecommit"
)

func mustTrace(t *testing.T, b interface {
	NewTrace([]uint64) (tracecommit.Trace, error)
}, values []uint64) tracecommit.Trace {
	t.Helper()
	trace, err := b.NewTrace(values)
	if err != nil {
		t.Fatalf("Failed to create trace: %v", err)
	}
	return trace
}

// Test01_CommitAndVerify runs the whole flow through the public API:
// 1. Build the example trace 0..7
// 2. Generate the proof
// 3. Verify it against the same trace
// 4. Reject it against a modified trace
//
// Related example: examples/01_commit_trace/main.go
func Test01_CommitAndVerify(t *testing.T) {
	t.Log("=== Test 01: Trace -> Commitment -> Verification ===")

	prover, err := tracecommit.NewProver(tracecommit.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create prover: %v", err)
	}
	verifier, err := tracecommit.NewVerifier(tracecommit.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create verifier: %v", err)
	}

	t.Log("Step 1: Building trace...")
	trace := mustTrace(t, prover, []uint64{0, 1, 2, 3, 4, 5, 6, 7})

	t.Log("Step 2: Generating proof...")
	proof, err := prover.GenerateProof(trace)
	if err != nil {
		t.Fatalf("Failed to generate proof: %v", err)
	}
	t.Logf("  root: %s", proof)

	if proof.Hex() != "11fc57871c7b068eb8f7e122ff4b880a241369c956d1f86dadf1c24e81c57ef8" {
		t.Errorf("golden root mismatch: %s", proof)
	}

	t.Log("Step 3: Verifying proof...")
	if !verifier.VerifyProof(mustTrace(t, verifier, []uint64{0, 1, 2, 3, 4, 5, 6, 7}), proof) {
		t.Fatal("proof should verify against its own trace")
	}

	t.Log("Step 4: Verifying against a modified trace...")
	if verifier.VerifyProof(mustTrace(t, verifier, []uint64{0, 1, 2, 3, 4, 6, 6, 7}), proof) {
		t.Fatal("proof should not verify against a modified trace")
	}

	t.Log("✅ Test 01 passed")
}

// Test01_InvalidTraces checks that invalid lengths fail before any work
func Test01_InvalidTraces(t *testing.T) {
	for _, values := range [][]uint64{nil, {1, 2, 3}, {1, 2, 3, 4, 5, 6}} {
		_, err := tracecommit.GenerateProof(values)
		if !errors.Is(err, tracecommit.ErrInvalidTraceLength) {
			t.Errorf("len %d: expected ErrInvalidTraceLength, got %v", len(values), err)
		}
		if tracecommit.VerifyProof(values, tracecommit.Proof{}) {
			t.Errorf("len %d: invalid trace verified", len(values))
		}
	}
}

// Test01_LargeTrace commits a longer trace with several workers
func Test01_LargeTrace(t *testing.T) {
	values := make([]uint64, 1<<12)
	for i := range values {
		values[i] = uint64(i)*uint64(i) + 1
	}

	single, err := tracecommit.NewProver(tracecommit.DefaultConfig().WithWorkers(1))
	if err != nil {
		t.Fatalf("Failed to create prover: %v", err)
	}
	parallel, err := tracecommit.NewProver(tracecommit.DefaultConfig().WithWorkers(8))
	if err != nil {
		t.Fatalf("Failed to create prover: %v", err)
	}

	want, err := single.GenerateProof(mustTrace(t, single, values))
	if err != nil {
		t.Fatalf("Failed to generate proof: %v", err)
	}
	got, err := parallel.GenerateProof(mustTrace(t, parallel, values))
	if err != nil {
		t.Fatalf("Failed to generate proof: %v", err)
	}
	if !got.Equal(want) {
		t.Errorf("worker count changed the root: %s vs %s", got, want)
	}

	if !tracecommit.VerifyProof(values, got) {
		t.Error("large trace should verify")
	}
}

// Package tracecommit commits to single-column execution traces.
//
// A trace of n field elements (n a power of two) is interpolated over the
// n-th roots of unity, evaluated over a domain blowup times larger, and the
// evaluations are hashed into a Merkle tree. The 32-byte root is the Proof.
//
// # Quick Start
//
//	prover, err := tracecommit.NewProver(tracecommit.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	trace, err := prover.NewTrace([]uint64{0, 1, 2, 3, 4, 5, 6, 7})
//	if err != nil {
//		log.Fatal(err)
//	}
//	proof, err := prover.GenerateProof(trace)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	verifier, _ := tracecommit.NewVerifier(tracecommit.DefaultConfig())
//	fmt.Println(verifier.VerifyProof(trace, proof))
//
// # Verification
//
// VerifyProof recomputes the root from the full trace and compares it with
// the proof. It is a commitment equality check: it needs the whole trace and
// carries no low-degree or soundness argument.
//
// # Cross-checking
//
// CrossCheck compiles an external verifier program with a Compiler and runs
// it on the proof root with a Runner. ExecCompiler and ExecRunner drive
// external binaries.
package tracecommit

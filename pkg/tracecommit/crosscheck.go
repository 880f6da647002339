package tracecommit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/holiman/uint256"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
)

// Compiler turns an entry module and a dependency directory into a bytecode artifact
type Compiler interface {
	Compile(ctx context.Context, entryPath, depsDir string) ([]byte, error)
}

// Runner loads a bytecode artifact and invokes it with a single argument
type Runner interface {
	Run(ctx context.Context, bytecode []byte, arg *uint256.Int) ([]byte, error)
}

// ExecCompiler runs an external compiler binary as
//
//	Command Args... <entry> <deps> <output>
//
// and reads the artifact it writes to <output>.
type ExecCompiler struct {
	Command string
	Args    []string
}

// Compile runs the compiler and returns the artifact bytes
func (c *ExecCompiler) Compile(ctx context.Context, entryPath, depsDir string) ([]byte, error) {
	if _, err := os.Stat(entryPath); err != nil {
		return nil, core.WrapError(core.ErrCodeCompilation, err, "entry %s", entryPath)
	}
	if info, err := os.Stat(depsDir); err != nil || !info.IsDir() {
		return nil, core.WrapError(core.ErrCodeCompilation, err, "dependency directory %s", depsDir)
	}

	dir, err := os.MkdirTemp("", "trace-commit-compile-")
	if err != nil {
		return nil, core.WrapError(core.ErrCodeCompilation, err, "failed to create output directory")
	}
	defer os.RemoveAll(dir)

	output := filepath.Join(dir, "out.jam")
	args := append(append([]string{}, c.Args...), entryPath, depsDir, output)

	cmd := exec.CommandContext(ctx, c.Command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, core.WrapError(core.ErrCodeCompilation, err,
			"%s failed: %s", c.Command, strings.TrimSpace(stderr.String()))
	}

	artifact, err := os.ReadFile(output)
	if err != nil {
		return nil, core.WrapError(core.ErrCodeCompilation, err, "%s wrote no artifact", c.Command)
	}
	if len(artifact) == 0 {
		return nil, core.NewError(core.ErrCodeCompilation, "%s wrote an empty artifact", c.Command)
	}
	return artifact, nil
}

// ExecRunner runs an external VM binary as
//
//	Command Args... <artifact> <decimal argument>
//
// and returns its trimmed standard output.
type ExecRunner struct {
	Command string
	Args    []string
}

// Run writes bytecode to a temporary file and invokes the VM on it
func (r *ExecRunner) Run(ctx context.Context, bytecode []byte, arg *uint256.Int) ([]byte, error) {
	f, err := os.CreateTemp("", "trace-commit-*.jam")
	if err != nil {
		return nil, core.WrapError(core.ErrCodeExecution, err, "failed to stage bytecode")
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(bytecode); err != nil {
		f.Close()
		return nil, core.WrapError(core.ErrCodeExecution, err, "failed to stage bytecode")
	}
	if err := f.Close(); err != nil {
		return nil, core.WrapError(core.ErrCodeExecution, err, "failed to stage bytecode")
	}

	args := append(append([]string{}, r.Args...), f.Name(), arg.Dec())

	cmd := exec.CommandContext(ctx, r.Command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, core.WrapError(core.ErrCodeExecution, err,
			"%s failed: %s", r.Command, strings.TrimSpace(stderr.String()))
	}
	return bytes.TrimSpace(stdout.Bytes()), nil
}

// CrossCheckResult records one run of an external verifier on a proof root
type CrossCheckResult struct {
	Proof        Proof
	Argument     *uint256.Int
	BytecodeSize int
	Output       []byte
}

// CrossCheck compiles the verifier at entryPath and runs it with the proof
// root, read as an integer in the given byte order. Compiler failures wrap
// ErrCompilation and runner failures wrap ErrExecution.
func CrossCheck(ctx context.Context, compiler Compiler, runner Runner, entryPath, depsDir string,
	proof Proof, order ByteOrder) (*CrossCheckResult, error) {
	bytecode, err := compiler.Compile(ctx, entryPath, depsDir)
	if err != nil {
		return nil, asCode(core.ErrCodeCompilation, err, "compile %s", entryPath)
	}

	arg := proof.Uint256(order)
	output, err := runner.Run(ctx, bytecode, arg)
	if err != nil {
		return nil, asCode(core.ErrCodeExecution, err, "run verifier on %s", proof)
	}

	return &CrossCheckResult{
		Proof:        proof,
		Argument:     arg,
		BytecodeSize: len(bytecode),
		Output:       output,
	}, nil
}

// asCode keeps errors that already carry code and wraps the rest
func asCode(code core.ErrorCode, err error, format string, args ...any) error {
	var e *core.Error
	if errors.As(err, &e) && e.Code == code {
		return err
	}
	return core.WrapError(code, err, format, args...)
}

// String returns a one-line summary of the result
func (r *CrossCheckResult) String() string {
	return fmt.Sprintf("root=%s arg=%s bytecode=%dB output=%q",
		r.Proof, r.Argument.Dec(), r.BytecodeSize, r.Output)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/log"
	"github.com/vybium/vybium-trace-commit/pkg/tracecommit"
)

// errUsage is returned after flag parsing has already reported the problem
var errUsage = errors.New("usage")

type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    *log.Logger
}

func (e *env) logger() *log.Logger {
	if e.log == nil {
		e.log = log.NewWithWriter(e.stderr, slog.LevelInfo, false)
	}
	return e.log
}

// commonFlags are shared by every subcommand that runs the pipeline
type commonFlags struct {
	config   string
	trace    string
	logLevel string
	logJSON  bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "JSON configuration file (default: goldilocks, blake3, blowup 2)")
	fs.StringVar(&c.trace, "trace", "-", "trace JSON file, - for stdin")
	fs.StringVar(&c.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	fs.BoolVar(&c.logJSON, "log-json", false, "write logs as JSON")
}

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

// setup configures logging and loads the configuration
func (c *commonFlags) setup(e *env) (*tracecommit.Config, error) {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	e.log = log.NewWithWriter(e.stderr, level, c.logJSON)
	log.SetDefault(e.log)

	if c.config == "" {
		return tracecommit.DefaultConfig(), nil
	}
	return tracecommit.LoadConfig(c.config)
}

func (c *commonFlags) readTrace(e *env) ([]uint64, error) {
	var r io.Reader = e.stdin
	if c.trace != "-" {
		f, err := os.Open(c.trace)
		if err != nil {
			return nil, fmt.Errorf("failed to open trace: %w", err)
		}
		defer f.Close()
		r = f
	}

	var values []uint64
	if err := json.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("failed to parse trace: %w", err)
	}
	return values, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newProver(e *env, cfg *tracecommit.Config) (*tracecommit.Prover, error) {
	p, err := tracecommit.NewProver(cfg)
	if err != nil {
		return nil, err
	}
	return p.WithLogger(e.logger().Slog()), nil
}

func runProve(e *env, args []string) error {
	fs := newFlagSet(e, "prove")
	var common commonFlags
	common.register(fs)
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, err := common.setup(e)
	if err != nil {
		return err
	}
	values, err := common.readTrace(e)
	if err != nil {
		return err
	}

	prover, err := newProver(e, cfg)
	if err != nil {
		return err
	}
	trace, err := prover.NewTrace(values)
	if err != nil {
		return err
	}
	proof, err := prover.GenerateProof(trace)
	if err != nil {
		return fmt.Errorf("proof generation failed: %w", err)
	}

	e.logger().Info("proof generated", "n", len(values), "root", proof.Hex())
	return writeJSON(e.stdout, proof)
}

func runVerify(e *env, args []string) error {
	fs := newFlagSet(e, "verify")
	var common commonFlags
	common.register(fs)
	proofArg := fs.String("proof", "", "proof as hex, or a JSON file written by prove (required)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *proofArg == "" {
		fmt.Fprintln(e.stderr, "verify: -proof is required")
		return errUsage
	}

	cfg, err := common.setup(e)
	if err != nil {
		return err
	}
	proof, err := loadProof(*proofArg)
	if err != nil {
		return err
	}
	values, err := common.readTrace(e)
	if err != nil {
		return err
	}

	verifier, err := tracecommit.NewVerifier(cfg)
	if err != nil {
		return err
	}
	verifier = verifier.WithLogger(e.logger().Slog())

	trace, err := verifier.NewTrace(values)
	if err != nil {
		return err
	}
	if !verifier.VerifyProof(trace, proof) {
		return fmt.Errorf("%w: %s", errMismatch, proof)
	}
	e.logger().Info("proof verified", "n", len(values), "root", proof.Hex())
	fmt.Fprintln(e.stdout, "OK")
	return nil
}

// loadProof accepts either a hex root or the path of a JSON proof file
func loadProof(arg string) (tracecommit.Proof, error) {
	if proof, err := tracecommit.ParseProof(strings.TrimSpace(arg)); err == nil {
		return proof, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return tracecommit.Proof{}, fmt.Errorf("-proof is neither hex nor a readable file: %w", err)
	}
	var proof tracecommit.Proof
	if err := json.Unmarshal(data, &proof); err != nil {
		return tracecommit.Proof{}, err
	}
	return proof, nil
}

func runOpen(e *env, args []string) error {
	fs := newFlagSet(e, "open")
	var common commonFlags
	common.register(fs)
	index := fs.Int("index", 0, "LDE index to open")
	if err := parse(fs, args); err != nil {
		return err
	}

	cfg, err := common.setup(e)
	if err != nil {
		return err
	}
	values, err := common.readTrace(e)
	if err != nil {
		return err
	}

	prover, err := newProver(e, cfg)
	if err != nil {
		return err
	}
	trace, err := prover.NewTrace(values)
	if err != nil {
		return err
	}
	opening, proof, err := prover.Open(trace, *index)
	if err != nil {
		return fmt.Errorf("open failed: %w", err)
	}

	return writeJSON(e.stdout, struct {
		Root    tracecommit.Proof    `json:"proof"`
		Opening *tracecommit.Opening `json:"opening"`
	}{proof, opening})
}

// compilerFlags select the external compiler
type compilerFlags struct {
	command string
	args    string
	deps    string
}

func (c *compilerFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.command, "compiler", "hoonc", "compiler binary, invoked as <compiler> [args] <entry> <deps> <output>")
	fs.StringVar(&c.args, "compiler-args", "", "space-separated extra compiler arguments")
	fs.StringVar(&c.deps, "deps", "hoon", "dependency directory")
}

func (c *compilerFlags) compiler() *tracecommit.ExecCompiler {
	return &tracecommit.ExecCompiler{Command: c.command, Args: strings.Fields(c.args)}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runCompile(e *env, args []string) error {
	fs := newFlagSet(e, "compile")
	var cf compilerFlags
	cf.register(fs)
	output := fs.String("output", "", "artifact output path (default: compile only, write nothing)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(e.stderr, "compile: expected exactly one entry file")
		return errUsage
	}
	entry := fs.Arg(0)

	ctx, cancel := signalContext()
	defer cancel()

	artifact, err := cf.compiler().Compile(ctx, entry, cf.deps)
	if err != nil {
		return err
	}
	if *output != "" {
		if err := os.WriteFile(*output, artifact, 0o644); err != nil {
			return fmt.Errorf("failed to write artifact: %w", err)
		}
	}

	e.logger().Info("compiled", "entry", entry, "deps", cf.deps, "output", *output, "bytes", len(artifact))
	return nil
}

func runCrossCheck(e *env, args []string) error {
	fs := newFlagSet(e, "crosscheck")
	var common commonFlags
	common.register(fs)
	var cf compilerFlags
	cf.register(fs)
	vm := fs.String("vm", "nockvm", "VM binary, invoked as <vm> [args] <artifact> <argument>")
	vmArgs := fs.String("vm-args", "", "space-separated extra VM arguments")
	order := fs.String("order", "little", "byte order of the root argument: little|big")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(e.stderr, "crosscheck: expected exactly one verifier entry file")
		return errUsage
	}

	byteOrder := tracecommit.LittleEndian
	switch *order {
	case "little":
	case "big":
		byteOrder = tracecommit.BigEndian
	default:
		return fmt.Errorf("invalid -order %q", *order)
	}

	cfg, err := common.setup(e)
	if err != nil {
		return err
	}
	values, err := common.readTrace(e)
	if err != nil {
		return err
	}
	prover, err := newProver(e, cfg)
	if err != nil {
		return err
	}
	trace, err := prover.NewTrace(values)
	if err != nil {
		return err
	}
	proof, err := prover.GenerateProof(trace)
	if err != nil {
		return fmt.Errorf("proof generation failed: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	runner := &tracecommit.ExecRunner{Command: *vm, Args: strings.Fields(*vmArgs)}
	result, err := tracecommit.CrossCheck(ctx, cf.compiler(), runner, fs.Arg(0), cf.deps, proof, byteOrder)
	if err != nil {
		return err
	}

	e.logger().Info("cross-check complete", "root", proof.Hex(), "output", string(result.Output))
	return writeJSON(e.stdout, struct {
		Root     tracecommit.Proof `json:"proof"`
		Argument string            `json:"argument"`
		Output   string            `json:"output"`
	}{proof, result.Argument.Dec(), string(result.Output)})
}

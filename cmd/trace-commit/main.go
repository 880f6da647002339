package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const usageText = `usage: trace-commit <prove|verify|open|compile|crosscheck> [options]

Subcommands:
  prove       Commit to a trace and write {"root": "<hex>"} to stdout
  verify      Recompute the commitment of a trace and compare it with a proof
              Exit status 0 when the proof matches, 1 when it does not
  open        Commit to a trace and write the opening of one LDE point
  compile     Compile a verifier program with an external compiler
  crosscheck  Prove a trace, then run a compiled verifier on the root

Traces are JSON arrays of unsigned integers, read from -trace or stdin.
Run "trace-commit <subcommand> -h" for the options of each subcommand.`

// errMismatch signals a well-formed proof that does not match the trace
var errMismatch = errors.New("proof does not match trace")

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit status
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usageText)
		return 2
	}

	env := &env{stdin: stdin, stdout: stdout, stderr: stderr}

	var err error
	switch args[0] {
	case "prove":
		err = runProve(env, args[1:])
	case "verify":
		err = runVerify(env, args[1:])
	case "open":
		err = runOpen(env, args[1:])
	case "compile":
		err = runCompile(env, args[1:])
	case "crosscheck":
		err = runCrossCheck(env, args[1:])
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usageText)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown subcommand %q\n\n%s\n", args[0], usageText)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errMismatch):
		env.logger().Warn("verification failed", "err", err)
		return 1
	case errors.Is(err, errUsage):
		return 2
	default:
		env.logger().Error("command failed", "cmd", args[0], "err", err)
		return 1
	}
}

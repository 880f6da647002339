package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vybium/vybium-trace-commit/pkg/tracecommit"
)

const goldenRoot = "11fc57871c7b068eb8f7e122ff4b880a241369c956d1f86dadf1c24e81c57ef8"

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestProveCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "[0,1,2,3,4,5,6,7]", "prove")
	if code != 0 {
		t.Fatalf("prove exited %d: %s", code, stderr)
	}

	var out struct {
		Root string `json:"root"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("prove output is not JSON: %v (%q)", err, stdout)
	}
	if out.Root != goldenRoot {
		t.Errorf("root = %s, want %s", out.Root, goldenRoot)
	}
}

func TestProveInvalidTrace(t *testing.T) {
	code, _, stderr := runCLI(t, "[1,2,3]", "prove")
	if code != 1 {
		t.Errorf("Expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr, "invalid trace length") {
		t.Errorf("stderr should report the trace length: %q", stderr)
	}

	if code, _, _ := runCLI(t, "not json", "prove"); code != 1 {
		t.Errorf("Expected exit 1 for malformed trace, got %d", code)
	}
}

func TestNonCanonicalTraceRejected(t *testing.T) {
	// p, p+1 would otherwise alias 0, 1
	const aliased = "[18446744069414584321,18446744069414584322,2,3]"

	code, stdout, stderr := runCLI(t, aliased, "prove")
	if code != 1 || stdout != "" {
		t.Errorf("prove exited %d with %q", code, stdout)
	}
	if !strings.Contains(stderr, "invalid trace element") {
		t.Errorf("stderr should report the element: %q", stderr)
	}

	code, stdout, _ = runCLI(t, "[0,1,2,3]", "prove")
	if code != 0 {
		t.Fatalf("prove exited %d", code)
	}
	var proof tracecommit.Proof
	if err := json.Unmarshal([]byte(stdout), &proof); err != nil {
		t.Fatalf("prove output is not a proof: %v", err)
	}
	if code, stdout, _ := runCLI(t, aliased, "verify", "-proof", proof.Hex()); code != 1 || strings.Contains(stdout, "OK") {
		t.Errorf("aliased trace verified: exit %d", code)
	}

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	if err := os.WriteFile(configPath, []byte(`{"field": "stark101"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if code, _, _ := runCLI(t, "[3221225478,1]", "prove", "-config", configPath); code != 1 {
		t.Errorf("stark101 p+5 accepted, exit %d", code)
	}
}

func TestVerifyCommand(t *testing.T) {
	if code, stdout, stderr := runCLI(t, "[0,1,2,3,4,5,6,7]", "verify", "-proof", goldenRoot); code != 0 || !strings.Contains(stdout, "OK") {
		t.Errorf("verify exited %d: %s", code, stderr)
	}
	if code, _, _ := runCLI(t, "[0,1,2,3,4,6,6,7]", "verify", "-proof", goldenRoot); code != 1 {
		t.Errorf("Expected exit 1 for a mismatching trace, got %d", code)
	}
	if code, _, _ := runCLI(t, "[0,1,2,3,4,5,6,7]", "verify"); code != 2 {
		t.Errorf("Expected usage exit 2 without -proof, got %d", code)
	}
}

func TestProveVerifyFiles(t *testing.T) {
	dir := t.TempDir()
	tracePath := filepath.Join(dir, "trace.json")
	configPath := filepath.Join(dir, "config.json")
	proofPath := filepath.Join(dir, "proof.json")

	if err := os.WriteFile(tracePath, []byte("[9, 8, 7, 6]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte(`{"hash_function": "sha3", "field": "stark101"}`), 0o600); err != nil {
		t.Fatal(err)
	}

	code, stdout, stderr := runCLI(t, "", "prove", "-trace", tracePath, "-config", configPath)
	if code != 0 {
		t.Fatalf("prove exited %d: %s", code, stderr)
	}
	if err := os.WriteFile(proofPath, []byte(stdout), 0o600); err != nil {
		t.Fatal(err)
	}

	if code, _, stderr := runCLI(t, "", "verify", "-trace", tracePath, "-config", configPath, "-proof", proofPath); code != 0 {
		t.Errorf("verify with matching config exited %d: %s", code, stderr)
	}
	// the default configuration commits differently
	if code, _, _ := runCLI(t, "", "verify", "-trace", tracePath, "-proof", proofPath); code != 1 {
		t.Errorf("verify with default config should fail, got %d", code)
	}
}

func TestOpenCommand(t *testing.T) {
	code, stdout, stderr := runCLI(t, "[0,1,2,3,4,5,6,7]", "open", "-index", "3")
	if code != 0 {
		t.Fatalf("open exited %d: %s", code, stderr)
	}

	var out struct {
		Proof struct {
			Root string `json:"root"`
		} `json:"proof"`
		Opening struct {
			Index int               `json:"index"`
			Path  []json.RawMessage `json:"path"`
		} `json:"opening"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("open output is not JSON: %v", err)
	}
	if out.Proof.Root != goldenRoot || out.Opening.Index != 3 || len(out.Opening.Path) != 4 {
		t.Errorf("unexpected opening: %s", stdout)
	}

	code, _, stderr = runCLI(t, "[0,1,2,3,4,5,6,7]", "open", "-index", "16")
	if code != 1 {
		t.Errorf("Expected exit 1 for out-of-range index, got %d", code)
	}
	if !strings.Contains(stderr, "invalid opening index") {
		t.Errorf("stderr should report the opening index: %q", stderr)
	}
}

func TestCompileAndCrossCheck(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	entry := filepath.Join(dir, "verify.hoon")
	deps := filepath.Join(dir, "hoon")
	output := filepath.Join(dir, "out.jam")
	if err := os.WriteFile(entry, []byte("verifier"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(deps, 0o755); err != nil {
		t.Fatal(err)
	}

	// extra arguments are split on spaces, so the scripts live in files
	script := filepath.Join(dir, "compile.sh")
	if err := os.WriteFile(script, []byte("cp \"$1\" \"$3\"\n"), 0o700); err != nil {
		t.Fatal(err)
	}
	vmScript := filepath.Join(dir, "vm.sh")
	if err := os.WriteFile(vmScript, []byte("echo \"$(cat \"$1\") $2\"\n"), 0o700); err != nil {
		t.Fatal(err)
	}

	code, _, stderr := runCLI(t, "", "compile", "-compiler", sh, "-compiler-args", script, "-deps", deps, "-output", output, entry)
	if code != 0 {
		t.Fatalf("compile exited %d: %s", code, stderr)
	}
	if data, err := os.ReadFile(output); err != nil || string(data) != "verifier" {
		t.Errorf("artifact = %q, %v", data, err)
	}

	code, stdout, stderr := runCLI(t, "[0,1,2,3,4,5,6,7]", "crosscheck",
		"-compiler", sh, "-compiler-args", script, "-deps", deps,
		"-vm", sh, "-vm-args", vmScript, entry)
	if code != 0 {
		t.Fatalf("crosscheck exited %d: %s", code, stderr)
	}

	var out struct {
		Argument string `json:"argument"`
		Output   string `json:"output"`
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("crosscheck output is not JSON: %v", err)
	}
	if out.Output != "verifier "+out.Argument {
		t.Errorf("unexpected VM output %q for argument %s", out.Output, out.Argument)
	}

	// without -order the root is read little-endian
	proof, err := tracecommit.ParseProof(goldenRoot)
	if err != nil {
		t.Fatal(err)
	}
	if want := proof.Uint256(tracecommit.LittleEndian).Dec(); out.Argument != want {
		t.Errorf("default argument = %s, want little-endian %s", out.Argument, want)
	}

	code, stdout, stderr = runCLI(t, "[0,1,2,3,4,5,6,7]", "crosscheck",
		"-compiler", sh, "-compiler-args", script, "-deps", deps,
		"-vm", sh, "-vm-args", vmScript, "-order", "big", entry)
	if code != 0 {
		t.Fatalf("crosscheck -order big exited %d: %s", code, stderr)
	}
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		t.Fatalf("crosscheck output is not JSON: %v", err)
	}
	if want := proof.Uint256(tracecommit.BigEndian).Dec(); out.Argument != want {
		t.Errorf("-order big argument = %s, want %s", out.Argument, want)
	}

	if code, _, _ := runCLI(t, "", "compile", "-compiler", sh, "-compiler-args", script, "-deps", deps); code != 2 {
		t.Errorf("Expected usage exit 2 without entry, got %d", code)
	}
}

func TestCompileWithoutOutput(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	dir := t.TempDir()
	entry := filepath.Join(dir, "verify.hoon")
	deps := filepath.Join(dir, "hoon")
	script := filepath.Join(dir, "compile.sh")
	if err := os.WriteFile(entry, []byte("verifier"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(deps, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(script, []byte("cp \"$1\" \"$3\"\n"), 0o700); err != nil {
		t.Fatal(err)
	}

	work := t.TempDir()
	t.Chdir(work)

	code, _, stderr := runCLI(t, "", "compile", "-compiler", sh, "-compiler-args", script, "-deps", deps, entry)
	if code != 0 {
		t.Fatalf("compile exited %d: %s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(work, "out.jam")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("compile without -output wrote out.jam: %v", err)
	}
	entries, err := os.ReadDir(work)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("compile without -output left %d files in the working directory", len(entries))
	}
}

func TestUnknownSubcommand(t *testing.T) {
	if code, _, _ := runCLI(t, "", "frobnicate"); code != 2 {
		t.Errorf("Expected exit 2, got %d", code)
	}
	if code, _, _ := runCLI(t, ""); code != 2 {
		t.Errorf("Expected exit 2 without arguments, got %d", code)
	}
}

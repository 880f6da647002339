package tracecommit

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
)

func TestErrors(t *testing.T) {
	t.Run("MatchByCode", func(t *testing.T) {
		err := core.NewError(ErrCodeInvalidTraceLength, "trace length must be a power of two, got %d", 3)
		if !errors.Is(err, ErrInvalidTraceLength) {
			t.Error("error should match its sentinel")
		}
		if errors.Is(err, ErrCommitmentConstruction) {
			t.Error("error should not match another code")
		}
	})

	t.Run("Wrapping", func(t *testing.T) {
		cause := errors.New("exit status 1")
		err := fmt.Errorf("cross-check: %w", core.WrapError(ErrCodeCompilation, cause, "compile main.hoon"))

		if !errors.Is(err, ErrCompilation) {
			t.Error("wrapped error should match ErrCompilation")
		}
		if !errors.Is(err, cause) {
			t.Error("cause should be reachable through Unwrap")
		}

		var typed *Error
		if !errors.As(err, &typed) || typed.Code != ErrCodeCompilation {
			t.Errorf("errors.As should find the typed error, got %v", typed)
		}
	})

	t.Run("Messages", func(t *testing.T) {
		err := core.NewError(ErrCodeFieldInversion, "cannot invert zero")
		if !strings.Contains(err.Error(), "field inversion") || !strings.Contains(err.Error(), "cannot invert zero") {
			t.Errorf("unexpected message: %s", err)
		}
		if ErrInvalidProof.Error() == "" {
			t.Error("sentinel should have a message")
		}
	})
}

package tracecommit

import "github.com/vybium/vybium-trace-commit/internal/trace-commit/core"

// ErrorCode represents a trace commitment error code
type ErrorCode = core.ErrorCode

// Error is the typed error returned by every operation in this package.
// Errors are matched by code with errors.Is.
type Error = core.Error

// Error codes
const (
	ErrCodeUnknown                = core.ErrCodeUnknown
	ErrCodeInvalidTraceLength     = core.ErrCodeInvalidTraceLength
	ErrCodeCommitmentConstruction = core.ErrCodeCommitmentConstruction
	ErrCodeFieldInversion         = core.ErrCodeFieldInversion
	ErrCodeInvalidConfig          = core.ErrCodeInvalidConfig
	ErrCodeInvalidProof           = core.ErrCodeInvalidProof
	ErrCodeCompilation            = core.ErrCodeCompilation
	ErrCodeExecution              = core.ErrCodeExecution
	ErrCodeInvalidTraceElement    = core.ErrCodeInvalidTraceElement
	ErrCodeInvalidOpeningIndex    = core.ErrCodeInvalidOpeningIndex
)

// Sentinel errors for errors.Is
var (
	ErrInvalidTraceLength     = core.ErrInvalidTraceLength
	ErrCommitmentConstruction = core.ErrCommitmentConstruction
	ErrFieldInversion         = core.ErrFieldInversion
	ErrInvalidConfig          = core.ErrInvalidConfig
	ErrInvalidProof           = core.ErrInvalidProof
	ErrCompilation            = core.ErrCompilation
	ErrExecution              = core.ErrExecution
	ErrInvalidTraceElement    = core.ErrInvalidTraceElement
	ErrInvalidOpeningIndex    = core.ErrInvalidOpeningIndex
)

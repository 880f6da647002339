package core

import "fmt"

// ErrorCode identifies a class of trace commitment failure
type ErrorCode int

const (
	// ErrCodeUnknown represents an unknown error
	ErrCodeUnknown ErrorCode = iota

	// ErrCodeInvalidTraceLength is returned when a trace length is zero, not a
	// power of two, or larger than the field's two-adic subgroup
	ErrCodeInvalidTraceLength

	// ErrCodeCommitmentConstruction is returned when the Merkle tree cannot be
	// built over the extended evaluations
	ErrCodeCommitmentConstruction

	// ErrCodeFieldInversion is returned when an inverse of zero is requested
	ErrCodeFieldInversion

	// ErrCodeInvalidConfig represents an invalid configuration
	ErrCodeInvalidConfig

	// ErrCodeInvalidProof represents a malformed serialized proof
	ErrCodeInvalidProof

	// ErrCodeCompilation represents a failure of the external compiler
	ErrCodeCompilation

	// ErrCodeExecution represents a failure of the external bytecode runner
	ErrCodeExecution

	// ErrCodeInvalidTraceElement is returned when a trace holds nil or foreign-field elements
	ErrCodeInvalidTraceElement

	// ErrCodeInvalidOpeningIndex is returned when an opening is requested
	// outside the extended domain
	ErrCodeInvalidOpeningIndex
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:                "unknown",
	ErrCodeInvalidTraceLength:     "invalid trace length",
	ErrCodeCommitmentConstruction: "commitment construction",
	ErrCodeFieldInversion:         "field inversion",
	ErrCodeInvalidConfig:          "invalid config",
	ErrCodeInvalidProof:           "invalid proof",
	ErrCodeCompilation:            "compilation",
	ErrCodeExecution:              "execution",
	ErrCodeInvalidTraceElement:    "invalid trace element",
	ErrCodeInvalidOpeningIndex:    "invalid opening index",
}

// String returns the human readable name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Error is the error type returned by every stage of the commitment pipeline
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Sentinels for errors.Is matching. Only the code is compared.
var (
	ErrInvalidTraceLength     = &Error{Code: ErrCodeInvalidTraceLength}
	ErrCommitmentConstruction = &Error{Code: ErrCodeCommitmentConstruction}
	ErrFieldInversion         = &Error{Code: ErrCodeFieldInversion}
	ErrInvalidConfig          = &Error{Code: ErrCodeInvalidConfig}
	ErrInvalidProof           = &Error{Code: ErrCodeInvalidProof}
	ErrCompilation            = &Error{Code: ErrCodeCompilation}
	ErrExecution              = &Error{Code: ErrCodeExecution}
	ErrInvalidTraceElement    = &Error{Code: ErrCodeInvalidTraceElement}
	ErrInvalidOpeningIndex    = &Error{Code: ErrCodeInvalidOpeningIndex}
)

// NewError creates an error with the given code and formatted message
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an error with the given code that wraps cause
func WrapError(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Error returns the error message
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Code.String()
	}
	if e.Cause != nil {
		return fmt.Sprintf("trace-commit error [%s]: %s (caused by: %v)", e.Code, msg, e.Cause)
	}
	return fmt.Sprintf("trace-commit error [%s]: %s", e.Code, msg)
}

// Unwrap returns the cause of the error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target error
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

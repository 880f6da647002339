package protocols

import (
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
)

// Interpolate returns the polynomial of degree < n that takes trace[i] at g^i,
// where g is the primitive n-th root of unity of f and n = len(trace)
func Interpolate(f core.Field, trace Trace, method string) (*core.Polynomial, error) {
	if err := ValidateTraceLength(f, trace.Len()); err != nil {
		return nil, err
	}

	domain, err := NewArithmeticDomain(f, trace.Len())
	if err != nil {
		return nil, err
	}

	return domain.Interpolate(trace, method)
}

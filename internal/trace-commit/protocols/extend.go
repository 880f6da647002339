package protocols

import (
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
)

// Extend evaluates poly over the domain of (blowup * n)-th roots of unity, in
// domain order. The result is the low-degree extension of a length-n trace.
func Extend(poly *core.Polynomial, n, blowup int, method string, workers int) ([]core.Element, error) {
	f := poly.Field()
	if err := ValidateTraceLength(f, n); err != nil {
		return nil, err
	}

	domain, err := NewArithmeticDomain(f, n)
	if err != nil {
		return nil, err
	}
	extended, err := domain.Scale(blowup)
	if err != nil {
		return nil, core.WrapError(core.ErrCodeInvalidTraceLength, err,
			"cannot extend trace of length %d by %d", n, blowup)
	}

	return extended.Evaluate(poly, method, workers)
}

package protocols

import (
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/utils"
)

// Trace is an ordered single-column execution trace
type Trace []core.Element

// NewTrace lifts integer values into the field. Values must already be
// reduced: v >= p fails with ErrInvalidTraceElement instead of wrapping.
func NewTrace(f core.Field, values []uint64) (Trace, error) {
	for i, v := range values {
		if !f.Canonical(v) {
			return nil, core.NewError(core.ErrCodeInvalidTraceElement,
				"trace value %d at row %d is not a canonical element of %s", v, i, f.Name())
		}
	}
	return Trace(core.Elements(f, values)), nil
}

// Len returns the number of rows
func (t Trace) Len() int {
	return len(t)
}

// ValidateTraceLength rejects lengths that are zero, not a power of two, or
// beyond the largest power-of-two subgroup of the field
func ValidateTraceLength(f core.Field, n int) error {
	if !utils.IsPowerOfTwo(n) {
		return core.NewError(core.ErrCodeInvalidTraceLength,
			"trace length must be a power of two, got %d (pad to %d)", n, utils.NextPowerOfTwo(n))
	}
	if utils.Log2(n) > f.TwoAdicity() {
		return core.NewError(core.ErrCodeInvalidTraceLength,
			"trace length %d exceeds max root-of-unity order 2^%d of %s", n, f.TwoAdicity(), f.Name())
	}
	return nil
}

// ValidateElements rejects nil elements and elements of another field
func ValidateElements(f core.Field, t Trace) error {
	for i, e := range t {
		if !core.Belongs(f, e) {
			return core.NewError(core.ErrCodeInvalidTraceElement,
				"trace element %d is not an element of %s", i, f.Name())
		}
	}
	return nil
}

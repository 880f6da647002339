package protocols

import (
	"fmt"

	"github.com/vybium/vybium-trace-commit/internal/trace-commit/core"
	"github.com/vybium/vybium-trace-commit/internal/trace-commit/utils"
)

// ArithmeticDomain represents the multiplicative subgroup {generator^i : i = 0..length-1}
//
// All domains have power-of-2 lengths so that NTTs apply.
type ArithmeticDomain struct {
	Field core.Field

	// Generator is a primitive n-th root of unity where n = length
	Generator core.Element

	// Length is the number of elements in the domain (must be power of 2)
	Length int
}

// NewArithmeticDomain creates the domain of length-th roots of unity
func NewArithmeticDomain(f core.Field, length int) (*ArithmeticDomain, error) {
	if err := ValidateTraceLength(f, length); err != nil {
		return nil, err
	}

	generator, err := f.RootOfUnity(length)
	if err != nil {
		return nil, err
	}

	return &ArithmeticDomain{
		Field:     f,
		Generator: generator,
		Length:    length,
	}, nil
}

// Scale returns the domain factor times longer, built with the same generator rule
func (d *ArithmeticDomain) Scale(factor int) (*ArithmeticDomain, error) {
	if !utils.IsPowerOfTwo(factor) {
		return nil, fmt.Errorf("scale factor must be a power of 2, got %d", factor)
	}
	return NewArithmeticDomain(d.Field, d.Length*factor)
}

// Elements returns all elements in the domain in order: generator^0, generator^1, ...
func (d *ArithmeticDomain) Elements() []core.Element {
	elements := make([]core.Element, d.Length)
	current := d.Field.One()
	for i := 0; i < d.Length; i++ {
		elements[i] = current
		current = current.Mul(d.Generator)
	}
	return elements
}

// Evaluate evaluates a polynomial (in coefficient form) over the entire domain.
//
// With InterpolationNTT the coefficients are zero-padded and transformed; with
// InterpolationLagrange every point is evaluated directly, split across workers.
func (d *ArithmeticDomain) Evaluate(poly *core.Polynomial, method string, workers int) ([]core.Element, error) {
	if poly.Degree() >= d.Length {
		return nil, fmt.Errorf("polynomial of degree %d does not fit domain of length %d",
			poly.Degree(), d.Length)
	}

	if method == utils.InterpolationNTT {
		coeffs, err := poly.PaddedCoefficients(d.Length)
		if err != nil {
			return nil, err
		}
		return core.NTT(d.Field, coeffs, d.Generator)
	}

	points := d.Elements()
	values := make([]core.Element, d.Length)
	parallelFor(d.Length, workers, func(start, end int) {
		for i := start; i < end; i++ {
			values[i] = poly.Eval(points[i])
		}
	})
	return values, nil
}

// Interpolate returns the unique polynomial of degree < Length taking
// values[i] at generator^i
func (d *ArithmeticDomain) Interpolate(values []core.Element, method string) (*core.Polynomial, error) {
	if len(values) != d.Length {
		return nil, fmt.Errorf("got %d values for domain of length %d", len(values), d.Length)
	}

	if method == utils.InterpolationNTT {
		coeffs, err := core.INTT(d.Field, values, d.Generator)
		if err != nil {
			return nil, err
		}
		return core.NewPolynomial(d.Field, coeffs), nil
	}

	domainPoints := d.Elements()
	points := make([]core.Point, d.Length)
	for i := range domainPoints {
		points[i] = core.Point{X: domainPoints[i], Y: values[i]}
	}
	return core.LagrangeInterpolation(d.Field, points)
}

// String returns a human-readable representation
func (d *ArithmeticDomain) String() string {
	return fmt.Sprintf("Domain{field: %s, length: %d, generator: %v}",
		d.Field.Name(), d.Length, d.Generator)
}

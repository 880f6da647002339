package core

import (
	"fmt"
	"strings"
)

// Polynomial represents a polynomial with coefficients in a finite field,
// lowest degree first
type Polynomial struct {
	coefficients []Element
	field        Field
}

// NewPolynomial creates a new polynomial from field elements.
// Leading zero coefficients are dropped; the zero polynomial keeps a single zero.
func NewPolynomial(f Field, coefficients []Element) *Polynomial {
	end := len(coefficients)
	for end > 0 && coefficients[end-1].IsZero() {
		end--
	}

	trimmed := make([]Element, end)
	copy(trimmed, coefficients[:end])
	if len(trimmed) == 0 {
		trimmed = []Element{f.Zero()}
	}

	return &Polynomial{coefficients: trimmed, field: f}
}

// Degree returns the degree of the polynomial (0 for the zero polynomial)
func (p *Polynomial) Degree() int {
	return len(p.coefficients) - 1
}

// Field returns the field the polynomial is defined over
func (p *Polynomial) Field() Field {
	return p.field
}

// Coefficient returns the coefficient of the given degree
func (p *Polynomial) Coefficient(degree int) Element {
	if degree < 0 || degree >= len(p.coefficients) {
		return p.field.Zero()
	}
	return p.coefficients[degree]
}

// Coefficients returns a copy of the polynomial coefficients
func (p *Polynomial) Coefficients() []Element {
	coeffs := make([]Element, len(p.coefficients))
	copy(coeffs, p.coefficients)
	return coeffs
}

// PaddedCoefficients returns the coefficients zero-extended to length n
func (p *Polynomial) PaddedCoefficients(n int) ([]Element, error) {
	if n < len(p.coefficients) {
		return nil, fmt.Errorf("cannot pad %d coefficients to length %d", len(p.coefficients), n)
	}
	out := make([]Element, n)
	copy(out, p.coefficients)
	for i := len(p.coefficients); i < n; i++ {
		out[i] = p.field.Zero()
	}
	return out, nil
}

// Equal reports whether two polynomials have identical coefficient vectors
func (p *Polynomial) Equal(other *Polynomial) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if !p.coefficients[i].Equal(other.coefficients[i]) {
			return false
		}
	}
	return true
}

// Eval evaluates the polynomial at the given point (Horner's rule)
func (p *Polynomial) Eval(point Element) Element {
	result := p.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(p.coefficients[i])
	}
	return result
}

// String returns a string representation of the polynomial
func (p *Polynomial) String() string {
	var terms []string
	for i := p.Degree(); i >= 0; i-- {
		coeff := p.coefficients[i]
		if coeff.IsZero() {
			continue
		}

		var term string
		switch {
		case i == 0:
			term = coeff.String()
		case coeff.IsOne() && i == 1:
			term = "x"
		case i == 1:
			term = coeff.String() + "x"
		case coeff.IsOne():
			term = fmt.Sprintf("x^%d", i)
		default:
			term = fmt.Sprintf("%sx^%d", coeff.String(), i)
		}
		terms = append(terms, term)
	}

	if len(terms) == 0 {
		return "0"
	}
	return strings.Join(terms, " + ")
}

// Point represents a point for polynomial interpolation
type Point struct {
	X Element
	Y Element
}

// LagrangeInterpolation returns the unique polynomial of degree < len(points)
// through the given points.
//
// It builds Z(x) = prod (x - x_j) once and recovers each basis numerator
// Z(x) / (x - x_i) by synthetic division, so the cost is O(n^2).
func LagrangeInterpolation(f Field, points []Point) (*Polynomial, error) {
	n := len(points)
	if n == 0 {
		return nil, fmt.Errorf("need at least one point for interpolation")
	}

	// Z(x), n+1 coefficients, lowest degree first
	z := make([]Element, n+1)
	z[0] = f.One()
	for i := 1; i <= n; i++ {
		z[i] = f.Zero()
	}
	for j, pt := range points {
		// multiply the degree-j prefix by (x - x_j)
		for k := j + 1; k >= 1; k-- {
			z[k] = z[k-1].Sub(pt.X.Mul(z[k]))
		}
		z[0] = z[0].Mul(pt.X).Neg()
	}

	// prod_{j != i} (x_i - x_j) = Z'(x_i)
	derivative := make([]Element, n)
	for k := 1; k <= n; k++ {
		derivative[k-1] = z[k].Mul(f.NewElement(uint64(k)))
	}
	dz := NewPolynomial(f, derivative)

	denominators := make([]Element, n)
	for i, pt := range points {
		denominators[i] = dz.Eval(pt.X)
	}
	inverses, err := BatchInverse(denominators)
	if err != nil {
		return nil, WrapError(ErrCodeFieldInversion, err, "interpolation points are not distinct")
	}

	result := make([]Element, n)
	for i := range result {
		result[i] = f.Zero()
	}

	quotient := make([]Element, n)
	for i, pt := range points {
		// Z(x) / (x - x_i), highest coefficient first
		carry := f.Zero()
		for k := n; k >= 1; k-- {
			carry = z[k].Add(carry.Mul(pt.X))
			quotient[k-1] = carry
		}

		weight := pt.Y.Mul(inverses[i])
		for k := 0; k < n; k++ {
			result[k] = result[k].Add(quotient[k].Mul(weight))
		}
	}

	return NewPolynomial(f, result), nil
}

package core

import "fmt"

// Element represents an immutable element of a prime field.
//
// Arithmetic between elements of different fields panics, the same way
// mixing moduli is treated as a programming error elsewhere in this package.
type Element interface {
	Add(other Element) Element
	Sub(other Element) Element
	Mul(other Element) Element
	Neg() Element
	// Inverse fails with ErrFieldInversion for zero
	Inverse() (Element, error)
	Equal(other Element) bool
	IsZero() bool
	IsOne() bool
	// Bytes returns the canonical little-endian encoding, always ElementSize bytes long
	Bytes() []byte
	String() string
}

// Field is the arithmetic capability the commitment pipeline depends on.
// Backends only need to provide constants, element construction and
// power-of-two roots of unity.
type Field interface {
	Name() string
	Zero() Element
	One() Element
	NewElement(value uint64) Element
	// Canonical reports whether value is already reduced, i.e. value < p
	Canonical(value uint64) bool
	// ElementSize is the width in bytes of Element.Bytes
	ElementSize() int
	// TwoAdicity is the largest k such that 2^k divides p-1
	TwoAdicity() int
	// RootOfUnity returns a primitive n-th root of unity for a power of two n
	RootOfUnity(n int) (Element, error)
}

// Field names accepted by FieldByName
const (
	FieldGoldilocks = "goldilocks"
	FieldStark101   = "stark101"
)

// FieldByName returns the backend registered under name
func FieldByName(name string) (Field, error) {
	switch name {
	case FieldGoldilocks, "":
		return Goldilocks(), nil
	case FieldStark101:
		return Stark101(), nil
	default:
		return nil, NewError(ErrCodeInvalidConfig, "unknown field %q", name)
	}
}

// Belongs reports whether e is a non-nil element of f
func Belongs(f Field, e Element) bool {
	switch v := e.(type) {
	case goldilocksElement:
		_, ok := f.(goldilocksField)
		return ok
	case primeElement:
		pf, ok := f.(*PrimeField)
		return ok && pf != nil && pf.Equals(v.field)
	default:
		return false
	}
}

// Pow computes base^exp by square-and-multiply
func Pow(f Field, base Element, exp uint64) Element {
	result := f.One()
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		exp >>= 1
	}
	return result
}

// Elements lifts a slice of integers into the field
func Elements(f Field, values []uint64) []Element {
	out := make([]Element, len(values))
	for i, v := range values {
		out[i] = f.NewElement(v)
	}
	return out
}

// checkRootOrder validates n for RootOfUnity against the field's two-adicity
func checkRootOrder(f Field, n int) error {
	if n <= 0 || n&(n-1) != 0 {
		return NewError(ErrCodeInvalidTraceLength, "root of unity order %d is not a power of two", n)
	}
	if k := log2(n); k > f.TwoAdicity() {
		return NewError(ErrCodeInvalidTraceLength,
			"no root of unity of order 2^%d in %s (max 2^%d)", k, f.Name(), f.TwoAdicity())
	}
	return nil
}

func log2(n int) int {
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}

func mismatch(op string, a, b Field) string {
	return fmt.Sprintf("cannot %s elements from different fields (%s, %s)", op, a.Name(), b.Name())
}

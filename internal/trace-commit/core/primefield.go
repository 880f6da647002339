package core

import (
	"fmt"
	"math/big"
)

// PrimeField represents a prime field with arbitrary-precision modular arithmetic
type PrimeField struct {
	name       string
	modulus    *big.Int
	generator  *big.Int
	twoAdicity int
	size       int
}

// primeElement represents an element in a PrimeField
type primeElement struct {
	field *PrimeField
	value *big.Int
}

// NewPrimeField creates a prime field with the given modulus.
//
// generator must generate the multiplicative group (or at least its 2-Sylow
// subgroup) so that generator^((p-1)/n) has order n.
func NewPrimeField(name string, modulus *big.Int, generator uint64) (*PrimeField, error) {
	if modulus.Cmp(big.NewInt(2)) <= 0 {
		return nil, NewError(ErrCodeInvalidConfig, "modulus must be greater than 2")
	}
	if !modulus.ProbablyPrime(20) {
		return nil, NewError(ErrCodeInvalidConfig, "modulus %s is not prime", modulus)
	}
	g := new(big.Int).SetUint64(generator)
	if g.Sign() == 0 || g.Cmp(modulus) >= 0 {
		return nil, NewError(ErrCodeInvalidConfig, "generator %d out of range", generator)
	}
	pMinusOne := new(big.Int).Sub(modulus, big.NewInt(1))
	return &PrimeField{
		name:       name,
		modulus:    new(big.Int).Set(modulus),
		generator:  g,
		twoAdicity: int(pMinusOne.TrailingZeroBits()),
		size:       (modulus.BitLen() + 7) / 8,
	}, nil
}

// Stark101 returns the field p = 3 * 2^30 + 1 with generator 5
func Stark101() *PrimeField {
	f, err := NewPrimeField(FieldStark101, big.NewInt(3221225473), 5)
	if err != nil {
		panic(fmt.Sprintf("stark101 field: %v", err))
	}
	return f
}

// Modulus returns the field modulus
func (f *PrimeField) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

func (f *PrimeField) Name() string { return f.name }

func (f *PrimeField) ElementSize() int { return f.size }

func (f *PrimeField) TwoAdicity() int { return f.twoAdicity }

// NewBigElement creates a field element from a big.Int, reducing it modulo p
func (f *PrimeField) NewBigElement(value *big.Int) Element {
	return primeElement{field: f, value: new(big.Int).Mod(value, f.modulus)}
}

func (f *PrimeField) NewElement(value uint64) Element {
	return f.NewBigElement(new(big.Int).SetUint64(value))
}

func (f *PrimeField) Canonical(value uint64) bool {
	return new(big.Int).SetUint64(value).Cmp(f.modulus) < 0
}

func (f *PrimeField) Zero() Element { return f.NewElement(0) }

func (f *PrimeField) One() Element { return f.NewElement(1) }

// RootOfUnity returns generator^((p-1)/n)
func (f *PrimeField) RootOfUnity(n int) (Element, error) {
	if err := checkRootOrder(f, n); err != nil {
		return nil, err
	}
	exp := new(big.Int).Sub(f.modulus, big.NewInt(1))
	exp.Div(exp, big.NewInt(int64(n)))
	return primeElement{field: f, value: new(big.Int).Exp(f.generator, exp, f.modulus)}, nil
}

// Equals reports whether two fields share a modulus
func (f *PrimeField) Equals(other *PrimeField) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

func (fe primeElement) other(op string, other Element) primeElement {
	o, ok := other.(primeElement)
	if !ok || !fe.field.Equals(o.field) {
		var of Field = Goldilocks()
		if ok {
			of = o.field
		}
		panic(mismatch(op, fe.field, of))
	}
	return o
}

func (fe primeElement) Add(other Element) Element {
	o := fe.other("add", other)
	return fe.field.NewBigElement(new(big.Int).Add(fe.value, o.value))
}

func (fe primeElement) Sub(other Element) Element {
	o := fe.other("subtract", other)
	return fe.field.NewBigElement(new(big.Int).Sub(fe.value, o.value))
}

func (fe primeElement) Mul(other Element) Element {
	o := fe.other("multiply", other)
	return fe.field.NewBigElement(new(big.Int).Mul(fe.value, o.value))
}

func (fe primeElement) Neg() Element {
	return fe.field.NewBigElement(new(big.Int).Neg(fe.value))
}

// Inverse computes the multiplicative inverse
func (fe primeElement) Inverse() (Element, error) {
	if fe.value.Sign() == 0 {
		return nil, NewError(ErrCodeFieldInversion, "cannot compute inverse of zero")
	}
	inv := new(big.Int).ModInverse(fe.value, fe.field.modulus)
	if inv == nil {
		return nil, NewError(ErrCodeFieldInversion, "inverse of %s does not exist", fe.value)
	}
	return primeElement{field: fe.field, value: inv}, nil
}

func (fe primeElement) Equal(other Element) bool {
	o, ok := other.(primeElement)
	if !ok || !fe.field.Equals(o.field) {
		return false
	}
	return fe.value.Cmp(o.value) == 0
}

func (fe primeElement) IsZero() bool { return fe.value.Sign() == 0 }

func (fe primeElement) IsOne() bool { return fe.value.Cmp(big.NewInt(1)) == 0 }

// Big returns the value as a big.Int
func (fe primeElement) Big() *big.Int {
	return new(big.Int).Set(fe.value)
}

// Bytes returns the value little-endian, padded to the field's element size
func (fe primeElement) Bytes() []byte {
	buf := fe.value.FillBytes(make([]byte, fe.field.size))
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

func (fe primeElement) String() string {
	return fe.value.String()
}

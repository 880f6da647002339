package core

import (
	"encoding/binary"
	"strconv"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

const (
	goldilocksTwoAdicity = 32
	// 7 generates the multiplicative group of p = 2^64 - 2^32 + 1
	goldilocksGenerator = 7
)

type goldilocksField struct{}

type goldilocksElement struct {
	v field.Element
}

// Goldilocks returns the field p = 2^64 - 2^32 + 1 backed by vybium-crypto
func Goldilocks() Field {
	return goldilocksField{}
}

func (goldilocksField) Name() string { return FieldGoldilocks }

func (goldilocksField) Zero() Element { return goldilocksElement{v: field.Zero} }

func (goldilocksField) One() Element { return goldilocksElement{v: field.One} }

func (goldilocksField) NewElement(value uint64) Element {
	return goldilocksElement{v: field.New(value)}
}

func (goldilocksField) Canonical(value uint64) bool { return value < field.P }

func (goldilocksField) ElementSize() int { return 8 }

func (goldilocksField) TwoAdicity() int { return goldilocksTwoAdicity }

// RootOfUnity returns 7^((p-1)/n), which has order exactly n
func (f goldilocksField) RootOfUnity(n int) (Element, error) {
	if err := checkRootOrder(f, n); err != nil {
		return nil, err
	}
	return Pow(f, f.NewElement(goldilocksGenerator), (field.P-1)/uint64(n)), nil
}

func asGoldilocks(op string, other Element) goldilocksElement {
	o, ok := other.(goldilocksElement)
	if !ok {
		panic("cannot " + op + " goldilocks element with a foreign element")
	}
	return o
}

func (e goldilocksElement) Add(other Element) Element {
	return goldilocksElement{v: e.v.Add(asGoldilocks("add", other).v)}
}

func (e goldilocksElement) Sub(other Element) Element {
	return goldilocksElement{v: e.v.Sub(asGoldilocks("subtract", other).v)}
}

func (e goldilocksElement) Mul(other Element) Element {
	return goldilocksElement{v: e.v.Mul(asGoldilocks("multiply", other).v)}
}

func (e goldilocksElement) Neg() Element {
	return goldilocksElement{v: field.Zero.Sub(e.v)}
}

func (e goldilocksElement) Inverse() (Element, error) {
	if e.IsZero() {
		return nil, NewError(ErrCodeFieldInversion, "cannot compute inverse of zero")
	}
	return goldilocksElement{v: e.v.Inverse()}, nil
}

func (e goldilocksElement) Equal(other Element) bool {
	o, ok := other.(goldilocksElement)
	return ok && e.v.Value() == o.v.Value()
}

func (e goldilocksElement) IsZero() bool { return e.v.Value() == 0 }

func (e goldilocksElement) IsOne() bool { return e.v.Value() == 1 }

func (e goldilocksElement) Bytes() []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, e.v.Value())
	return buf
}

func (e goldilocksElement) String() string {
	return strconv.FormatUint(e.v.Value(), 10)
}

package core

// BatchInverse inverts every element using a single field inversion
// (Montgomery's trick). A zero element fails with ErrFieldInversion.
//
// For elements a, b, c: (abc)^-1 * ab = c^-1
func BatchInverse(elements []Element) ([]Element, error) {
	n := len(elements)
	if n == 0 {
		return []Element{}, nil
	}

	for i, e := range elements {
		if e.IsZero() {
			return nil, NewError(ErrCodeFieldInversion, "cannot invert zero element at index %d", i)
		}
	}

	// acc[i] = elements[0] * ... * elements[i]
	acc := make([]Element, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Mul(elements[i])
	}

	accInv, err := acc[n-1].Inverse()
	if err != nil {
		return nil, err
	}

	results := make([]Element, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv

	return results, nil
}

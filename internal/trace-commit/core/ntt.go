package core

// NTT evaluates the polynomial with the given coefficients at
// omega^0, ..., omega^(n-1), where n = len(coeffs) is a power of two and
// omega is a primitive n-th root of unity.
func NTT(f Field, coeffs []Element, omega Element) ([]Element, error) {
	n := len(coeffs)
	if n == 0 || n&(n-1) != 0 {
		return nil, NewError(ErrCodeInvalidTraceLength, "NTT length must be a power of two, got %d", n)
	}

	out := make([]Element, n)
	copy(out, coeffs)
	bitReverse(out)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		step := Pow(f, omega, uint64(n/size))
		for start := 0; start < n; start += size {
			w := f.One()
			for k := 0; k < half; k++ {
				u := out[start+k]
				v := out[start+k+half].Mul(w)
				out[start+k] = u.Add(v)
				out[start+k+half] = u.Sub(v)
				w = w.Mul(step)
			}
		}
	}

	return out, nil
}

// INTT recovers coefficients from evaluations at omega^0, ..., omega^(n-1)
func INTT(f Field, values []Element, omega Element) ([]Element, error) {
	omegaInv, err := omega.Inverse()
	if err != nil {
		return nil, err
	}
	coeffs, err := NTT(f, values, omegaInv)
	if err != nil {
		return nil, err
	}

	nInv, err := f.NewElement(uint64(len(values))).Inverse()
	if err != nil {
		return nil, err
	}
	for i := range coeffs {
		coeffs[i] = coeffs[i].Mul(nInv)
	}
	return coeffs, nil
}

func bitReverse(values []Element) {
	n := len(values)
	j := 0
	for i := 1; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			values[i], values[j] = values[j], values[i]
		}
	}
}

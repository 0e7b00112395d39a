package numeric

// Pow returns base raised to the exp-th power using exponentiation by
// squaring. It performs at most 2*log2(exp) multiplications and never
// recurses.
//
// Pow(base, 0) == 1 for every base, including 0. 0^0 is mathematically
// undefined; defining it as 1 here is deliberate and matches the usual
// convention for the empty product.
//
// Overflow is not detected: for fixed-width integers the intermediate
// products wrap per Go's two's complement semantics. Use CheckedPow when
// overflow must be caught.
func Pow[T Real](base T, exp uint) T {
	if exp == 0 {
		return 1
	}

	// Square through the trailing zero bits without touching the
	// accumulator.
	for exp&1 == 0 {
		base *= base
		exp >>= 1
	}
	if exp == 1 {
		return base
	}

	acc := base
	for exp > 1 {
		exp >>= 1
		base *= base
		if exp&1 == 1 {
			acc *= base
		}
	}
	return acc
}

// PowOf is Pow for method-based multiplicative types. The same
// square-and-multiply loop runs over any type providing One and Mul,
// e.g. Wrapping.
//
// PowOf(base, 0) returns base.One() for every base.
func PowOf[T Multiplicative[T]](base T, exp uint) T {
	if exp == 0 {
		return base.One()
	}

	for exp&1 == 0 {
		base = base.Mul(base)
		exp >>= 1
	}
	if exp == 1 {
		return base
	}

	acc := base
	for exp > 1 {
		exp >>= 1
		base = base.Mul(base)
		if exp&1 == 1 {
			acc = acc.Mul(base)
		}
	}
	return acc
}

// CheckedPow returns base raised to the exp-th power, reporting ok=false
// as soon as any intermediate or final multiplication overflows T.
//
// CheckedPow(base, 0) always succeeds and returns 1, mirroring Pow.
func CheckedPow[T Integer](base T, exp uint) (T, bool) {
	if exp == 0 {
		return 1, true
	}

	var ok bool
	for exp&1 == 0 {
		if base, ok = CheckedMul(base, base); !ok {
			var zero T
			return zero, false
		}
		exp >>= 1
	}
	if exp == 1 {
		return base, true
	}

	acc := base
	for exp > 1 {
		exp >>= 1
		if base, ok = CheckedMul(base, base); !ok {
			var zero T
			return zero, false
		}
		if exp&1 == 1 {
			if acc, ok = CheckedMul(acc, base); !ok {
				var zero T
				return zero, false
			}
		}
	}
	return acc, true
}

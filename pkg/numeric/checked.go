package numeric

// CheckedAdd returns a+b, reporting ok=false if the sum overflows T.
func CheckedAdd[T Integer](a, b T) (T, bool) {
	var zero T
	c := a + b
	if (b > zero && c < a) || (b < zero && c > a) {
		return zero, false
	}
	return c, true
}

// CheckedSub returns a-b, reporting ok=false if the difference
// overflows T.
func CheckedSub[T Integer](a, b T) (T, bool) {
	var zero T
	c := a - b
	if (b > zero && c > a) || (b < zero && c < a) {
		return zero, false
	}
	return c, true
}

// CheckedMul returns a*b, reporting ok=false if the product overflows T.
func CheckedMul[T Integer](a, b T) (T, bool) {
	var zero T
	if a == zero || b == zero {
		return zero, true
	}
	// MinInt * -1 wraps back onto MinInt and would pass the division
	// check below, because MinInt / -1 wraps the same way.
	if b < zero && b+1 == zero && a < zero && -a == a {
		return zero, false
	}
	c := a * b
	if c/b != a {
		return zero, false
	}
	return c, true
}

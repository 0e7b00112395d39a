package numeric

// Wrapping wraps a fixed-width integer whose arithmetic intentionally
// wraps around on overflow. Go already defines integer overflow as two's
// complement wraparound; Wrapping exists so that call sites relying on
// that behavior say so explicitly instead of depending on it implicitly.
//
// Wrapping is an immutable value type: operations return a new value.
type Wrapping[T Integer] struct {
	V T
}

// Wrap returns v as a Wrapping value.
func Wrap[T Integer](v T) Wrapping[T] {
	return Wrapping[T]{V: v}
}

// One returns the multiplicative identity, satisfying Multiplicative.
func (Wrapping[T]) One() Wrapping[T] {
	return Wrapping[T]{V: 1}
}

// Mul returns the product, wrapping on overflow.
func (w Wrapping[T]) Mul(rhs Wrapping[T]) Wrapping[T] {
	return Wrapping[T]{V: w.V * rhs.V}
}

// Add returns the sum, wrapping on overflow.
func (w Wrapping[T]) Add(rhs Wrapping[T]) Wrapping[T] {
	return Wrapping[T]{V: w.V + rhs.V}
}

// Sub returns the difference, wrapping on overflow.
func (w Wrapping[T]) Sub(rhs Wrapping[T]) Wrapping[T] {
	return Wrapping[T]{V: w.V - rhs.V}
}

// Pow returns w raised to the exp-th power with wrapping multiplication.
func (w Wrapping[T]) Pow(exp uint) Wrapping[T] {
	return PowOf(w, exp)
}

package numeric

// Signed is the constraint for the built-in signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the constraint for the built-in unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is the constraint for all built-in fixed-width integer types.
type Integer interface {
	Signed | Unsigned
}

// Float is the constraint for the built-in floating-point types.
type Float interface {
	~float32 | ~float64
}

// Real is the constraint for all built-in numeric types with ordinary
// multiplication.
type Real interface {
	Integer | Float
}

// Multiplicative is the method-based counterpart of Real: any type that
// supplies a multiplicative identity and an associative multiplication
// can be raised to a power with PowOf.
type Multiplicative[T any] interface {
	// One returns the multiplicative identity.
	One() T

	// Mul returns the product of the receiver and rhs.
	Mul(rhs T) T
}

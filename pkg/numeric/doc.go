// Package numeric implements generic integer arithmetic helpers used
// throughout tempo-go: binary exponentiation, overflow-checked operations,
// and an explicit wrapping-arithmetic type.
//
// # Exponentiation
//
// Pow and CheckedPow compute base^exp by squaring, so an exponent of n
// costs at most 2*log2(n) multiplications. Pow(base, 0) is defined as 1
// for every base, including 0.
//
// # Checked Arithmetic
//
// The Checked* functions report overflow through a comma-ok result
// instead of wrapping silently. The only failure mode is overflow; a
// zero exponent or zero operand always succeeds.
//
// # Wrapping Arithmetic
//
// Go defines fixed-width integer overflow as two's complement wraparound,
// but most call sites don't want to rely on that implicitly. Wrapping
// makes the intent explicit at the type level and plugs into PowOf.
package numeric

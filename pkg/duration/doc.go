// Package duration implements a signed span of time with nanosecond
// precision, plus countdown timers driven by those spans.
//
// A Duration is a whole number of seconds and a fractional nanosecond
// part. Unlike time.Duration it is not limited to what fits in an int64
// of nanoseconds: the seconds field covers the full int64 range, about
// ±292 billion years.
//
// # Canonical Representation
//
// Every Duration produced by this package satisfies two invariants: the
// nanosecond magnitude is below one second, and the nanosecond sign
// matches the seconds sign (or is zero). New folds arbitrary nanosecond
// inputs into this form, so -0.5s is always (0, -500_000_000) and never
// (-1, +500_000_000).
//
// # Overflow Handling
//
// Each arithmetic operation comes in up to three flavors. Checked
// variants report overflow through a comma-ok result and never panic.
// Saturating variants clamp to Min or Max and never fail. The plain
// operator forms (Add, Sub, Mul, Div) panic on overflow; use them when
// overflow is a programming error.
//
// # Timers
//
// Manager arms named countdown timers whose spans are Durations. Timer
// replacement, cancellation, and expiry callbacks follow the usual
// last-writer-wins rules; see Manager for details.
package duration

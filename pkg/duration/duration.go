package duration

import (
	"math"
	"strconv"
	"strings"
	"time"

	num "github.com/shabbyrobe/go-num"

	"github.com/tempo-kit/tempo-go/pkg/numeric"
)

// Scale factors between the units this package exposes.
const (
	nanosPerSecond      = 1_000_000_000
	nanosPerMillisecond = 1_000_000
	nanosPerMicrosecond = 1_000
	microsPerSecond     = 1_000_000
	millisPerSecond     = 1_000
	secondsPerMinute    = 60
	secondsPerHour      = 3_600
	secondsPerDay       = 86_400
	secondsPerWeek      = 604_800
)

// Duration is a signed span of time with nanosecond precision.
//
// The value is a whole number of seconds plus a fractional nanosecond
// part whose sign always matches the seconds field. Duration is an
// immutable value type: arithmetic returns a new value, and two
// Durations are equal exactly when == says so.
type Duration struct {
	// Number of whole seconds.
	seconds int64

	// Nanoseconds within the second, |nanoseconds| < 1e9. The sign
	// always matches seconds (or is zero).
	nanoseconds int32
}

// Common spans and the representable limits.
var (
	// Zero is the zero-length duration.
	Zero = Duration{}

	// Nanosecond is a span of one nanosecond.
	Nanosecond = Duration{nanoseconds: 1}

	// Microsecond is a span of one microsecond.
	Microsecond = Duration{nanoseconds: nanosPerMicrosecond}

	// Millisecond is a span of one millisecond.
	Millisecond = Duration{nanoseconds: nanosPerMillisecond}

	// Second is a span of one second.
	Second = Duration{seconds: 1}

	// Minute is a span of one minute.
	Minute = Duration{seconds: secondsPerMinute}

	// Hour is a span of one hour.
	Hour = Duration{seconds: secondsPerHour}

	// Day is a span of 24 hours.
	Day = Duration{seconds: secondsPerDay}

	// Week is a span of seven days.
	Week = Duration{seconds: secondsPerWeek}

	// Min is the minimum representable duration. Adding any negative
	// duration to it overflows.
	Min = Duration{seconds: math.MinInt64, nanoseconds: -(nanosPerSecond - 1)}

	// Max is the maximum representable duration. Adding any positive
	// duration to it overflows.
	Max = Duration{seconds: math.MaxInt64, nanoseconds: nanosPerSecond - 1}
)

// New returns the duration of seconds plus nanoseconds. The nanosecond
// argument need not be pre-normalized: whole seconds are folded into the
// seconds field and sign mismatches are repaired, so New(1, 2_000_000_000)
// equals Seconds(3) and New(1, -500_000_000) equals Milliseconds(500).
//
// New panics if folding the nanosecond carry overflows the seconds
// field, which requires seconds within two of the int64 limits.
func New(seconds int64, nanoseconds int32) Duration {
	d, ok := tryNew(seconds, nanoseconds)
	if !ok {
		panic("duration: overflow constructing Duration")
	}
	return d
}

// tryNew is New with the overflow reported instead of panicking.
// Decoders use it so malformed wire input surfaces as an error.
func tryNew(seconds int64, nanoseconds int32) (Duration, bool) {
	seconds, ok := numeric.CheckedAdd(seconds, int64(nanoseconds)/nanosPerSecond)
	if !ok {
		return Duration{}, false
	}
	nanoseconds %= nanosPerSecond
	if seconds > 0 && nanoseconds < 0 {
		seconds--
		nanoseconds += nanosPerSecond
	} else if seconds < 0 && nanoseconds > 0 {
		seconds++
		nanoseconds -= nanosPerSecond
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}, true
}

// carryNanos applies the carry/borrow and sign-repair rules shared by
// addition and subtraction. nanoseconds must already be within one
// second of the canonical range, which holds for any sum or difference
// of two canonical fractional parts.
func carryNanos(seconds int64, nanoseconds int32) (int64, int32, bool) {
	var ok bool
	if nanoseconds >= nanosPerSecond || (seconds < 0 && nanoseconds > 0) {
		nanoseconds -= nanosPerSecond
		if seconds, ok = numeric.CheckedAdd(seconds, 1); !ok {
			return 0, 0, false
		}
	} else if nanoseconds <= -nanosPerSecond || (seconds > 0 && nanoseconds < 0) {
		nanoseconds += nanosPerSecond
		if seconds, ok = numeric.CheckedSub(seconds, 1); !ok {
			return 0, 0, false
		}
	}
	return seconds, nanoseconds, true
}

// Seconds returns a duration of the given whole seconds.
func Seconds(seconds int64) Duration {
	return Duration{seconds: seconds}
}

// Minutes returns a duration of the given minutes.
// It panics if minutes*60 overflows.
func Minutes(minutes int64) Duration {
	return scaledSeconds(minutes, secondsPerMinute)
}

// Hours returns a duration of the given hours.
// It panics if hours*3600 overflows.
func Hours(hours int64) Duration {
	return scaledSeconds(hours, secondsPerHour)
}

// Days returns a duration of the given 24-hour days.
// It panics if days*86400 overflows.
func Days(days int64) Duration {
	return scaledSeconds(days, secondsPerDay)
}

// Weeks returns a duration of the given seven-day weeks.
// It panics if weeks*604800 overflows.
func Weeks(weeks int64) Duration {
	return scaledSeconds(weeks, secondsPerWeek)
}

func scaledSeconds(v, scale int64) Duration {
	seconds, ok := numeric.CheckedMul(v, scale)
	if !ok {
		panic("duration: overflow constructing Duration")
	}
	return Duration{seconds: seconds}
}

// Milliseconds returns a duration of the given milliseconds.
func Milliseconds(milliseconds int64) Duration {
	return Duration{
		seconds:     milliseconds / millisPerSecond,
		nanoseconds: int32(milliseconds%millisPerSecond) * nanosPerMillisecond,
	}
}

// Microseconds returns a duration of the given microseconds.
func Microseconds(microseconds int64) Duration {
	return Duration{
		seconds:     microseconds / microsPerSecond,
		nanoseconds: int32(microseconds%microsPerSecond) * nanosPerMicrosecond,
	}
}

// Nanoseconds returns a duration of the given nanoseconds.
func Nanoseconds(nanoseconds int64) Duration {
	return Duration{
		seconds:     nanoseconds / nanosPerSecond,
		nanoseconds: int32(nanoseconds % nanosPerSecond),
	}
}

// SecondsFloat returns a duration of the given fractional seconds,
// rounded to the nearest nanosecond. It panics on NaN or when the value
// does not fit; use CheckedSecondsFloat or SaturatingSecondsFloat for
// untrusted input.
func SecondsFloat(seconds float64) Duration {
	d, ok := CheckedSecondsFloat(seconds)
	if !ok {
		panic("duration: invalid float seconds")
	}
	return d
}

// CheckedSecondsFloat is SecondsFloat reporting NaN and out-of-range
// input as ok=false.
func CheckedSecondsFloat(seconds float64) (Duration, bool) {
	if math.IsNaN(seconds) {
		return Duration{}, false
	}
	// float64(math.MaxInt64) rounds up to 2^63, so >= excludes
	// everything above the representable seconds.
	if seconds >= float64(math.MaxInt64) || seconds < float64(math.MinInt64) {
		return Duration{}, false
	}
	whole, frac := math.Modf(seconds)
	s, n, ok := carryNanos(int64(whole), int32(math.Round(frac*nanosPerSecond)))
	if !ok {
		return Duration{}, false
	}
	return Duration{seconds: s, nanoseconds: n}, true
}

// SaturatingSecondsFloat is SecondsFloat with out-of-range values
// clamped to Min or Max and NaN mapped to Zero.
func SaturatingSecondsFloat(seconds float64) Duration {
	if math.IsNaN(seconds) {
		return Zero
	}
	d, ok := CheckedSecondsFloat(seconds)
	if !ok {
		if seconds < 0 {
			return Min
		}
		return Max
	}
	return d
}

// IsZero reports whether the duration is exactly zero.
func (d Duration) IsZero() bool {
	return d.seconds == 0 && d.nanoseconds == 0
}

// IsNegative reports whether the duration is below zero.
func (d Duration) IsNegative() bool {
	return d.seconds < 0 || d.nanoseconds < 0
}

// IsPositive reports whether the duration is above zero.
func (d Duration) IsPositive() bool {
	return d.seconds > 0 || d.nanoseconds > 0
}

// Abs returns the absolute value of the duration. The fields saturate
// independently: when negating the seconds field would overflow it
// pins at the int64 maximum while the fractional part still negates
// exactly, so only Min itself maps to Max.
func (d Duration) Abs() Duration {
	seconds, nanoseconds := d.seconds, d.nanoseconds
	if seconds == math.MinInt64 {
		seconds = math.MaxInt64
	} else if seconds < 0 {
		seconds = -seconds
	}
	if nanoseconds < 0 {
		nanoseconds = -nanoseconds
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}
}

// Neg returns the negated duration. Like int64 negation, negating Min
// wraps.
func (d Duration) Neg() Duration {
	return Duration{seconds: -d.seconds, nanoseconds: -d.nanoseconds}
}

// WholeWeeks returns the number of whole weeks in the duration.
func (d Duration) WholeWeeks() int64 {
	return d.seconds / secondsPerWeek
}

// WholeDays returns the number of whole 24-hour days in the duration.
func (d Duration) WholeDays() int64 {
	return d.seconds / secondsPerDay
}

// WholeHours returns the number of whole hours in the duration.
func (d Duration) WholeHours() int64 {
	return d.seconds / secondsPerHour
}

// WholeMinutes returns the number of whole minutes in the duration.
func (d Duration) WholeMinutes() int64 {
	return d.seconds / secondsPerMinute
}

// WholeSeconds returns the number of whole seconds in the duration.
func (d Duration) WholeSeconds() int64 {
	return d.seconds
}

// AsSecondsFloat returns the duration as fractional seconds.
func (d Duration) AsSecondsFloat() float64 {
	return float64(d.seconds) + float64(d.nanoseconds)/nanosPerSecond
}

// WholeMilliseconds returns the total number of whole milliseconds.
// The full range needs more than 64 bits, hence the 128-bit result.
func (d Duration) WholeMilliseconds() num.I128 {
	return num.I128From64(d.seconds).
		Mul(num.I128From64(millisPerSecond)).
		Add(num.I128From64(int64(d.nanoseconds) / nanosPerMillisecond))
}

// SubsecMilliseconds returns the milliseconds past the whole seconds,
// always in (-1000, 1000).
func (d Duration) SubsecMilliseconds() int16 {
	return int16(d.nanoseconds / nanosPerMillisecond)
}

// WholeMicroseconds returns the total number of whole microseconds.
func (d Duration) WholeMicroseconds() num.I128 {
	return num.I128From64(d.seconds).
		Mul(num.I128From64(microsPerSecond)).
		Add(num.I128From64(int64(d.nanoseconds) / nanosPerMicrosecond))
}

// SubsecMicroseconds returns the microseconds past the whole seconds,
// always in (-1e6, 1e6).
func (d Duration) SubsecMicroseconds() int32 {
	return d.nanoseconds / nanosPerMicrosecond
}

// WholeNanoseconds returns the total number of nanoseconds.
func (d Duration) WholeNanoseconds() num.I128 {
	return num.I128From64(d.seconds).
		Mul(num.I128From64(nanosPerSecond)).
		Add(num.I128From64(int64(d.nanoseconds)))
}

// SubsecNanoseconds returns the nanoseconds past the whole seconds,
// always in (-1e9, 1e9).
func (d Duration) SubsecNanoseconds() int32 {
	return d.nanoseconds
}

// CheckedAdd returns d+rhs, reporting ok=false on overflow.
func (d Duration) CheckedAdd(rhs Duration) (Duration, bool) {
	seconds, ok := numeric.CheckedAdd(d.seconds, rhs.seconds)
	if !ok {
		return Duration{}, false
	}
	seconds, nanoseconds, ok := carryNanos(seconds, d.nanoseconds+rhs.nanoseconds)
	if !ok {
		return Duration{}, false
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}, true
}

// CheckedSub returns d-rhs, reporting ok=false on overflow.
func (d Duration) CheckedSub(rhs Duration) (Duration, bool) {
	seconds, ok := numeric.CheckedSub(d.seconds, rhs.seconds)
	if !ok {
		return Duration{}, false
	}
	seconds, nanoseconds, ok := carryNanos(seconds, d.nanoseconds-rhs.nanoseconds)
	if !ok {
		return Duration{}, false
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}, true
}

// CheckedMul returns d*rhs, reporting ok=false on overflow.
func (d Duration) CheckedMul(rhs int32) (Duration, bool) {
	// The nanosecond multiply runs in 64 bits so it cannot itself
	// overflow; only the seconds multiply and the carry add can.
	totalNanos := int64(d.nanoseconds) * int64(rhs)
	extraSecs := totalNanos / nanosPerSecond
	nanoseconds := int32(totalNanos % nanosPerSecond)
	seconds, ok := numeric.CheckedMul(d.seconds, int64(rhs))
	if !ok {
		return Duration{}, false
	}
	seconds, ok = numeric.CheckedAdd(seconds, extraSecs)
	if !ok {
		return Duration{}, false
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}, true
}

// CheckedDiv returns d/rhs, reporting ok=false when rhs is zero or the
// quotient overflows.
func (d Duration) CheckedDiv(rhs int32) (Duration, bool) {
	if rhs == 0 {
		return Duration{}, false
	}
	if d.seconds == math.MinInt64 && rhs == -1 {
		return Duration{}, false
	}
	seconds := d.seconds / int64(rhs)
	// The remainder becomes extra nanoseconds; |remainder| < |rhs| keeps
	// the intermediate product well inside int64.
	remainder := d.seconds - seconds*int64(rhs)
	extraNanos := remainder * nanosPerSecond / int64(rhs)
	nanoseconds := d.nanoseconds/rhs + int32(extraNanos)
	return Duration{seconds: seconds, nanoseconds: nanoseconds}, true
}

// SaturatingAdd returns d+rhs, clamping to Min or Max on overflow. The
// clamp direction on a seconds overflow follows the sign of d.
func (d Duration) SaturatingAdd(rhs Duration) Duration {
	seconds, ok := numeric.CheckedAdd(d.seconds, rhs.seconds)
	if !ok {
		if d.seconds > 0 {
			return Max
		}
		return Min
	}
	nanoseconds := d.nanoseconds + rhs.nanoseconds
	if nanoseconds >= nanosPerSecond || (seconds < 0 && nanoseconds > 0) {
		nanoseconds -= nanosPerSecond
		if seconds, ok = numeric.CheckedAdd(seconds, 1); !ok {
			return Max
		}
	} else if nanoseconds <= -nanosPerSecond || (seconds > 0 && nanoseconds < 0) {
		nanoseconds += nanosPerSecond
		if seconds, ok = numeric.CheckedSub(seconds, 1); !ok {
			return Min
		}
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}
}

// SaturatingSub returns d-rhs, clamping to Min or Max on overflow. The
// clamp direction on a seconds overflow follows the sign of d.
func (d Duration) SaturatingSub(rhs Duration) Duration {
	seconds, ok := numeric.CheckedSub(d.seconds, rhs.seconds)
	if !ok {
		if d.seconds > 0 {
			return Max
		}
		return Min
	}
	nanoseconds := d.nanoseconds - rhs.nanoseconds
	if nanoseconds >= nanosPerSecond || (seconds < 0 && nanoseconds > 0) {
		nanoseconds -= nanosPerSecond
		if seconds, ok = numeric.CheckedAdd(seconds, 1); !ok {
			return Max
		}
	} else if nanoseconds <= -nanosPerSecond || (seconds > 0 && nanoseconds < 0) {
		nanoseconds += nanosPerSecond
		if seconds, ok = numeric.CheckedSub(seconds, 1); !ok {
			return Min
		}
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}
}

// SaturatingMul returns d*rhs, clamping to Min or Max on overflow. When
// the seconds multiply overflows, the clamp is Max exactly when d and
// rhs have the same sign; when only the carry add overflows, the clamp
// is Max exactly when both are positive.
func (d Duration) SaturatingMul(rhs int32) Duration {
	totalNanos := int64(d.nanoseconds) * int64(rhs)
	extraSecs := totalNanos / nanosPerSecond
	nanoseconds := int32(totalNanos % nanosPerSecond)
	seconds, ok := numeric.CheckedMul(d.seconds, int64(rhs))
	if !ok {
		if (d.seconds > 0 && rhs > 0) || (d.seconds < 0 && rhs < 0) {
			return Max
		}
		return Min
	}
	seconds, ok = numeric.CheckedAdd(seconds, extraSecs)
	if !ok {
		if d.seconds > 0 && rhs > 0 {
			return Max
		}
		return Min
	}
	return Duration{seconds: seconds, nanoseconds: nanoseconds}
}

// Add returns d+rhs and panics on overflow.
func (d Duration) Add(rhs Duration) Duration {
	sum, ok := d.CheckedAdd(rhs)
	if !ok {
		panic("overflow when adding durations")
	}
	return sum
}

// Sub returns d-rhs and panics on overflow.
func (d Duration) Sub(rhs Duration) Duration {
	diff, ok := d.CheckedSub(rhs)
	if !ok {
		panic("overflow when subtracting durations")
	}
	return diff
}

// Mul returns d*rhs and panics on overflow.
func (d Duration) Mul(rhs int32) Duration {
	product, ok := d.CheckedMul(rhs)
	if !ok {
		panic("overflow when multiplying duration")
	}
	return product
}

// Div returns d/rhs and panics when rhs is zero or the quotient
// overflows.
func (d Duration) Div(rhs int32) Duration {
	quotient, ok := d.CheckedDiv(rhs)
	if !ok {
		panic("overflow or division by zero when dividing duration")
	}
	return quotient
}

// DivDuration returns the ratio d/rhs as a float64.
func (d Duration) DivDuration(rhs Duration) float64 {
	return d.AsSecondsFloat() / rhs.AsSecondsFloat()
}

// Cmp compares two durations, returning -1, 0, or +1. The canonical
// representation makes the field-wise comparison total.
func (d Duration) Cmp(rhs Duration) int {
	switch {
	case d.seconds < rhs.seconds:
		return -1
	case d.seconds > rhs.seconds:
		return 1
	case d.nanoseconds < rhs.nanoseconds:
		return -1
	case d.nanoseconds > rhs.nanoseconds:
		return 1
	default:
		return 0
	}
}

// FromStd converts a time.Duration. Every time.Duration fits, so the
// conversion cannot fail.
func FromStd(d time.Duration) Duration {
	return Duration{
		seconds:     int64(d) / nanosPerSecond,
		nanoseconds: int32(int64(d) % nanosPerSecond),
	}
}

// Std converts to time.Duration, reporting ok=false when the value does
// not fit in int64 nanoseconds.
func (d Duration) Std() (time.Duration, bool) {
	totalNanos, ok := numeric.CheckedMul(d.seconds, int64(nanosPerSecond))
	if !ok {
		return 0, false
	}
	totalNanos, ok = numeric.CheckedAdd(totalNanos, int64(d.nanoseconds))
	if !ok {
		return 0, false
	}
	return time.Duration(totalNanos), true
}

// Sum adds the given durations, panicking on overflow like Add.
func Sum(spans ...Duration) Duration {
	total := Zero
	for _, s := range spans {
		total = total.Add(s)
	}
	return total
}

// Measure runs f and returns how long it took.
func Measure(f func()) Duration {
	start := time.Now()
	f()
	return FromStd(time.Since(start))
}

// String renders the duration as a run of unit values, largest first:
// "1d2h3m4s5ms6µs7ns", with zero-valued units omitted and a leading "-"
// for negative spans. The zero duration is "0s". The format is for
// display; it is not parsed back. For the purposes of this rendering a
// day is exactly 24 hours and a minute exactly 60 seconds.
func (d Duration) String() string {
	if d.IsZero() {
		return "0s"
	}

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}

	seconds := uint64(d.seconds)
	if d.seconds < 0 {
		seconds = -seconds
	}
	nanoseconds := uint32(d.nanoseconds)
	if d.nanoseconds < 0 {
		nanoseconds = -nanoseconds
	}

	writeUnit(&b, seconds/secondsPerDay, "d")
	writeUnit(&b, seconds/secondsPerHour%24, "h")
	writeUnit(&b, seconds/secondsPerMinute%60, "m")
	writeUnit(&b, seconds%secondsPerMinute, "s")
	writeUnit(&b, uint64(nanoseconds/nanosPerMillisecond), "ms")
	writeUnit(&b, uint64(nanoseconds/nanosPerMicrosecond%1000), "µs")
	writeUnit(&b, uint64(nanoseconds%nanosPerMicrosecond), "ns")
	return b.String()
}

func writeUnit(b *strings.Builder, value uint64, unit string) {
	if value == 0 {
		return
	}
	b.WriteString(strconv.FormatUint(value, 10))
	b.WriteString(unit)
}

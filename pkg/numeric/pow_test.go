package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowSmallBases(t *testing.T) {
	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"2^4", int64(Pow(int8(2), 4)), 16},
		{"6^3", int64(Pow(uint8(6), 3)), 216},
		{"0^0", int64(Pow(uint8(0), 0)), 1},
		{"0^5", int64(Pow(uint8(0), 5)), 0},
		{"1^100", int64(Pow(uint8(1), 100)), 1},
		{"3^0", int64(Pow(int32(3), 0)), 1},
		{"10^9", Pow(int64(10), 9), 1_000_000_000},
		{"-2^3", int64(Pow(int16(-2), 3)), -8},
		{"-2^4", int64(Pow(int16(-2), 4)), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %d, want %d", tt.got, tt.want)
			}
		})
	}
}

func TestPowIdentity(t *testing.T) {
	for base := int32(-10); base <= 10; base++ {
		if got := Pow(base, 1); got != base {
			t.Errorf("Pow(%d, 1) = %d, want %d", base, got, base)
		}
		if got := Pow(base, 0); got != 1 {
			t.Errorf("Pow(%d, 0) = %d, want 1", base, got)
		}
	}
}

func TestPowExponentLaw(t *testing.T) {
	// base^(m+n) == base^m * base^n whenever nothing overflows.
	for base := int64(1); base <= 5; base++ {
		for m := uint(0); m <= 6; m++ {
			for n := uint(0); n <= 6; n++ {
				combined := Pow(base, m+n)
				split := Pow(base, m) * Pow(base, n)
				if combined != split {
					t.Errorf("Pow(%d, %d+%d) = %d, product of parts = %d",
						base, m, n, combined, split)
				}
			}
		}
	}
}

func TestPowFloat(t *testing.T) {
	assert.InDelta(t, 0.25, Pow(0.5, 2), 1e-12)
	assert.InDelta(t, 1024.0, Pow(2.0, 10), 1e-9)
	assert.Equal(t, 1.0, Pow(0.0, 0))
}

func TestPowWrapsOnOverflow(t *testing.T) {
	// Unchecked Pow wraps per Go's two's complement semantics.
	want := uint8(1)
	for i := 0; i < 8; i++ {
		want *= 7
	}
	assert.Equal(t, want, Pow(uint8(7), 8))
}

func TestCheckedPow(t *testing.T) {
	tests := []struct {
		name   string
		got    int64
		ok     bool
		want   int64
		wantOK bool
	}{
		{name: "in range int8", got: asInt64(CheckedPow(int8(2), 4)), ok: okOf(CheckedPow(int8(2), 4)), want: 16, wantOK: true},
		{name: "overflow int8", got: asInt64(CheckedPow(int8(7), 8)), ok: okOf(CheckedPow(int8(7), 8)), want: 0, wantOK: false},
		{name: "in range uint32", got: asInt64(CheckedPow(uint32(7), 8)), ok: okOf(CheckedPow(uint32(7), 8)), want: 5_764_801, wantOK: true},
		{name: "zero exponent", got: asInt64(CheckedPow(int8(-128), 0)), ok: okOf(CheckedPow(int8(-128), 0)), want: 1, wantOK: true},
		{name: "zero base", got: asInt64(CheckedPow(uint16(0), 9)), ok: okOf(CheckedPow(uint16(0), 9)), want: 0, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantOK, tt.ok)
			require.Equal(t, tt.want, tt.got)
		})
	}
}

// CheckedPow must agree with Pow whenever the exact result fits, and fail
// exactly when it does not.
func TestCheckedPowAgreesWithPow(t *testing.T) {
	for base := int64(0); base <= 9; base++ {
		for exp := uint(0); exp <= 10; exp++ {
			exact := math.Pow(float64(base), float64(exp))
			if base == 0 && exp == 0 {
				exact = 1
			}
			got, ok := CheckedPow(int16(base), exp)
			if exact > math.MaxInt16 {
				if ok {
					t.Errorf("CheckedPow(%d, %d) ok, want overflow", base, exp)
				}
				continue
			}
			require.True(t, ok, "CheckedPow(%d, %d)", base, exp)
			require.Equal(t, Pow(int16(base), exp), got)
		}
	}
}

func asInt64[T Integer](v T, _ bool) int64 { return int64(v) }
func okOf[T Integer](_ T, ok bool) bool    { return ok }

package duration

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// ErrOverflow is returned when decoded components cannot be folded into
// a representable Duration.
var ErrOverflow = errors.New("duration out of range")

// encMode is the CBOR encoder mode for durations.
// Configured for deterministic encoding.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for durations.
var decMode cbor.DecMode

func init() {
	var err error

	// Configure encoder for deterministic output
	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}

	// Configure decoder to be lenient for forward compatibility
	decOpts := cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyQuiet,
		IndefLength:       cbor.IndefLengthAllowed,
		ExtraReturnErrors: cbor.ExtraDecErrorNone,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create CBOR decoder mode: %v", err))
	}
}

// wireDuration is the CBOR wire form: a two-element array of seconds
// and nanoseconds.
type wireDuration struct {
	_           struct{} `cbor:",toarray"`
	Seconds     int64
	Nanoseconds int32
}

// MarshalCBOR encodes the duration as a deterministic two-element CBOR
// array [seconds, nanoseconds].
func (d Duration) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(wireDuration{
		Seconds:     d.seconds,
		Nanoseconds: d.nanoseconds,
	})
}

// UnmarshalCBOR decodes a two-element CBOR array. The components need
// not be normalized; they are folded through the usual carry rules.
func (d *Duration) UnmarshalCBOR(data []byte) error {
	var w wireDuration
	if err := decMode.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("failed to decode duration: %w", err)
	}
	dec, ok := tryNew(w.Seconds, w.Nanoseconds)
	if !ok {
		return ErrOverflow
	}
	*d = dec
	return nil
}

// jsonDuration is the JSON object form.
type jsonDuration struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`
}

// MarshalJSON encodes the duration as {"seconds":…,"nanoseconds":…}.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDuration{
		Seconds:     d.seconds,
		Nanoseconds: d.nanoseconds,
	})
}

// UnmarshalJSON decodes the JSON object form, normalizing the
// components.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var j jsonDuration
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("failed to decode duration: %w", err)
	}
	dec, ok := tryNew(j.Seconds, j.Nanoseconds)
	if !ok {
		return ErrOverflow
	}
	*d = dec
	return nil
}

// MarshalText encodes the duration in the exact decimal-seconds form
// "[-]S.NNNNNNNNN" with nine fractional digits. Unlike String, this
// form round-trips through Parse.
func (d Duration) MarshalText() ([]byte, error) {
	seconds := uint64(d.seconds)
	if d.seconds < 0 {
		seconds = -seconds
	}
	nanoseconds := uint32(d.nanoseconds)
	if d.nanoseconds < 0 {
		nanoseconds = -nanoseconds
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return []byte(fmt.Sprintf("%s%d.%09d", sign, seconds, nanoseconds)), nil
}

// UnmarshalText decodes the form produced by MarshalText.
func (d *Duration) UnmarshalText(text []byte) error {
	dec, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = dec
	return nil
}

// Parse reads the exact decimal-seconds form "[-]S[.NNNNNNNNN]". Up to
// nine fractional digits are accepted and padded to nanoseconds; the
// sign applies to the whole value.
func Parse(s string) (Duration, error) {
	input := s
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	if s == "" {
		return Duration{}, fmt.Errorf("invalid duration %q", input)
	}

	wholePart, fracPart, hasFrac := strings.Cut(s, ".")
	seconds, err := strconv.ParseUint(wholePart, 10, 64)
	if err != nil {
		return Duration{}, fmt.Errorf("invalid duration %q: %w", input, err)
	}

	var nanoseconds uint64
	if hasFrac {
		if fracPart == "" || len(fracPart) > 9 {
			return Duration{}, fmt.Errorf("invalid duration %q", input)
		}
		if nanoseconds, err = strconv.ParseUint(fracPart, 10, 32); err != nil {
			return Duration{}, fmt.Errorf("invalid duration %q: %w", input, err)
		}
		for i := len(fracPart); i < 9; i++ {
			nanoseconds *= 10
		}
	}

	if negative {
		// The magnitude of Min's seconds field is one past MaxInt64.
		const minSecondsMagnitude = uint64(1) << 63
		if seconds > minSecondsMagnitude {
			return Duration{}, ErrOverflow
		}
		return Duration{seconds: -int64(seconds), nanoseconds: -int32(nanoseconds)}, nil
	}
	if seconds > math.MaxInt64 {
		return Duration{}, ErrOverflow
	}
	return Duration{seconds: int64(seconds), nanoseconds: int32(nanoseconds)}, nil
}

// MarshalYAML encodes the duration as the decimal-seconds text scalar.
func (d Duration) MarshalYAML() (any, error) {
	text, err := d.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

// UnmarshalYAML decodes a scalar in the decimal-seconds form.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a scalar: %w", err)
	}
	dec, err := Parse(s)
	if err != nil {
		return err
	}
	*d = dec
	return nil
}

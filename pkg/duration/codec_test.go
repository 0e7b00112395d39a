package duration

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCBORRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		d    Duration
	}{
		{"zero", Zero},
		{"positive", New(90, 500_000_000)},
		{"negative", New(-90, -500_000_000)},
		{"subsecond", Milliseconds(-250)},
		{"min", Min},
		{"max", Max},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.d.MarshalCBOR()
			require.NoError(t, err)

			var got Duration
			require.NoError(t, got.UnmarshalCBOR(data))
			assert.Equal(t, tt.d, got)
		})
	}
}

func TestCBORDeterministic(t *testing.T) {
	a, err := New(5, 250_000_000).MarshalCBOR()
	require.NoError(t, err)
	b, err := New(5, 250_000_000).MarshalCBOR()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCBORDecodeNormalizes(t *testing.T) {
	// A peer may send un-normalized components; decoding folds them.
	raw, err := cbor.Marshal([]int64{1, 2_000_000_000})
	require.NoError(t, err)

	var got Duration
	require.NoError(t, got.UnmarshalCBOR(raw))
	assert.Equal(t, Seconds(3), got)
}

func TestCBORDecodeInvalid(t *testing.T) {
	var got Duration
	assert.Error(t, got.UnmarshalCBOR([]byte{0xff}))
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(12, 345_000_000)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seconds":12,"nanoseconds":345000000}`, string(data))

	var got Duration
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, d, got)
}

func TestJSONDecodeNormalizes(t *testing.T) {
	var got Duration
	require.NoError(t, json.Unmarshal(
		[]byte(`{"seconds":1,"nanoseconds":2000000000}`), &got))
	assert.Equal(t, Seconds(3), got)

	require.NoError(t, json.Unmarshal(
		[]byte(`{"seconds":1,"nanoseconds":-500000000}`), &got))
	assert.Equal(t, Milliseconds(500), got)
}

func TestJSONDecodeOverflow(t *testing.T) {
	var got Duration
	err := json.Unmarshal(
		[]byte(`{"seconds":9223372036854775807,"nanoseconds":2000000000}`), &got)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestTextRoundTrip(t *testing.T) {
	tests := []struct {
		d    Duration
		want string
	}{
		{Zero, "0.000000000"},
		{Milliseconds(500), "0.500000000"},
		{Milliseconds(-500), "-0.500000000"},
		{New(3, 7), "3.000000007"},
		{Max, "9223372036854775807.999999999"},
		{Min, "-9223372036854775808.999999999"},
	}
	for _, tt := range tests {
		text, err := tt.d.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, tt.want, string(text))

		var got Duration
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, tt.d, got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Duration
		wantErr bool
	}{
		{"0", Zero, false},
		{"1.5", Milliseconds(1500), false},
		{"-1.5", Milliseconds(-1500), false},
		{"2", Seconds(2), false},
		{"0.000000001", Nanosecond, false},
		{"", Zero, true},
		{"-", Zero, true},
		{"1.", Zero, true},
		{"1.0000000001", Zero, true},
		{"abc", Zero, true},
		{"1.5s", Zero, true},
		{"9223372036854775809", Zero, true},
		{"-9223372036854775809", Zero, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "Parse(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "Parse(%q)", tt.input)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.input)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	type doc struct {
		Timeout Duration `yaml:"timeout"`
		Backoff Duration `yaml:"backoff"`
	}
	in := doc{
		Timeout: Milliseconds(2500),
		Backoff: Milliseconds(-300),
	}

	data, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out doc
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestYAMLDecodeScalar(t *testing.T) {
	var d Duration
	require.NoError(t, yaml.Unmarshal([]byte(`"1.5"`), &d))
	assert.Equal(t, Milliseconds(1500), d)

	assert.Error(t, yaml.Unmarshal([]byte(`[1, 2]`), &d))
}

package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
		ok   bool
	}{
		{"Int", 7, 7, true},
		{"Int64", int64(-3), -3, true},
		{"JSONNumber", json.Number("42"), 42, true},
		{"JSONFraction", json.Number("4.5"), 0, false},
		{"IntegralFloat", float64(9), 9, true},
		{"FractionalFloat", 9.5, 0, false},
		{"HugeFloat", 1e300, 0, false},
		{"NegativeHugeFloat", -1e19, 0, false},
		{"PastMaxInt", float64(1 << 63), 0, false},
		{"NumericString", "12", 0, false},
		{"Nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestString(t *testing.T) {
	s, ok := String("  Berserkr ")
	assert.True(t, ok)
	assert.Equal(t, "Berserkr", s)

	_, ok = String(12)
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	v, ok := Bool(true)
	assert.True(t, ok)
	assert.True(t, v)

	_, ok = Bool("true")
	assert.False(t, ok)
}

func TestStrings(t *testing.T) {
	got, ok := Strings([]any{"a", " b "})
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	_, ok = Strings([]any{"a", 1})
	assert.False(t, ok)

	_, ok = Strings("a")
	assert.False(t, ok)
}

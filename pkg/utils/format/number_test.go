package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFixed(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		digits int
		want   string
	}{
		{"one decimal", 87.3, 1, "87.3"},
		{"pads zeros", 0.5, 3, "0.500"},
		{"integer", 12, 1, "12.0"},
		{"rounds up", 0.12345, 3, "0.123"},
		{"rounds exact tie away from zero", 0.125, 2, "0.13"},
		{"binary value just below tie rounds down", 1.005, 2, "1.00"},
		{"carry into integer part", 9.96, 1, "10.0"},
		{"zero digits", 2.5, 0, "3"},
		{"negative", -1.25, 1, "-1.3"},
		{"negative rounding to zero keeps sign", -0.001, 1, "-0.0"},
		{"negative zero", math.Copysign(0, -1), 1, "0.0"},
		{"large", 123456.789, 2, "123456.79"},
		{"nan", math.NaN(), 1, "NaN"},
		{"inf", math.Inf(1), 1, "Infinity"},
		{"minus inf", math.Inf(-1), 1, "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToFixed(tt.value, tt.digits))
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		fraction float64
		want     string
	}{
		{0.873, "87.3"},
		{1, "100.0"},
		{0, "0.0"},
		{0.6, "60.0"},
		{0.61, "61.0"},
		{0.0004, "0.0"},
		{0.12345, "12.3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Percent(tt.fraction), "Percent(%v)", tt.fraction)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{120, "120"},
		{45.5, "45.5"},
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{-3.25, "-3.25"},
		{0.1, "0.1"},
		{1e21, "1e+21"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.value), "Number(%v)", tt.value)
	}
}

// ABOUTME: Fixed-point number formatting for rendered percentages and feature values
// ABOUTME: Rounds the exact binary value half away from zero, the way browsers format toFixed

package format

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// exactDigits is enough fractional digits to print any float64 without rounding.
const exactDigits = 1100

// ToFixed formats v with exactly digits decimal places.
func ToFixed(v float64, digits int) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if digits < 0 {
		digits = 0
	}

	negative := v < 0
	if negative {
		v = -v
	}

	exact := new(big.Float).SetFloat64(v).Text('f', exactDigits)
	intPart, frac, _ := strings.Cut(exact, ".")
	for len(frac) <= digits {
		frac += "0"
	}

	digitsOut := []byte(intPart + frac[:digits])
	if frac[digits] >= '5' {
		digitsOut = increment(digitsOut)
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	split := len(digitsOut) - digits
	b.Write(digitsOut[:split])
	if digits > 0 {
		b.WriteByte('.')
		b.Write(digitsOut[split:])
	}
	return b.String()
}

// Percent formats a 0..1 fraction as a percentage with one decimal place, without the % sign.
func Percent(fraction float64) string {
	return ToFixed(fraction*100, 1)
}

// increment adds one to a string of decimal digits.
func increment(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}

// Number formats v in its shortest round-trip form, the way a browser prints a plain number.
func Number(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		return strings.Replace(s, "e-0", "e-", 1)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

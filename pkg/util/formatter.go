// Package util holds the SI-factor formatters used by the CLI output.
package util

import (
	"fmt"
	"math"
)

var siPrefixes = []struct {
	factor float64
	prefix string
}{
	{1, ""},
	{1e-3, "m"},
	{1e-6, "u"},
	{1e-9, "n"},
	{1e-12, "p"},
}

// FormatValueFactor renders a value with an engineering prefix, e.g.
// "5.000 V", "3.300 mV", "1.000 uF". Values below the pico range fall back
// to scientific notation.
func FormatValueFactor(value float64, unit string) string {
	if value == 0 {
		return fmt.Sprintf("0.000 %s", unit)
	}
	abs := math.Abs(value)
	for _, p := range siPrefixes {
		if abs >= p.factor {
			return fmt.Sprintf("%.3f %s%s", value/p.factor, p.prefix, unit)
		}
	}
	return fmt.Sprintf("%.3e %s", value, unit)
}

// FormatFrequency renders a frequency in Hz, kHz, or MHz.
func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e6:
		return fmt.Sprintf("%7.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%7.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%7.3f Hz", freq)
	}
}

// FormatSeconds renders a timestamp with an engineering prefix.
func FormatSeconds(t float64) string {
	return FormatValueFactor(t, "s")
}

// FormatMagnitude renders an AC magnitude, switching to scientific notation
// outside the comfortable decimal range.
func FormatMagnitude(value float64) string {
	if value >= 1000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%8.2e", value)
	}
	return fmt.Sprintf("%8.3g", value)
}

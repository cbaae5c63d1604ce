package utils

import (
	"fmt"
	"strings"
)

// FormatTND formats an amount as Tunisian dinars, e.g. "12 250.500 DT".
// Prices carry three decimals (millimes).
func FormatTND(value float64) string {
	s := fmt.Sprintf("%.3f", value)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]
	fracPart := parts[1]

	neg := false
	if strings.HasPrefix(intPart, "-") {
		neg = true
		intPart = intPart[1:]
	}

	// Insert spaces every 3 digits in integer part
	var b strings.Builder
	cnt := 0
	for i := len(intPart) - 1; i >= 0; i-- {
		b.WriteByte(intPart[i])
		cnt++
		if cnt%3 == 0 && i > 0 {
			b.WriteByte(' ')
		}
	}

	// Reverse
	runes := []rune(b.String())
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	out := string(runes) + "." + fracPart + " DT"
	if neg {
		out = "-" + out
	}
	return out
}

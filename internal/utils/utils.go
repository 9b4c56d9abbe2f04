package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var numberPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`)

// ParseNumber reads the leading decimal number of s the way a browser's
// parseFloat does, falling back to 0 where parseFloat would give NaN. A comma
// ends the number, so "12,5" reads as 12.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	prefix := numberPrefix.FindString(s)
	if prefix == "" {
		return 0
	}

	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

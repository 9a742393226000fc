package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// FORMATTING — Compact numbers for cards and listings
// ============================================================================
// Suffix values round half up to a whole number: 2.5e9 → "$3B".
// ============================================================================

var usdSuffixes = []struct {
	scale  float64
	suffix string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatUSD formats a dollar amount compactly: $0, $950, $12K, $3M, $2B, $1T.
func FormatUSD(v float64) string {
	if v < 0 {
		return "-" + FormatUSD(-v)
	}
	if v == 0 {
		return "$0"
	}
	for _, s := range usdSuffixes {
		if v >= s.scale {
			return fmt.Sprintf("$%s%s", roundHalfUp(v/s.scale), s.suffix)
		}
	}
	return "$" + groupThousands(v)
}

// FormatCount formats a head count compactly: 0, 950, 12K, 3M.
func FormatCount(v float64) string {
	if v < 0 {
		return "-" + FormatCount(-v)
	}
	switch {
	case v == 0:
		return "0"
	case v >= 1e6:
		return roundHalfUp(v/1e6) + "M"
	case v >= 1e3:
		return roundHalfUp(v/1e3) + "K"
	}
	return groupThousands(v)
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int64) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

func roundHalfUp(v float64) string {
	return strconv.FormatFloat(math.Floor(v+0.5), 'f', 0, 64)
}

// groupThousands renders v with comma separators and at most three decimals.
func groupThousands(v float64) string {
	s := strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return s
	}
	if frac == "" {
		return FormatInt(n)
	}
	return FormatInt(n) + "." + frac
}

package helpers

import (
	"regexp"
	"strconv"
	"strings"
)

// ============================================================================
// AMOUNT PARSER — "$2.5M" style strings → float64
// ============================================================================

var amountPattern = regexp.MustCompile(`^(-?\d+(?:\.\d*)?)([KMBTQ]?)$`)

var amountMultipliers = map[string]float64{
	"":  1,
	"K": 1e3,
	"M": 1e6,
	"B": 1e9,
	"T": 1e12,
	"Q": 1e15,
}

// missingValues are placeholders that mean "no value".
var missingValues = map[string]bool{
	"":     true,
	"N/A":  true,
	"NA":   true,
	"NULL": true,
}

// parenthetical strips notes like "(Salesforce)" from "$27.7B (Salesforce)".
var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// ParseAmount parses currency and count strings: "$1B", "$2.5M", "$3T",
// "$2K", "1,200", "42". Placeholders like "N/A" report ok=false.
func ParseAmount(s string) (float64, bool) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if missingValues[upper] {
		return 0, false
	}

	clean := parenthetical.ReplaceAllString(upper, "")
	clean = strings.NewReplacer("$", "", ",", "", " ", "").Replace(clean)

	m := amountPattern.FindStringSubmatch(clean)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return n * amountMultipliers[m[2]], true
}

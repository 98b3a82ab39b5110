package revenue

import (
	"regexp"
	"strconv"
	"strings"
)

// Magnitude suffixes in Italian and English.
var (
	thousandSuffixes = []string{"k", "mila"}
	millionSuffixes  = []string{"mln", "milioni", "milione", "million", "millions", "mio"}
	billionSuffixes  = []string{"mld", "miliardi", "miliardo", "billion", "billions", "bn"}
)

// amountRe captures a numeric token and an optional magnitude suffix inside
// free text, e.g. "269.674,00 €", "1,2 mln", "50k".
var amountRe = regexp.MustCompile(
	`(?i)€?\s*([0-9]+(?:[.,][0-9]+)*)\s*` +
		`(k|mila|mln|milioni|milione|million|millions|mio|mld|miliardi|miliardo|billion|billions|bn)?\b`)

// ParseAmount parses a currency amount written with either European or
// English numeral conventions, applying any magnitude suffix. Rules:
//   - both "." and "," present: dots are thousands separators, comma is the
//     decimal mark ("269.674,00" -> 269674.00)
//   - only ",": decimal comma when 1-2 digits follow it, thousands otherwise
//   - only ".": thousands when the string is unambiguously 3-digit grouped,
//     decimal point otherwise
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	m := amountRe.FindStringSubmatch(s)
	if m == nil || m[1] == "" {
		return 0, false
	}

	value, ok := normalizeNumber(m[1])
	if !ok {
		return 0, false
	}
	return value * suffixMultiplier(m[2]), true
}

func normalizeNumber(num string) (float64, bool) {
	hasDot := strings.Contains(num, ".")
	hasComma := strings.Contains(num, ",")

	switch {
	case hasDot && hasComma:
		// European: thousands-dot + decimal-comma
		num = strings.ReplaceAll(num, ".", "")
		num = strings.ReplaceAll(num, ",", ".")

	case hasComma:
		last := strings.LastIndex(num, ",")
		tail := num[last+1:]
		if len(tail) >= 1 && len(tail) <= 2 {
			// decimal comma; any earlier commas are thousands separators
			num = strings.ReplaceAll(num[:last], ",", "") + "." + tail
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}

	case hasDot:
		if dotGrouped(num) {
			num = strings.ReplaceAll(num, ".", "")
		} else if strings.Count(num, ".") > 1 {
			return 0, false // multiple dots, not 3-grouped: ambiguous
		}
		// single non-grouping dot: decimal point, parse as-is
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dotGrouped reports whether num is unambiguously dot-grouped thousands:
// every group after the first has exactly 3 digits and the first has 1-3.
func dotGrouped(num string) bool {
	groups := strings.Split(num, ".")
	if len(groups) < 2 {
		return false
	}
	if len(groups[0]) < 1 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}

func suffixMultiplier(suffix string) float64 {
	s := strings.ToLower(suffix)
	for _, t := range thousandSuffixes {
		if s == t {
			return 1e3
		}
	}
	for _, t := range millionSuffixes {
		if s == t {
			return 1e6
		}
	}
	for _, t := range billionSuffixes {
		if s == t {
			return 1e9
		}
	}
	return 1
}

package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder spellings seen in financial tables for "no value". These cells
// are neither numeric nor semantic and must never be coerced to zero.
var placeholders = map[string]struct{}{
	"-": {}, "–": {}, "—": {}, "--": {},
	"n/a": {}, "n.a.": {}, "n.a": {}, "na": {}, "n.m.": {}, "nm": {},
	"...": {}, ".": {},
}

// IsPlaceholder reports whether the cell text is empty or a placeholder.
func IsPlaceholder(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return true
	}
	_, ok := placeholders[t]
	return ok
}

// numberPart splits leading numeric text from a trailing suffix.
var numberPart = regexp.MustCompile(`^([0-9][0-9.,' ]*)(.*)$`)

// parenWrapped matches accounting-style negatives, with an optional suffix
// outside the parentheses.
var parenWrapped = regexp.MustCompile(`^\(([^()]+)\)\s*(.*)$`)

// thousandsOnlyComma matches comma-grouped integers like 1,234 or 12,345,678.
var thousandsOnlyComma = regexp.MustCompile(`^[0-9]{1,3}(,[0-9]{3})+$`)

// thousandsOnlyDot matches dot-grouped integers with two or more groups,
// like 1.234.567. A single group (14.003) is read as a decimal.
var thousandsOnlyDot = regexp.MustCompile(`^[0-9]{1,3}(\.[0-9]{3}){2,}$`)

// ParseValue parses a numeric data cell. It handles thousands separators in
// both anglophone (1,234.5) and European (1.234,5) styles, parenthesized
// negatives ("(23.2)" is -23.2), explicit signs, and a unit suffix embedded
// in the cell itself ("23.2 EUR/ton", "4.1%"). Placeholders and empty cells
// return ok=false; they carry no value.
func ParseValue(text string) (value float64, unit string, ok bool) {
	t := strings.TrimSpace(text)
	if IsPlaceholder(t) {
		return 0, "", false
	}

	negative := false
	if m := parenWrapped.FindStringSubmatch(t); m != nil {
		// Accounting negatives: "(23.2)" and "(2.5) p.p." are both negative.
		negative = true
		t = strings.TrimSpace(strings.TrimSpace(m[1]) + " " + strings.TrimSpace(m[2]))
	}
	switch {
	case strings.HasPrefix(t, "-"), strings.HasPrefix(t, "−"):
		negative = true
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(t, "-"), "−"))
	case strings.HasPrefix(t, "+"):
		t = strings.TrimSpace(strings.TrimPrefix(t, "+"))
	}

	m := numberPart.FindStringSubmatch(t)
	if m == nil {
		return 0, "", false
	}
	num := strings.TrimRight(m[1], " .,'")
	unit = strings.TrimSpace(m[2])

	v, parseOK := parseSeparated(num)
	if !parseOK {
		return 0, "", false
	}
	if negative {
		v = -v
	}
	return v, unit, true
}

// parseSeparated resolves separator ambiguity and parses the bare number.
func parseSeparated(num string) (float64, bool) {
	// Space and apostrophe groupings (1 234, 1'234) are always thousands.
	num = strings.ReplaceAll(num, " ", "")
	num = strings.ReplaceAll(num, "'", "")

	hasDot := strings.Contains(num, ".")
	hasComma := strings.Contains(num, ",")

	switch {
	case hasDot && hasComma:
		// The rightmost separator is the decimal mark.
		if strings.LastIndex(num, ".") > strings.LastIndex(num, ",") {
			num = strings.ReplaceAll(num, ",", "")
		} else {
			num = strings.ReplaceAll(num, ".", "")
			num = strings.Replace(num, ",", ".", 1)
		}
	case hasComma:
		if thousandsOnlyComma.MatchString(num) {
			num = strings.ReplaceAll(num, ",", "")
		} else {
			num = strings.Replace(num, ",", ".", 1)
		}
	case hasDot:
		if thousandsOnlyDot.MatchString(num) {
			num = strings.ReplaceAll(num, ".", "")
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsNumeric reports whether the entire cell is a bare numeric literal, with
// no embedded unit suffix.
func IsNumeric(text string) bool {
	_, unit, ok := ParseValue(text)
	return ok && unit == ""
}

// Package intparse implements the strict base-10 integer parsing the
// specification requires for flags like --pr and --max-age-hours: no
// trailing garbage, no empty string, respecting the original's
// errno/endptr discipline via strconv's all-or-nothing parse.
package intparse

import "strconv"

// Positive parses s as a strict base-10 integer and requires it to be > 0.
func Positive(s string) (int, bool) {
	n, ok := Strict(s)
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// NonNegative parses s as a strict base-10 integer and requires it to be
// >= 0.
func NonNegative(s string) (int, bool) {
	n, ok := Strict(s)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// Strict parses s as a base-10 integer, rejecting empty strings and any
// trailing non-digit content (e.g. "10abc").
func Strict(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

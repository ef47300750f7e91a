package pricing

import "strings"

// NormalizeMake lowercases ASCII letters and drops everything else,
// so "Mercedes-Benz" becomes "mercedesbenz".
func NormalizeMake(s string) string {
	return strings.Map(func(r rune) rune {
		r = asciiLower(r)
		if r >= 'a' && r <= 'z' {
			return r
		}
		return -1
	}, s)
}

// NormalizeModel keeps lowercase letters, digits and hyphens. Spaces are
// dropped, not turned into separators: "G-Class G 63 AMG" becomes
// "g-classg63amg". Table keys are written in this same lossy form.
func NormalizeModel(s string) string {
	return strings.Map(func(r rune) rune {
		r = asciiLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
}

// NormalizeLocation uses the make rule, so "Port Harcourt" and
// "port-harcourt" share the key "portharcourt".
func NormalizeLocation(s string) string { return NormalizeMake(s) }

func asciiLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

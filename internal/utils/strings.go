package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeMobile strips spaces and hyphens from a phone number before
// format checks.
func NormalizeMobile(raw string) string {
	m := strings.ReplaceAll(raw, " ", "")
	return strings.ReplaceAll(m, "-", "")
}

// ValidSaudiMobile reports whether raw, after stripping spaces and
// hyphens, is exactly 10 digits starting with "05".
func ValidSaudiMobile(raw string) bool {
	m := NormalizeMobile(raw)
	return IsDigits(m) && len(m) == 10 && strings.HasPrefix(m, "05")
}

// IsDigits reports whether s is non-empty and contains ASCII digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

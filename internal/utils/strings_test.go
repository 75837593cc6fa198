package utils

import "testing"

func TestValidSaudiMobileAcceptsTenDigitsStarting05(t *testing.T) {
	valid := []string{
		"0501234567",
		"05 0123 4567",
		"050-123-4567",
	}
	for _, m := range valid {
		if !ValidSaudiMobile(m) {
			t.Fatalf("expected %q to be valid", m)
		}
	}
}

func TestValidSaudiMobileRejectsBadNumbers(t *testing.T) {
	invalid := []string{
		"",
		"966501234567", // country prefix, 12 digits
		"05012345",     // too short
		"0401234567",   // wrong prefix
		"05O1234567",   // letter O
		"05012345678",  // too long
	}
	for _, m := range invalid {
		if ValidSaudiMobile(m) {
			t.Fatalf("expected %q to be rejected", m)
		}
	}
}

func TestNormalizeMobileStripsSpacesAndHyphens(t *testing.T) {
	if got := NormalizeMobile("050-123 4567"); got != "0501234567" {
		t.Fatalf("normalize got %q", got)
	}
}

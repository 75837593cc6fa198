package utils

import "testing"

func TestArabicDayName(t *testing.T) {
	cases := map[string]string{
		"2025-01-03": "الجمعة", // Friday
		"2025-01-04": "السبت",  // Saturday
		"2025-01-06": "الإثنين", // Monday
	}
	for date, want := range cases {
		if got := ArabicDayName(date); got != want {
			t.Fatalf("day name for %s: got %q want %q", date, got, want)
		}
	}
}

func TestArabicDayNameEmptyOnBadDate(t *testing.T) {
	if got := ArabicDayName("not-a-date"); got != "" {
		t.Fatalf("expected empty day name, got %q", got)
	}
}

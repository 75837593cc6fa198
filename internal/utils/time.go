package utils

import (
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

// arabicDays maps English weekday names to the Arabic names used on the
// printed trip form.
var arabicDays = map[string]string{
	"Saturday":  "السبت",
	"Sunday":    "الأحد",
	"Monday":    "الإثنين",
	"Tuesday":   "الثلاثاء",
	"Wednesday": "الأربعاء",
	"Thursday":  "الخميس",
	"Friday":    "الجمعة",
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// ArabicDayName returns the Arabic weekday name for a YYYY-MM-DD date.
// Unparseable input yields an empty string so callers can store it as-is.
func ArabicDayName(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return ""
	}
	en := t.Format("Monday")
	if ar, ok := arabicDays[en]; ok {
		return ar
	}
	return en
}

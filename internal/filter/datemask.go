package filter

import (
	"strings"
	"time"
)

// MaskDate turns raw date input into progressive "YYYY-MM-DD" form.
// Non-digits are dropped, digits beyond the 8th are truncated, and hyphens
// are inserted after the 4th and 6th digit. A fully typed 8-digit value
// that does not name a real calendar date (month 13, day 32, Feb 30 …) is
// rejected by resetting the field to empty: the date is reconstructed and
// its round-tripped string form compared to the input, so day overflow
// shows up as a mismatch.
func MaskDate(raw string) string {
	digits := stripNonDigits(raw)
	if len(digits) > 8 {
		digits = digits[:8]
	}

	var b strings.Builder
	for i, r := range digits {
		if i == 4 || i == 6 {
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	masked := b.String()

	if len(masked) == 10 {
		t, err := time.Parse("2006-01-02", masked)
		if err != nil || t.Format("2006-01-02") != masked {
			return ""
		}
	}
	return masked
}

// StartLowerBound converts a filter start date to the absolute instant sent
// as the listing lower bound: max(now, local midnight of the date). Filtering
// "from today" never produces a past instant even after midnight has elapsed.
// ok is false when value is empty or not a full valid date.
func StartLowerBound(value string, now time.Time) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", value, now.Location())
	if err != nil {
		return time.Time{}, false
	}
	if t.Before(now) {
		return now, true
	}
	return t, true
}

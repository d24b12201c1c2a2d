package employee

import (
	"strings"
	"time"
)

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "Jan 2, 2006"
)

// FormatPhone renders a number with exactly ten digits as (XXX) XXX-XXXX.
// Anything else is returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}

	digits := PhoneDigits(phone)
	if len(digits) != 10 {
		return phone
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

// PhoneDigits keeps the ASCII digits of a phone number and drops everything
// else, including digits from other scripts.
func PhoneDigits(phone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
}

// FormatDate renders a YYYY-MM-DD or RFC 3339 date for display.
func FormatDate(date string) string {
	if date == "" {
		return "N/A"
	}

	t, err := time.Parse(DateLayout, date)
	if err != nil {
		t, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return "Invalid Date"
		}
	}
	return t.Format(DisplayDateLayout)
}

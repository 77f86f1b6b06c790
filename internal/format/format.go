package format

import (
	"strings"
	"time"
	"unicode"
)

// Date formats time in the short US form used on article bylines.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

// ISODate formats time for <time datetime> attributes and sitemaps.
func ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Phone renders an E.164-ish North American number as "(954) 555-0148".
// Anything else is returned unchanged.
func Phone(raw string) string {
	digits := digitsOf(raw)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return raw
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

// TelHref returns a tel: URL for raw, keeping a leading "+".
func TelHref(raw string) string {
	digits := digitsOf(raw)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(strings.TrimSpace(raw), "+") {
		return "tel:+" + digits
	}
	return "tel:" + digits
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

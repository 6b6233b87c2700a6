package timeutil

import (
	"time"

	"github.com/nleeper/goment"
)

// DefaultDateTimePattern is the gateway's DATETIME format
const DefaultDateTimePattern = "DD-MM-YYYY:HH:mm:ss:SSS"

// DateLayout is the Go layout for gateway dates (STARTDATE, ENDDATE)
const DateLayout = "02-01-2006"

// FormatDate renders t as DD-MM-YYYY. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a DD-MM-YYYY date and returns a UTC time
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatPattern renders t in its own location using a moment.js token pattern
// such as "DD-MM-YYYY:HH:mm:ss:SSS". Text inside square brackets is literal.
func FormatPattern(t time.Time, pattern string) string {
	g, err := goment.New(t)
	if err != nil {
		// goment only fails on unparseable input, never on a time.Time
		return t.Format(time.RFC3339Nano)
	}
	return g.Format(pattern)
}

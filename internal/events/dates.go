package events

import (
	"fmt"
	"regexp"
	"time"
)

var (
	brDateTimePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})\s*(\d{2}):(\d{2})$`)
	brDatePattern     = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
)

// ParseBRDate accepts "DD/MM/YYYY HH:MM" and "DD/MM/YYYY" inputs and falls
// back to RFC 3339 for values that already arrive in wire format.
func ParseBRDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if m := brDateTimePattern.FindStringSubmatch(value); m != nil {
		return time.ParseInLocation("02/01/2006 15:04", fmt.Sprintf("%s/%s/%s %s:%s", m[1], m[2], m[3], m[4], m[5]), loc)
	}
	if m := brDatePattern.FindStringSubmatch(value); m != nil {
		return time.ParseInLocation("02/01/2006", fmt.Sprintf("%s/%s/%s", m[1], m[2], m[3]), loc)
	}
	return time.Parse(time.RFC3339, value)
}

// FormatBRDate renders a timestamp the way the calendar views display it.
// All-day events drop the time portion.
func FormatBRDate(t time.Time, allDay bool) string {
	if t.IsZero() {
		return ""
	}
	if allDay {
		return t.Format("02/01/2006")
	}
	return t.Format("02/01/2006 15:04")
}

package yrc

import (
	"strings"
	"time"
)

var (
	dateFormats = []string{
		"2006-01-02",
		"Monday, January 2",
		"January 2, 2006",
		"01/02/2006",
	}
	clockTimeFormats = []string{
		"3:04 PM",
		"3:04PM",
		"3:04 pm",
		"3:04pm",
		"15:04",
	}
)

// ParseShowtime combines a listing date key with a showing's clock time. The
// bool is false when either part is in a format the site has not been seen to use;
// a parsed date with an unparsed time is still returned.
func ParseShowtime(date, clockTime string, timeZone *time.Location) (time.Time, bool) {
	d, ok := parseFirst(dateFormats, strings.TrimSpace(date), timeZone)
	if !ok {
		return time.Time{}, false
	}
	t, ok := parseFirst(clockTimeFormats, strings.TrimSpace(clockTime), timeZone)
	if !ok {
		return d, false
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, timeZone), true
}

func parseFirst(layouts []string, value string, timeZone *time.Location) (time.Time, bool) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, timeZone); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

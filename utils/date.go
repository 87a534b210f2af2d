package utils

import (
	"fmt"
	"time"
)

// Polish short month names, matching the pl-PL locale rendering the web
// client used.
var plMonths = [...]string{
	"sty", "lut", "mar", "kwi", "maj", "cze",
	"lip", "sie", "wrz", "paź", "lis", "gru",
}

func parseBackendDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// FormatDate renders a backend date-time string as "2 wrz 2025, 19:30".
// Unparseable input is returned unchanged.
func FormatDate(value string) string {
	t, err := parseBackendDate(value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%d %s %d, %02d:%02d", t.Day(), plMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// FormatDateOnly renders a backend date string as "2 wrz 2025".
func FormatDateOnly(value string) string {
	t, err := parseBackendDate(value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%d %s %d", t.Day(), plMonths[t.Month()-1], t.Year())
}

package models

import (
	"fmt"
	"time"
)

// dateAndHourLayouts lists the accepted encodings of a meal's dateAndHour.
// Values without an offset are read as UTC.
var dateAndHourLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// eatenAtLayout is fixed width so that text order equals time order.
const eatenAtLayout = "2006-01-02T15:04:05.000000000Z"

// ParseDateAndHour parses s with the first matching accepted layout.
func ParseDateAndHour(s string) (time.Time, error) {
	for _, layout := range dateAndHourLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// EatenAtKey returns the sortable UTC instant of a dateAndHour value, or ""
// when it cannot be parsed.
func EatenAtKey(dateAndHour string) string {
	t, err := ParseDateAndHour(dateAndHour)
	if err != nil {
		return ""
	}
	return t.UTC().Format(eatenAtLayout)
}

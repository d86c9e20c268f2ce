package utils

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "2006-01", time.RFC3339}

// ParseDate accepts a day, a month or a full RFC3339 timestamp. An empty string yields a zero time.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		date, err := time.ParseInLocation(layout, dateStr, time.UTC)
		if err == nil {
			return date.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", dateStr)
}

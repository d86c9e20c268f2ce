package domain

import (
	"fmt"
	"strings"
	"time"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

func ParseGranularity(value string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(value))); g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	}
	return "", NewInvalidParameter("granularity", fmt.Sprintf("unknown granularity %q, expected day, week or month", value))
}

// Truncate returns the start of the UTC bucket containing t. Weeks start on Monday.
func (g Granularity) Truncate(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch g {
	case GranularityWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// Next returns the start of the bucket following the bucket that starts at bucket.
func (g Granularity) Next(bucket time.Time) time.Time {
	switch g {
	case GranularityWeek:
		return bucket.AddDate(0, 0, 7)
	case GranularityMonth:
		return bucket.AddDate(0, 1, 0)
	default:
		return bucket.AddDate(0, 0, 1)
	}
}

// Span counts the buckets from -> to, both inclusive. Both must be bucket starts.
func (g Granularity) Span(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	switch g {
	case GranularityWeek:
		return int(to.Sub(from).Hours()/(24*7)) + 1
	case GranularityMonth:
		return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
	default:
		return int(to.Sub(from).Hours()/24) + 1
	}
}

// ApproxDays converts a horizon expressed in buckets into days.
func (g Granularity) ApproxDays(buckets int) int {
	switch g {
	case GranularityWeek:
		return buckets * 7
	case GranularityMonth:
		return buckets * 30
	default:
		return buckets
	}
}

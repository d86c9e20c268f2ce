package loader

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/revenue-insights-api/internal/domain"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999 MST",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"2006-01",
	"01/02/2006",
	"01/02/2006 15:04:05",
}

// millisecondEpoch separates epoch seconds from epoch milliseconds.
const millisecondEpoch = 1e12

// ParseTimestamp accepts the layouts above or a unix epoch in seconds or milliseconds.
// Values without zone are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	if epoch, err := strconv.ParseFloat(value, 64); err == nil && !strings.ContainsAny(value, "-/:") {
		if math.IsNaN(epoch) || math.IsInf(epoch, 0) {
			return time.Time{}, errors.Errorf("unsupported timestamp %q", value)
		}
		var ts time.Time
		if epoch > millisecondEpoch {
			if epoch > float64(domain.MaxTimestamp.UnixMilli()) {
				return time.Time{}, errors.Errorf("timestamp %q is out of range", value)
			}
			ts = time.UnixMilli(int64(epoch)).UTC()
		} else {
			sec := int64(epoch)
			ts = time.Unix(sec, int64((epoch-float64(sec))*1e9)).UTC()
		}
		return inRange(ts, value)
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return inRange(ts.UTC(), value)
		}
	}

	return time.Time{}, errors.Errorf("unsupported timestamp %q", value)
}

func inRange(ts time.Time, value string) (time.Time, error) {
	if !domain.TimestampInRange(ts) {
		return time.Time{}, errors.Errorf("timestamp %q is out of range", value)
	}
	return ts, nil
}

// ParseAmount reads a revenue amount. Empty means no revenue, thousands separators are ignored.
func ParseAmount(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	value = strings.TrimPrefix(value, "$")
	if value == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "invalid amount %q", value)
	}
	return amount, nil
}

// ParseActivation reads the activation column. A boolean marks the row timestamp as the
// activation, a timestamp is taken as the activation time.
func ParseActivation(value string, rowTimestamp time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	switch strings.ToLower(value) {
	case "1", "true", "t", "yes", "y":
		return rowTimestamp, nil
	case "0", "false", "f", "no", "n":
		return time.Time{}, nil
	}

	ts, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "invalid activation")
	}
	return ts, nil
}

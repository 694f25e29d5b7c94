package impl

import (
	"time"

	"gpstrack/internal/domain"
)

// timestampLayouts are the accepted wire formats for published_at and for
// the start_date/end_date query parameters, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(field, value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, domain.NewFieldError(field, "invalid timestamp format")
}

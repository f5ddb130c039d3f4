package utils

import (
	"time"
)

// ParseDate interpreta uma data de calendário (YYYY-MM-DD). Timestamps
// completos são aceitos e a parte de hora é descartada. O resultado é UTC.
func ParseDate(value string) (time.Time, error) {
	if len(value) > len(time.DateOnly) {
		value = value[:len(time.DateOnly)]
	}

	date, err := time.ParseInLocation(time.DateOnly, value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}

	return date, nil
}

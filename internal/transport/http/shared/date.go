package shared

import (
	"errors"
	"time"
)

// ParseDate accepts YYYY-MM-DD.
func ParseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errors.New("empty date")
	}
	return time.Parse("2006-01-02", raw)
}

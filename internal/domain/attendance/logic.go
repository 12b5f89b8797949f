package attendance

import (
	"errors"
	"math"
	"time"
)

// SplitWorkHours turns a check-in/check-out span into billable work hours and
// overtime. The scheduled break is deducted from the span; anything beyond
// the scheduled working hours counts as extra.
func SplitWorkHours(checkIn, checkOut time.Time, breakHours, scheduledHours float64) (work, extra float64, err error) {
	if checkOut.Before(checkIn) {
		return 0, 0, errors.New("check-out before check-in")
	}
	span := checkOut.Sub(checkIn).Hours() - breakHours
	if span < 0 {
		span = 0
	}
	work = round2(span)
	if work > scheduledHours {
		extra = round2(work - scheduledHours)
		work = scheduledHours
	}
	return work, extra, nil
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

package util

import (
	"time"
)

// rollover shifts a timestamp so that anything after 3 PM local time counts
// as the next day.
const rollover = 9 * time.Hour

// BusinessDaysSince counts the weekdays between created and now, evaluated in
// loc. Timestamps after 3 PM roll over to the next day, and weekends are not
// counted.
func BusinessDaysSince(created, now time.Time, loc *time.Location) int {
	start := dayOf(created.In(loc).Add(rollover))
	end := dayOf(now.In(loc).Add(rollover))

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package dateutil

import (
	"fmt"
	"time"
)

func BeginningOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// DayKey identifies a calendar day, used as the exactly-once guard for daily
// triggers.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekKey identifies an ISO week, used as the exactly-once guard for weekly
// triggers.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d:%d", week, year)
}

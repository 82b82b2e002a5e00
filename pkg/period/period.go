// Package period computes the calendar buckets used by the revenue
// rollups: exact day, Monday-start week, and "YYYY-MM" month.
package period

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" calendar day.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	return d, nil
}

// WeekRange returns the Monday-start week containing date.
// A Sunday maps to the Monday six days prior; the end is the Sunday of
// the same week (identical to date when date is already a Sunday).
func WeekRange(date string) (start string, end string, err error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", "", err
	}

	var monday time.Time
	if d.Weekday() == time.Sunday {
		monday = d.AddDate(0, 0, -6)
	} else {
		monday = d.AddDate(0, 0, -(int(d.Weekday()) - 1))
	}

	return monday.Format(DateLayout), monday.AddDate(0, 0, 6).Format(DateLayout), nil
}

// AddDays shifts a calendar day by the given number of days.
func AddDays(date string, days int) (string, error) {
	d, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, days).Format(DateLayout), nil
}

// MonthKey returns the "YYYY-MM" bucket for a calendar day.
func MonthKey(date string) (string, error) {
	if _, err := ParseDate(date); err != nil {
		return "", err
	}
	return date[:7], nil
}

// ValidMonth reports whether month is a "YYYY-MM" key.
func ValidMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// MonthDateRange returns the inclusive string date range covering month.
// The upper bound is a naive "-31"; comparisons are lexicographic on
// zero-padded days, so short months are still bounded correctly.
func MonthDateRange(month string) (start string, end string) {
	return month + "-01", month + "-31"
}

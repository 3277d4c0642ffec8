// Package schedule computes the calendar dates on which recurring rental
// payments fall due.
//
// A payment day that does not exist in the target month is clamped to the
// month's last day: day 31 in April resolves to April 30, day 29 in a
// non-leap February resolves to February 28.
package schedule

import (
	"time"

	"garage-reconciliation/internal/domain"
)

// ExpectedDate returns the due date of the obligation within the month of
// targetMonth. Only the year and month of targetMonth are used.
func ExpectedDate(o domain.Obligation, targetMonth time.Time) time.Time {
	year, month := targetMonth.Year(), targetMonth.Month()
	day := o.PaymentDay
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return domain.Date(year, month, day)
}

// NextDueDate returns the first due date on or after from.
func NextDueDate(o domain.Obligation, from time.Time) time.Time {
	from = domain.DateOf(from)
	expected := ExpectedDate(o, from)
	if expected.Before(from) {
		// Day 1 never overflows, so AddDate cannot skip a month here.
		expected = ExpectedDate(o, MonthStart(from).AddDate(0, 1, 0))
	}
	return expected
}

// LastDayOfMonth returns the number of days in the given month.
func LastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return domain.Date(t.Year(), t.Month(), 1)
}

// IsOverdue reports whether current is past the grace period that follows
// expected.
func IsOverdue(expected, current time.Time, gracePeriodDays int) bool {
	graceEnd := domain.DateOf(expected).AddDate(0, 0, gracePeriodDays)
	return domain.DateOf(current).After(graceEnd)
}

// DaysOverdue counts the days current lies past the end of the grace period,
// or 0 when the payment is not overdue yet.
func DaysOverdue(expected, current time.Time, gracePeriodDays int) int {
	if !IsOverdue(expected, current, gracePeriodDays) {
		return 0
	}
	graceEnd := domain.DateOf(expected).AddDate(0, 0, gracePeriodDays)
	return domain.DaysBetween(graceEnd, current)
}

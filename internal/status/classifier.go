// Package status decides the payment status of an obligation as of an
// analysis date.
package status

import (
	"time"

	"garage-reconciliation/internal/domain"
	"garage-reconciliation/internal/schedule"
)

const (
	// DefaultGracePeriodDays is how long after the expected date a missing
	// payment stays PENDING before turning OVERDUE.
	DefaultGracePeriodDays = 3
	// EarlyWindowDays bounds how early a found payment may arrive and still
	// count as RECEIVED.
	EarlyWindowDays = 7
)

// Input describes what is known about one obligation's payment.
// PaidOn is only consulted when HasPayment is set.
type Input struct {
	Expected         time.Time
	Analysis         time.Time
	HasPayment       bool
	PaidOn           *time.Time
	MultiplePayments bool
}

// Classifier maps payment facts to a status and a signed day offset.
type Classifier struct {
	gracePeriodDays int
}

// NewClassifier creates a classifier with the given grace period.
func NewClassifier(gracePeriodDays int) *Classifier {
	return &Classifier{gracePeriodDays: gracePeriodDays}
}

// Classify applies the rules in order; the first one that holds wins:
//
//  1. multiple payments                       -> UNCLEAR, 0
//  2. payment with date inside the window     -> RECEIVED, paid - expected
//     payment with date outside the window    -> UNCLEAR, 0
//  3. payment without a date                  -> RECEIVED, 0
//  4. analysis before expected                -> NOT_DUE, 0
//  5. analysis within the grace period        -> PENDING, analysis - expected
//  6. analysis past the grace period          -> OVERDUE, analysis - (expected+grace)
//
// The window in rule 2 is [expected-EarlyWindowDays, expected+grace]. The
// OVERDUE offset counts days past the end of the grace period, so the first
// overdue day reports 1.
func (c *Classifier) Classify(in Input) (domain.PaymentStatus, int) {
	expected := domain.DateOf(in.Expected)
	analysis := domain.DateOf(in.Analysis)

	if in.MultiplePayments {
		return domain.StatusUnclear, 0
	}

	if in.HasPayment {
		if in.PaidOn == nil {
			return domain.StatusReceived, 0
		}
		if c.IsTimely(expected, *in.PaidOn, EarlyWindowDays) {
			return domain.StatusReceived, PaymentDelay(expected, *in.PaidOn)
		}
		return domain.StatusUnclear, 0
	}

	switch {
	case analysis.Before(expected):
		return domain.StatusNotDue, 0
	case schedule.IsOverdue(expected, analysis, c.gracePeriodDays):
		return domain.StatusOverdue, schedule.DaysOverdue(expected, analysis, c.gracePeriodDays)
	default:
		return domain.StatusPending, domain.DaysBetween(expected, analysis)
	}
}

// IsTimely reports whether actual lies in
// [expected-earlyDays, expected+grace], both ends inclusive.
func (c *Classifier) IsTimely(expected, actual time.Time, earlyDays int) bool {
	expected, actual = domain.DateOf(expected), domain.DateOf(actual)
	earliest := expected.AddDate(0, 0, -earlyDays)
	latest := expected.AddDate(0, 0, c.gracePeriodDays)
	return !actual.Before(earliest) && !actual.After(latest)
}

// PaymentDelay returns actual - expected in days: positive when late,
// negative when early.
func PaymentDelay(expected, actual time.Time) int {
	return domain.DaysBetween(expected, actual)
}

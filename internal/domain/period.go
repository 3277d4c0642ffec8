package domain

import (
	"fmt"
	"time"
)

// StatementPeriod is the date range covered by a bank statement.
type StatementPeriod struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	SourceText string    `json:"source_text,omitempty"`
}

// NewStatementPeriod validates that start is not after end.
func NewStatementPeriod(start, end time.Time, sourceText string) (StatementPeriod, error) {
	start, end = DateOf(start), DateOf(end)
	if start.After(end) {
		return StatementPeriod{}, fmt.Errorf("%w: start %s is after end %s",
			ErrInvalidPeriod, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return StatementPeriod{Start: start, End: end, SourceText: sourceText}, nil
}

// TargetMonth is the first day of the month the period starts in.
func (p StatementPeriod) TargetMonth() time.Time {
	return Date(p.Start.Year(), p.Start.Month(), 1)
}

// DurationDays counts the days in the period, both ends inclusive.
func (p StatementPeriod) DurationDays() int {
	return DaysBetween(p.Start, p.End) + 1
}

// Contains reports whether d falls inside the period.
func (p StatementPeriod) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p StatementPeriod) String() string {
	return fmt.Sprintf("Period from %s to %s", p.Start.Format(time.DateOnly), p.End.Format(time.DateOnly))
}

package domain

import "errors"

// Validation errors returned by the domain constructors. Callers match them
// with errors.Is; the wrapped message names the offending field.
var (
	ErrInvalidObligation  = errors.New("invalid obligation")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidPeriod      = errors.New("invalid statement period")
	ErrEmptyReport        = errors.New("report must contain at least one payment")
)

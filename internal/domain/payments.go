package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus classifies an obligation as of the analysis date.
type PaymentStatus string

const (
	StatusReceived PaymentStatus = "RECEIVED"
	StatusOverdue  PaymentStatus = "OVERDUE"
	StatusPending  PaymentStatus = "PENDING"
	StatusNotDue   PaymentStatus = "NOT_DUE"
	StatusUnclear  PaymentStatus = "UNCLEAR"
)

// PaymentOutcome is the matching engine's verdict for one obligation.
// DayOffset is signed: positive means late, negative means early.
type PaymentOutcome struct {
	ObligationID string          `json:"obligation_id"`
	Amount       decimal.Decimal `json:"amount"`
	ExpectedDate time.Time       `json:"expected_date"`
	MatchedDate  *time.Time      `json:"matched_date,omitempty"`
	Status       PaymentStatus   `json:"status"`
	DayOffset    int             `json:"day_offset"`
	Notes        string          `json:"notes"`
}

// IsPaid reports whether the obligation was matched to a payment.
func (p PaymentOutcome) IsPaid() bool {
	return p.Status == StatusReceived
}

// IsOverdue reports whether the obligation is past its grace period unpaid.
func (p PaymentOutcome) IsOverdue() bool {
	return p.Status == StatusOverdue
}

// DisplayName labels the outcome the same way as its obligation.
func (p PaymentOutcome) DisplayName() string {
	return garageLabel(p.ObligationID)
}

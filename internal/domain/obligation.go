package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Obligation is a recurring rental payment owed for a single garage.
type Obligation struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	OriginDate time.Time       `json:"origin_date"`
	PaymentDay int             `json:"payment_day"`
}

// NewObligation validates and builds an Obligation. The amount is rounded to
// two decimal places.
func NewObligation(id string, amount decimal.Decimal, originDate time.Time, paymentDay int) (Obligation, error) {
	if id == "" {
		return Obligation{}, fmt.Errorf("%w: identifier cannot be empty", ErrInvalidObligation)
	}
	if !amount.IsPositive() {
		return Obligation{}, fmt.Errorf("%w: amount %s for %s must be positive", ErrInvalidObligation, amount, id)
	}
	if paymentDay < 1 || paymentDay > 31 {
		return Obligation{}, fmt.Errorf("%w: payment day %d for %s must be between 1 and 31", ErrInvalidObligation, paymentDay, id)
	}
	return Obligation{
		ID:         id,
		Amount:     amount.Round(2),
		OriginDate: DateOf(originDate),
		PaymentDay: paymentDay,
	}, nil
}

// NewObligationFromOriginDate builds an Obligation whose payment day is the
// day-of-month of the rental origin date.
func NewObligationFromOriginDate(id string, amount decimal.Decimal, originDate time.Time) (Obligation, error) {
	return NewObligation(id, amount, originDate, originDate.Day())
}

// DisplayName is the human-readable label used in reports.
func (o Obligation) DisplayName() string {
	return garageLabel(o.ID)
}

func garageLabel(id string) string {
	return "Garage #" + id
}

func (o Obligation) String() string {
	return fmt.Sprintf("Obligation(id=%s, amount=%s, day=%d)", o.ID, o.Amount.StringFixed(2), o.PaymentDay)
}

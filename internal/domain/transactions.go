package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTransactionSource is used when the ingestion layer does not name one.
const DefaultTransactionSource = "bank_statement"

// transferKeywords mark a category as an incoming transfer.
var transferKeywords = []string{"перевод", "сбп", "карту", "transfer"}

// IncomingTransaction is a credit line from a bank statement. Debits are
// filtered out before transactions reach the engine.
type IncomingTransaction struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	Description string          `json:"description,omitempty"`
}

// NewIncomingTransaction validates and builds an IncomingTransaction.
func NewIncomingTransaction(date time.Time, amount decimal.Decimal, category, source string) (IncomingTransaction, error) {
	if !amount.IsPositive() {
		return IncomingTransaction{}, fmt.Errorf("%w: amount %s must be positive", ErrInvalidTransaction, amount)
	}
	if strings.TrimSpace(category) == "" {
		return IncomingTransaction{}, fmt.Errorf("%w: category cannot be empty", ErrInvalidTransaction)
	}
	if source == "" {
		source = DefaultTransactionSource
	}
	return IncomingTransaction{
		Date:     DateOf(date),
		Amount:   amount,
		Category: category,
		Source:   source,
	}, nil
}

// WithDescription returns a copy of the transaction carrying the given
// free-text description.
func (t IncomingTransaction) WithDescription(description string) IncomingTransaction {
	t.Description = description
	return t
}

// MatchesAmount reports whether the transaction amount is within tolerance of
// target (absolute difference, inclusive).
func (t IncomingTransaction) MatchesAmount(target, tolerance decimal.Decimal) bool {
	return t.Amount.Sub(target).Abs().LessThanOrEqual(tolerance)
}

// IsTransferIn reports whether the category looks like an incoming transfer.
func (t IncomingTransaction) IsTransferIn() bool {
	category := strings.ToLower(t.Category)
	for _, keyword := range transferKeywords {
		if strings.Contains(category, keyword) {
			return true
		}
	}
	return false
}

func (t IncomingTransaction) String() string {
	return fmt.Sprintf("Transaction(date=%s, amount=%s, category=%s)", t.Date.Format(time.DateOnly), t.Amount.StringFixed(2), t.Category)
}

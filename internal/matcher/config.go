package matcher

import (
	"fmt"

	"github.com/shopspring/decimal"

	"garage-reconciliation/internal/status"
)

// Config holds the matching windows and amount tolerance.
type Config struct {
	// SearchWindowDays is how many days before the expected date the narrow
	// search looks.
	SearchWindowDays int
	// GracePeriodDays is how many days after the expected date the narrow
	// search looks, and how long a missing payment stays PENDING.
	GracePeriodDays int
	// AmountTolerance is the largest absolute difference between a
	// transaction and an obligation amount that still counts as a match.
	AmountTolerance decimal.Decimal
}

// DefaultConfig returns a 7-day search window, a 3-day grace period and a
// one-cent tolerance.
func DefaultConfig() Config {
	return Config{
		SearchWindowDays: 7,
		GracePeriodDays:  status.DefaultGracePeriodDays,
		AmountTolerance:  decimal.New(1, -2),
	}
}

// Validate rejects negative windows and a negative tolerance.
func (c Config) Validate() error {
	if c.SearchWindowDays < 0 {
		return fmt.Errorf("search window days must not be negative, got %d", c.SearchWindowDays)
	}
	if c.GracePeriodDays < 0 {
		return fmt.Errorf("grace period days must not be negative, got %d", c.GracePeriodDays)
	}
	if c.AmountTolerance.IsNegative() {
		return fmt.Errorf("amount tolerance must not be negative, got %s", c.AmountTolerance)
	}
	return nil
}

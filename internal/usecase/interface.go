package usecase

import (
	"context"

	"garage-reconciliation/internal/domain"
)

// TransactionRepository defines the interface for fetching obligations and
// bank statement data.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TransactionRepository
type TransactionRepository interface {
	GetObligations(ctx context.Context, path string) ([]domain.Obligation, error)
	GetTransactions(ctx context.Context, path string) ([]domain.IncomingTransaction, error)
	// GetStatementPeriod returns nil when the statement carries no period.
	GetStatementPeriod(ctx context.Context, path string) (*domain.StatementPeriod, error)
}

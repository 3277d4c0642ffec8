package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"garage-reconciliation/internal/domain"
	"garage-reconciliation/internal/matcher"
	"garage-reconciliation/internal/schedule"
)

// Request names the input files and the point in time being analyzed.
type Request struct {
	ObligationsPath string
	StatementPath   string
	AnalysisDate    time.Time
	// TargetMonth overrides the month expected dates are computed for.
	TargetMonth *time.Time
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	repo   TransactionRepository
	engine *matcher.Engine
	logger *slog.Logger
	now    func() time.Time
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(repo TransactionRepository, engine *matcher.Engine, logger *slog.Logger) *ReconciliationUseCase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ReconciliationUseCase{
		repo:   repo,
		engine: engine,
		logger: logger,
		now:    time.Now,
	}
}

// Reconcile loads obligations and the bank statement, matches them and builds
// the report.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, req Request) (*domain.ReconciliationReport, error) {
	// Step 1: Data Ingestion
	obligations, err := uc.repo.GetObligations(ctx, req.ObligationsPath)
	if err != nil {
		return nil, fmt.Errorf("could not get obligations: %w", err)
	}
	uc.logger.Info("loaded obligations", "count", len(obligations), "file", req.ObligationsPath)

	transactions, err := uc.repo.GetTransactions(ctx, req.StatementPath)
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}
	uc.logger.Info("loaded transactions", "count", len(transactions), "file", req.StatementPath)

	// Step 2: Target month selection
	targetMonth, period := uc.targetMonth(ctx, req)

	report, err := uc.reconcile(req.AnalysisDate, targetMonth, obligations, transactions)
	if err != nil {
		return nil, err
	}
	if period != nil {
		if note := uc.periodWarning(*period, transactions); note != "" {
			report.Notes = append(report.Notes, note)
		}
	}
	report.ObligationsFile = req.ObligationsPath
	report.StatementFile = req.StatementPath
	return report, nil
}

// ReconcileRecords runs the reconciliation over records that are already in
// memory. A nil targetMonth selects the analysis date's month.
func (uc *ReconciliationUseCase) ReconcileRecords(
	ctx context.Context,
	analysisDate time.Time,
	targetMonth *time.Time,
	obligations []domain.Obligation,
	transactions []domain.IncomingTransaction,
) (*domain.ReconciliationReport, error) {
	month := schedule.MonthStart(analysisDate)
	if targetMonth != nil {
		month = schedule.MonthStart(*targetMonth)
	}
	return uc.reconcile(analysisDate, month, obligations, transactions)
}

// targetMonth also returns the statement period when it was consulted and
// found.
func (uc *ReconciliationUseCase) targetMonth(ctx context.Context, req Request) (time.Time, *domain.StatementPeriod) {
	if req.TargetMonth != nil {
		return schedule.MonthStart(*req.TargetMonth), nil
	}

	period, err := uc.repo.GetStatementPeriod(ctx, req.StatementPath)
	if err != nil {
		uc.logger.Error("failed to extract statement period", "file", req.StatementPath, "error", err)
	}
	if period != nil {
		uc.logger.Info("using statement period for expected dates",
			"period", period.String(), "days", period.DurationDays())
		return period.TargetMonth(), period
	}

	month := schedule.MonthStart(req.AnalysisDate)
	uc.logger.Warn("no statement period detected, using analysis date month", "month", month.Format("2006-01"))
	return month, nil
}

// periodWarning flags transactions dated outside the statement's own period,
// which usually means the wrong file or a truncated export.
func (uc *ReconciliationUseCase) periodWarning(period domain.StatementPeriod, transactions []domain.IncomingTransaction) string {
	outside := 0
	for _, tx := range transactions {
		if !period.Contains(tx.Date) {
			outside++
		}
	}
	if outside == 0 {
		return ""
	}
	note := fmt.Sprintf("Transactions outside statement period %s - %s: %d",
		period.Start.Format(time.DateOnly), period.End.Format(time.DateOnly), outside)
	uc.logger.Warn(note)
	return note
}

func (uc *ReconciliationUseCase) reconcile(
	analysisDate, targetMonth time.Time,
	obligations []domain.Obligation,
	transactions []domain.IncomingTransaction,
) (*domain.ReconciliationReport, error) {
	// Step 3: Integrity checks
	notes := uc.integrityWarnings(obligations)

	// Step 4: Matching
	payments := uc.engine.Match(obligations, transactions, analysisDate, targetMonth)

	// Step 5: Report
	report, err := domain.NewReconciliationReport(analysisDate, payments)
	if err != nil {
		return nil, fmt.Errorf("could not build report: %w", err)
	}
	report.RunID = uuid.NewString()
	report.GeneratedAt = uc.now()
	report.TargetMonth = targetMonth
	report.Notes = append(report.Notes, notes...)

	uc.logger.Info("reconciliation completed",
		"run_id", report.RunID,
		"garages", report.Summary.TotalGarages,
		"received", report.Summary.ReceivedCount,
		"overdue", report.Summary.OverdueCount)
	return report, nil
}

// integrityWarnings flags data that makes matching ambiguous: shared
// amounts and payment days that do not exist in every month.
func (uc *ReconciliationUseCase) integrityWarnings(obligations []domain.Obligation) []string {
	var warnings []string

	for _, c := range matcher.FindAmountConflicts(obligations) {
		warnings = append(warnings, fmt.Sprintf("Duplicate rental amount %s: garages %s",
			c.Amount.StringFixed(2), strings.Join(c.ObligationIDs, ", ")))
	}

	var lateDays []string
	for _, o := range obligations {
		if o.PaymentDay > 28 {
			lateDays = append(lateDays, o.ID)
		}
	}
	if len(lateDays) > 0 {
		warnings = append(warnings, fmt.Sprintf("Garages with payment days > 28: %s (may cause issues in short months)",
			strings.Join(lateDays, ", ")))
	}

	for _, w := range warnings {
		uc.logger.Warn(w)
	}
	return warnings
}

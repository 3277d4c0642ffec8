package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary provides high-level statistics of a reconciliation run.
type Summary struct {
	TotalGarages   int             `json:"total_garages"`
	ReceivedCount  int             `json:"received_count"`
	OverdueCount   int             `json:"overdue_count"`
	PendingCount   int             `json:"pending_count"`
	NotDueCount    int             `json:"not_due_count"`
	UnclearCount   int             `json:"unclear_count"`
	TotalExpected  decimal.Decimal `json:"total_expected"`
	TotalReceived  decimal.Decimal `json:"total_received"`
	CollectionRate float64         `json:"collection_rate"`
}

// ReconciliationReport is the top-level structure for the final output.
type ReconciliationReport struct {
	RunID           string           `json:"run_id,omitempty"`
	GeneratedAt     time.Time        `json:"generated_at"`
	AnalysisDate    time.Time        `json:"analysis_date"`
	TargetMonth     time.Time        `json:"target_month"`
	ObligationsFile string           `json:"obligations_file,omitempty"`
	StatementFile   string           `json:"statement_file,omitempty"`
	Summary         Summary          `json:"summary"`
	Payments        []PaymentOutcome `json:"payments"`
	Notes           []string         `json:"notes"`
}

// NewReconciliationReport aggregates outcomes into a report. It fails with
// ErrEmptyReport when there are no outcomes.
func NewReconciliationReport(analysisDate time.Time, payments []PaymentOutcome) (*ReconciliationReport, error) {
	if len(payments) == 0 {
		return nil, ErrEmptyReport
	}
	return &ReconciliationReport{
		AnalysisDate: DateOf(analysisDate),
		Summary:      Summarize(payments),
		Payments:     payments,
		Notes:        make([]string, 0),
	}, nil
}

// Summarize computes per-status counts, totals and the collection rate.
func Summarize(payments []PaymentOutcome) Summary {
	s := Summary{
		TotalGarages:  len(payments),
		TotalExpected: decimal.Zero,
		TotalReceived: decimal.Zero,
	}
	for _, p := range payments {
		s.TotalExpected = s.TotalExpected.Add(p.Amount)
		switch {
		case p.IsPaid():
			s.ReceivedCount++
			s.TotalReceived = s.TotalReceived.Add(p.Amount)
		case p.IsOverdue():
			s.OverdueCount++
		case p.Status == StatusPending:
			s.PendingCount++
		case p.Status == StatusNotDue:
			s.NotDueCount++
		case p.Status == StatusUnclear:
			s.UnclearCount++
		}
	}
	if s.TotalGarages > 0 {
		s.CollectionRate = float64(s.ReceivedCount) / float64(s.TotalGarages) * 100
	}
	return s
}

// OverduePayments returns the outcomes with status OVERDUE, in report order.
func (r *ReconciliationReport) OverduePayments() []PaymentOutcome {
	return r.filter(StatusOverdue)
}

// PendingPayments returns the outcomes with status PENDING, in report order.
func (r *ReconciliationReport) PendingPayments() []PaymentOutcome {
	return r.filter(StatusPending)
}

func (r *ReconciliationReport) filter(status PaymentStatus) []PaymentOutcome {
	var out []PaymentOutcome
	for _, p := range r.Payments {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

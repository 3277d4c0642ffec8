// Package presenter renders reconciliation reports for humans.
package presenter

import (
	"fmt"
	"io"
	"strings"

	"garage-reconciliation/internal/domain"
)

const separator = "=================================================="

// WriteSummary writes a plain-text summary of the report to w.
func WriteSummary(w io.Writer, report *domain.ReconciliationReport) error {
	_, err := io.WriteString(w, Summary(report))
	return err
}

// Summary renders the report's headline figures and notes.
func Summary(report *domain.ReconciliationReport) string {
	s := report.Summary
	var b strings.Builder

	fmt.Fprintf(&b, "Payment Analysis Summary (%s)\n", report.AnalysisDate.Format("2006-01-02"))
	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "Total garages: %d\n", s.TotalGarages)
	fmt.Fprintf(&b, "Received: %d\n", s.ReceivedCount)
	fmt.Fprintf(&b, "Overdue: %d\n", s.OverdueCount)
	fmt.Fprintf(&b, "Pending: %d\n", s.PendingCount)
	fmt.Fprintf(&b, "Not due: %d\n", s.NotDueCount)
	fmt.Fprintf(&b, "Unclear: %d\n", s.UnclearCount)
	fmt.Fprintf(&b, "Collection rate: %.1f%%\n", s.CollectionRate)
	fmt.Fprintf(&b, "Total expected: %s\n", s.TotalExpected.StringFixed(2))
	fmt.Fprintf(&b, "Total received: %s\n", s.TotalReceived.StringFixed(2))

	if overdue := report.OverduePayments(); len(overdue) > 0 {
		b.WriteString("\nOverdue:\n")
		for _, p := range overdue {
			fmt.Fprintf(&b, "- %s: %s, due %s, %d days past grace\n",
				p.DisplayName(), p.Amount.StringFixed(2), p.ExpectedDate.Format("2006-01-02"), p.DayOffset)
		}
	}

	if pending := report.PendingPayments(); len(pending) > 0 {
		b.WriteString("\nPending:\n")
		for _, p := range pending {
			fmt.Fprintf(&b, "- %s: %s, due %s, day %d of grace\n",
				p.DisplayName(), p.Amount.StringFixed(2), p.ExpectedDate.Format("2006-01-02"), p.DayOffset)
		}
	}

	if len(report.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, note := range report.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}
	return b.String()
}

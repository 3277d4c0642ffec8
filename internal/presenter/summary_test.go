package presenter

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage-reconciliation/internal/domain"
)

func TestSummary(t *testing.T) {
	payments := []domain.PaymentOutcome{
		{ObligationID: "1", Amount: decimal.RequireFromString("3000"), Status: domain.StatusReceived},
		{ObligationID: "2", Amount: decimal.RequireFromString("3500"), Status: domain.StatusReceived},
		{
			ObligationID: "3",
			Amount:       decimal.RequireFromString("2500.5"),
			ExpectedDate: domain.Date(2025, 1, 15),
			Status:       domain.StatusOverdue,
			DayOffset:    1,
		},
		{
			ObligationID: "4",
			Amount:       decimal.RequireFromString("1800"),
			ExpectedDate: domain.Date(2025, 1, 17),
			Status:       domain.StatusPending,
			DayOffset:    2,
		},
	}
	report, err := domain.NewReconciliationReport(domain.Date(2025, 1, 19), payments)
	require.NoError(t, err)
	report.Notes = append(report.Notes, "Duplicate rental amount 3000.00: garages 1, 4")

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, report))
	out := buf.String()

	assert.Contains(t, out, "Payment Analysis Summary (2025-01-19)\n"+separator+"\n")
	assert.Contains(t, out, "Total garages: 4\n")
	assert.Contains(t, out, "Received: 2\n")
	assert.Contains(t, out, "Overdue: 1\n")
	assert.Contains(t, out, "Pending: 1\n")
	assert.Contains(t, out, "Collection rate: 50.0%\n")
	assert.Contains(t, out, "Total expected: 10800.50\n")
	assert.Contains(t, out, "Total received: 6500.00\n")
	assert.Contains(t, out, "Overdue:\n- Garage #3: 2500.50, due 2025-01-15, 1 days past grace\n")
	assert.Contains(t, out, "Pending:\n- Garage #4: 1800.00, due 2025-01-17, day 2 of grace\n")
	assert.Contains(t, out, "Notes:\n- Duplicate rental amount 3000.00: garages 1, 4\n")
}

func TestSummary_NoNotes(t *testing.T) {
	report, err := domain.NewReconciliationReport(domain.Date(2025, 1, 10), []domain.PaymentOutcome{
		{ObligationID: "1", Amount: decimal.RequireFromString("100"), Status: domain.StatusNotDue},
	})
	require.NoError(t, err)

	out := Summary(report)
	assert.Contains(t, out, "Collection rate: 0.0%")
	assert.NotContains(t, out, "Notes:")
	assert.NotContains(t, out, "Overdue:\n")
	assert.NotContains(t, out, "Pending:\n")
}

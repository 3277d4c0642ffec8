package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"garage-reconciliation/internal/domain"
	"garage-reconciliation/internal/schedule"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestClassifier_Classify(t *testing.T) {
	expected := domain.Date(2025, 1, 15)
	c := NewClassifier(DefaultGracePeriodDays)

	tests := []struct {
		name       string
		in         Input
		wantStatus domain.PaymentStatus
		wantOffset int
	}{
		{
			name:       "day before expected is not due",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 14)},
			wantStatus: domain.StatusNotDue,
		},
		{
			name:       "expected day is pending",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 15)},
			wantStatus: domain.StatusPending,
		},
		{
			name:       "last grace day is pending",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 18)},
			wantStatus: domain.StatusPending,
			wantOffset: 3,
		},
		{
			name:       "first day after grace is overdue",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 19)},
			wantStatus: domain.StatusOverdue,
			wantOffset: 1,
		},
		{
			name:       "long overdue",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 2, 15)},
			wantStatus: domain.StatusOverdue,
			wantOffset: 28,
		},
		{
			name:       "multiple payments are unclear",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 20), HasPayment: true, PaidOn: datePtr(expected), MultiplePayments: true},
			wantStatus: domain.StatusUnclear,
		},
		{
			name:       "early payment inside window",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 20), HasPayment: true, PaidOn: datePtr(domain.Date(2025, 1, 8))},
			wantStatus: domain.StatusReceived,
			wantOffset: -7,
		},
		{
			name:       "late payment inside grace",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 20), HasPayment: true, PaidOn: datePtr(domain.Date(2025, 1, 18))},
			wantStatus: domain.StatusReceived,
			wantOffset: 3,
		},
		{
			name:       "payment too early is unclear",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 20), HasPayment: true, PaidOn: datePtr(domain.Date(2025, 1, 7))},
			wantStatus: domain.StatusUnclear,
		},
		{
			name:       "payment too late is unclear",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 20), HasPayment: true, PaidOn: datePtr(domain.Date(2025, 1, 19))},
			wantStatus: domain.StatusUnclear,
		},
		{
			name:       "payment without a date is received",
			in:         Input{Expected: expected, Analysis: domain.Date(2025, 1, 10), HasPayment: true},
			wantStatus: domain.StatusReceived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStatus, gotOffset := c.Classify(tt.in)
			assert.Equal(t, tt.wantStatus, gotStatus)
			assert.Equal(t, tt.wantOffset, gotOffset)
		})
	}
}

func TestClassifier_CustomGracePeriod(t *testing.T) {
	c := NewClassifier(0)
	expected := domain.Date(2025, 1, 15)

	st, offset := c.Classify(Input{Expected: expected, Analysis: expected})
	assert.Equal(t, domain.StatusPending, st)
	assert.Equal(t, 0, offset)

	st, offset = c.Classify(Input{Expected: expected, Analysis: domain.Date(2025, 1, 16)})
	assert.Equal(t, domain.StatusOverdue, st)
	assert.Equal(t, 1, offset)
}

func TestClassifier_OverdueAgreesWithSchedule(t *testing.T) {
	expected := domain.Date(2025, 2, 28)
	for _, grace := range []int{0, 3, 5} {
		c := NewClassifier(grace)
		for day := 0; day < 40; day++ {
			analysis := expected.AddDate(0, 0, day)
			st, offset := c.Classify(Input{Expected: expected, Analysis: analysis})

			overdue := schedule.IsOverdue(expected, analysis, grace)
			assert.Equal(t, overdue, st == domain.StatusOverdue, "grace %d, day %d", grace, day)
			if overdue {
				assert.Equal(t, schedule.DaysOverdue(expected, analysis, grace), offset, "grace %d, day %d", grace, day)
			} else {
				assert.Equal(t, domain.StatusPending, st, "grace %d, day %d", grace, day)
			}
		}
	}
}

func TestPaymentDelay(t *testing.T) {
	assert.Equal(t, 2, PaymentDelay(domain.Date(2025, 1, 15), domain.Date(2025, 1, 17)))
	assert.Equal(t, -3, PaymentDelay(domain.Date(2025, 1, 15), domain.Date(2025, 1, 12)))
}

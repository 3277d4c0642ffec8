package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage-reconciliation/internal/domain"
	"garage-reconciliation/internal/matcher"
	"garage-reconciliation/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	engine := matcher.NewEngine(matcher.DefaultConfig(), nil)
	uc := usecase.NewReconciliationUseCase(nil, engine, nil)
	srv := httptest.NewServer(NewRouter(uc, nil))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestReconcile(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/v1/reconcile", `{
		"analysis_date": "2025-01-19",
		"obligations": [
			{"id": "1", "amount": "3000", "origin_date": "2024-03-15"},
			{"id": "2", "amount": 2500, "origin_date": "2024-05-01", "payment_day": 15}
		],
		"transactions": [
			{"date": "2025-01-14", "amount": "3000.00", "category": "Перевод СБП", "description": "garage 1"}
		]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report domain.ReconciliationReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	require.Len(t, report.Payments, 2)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 1, report.Summary.ReceivedCount)
	assert.Equal(t, 1, report.Summary.OverdueCount)

	received := report.Payments[0]
	assert.Equal(t, domain.StatusReceived, received.Status)
	assert.Equal(t, -1, received.DayOffset)
	require.NotNil(t, received.MatchedDate)
	assert.True(t, received.MatchedDate.Equal(time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC)))

	overdue := report.Payments[1]
	assert.Equal(t, "2", overdue.ObligationID)
	assert.Equal(t, domain.StatusOverdue, overdue.Status)
	assert.Equal(t, 1, overdue.DayOffset)
}

func TestReconcile_TargetMonthOverride(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/v1/reconcile", `{
		"analysis_date": "2025-03-05",
		"target_month": "2025-02",
		"obligations": [{"id": "7", "amount": "1000", "origin_date": "2024-01-31"}],
		"transactions": []
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report domain.ReconciliationReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Len(t, report.Payments, 1)
	assert.Equal(t, "2025-02-28", report.Payments[0].ExpectedDate.Format("2006-01-02"))
	assert.Equal(t, "2025-02", report.TargetMonth.Format("2006-01"))
}

func TestReconcile_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"analysis_date": `},
		{name: "unknown field", body: `{"analysis_date": "2025-01-19", "garages": []}`},
		{name: "bad analysis date", body: `{"analysis_date": "19.01.2025", "obligations": []}`},
		{name: "bad target month", body: `{"analysis_date": "2025-01-19", "target_month": "Jan", "obligations": []}`},
		{
			name: "invalid obligation",
			body: `{"analysis_date": "2025-01-19", "obligations": [{"id": "1", "amount": "-5", "origin_date": "2024-01-01"}]}`,
		},
		{
			name: "invalid transaction",
			body: `{"analysis_date": "2025-01-19",
				"obligations": [{"id": "1", "amount": "5", "origin_date": "2024-01-01"}],
				"transactions": [{"date": "2025-01-02", "amount": "5", "category": ""}]}`,
		},
		{name: "no obligations", body: `{"analysis_date": "2025-01-19", "obligations": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/api/v1/reconcile", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestExpectedDates(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/v1/expected-dates", `{
		"target_month": "2024-02",
		"obligations": [
			{"id": "1", "amount": "100", "origin_date": "2023-01-31"},
			{"id": "2", "amount": "200", "origin_date": "2023-01-10"}
		]
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var dates []expectedDate
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&dates))
	assert.Equal(t, []expectedDate{
		{ID: "1", ExpectedDate: "2024-02-29"},
		{ID: "2", ExpectedDate: "2024-02-10"},
	}, dates)
}

func TestExpectedDates_RequiresMonth(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/api/v1/expected-dates", `{"obligations": []}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

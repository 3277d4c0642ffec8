package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"

	"garage-reconciliation/internal/domain"
	"garage-reconciliation/internal/schedule"
	"garage-reconciliation/internal/usecase"
)

const maxBodyBytes = 4 << 20

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	reconciler *usecase.ReconciliationUseCase
	logger     *slog.Logger
}

type obligationPayload struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	OriginDate string          `json:"origin_date"`
	PaymentDay int             `json:"payment_day,omitempty"`
}

type transactionPayload struct {
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Source      string          `json:"source,omitempty"`
	Description string          `json:"description,omitempty"`
}

type reconcileRequest struct {
	AnalysisDate string               `json:"analysis_date"`
	TargetMonth  string               `json:"target_month,omitempty"`
	Obligations  []obligationPayload  `json:"obligations"`
	Transactions []transactionPayload `json:"transactions"`
}

type expectedDatesRequest struct {
	TargetMonth string              `json:"target_month"`
	Obligations []obligationPayload `json:"obligations"`
}

type expectedDate struct {
	ID           string `json:"id"`
	ExpectedDate string `json:"expected_date"`
}

// --- helpers ---

func (h *Handlers) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.writeJSON(w, r, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func parseDay(field, s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD, got %q", field, s)
	}
	return t, nil
}

// parseMonth accepts YYYY-MM or a full date.
func parseMonth(field, s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	t, err := parseDay(field, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM, got %q", field, s)
	}
	return schedule.MonthStart(t), nil
}

func toObligations(payloads []obligationPayload) ([]domain.Obligation, error) {
	obligations := make([]domain.Obligation, 0, len(payloads))
	for i, p := range payloads {
		origin, err := parseDay(fmt.Sprintf("obligations[%d].origin_date", i), p.OriginDate)
		if err != nil {
			return nil, err
		}
		var o domain.Obligation
		if p.PaymentDay == 0 {
			o, err = domain.NewObligationFromOriginDate(p.ID, p.Amount, origin)
		} else {
			o, err = domain.NewObligation(p.ID, p.Amount, origin, p.PaymentDay)
		}
		if err != nil {
			return nil, fmt.Errorf("obligations[%d]: %w", i, err)
		}
		obligations = append(obligations, o)
	}
	return obligations, nil
}

func toTransactions(payloads []transactionPayload) ([]domain.IncomingTransaction, error) {
	transactions := make([]domain.IncomingTransaction, 0, len(payloads))
	for i, p := range payloads {
		date, err := parseDay(fmt.Sprintf("transactions[%d].date", i), p.Date)
		if err != nil {
			return nil, err
		}
		tx, err := domain.NewIncomingTransaction(date, p.Amount, p.Category, p.Source)
		if err != nil {
			return nil, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		transactions = append(transactions, tx.WithDescription(p.Description))
	}
	return transactions, nil
}

// --- Health ---

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Reconcile ---

func (h *Handlers) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req reconcileRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	analysisDate, err := parseDay("analysis_date", req.AnalysisDate)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var targetMonth *time.Time
	if req.TargetMonth != "" {
		month, err := parseMonth("target_month", req.TargetMonth)
		if err != nil {
			h.writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		targetMonth = &month
	}

	obligations, err := toObligations(req.Obligations)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	transactions, err := toTransactions(req.Transactions)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.reconciler.ReconcileRecords(r.Context(), analysisDate, targetMonth, obligations, transactions)
	if errors.Is(err, domain.ErrEmptyReport) {
		h.writeError(w, r, http.StatusBadRequest, "at least one obligation is required")
		return
	}
	if err != nil {
		h.logger.Error("reconciliation failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
		h.writeError(w, r, http.StatusInternalServerError, "reconciliation failed")
		return
	}

	h.writeJSON(w, r, http.StatusOK, report)
}

// --- ExpectedDates ---

func (h *Handlers) ExpectedDates(w http.ResponseWriter, r *http.Request) {
	var req expectedDatesRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	month, err := parseMonth("target_month", req.TargetMonth)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	obligations, err := toObligations(req.Obligations)
	if err != nil {
		h.writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	dates := make([]expectedDate, 0, len(obligations))
	for _, o := range obligations {
		dates = append(dates, expectedDate{
			ID:           o.ID,
			ExpectedDate: schedule.ExpectedDate(o, month).Format("2006-01-02"),
		})
	}
	h.writeJSON(w, r, http.StatusOK, dates)
}

// Package matcher matches incoming bank transactions to recurring rental
// obligations.
//
// Obligations are processed strictly in input order. Each one gets:
//   - a narrow search in [expected-SearchWindowDays, expected+GracePeriodDays],
//     picking the candidate closest to the expected date;
//   - failing that, a wide search over the whole statement, picking the
//     earliest candidate.
//
// A selected transaction is consumed and can not satisfy a later obligation,
// so an earlier obligation with the same amount wins the contested
// transaction. Transactions dated after the analysis date are never used.
//
// Example usage:
//
//	engine := matcher.NewEngine(matcher.DefaultConfig(), logger)
//	outcomes := engine.Match(obligations, transactions, analysisDate, targetMonth)
package matcher

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"garage-reconciliation/internal/domain"
	"garage-reconciliation/internal/schedule"
	"garage-reconciliation/internal/status"
)

// Notes attached to outcomes.
const (
	NotePaymentMatched  = "Payment matched"
	NoteClosestMatch    = "Multiple matches found, selected closest to expected date"
	NoteWideSearch      = "Wide search match"
	NoteNoPayment       = "No matching payment found"
	noteWideEarliest    = "Wide search - earliest of %d matches"
	noteAmountConflict  = "Amount conflict with garages: %s"
	notesSeparator      = "; "
	conflictIDSeparator = ", "
)

// Engine runs the matching pass. It holds no state between runs.
type Engine struct {
	config     Config
	classifier *status.Classifier
	logger     *slog.Logger
}

// NewEngine creates an engine. A nil logger discards all output.
func NewEngine(config Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		config:     config,
		classifier: status.NewClassifier(config.GracePeriodDays),
		logger:     logger,
	}
}

// selection is a chosen transaction, referenced by its index in the input
// slice.
type selection struct {
	index int
	note  string
}

// Match returns exactly one outcome per obligation, in input order.
func (e *Engine) Match(
	obligations []domain.Obligation,
	transactions []domain.IncomingTransaction,
	analysisDate time.Time,
	targetMonth time.Time,
) []domain.PaymentOutcome {
	analysisDate = domain.DateOf(analysisDate)
	consumed := make([]bool, len(transactions))
	peers := conflictingPeers(obligations)

	outcomes := make([]domain.PaymentOutcome, 0, len(obligations))
	for i, o := range obligations {
		expected := schedule.ExpectedDate(o, targetMonth)

		sel, found := e.narrowSearch(o, expected, transactions, consumed, analysisDate)
		if !found {
			sel, found = e.wideSearch(o, transactions, consumed, analysisDate)
		}

		var outcome domain.PaymentOutcome
		if found {
			consumed[sel.index] = true
			outcome = matchedOutcome(o, expected, transactions[sel.index], sel.note)
		} else {
			outcome = e.unmatchedOutcome(o, expected, analysisDate)
		}

		if ids := peers[i]; len(ids) > 0 {
			outcome.Notes += notesSeparator + fmt.Sprintf(noteAmountConflict, strings.Join(ids, conflictIDSeparator))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

// eligible reports whether tx is unused, matches the amount and is not dated
// after the analysis date.
func (e *Engine) eligible(o domain.Obligation, tx domain.IncomingTransaction, used bool, analysisDate time.Time) bool {
	return !used &&
		tx.MatchesAmount(o.Amount, e.config.AmountTolerance) &&
		!tx.Date.After(analysisDate)
}

func (e *Engine) narrowSearch(
	o domain.Obligation,
	expected time.Time,
	transactions []domain.IncomingTransaction,
	consumed []bool,
	analysisDate time.Time,
) (selection, bool) {
	windowStart := expected.AddDate(0, 0, -e.config.SearchWindowDays)
	windowEnd := expected.AddDate(0, 0, e.config.GracePeriodDays)

	var candidates []int
	for i, tx := range transactions {
		if !e.eligible(o, tx, consumed[i], analysisDate) {
			continue
		}
		if tx.Date.Before(windowStart) || tx.Date.After(windowEnd) {
			continue
		}
		candidates = append(candidates, i)
	}

	switch len(candidates) {
	case 0:
		return selection{}, false
	case 1:
		e.logger.Debug("narrow match", "obligation", o.ID, "date", transactions[candidates[0]].Date.Format(time.DateOnly))
		return selection{index: candidates[0], note: NotePaymentMatched}, true
	}

	best := candidates[0]
	bestDistance := absDays(expected, transactions[best].Date)
	for _, i := range candidates[1:] {
		if d := absDays(expected, transactions[i].Date); d < bestDistance {
			best, bestDistance = i, d
		}
	}
	e.logger.Debug("narrow search found several candidates, using closest",
		"obligation", o.ID, "candidates", len(candidates), "date", transactions[best].Date.Format(time.DateOnly))
	return selection{index: best, note: NoteClosestMatch}, true
}

func (e *Engine) wideSearch(
	o domain.Obligation,
	transactions []domain.IncomingTransaction,
	consumed []bool,
	analysisDate time.Time,
) (selection, bool) {
	var candidates []int
	for i, tx := range transactions {
		if e.eligible(o, tx, consumed[i], analysisDate) {
			candidates = append(candidates, i)
		}
	}

	switch len(candidates) {
	case 0:
		e.logger.Debug("wide search found no transactions", "obligation", o.ID, "amount", o.Amount.StringFixed(2))
		return selection{}, false
	case 1:
		e.logger.Info("wide search match", "obligation", o.ID, "date", transactions[candidates[0]].Date.Format(time.DateOnly))
		return selection{index: candidates[0], note: NoteWideSearch}, true
	}

	earliest := candidates[0]
	for _, i := range candidates[1:] {
		if transactions[i].Date.Before(transactions[earliest].Date) {
			earliest = i
		}
	}
	e.logger.Warn("wide search found several candidates, using earliest",
		"obligation", o.ID, "candidates", len(candidates), "date", transactions[earliest].Date.Format(time.DateOnly))
	return selection{index: earliest, note: fmt.Sprintf(noteWideEarliest, len(candidates))}, true
}

// matchedOutcome marks the obligation RECEIVED regardless of where the
// transaction was found.
func matchedOutcome(o domain.Obligation, expected time.Time, tx domain.IncomingTransaction, note string) domain.PaymentOutcome {
	paid := tx.Date
	return domain.PaymentOutcome{
		ObligationID: o.ID,
		Amount:       o.Amount,
		ExpectedDate: expected,
		MatchedDate:  &paid,
		Status:       domain.StatusReceived,
		DayOffset:    status.PaymentDelay(expected, paid),
		Notes:        note,
	}
}

func (e *Engine) unmatchedOutcome(o domain.Obligation, expected, analysisDate time.Time) domain.PaymentOutcome {
	st, offset := e.classifier.Classify(status.Input{
		Expected: expected,
		Analysis: analysisDate,
	})
	return domain.PaymentOutcome{
		ObligationID: o.ID,
		Amount:       o.Amount,
		ExpectedDate: expected,
		Status:       st,
		DayOffset:    offset,
		Notes:        NoteNoPayment,
	}
}

func absDays(a, b time.Time) int {
	d := domain.DaysBetween(a, b)
	if d < 0 {
		return -d
	}
	return d
}

package gateway

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"garage-reconciliation/internal/domain"
)

// periodMarker is the first cell of a statement row carrying the period.
const periodMarker = "period"

// dateLayouts are tried in order when parsing a date cell.
var dateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"02-01-2006",
}

// periodSummaryPattern matches the totals line printed by Sberbank statements.
var periodSummaryPattern = regexp.MustCompile(`(?i)итого\s+по\s+операциям\s+с\s+(\d{2}\.\d{2}\.\d{4})\s+по\s+(\d{2}\.\d{2}\.\d{4})`)

// CSVTransactionRepository implements the TransactionRepository interface for CSV files.
type CSVTransactionRepository struct {
	logger *slog.Logger
}

// NewCSVTransactionRepository creates a new repository instance. A nil logger
// discards all output.
func NewCSVTransactionRepository(logger *slog.Logger) *CSVTransactionRepository {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CSVTransactionRepository{logger: logger}
}

// GetObligations reads the garage registry: id,amount,origin_date[,payment_day].
// The payment day defaults to the origin date's day when the column is
// missing or empty.
func (r *CSVTransactionRepository) GetObligations(ctx context.Context, path string) ([]domain.Obligation, error) {
	var obligations []domain.Obligation
	err := readCSV(path, "garage registry", func(line int, record []string) error {
		if len(record) < 3 {
			return fmt.Errorf("line %d: expected at least 3 columns, got %d", line, len(record))
		}

		amount, err := parseAmount(record[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		origin, err := parseDate(record[2])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		var o domain.Obligation
		if len(record) > 3 && strings.TrimSpace(record[3]) != "" {
			day, err := strconv.Atoi(strings.TrimSpace(record[3]))
			if err != nil {
				return fmt.Errorf("line %d: could not parse payment day '%s': %w", line, record[3], err)
			}
			o, err = domain.NewObligation(strings.TrimSpace(record[0]), amount, origin, day)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
		} else {
			o, err = domain.NewObligationFromOriginDate(strings.TrimSpace(record[0]), amount, origin)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
		}

		obligations = append(obligations, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return obligations, nil
}

// GetTransactions reads a bank statement: date,amount,category[,description].
// Debits (non-positive amounts), credits whose category is not a transfer
// and period rows are skipped.
func (r *CSVTransactionRepository) GetTransactions(ctx context.Context, path string) ([]domain.IncomingTransaction, error) {
	source := filepath.Base(path)

	var transactions []domain.IncomingTransaction
	err := readCSV(path, "bank statement", func(line int, record []string) error {
		if isPeriodRow(record) || hasPeriodSummary(record) {
			return nil
		}
		if len(record) < 3 {
			return fmt.Errorf("line %d: expected at least 3 columns, got %d", line, len(record))
		}

		date, err := parseDate(record[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		amount, err := parseAmount(record[1])
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if !amount.IsPositive() {
			// Outgoing payment, not evidence of rent received.
			return nil
		}

		tx, err := domain.NewIncomingTransaction(date, amount, strings.TrimSpace(record[2]), source)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) > 3 {
			tx = tx.WithDescription(strings.TrimSpace(record[3]))
		}
		if !tx.IsTransferIn() {
			// Refunds, cash deposits and interest are not rent.
			r.logger.Debug("skipping non-transfer credit", "file", source, "line", line, "category", tx.Category, "amount", tx.Amount.StringFixed(2))
			return nil
		}

		transactions = append(transactions, tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetStatementPeriod scans the statement for a period row
// ("period,<start>,<end>") or a Sberbank totals line. It returns nil when
// neither is present.
func (r *CSVTransactionRepository) GetStatementPeriod(ctx context.Context, path string) (*domain.StatementPeriod, error) {
	var period *domain.StatementPeriod
	errFound := errors.New("period found")

	err := readCSV(path, "bank statement", func(line int, record []string) error {
		p, ok, err := periodFromRecord(record)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if ok {
			period = &p
			return errFound
		}
		return nil
	})
	if err != nil && !errors.Is(err, errFound) {
		return nil, err
	}
	return period, nil
}

// readCSV opens path, skips the header and hands every record to fn with
// its 1-based line number.
func readCSV(path, kind string, fn func(line int, record []string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s file %s: %w", kind, path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return fmt.Errorf("error reading record from %s: %w", path, err)
		}
		if isBlank(record) {
			continue
		}
		if err := fn(line, record); err != nil {
			return err
		}
	}
	return nil
}

func periodFromRecord(record []string) (domain.StatementPeriod, bool, error) {
	if isPeriodRow(record) {
		if len(record) < 3 {
			return domain.StatementPeriod{}, false, errors.New("period row needs start and end dates")
		}
		start, err := parseDate(record[1])
		if err != nil {
			return domain.StatementPeriod{}, false, err
		}
		end, err := parseDate(record[2])
		if err != nil {
			return domain.StatementPeriod{}, false, err
		}
		p, err := domain.NewStatementPeriod(start, end, strings.Join(record, ","))
		return p, err == nil, err
	}

	for _, cell := range record {
		m := periodSummaryPattern.FindStringSubmatch(cell)
		if m == nil {
			continue
		}
		start, err := parseDate(m[1])
		if err != nil {
			return domain.StatementPeriod{}, false, err
		}
		end, err := parseDate(m[2])
		if err != nil {
			return domain.StatementPeriod{}, false, err
		}
		p, err := domain.NewStatementPeriod(start, end, cell)
		return p, err == nil, err
	}
	return domain.StatementPeriod{}, false, nil
}

func isPeriodRow(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), periodMarker)
}

func hasPeriodSummary(record []string) bool {
	for _, cell := range record {
		if periodSummaryPattern.MatchString(cell) {
			return true
		}
	}
	return false
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseAmount accepts "3500.00", "3 500,00" and "+3500.00".
func parseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(" ", "", "\u00a0", "", ",", ".", "+", "").Replace(strings.TrimSpace(raw))
	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("could not parse amount '%s': %w", raw, err)
	}
	return amount, nil
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse date '%s'", raw)
}

package importers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/parsing"
)

var delimiterCandidates = []rune{',', ';', '\t', '|'}

// Table is a decoded CSV file with a header row.
type Table struct {
	Encoding  string     `json:"encoding"`
	Delimiter string     `json:"delimiter"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"-"`
}

// MapResult is the outcome of mapping table rows to canonical transactions.
// Skipped counts placeholder rows with no amount on either side.
type MapResult struct {
	Transactions []models.CanonicalTransaction `json:"transactions"`
	Skipped      int                           `json:"skipped"`
	Errors       []*RowError                   `json:"errors"`
}

type CSVImporter struct {
	logger *slog.Logger
}

func NewCSVImporter(logger *slog.Logger) *CSVImporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVImporter{logger: logger}
}

// Parse decodes data and reads it as a delimited file with a header row. The
// requested encoding is tried first, then the fallbacks; ErrMalformedFile is
// returned when none of them yields a table.
func (i *CSVImporter) Parse(data []byte, encoding string) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrMalformedFile)
	}
	if encoding == "" {
		encoding = DetectEncoding(data)
	}

	var lastErr error
	for _, candidate := range candidateEncodings(encoding) {
		decoded, err := Decode(data, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		table, err := readTable(decoded)
		if err != nil {
			lastErr = err
			i.logger.Debug("csv decode attempt failed",
				slog.String("encoding", candidate),
				slog.String("error", err.Error()))
			continue
		}
		table.Encoding = candidate
		return table, nil
	}

	if errors.Is(lastErr, ErrMalformedFile) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %v", ErrMalformedFile, lastErr)
}

func readTable(data []byte) (*Table, error) {
	delimiter := SniffDelimiter(data)

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: missing header row", ErrMalformedFile)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrMalformedFile, err)
	}

	columns := make([]string, len(header))
	named := 0
	for idx, h := range header {
		columns[idx] = strings.TrimSpace(h)
		if columns[idx] != "" {
			named++
		}
	}
	if named == 0 {
		return nil, fmt.Errorf("%w: header row is empty", ErrMalformedFile)
	}

	table := &Table{Delimiter: string(delimiter), Columns: columns}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
		}
		if isBlankRecord(rec) {
			continue
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, nil
}

// SniffDelimiter picks the candidate that occurs most often in the header
// line outside quotes. Comma wins ties and empty input.
func SniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}

	counts := make(map[rune]int, len(delimiterCandidates))
	inQuotes := false
	for _, r := range string(line) {
		if r == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[r]++
		}
	}

	best := ','
	for _, d := range delimiterCandidates {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

// MapRows converts each table row using mapping. Rows with an unparsable date
// or amount are reported in Errors; rows whose split debit and credit are
// both empty or zero are counted in Skipped.
func (i *CSVImporter) MapRows(table *Table, mapping ColumnMapping) (*MapResult, error) {
	index := make(map[string]int, len(table.Columns))
	for idx, c := range table.Columns {
		if _, exists := index[c]; !exists {
			index[c] = idx
		}
	}

	col := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		idx, ok := index[name]
		if !ok {
			return -1, fmt.Errorf("%w: column %q not found", ErrInvalidMapping, name)
		}
		return idx, nil
	}

	if mapping.Date == "" || mapping.Amount == "" {
		return nil, fmt.Errorf("%w: date and amount columns are required", ErrInvalidMapping)
	}
	dateCol, err := col(mapping.Date)
	if err != nil {
		return nil, err
	}

	amountCol, debitCol, creditCol := -1, -1, -1
	debitName, creditName, split := mapping.SplitAmount()
	if split {
		if debitCol, err = col(debitName); err != nil {
			return nil, err
		}
		if creditCol, err = col(creditName); err != nil {
			return nil, err
		}
		if debitCol < 0 || creditCol < 0 {
			return nil, fmt.Errorf("%w: split amount needs both columns", ErrInvalidMapping)
		}
	} else if amountCol, err = col(mapping.Amount); err != nil {
		return nil, err
	}

	descCol, err := col(mapping.Description)
	if err != nil {
		return nil, err
	}
	payeeCol, err := col(mapping.Payee)
	if err != nil {
		return nil, err
	}
	notesCol, err := col(mapping.Notes)
	if err != nil {
		return nil, err
	}
	externalCol, err := col(mapping.ExternalID)
	if err != nil {
		return nil, err
	}

	result := &MapResult{Transactions: make([]models.CanonicalTransaction, 0, len(table.Rows))}
	for n, rec := range table.Rows {
		// Line numbers in the source file: the header is line 1.
		row := n + 2
		field := func(idx int) string {
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}

		date, err := parsing.ParseDate(field(dateCol))
		if err != nil {
			result.Errors = append(result.Errors, &RowError{Row: row, Field: "date", Value: field(dateCol), Err: err})
			continue
		}

		var ct models.CanonicalTransaction
		if split {
			signed, err := splitAmount(row, field(debitCol), field(creditCol))
			if errors.Is(err, ErrEmptySplitAmount) {
				result.Skipped++
				continue
			}
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				result.Errors = append(result.Errors, rowErr)
				continue
			}
			ct = models.NewCanonicalTransaction(date, signed, row)
		} else {
			signed, err := parsing.ParseAmount(field(amountCol))
			if err != nil {
				result.Errors = append(result.Errors, &RowError{Row: row, Field: "amount", Value: field(amountCol), Err: err})
				continue
			}
			ct = models.NewCanonicalTransaction(date, signed, row)
		}

		ct.Description = models.Truncate(field(descCol), models.MaxDescriptionLength)
		ct.PayeeText = models.Truncate(field(payeeCol), models.MaxPayeeTextLength)
		ct.Notes = models.Truncate(field(notesCol), models.MaxNotesLength)
		ct.ExternalID = field(externalCol)
		result.Transactions = append(result.Transactions, ct)
	}

	if len(result.Errors) > 0 {
		i.logger.Debug("csv rows skipped",
			slog.Int("error_rows", len(result.Errors)),
			slog.Int("total_rows", len(table.Rows)))
	}
	return result, nil
}

// splitAmount resolves a debit/credit pair. A nonzero debit is an outflow and
// takes precedence; otherwise a nonzero credit is an inflow.
func splitAmount(row int, debitRaw, creditRaw string) (decimal.Decimal, error) {
	if !parsing.IsBlankAmount(debitRaw) {
		debit, err := parsing.ParseAmount(debitRaw)
		if err != nil {
			return decimal.Zero, &RowError{Row: row, Field: "debit", Value: debitRaw, Err: err}
		}
		if !debit.IsZero() {
			return debit.Abs().Neg(), nil
		}
	}
	if !parsing.IsBlankAmount(creditRaw) {
		credit, err := parsing.ParseAmount(creditRaw)
		if err != nil {
			return decimal.Zero, &RowError{Row: row, Field: "credit", Value: creditRaw, Err: err}
		}
		if !credit.IsZero() {
			return credit.Abs(), nil
		}
	}
	return decimal.Zero, ErrEmptySplitAmount
}

func isBlankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

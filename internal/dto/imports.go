package dto

import (
	"fmt"
	"strings"

	"fintrack/internal/importers"
	"fintrack/internal/models"
	"fintrack/internal/parsing"

	"github.com/shopspring/decimal"
)

// ColumnMappingRequest overrides the suggested CSV column mapping. A split
// debit/credit layout is given as "Debit|Credit" in Amount.
type ColumnMappingRequest struct {
	Date        string `json:"date" form:"date_column" validate:"required"`
	Amount      string `json:"amount" form:"amount_column" validate:"required"`
	Description string `json:"description,omitempty" form:"description_column"`
	Payee       string `json:"payee,omitempty" form:"payee_column"`
	Notes       string `json:"notes,omitempty" form:"notes_column"`
	ExternalID  string `json:"external_id,omitempty" form:"external_id_column"`
}

func (m ColumnMappingRequest) ToMapping() *importers.ColumnMapping {
	return &importers.ColumnMapping{
		Date:        m.Date,
		Amount:      m.Amount,
		Description: m.Description,
		Payee:       m.Payee,
		Notes:       m.Notes,
		ExternalID:  m.ExternalID,
	}
}

// UploadImportForm carries the non-file fields of a multipart upload.
type UploadImportForm struct {
	Format         string `form:"format" validate:"import_format"`
	SkipDuplicates bool   `form:"skip_duplicates"`
}

// ImportTransactionInput is one previewed row sent back for commit.
type ImportTransactionInput struct {
	Date        string `json:"date" validate:"required"`
	Amount      string `json:"amount" validate:"required,decimal_amount"`
	Direction   string `json:"direction" validate:"required,transaction_direction"`
	Description string `json:"description,omitempty" validate:"max=500"`
	Payee       string `json:"payee,omitempty" validate:"max=200"`
	Notes       string `json:"notes,omitempty"`
	ExternalID  string `json:"external_id,omitempty" validate:"max=255"`
	SourceRow   int    `json:"source_row" validate:"gte=0"`
}

// ToCanonical converts the row. Amounts are stored unsigned; the direction
// carries the sign.
func (in ImportTransactionInput) ToCanonical() (models.CanonicalTransaction, error) {
	date, err := parsing.ParseDate(in.Date)
	if err != nil {
		return models.CanonicalTransaction{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return models.CanonicalTransaction{}, fmt.Errorf("%w: %q", parsing.ErrInvalidAmount, in.Amount)
	}

	return models.CanonicalTransaction{
		Date:        date,
		Amount:      amount.Abs(),
		Direction:   strings.ToLower(in.Direction),
		Description: in.Description,
		PayeeText:   in.Payee,
		Notes:       in.Notes,
		ExternalID:  in.ExternalID,
		SourceRow:   in.SourceRow,
	}, nil
}

// CommitImportRequest persists rows returned by a preview.
type CommitImportRequest struct {
	SourceType   string                   `json:"source_type" validate:"required,import_format"`
	FileName     string                   `json:"file_name,omitempty" validate:"max=255"`
	FileFormat   string                   `json:"file_format,omitempty" validate:"max=50"`
	Transactions []ImportTransactionInput `json:"transactions" validate:"required,min=1,dive"`
	SkipRows     []int                    `json:"skip_rows,omitempty" validate:"dive,gte=0"`
	ErrorCount   int                      `json:"error_count" validate:"gte=0"`
	SkippedCount int                      `json:"skipped_count" validate:"gte=0"`
}

// Canonical converts every row, reporting the first failure by index.
func (r CommitImportRequest) Canonical() ([]models.CanonicalTransaction, error) {
	rows := make([]models.CanonicalTransaction, 0, len(r.Transactions))
	for i, in := range r.Transactions {
		row, err := in.ToCanonical()
		if err != nil {
			return nil, fmt.Errorf("transactions[%d]: %w", i, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ImportBatchListResponse is a page of import batches for an account.
type ImportBatchListResponse struct {
	Imports []models.ImportBatch `json:"imports"`
	Total   int64                `json:"total"`
	Offset  int                  `json:"offset"`
	Limit   int                  `json:"limit"`
}

type RollbackResponse struct {
	Import       *models.ImportBatch `json:"import"`
	DeletedCount int64               `json:"deleted_count"`
	Message      string              `json:"message"`
}

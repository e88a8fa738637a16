package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/importers"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

var (
	ErrPersistenceFailure      = errors.New("failed to persist import row")
	ErrImportAlreadyRolledBack = errors.New("import has already been rolled back")
	ErrOriginalFileNotRetained = errors.New("original file was not retained for this import")
	ErrUnsupportedFormat       = errors.New("unsupported import format")
	ErrFileTooLarge            = errors.New("import file exceeds the upload limit")
)

const (
	FormatCSV = "csv"
	FormatOFX = "ofx"
	FormatQFX = "qfx"
)

// ImportPreview is everything the caller needs to review a file before
// committing it. Nothing is persisted while building it.
type ImportPreview struct {
	SourceType   string                        `json:"source_type"`
	FileName     string                        `json:"file_name,omitempty"`
	Encoding     string                        `json:"encoding,omitempty"`
	Delimiter    string                        `json:"delimiter,omitempty"`
	Format       string                        `json:"format,omitempty"`
	Columns      []string                      `json:"columns,omitempty"`
	Mapping      *importers.ColumnMapping      `json:"mapping,omitempty"`
	Statement    *StatementSummary             `json:"statement,omitempty"`
	Transactions []models.CanonicalTransaction `json:"transactions"`
	Skipped      int                           `json:"skipped"`
	Errors       []PreviewRowError             `json:"errors"`
	Duplicates   []models.DuplicateCandidate   `json:"duplicates"`
	Suggestions  []models.SmartRuleSuggestion  `json:"suggestions"`
}

// StatementSummary is the account metadata carried by an OFX/QFX file.
type StatementSummary struct {
	AccountName   string     `json:"account_name"`
	AccountType   string     `json:"account_type"`
	AccountNumber string     `json:"account_number,omitempty"`
	BankName      string     `json:"bank_name,omitempty"`
	StartDate     *time.Time `json:"start_date,omitempty"`
	EndDate       *time.Time `json:"end_date,omitempty"`
}

type PreviewRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// CommitRequest persists previewed rows. SkipRows holds indices into
// Transactions the caller chose not to import, normally flagged duplicates.
type CommitRequest struct {
	UserID       uuid.UUID
	AccountID    uuid.UUID
	SourceType   string
	FileName     string
	FileFormat   string
	Transactions []models.CanonicalTransaction
	SkipRows     []int
	ErrorCount   int
	SkippedCount int
	OriginalFile []byte
}

// ImportFileRequest parses and commits a file in one call.
type ImportFileRequest struct {
	UserID         uuid.UUID
	AccountID      uuid.UUID
	FileName       string
	Data           []byte
	Format         string
	Mapping        *importers.ColumnMapping
	SkipRows       []int
	SkipDuplicates bool
}

type RollbackResult struct {
	Batch        *models.ImportBatch `json:"batch"`
	DeletedCount int64               `json:"deleted_count"`
}

type ImportService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	batchRepo       repositories.ImportBatchRepositoryInterface
	ruleRepo        repositories.RuleRepositoryInterface
	payeeRepo       repositories.PayeeRepositoryInterface
	extractor       PayeeExtractor
	resolver        PayeeResolutionServiceInterface
	duplicates      DuplicateDetectionServiceInterface
	engine          *RuleEngine
	suggestions     *SmartRuleSuggestionService
	locker          *AccountLocker
	csv             *importers.CSVImporter
	ofx             *importers.OFXImporter
	importLogger    ImportLoggerInterface
	metrics         MetricsRecorderInterface
	cfg             config.ImportConfig
	logger          *slog.Logger
	now             func() time.Time
}

func NewImportService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	batchRepo repositories.ImportBatchRepositoryInterface,
	ruleRepo repositories.RuleRepositoryInterface,
	payeeRepo repositories.PayeeRepositoryInterface,
	extractor PayeeExtractor,
	resolver PayeeResolutionServiceInterface,
	duplicates DuplicateDetectionServiceInterface,
	suggestions *SmartRuleSuggestionService,
	locker *AccountLocker,
	importLogger ImportLoggerInterface,
	metrics MetricsRecorderInterface,
	cfg config.ImportConfig,
) ImportServiceInterface {
	if locker == nil {
		locker = NewAccountLocker()
	}
	logger := slog.Default()
	return &ImportService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		batchRepo:       batchRepo,
		ruleRepo:        ruleRepo,
		payeeRepo:       payeeRepo,
		extractor:       extractor,
		resolver:        resolver,
		duplicates:      duplicates,
		engine:          NewRuleEngine(logger),
		suggestions:     suggestions,
		locker:          locker,
		csv:             importers.NewCSVImporter(logger),
		ofx:             importers.NewOFXImporter(logger),
		importLogger:    importLogger,
		metrics:         metrics,
		cfg:             cfg,
		logger:          logger,
		now:             time.Now,
	}
}

// Preview parses data as format, or detects the format from the file name
// and content when format is empty. mapping only applies to CSV.
func (s *ImportService) Preview(ctx context.Context, userID, accountID uuid.UUID, fileName string, data []byte, format string, mapping *importers.ColumnMapping) (*ImportPreview, error) {
	switch resolveFormat(fileName, data, format) {
	case FormatCSV:
		return s.PreviewCSV(ctx, userID, accountID, fileName, data, mapping)
	case FormatOFX, FormatQFX:
		return s.PreviewOFX(ctx, userID, accountID, fileName, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func (s *ImportService) PreviewCSV(ctx context.Context, userID, accountID uuid.UUID, fileName string, data []byte, override *importers.ColumnMapping) (*ImportPreview, error) {
	if err := s.checkUpload(userID, accountID, data); err != nil {
		return nil, err
	}

	table, err := s.csv.Parse(data, importers.DetectEncoding(data))
	if err != nil {
		return nil, err
	}

	format := importers.DetectFormat(table.Columns)
	mapping := importers.SuggestMapping(table.Columns, format)
	if override != nil && !override.IsZero() {
		mapping = *override
	}

	result, err := s.csv.MapRows(table, mapping)
	if err != nil {
		return nil, err
	}

	preview := &ImportPreview{
		SourceType:   models.SourceTypeCSV,
		FileName:     fileName,
		Encoding:     table.Encoding,
		Delimiter:    table.Delimiter,
		Format:       format,
		Columns:      table.Columns,
		Mapping:      &mapping,
		Transactions: result.Transactions,
		Skipped:      result.Skipped,
		Errors:       previewErrors(result.Errors),
	}
	if err := s.annotate(ctx, userID, accountID, preview); err != nil {
		return nil, err
	}
	return preview, nil
}

func (s *ImportService) PreviewOFX(ctx context.Context, userID, accountID uuid.UUID, fileName string, data []byte) (*ImportPreview, error) {
	if err := s.checkUpload(userID, accountID, data); err != nil {
		return nil, err
	}

	statement, err := s.ofx.Parse(data)
	if err != nil {
		return nil, err
	}

	sourceType := models.SourceTypeOFX
	if strings.EqualFold(filepath.Ext(fileName), ".qfx") {
		sourceType = models.SourceTypeQFX
	}

	preview := &ImportPreview{
		SourceType: sourceType,
		FileName:   fileName,
		Format:     sourceType,
		Statement: &StatementSummary{
			AccountName:   statement.AccountName,
			AccountType:   statement.AccountType,
			AccountNumber: statement.AccountNumber,
			BankName:      statement.BankName,
			StartDate:     statement.StartDate,
			EndDate:       statement.EndDate,
		},
		Transactions: statement.Transactions,
		Errors:       previewErrors(statement.Errors),
	}
	if err := s.annotate(ctx, userID, accountID, preview); err != nil {
		return nil, err
	}
	return preview, nil
}

func (s *ImportService) checkUpload(userID, accountID uuid.UUID, data []byte) error {
	if s.cfg.MaxUploadBytes > 0 && int64(len(data)) > s.cfg.MaxUploadBytes {
		return ErrFileTooLarge
	}
	_, err := s.accountRepo.GetByIDForUser(userID, accountID)
	return err
}

// annotate adds duplicate candidates and rule suggestions to a preview.
func (s *ImportService) annotate(ctx context.Context, userID, accountID uuid.UUID, preview *ImportPreview) error {
	if preview.Transactions == nil {
		preview.Transactions = []models.CanonicalTransaction{}
	}

	duplicates, err := s.duplicates.FindDuplicates(ctx, userID, accountID, preview.Transactions)
	if err != nil {
		return err
	}
	preview.Duplicates = duplicates

	rows := make([]SuggestionRow, len(preview.Transactions))
	for i, tx := range preview.Transactions {
		rows[i] = SuggestionRow{Index: i, Description: tx.Description, PayeeText: tx.PayeeText}
	}
	preview.Suggestions = s.suggestions.Suggest(rows, s.cfg.DefaultMinOccurrence, s.cfg.DefaultMinConfidence)
	return nil
}

// ImportFile previews data and commits it. With SkipDuplicates every flagged
// duplicate is left out in addition to SkipRows.
func (s *ImportService) ImportFile(ctx context.Context, req ImportFileRequest) (*models.ImportBatch, error) {
	preview, err := s.Preview(ctx, req.UserID, req.AccountID, req.FileName, req.Data, req.Format, req.Mapping)
	if err != nil {
		return nil, err
	}

	skip := append([]int{}, req.SkipRows...)
	if req.SkipDuplicates {
		for _, d := range preview.Duplicates {
			skip = append(skip, d.MatchedNewRowIndex)
		}
	}

	return s.Commit(ctx, CommitRequest{
		UserID:       req.UserID,
		AccountID:    req.AccountID,
		SourceType:   preview.SourceType,
		FileName:     req.FileName,
		FileFormat:   preview.Format,
		Transactions: preview.Transactions,
		SkipRows:     skip,
		ErrorCount:   len(preview.Errors),
		SkippedCount: preview.Skipped,
		OriginalFile: req.Data,
	})
}

// Commit persists the rows of one import as a batch. Rows that fail to
// persist are counted and logged; the rest of the batch still commits.
func (s *ImportService) Commit(ctx context.Context, req CommitRequest) (*models.ImportBatch, error) {
	if !models.IsValidSourceType(req.SourceType) {
		return nil, models.ErrInvalidSourceType
	}

	unlock := s.locker.Lock(req.AccountID)
	defer unlock()

	start := time.Now()
	if _, err := s.accountRepo.GetByIDForUser(req.UserID, req.AccountID); err != nil {
		return nil, err
	}

	batch := &models.ImportBatch{
		UserID:       req.UserID,
		AccountID:    req.AccountID,
		SourceType:   req.SourceType,
		FileName:     req.FileName,
		FileFormat:   req.FileFormat,
		TotalRows:    len(req.Transactions) + req.ErrorCount + req.SkippedCount,
		ErrorCount:   req.ErrorCount,
		SkippedCount: req.SkippedCount,
		Status:       models.ImportStatusProcessing,
	}
	if err := s.retainOriginal(batch, req.OriginalFile); err != nil {
		return nil, err
	}
	if err := s.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	s.importLogger.LogImportStarted(ctx, batch.ID, batch.AccountID, batch.SourceType, batch.TotalRows)

	rules, err := s.ruleRepo.GetEnabledByUserID(req.UserID)
	if err != nil {
		s.fail(ctx, batch)
		return nil, err
	}

	skip := make(map[int]bool, len(req.SkipRows))
	for _, i := range req.SkipRows {
		skip[i] = true
	}

	ruleSet := s.engine.Compile(rules)
	cache := NewPatternCache(req.UserID)
	ruleMatches := map[uuid.UUID]int{}
	now := s.now()

	for i, row := range req.Transactions {
		if skip[i] {
			batch.DuplicateCount++
			s.metrics.IncrementCounter("import.row", map[string]string{"outcome": "duplicate"})
			continue
		}

		tx := newImportedTransaction(req.UserID, req.AccountID, batch.ID, row)
		s.attachPayee(ctx, cache, tx, row)

		rule := ruleSet.Evaluate(tx)
		if rule != nil {
			s.engine.Apply(tx, rule, now)
		}

		if err := s.transactionRepo.Create(tx); err != nil {
			batch.ErrorCount++
			failure := fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
			s.importLogger.LogRowPersistFailed(ctx, batch.ID, row.SourceRow, failure.Error())
			s.metrics.IncrementCounter("import.row", map[string]string{"outcome": "error"})
			continue
		}
		batch.ImportedCount++
		s.metrics.IncrementCounter("import.row", map[string]string{"outcome": "imported"})

		if rule != nil {
			ruleMatches[rule.ID]++
			s.metrics.IncrementCounter("rule.matched", map[string]string{})
		}
		if tx.PayeeID != nil {
			if err := s.payeeRepo.IncrementUsage(req.UserID, *tx.PayeeID, now); err != nil {
				s.logger.WarnContext(ctx, "failed to bump payee usage",
					slog.String("payee_id", tx.PayeeID.String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	categorized := 0
	for ruleID, matches := range ruleMatches {
		categorized += matches
		if err := s.ruleRepo.RecordMatches(ruleID, matches, now); err != nil {
			s.logger.WarnContext(ctx, "failed to record rule matches",
				slog.String("rule_id", ruleID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
	if categorized > 0 {
		s.importLogger.LogRulesApplied(ctx, req.UserID, categorized, len(ruleMatches))
	}

	batch.Finalize(now)
	if err := s.batchRepo.Update(batch); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	s.metrics.RecordProcessingTime("import.commit", duration)
	s.metrics.IncrementCounter("import.completed", map[string]string{"source": batch.SourceType, "status": batch.Status})
	s.recordRowGauges(batch)
	s.importLogger.LogImportCompleted(ctx, batch, duration.Milliseconds())
	return batch, nil
}

func (s *ImportService) recordRowGauges(batch *models.ImportBatch) {
	s.metrics.RecordGauge("import.last_rows", float64(batch.ImportedCount), map[string]string{"outcome": "imported"})
	s.metrics.RecordGauge("import.last_rows", float64(batch.DuplicateCount), map[string]string{"outcome": "duplicate"})
	s.metrics.RecordGauge("import.last_rows", float64(batch.ErrorCount), map[string]string{"outcome": "error"})
	s.metrics.RecordGauge("import.last_rows", float64(batch.SkippedCount), map[string]string{"outcome": "skipped"})
}

func (s *ImportService) fail(ctx context.Context, batch *models.ImportBatch) {
	batch.Status = models.ImportStatusFailed
	if err := s.batchRepo.Update(batch); err != nil {
		s.logger.ErrorContext(ctx, "failed to mark import batch failed",
			slog.String("import_batch_id", batch.ID.String()),
			slog.String("error", err.Error()),
		)
	}
	s.metrics.IncrementCounter("import.completed", map[string]string{"source": batch.SourceType, "status": batch.Status})
}

// attachPayee links a confident or newly created payee. A low-confidence
// match keeps only the raw text so the user can confirm it later.
func (s *ImportService) attachPayee(ctx context.Context, cache *PatternCache, tx *models.Transaction, row models.CanonicalTransaction) {
	text := strings.TrimSpace(row.DisplayText())
	if text == "" {
		return
	}
	extraction := s.extractor.Extract(text)
	name := models.Truncate(strings.TrimSpace(extraction.Name), models.MaxPayeeTextLength)
	if name == "" {
		return
	}

	result, err := s.resolver.Resolve(ctx, cache, tx.UserID, name, text)
	if err != nil {
		s.logger.WarnContext(ctx, "payee resolution failed",
			slog.Int("source_row", row.SourceRow),
			slog.String("error", err.Error()),
		)
		return
	}

	var payee *models.Payee
	switch result.MatchType {
	case models.ResolutionHighConfidence:
		payee = result.Payee
	case models.ResolutionNoMatch:
		payee, err = s.resolver.GetOrCreatePayee(ctx, tx.UserID, name)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to create payee",
				slog.Int("source_row", row.SourceRow),
				slog.String("error", err.Error()),
			)
			return
		}
		cache.AddPayee(*payee)
	default:
		return
	}
	if payee == nil {
		return
	}

	payeeID := payee.ID
	tx.PayeeID = &payeeID
	if tx.PayeeText == "" {
		tx.PayeeText = payee.CanonicalName
	}
	if tx.CategoryID == nil && payee.DefaultCategoryID != nil {
		categoryID := *payee.DefaultCategoryID
		tx.CategoryID = &categoryID
	}
}

func newImportedTransaction(userID, accountID, batchID uuid.UUID, row models.CanonicalTransaction) *models.Transaction {
	return &models.Transaction{
		UserID:          userID,
		AccountID:       accountID,
		TransactionDate: row.Date,
		Amount:          row.Amount.Abs(),
		TransactionType: row.Direction,
		Description:     models.Truncate(row.Description, models.MaxDescriptionLength),
		PayeeText:       models.Truncate(row.PayeeText, models.MaxPayeeTextLength),
		Notes:           models.Truncate(row.Notes, models.MaxNotesLength),
		ExternalID:      row.ExternalID,
		ImportBatchID:   &batchID,
	}
}

// retainOriginal stores the uploaded bytes on the batch, gzip-compressed when
// configured.
func (s *ImportService) retainOriginal(batch *models.ImportBatch, data []byte) error {
	if !s.cfg.RetainOriginalFile || len(data) == 0 {
		return nil
	}
	batch.OriginalSize = len(data)

	if !s.cfg.CompressOriginalFile {
		batch.OriginalFile = append([]byte(nil), data...)
		return nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("failed to compress original file: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to compress original file: %w", err)
	}
	batch.OriginalFile = buf.Bytes()
	batch.IsCompressed = true
	return nil
}

// Rollback deletes every transaction the batch created and marks it rolled
// back. A batch can only be rolled back once.
func (s *ImportService) Rollback(ctx context.Context, userID, batchID uuid.UUID) (*RollbackResult, error) {
	batch, err := s.batchRepo.GetByIDForUser(userID, batchID)
	if err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(batch.AccountID)
	defer unlock()

	// re-read under the lock
	batch, err = s.batchRepo.GetByIDForUser(userID, batchID)
	if err != nil {
		return nil, err
	}
	if batch.IsRolledBack() {
		return nil, ErrImportAlreadyRolledBack
	}

	now := s.now()
	deleted, err := s.batchRepo.Rollback(userID, batchID, now)
	if err != nil {
		return nil, err
	}
	batch.Status = models.ImportStatusRolledBack
	batch.RolledBackAt = &now

	s.importLogger.LogImportRolledBack(ctx, batch.ID, deleted)
	s.metrics.IncrementCounter("import.rolled_back", map[string]string{"source": batch.SourceType})
	return &RollbackResult{Batch: batch, DeletedCount: deleted}, nil
}

func (s *ImportService) GetBatch(ctx context.Context, userID, batchID uuid.UUID) (*models.ImportBatch, error) {
	return s.batchRepo.GetByIDForUser(userID, batchID)
}

func (s *ImportService) ListBatches(ctx context.Context, userID, accountID uuid.UUID, offset, limit int) ([]models.ImportBatch, int64, error) {
	if _, err := s.accountRepo.GetByIDForUser(userID, accountID); err != nil {
		return nil, 0, err
	}
	return s.batchRepo.GetByAccount(userID, accountID, offset, limit)
}

// OriginalFile returns the retained upload, decompressed, and its file name.
func (s *ImportService) OriginalFile(ctx context.Context, userID, batchID uuid.UUID) ([]byte, string, error) {
	batch, err := s.batchRepo.GetByIDForUser(userID, batchID)
	if err != nil {
		return nil, "", err
	}
	if !batch.HasOriginalFile() {
		return nil, "", ErrOriginalFileNotRetained
	}
	if !batch.IsCompressed {
		return batch.OriginalFile, batch.FileName, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(batch.OriginalFile))
	if err != nil {
		return nil, "", fmt.Errorf("failed to open compressed original file: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress original file: %w", err)
	}
	return data, batch.FileName, nil
}

// resolveFormat honours an explicit format, then the file extension, then
// the file content.
func resolveFormat(fileName string, data []byte, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".ofx":
		return FormatOFX
	case ".qfx":
		return FormatQFX
	case ".csv", ".txt":
		return FormatCSV
	}
	return importers.SniffFormat(data)
}

func previewErrors(rowErrors []*importers.RowError) []PreviewRowError {
	out := make([]PreviewRowError, 0, len(rowErrors))
	for _, e := range rowErrors {
		out = append(out, PreviewRowError{Row: e.Row, Field: e.Field, Value: e.Value, Message: e.Message()})
	}
	return out
}

package services_test

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/models"
	"fintrack/internal/payees"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const checkingCSV = "Date,Amount,Description\n" +
	"2024-03-01,-5.75,STARBUCKS STORE 1234\n" +
	"2024-03-02,-5.25,STARBUCKS STORE 1234\n" +
	"2024-03-03,-42.10,SHELL OIL 57442\n" +
	"2024-03-04,2500.00,ACME CORP PAYROLL\n" +
	"2024-03-05,-5.75,STARBUCKS STORE 5678\n" +
	"not a date,-1.00,BROKEN ROW\n"

type ImportServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	db              *database.DB
	service         services.ImportServiceInterface
	transactionRepo repositories.TransactionRepositoryInterface
	payeeRepo       repositories.PayeeRepositoryInterface
	ruleRepo        repositories.RuleRepositoryInterface
	batchRepo       repositories.ImportBatchRepositoryInterface
	userID          uuid.UUID
	account         *models.Account
	coffee          *models.Category
	coffeeRule      *models.CategorizationRule
	existingShell   *models.Transaction
}

func TestImportServiceSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}

func (s *ImportServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = database.SetupTestDB(s.T())

	matching := config.DefaultMatchingConfig()
	catalog, err := payees.DefaultCatalog(matching.Extraction.FuzzyCategoryThreshold)
	s.Require().NoError(err)
	extractor := payees.NewExtractor(catalog, matching.Extraction)

	accountRepo := repositories.NewAccountRepository(s.db.DB)
	s.transactionRepo = repositories.NewTransactionRepository(s.db.DB)
	s.payeeRepo = repositories.NewPayeeRepository(s.db.DB)
	s.ruleRepo = repositories.NewRuleRepository(s.db.DB)
	s.batchRepo = repositories.NewImportBatchRepository(s.db.DB)
	patternRepo := repositories.NewPayeePatternRepository(s.db.DB)

	metrics := services.NewPrometheusMetrics(prometheus.NewRegistry())
	importLogger := services.NewImportLogger(nil)

	resolver := services.NewPayeeResolutionService(s.payeeRepo, patternRepo, extractor, matching.Resolution, importLogger, metrics)
	duplicates := services.NewDuplicateDetectionService(s.transactionRepo, matching.Duplicates, metrics)
	suggestions := services.NewSmartRuleSuggestionService(extractor, matching.Suggestions)

	s.service = services.NewImportService(
		accountRepo,
		s.transactionRepo,
		s.batchRepo,
		s.ruleRepo,
		s.payeeRepo,
		extractor,
		resolver,
		duplicates,
		suggestions,
		services.NewAccountLocker(),
		importLogger,
		metrics,
		config.ImportConfig{
			MaxUploadBytes:       1 << 20,
			RetainOriginalFile:   true,
			CompressOriginalFile: true,
			DefaultMinOccurrence: 3,
			DefaultMinConfidence: 0.6,
		},
	)

	s.userID = uuid.New()
	s.account = database.CreateTestAccount(s.T(), s.db, s.userID, models.AccountTypeChecking)
	s.coffee = database.CreateTestCategory(s.T(), s.db, s.userID, "Coffee")

	coffeeID := s.coffee.ID
	s.coffeeRule = &models.CategorizationRule{
		UserID:         s.userID,
		Name:           "Coffee",
		Priority:       10,
		Enabled:        true,
		PayeePattern:   "starbucks",
		PayeeMatchType: models.MatchTypeContains,
		CategoryID:     &coffeeID,
	}
	s.Require().NoError(s.ruleRepo.Create(s.coffeeRule))

	s.existingShell = &models.Transaction{
		UserID:          s.userID,
		AccountID:       s.account.ID,
		TransactionDate: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Amount:          decimal.RequireFromString("42.10"),
		TransactionType: models.TransactionTypeDebit,
		Description:     "SHELL OIL 57442",
	}
	s.Require().NoError(s.transactionRepo.Create(s.existingShell))
}

func (s *ImportServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *ImportServiceTestSuite) TestPreviewCSV() {
	preview, err := s.service.Preview(s.ctx, s.userID, s.account.ID, "checking.csv", []byte(checkingCSV), "", nil)
	s.Require().NoError(err)

	s.Equal(models.SourceTypeCSV, preview.SourceType)
	s.Equal([]string{"Date", "Amount", "Description"}, preview.Columns)
	s.Require().NotNil(preview.Mapping)
	s.Equal("Date", preview.Mapping.Date)
	s.Len(preview.Transactions, 5)

	s.Require().Len(preview.Errors, 1)
	s.Equal(7, preview.Errors[0].Row)
	s.Equal("date", preview.Errors[0].Field)

	s.Require().Len(preview.Duplicates, 1)
	s.Equal(2, preview.Duplicates[0].MatchedNewRowIndex)
	s.Equal(s.existingShell.ID, preview.Duplicates[0].ExistingTransactionID)
	s.InDelta(1.0, preview.Duplicates[0].ConfidenceScore, 0.0001)

	s.Require().Len(preview.Suggestions, 1)
	s.Equal("Starbucks", preview.Suggestions[0].PayeeName)
	s.Equal([]int{0, 1, 4}, preview.Suggestions[0].RowIndices)

	// preview persists nothing
	var total int64
	s.Require().NoError(s.db.Model(&models.Transaction{}).Where("user_id = ?", s.userID).Count(&total).Error)
	s.Equal(int64(1), total)
}

func (s *ImportServiceTestSuite) TestImportFile_EndToEnd() {
	batch, err := s.service.ImportFile(s.ctx, services.ImportFileRequest{
		UserID:         s.userID,
		AccountID:      s.account.ID,
		FileName:       "checking.csv",
		Data:           []byte(checkingCSV),
		SkipDuplicates: true,
	})
	s.Require().NoError(err)

	s.Equal(6, batch.TotalRows)
	s.Equal(4, batch.ImportedCount)
	s.Equal(1, batch.DuplicateCount)
	s.Equal(1, batch.ErrorCount)
	s.Equal(models.ImportStatusCompletedWithErrors, batch.Status)
	s.NotNil(batch.CompletedAt)
	s.True(batch.IsCompressed)
	s.Equal(len(checkingCSV), batch.OriginalSize)

	batchID := batch.ID
	imported, err := s.transactionRepo.Find(models.TransactionFilters{UserID: s.userID, ImportBatchID: &batchID})
	s.Require().NoError(err)
	s.Require().Len(imported, 4)

	categorized := 0
	for _, tx := range imported {
		s.NotNil(tx.PayeeID, tx.Description)
		if tx.CategoryID != nil {
			s.Equal(s.coffee.ID, *tx.CategoryID)
			s.Equal("Starbucks", tx.PayeeText)
			categorized++
		}
	}
	s.Equal(3, categorized)

	rule, err := s.ruleRepo.GetByIDForUser(s.userID, s.coffeeRule.ID)
	s.Require().NoError(err)
	s.Equal(3, rule.MatchCount)
	s.NotNil(rule.LastMatchedAt)

	userPayees, err := s.payeeRepo.GetByUserID(s.userID)
	s.Require().NoError(err)
	var starbucks *models.Payee
	for i := range userPayees {
		if userPayees[i].CanonicalName == "Starbucks" {
			starbucks = &userPayees[i]
		}
	}
	s.Require().NotNil(starbucks, "one Starbucks payee shared by every row")
	s.Equal(3, starbucks.TransactionCount)

	original, name, err := s.service.OriginalFile(s.ctx, s.userID, batch.ID)
	s.Require().NoError(err)
	s.Equal("checking.csv", name)
	s.Equal(checkingCSV, string(original))
}

func (s *ImportServiceTestSuite) TestRollback() {
	batch, err := s.service.ImportFile(s.ctx, services.ImportFileRequest{
		UserID:         s.userID,
		AccountID:      s.account.ID,
		FileName:       "checking.csv",
		Data:           []byte(checkingCSV),
		SkipDuplicates: true,
	})
	s.Require().NoError(err)

	result, err := s.service.Rollback(s.ctx, s.userID, batch.ID)
	s.Require().NoError(err)
	s.Equal(int64(4), result.DeletedCount)
	s.Equal(models.ImportStatusRolledBack, result.Batch.Status)
	s.NotNil(result.Batch.RolledBackAt)

	remaining, err := s.transactionRepo.Find(models.TransactionFilters{UserID: s.userID})
	s.Require().NoError(err)
	s.Require().Len(remaining, 1)
	s.Equal(s.existingShell.ID, remaining[0].ID)

	_, err = s.service.Rollback(s.ctx, s.userID, batch.ID)
	s.ErrorIs(err, services.ErrImportAlreadyRolledBack)

	stored, err := s.service.GetBatch(s.ctx, s.userID, batch.ID)
	s.Require().NoError(err)
	s.True(stored.IsRolledBack())
}

func (s *ImportServiceTestSuite) TestRollback_OtherUser() {
	batch, err := s.service.ImportFile(s.ctx, services.ImportFileRequest{
		UserID:    s.userID,
		AccountID: s.account.ID,
		FileName:  "checking.csv",
		Data:      []byte(checkingCSV),
	})
	s.Require().NoError(err)

	_, err = s.service.Rollback(s.ctx, uuid.New(), batch.ID)
	s.ErrorIs(err, repositories.ErrImportBatchNotFound)
}

func (s *ImportServiceTestSuite) TestCommit_SkipRowsCountAsDuplicates() {
	preview, err := s.service.PreviewCSV(s.ctx, s.userID, s.account.ID, "checking.csv", []byte(checkingCSV), nil)
	s.Require().NoError(err)

	batch, err := s.service.Commit(s.ctx, services.CommitRequest{
		UserID:       s.userID,
		AccountID:    s.account.ID,
		SourceType:   preview.SourceType,
		FileName:     "checking.csv",
		Transactions: preview.Transactions,
		SkipRows:     []int{0, 1, 2, 3, 4},
	})
	s.Require().NoError(err)
	s.Equal(0, batch.ImportedCount)
	s.Equal(5, batch.DuplicateCount)
	s.Equal(models.ImportStatusCompleted, batch.Status)

	_, _, err = s.service.OriginalFile(s.ctx, s.userID, batch.ID)
	s.ErrorIs(err, services.ErrOriginalFileNotRetained)
}

func (s *ImportServiceTestSuite) TestCommit_InvalidSourceType() {
	_, err := s.service.Commit(s.ctx, services.CommitRequest{
		UserID:     s.userID,
		AccountID:  s.account.ID,
		SourceType: "xlsx",
	})
	s.ErrorIs(err, models.ErrInvalidSourceType)
}

func (s *ImportServiceTestSuite) TestPreview_ForeignAccount() {
	_, err := s.service.Preview(s.ctx, uuid.New(), s.account.ID, "checking.csv", []byte(checkingCSV), "", nil)
	s.ErrorIs(err, repositories.ErrAccountNotFound)
}

func (s *ImportServiceTestSuite) TestPreview_UnsupportedFormat() {
	_, err := s.service.Preview(s.ctx, s.userID, s.account.ID, "book.xlsx", []byte("PK"), "xlsx", nil)
	s.ErrorIs(err, services.ErrUnsupportedFormat)
}

func (s *ImportServiceTestSuite) TestListBatches() {
	for i := 0; i < 2; i++ {
		_, err := s.service.ImportFile(s.ctx, services.ImportFileRequest{
			UserID:         s.userID,
			AccountID:      s.account.ID,
			FileName:       "checking.csv",
			Data:           []byte(checkingCSV),
			SkipDuplicates: true,
		})
		s.Require().NoError(err)
	}

	batches, total, err := s.service.ListBatches(s.ctx, s.userID, s.account.ID, 0, 10)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(batches, 2)
}

func (s *ImportServiceTestSuite) TestReimportIsFlaggedAsDuplicate() {
	_, err := s.service.ImportFile(s.ctx, services.ImportFileRequest{
		UserID:         s.userID,
		AccountID:      s.account.ID,
		FileName:       "checking.csv",
		Data:           []byte(checkingCSV),
		SkipDuplicates: true,
	})
	s.Require().NoError(err)

	second, err := s.service.ImportFile(s.ctx, services.ImportFileRequest{
		UserID:         s.userID,
		AccountID:      s.account.ID,
		FileName:       "checking.csv",
		Data:           []byte(checkingCSV),
		SkipDuplicates: true,
	})
	s.Require().NoError(err)
	s.Equal(0, second.ImportedCount)
	s.Equal(5, second.DuplicateCount)
}

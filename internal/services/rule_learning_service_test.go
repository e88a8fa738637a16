package services

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/models"
	"fintrack/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RuleLearningServiceTestSuite struct {
	suite.Suite
	ctx             context.Context
	ctrl            *gomock.Controller
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	ruleRepo        *repository_mocks.MockRuleRepositoryInterface
	categoryRepo    *repository_mocks.MockCategoryRepositoryInterface
	service         *RuleLearningService
	userID          uuid.UUID
	coffee          models.Category
	now             time.Time
}

func TestRuleLearningServiceSuite(t *testing.T) {
	suite.Run(t, new(RuleLearningServiceTestSuite))
}

func (s *RuleLearningServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.ruleRepo = repository_mocks.NewMockRuleRepositoryInterface(s.ctrl)
	s.categoryRepo = repository_mocks.NewMockCategoryRepositoryInterface(s.ctrl)

	s.service = NewRuleLearningService(s.transactionRepo, s.ruleRepo, s.categoryRepo, config.DefaultMatchingConfig().Learning).(*RuleLearningService)
	s.now = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	s.service.now = func() time.Time { return s.now }

	s.userID = uuid.New()
	s.coffee = models.Category{ID: uuid.New(), UserID: s.userID, Name: "Coffee"}
}

func (s *RuleLearningServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RuleLearningServiceTestSuite) history(payee string, categoryID uuid.UUID, daysAgo int, amount string) models.Transaction {
	return models.Transaction{
		ID:              uuid.New(),
		UserID:          s.userID,
		PayeeText:       payee,
		Amount:          decimal.RequireFromString(amount),
		TransactionType: models.TransactionTypeDebit,
		TransactionDate: s.now.AddDate(0, 0, -daysAgo),
		CategoryID:      &categoryID,
	}
}

func (s *RuleLearningServiceTestSuite) TestConsistentRecentPayeeIsSuggested() {
	transactions := []models.Transaction{
		s.history("STARBUCKS", s.coffee.ID, 1, "5.00"),
		s.history("STARBUCKS", s.coffee.ID, 5, "5.50"),
		s.history("STARBUCKS", s.coffee.ID, 10, "4.75"),
		s.history("STARBUCKS", s.coffee.ID, 20, "5.25"),
		s.history("STARBUCKS", s.coffee.ID, 30, "5.00"),
	}
	s.transactionRepo.EXPECT().Find(gomock.Any()).DoAndReturn(func(filter models.TransactionFilters) ([]models.Transaction, error) {
		s.Require().NotNil(filter.Categorized)
		s.True(*filter.Categorized)
		return transactions, nil
	})
	s.ruleRepo.EXPECT().GetEnabledByUserID(s.userID).Return(nil, nil)
	s.categoryRepo.EXPECT().GetByIDs(s.userID, []uuid.UUID{s.coffee.ID}).Return([]models.Category{s.coffee}, nil)

	suggestions, err := s.service.AnalyzeUserPatterns(s.ctx, s.userID, 3, 0.6)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 1)

	got := suggestions[0]
	s.Equal("STARBUCKS", got.PayeePattern)
	s.Equal(models.MatchTypeExact, got.PayeeMatchType)
	s.Equal(s.coffee.ID, got.CategoryID)
	s.Equal("Coffee", got.CategoryName)
	s.Equal("Auto: STARBUCKS → Coffee", got.Name)
	s.Equal(5, got.Occurrences)
	s.Equal(1.0, got.Consistency)
	s.GreaterOrEqual(got.Confidence, 0.85)
	s.InDelta(0.9, got.Confidence, 0.0001)
	s.Equal(models.TransactionTypeDebit, got.TransactionType)
	s.True(got.AmountMin.Valid)
	s.True(got.AmountMin.Decimal.Equal(decimal.RequireFromString("4.28")))
	s.True(got.AmountMax.Decimal.Equal(decimal.RequireFromString("6.05")))
	s.Len(got.SampleTransactionIDs, 5)
}

func (s *RuleLearningServiceTestSuite) TestTooFewOccurrences() {
	transactions := []models.Transaction{
		s.history("STARBUCKS", s.coffee.ID, 1, "5.00"),
		s.history("STARBUCKS", s.coffee.ID, 2, "5.00"),
	}
	s.transactionRepo.EXPECT().Find(gomock.Any()).Return(transactions, nil)
	s.ruleRepo.EXPECT().GetEnabledByUserID(s.userID).Return(nil, nil)

	suggestions, err := s.service.AnalyzeUserPatterns(s.ctx, s.userID, 3, 0.6)
	s.Require().NoError(err)
	s.Empty(suggestions)
	s.NotNil(suggestions)
}

func (s *RuleLearningServiceTestSuite) TestVariantsAreMerged() {
	transactions := []models.Transaction{
		s.history("STARBUCKS STORE 1234", s.coffee.ID, 1, "5.00"),
		s.history("STARBUCKS #99 SEATTLE", s.coffee.ID, 2, "5.00"),
		s.history("STARBUCKS STORE 1234", s.coffee.ID, 3, "5.00"),
	}
	s.transactionRepo.EXPECT().Find(gomock.Any()).Return(transactions, nil)
	s.ruleRepo.EXPECT().GetEnabledByUserID(s.userID).Return(nil, nil)
	s.categoryRepo.EXPECT().GetByIDs(s.userID, gomock.Any()).Return([]models.Category{s.coffee}, nil)

	suggestions, err := s.service.AnalyzeUserPatterns(s.ctx, s.userID, 3, 0.0)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 1)
	s.Equal("STARBUCKS", suggestions[0].PayeePattern)
	s.Equal(models.MatchTypeContains, suggestions[0].PayeeMatchType)
	s.Equal(3, suggestions[0].Occurrences)
}

func (s *RuleLearningServiceTestSuite) TestExistingRuleSuppressesSuggestion() {
	transactions := []models.Transaction{
		s.history("STARBUCKS", s.coffee.ID, 1, "5.00"),
		s.history("STARBUCKS", s.coffee.ID, 2, "5.00"),
		s.history("STARBUCKS", s.coffee.ID, 3, "5.00"),
	}
	s.transactionRepo.EXPECT().Find(gomock.Any()).Return(transactions, nil)
	s.ruleRepo.EXPECT().GetEnabledByUserID(s.userID).Return([]models.CategorizationRule{
		{Name: "coffee", Enabled: true, PayeePattern: "starbucks", PayeeMatchType: models.MatchTypeContains},
	}, nil)

	suggestions, err := s.service.AnalyzeUserPatterns(s.ctx, s.userID, 3, 0.0)
	s.Require().NoError(err)
	s.Empty(suggestions)
}

func (s *RuleLearningServiceTestSuite) TestMixedCategoriesLowerConfidence() {
	dining := models.Category{ID: uuid.New(), UserID: s.userID, Name: "Dining"}
	transactions := []models.Transaction{
		s.history("PANERA BREAD", dining.ID, 200, "12.00"),
		s.history("PANERA BREAD", s.coffee.ID, 210, "30.00"),
		s.history("PANERA BREAD", dining.ID, 220, "8.00"),
		s.history("PANERA BREAD", s.coffee.ID, 230, "45.00"),
	}
	s.transactionRepo.EXPECT().Find(gomock.Any()).Return(transactions, nil)
	s.ruleRepo.EXPECT().GetEnabledByUserID(s.userID).Return(nil, nil)
	s.categoryRepo.EXPECT().GetByIDs(s.userID, gomock.Any()).Return([]models.Category{s.coffee, dining}, nil)

	suggestions, err := s.service.AnalyzeUserPatterns(s.ctx, s.userID, 3, 0.0)
	s.Require().NoError(err)
	s.Require().Len(suggestions, 1)

	got := suggestions[0]
	s.Equal(dining.ID, got.CategoryID)
	s.Equal(0.5, got.Consistency)
	// 0.7*0.5 + 0.2*0.4 + 0.1*0
	s.InDelta(0.43, got.Confidence, 0.0001)
	s.False(got.AmountMin.Valid)
	s.False(got.AmountMax.Valid)
}

func (s *RuleLearningServiceTestSuite) TestInvalidParameters() {
	_, err := s.service.AnalyzeUserPatterns(s.ctx, s.userID, 0, 0.5)
	s.ErrorIs(err, ErrInvalidSuggestionParams)

	_, err = s.service.AnalyzeUserPatterns(s.ctx, s.userID, 3, 1.5)
	s.ErrorIs(err, ErrInvalidSuggestionParams)
}

func TestNormalizeLearningKey(t *testing.T) {
	testCases := map[string]string{
		"STARBUCKS STORE 1234":  "STARBUCKS",
		"Starbucks #99 Seattle": "STARBUCKS SEATTLE",
		"7-ELEVEN 33012":        "ELEVEN",
		"POS PURCHASE":          "POS PURCHASE",
		"  ":                    "",
		"SHELL OIL 57442":       "SHELL OIL",
	}
	for input, expected := range testCases {
		assert.Equal(t, expected, normalizeLearningKey(input), input)
	}
}

func TestLongestCommonWordSubstring(t *testing.T) {
	assert.Equal(t, "STARBUCKS", longestCommonWordSubstring("STARBUCKS", "STARBUCKS SEATTLE"))
	assert.Equal(t, "WHOLE FOODS", longestCommonWordSubstring("WHOLE FOODS MARKET", "WHOLE FOODS"))
	assert.Equal(t, "", longestCommonWordSubstring("SHELL", ""))
	// "HELL" inside SHELL does not start a word
	assert.Equal(t, "", longestCommonWordSubstring("SHELL", "HELLO"))
}

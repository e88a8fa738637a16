package services_test

import (
	"context"
	"testing"

	"fintrack/internal/config"
	"fintrack/internal/models"
	"fintrack/internal/payees"
	"fintrack/internal/repositories"
	"fintrack/internal/repositories/repository_mocks"
	"fintrack/internal/services"
	"fintrack/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type PayeeResolutionServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	payeeRepo    *repository_mocks.MockPayeeRepositoryInterface
	patternRepo  *repository_mocks.MockPayeePatternRepositoryInterface
	extractor    *service_mocks.MockPayeeExtractor
	importLogger *service_mocks.MockImportLoggerInterface
	metrics      *service_mocks.MockMetricsRecorderInterface
	service      services.PayeeResolutionServiceInterface
	userID       uuid.UUID
	starbucks    models.Payee
	wholeFoods   models.Payee
}

func TestPayeeResolutionServiceSuite(t *testing.T) {
	suite.Run(t, new(PayeeResolutionServiceTestSuite))
}

func (s *PayeeResolutionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.payeeRepo = repository_mocks.NewMockPayeeRepositoryInterface(s.ctrl)
	s.patternRepo = repository_mocks.NewMockPayeePatternRepositoryInterface(s.ctrl)
	s.extractor = service_mocks.NewMockPayeeExtractor(s.ctrl)
	s.importLogger = service_mocks.NewMockImportLoggerInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.metrics.EXPECT().IncrementCounter(gomock.Any(), gomock.Any()).AnyTimes()

	s.service = services.NewPayeeResolutionService(
		s.payeeRepo,
		s.patternRepo,
		s.extractor,
		config.DefaultMatchingConfig().Resolution,
		s.importLogger,
		s.metrics,
	)

	s.userID = uuid.New()
	s.starbucks = models.Payee{ID: uuid.New(), UserID: s.userID, CanonicalName: "Starbucks"}
	s.wholeFoods = models.Payee{ID: uuid.New(), UserID: s.userID, CanonicalName: "Whole Foods Market"}
}

func (s *PayeeResolutionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PayeeResolutionServiceTestSuite) expectLoad(patterns []models.PayeeMatchingPattern, userPayees []models.Payee) {
	s.patternRepo.EXPECT().GetByUserID(s.userID).Return(patterns, nil).Times(1)
	s.payeeRepo.EXPECT().GetByUserID(s.userID).Return(userPayees, nil).Times(1)
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_PatternMatchIsHighConfidence() {
	s.expectLoad([]models.PayeeMatchingPattern{{
		ID:              uuid.New(),
		PayeeID:         s.starbucks.ID,
		UserID:          s.userID,
		PatternType:     models.PatternTypeDescriptionContains,
		PatternValue:    "STARBUCKS",
		ConfidenceScore: 0.9,
	}}, []models.Payee{s.starbucks, s.wholeFoods})

	result, err := s.service.Resolve(s.ctx, nil, s.userID, "Sbux", "STARBUCKS STORE 1234 SEATTLE")
	s.Require().NoError(err)
	s.Equal(models.ResolutionHighConfidence, result.MatchType)
	s.Require().NotNil(result.Payee)
	s.Equal(s.starbucks.ID, result.Payee.ID)
	s.Equal(0.9, result.Confidence)
	s.Contains(result.Reason, "description_contains")
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_LowConfidencePattern() {
	s.expectLoad([]models.PayeeMatchingPattern{{
		PayeeID:         s.starbucks.ID,
		UserID:          s.userID,
		PatternType:     models.PatternTypeExactMatch,
		PatternValue:    "Starbucks",
		ConfidenceScore: 0.75,
	}}, []models.Payee{s.starbucks})

	result, err := s.service.Resolve(s.ctx, nil, s.userID, "starbucks", "")
	s.Require().NoError(err)
	s.Equal(models.ResolutionLowConfidence, result.MatchType)
	s.Equal(s.starbucks.ID, result.Payee.ID)
	s.False(result.IsHighConfidence())
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_WeakPatternsAreIgnored() {
	s.expectLoad([]models.PayeeMatchingPattern{{
		PayeeID:         s.starbucks.ID,
		UserID:          s.userID,
		PatternType:     models.PatternTypeExactMatch,
		PatternValue:    "Corner Cafe",
		ConfidenceScore: 0.5,
	}}, []models.Payee{s.starbucks})

	result, err := s.service.Resolve(s.ctx, nil, s.userID, "Corner Cafe", "")
	s.Require().NoError(err)
	s.Equal(models.ResolutionNoMatch, result.MatchType)
	s.Nil(result.Payee)
	s.Equal("Corner Cafe", result.SuggestedName)
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_FuzzyNameMatch() {
	s.expectLoad(nil, []models.Payee{s.starbucks, s.wholeFoods})

	result, err := s.service.Resolve(s.ctx, nil, s.userID, "WHOLE FOODS  MARKET", "")
	s.Require().NoError(err)
	s.Equal(models.ResolutionHighConfidence, result.MatchType)
	s.Equal(s.wholeFoods.ID, result.Payee.ID)
	s.Equal(1.0, result.Confidence)
	s.Empty(result.Alternatives)
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_NoPayees() {
	s.expectLoad(nil, nil)

	result, err := s.service.Resolve(s.ctx, nil, s.userID, "Blue Bottle Coffee", "BLUE BOTTLE COFFEE 22")
	s.Require().NoError(err)
	s.Equal(models.ResolutionNoMatch, result.MatchType)
	s.Equal("Blue Bottle Coffee", result.SuggestedName)
	s.NotNil(result.Alternatives)
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_CacheLoadsOnce() {
	s.expectLoad(nil, []models.Payee{s.starbucks})
	cache := services.NewPatternCache(s.userID)

	for i := 0; i < 3; i++ {
		result, err := s.service.Resolve(s.ctx, cache, s.userID, "Starbucks", "")
		s.Require().NoError(err)
		s.Equal(models.ResolutionHighConfidence, result.MatchType)
	}
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_CachePicksUpNewPayee() {
	s.expectLoad(nil, nil)
	cache := services.NewPatternCache(s.userID)

	first, err := s.service.Resolve(s.ctx, cache, s.userID, "Whole Foods Market", "")
	s.Require().NoError(err)
	s.Equal(models.ResolutionNoMatch, first.MatchType)

	cache.AddPayee(s.wholeFoods)

	second, err := s.service.Resolve(s.ctx, cache, s.userID, "Whole Foods Market", "")
	s.Require().NoError(err)
	s.Equal(models.ResolutionHighConfidence, second.MatchType)
	s.Equal(s.wholeFoods.ID, second.Payee.ID)
}

func (s *PayeeResolutionServiceTestSuite) TestResolve_CacheForOtherUser() {
	_, err := s.service.Resolve(s.ctx, services.NewPatternCache(uuid.New()), s.userID, "Starbucks", "")
	s.ErrorIs(err, services.ErrPatternCacheUserMismatch)
}

func (s *PayeeResolutionServiceTestSuite) TestResolveDescription_FillsHints() {
	s.extractor.EXPECT().Extract("SQ *BLUE BOTTLE COFFEE").
		Return(payees.Extraction{Name: "Blue Bottle Coffee", Confidence: 0.7, CategoryHint: "Coffee Shops"})
	s.expectLoad(nil, nil)

	result, err := s.service.ResolveDescription(s.ctx, s.userID, "SQ *BLUE BOTTLE COFFEE")
	s.Require().NoError(err)
	s.Equal(models.ResolutionNoMatch, result.MatchType)
	s.Equal("Blue Bottle Coffee", result.SuggestedName)
	s.Equal("Coffee Shops", result.CategoryHint)
}

func (s *PayeeResolutionServiceTestSuite) TestRecordAcceptance_CreatesPattern() {
	description := "STARBUCKS STORE 1234 SEATTLE"
	s.payeeRepo.EXPECT().GetByIDForUser(s.userID, s.starbucks.ID).Return(&s.starbucks, nil)
	s.extractor.EXPECT().Extract(description).Return(payees.Extraction{Name: "Starbucks", Confidence: 0.95})
	s.patternRepo.EXPECT().
		FindExisting(s.userID, s.starbucks.ID, models.PatternTypeDescriptionContains, "STARBUCKS").
		Return(nil, repositories.ErrPatternNotFound)
	s.patternRepo.EXPECT().Create(gomock.Any()).Return(nil)
	s.importLogger.EXPECT().LogPatternLearned(s.ctx, gomock.Any(), true)

	pattern, err := s.service.RecordAcceptance(s.ctx, s.userID, s.starbucks.ID, description, models.PatternTypeDescriptionContains)
	s.Require().NoError(err)
	s.Require().NotNil(pattern)
	s.Equal("STARBUCKS", pattern.PatternValue)
	s.Equal(0.8, pattern.ConfidenceScore)
	s.Equal(1, pattern.MatchCount)
	s.Equal(models.PatternSourceImportLearning, pattern.Source)
}

func (s *PayeeResolutionServiceTestSuite) TestRecordAcceptance_ReinforcesExisting() {
	existing := &models.PayeeMatchingPattern{
		ID:              uuid.New(),
		PayeeID:         s.starbucks.ID,
		UserID:          s.userID,
		PatternType:     models.PatternTypeFuzzyMatchBase,
		PatternValue:    "starbucks",
		ConfidenceScore: 0.8,
		MatchCount:      1,
	}
	s.payeeRepo.EXPECT().GetByIDForUser(s.userID, s.starbucks.ID).Return(&s.starbucks, nil)
	s.extractor.EXPECT().Extract(gomock.Any()).Return(payees.Extraction{Name: "Starbucks"})
	s.patternRepo.EXPECT().FindExisting(s.userID, s.starbucks.ID, models.PatternTypeFuzzyMatchBase, "starbucks").Return(existing, nil)
	s.patternRepo.EXPECT().Update(existing).Return(nil)
	s.importLogger.EXPECT().LogPatternLearned(s.ctx, existing, false)

	pattern, err := s.service.RecordAcceptance(s.ctx, s.userID, s.starbucks.ID, "STARBUCKS 99", models.PatternTypeFuzzyMatchBase)
	s.Require().NoError(err)
	s.Equal(2, pattern.MatchCount)
	s.InDelta(0.81, pattern.ConfidenceScore, 0.0001)
}

func (s *PayeeResolutionServiceTestSuite) TestRecordAcceptance_ConfidenceCapsAtOne() {
	existing := &models.PayeeMatchingPattern{
		PayeeID:         s.starbucks.ID,
		PatternType:     models.PatternTypeExactMatch,
		PatternValue:    "Starbucks",
		ConfidenceScore: 1.0,
		MatchCount:      40,
	}
	s.payeeRepo.EXPECT().GetByIDForUser(s.userID, s.starbucks.ID).Return(&s.starbucks, nil)
	s.extractor.EXPECT().Extract(gomock.Any()).Return(payees.Extraction{Name: "Starbucks"})
	s.patternRepo.EXPECT().FindExisting(s.userID, s.starbucks.ID, models.PatternTypeExactMatch, "Starbucks").Return(existing, nil)
	s.patternRepo.EXPECT().Update(existing).Return(nil)
	s.importLogger.EXPECT().LogPatternLearned(s.ctx, existing, false)

	pattern, err := s.service.RecordAcceptance(s.ctx, s.userID, s.starbucks.ID, "STARBUCKS", models.PatternTypeExactMatch)
	s.Require().NoError(err)
	s.Equal(1.0, pattern.ConfidenceScore)
}

func (s *PayeeResolutionServiceTestSuite) TestRecordAcceptance_ShortValueIsIgnored() {
	s.payeeRepo.EXPECT().GetByIDForUser(s.userID, s.starbucks.ID).Return(&s.starbucks, nil)
	s.extractor.EXPECT().Extract(gomock.Any()).Return(payees.Extraction{Name: "Abc"})

	pattern, err := s.service.RecordAcceptance(s.ctx, s.userID, s.starbucks.ID, "ABC 12", models.PatternTypeExactMatch)
	s.Require().NoError(err)
	s.Nil(pattern)
}

func (s *PayeeResolutionServiceTestSuite) TestRecordAcceptance_InvalidPatternType() {
	_, err := s.service.RecordAcceptance(s.ctx, s.userID, s.starbucks.ID, "STARBUCKS", models.PatternType("bogus"))
	s.ErrorIs(err, models.ErrInvalidPatternType)
}

func (s *PayeeResolutionServiceTestSuite) TestRecordAcceptance_UnknownPayee() {
	s.payeeRepo.EXPECT().GetByIDForUser(s.userID, gomock.Any()).Return(nil, repositories.ErrPayeeNotFound)

	_, err := s.service.RecordAcceptance(s.ctx, s.userID, uuid.New(), "STARBUCKS", models.PatternTypeExactMatch)
	s.ErrorIs(err, repositories.ErrPayeeNotFound)
}

func (s *PayeeResolutionServiceTestSuite) TestGetOrCreatePayee() {
	s.payeeRepo.EXPECT().GetOrCreate(s.userID, "Blue Bottle").Return(&models.Payee{ID: uuid.New(), CanonicalName: "Blue Bottle"}, true, nil)

	payee, err := s.service.GetOrCreatePayee(s.ctx, s.userID, "Blue Bottle")
	s.Require().NoError(err)
	s.Equal("Blue Bottle", payee.CanonicalName)
}

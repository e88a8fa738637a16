package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"fintrack/internal/config"
	"fintrack/internal/models"
	"fintrack/internal/payees"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

type PayeeResolutionService struct {
	payeeRepo    repositories.PayeeRepositoryInterface
	patternRepo  repositories.PayeePatternRepositoryInterface
	extractor    PayeeExtractor
	cfg          config.ResolutionConfig
	importLogger ImportLoggerInterface
	metrics      MetricsRecorderInterface
	logger       *slog.Logger
}

func NewPayeeResolutionService(
	payeeRepo repositories.PayeeRepositoryInterface,
	patternRepo repositories.PayeePatternRepositoryInterface,
	extractor PayeeExtractor,
	cfg config.ResolutionConfig,
	importLogger ImportLoggerInterface,
	metrics MetricsRecorderInterface,
) PayeeResolutionServiceInterface {
	return &PayeeResolutionService{
		payeeRepo:    payeeRepo,
		patternRepo:  patternRepo,
		extractor:    extractor,
		cfg:          cfg,
		importLogger: importLogger,
		metrics:      metrics,
		logger:       slog.Default(),
	}
}

// Resolve maps an extracted payee name to one of the user's payees. Learned
// patterns are tried first, then fuzzy similarity against every payee. A nil
// cache is replaced by a fresh one.
func (s *PayeeResolutionService) Resolve(ctx context.Context, cache *PatternCache, userID uuid.UUID, extractedName, description string) (*models.ResolutionResult, error) {
	if cache == nil {
		cache = NewPatternCache(userID)
	}
	if cache.UserID() != userID {
		return nil, ErrPatternCacheUserMismatch
	}

	patterns, userPayees, err := cache.load(func() ([]models.PayeeMatchingPattern, []models.Payee, error) {
		patterns, err := s.patternRepo.GetByUserID(userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load payee patterns: %w", err)
		}
		userPayees, err := s.payeeRepo.GetByUserID(userID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load payees: %w", err)
		}
		return patterns, userPayees, nil
	})
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(extractedName)
	result := s.resolve(patterns, userPayees, name, description)
	s.metrics.IncrementCounter("payee.resolved", map[string]string{"match_type": string(result.MatchType)})
	return result, nil
}

func (s *PayeeResolutionService) resolve(patterns []models.PayeeMatchingPattern, userPayees []models.Payee, name, description string) *models.ResolutionResult {
	byID := make(map[uuid.UUID]*models.Payee, len(userPayees))
	for i := range userPayees {
		byID[userPayees[i].ID] = &userPayees[i]
	}

	if pattern, payee := s.matchPattern(patterns, byID, name, description); pattern != nil {
		result := s.tier(pattern.ConfidenceScore, payee)
		result.Reason = fmt.Sprintf("matched %s pattern %q", pattern.PatternType, pattern.PatternValue)
		result.Alternatives = s.rankPayees(name, userPayees, s.cfg.AlternativeThreshold, payee.ID)
		if len(result.Alternatives) > s.cfg.MaxAlternatives {
			result.Alternatives = result.Alternatives[:s.cfg.MaxAlternatives]
		}
		return result
	}

	ranked := s.rankPayees(name, userPayees, s.cfg.LowConfidence, uuid.Nil)
	if len(ranked) == 0 {
		return &models.ResolutionResult{
			MatchType:     models.ResolutionNoMatch,
			Reason:        "no payee matched",
			Alternatives:  []models.PayeeAlternative{},
			SuggestedName: name,
		}
	}

	best := ranked[0]
	result := s.tier(best.Confidence, best.Payee)
	result.Reason = fmt.Sprintf("name similarity %.2f with %q", best.Confidence, best.Payee.CanonicalName)
	rest := ranked[1:]
	if len(rest) > s.cfg.MaxAlternatives {
		rest = rest[:s.cfg.MaxAlternatives]
	}
	result.Alternatives = append([]models.PayeeAlternative{}, rest...)
	return result
}

// matchPattern returns the first pattern, in confidence order, whose matcher
// accepts the subject. Patterns below the low tier never win.
func (s *PayeeResolutionService) matchPattern(patterns []models.PayeeMatchingPattern, byID map[uuid.UUID]*models.Payee, name, description string) (*models.PayeeMatchingPattern, *models.Payee) {
	subject := models.PatternSubject{Description: description, ExtractedName: name}

	for i := range patterns {
		p := &patterns[i]
		if p.ConfidenceScore < s.cfg.LowConfidence {
			continue
		}

		payee := p.Payee
		if payee == nil {
			payee = byID[p.PayeeID]
		}
		if payee == nil || utf8.RuneCountInString(payee.CanonicalName) < s.cfg.MinPayeeNameLength {
			continue
		}
		if p.PatternType == models.PatternTypeDescriptionContains &&
			utf8.RuneCountInString(strings.TrimSpace(p.PatternValue)) < s.cfg.MinContainsPatternLength {
			continue
		}

		if p.Matcher(payees.SimilarityRatio, s.cfg.FuzzyPatternThreshold).Match(subject) {
			return p, payee
		}
	}
	return nil, nil
}

// rankPayees scores every eligible payee against name, keeping those at or
// above threshold, best first.
func (s *PayeeResolutionService) rankPayees(name string, userPayees []models.Payee, threshold float64, exclude uuid.UUID) []models.PayeeAlternative {
	if name == "" {
		return nil
	}

	var ranked []models.PayeeAlternative
	for i := range userPayees {
		p := &userPayees[i]
		if p.ID == exclude || utf8.RuneCountInString(p.CanonicalName) < s.cfg.MinPayeeNameLength {
			continue
		}
		score := roundScore(payees.FoldedSimilarity(name, p.CanonicalName))
		if score >= threshold {
			ranked = append(ranked, models.PayeeAlternative{Payee: p, Confidence: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].Payee.CanonicalName < ranked[j].Payee.CanonicalName
	})
	return ranked
}

func (s *PayeeResolutionService) tier(confidence float64, payee *models.Payee) *models.ResolutionResult {
	result := &models.ResolutionResult{Confidence: confidence, Alternatives: []models.PayeeAlternative{}}
	switch {
	case confidence >= s.cfg.HighConfidence:
		result.MatchType = models.ResolutionHighConfidence
		result.Payee = payee
	case confidence >= s.cfg.LowConfidence:
		result.MatchType = models.ResolutionLowConfidence
		result.Payee = payee
	default:
		result.MatchType = models.ResolutionNoMatch
	}
	return result
}

// ResolveDescription extracts the payee from a raw description and resolves
// it with a fresh cache.
func (s *PayeeResolutionService) ResolveDescription(ctx context.Context, userID uuid.UUID, description string) (*models.ResolutionResult, error) {
	extraction := s.extractor.Extract(description)

	result, err := s.Resolve(ctx, NewPatternCache(userID), userID, extraction.Name, description)
	if err != nil {
		return nil, err
	}
	if result.CategoryHint == "" {
		result.CategoryHint = extraction.CategoryHint
	}
	if result.MatchType == models.ResolutionNoMatch && result.SuggestedName == "" {
		result.SuggestedName = extraction.Name
	}
	return result, nil
}

// RecordAcceptance learns from a confirmed match. An identical pattern is
// reinforced; otherwise a new one is created. Values too short to be useful
// are ignored and nil is returned.
func (s *PayeeResolutionService) RecordAcceptance(ctx context.Context, userID, payeeID uuid.UUID, description string, patternType models.PatternType) (*models.PayeeMatchingPattern, error) {
	if !patternType.IsValid() {
		return nil, models.ErrInvalidPatternType
	}

	payee, err := s.payeeRepo.GetByIDForUser(userID, payeeID)
	if err != nil {
		return nil, err
	}

	value := s.patternValue(description, patternType)
	if utf8.RuneCountInString(value) < s.cfg.MinPatternValueLength {
		s.logger.DebugContext(ctx, "pattern value too short, not learned",
			slog.String("payee_id", payee.ID.String()),
			slog.String("pattern_type", string(patternType)),
		)
		return nil, nil
	}

	existing, err := s.patternRepo.FindExisting(userID, payee.ID, patternType, value)
	if err != nil && !errors.Is(err, repositories.ErrPatternNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.MatchCount++
		existing.ConfidenceScore = math.Min(1.0, roundScore(existing.ConfidenceScore+s.cfg.ConfidenceIncrement))
		if err := s.patternRepo.Update(existing); err != nil {
			return nil, err
		}
		s.importLogger.LogPatternLearned(ctx, existing, false)
		s.metrics.IncrementCounter("payee.pattern_learned", map[string]string{"action": "reinforced"})
		return existing, nil
	}

	pattern := &models.PayeeMatchingPattern{
		PayeeID:         payee.ID,
		UserID:          userID,
		PatternType:     patternType,
		PatternValue:    value,
		ConfidenceScore: s.cfg.NewPatternConfidence,
		MatchCount:      1,
		Source:          models.PatternSourceImportLearning,
	}
	if err := s.patternRepo.Create(pattern); err != nil {
		return nil, err
	}
	s.importLogger.LogPatternLearned(ctx, pattern, true)
	s.metrics.IncrementCounter("payee.pattern_learned", map[string]string{"action": "created"})
	return pattern, nil
}

func (s *PayeeResolutionService) patternValue(description string, patternType models.PatternType) string {
	name := strings.TrimSpace(s.extractor.Extract(description).Name)
	switch patternType {
	case models.PatternTypeDescriptionContains:
		return merchantToken(description, name)
	case models.PatternTypeFuzzyMatchBase:
		return strings.ToLower(name)
	}
	return name
}

// merchantToken is the uppercased extracted name when the description
// contains it verbatim, else the description's longest alphabetic word.
func merchantToken(description, name string) string {
	upper := strings.ToUpper(description)
	if token := strings.ToUpper(name); token != "" && strings.Contains(upper, token) {
		return token
	}

	best := ""
	words := strings.FieldsFunc(upper, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '&'
	})
	for _, w := range words {
		if utf8.RuneCountInString(w) > utf8.RuneCountInString(best) {
			best = w
		}
	}
	return best
}

func (s *PayeeResolutionService) GetOrCreatePayee(ctx context.Context, userID uuid.UUID, name string) (*models.Payee, error) {
	payee, created, err := s.payeeRepo.GetOrCreate(userID, name)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.InfoContext(ctx, "payee created",
			slog.String("payee_id", payee.ID.String()),
			slog.String("user_id", userID.String()),
		)
	}
	return payee, nil
}

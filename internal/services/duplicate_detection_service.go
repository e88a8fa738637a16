package services

import (
	"context"
	"math"
	"strings"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/models"
	"fintrack/internal/payees"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

const scorePrecision = 10000

type DuplicateDetectionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	cfg             config.DuplicateConfig
	metrics         MetricsRecorderInterface
}

func NewDuplicateDetectionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	cfg config.DuplicateConfig,
	metrics MetricsRecorderInterface,
) DuplicateDetectionServiceInterface {
	return &DuplicateDetectionService{
		transactionRepo: transactionRepo,
		cfg:             cfg,
		metrics:         metrics,
	}
}

// FindDuplicates returns at most one candidate per incoming row, checked
// against everything already stored on the account. A matching external id
// is authoritative; otherwise rows are scored on date proximity, exact amount
// and description similarity.
func (s *DuplicateDetectionService) FindDuplicates(ctx context.Context, userID, accountID uuid.UUID, candidates []models.CanonicalTransaction) ([]models.DuplicateCandidate, error) {
	if len(candidates) == 0 {
		return []models.DuplicateCandidate{}, nil
	}

	start := time.Now()
	defer func() {
		s.metrics.RecordProcessingTime("duplicate.detection", time.Since(start))
	}()

	byExternalID, err := s.existingByExternalID(userID, accountID, candidates)
	if err != nil {
		return nil, err
	}

	var fuzzyPool []models.Transaction
	if minDate, maxDate, ok := s.fuzzyDateRange(candidates, byExternalID); ok {
		fuzzyPool, err = s.transactionRepo.GetByAccountInDateRange(userID, accountID, minDate, maxDate)
		if err != nil {
			return nil, err
		}
	}

	results := []models.DuplicateCandidate{}
	for i, candidate := range candidates {
		if existing, ok := byExternalID[candidate.ExternalID]; ok && candidate.ExternalID != "" {
			results = append(results, models.DuplicateCandidate{
				ExistingTransactionID: existing.ID,
				ConfidenceScore:       s.cfg.ExternalIDConfidence,
				MatchedNewRowIndex:    i,
				ExternalIDMatch:       true,
			})
			s.metrics.IncrementCounter("duplicate.found", map[string]string{"tier": "external_id"})
			continue
		}

		if match, ok := s.bestFuzzyMatch(candidate, fuzzyPool); ok {
			match.MatchedNewRowIndex = i
			results = append(results, match)
			s.metrics.IncrementCounter("duplicate.found", map[string]string{"tier": "fuzzy"})
		}
	}
	return results, nil
}

func (s *DuplicateDetectionService) existingByExternalID(userID, accountID uuid.UUID, candidates []models.CanonicalTransaction) (map[string]models.Transaction, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, c := range candidates {
		if c.ExternalID != "" && !seen[c.ExternalID] {
			seen[c.ExternalID] = true
			ids = append(ids, c.ExternalID)
		}
	}

	matches := make(map[string]models.Transaction)
	if len(ids) == 0 {
		return matches, nil
	}

	existing, err := s.transactionRepo.GetByAccountAndExternalIDs(userID, accountID, ids)
	if err != nil {
		return nil, err
	}
	for _, tx := range existing {
		if _, ok := matches[tx.ExternalID]; !ok {
			matches[tx.ExternalID] = tx
		}
	}
	return matches, nil
}

// fuzzyDateRange spans every row not already settled by external id, widened
// by the date window.
func (s *DuplicateDetectionService) fuzzyDateRange(candidates []models.CanonicalTransaction, settled map[string]models.Transaction) (time.Time, time.Time, bool) {
	var minDate, maxDate time.Time
	found := false
	for _, c := range candidates {
		if _, ok := settled[c.ExternalID]; ok && c.ExternalID != "" {
			continue
		}
		day := truncateDay(c.Date)
		if !found || day.Before(minDate) {
			minDate = day
		}
		if !found || day.After(maxDate) {
			maxDate = day
		}
		found = true
	}
	if !found {
		return time.Time{}, time.Time{}, false
	}

	window := time.Duration(s.cfg.DateWindowDays) * 24 * time.Hour
	return minDate.Add(-window), maxDate.Add(window), true
}

func (s *DuplicateDetectionService) bestFuzzyMatch(candidate models.CanonicalTransaction, pool []models.Transaction) (models.DuplicateCandidate, bool) {
	var best models.DuplicateCandidate
	found := false

	for i := range pool {
		score, ok := s.score(candidate, &pool[i])
		if !ok || score < s.cfg.MinConfidence {
			continue
		}
		if !found || score > best.ConfidenceScore {
			best = models.DuplicateCandidate{
				ExistingTransactionID: pool[i].ID,
				ConfidenceScore:       score,
			}
			found = true
		}
	}
	return best, found
}

// score is zero-valued and false unless the signed amounts are equal and the
// dates fall inside the window.
func (s *DuplicateDetectionService) score(candidate models.CanonicalTransaction, existing *models.Transaction) (float64, bool) {
	if !candidate.SignedAmount().Equal(existing.SignedAmount()) {
		return 0, false
	}

	days := daysApart(candidate.Date, existing.TransactionDate)
	dateScore, ok := s.dateScore(days)
	if !ok {
		return 0, false
	}

	existingText := existing.Description
	if existingText == "" {
		existingText = existing.PayeeText
	}
	descScore := s.descriptionScore(candidate.DisplayText(), existingText)

	return roundScore(dateScore + s.cfg.AmountWeight + descScore), true
}

func (s *DuplicateDetectionService) dateScore(days int) (float64, bool) {
	if days > s.cfg.DateWindowDays {
		return 0, false
	}
	switch days {
	case 0:
		return s.cfg.SameDayWeight, true
	case 1:
		return s.cfg.OneDayWeight, true
	case 2:
		return s.cfg.TwoDayWeight, true
	}
	return 0, true
}

// descriptionScore gives full weight to a case-insensitive exact match,
// partial credit to containment, and a similarity-scaled share above the
// minimum ratio.
func (s *DuplicateDetectionService) descriptionScore(a, b string) float64 {
	a = strings.ToLower(strings.Join(strings.Fields(a), " "))
	b = strings.ToLower(strings.Join(strings.Fields(b), " "))
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return s.cfg.DescriptionWeight
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return s.cfg.DescriptionWeight * s.cfg.SubstringCredit
	}
	if ratio := payees.SimilarityRatio(a, b); ratio >= s.cfg.MinDescriptionRatio {
		return s.cfg.DescriptionWeight * ratio
	}
	return 0
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysApart(a, b time.Time) int {
	diff := truncateDay(a).Sub(truncateDay(b))
	if diff < 0 {
		diff = -diff
	}
	return int(diff.Hours() / 24)
}

// roundScore rounds to four decimals so float sums do not straddle tier
// boundaries.
func roundScore(v float64) float64 {
	return math.Round(v*scorePrecision) / scorePrecision
}

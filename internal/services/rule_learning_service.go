package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"fintrack/internal/config"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidSuggestionParams = errors.New("min_occurrences must be at least 1 and min_confidence between 0 and 1")

var (
	learningHashRef    = regexp.MustCompile(`#\S*`)
	learningDigitToken = regexp.MustCompile(`\S*\d{3,}\S*|\b\d+\b`)
	learningPunct      = regexp.MustCompile(`[^A-Z&' ]+`)
	learningNoise      = regexp.MustCompile(`\b(?:STORE|STR|POS|PURCHASE|DEBIT|CHECKCARD|CARD|PAYMENT|PMT|ONLINE|ACH|TXN)\b`)
)

type RuleLearningService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	ruleRepo        repositories.RuleRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	cfg             config.LearningConfig
	logger          *slog.Logger
	now             func() time.Time
}

func NewRuleLearningService(
	transactionRepo repositories.TransactionRepositoryInterface,
	ruleRepo repositories.RuleRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	cfg config.LearningConfig,
) RuleLearningServiceInterface {
	return &RuleLearningService{
		transactionRepo: transactionRepo,
		ruleRepo:        ruleRepo,
		categoryRepo:    categoryRepo,
		cfg:             cfg,
		logger:          slog.Default(),
		now:             time.Now,
	}
}

// payeeGroup is one merchant family found in the user's history.
type payeeGroup struct {
	pattern      string
	rawNames     []string
	transactions []*models.Transaction
}

func (g *payeeGroup) identicalNames() bool {
	for _, name := range g.rawNames[1:] {
		if name != g.rawNames[0] {
			return false
		}
	}
	return true
}

// AnalyzeUserPatterns proposes rules from the user's categorized history.
// Merchants already covered by an enabled rule are never suggested.
func (s *RuleLearningService) AnalyzeUserPatterns(ctx context.Context, userID uuid.UUID, minOccurrences int, minConfidence float64) ([]models.RuleSuggestion, error) {
	if minOccurrences < 1 || minConfidence < 0 || minConfidence > 1 {
		return nil, ErrInvalidSuggestionParams
	}

	categorized := true
	transactions, err := s.transactionRepo.Find(models.TransactionFilters{UserID: userID, Categorized: &categorized})
	if err != nil {
		return nil, err
	}
	rules, err := s.ruleRepo.GetEnabledByUserID(userID)
	if err != nil {
		return nil, err
	}

	groups := s.mergeGroups(groupByPayee(transactions))

	var candidates []*payeeGroup
	categoryIDs := map[uuid.UUID]bool{}
	for _, g := range groups {
		if len(g.transactions) < minOccurrences || overlapsRule(g.pattern, rules) {
			continue
		}
		candidates = append(candidates, g)
		for _, tx := range g.transactions {
			categoryIDs[*tx.CategoryID] = true
		}
	}
	if len(candidates) == 0 {
		return []models.RuleSuggestion{}, nil
	}

	names, err := s.categoryNames(userID, categoryIDs)
	if err != nil {
		return nil, err
	}

	now := s.now()
	suggestions := make([]models.RuleSuggestion, 0, len(candidates))
	for _, g := range candidates {
		suggestion := s.suggest(g, names, now)
		if suggestion.Confidence < minConfidence {
			continue
		}
		suggestions = append(suggestions, suggestion)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Confidence != suggestions[j].Confidence {
			return suggestions[i].Confidence > suggestions[j].Confidence
		}
		if suggestions[i].Occurrences != suggestions[j].Occurrences {
			return suggestions[i].Occurrences > suggestions[j].Occurrences
		}
		return suggestions[i].Name < suggestions[j].Name
	})

	s.logger.DebugContext(ctx, "rule suggestions analyzed",
		slog.String("user_id", userID.String()),
		slog.Int("transactions", len(transactions)),
		slog.Int("groups", len(groups)),
		slog.Int("suggestions", len(suggestions)),
	)
	return suggestions, nil
}

func (s *RuleLearningService) categoryNames(userID uuid.UUID, ids map[uuid.UUID]bool) (map[uuid.UUID]string, error) {
	list := make([]uuid.UUID, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	categories, err := s.categoryRepo.GetByIDs(userID, list)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

func (s *RuleLearningService) suggest(g *payeeGroup, categoryNames map[uuid.UUID]string, now time.Time) models.RuleSuggestion {
	size := len(g.transactions)
	categoryID, majority := majorityCategory(g.transactions)
	consistency := float64(majority) / float64(size)

	frequency := math.Min(float64(size)/float64(s.cfg.FrequencySaturation), 1)

	cutoff := now.AddDate(0, 0, -s.cfg.RecencyWindowDays)
	recent := 0
	for _, tx := range g.transactions {
		if !tx.TransactionDate.Before(cutoff) {
			recent++
		}
	}
	recency := float64(recent) / float64(size)

	confidence := roundScore(s.cfg.ConsistencyWeight*consistency +
		s.cfg.FrequencyWeight*frequency +
		s.cfg.RecencyWeight*recency)

	suggestion := models.RuleSuggestion{
		PayeePattern:   g.pattern,
		PayeeMatchType: models.MatchTypeContains,
		CategoryID:     categoryID,
		CategoryName:   categoryNames[categoryID],
		Confidence:     confidence,
		Consistency:    roundScore(consistency),
		Occurrences:    size,
	}
	if g.identicalNames() {
		suggestion.PayeePattern = g.rawNames[0]
		suggestion.PayeeMatchType = models.MatchTypeExact
	}

	suggestion.AmountMin, suggestion.AmountMax = s.amountRange(g.transactions)
	suggestion.TransactionType = s.dominantDirection(g.transactions)

	category := suggestion.CategoryName
	if category == "" {
		category = "Uncategorized"
	}
	suggestion.Name = fmt.Sprintf("Auto: %s → %s", s.truncatePayee(suggestion.PayeePattern), category)

	for _, tx := range g.transactions {
		if len(suggestion.SampleTransactionIDs) >= s.cfg.SampleSize {
			break
		}
		suggestion.SampleTransactionIDs = append(suggestion.SampleTransactionIDs, tx.ID)
	}
	return suggestion
}

// amountRange widens the observed range by the configured margin, but only
// when the coefficient of variation is under the limit.
func (s *RuleLearningService) amountRange(transactions []*models.Transaction) (decimal.NullDecimal, decimal.NullDecimal) {
	amounts := make([]float64, len(transactions))
	var sum float64
	for i, tx := range transactions {
		amounts[i] = tx.Amount.InexactFloat64()
		sum += amounts[i]
	}
	mean := sum / float64(len(amounts))
	if mean <= 0 {
		return decimal.NullDecimal{}, decimal.NullDecimal{}
	}

	var variance float64
	minAmount, maxAmount := transactions[0].Amount, transactions[0].Amount
	for i, a := range amounts {
		variance += (a - mean) * (a - mean)
		if transactions[i].Amount.LessThan(minAmount) {
			minAmount = transactions[i].Amount
		}
		if transactions[i].Amount.GreaterThan(maxAmount) {
			maxAmount = transactions[i].Amount
		}
	}
	stddev := math.Sqrt(variance / float64(len(amounts)))
	if stddev/mean >= s.cfg.AmountVarianceLimit {
		return decimal.NullDecimal{}, decimal.NullDecimal{}
	}

	margin := decimal.NewFromFloat(s.cfg.AmountRangeMargin)
	low := minAmount.Mul(decimal.NewFromInt(1).Sub(margin)).Round(2)
	high := maxAmount.Mul(decimal.NewFromInt(1).Add(margin)).Round(2)
	return decimal.NewNullDecimal(low), decimal.NewNullDecimal(high)
}

func (s *RuleLearningService) dominantDirection(transactions []*models.Transaction) string {
	debits := 0
	for _, tx := range transactions {
		if tx.TransactionType == models.TransactionTypeDebit {
			debits++
		}
	}
	total := float64(len(transactions))
	switch {
	case float64(debits)/total >= s.cfg.DirectionShare:
		return models.TransactionTypeDebit
	case float64(len(transactions)-debits)/total >= s.cfg.DirectionShare:
		return models.TransactionTypeCredit
	}
	return ""
}

func (s *RuleLearningService) truncatePayee(name string) string {
	if utf8.RuneCountInString(name) <= s.cfg.MaxNamePayeeLength {
		return name
	}
	return models.Truncate(name, s.cfg.MaxNamePayeeLength) + "..."
}

// mergeGroups folds together groups whose keys share a word-aligned common
// substring of at least MinCommonSubstring characters, until no pair does.
func (s *RuleLearningService) mergeGroups(groups []*payeeGroup) []*payeeGroup {
	for {
		merged := false
		for i := 0; i < len(groups) && !merged; i++ {
			for j := i + 1; j < len(groups); j++ {
				common := longestCommonWordSubstring(groups[i].pattern, groups[j].pattern)
				if utf8.RuneCountInString(common) < s.cfg.MinCommonSubstring {
					continue
				}
				groups[i].pattern = common
				groups[i].rawNames = append(groups[i].rawNames, groups[j].rawNames...)
				groups[i].transactions = append(groups[i].transactions, groups[j].transactions...)
				groups = append(groups[:j], groups[j+1:]...)
				merged = true
				break
			}
		}
		if !merged {
			return groups
		}
	}
}

// groupByPayee buckets transactions by normalized payee text in first-seen
// order.
func groupByPayee(transactions []models.Transaction) []*payeeGroup {
	index := map[string]*payeeGroup{}
	var groups []*payeeGroup

	for i := range transactions {
		tx := &transactions[i]
		raw := tx.PayeeText
		if strings.TrimSpace(raw) == "" {
			raw = tx.Description
		}
		key := normalizeLearningKey(raw)
		if key == "" {
			continue
		}

		g, ok := index[key]
		if !ok {
			g = &payeeGroup{pattern: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.rawNames = append(g.rawNames, strings.ToUpper(strings.TrimSpace(raw)))
		g.transactions = append(g.transactions, tx)
	}
	return groups
}

// normalizeLearningKey uppercases payee text and drops store numbers,
// reference tokens and generic card-processing words.
func normalizeLearningKey(s string) string {
	s = strings.ToUpper(s)
	s = learningHashRef.ReplaceAllString(s, " ")
	s = learningDigitToken.ReplaceAllString(s, " ")
	s = learningPunct.ReplaceAllString(s, " ")
	if cleaned := learningNoise.ReplaceAllString(s, " "); strings.TrimSpace(cleaned) != "" {
		s = cleaned
	}
	return strings.Join(strings.Fields(s), " ")
}

// longestCommonWordSubstring is the longest common substring of a and b that
// starts at a word boundary in both, with surrounding spaces trimmed.
func longestCommonWordSubstring(a, b string) string {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return ""
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	best, bestEnd := 0, 0

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] != rb[j-1] {
				curr[j] = 0
				continue
			}
			curr[j] = prev[j-1] + 1
			for k := curr[j]; k > best; k-- {
				if wordStart(ra, i-k) && wordStart(rb, j-k) {
					best, bestEnd = k, i
					break
				}
			}
		}
		prev, curr = curr, prev
	}

	return strings.TrimSpace(string(ra[bestEnd-best : bestEnd]))
}

func wordStart(r []rune, at int) bool {
	return at == 0 || r[at-1] == ' '
}

// majorityCategory returns the most frequent category; ties go to the one
// seen first.
func majorityCategory(transactions []*models.Transaction) (uuid.UUID, int) {
	counts := map[uuid.UUID]int{}
	var order []uuid.UUID
	for _, tx := range transactions {
		id := *tx.CategoryID
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	var best uuid.UUID
	bestCount := 0
	for _, id := range order {
		if counts[id] > bestCount {
			best, bestCount = id, counts[id]
		}
	}
	return best, bestCount
}

func overlapsRule(pattern string, rules []models.CategorizationRule) bool {
	for _, rule := range rules {
		existing := strings.ToUpper(strings.TrimSpace(rule.PayeePattern))
		if existing == "" {
			continue
		}
		if strings.Contains(existing, pattern) || strings.Contains(pattern, existing) {
			return true
		}
		if normalized := normalizeLearningKey(existing); normalized != "" &&
			(strings.Contains(normalized, pattern) || strings.Contains(pattern, normalized)) {
			return true
		}
	}
	return false
}

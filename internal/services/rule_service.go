package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
)

// CategorizationSummary reports the outcome of applying rules to existing
// transactions. Updated counts matches whose rule has no category action.
type CategorizationSummary struct {
	Total         int               `json:"total"`
	Categorized   int               `json:"categorized"`
	Updated       int               `json:"updated"`
	Uncategorized int               `json:"uncategorized"`
	Skipped       int               `json:"skipped"`
	RulesUsed     int               `json:"rules_used"`
	RuleMatches   map[uuid.UUID]int `json:"rule_matches"`
}

type RuleService struct {
	ruleRepo        repositories.RuleRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	categoryRepo    repositories.CategoryRepositoryInterface
	engine          *RuleEngine
	importLogger    ImportLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
	now             func() time.Time
}

func NewRuleService(
	ruleRepo repositories.RuleRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	categoryRepo repositories.CategoryRepositoryInterface,
	engine *RuleEngine,
	importLogger ImportLoggerInterface,
	metrics MetricsRecorderInterface,
) RuleServiceInterface {
	if engine == nil {
		engine = NewRuleEngine(nil)
	}
	return &RuleService{
		ruleRepo:        ruleRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		engine:          engine,
		importLogger:    importLogger,
		metrics:         metrics,
		logger:          slog.Default(),
		now:             time.Now,
	}
}

func (s *RuleService) CreateRule(ctx context.Context, userID uuid.UUID, rule *models.CategorizationRule) (*models.CategorizationRule, error) {
	rule.UserID = userID
	defaultMatchTypes(rule)
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(userID, rule.CategoryID); err != nil {
		return nil, err
	}

	enabled := rule.Enabled
	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	// enabled has a column default, so a false value is dropped on insert
	if !enabled {
		rule.Enabled = false
		if err := s.ruleRepo.Update(rule); err != nil {
			return nil, err
		}
	}

	s.logger.InfoContext(ctx, "rule created",
		slog.String("rule_id", rule.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("priority", rule.Priority),
	)
	return rule, nil
}

func (s *RuleService) GetRule(ctx context.Context, userID, ruleID uuid.UUID) (*models.CategorizationRule, error) {
	return s.ruleRepo.GetByIDForUser(userID, ruleID)
}

func (s *RuleService) ListRules(ctx context.Context, userID uuid.UUID) ([]models.CategorizationRule, error) {
	return s.ruleRepo.GetByUserID(userID)
}

// UpdateRule replaces every editable field of the rule with those in changes.
func (s *RuleService) UpdateRule(ctx context.Context, userID, ruleID uuid.UUID, changes *models.CategorizationRule) (*models.CategorizationRule, error) {
	rule, err := s.ruleRepo.GetByIDForUser(userID, ruleID)
	if err != nil {
		return nil, err
	}

	rule.Name = changes.Name
	rule.Priority = changes.Priority
	rule.Enabled = changes.Enabled
	rule.PayeePattern = changes.PayeePattern
	rule.PayeeMatchType = changes.PayeeMatchType
	rule.DescriptionPattern = changes.DescriptionPattern
	rule.DescriptionMatchType = changes.DescriptionMatchType
	rule.AmountMin = changes.AmountMin
	rule.AmountMax = changes.AmountMax
	rule.TransactionType = changes.TransactionType
	rule.CategoryID = changes.CategoryID
	rule.NewPayee = changes.NewPayee
	rule.NotesAppend = changes.NotesAppend
	defaultMatchTypes(rule)

	if err := rule.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(userID, rule.CategoryID); err != nil {
		return nil, err
	}
	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *RuleService) DeleteRule(ctx context.Context, userID, ruleID uuid.UUID) error {
	if err := s.ruleRepo.Delete(userID, ruleID); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "rule deleted",
		slog.String("rule_id", ruleID.String()),
		slog.String("user_id", userID.String()),
	)
	return nil
}

// CategorizeTransactions runs the user's enabled rules over the transactions
// selected by filter. Already-categorized transactions are skipped unless
// overwrite is set.
func (s *RuleService) CategorizeTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilters, overwrite bool) (*CategorizationSummary, error) {
	filter.UserID = userID

	rules, err := s.ruleRepo.GetEnabledByUserID(userID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.transactionRepo.Find(filter)
	if err != nil {
		return nil, err
	}

	summary := &CategorizationSummary{Total: len(transactions), RuleMatches: map[uuid.UUID]int{}}
	ruleSet := s.engine.Compile(rules)
	now := s.now()

	for i := range transactions {
		tx := &transactions[i]
		if tx.IsCategorized() && !overwrite {
			summary.Skipped++
			continue
		}

		rule := ruleSet.Evaluate(tx)
		if rule == nil {
			summary.Uncategorized++
			continue
		}

		s.engine.Apply(tx, rule, now)
		if err := s.transactionRepo.Update(tx); err != nil {
			return nil, fmt.Errorf("failed to apply rule %s: %w", rule.ID, err)
		}
		// rules that only rename the payee or append notes leave the category alone
		if rule.CategoryID != nil {
			summary.Categorized++
		} else {
			summary.Updated++
		}
		summary.RuleMatches[rule.ID]++
		s.metrics.IncrementCounter("rule.matched", map[string]string{})
	}

	for ruleID, matches := range summary.RuleMatches {
		if err := s.ruleRepo.RecordMatches(ruleID, matches, now); err != nil {
			return nil, err
		}
	}
	summary.RulesUsed = len(summary.RuleMatches)

	s.importLogger.LogRulesApplied(ctx, userID, summary.Categorized, summary.RulesUsed)
	return summary, nil
}

// CreateRuleFromSuggestion persists a learned suggestion as an enabled rule.
func (s *RuleService) CreateRuleFromSuggestion(ctx context.Context, userID uuid.UUID, suggestion models.RuleSuggestion, priority int) (*models.CategorizationRule, error) {
	return s.CreateRule(ctx, userID, suggestion.ToRule(userID, priority))
}

func (s *RuleService) checkCategory(userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}
	_, err := s.categoryRepo.GetByIDForUser(userID, *categoryID)
	return err
}

func defaultMatchTypes(rule *models.CategorizationRule) {
	if rule.PayeePattern != "" && rule.PayeeMatchType == "" {
		rule.PayeeMatchType = models.MatchTypeContains
	}
	if rule.DescriptionPattern != "" && rule.DescriptionMatchType == "" {
		rule.DescriptionMatchType = models.MatchTypeContains
	}
}

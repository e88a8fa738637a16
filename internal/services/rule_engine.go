package services

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"fintrack/internal/models"
)

// RuleEngine evaluates categorization rules against single transactions. It
// holds no state besides its logger.
type RuleEngine struct {
	logger *slog.Logger
}

func NewRuleEngine(logger *slog.Logger) *RuleEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &RuleEngine{logger: logger}
}

// RuleSet is a batch's enabled rules in evaluation order, with each text
// condition built once. Evaluate returns pointers into the slice given to
// Compile.
type RuleSet struct {
	rules []compiledRule
}

type compiledRule struct {
	rule        *models.CategorizationRule
	payee       models.TextMatcher
	description models.TextMatcher
	// a condition failed to build; the rule matches nothing
	broken bool
}

// Compile orders the enabled rules by descending priority, keeping the given
// order for ties.
func (e *RuleEngine) Compile(rules []models.CategorizationRule) *RuleSet {
	set := &RuleSet{rules: make([]compiledRule, 0, len(rules))}
	for i := range rules {
		if rules[i].Enabled {
			set.rules = append(set.rules, e.compile(&rules[i]))
		}
	}
	sort.SliceStable(set.rules, func(i, j int) bool {
		return set.rules[i].rule.Priority > set.rules[j].rule.Priority
	})
	return set
}

func (e *RuleEngine) compile(rule *models.CategorizationRule) compiledRule {
	c := compiledRule{rule: rule}

	var err error
	if c.payee, err = rule.PayeeMatcher(); err != nil {
		e.logInvalid(rule, "payee", rule.PayeeMatchType, err)
		c.broken = true
	}
	if c.description, err = rule.DescriptionMatcher(); err != nil {
		e.logInvalid(rule, "description", rule.DescriptionMatchType, err)
		c.broken = true
	}
	return c
}

func (e *RuleEngine) logInvalid(rule *models.CategorizationRule, field string, matchType models.MatchType, err error) {
	e.logger.Debug("rule condition cannot match",
		slog.String("rule_id", rule.ID.String()),
		slog.String("field", field),
		slog.String("match_type", string(matchType)),
		slog.String("error", err.Error()),
	)
}

// Len is the number of enabled rules in the set.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Evaluate returns the first matching rule in priority order, or nil.
func (s *RuleSet) Evaluate(tx *models.Transaction) *models.CategorizationRule {
	for i := range s.rules {
		if s.rules[i].matches(tx) {
			return s.rules[i].rule
		}
	}
	return nil
}

func (c *compiledRule) matches(tx *models.Transaction) bool {
	if c.broken {
		return false
	}
	rule := c.rule
	if c.payee != nil && !c.payee.Match(tx.PayeeText) {
		return false
	}
	if c.description != nil && !c.description.Match(tx.Description) {
		return false
	}
	if rule.AmountMin.Valid && tx.Amount.LessThan(rule.AmountMin.Decimal) {
		return false
	}
	if rule.AmountMax.Valid && tx.Amount.GreaterThan(rule.AmountMax.Decimal) {
		return false
	}
	if rule.TransactionType != "" && !strings.EqualFold(rule.TransactionType, tx.TransactionType) {
		return false
	}
	return true
}

// Evaluate returns the highest-priority enabled rule matching tx, or nil.
// Callers evaluating many transactions should Compile once instead.
func (e *RuleEngine) Evaluate(tx *models.Transaction, rules []models.CategorizationRule) *models.CategorizationRule {
	return e.Compile(rules).Evaluate(tx)
}

// Matches reports whether every populated condition of rule holds for tx.
func (e *RuleEngine) Matches(tx *models.Transaction, rule *models.CategorizationRule) bool {
	c := e.compile(rule)
	return c.matches(tx)
}

// Apply runs rule's actions on tx and bumps the rule's match statistics.
func (e *RuleEngine) Apply(tx *models.Transaction, rule *models.CategorizationRule, now time.Time) {
	if rule.CategoryID != nil {
		categoryID := *rule.CategoryID
		tx.CategoryID = &categoryID
	}
	if rule.NewPayee != "" {
		tx.PayeeText = models.Truncate(rule.NewPayee, models.MaxPayeeTextLength)
	}
	if rule.NotesAppend != "" {
		if tx.Notes == "" {
			tx.Notes = rule.NotesAppend
		} else {
			tx.Notes = tx.Notes + "\n" + rule.NotesAppend
		}
	}

	rule.MatchCount++
	rule.LastMatchedAt = &now
}

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleSuggestion is a rule proposed from a user's categorized history.
type RuleSuggestion struct {
	Name                 string              `json:"name"`
	PayeePattern         string              `json:"payee_pattern"`
	PayeeMatchType       MatchType           `json:"payee_match_type"`
	CategoryID           uuid.UUID           `json:"category_id"`
	CategoryName         string              `json:"category_name,omitempty"`
	AmountMin            decimal.NullDecimal `json:"amount_min"`
	AmountMax            decimal.NullDecimal `json:"amount_max"`
	TransactionType      string              `json:"transaction_type,omitempty"`
	Confidence           float64             `json:"confidence"`
	Consistency          float64             `json:"consistency"`
	Occurrences          int                 `json:"occurrences"`
	SampleTransactionIDs []uuid.UUID         `json:"sample_transaction_ids"`
}

// ToRule converts the suggestion into an enabled rule for userID.
func (s RuleSuggestion) ToRule(userID uuid.UUID, priority int) *CategorizationRule {
	categoryID := s.CategoryID
	return &CategorizationRule{
		UserID:          userID,
		Name:            s.Name,
		Priority:        priority,
		Enabled:         true,
		PayeePattern:    s.PayeePattern,
		PayeeMatchType:  s.PayeeMatchType,
		AmountMin:       s.AmountMin,
		AmountMax:       s.AmountMax,
		TransactionType: s.TransactionType,
		CategoryID:      &categoryID,
	}
}

// SmartRuleSuggestion is a rule proposed from rows of an import that has not
// been committed yet. RowIndices point back into the previewed rows.
type SmartRuleSuggestion struct {
	PayeeName      string    `json:"payee_name"`
	PayeePattern   string    `json:"payee_pattern"`
	PayeeMatchType MatchType `json:"payee_match_type"`
	CategoryHint   string    `json:"category_hint,omitempty"`
	Confidence     float64   `json:"confidence"`
	Occurrences    int       `json:"occurrences"`
	RowIndices     []int     `json:"row_indices"`
	SampleTexts    []string  `json:"sample_texts"`
}

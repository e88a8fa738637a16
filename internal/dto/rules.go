package dto

import (
	"strings"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RuleRequest creates or fully replaces a categorization rule.
type RuleRequest struct {
	Name                 string     `json:"name" validate:"required,max=100"`
	Priority             int        `json:"priority" validate:"gte=0"`
	Enabled              *bool      `json:"enabled,omitempty"`
	PayeePattern         string     `json:"payee_pattern,omitempty" validate:"max=255"`
	PayeeMatchType       string     `json:"payee_match_type,omitempty" validate:"match_type"`
	DescriptionPattern   string     `json:"description_pattern,omitempty" validate:"max=255"`
	DescriptionMatchType string     `json:"description_match_type,omitempty" validate:"match_type"`
	AmountMin            string     `json:"amount_min,omitempty" validate:"decimal_amount"`
	AmountMax            string     `json:"amount_max,omitempty" validate:"decimal_amount"`
	TransactionType      string     `json:"transaction_type,omitempty" validate:"transaction_direction"`
	CategoryID           *uuid.UUID `json:"category_id,omitempty"`
	NewPayee             string     `json:"new_payee,omitempty" validate:"max=200"`
	NotesAppend          string     `json:"notes_append,omitempty"`
}

// ToModel builds the rule. Rules are enabled unless the request says otherwise.
func (r RuleRequest) ToModel() *models.CategorizationRule {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}

	return &models.CategorizationRule{
		Name:                 strings.TrimSpace(r.Name),
		Priority:             r.Priority,
		Enabled:              enabled,
		PayeePattern:         r.PayeePattern,
		PayeeMatchType:       models.MatchType(r.PayeeMatchType),
		DescriptionPattern:   r.DescriptionPattern,
		DescriptionMatchType: models.MatchType(r.DescriptionMatchType),
		AmountMin:            nullDecimal(r.AmountMin),
		AmountMax:            nullDecimal(r.AmountMax),
		TransactionType:      strings.ToLower(r.TransactionType),
		CategoryID:           r.CategoryID,
		NewPayee:             r.NewPayee,
		NotesAppend:          r.NotesAppend,
	}
}

func nullDecimal(value string) decimal.NullDecimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// ApplyRulesRequest runs the enabled rules over existing transactions.
type ApplyRulesRequest struct {
	AccountID *uuid.UUID `json:"account_id,omitempty"`
	StartDate string     `json:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty"`
	ImportID  *uuid.UUID `json:"import_id,omitempty"`
	Overwrite bool       `json:"overwrite"`
}

// SuggestionQuery tunes rule learning.
type SuggestionQuery struct {
	MinOccurrences int     `query:"min_occurrences" validate:"gte=0"`
	MinConfidence  float64 `query:"min_confidence" validate:"gte=0,lte=1"`
}

// AcceptSuggestionRequest turns a learned suggestion into a rule.
type AcceptSuggestionRequest struct {
	Suggestion models.RuleSuggestion `json:"suggestion"`
	Priority   int                   `json:"priority" validate:"gte=0"`
}

type RuleListResponse struct {
	Rules []models.CategorizationRule `json:"rules"`
	Total int                         `json:"total"`
}

type SuggestionListResponse struct {
	Suggestions []models.RuleSuggestion `json:"suggestions"`
	Total       int                     `json:"total"`
}

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrRuleNameRequired   = errors.New("rule name is required")
	ErrRuleHasNoCondition = errors.New("rule must have at least one condition")
	ErrInvalidAmountRange = errors.New("amount_min must not exceed amount_max")
)

// CategorizationRule is a user-authored condition set. All populated
// conditions must match; absent conditions are vacuously true.
type CategorizationRule struct {
	ID                   uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	UserID               uuid.UUID           `gorm:"type:uuid;not null;index:idx_rules_user_priority" json:"user_id"`
	Name                 string              `gorm:"type:varchar(100);not null" json:"name"`
	Priority             int                 `gorm:"not null;default:0;index:idx_rules_user_priority" json:"priority"`
	Enabled              bool                `gorm:"not null;default:true" json:"enabled"`
	PayeePattern         string              `gorm:"type:varchar(255)" json:"payee_pattern,omitempty"`
	PayeeMatchType       MatchType           `gorm:"type:varchar(20)" json:"payee_match_type,omitempty"`
	DescriptionPattern   string              `gorm:"type:varchar(255)" json:"description_pattern,omitempty"`
	DescriptionMatchType MatchType           `gorm:"type:varchar(20)" json:"description_match_type,omitempty"`
	AmountMin            decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"amount_min"`
	AmountMax            decimal.NullDecimal `gorm:"type:decimal(15,2)" json:"amount_max"`
	TransactionType      string              `gorm:"type:varchar(10)" json:"transaction_type,omitempty"`
	CategoryID           *uuid.UUID          `gorm:"type:uuid" json:"category_id,omitempty"`
	NewPayee             string              `gorm:"type:varchar(200)" json:"new_payee,omitempty"`
	NotesAppend          string              `gorm:"type:text" json:"notes_append,omitempty"`
	MatchCount           int                 `gorm:"not null;default:0" json:"match_count"`
	LastMatchedAt        *time.Time          `json:"last_matched_at,omitempty"`
	CreatedAt            time.Time           `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time           `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for CategorizationRule
func (r *CategorizationRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	return r.Validate()
}

// BeforeUpdate hook for CategorizationRule
func (r *CategorizationRule) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// Validate validates the rule fields
func (r *CategorizationRule) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrRuleNameRequired
	}
	if r.PayeeMatchType != "" && !r.PayeeMatchType.IsValid() {
		return ErrInvalidMatchType
	}
	if r.DescriptionMatchType != "" && !r.DescriptionMatchType.IsValid() {
		return ErrInvalidMatchType
	}
	if r.TransactionType != "" && !IsValidTransactionType(r.TransactionType) {
		return ErrInvalidTransactionType
	}
	if r.AmountMin.Valid && r.AmountMax.Valid && r.AmountMin.Decimal.GreaterThan(r.AmountMax.Decimal) {
		return ErrInvalidAmountRange
	}
	if !r.HasConditions() {
		return ErrRuleHasNoCondition
	}
	return nil
}

func (r *CategorizationRule) HasConditions() bool {
	return r.PayeePattern != "" || r.DescriptionPattern != "" ||
		r.AmountMin.Valid || r.AmountMax.Valid || r.TransactionType != ""
}

// PayeeMatcher returns nil when the rule has no payee condition. A regex
// that does not compile is reported as an error.
func (r *CategorizationRule) PayeeMatcher() (TextMatcher, error) {
	return conditionMatcher(r.PayeeMatchType, r.PayeePattern)
}

// DescriptionMatcher is PayeeMatcher for the description condition.
func (r *CategorizationRule) DescriptionMatcher() (TextMatcher, error) {
	return conditionMatcher(r.DescriptionMatchType, r.DescriptionPattern)
}

func conditionMatcher(matchType MatchType, pattern string) (TextMatcher, error) {
	if pattern == "" {
		return nil, nil
	}
	matcher, err := NewTextMatcher(matchType, pattern)
	if err != nil {
		return nil, err
	}
	if re, ok := matcher.(RegexMatch); ok && re.Err != nil {
		return nil, re.Err
	}
	return matcher, nil
}

// TableName specifies the table name for GORM
func (CategorizationRule) TableName() string {
	return "categorization_rules"
}

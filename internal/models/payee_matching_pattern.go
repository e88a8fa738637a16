package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PatternType is the kind of evidence a PayeeMatchingPattern carries.
type PatternType string

const (
	PatternTypeDescriptionContains PatternType = "description_contains"
	PatternTypeExactMatch          PatternType = "exact_match"
	PatternTypeFuzzyMatchBase      PatternType = "fuzzy_match_base"
)

const (
	PatternSourceKnownMerchant  = "known_merchant"
	PatternSourceImportLearning = "import_learning"
	PatternSourceUserCreated    = "user_created"
)

var (
	ErrInvalidPatternType = errors.New("invalid pattern type")
	ErrInvalidConfidence  = errors.New("confidence score must be between 0 and 1")
)

func (t PatternType) IsValid() bool {
	switch t {
	case PatternTypeDescriptionContains, PatternTypeExactMatch, PatternTypeFuzzyMatchBase:
		return true
	}
	return false
}

// PayeeMatchingPattern associates text with a Payee. Confidence grows as
// users keep confirming the association.
type PayeeMatchingPattern struct {
	ID              uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	PayeeID         uuid.UUID   `gorm:"type:uuid;not null;index" json:"payee_id"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	PatternType     PatternType `gorm:"type:varchar(30);not null" json:"pattern_type"`
	PatternValue    string      `gorm:"type:varchar(255);not null" json:"pattern_value"`
	ConfidenceScore float64     `gorm:"not null;default:0.8" json:"confidence_score"`
	MatchCount      int         `gorm:"not null;default:0" json:"match_count"`
	Source          string      `gorm:"type:varchar(30);not null" json:"source"`
	CreatedAt       time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"not null" json:"updated_at"`

	Payee *Payee `gorm:"foreignKey:PayeeID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeforeCreate hook for PayeeMatchingPattern
func (p *PayeeMatchingPattern) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Source == "" {
		p.Source = PatternSourceUserCreated
	}

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return p.Validate()
}

// Validate validates the pattern fields
func (p *PayeeMatchingPattern) Validate() error {
	if !p.PatternType.IsValid() {
		return ErrInvalidPatternType
	}
	if p.ConfidenceScore < 0 || p.ConfidenceScore > 1 {
		return ErrInvalidConfidence
	}
	if strings.TrimSpace(p.PatternValue) == "" {
		return errors.New("pattern value is required")
	}
	return nil
}

// Matcher returns the closed matcher variant for this pattern. similarity and
// fuzzyThreshold are only consulted by fuzzy_match_base patterns.
func (p *PayeeMatchingPattern) Matcher(similarity func(a, b string) float64, fuzzyThreshold float64) PatternMatcher {
	switch p.PatternType {
	case PatternTypeDescriptionContains:
		return DescriptionContainsMatch{Value: p.PatternValue}
	case PatternTypeExactMatch:
		return ExactNameMatch{Value: p.PatternValue}
	case PatternTypeFuzzyMatchBase:
		return FuzzyNameMatch{Value: p.PatternValue, Threshold: fuzzyThreshold, Similarity: similarity}
	}
	return noPatternMatch{}
}

// TableName specifies the table name for GORM
func (PayeeMatchingPattern) TableName() string {
	return "payee_matching_patterns"
}

// PatternSubject is the text a payee pattern is tested against.
type PatternSubject struct {
	Description   string
	ExtractedName string
}

type PatternMatcher interface {
	Match(subject PatternSubject) bool
}

// DescriptionContainsMatch is a case-insensitive substring test on the raw description.
type DescriptionContainsMatch struct {
	Value string
}

func (m DescriptionContainsMatch) Match(subject PatternSubject) bool {
	if m.Value == "" || subject.Description == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(subject.Description), strings.ToUpper(m.Value))
}

// ExactNameMatch is case-insensitive equality with the extracted payee name.
type ExactNameMatch struct {
	Value string
}

func (m ExactNameMatch) Match(subject PatternSubject) bool {
	if subject.ExtractedName == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(subject.ExtractedName), strings.TrimSpace(m.Value))
}

// FuzzyNameMatch compares the extracted name using a similarity ratio.
type FuzzyNameMatch struct {
	Value      string
	Threshold  float64
	Similarity func(a, b string) float64
}

func (m FuzzyNameMatch) Match(subject PatternSubject) bool {
	if subject.ExtractedName == "" || m.Similarity == nil {
		return false
	}
	return m.Similarity(strings.ToLower(subject.ExtractedName), strings.ToLower(m.Value)) >= m.Threshold
}

type noPatternMatch struct{}

func (noPatternMatch) Match(PatternSubject) bool { return false }

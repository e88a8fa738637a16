package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEmptyPayeeName = errors.New("payee name is required")
)

// Payee is a user's merchant or counterparty identity, distinct from the raw
// payee text carried on a transaction.
type Payee struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_payees_user_normalized" json:"user_id"`
	CanonicalName     string     `gorm:"type:varchar(200);not null" json:"canonical_name"`
	NormalizedName    string     `gorm:"type:varchar(200);not null;uniqueIndex:idx_payees_user_normalized" json:"-"`
	DefaultCategoryID *uuid.UUID `gorm:"type:uuid" json:"default_category_id,omitempty"`
	TransactionCount  int        `gorm:"not null;default:0" json:"transaction_count"`
	LastUsedAt        *time.Time `json:"last_used_at,omitempty"`
	CreatedAt         time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Payee
func (p *Payee) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	p.CanonicalName = CollapseWhitespace(p.CanonicalName)
	if p.CanonicalName == "" {
		return ErrEmptyPayeeName
	}
	p.NormalizedName = NormalizePayeeName(p.CanonicalName)

	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return nil
}

// NormalizePayeeName is the lookup key for get-or-create: whitespace
// collapsed and lowercased.
func NormalizePayeeName(name string) string {
	return strings.ToLower(CollapseWhitespace(name))
}

func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TableName specifies the table name for GORM
func (Payee) TableName() string {
	return "payees"
}

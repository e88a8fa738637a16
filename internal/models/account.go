package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AccountTypeChecking    = "checking"
	AccountTypeSavings     = "savings"
	AccountTypeMoneyMarket = "money_market"
	AccountTypeCreditCard  = "credit_card"
	AccountTypeCreditLine  = "credit_line"
	AccountTypeInvestment  = "investment"
)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
)

// Account is owned by the accounts service; this service reads it for owner
// scoping and to pick the statement sign convention.
type Account struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	AccountType string         `gorm:"type:varchar(20);not null" json:"account_type"`
	Institution string         `gorm:"type:varchar(100)" json:"institution,omitempty"`
	Currency    string         `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	if a.Currency == "" {
		a.Currency = "USD"
	}

	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	return nil
}

// IsLiability reports whether statement amounts on this account describe
// balance impact (credit cards and lines of credit) rather than cash flow.
func (a *Account) IsLiability() bool {
	return IsLiabilityAccountType(a.AccountType)
}

func IsLiabilityAccountType(accountType string) bool {
	return accountType == AccountTypeCreditCard || accountType == AccountTypeCreditLine
}

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeChecking, AccountTypeSavings, AccountTypeMoneyMarket,
		AccountTypeCreditCard, AccountTypeCreditLine, AccountTypeInvestment:
		return true
	}
	return false
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "accounts"
}

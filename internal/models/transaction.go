package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeCredit = "credit"
	TransactionTypeDebit  = "debit"

	MaxDescriptionLength = 500
	MaxPayeeTextLength   = 200
	MaxNotesLength       = 1000
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrNegativeAmount         = errors.New("transaction amount must not be negative")
	ErrMissingTransactionDate = errors.New("transaction date is required")
)

// Transaction is a persisted ledger entry. Amount is always non-negative;
// TransactionType carries the sign.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	TransactionType string          `gorm:"type:varchar(10);not null" json:"transaction_type"`
	Description     string          `gorm:"type:varchar(500)" json:"description,omitempty"`
	PayeeText       string          `gorm:"type:varchar(200)" json:"payee,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	ExternalID      string          `gorm:"type:varchar(255);index" json:"external_id,omitempty"`
	PayeeID         *uuid.UUID      `gorm:"type:uuid;index" json:"payee_id,omitempty"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	ImportBatchID   *uuid.UUID      `gorm:"type:uuid;index" json:"import_batch_id,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	Payee *Payee `gorm:"foreignKey:PayeeID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionType(t.TransactionType) {
		return ErrInvalidTransactionType
	}

	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if t.TransactionDate.IsZero() {
		return ErrMissingTransactionDate
	}

	return nil
}

// SignedAmount returns the amount negated for debits.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == TransactionTypeDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t *Transaction) IsCategorized() bool {
	return t.CategoryID != nil && *t.CategoryID != uuid.Nil
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	return transactionType == TransactionTypeCredit || transactionType == TransactionTypeDebit
}

// TableName specifies the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CanonicalTransaction is the importer-neutral shape every source format is
// normalized into before duplicate detection and persistence.
type CanonicalTransaction struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	Description string          `json:"description,omitempty"`
	PayeeText   string          `json:"payee,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	ExternalID  string          `json:"external_id,omitempty"`
	SourceRow   int             `json:"source_row"`
}

// NewCanonicalTransaction builds a record from a signed amount: negative
// amounts become debits and the stored amount is the absolute value.
func NewCanonicalTransaction(date time.Time, signed decimal.Decimal, sourceRow int) CanonicalTransaction {
	direction := TransactionTypeCredit
	if signed.IsNegative() {
		direction = TransactionTypeDebit
	}

	return CanonicalTransaction{
		Date:      date,
		Amount:    signed.Abs(),
		Direction: direction,
		SourceRow: sourceRow,
	}
}

func (c CanonicalTransaction) SignedAmount() decimal.Decimal {
	if c.Direction == TransactionTypeDebit {
		return c.Amount.Neg()
	}
	return c.Amount
}

// DisplayText is the description, falling back to the payee text.
func (c CanonicalTransaction) DisplayText() string {
	if c.Description != "" {
		return c.Description
	}
	return c.PayeeText
}

// Truncate clips s to at most limit runes.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category hint names produced by the merchant catalog. User categories are
// free-form; these are only suggestions.
const (
	CategoryGroceries      = "Groceries"
	CategoryDining         = "Dining"
	CategoryCoffee         = "Coffee Shops"
	CategoryTransportation = "Transportation"
	CategoryGas            = "Gas & Fuel"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryBillsUtilities = "Bills & Utilities"
	CategoryHealthcare     = "Healthcare"
	CategoryTravel         = "Travel"
	CategoryIncome         = "Income"
	CategoryFees           = "Fees"
	CategoryTransfer       = "Transfer"
	CategorySubscriptions  = "Subscriptions"
)

// Category is a user-owned spending category.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	ParentID  *uuid.UUID `gorm:"type:uuid" json:"parent_id,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	return nil
}

// TableName specifies the table name for GORM
func (Category) TableName() string {
	return "categories"
}

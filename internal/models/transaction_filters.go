package models

import (
	"time"

	"github.com/google/uuid"
)

// TransactionFilters contains filtering options for transaction queries.
// UserID is mandatory; every other field narrows the result.
type TransactionFilters struct {
	UserID        uuid.UUID
	AccountID     *uuid.UUID
	StartDate     *time.Time
	EndDate       *time.Time
	CategoryID    *uuid.UUID
	ImportBatchID *uuid.UUID
	Categorized   *bool
	IDs           []uuid.UUID
}

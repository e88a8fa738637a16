package repositories

import (
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

// AccountRepositoryInterface defines the contract for account lookups. Accounts
// are owned elsewhere; this service only reads them.
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByIDForUser(userID, id uuid.UUID) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
}

// CategoryRepositoryInterface defines the contract for category lookups
type CategoryRepositoryInterface interface {
	Create(category *models.Category) error
	GetByIDForUser(userID, id uuid.UUID) (*models.Category, error)
	GetByIDs(userID uuid.UUID, ids []uuid.UUID) ([]models.Category, error)
	GetByUserID(userID uuid.UUID) ([]models.Category, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByIDForUser(userID, id uuid.UUID) (*models.Transaction, error)
	Find(filters models.TransactionFilters) ([]models.Transaction, error)
	GetByAccountAndExternalIDs(userID, accountID uuid.UUID, externalIDs []string) ([]models.Transaction, error)
	GetByAccountInDateRange(userID, accountID uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error)
	Update(transaction *models.Transaction) error
	DeleteByIDs(userID uuid.UUID, ids []uuid.UUID) (int64, error)
	CountByImportBatch(userID, batchID uuid.UUID) (int64, error)
}

// PayeeRepositoryInterface defines the contract for payee repository operations
type PayeeRepositoryInterface interface {
	GetOrCreate(userID uuid.UUID, name string) (*models.Payee, bool, error)
	GetByIDForUser(userID, id uuid.UUID) (*models.Payee, error)
	GetByUserID(userID uuid.UUID) ([]models.Payee, error)
	IncrementUsage(userID, payeeID uuid.UUID, usedAt time.Time) error
}

// PayeePatternRepositoryInterface defines the contract for learned payee patterns
type PayeePatternRepositoryInterface interface {
	Create(pattern *models.PayeeMatchingPattern) error
	GetByUserID(userID uuid.UUID) ([]models.PayeeMatchingPattern, error)
	FindExisting(userID, payeeID uuid.UUID, patternType models.PatternType, value string) (*models.PayeeMatchingPattern, error)
	Update(pattern *models.PayeeMatchingPattern) error
}

// RuleRepositoryInterface defines the contract for categorization rule operations
type RuleRepositoryInterface interface {
	Create(rule *models.CategorizationRule) error
	GetByIDForUser(userID, id uuid.UUID) (*models.CategorizationRule, error)
	GetByUserID(userID uuid.UUID) ([]models.CategorizationRule, error)
	GetEnabledByUserID(userID uuid.UUID) ([]models.CategorizationRule, error)
	Update(rule *models.CategorizationRule) error
	Delete(userID, id uuid.UUID) error
	RecordMatches(ruleID uuid.UUID, matches int, matchedAt time.Time) error
}

// ImportBatchRepositoryInterface defines the contract for import batch operations
type ImportBatchRepositoryInterface interface {
	Create(batch *models.ImportBatch) error
	GetByIDForUser(userID, id uuid.UUID) (*models.ImportBatch, error)
	GetByAccount(userID, accountID uuid.UUID, offset, limit int) ([]models.ImportBatch, int64, error)
	Update(batch *models.ImportBatch) error
	Rollback(userID, batchID uuid.UUID, rolledBackAt time.Time) (int64, error)
}

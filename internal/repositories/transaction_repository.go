package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByIDForUser retrieves a transaction owned by userID
func (r *transactionRepository) GetByIDForUser(userID, id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// Find returns the user's transactions narrowed by filters, oldest first
func (r *transactionRepository) Find(filters models.TransactionFilters) ([]models.Transaction, error) {
	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", filters.UserID)

	if filters.AccountID != nil {
		query = query.Where("account_id = ?", *filters.AccountID)
	}
	if filters.StartDate != nil {
		query = query.Where("transaction_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("transaction_date <= ?", *filters.EndDate)
	}
	if filters.CategoryID != nil {
		query = query.Where("category_id = ?", *filters.CategoryID)
	}
	if filters.ImportBatchID != nil {
		query = query.Where("import_batch_id = ?", *filters.ImportBatchID)
	}
	if filters.Categorized != nil {
		if *filters.Categorized {
			query = query.Where("category_id IS NOT NULL")
		} else {
			query = query.Where("category_id IS NULL")
		}
	}
	if len(filters.IDs) > 0 {
		query = query.Where("id IN ?", filters.IDs)
	}

	var transactions []models.Transaction
	if err := query.Order("transaction_date ASC, created_at ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	return transactions, nil
}

// GetByAccountAndExternalIDs returns account transactions whose external id is
// one of externalIDs
func (r *transactionRepository) GetByAccountAndExternalIDs(userID, accountID uuid.UUID, externalIDs []string) ([]models.Transaction, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ? AND account_id = ? AND external_id IN ?", userID, accountID, externalIDs).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by external id: %w", err)
	}
	return transactions, nil
}

// GetByAccountInDateRange retrieves account transactions within an inclusive date range
func (r *transactionRepository) GetByAccountInDateRange(userID, accountID uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ? AND account_id = ? AND transaction_date >= ? AND transaction_date <= ?",
		userID, accountID, startDate, endDate).
		Order("transaction_date ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// Update saves every field of transaction
func (r *transactionRepository) Update(transaction *models.Transaction) error {
	if err := r.db.Save(transaction).Error; err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// DeleteByIDs deletes the user's transactions with the given ids
func (r *transactionRepository) DeleteByIDs(userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Where("user_id = ? AND id IN ?", userID, ids).Delete(&models.Transaction{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete transactions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *transactionRepository) CountByImportBatch(userID, batchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("user_id = ? AND import_batch_id = ?", userID, batchID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count batch transactions: %w", err)
	}
	return count, nil
}

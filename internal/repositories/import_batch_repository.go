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
	ErrImportBatchNotFound = errors.New("import batch not found")
)

type importBatchRepository struct {
	db *gorm.DB
}

// NewImportBatchRepository creates a new import batch repository
func NewImportBatchRepository(db *gorm.DB) ImportBatchRepositoryInterface {
	return &importBatchRepository{db: db}
}

func (r *importBatchRepository) Create(batch *models.ImportBatch) error {
	if err := r.db.Create(batch).Error; err != nil {
		return fmt.Errorf("failed to create import batch: %w", err)
	}
	return nil
}

func (r *importBatchRepository) GetByIDForUser(userID, id uuid.UUID) (*models.ImportBatch, error) {
	var batch models.ImportBatch
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImportBatchNotFound
		}
		return nil, fmt.Errorf("failed to get import batch: %w", err)
	}
	return &batch, nil
}

// GetByAccount lists an account's batches newest first, without file bodies
func (r *importBatchRepository) GetByAccount(userID, accountID uuid.UUID, offset, limit int) ([]models.ImportBatch, int64, error) {
	var batches []models.ImportBatch
	var total int64

	query := r.db.Model(&models.ImportBatch{}).Where("user_id = ? AND account_id = ?", userID, accountID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count import batches: %w", err)
	}

	if err := query.Omit("original_file").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&batches).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get import batches: %w", err)
	}
	return batches, total, nil
}

func (r *importBatchRepository) Update(batch *models.ImportBatch) error {
	if err := r.db.Save(batch).Error; err != nil {
		return fmt.Errorf("failed to update import batch: %w", err)
	}
	return nil
}

// Rollback deletes every transaction linked to the batch and marks it
// rolled back in one database transaction. It returns the deleted count.
func (r *importBatchRepository) Rollback(userID, batchID uuid.UUID, rolledBackAt time.Time) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var batch models.ImportBatch
		if err := tx.Where("id = ? AND user_id = ?", batchID, userID).First(&batch).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrImportBatchNotFound
			}
			return fmt.Errorf("failed to get import batch: %w", err)
		}

		result := tx.Where("user_id = ? AND import_batch_id = ?", userID, batchID).Delete(&models.Transaction{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete batch transactions: %w", result.Error)
		}
		deleted = result.RowsAffected

		if err := tx.Model(&models.ImportBatch{}).
			Where("id = ?", batchID).
			UpdateColumns(map[string]interface{}{
				"status":         models.ImportStatusRolledBack,
				"rolled_back_at": rolledBackAt,
				"updated_at":     rolledBackAt,
			}).Error; err != nil {
			return fmt.Errorf("failed to mark import batch rolled back: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPayeeNotFound = errors.New("payee not found")
)

type payeeRepository struct {
	db *gorm.DB
	mu sync.Mutex // serializes get-or-create within this process
}

// NewPayeeRepository creates a new payee repository
func NewPayeeRepository(db *gorm.DB) PayeeRepositoryInterface {
	return &payeeRepository{db: db}
}

// GetOrCreate finds the user's payee by normalized name, creating it when
// absent. The bool reports whether a row was created.
func (r *payeeRepository) GetOrCreate(userID uuid.UUID, name string) (*models.Payee, bool, error) {
	canonical := models.CollapseWhitespace(name)
	if canonical == "" {
		return nil, false, models.ErrEmptyPayeeName
	}
	normalized := models.NormalizePayeeName(canonical)

	r.mu.Lock()
	defer r.mu.Unlock()

	payee, err := r.findByNormalizedName(userID, normalized)
	if err == nil {
		return payee, false, nil
	}
	if !errors.Is(err, ErrPayeeNotFound) {
		return nil, false, err
	}

	payee = &models.Payee{UserID: userID, CanonicalName: canonical}
	if err := r.db.Create(payee).Error; err != nil {
		// Another writer may have created it between the lookup and the insert.
		if existing, findErr := r.findByNormalizedName(userID, normalized); findErr == nil {
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create payee: %w", err)
	}
	return payee, true, nil
}

func (r *payeeRepository) findByNormalizedName(userID uuid.UUID, normalized string) (*models.Payee, error) {
	var payee models.Payee
	if err := r.db.Where("user_id = ? AND normalized_name = ?", userID, normalized).First(&payee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayeeNotFound
		}
		return nil, fmt.Errorf("failed to get payee by name: %w", err)
	}
	return &payee, nil
}

func (r *payeeRepository) GetByIDForUser(userID, id uuid.UUID) (*models.Payee, error) {
	var payee models.Payee
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&payee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayeeNotFound
		}
		return nil, fmt.Errorf("failed to get payee: %w", err)
	}
	return &payee, nil
}

// GetByUserID retrieves all payees for a user, most used first
func (r *payeeRepository) GetByUserID(userID uuid.UUID) ([]models.Payee, error) {
	var payees []models.Payee
	if err := r.db.Where("user_id = ?", userID).
		Order("transaction_count DESC, canonical_name ASC").
		Find(&payees).Error; err != nil {
		return nil, fmt.Errorf("failed to get payees for user: %w", err)
	}
	return payees, nil
}

// IncrementUsage bumps the usage counter and last-used timestamp
func (r *payeeRepository) IncrementUsage(userID, payeeID uuid.UUID, usedAt time.Time) error {
	result := r.db.Model(&models.Payee{}).
		Where("id = ? AND user_id = ?", payeeID, userID).
		UpdateColumns(map[string]interface{}{
			"transaction_count": gorm.Expr("transaction_count + ?", 1),
			"last_used_at":      usedAt,
			"updated_at":        usedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to increment payee usage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPayeeNotFound
	}
	return nil
}

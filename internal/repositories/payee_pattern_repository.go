package repositories

import (
	"errors"
	"fmt"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPatternNotFound = errors.New("payee matching pattern not found")
)

type payeePatternRepository struct {
	db *gorm.DB
}

// NewPayeePatternRepository creates a new payee pattern repository
func NewPayeePatternRepository(db *gorm.DB) PayeePatternRepositoryInterface {
	return &payeePatternRepository{db: db}
}

func (r *payeePatternRepository) Create(pattern *models.PayeeMatchingPattern) error {
	if err := r.db.Create(pattern).Error; err != nil {
		return fmt.Errorf("failed to create payee pattern: %w", err)
	}
	return nil
}

// GetByUserID returns the user's patterns with their payee loaded, highest
// confidence first
func (r *payeePatternRepository) GetByUserID(userID uuid.UUID) ([]models.PayeeMatchingPattern, error) {
	var patterns []models.PayeeMatchingPattern
	if err := r.db.Preload("Payee").
		Where("user_id = ?", userID).
		Order("confidence_score DESC, match_count DESC, created_at ASC").
		Find(&patterns).Error; err != nil {
		return nil, fmt.Errorf("failed to get payee patterns: %w", err)
	}
	return patterns, nil
}

// FindExisting looks up an identical pattern for the same payee
func (r *payeePatternRepository) FindExisting(userID, payeeID uuid.UUID, patternType models.PatternType, value string) (*models.PayeeMatchingPattern, error) {
	var pattern models.PayeeMatchingPattern
	if err := r.db.Where("user_id = ? AND payee_id = ? AND pattern_type = ? AND pattern_value = ?",
		userID, payeeID, patternType, value).
		First(&pattern).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatternNotFound
		}
		return nil, fmt.Errorf("failed to get payee pattern: %w", err)
	}
	return &pattern, nil
}

func (r *payeePatternRepository) Update(pattern *models.PayeeMatchingPattern) error {
	if err := r.db.Omit("Payee").Save(pattern).Error; err != nil {
		return fmt.Errorf("failed to update payee pattern: %w", err)
	}
	return nil
}

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
	ErrRuleNotFound = errors.New("categorization rule not found")
)

type ruleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new categorization rule repository
func NewRuleRepository(db *gorm.DB) RuleRepositoryInterface {
	return &ruleRepository{db: db}
}

func (r *ruleRepository) Create(rule *models.CategorizationRule) error {
	if err := r.db.Create(rule).Error; err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	return nil
}

func (r *ruleRepository) GetByIDForUser(userID, id uuid.UUID) (*models.CategorizationRule, error) {
	var rule models.CategorizationRule
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&rule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}
	return &rule, nil
}

func (r *ruleRepository) GetByUserID(userID uuid.UUID) ([]models.CategorizationRule, error) {
	var rules []models.CategorizationRule
	if err := r.db.Where("user_id = ?", userID).
		Order("priority DESC, created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get rules: %w", err)
	}
	return rules, nil
}

// GetEnabledByUserID returns enabled rules in evaluation order
func (r *ruleRepository) GetEnabledByUserID(userID uuid.UUID) ([]models.CategorizationRule, error) {
	var rules []models.CategorizationRule
	if err := r.db.Where("user_id = ? AND enabled = ?", userID, true).
		Order("priority DESC, created_at ASC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to get enabled rules: %w", err)
	}
	return rules, nil
}

func (r *ruleRepository) Update(rule *models.CategorizationRule) error {
	if err := r.db.Save(rule).Error; err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}
	return nil
}

func (r *ruleRepository) Delete(userID, id uuid.UUID) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CategorizationRule{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete rule: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// RecordMatches adds matches to the rule's counter and stamps last_matched_at
func (r *ruleRepository) RecordMatches(ruleID uuid.UUID, matches int, matchedAt time.Time) error {
	if matches <= 0 {
		return nil
	}
	result := r.db.Model(&models.CategorizationRule{}).
		Where("id = ?", ruleID).
		UpdateColumns(map[string]interface{}{
			"match_count":     gorm.Expr("match_count + ?", matches),
			"last_matched_at": matchedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record rule matches: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

package services

import (
	"context"
	"time"

	"fintrack/internal/importers"
	"fintrack/internal/models"
	"fintrack/internal/payees"

	"github.com/google/uuid"
)

// ImportServiceInterface orchestrates preview, commit and rollback of statement imports
type ImportServiceInterface interface {
	Preview(ctx context.Context, userID, accountID uuid.UUID, fileName string, data []byte, format string, mapping *importers.ColumnMapping) (*ImportPreview, error)
	PreviewCSV(ctx context.Context, userID, accountID uuid.UUID, fileName string, data []byte, override *importers.ColumnMapping) (*ImportPreview, error)
	PreviewOFX(ctx context.Context, userID, accountID uuid.UUID, fileName string, data []byte) (*ImportPreview, error)
	Commit(ctx context.Context, req CommitRequest) (*models.ImportBatch, error)
	ImportFile(ctx context.Context, req ImportFileRequest) (*models.ImportBatch, error)
	Rollback(ctx context.Context, userID, batchID uuid.UUID) (*RollbackResult, error)
	GetBatch(ctx context.Context, userID, batchID uuid.UUID) (*models.ImportBatch, error)
	ListBatches(ctx context.Context, userID, accountID uuid.UUID, offset, limit int) ([]models.ImportBatch, int64, error)
	OriginalFile(ctx context.Context, userID, batchID uuid.UUID) ([]byte, string, error)
}

// PayeeResolutionServiceInterface maps extracted payee text to the user's payees
type PayeeResolutionServiceInterface interface {
	Resolve(ctx context.Context, cache *PatternCache, userID uuid.UUID, extractedName, description string) (*models.ResolutionResult, error)
	ResolveDescription(ctx context.Context, userID uuid.UUID, description string) (*models.ResolutionResult, error)
	RecordAcceptance(ctx context.Context, userID, payeeID uuid.UUID, description string, patternType models.PatternType) (*models.PayeeMatchingPattern, error)
	GetOrCreatePayee(ctx context.Context, userID uuid.UUID, name string) (*models.Payee, error)
}

// DuplicateDetectionServiceInterface flags incoming rows that already exist on an account
type DuplicateDetectionServiceInterface interface {
	FindDuplicates(ctx context.Context, userID, accountID uuid.UUID, candidates []models.CanonicalTransaction) ([]models.DuplicateCandidate, error)
}

// RuleServiceInterface defines categorization rule management and batch application
type RuleServiceInterface interface {
	CreateRule(ctx context.Context, userID uuid.UUID, rule *models.CategorizationRule) (*models.CategorizationRule, error)
	GetRule(ctx context.Context, userID, ruleID uuid.UUID) (*models.CategorizationRule, error)
	ListRules(ctx context.Context, userID uuid.UUID) ([]models.CategorizationRule, error)
	UpdateRule(ctx context.Context, userID, ruleID uuid.UUID, changes *models.CategorizationRule) (*models.CategorizationRule, error)
	DeleteRule(ctx context.Context, userID, ruleID uuid.UUID) error
	CategorizeTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilters, overwrite bool) (*CategorizationSummary, error)
	CreateRuleFromSuggestion(ctx context.Context, userID uuid.UUID, suggestion models.RuleSuggestion, priority int) (*models.CategorizationRule, error)
}

// RuleLearningServiceInterface proposes rules from categorized history
type RuleLearningServiceInterface interface {
	AnalyzeUserPatterns(ctx context.Context, userID uuid.UUID, minOccurrences int, minConfidence float64) ([]models.RuleSuggestion, error)
}

// PayeeExtractor cleans a raw bank description into a merchant name.
type PayeeExtractor interface {
	Extract(description string) payees.Extraction
}

// TokenServiceInterface verifies bearer tokens issued by the identity service
type TokenServiceInterface interface {
	GenerateAccessToken(userID uuid.UUID, ttl time.Duration) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type ImportLoggerInterface interface {
	LogImportStarted(ctx context.Context, batchID, accountID uuid.UUID, sourceType string, totalRows int)
	LogImportCompleted(ctx context.Context, batch *models.ImportBatch, durationMs int64)
	LogImportRolledBack(ctx context.Context, batchID uuid.UUID, deletedCount int64)
	LogRowPersistFailed(ctx context.Context, batchID uuid.UUID, sourceRow int, errorMsg string)
	LogRulesApplied(ctx context.Context, userID uuid.UUID, categorized, rulesUsed int)
	LogPatternLearned(ctx context.Context, pattern *models.PayeeMatchingPattern, created bool)
}

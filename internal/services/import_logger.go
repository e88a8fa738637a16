package services

import (
	"context"
	"log/slog"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
)

type ImportLogger struct {
	logger *slog.Logger
}

func NewImportLogger(logger *slog.Logger) ImportLoggerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportLogger{
		logger: logger,
	}
}

func (il *ImportLogger) LogImportStarted(ctx context.Context, batchID, accountID uuid.UUID, sourceType string, totalRows int) {
	il.logger.InfoContext(ctx, "import started",
		slog.String("event_type", "import_started"),
		slog.String("import_batch_id", batchID.String()),
		slog.String("account_id", accountID.String()),
		slog.String("source_type", sourceType),
		slog.Int("total_rows", totalRows),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationIDFromContext(ctx)),
	)
}

func (il *ImportLogger) LogImportCompleted(ctx context.Context, batch *models.ImportBatch, durationMs int64) {
	il.logger.InfoContext(ctx, "import completed",
		slog.String("event_type", "import_completed"),
		slog.String("import_batch_id", batch.ID.String()),
		slog.String("status", batch.Status),
		slog.Int("imported_count", batch.ImportedCount),
		slog.Int("duplicate_count", batch.DuplicateCount),
		slog.Int("error_count", batch.ErrorCount),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationIDFromContext(ctx)),
	)
}

func (il *ImportLogger) LogImportRolledBack(ctx context.Context, batchID uuid.UUID, deletedCount int64) {
	il.logger.InfoContext(ctx, "import rolled back",
		slog.String("event_type", "import_rolled_back"),
		slog.String("import_batch_id", batchID.String()),
		slog.Int64("deleted_count", deletedCount),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationIDFromContext(ctx)),
	)
}

func (il *ImportLogger) LogRowPersistFailed(ctx context.Context, batchID uuid.UUID, sourceRow int, errorMsg string) {
	il.logger.WarnContext(ctx, "import row persist failed",
		slog.String("event_type", "row_persist_failed"),
		slog.String("import_batch_id", batchID.String()),
		slog.Int("source_row", sourceRow),
		slog.String("error", errorMsg),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationIDFromContext(ctx)),
	)
}

func (il *ImportLogger) LogRulesApplied(ctx context.Context, userID uuid.UUID, categorized, rulesUsed int) {
	il.logger.InfoContext(ctx, "rules applied",
		slog.String("event_type", "rules_applied"),
		slog.String("user_id", userID.String()),
		slog.Int("categorized", categorized),
		slog.Int("rules_used", rulesUsed),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationIDFromContext(ctx)),
	)
}

func (il *ImportLogger) LogPatternLearned(ctx context.Context, pattern *models.PayeeMatchingPattern, created bool) {
	il.logger.InfoContext(ctx, "payee pattern learned",
		slog.String("event_type", "pattern_learned"),
		slog.String("pattern_id", pattern.ID.String()),
		slog.String("payee_id", pattern.PayeeID.String()),
		slog.String("pattern_type", string(pattern.PatternType)),
		slog.Float64("confidence_score", pattern.ConfidenceScore),
		slog.Int("match_count", pattern.MatchCount),
		slog.Bool("created", created),
		slog.Time("timestamp", time.Now()),
		slog.String("correlation_id", CorrelationIDFromContext(ctx)),
	)
}

type contextKey string

// CorrelationIDKey is the request context key under which the HTTP layer
// stores the trace id of the request.
const CorrelationIDKey contextKey = "correlation_id"

// WithCorrelationID returns a copy of ctx carrying id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

// CorrelationIDFromContext returns the id stored by WithCorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}

	return ""
}

package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/handlers"
	"fintrack/internal/middleware"
	"fintrack/internal/payees"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const limiterIdleTTL = 10 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg.Server.LogLevel))

	if err := run(cfg); err != nil {
		slog.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

func run(cfg *config.Config) error {
	db, err := database.Initialize(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewPrometheusMetrics(registry)

	catalog, err := payees.DefaultCatalog(cfg.Matching.Extraction.FuzzyCategoryThreshold)
	if err != nil {
		return err
	}
	extractor := payees.NewExtractor(catalog, cfg.Matching.Extraction)

	accountRepo := repositories.NewAccountRepository(db.DB)
	categoryRepo := repositories.NewCategoryRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	payeeRepo := repositories.NewPayeeRepository(db.DB)
	patternRepo := repositories.NewPayeePatternRepository(db.DB)
	ruleRepo := repositories.NewRuleRepository(db.DB)
	batchRepo := repositories.NewImportBatchRepository(db.DB)

	importLogger := services.NewImportLogger(slog.Default())
	tokenService := services.NewTokenService(&cfg.JWT)
	resolver := services.NewPayeeResolutionService(payeeRepo, patternRepo, extractor, cfg.Matching.Resolution, importLogger, metrics)
	duplicates := services.NewDuplicateDetectionService(transactionRepo, cfg.Matching.Duplicates, metrics)
	suggestions := services.NewSmartRuleSuggestionService(extractor, cfg.Matching.Suggestions)
	importService := services.NewImportService(
		accountRepo, transactionRepo, batchRepo, ruleRepo, payeeRepo,
		extractor, resolver, duplicates, suggestions, services.NewAccountLocker(),
		importLogger, metrics, cfg.Import,
	)
	ruleService := services.NewRuleService(ruleRepo, transactionRepo, categoryRepo, nil, importLogger, metrics)
	learningService := services.NewRuleLearningService(transactionRepo, ruleRepo, categoryRepo, cfg.Matching.Learning)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery(slog.Default()))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, "X-Request-ID"},
	}))
	// multipart framing needs headroom beyond the file itself
	e.Use(echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
		Limit: bodyLimit(cfg.Import.MaxUploadBytes),
	}))

	health := handlers.NewHealthCheckHandler(db.DB, version)
	e.GET("/health", health.HealthCheck)
	e.GET("/health/live", health.Live)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	limiter := middleware.NewRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)
	stopCleanup := make(chan struct{})
	defer close(stopCleanup)
	go limiter.StartCleanup(time.Minute, limiterIdleTTL, stopCleanup)

	api := e.Group("/api/v1", middleware.RequireAuth(tokenService))
	registerRoutes(api, limiter.Middleware(),
		handlers.NewImportHandler(importService, cfg.Import.MaxUploadBytes),
		handlers.NewRuleHandler(ruleService, learningService, cfg.Import.DefaultMinOccurrence, cfg.Import.DefaultMinConfidence),
		handlers.NewPayeeHandler(resolver),
	)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", slog.String("addr", server.Addr), slog.String("version", version), slog.String("env", cfg.Server.Environment))
		if err := e.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func registerRoutes(api *echo.Group, uploadLimit echo.MiddlewareFunc, imports *handlers.ImportHandler, rules *handlers.RuleHandler, payeeHandler *handlers.PayeeHandler) {
	api.POST("/accounts/:accountId/imports/preview", imports.PreviewImport, uploadLimit)
	api.POST("/accounts/:accountId/imports/upload", imports.UploadImport, uploadLimit)
	api.POST("/accounts/:accountId/imports", imports.CommitImport, uploadLimit)
	api.GET("/accounts/:accountId/imports", imports.ListImports)
	api.GET("/imports/:importId", imports.GetImport)
	api.GET("/imports/:importId/file", imports.DownloadOriginal)
	api.DELETE("/imports/:importId", imports.RollbackImport)

	api.GET("/rules", rules.ListRules)
	api.POST("/rules", rules.CreateRule)
	api.POST("/rules/apply", rules.ApplyRules)
	api.GET("/rules/suggestions", rules.GetSuggestions)
	api.POST("/rules/suggestions/accept", rules.AcceptSuggestion)
	api.GET("/rules/:ruleId", rules.GetRule)
	api.PUT("/rules/:ruleId", rules.UpdateRule)
	api.DELETE("/rules/:ruleId", rules.DeleteRule)

	api.POST("/payees/resolve", payeeHandler.ResolvePayee)
	api.POST("/payees/:payeeId/patterns", payeeHandler.AcceptPayee)
}

// bodyLimit renders maxBytes plus 1 MiB in the "10M" form echo's BodyLimit expects.
func bodyLimit(maxBytes int64) string {
	if maxBytes <= 0 {
		return "32M"
	}
	mb := (maxBytes + (1 << 20) - 1) >> 20
	return strconv.FormatInt(mb+1, 10) + "M"
}

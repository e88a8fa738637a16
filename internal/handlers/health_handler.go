package handlers

import (
	"context"
	"net/http"
	"time"

	"fintrack/internal/errors"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const readinessTimeout = 2 * time.Second

// HealthCheckHandler reports liveness and database readiness
type HealthCheckHandler struct {
	db      *gorm.DB
	version string
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *gorm.DB, version string) *HealthCheckHandler {
	return &HealthCheckHandler{db: db, version: version}
}

// Live reports that the process is serving requests
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,version=string}
// @Router /health/live [get]
func (h *HealthCheckHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "alive",
		"version": h.version,
	})
}

// HealthCheck checks database connectivity
// @Summary Health check
// @Description Check API and database connectivity status
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,time=string,version=string} "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (database connection failed)"
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": h.version,
	})
}

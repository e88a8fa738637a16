package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"

	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// PanicRecovery turns a panicking handler into a SYSTEM_001 response. The
// panic is logged with the route, the request's trace id and the caller, and
// counted in api_errors_total. A nil logger uses slog.Default().
func PanicRecovery(logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				err = recovered(logger, c, r)
			}()

			return next(c)
		}
	}
}

func recovered(logger *slog.Logger, c echo.Context, r any) error {
	req := c.Request()
	ctx := req.Context()

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = services.CorrelationIDFromContext(ctx)
	}
	if traceID == "" {
		traceID = "unknown"
	}

	attrs := []any{
		slog.String("trace_id", traceID),
		slog.String("route", c.Path()),
		slog.String("method", req.Method),
		slog.String("panic", fmt.Sprintf("%v", r)),
		slog.String("stack_trace", string(debug.Stack())),
	}
	if userID := c.Get(UserIDContextKey); userID != nil {
		attrs = append(attrs, slog.String("user_id", fmt.Sprintf("%v", userID)))
	}
	logger.ErrorContext(ctx, "panic recovered", attrs...)

	apiErrorsTotal.WithLabelValues(
		string(errors.SystemInternalError),
		c.Path(),
		strconv.Itoa(http.StatusInternalServerError),
	).Inc()

	// headers already went out; the client sees a truncated body
	if c.Response().Committed {
		return nil
	}

	return c.JSON(http.StatusInternalServerError, errors.NewErrorResponse(errors.SystemInternalError, traceID))
}

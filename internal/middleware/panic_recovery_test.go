package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

type PanicRecoveryTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	logs    *bytes.Buffer
	handler echo.MiddlewareFunc
}

func TestPanicRecoveryTestSuite(t *testing.T) {
	suite.Run(t, new(PanicRecoveryTestSuite))
}

func (s *PanicRecoveryTestSuite) SetupTest() {
	s.echo = echo.New()
	s.logs = &bytes.Buffer{}
	s.handler = PanicRecovery(slog.New(slog.NewJSONHandler(s.logs, nil)))
}

func (s *PanicRecoveryTestSuite) context(ctx context.Context) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/imports/abc", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.SetPath("/api/v1/imports/:importId")
	return c, rec
}

func (s *PanicRecoveryTestSuite) logEntry() map[string]any {
	var entry map[string]any
	s.Require().NoError(json.Unmarshal(s.logs.Bytes(), &entry))
	return entry
}

func (s *PanicRecoveryTestSuite) TestRecoversWithSystemError() {
	c, rec := s.context(context.Background())
	c.Set(TraceIDContextKey, "trace-123")

	s.NotPanics(func() {
		_ = s.handler(func(c echo.Context) error { panic("boom") })(c)
	})

	s.Equal(http.StatusInternalServerError, rec.Code)
	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("SYSTEM_001", body.Error.Code)
	s.Equal("trace-123", body.Error.TraceID)
}

func (s *PanicRecoveryTestSuite) TestLogsRouteTraceAndUser() {
	userID := uuid.New()
	c, _ := s.context(context.Background())
	c.Set(TraceIDContextKey, "trace-123")

	_ = s.handler(func(c echo.Context) error {
		c.Set(UserIDContextKey, userID)
		panic("rollback exploded")
	})(c)

	entry := s.logEntry()
	s.Equal("panic recovered", entry["msg"])
	s.Equal("ERROR", entry["level"])
	s.Equal("trace-123", entry["trace_id"])
	s.Equal("/api/v1/imports/:importId", entry["route"])
	s.Equal(http.MethodDelete, entry["method"])
	s.Equal("rollback exploded", entry["panic"])
	s.Equal(userID.String(), entry["user_id"])
	s.Contains(entry["stack_trace"], "panic_recovery")
}

func (s *PanicRecoveryTestSuite) TestFallsBackToCorrelationID() {
	c, rec := s.context(services.WithCorrelationID(context.Background(), "corr-9"))

	_ = s.handler(func(c echo.Context) error { panic("boom") })(c)

	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("corr-9", body.Error.TraceID)
	s.Equal("corr-9", s.logEntry()["trace_id"])
	s.NotContains(s.logEntry(), "user_id")
}

func (s *PanicRecoveryTestSuite) TestUnknownTraceID() {
	c, rec := s.context(context.Background())

	_ = s.handler(func(c echo.Context) error { panic("boom") })(c)

	var body errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("unknown", body.Error.TraceID)
}

func (s *PanicRecoveryTestSuite) TestCountsPanicAsAPIError() {
	counter := apiErrorsTotal.WithLabelValues("SYSTEM_001", "/api/v1/imports/:importId", "500")
	before := testutil.ToFloat64(counter)

	c, _ := s.context(context.Background())
	_ = s.handler(func(c echo.Context) error { panic("boom") })(c)

	s.Equal(before+1, testutil.ToFloat64(counter))
}

func (s *PanicRecoveryTestSuite) TestCommittedResponseIsLeftAlone() {
	c, rec := s.context(context.Background())

	err := s.handler(func(c echo.Context) error {
		_ = c.String(http.StatusOK, "partial")
		panic("after write")
	})(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("partial", rec.Body.String())
	s.Equal("after write", s.logEntry()["panic"])
}

func (s *PanicRecoveryTestSuite) TestNormalFlow() {
	c, rec := s.context(context.Background())

	err := s.handler(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.Zero(s.logs.Len())
}

func (s *PanicRecoveryTestSuite) TestPanicValues() {
	testCases := []struct {
		name      string
		panicWith any
	}{
		{"string", "string panic"},
		{"int", 42},
		{"error", context.Canceled},
		{"struct", struct{ msg string }{"error"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c, rec := s.context(context.Background())

			s.NotPanics(func() {
				_ = s.handler(func(c echo.Context) error { panic(tc.panicWith) })(c)
			})
			s.Equal(http.StatusInternalServerError, rec.Code)
		})
	}
}

package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// PayeeHandler exposes payee resolution and pattern learning
type PayeeHandler struct {
	resolutionService services.PayeeResolutionServiceInterface
}

func NewPayeeHandler(resolutionService services.PayeeResolutionServiceInterface) *PayeeHandler {
	return &PayeeHandler{resolutionService: resolutionService}
}

// ResolvePayee resolves a raw bank description to one of the user's payees
// @Summary Resolve a payee
// @Tags Payees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ResolvePayeeRequest true "Bank description"
// @Success 200 {object} models.ResolutionResult
// @Router /payees/resolve [post]
func (h *PayeeHandler) ResolvePayee(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ResolvePayeeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	result, err := h.resolutionService.ResolveDescription(c.Request().Context(), userID, req.Description)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// AcceptPayee records that a description belongs to a payee so later
// imports resolve it directly
// @Summary Learn a payee pattern
// @Tags Payees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payeeId path string true "Payee ID (UUID)"
// @Param request body dto.AcceptPayeeRequest true "Confirmed description"
// @Success 200 {object} dto.AcceptPayeeResponse
// @Failure 400 {object} errors.ErrorResponse "PAYEE_002 - Invalid pattern type"
// @Failure 404 {object} errors.ErrorResponse "PAYEE_001 - Payee not found"
// @Router /payees/{payeeId}/patterns [post]
func (h *PayeeHandler) AcceptPayee(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	payeeID, err := getUUIDParam(c, "payeeId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid payee ID"))
	}

	var req dto.AcceptPayeeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	pattern, err := h.resolutionService.RecordAcceptance(c.Request().Context(), userID, payeeID, req.Description, models.PatternType(req.PatternType))
	if err != nil {
		return sendServiceError(c, err)
	}

	message := "Pattern learned"
	if pattern == nil {
		message = "Description too short to learn a pattern"
	}
	return c.JSON(http.StatusOK, dto.AcceptPayeeResponse{Pattern: pattern, Message: message})
}

package handlers

import (
	"net/http"

	"fintrack/internal/dto"
	"fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/parsing"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// RuleHandler handles categorization rule HTTP requests
type RuleHandler struct {
	ruleService           services.RuleServiceInterface
	learningService       services.RuleLearningServiceInterface
	defaultMinOccurrences int
	defaultMinConfidence  float64
}

// NewRuleHandler creates a new rule handler. The defaults apply when a
// suggestions request leaves its thresholds at zero.
func NewRuleHandler(ruleService services.RuleServiceInterface, learningService services.RuleLearningServiceInterface, defaultMinOccurrences int, defaultMinConfidence float64) *RuleHandler {
	return &RuleHandler{
		ruleService:           ruleService,
		learningService:       learningService,
		defaultMinOccurrences: defaultMinOccurrences,
		defaultMinConfidence:  defaultMinConfidence,
	}
}

// CreateRule creates a categorization rule
// @Summary Create a rule
// @Tags Rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.RuleRequest true "Rule definition"
// @Success 201 {object} models.CategorizationRule
// @Failure 400 {object} errors.ErrorResponse "RULE_002 / RULE_003 / VALIDATION_001"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /rules [post]
func (h *RuleHandler) CreateRule(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.RuleRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	rule, err := h.ruleService.CreateRule(c.Request().Context(), userID, req.ToModel())
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, rule)
}

// ListRules returns the user's rules in evaluation order
// @Summary List rules
// @Tags Rules
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.RuleListResponse
// @Router /rules [get]
func (h *RuleHandler) ListRules(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	rules, err := h.ruleService.ListRules(c.Request().Context(), userID)
	if err != nil {
		return SendSystemError(c, err)
	}
	if rules == nil {
		rules = []models.CategorizationRule{}
	}

	return c.JSON(http.StatusOK, dto.RuleListResponse{Rules: rules, Total: len(rules)})
}

// GetRule returns a single rule
// @Summary Get a rule
// @Tags Rules
// @Security BearerAuth
// @Produce json
// @Param ruleId path string true "Rule ID (UUID)"
// @Success 200 {object} models.CategorizationRule
// @Failure 404 {object} errors.ErrorResponse "RULE_001 - Rule not found"
// @Router /rules/{ruleId} [get]
func (h *RuleHandler) GetRule(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	ruleID, err := getUUIDParam(c, "ruleId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid rule ID"))
	}

	rule, err := h.ruleService.GetRule(c.Request().Context(), userID, ruleID)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, rule)
}

// UpdateRule replaces a rule's definition
// @Summary Update a rule
// @Tags Rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param ruleId path string true "Rule ID (UUID)"
// @Param request body dto.RuleRequest true "Rule definition"
// @Success 200 {object} models.CategorizationRule
// @Failure 404 {object} errors.ErrorResponse "RULE_001 - Rule not found"
// @Router /rules/{ruleId} [put]
func (h *RuleHandler) UpdateRule(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	ruleID, err := getUUIDParam(c, "ruleId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid rule ID"))
	}

	var req dto.RuleRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	rule, err := h.ruleService.UpdateRule(c.Request().Context(), userID, ruleID, req.ToModel())
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, rule)
}

// DeleteRule removes a rule
// @Summary Delete a rule
// @Tags Rules
// @Security BearerAuth
// @Param ruleId path string true "Rule ID (UUID)"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse "RULE_001 - Rule not found"
// @Router /rules/{ruleId} [delete]
func (h *RuleHandler) DeleteRule(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	ruleID, err := getUUIDParam(c, "ruleId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid rule ID"))
	}

	if err := h.ruleService.DeleteRule(c.Request().Context(), userID, ruleID); err != nil {
		return sendServiceError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ApplyRules runs the enabled rules over existing transactions
// @Summary Apply rules to transactions
// @Tags Rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ApplyRulesRequest true "Scope of transactions"
// @Success 200 {object} services.CategorizationSummary
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_007 - Invalid date"
// @Router /rules/apply [post]
func (h *RuleHandler) ApplyRules(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ApplyRulesRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	filter := models.TransactionFilters{
		UserID:        userID,
		AccountID:     req.AccountID,
		ImportBatchID: req.ImportID,
	}
	if req.StartDate != "" {
		start, err := parsing.ParseDate(req.StartDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid start_date"))
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parsing.ParseDate(req.EndDate)
		if err != nil {
			return SendError(c, errors.ValidationInvalidDate, errors.WithDetails("Invalid end_date"))
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return SendError(c, errors.ValidationOutOfRange, errors.WithDetails("end_date must not be before start_date"))
	}

	summary, err := h.ruleService.CategorizeTransactions(c.Request().Context(), userID, filter, req.Overwrite)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// GetSuggestions proposes rules learned from categorized history
// @Summary Suggest rules
// @Tags Rules
// @Security BearerAuth
// @Produce json
// @Param min_occurrences query int false "Minimum matching transactions"
// @Param min_confidence query number false "Minimum confidence between 0 and 1"
// @Success 200 {object} dto.SuggestionListResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_004 - Threshold out of range"
// @Router /rules/suggestions [get]
func (h *RuleHandler) GetSuggestions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.SuggestionQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &query); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return sendValidationError(c, err)
	}

	minOccurrences := query.MinOccurrences
	if minOccurrences == 0 {
		minOccurrences = h.defaultMinOccurrences
	}
	minConfidence := query.MinConfidence
	if minConfidence == 0 {
		minConfidence = h.defaultMinConfidence
	}

	suggestions, err := h.learningService.AnalyzeUserPatterns(c.Request().Context(), userID, minOccurrences, minConfidence)
	if err != nil {
		return sendServiceError(c, err)
	}
	if suggestions == nil {
		suggestions = []models.RuleSuggestion{}
	}

	return c.JSON(http.StatusOK, dto.SuggestionListResponse{Suggestions: suggestions, Total: len(suggestions)})
}

// AcceptSuggestion creates a rule from a learned suggestion
// @Summary Accept a rule suggestion
// @Tags Rules
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AcceptSuggestionRequest true "Suggestion to accept"
// @Success 201 {object} models.CategorizationRule
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Router /rules/suggestions/accept [post]
func (h *RuleHandler) AcceptSuggestion(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.AcceptSuggestionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return sendValidationError(c, err)
	}

	rule, err := h.ruleService.CreateRuleFromSuggestion(c.Request().Context(), userID, req.Suggestion, req.Priority)
	if err != nil {
		return sendServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, rule)
}

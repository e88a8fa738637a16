package handlers

import (
	stderrors "errors"

	"fintrack/internal/errors"
	"fintrack/internal/importers"
	"fintrack/internal/models"
	"fintrack/internal/parsing"
	"fintrack/internal/repositories"
	"fintrack/internal/services"
	"fintrack/internal/validation"

	"github.com/labstack/echo/v4"
)

// serviceErrorCodes maps known service and repository sentinels to API codes.
// Order matters where one error wraps another.
var serviceErrorCodes = []struct {
	target error
	code   errors.ErrorCode
}{
	{importers.ErrMalformedFile, errors.ImportMalformedFile},
	{importers.ErrInvalidMapping, errors.ImportMalformedFile},
	{services.ErrUnsupportedFormat, errors.ImportUnsupportedFormat},
	{importers.ErrUnsupportedType, errors.ImportUnsupportedFormat},
	{services.ErrFileTooLarge, errors.ImportFileTooLarge},
	{repositories.ErrImportBatchNotFound, errors.ImportBatchNotFound},
	{services.ErrImportAlreadyRolledBack, errors.ImportAlreadyRolledBack},
	{services.ErrOriginalFileNotRetained, errors.ImportFileNotRetained},
	{repositories.ErrRuleNotFound, errors.RuleNotFound},
	{models.ErrInvalidMatchType, errors.RuleInvalidMatchType},
	{models.ErrRuleHasNoCondition, errors.RuleNoConditions},
	{models.ErrRuleNameRequired, errors.ValidationRequiredField},
	{models.ErrInvalidAmountRange, errors.ValidationOutOfRange},
	{models.ErrInvalidTransactionType, errors.ValidationGeneral},
	{repositories.ErrPayeeNotFound, errors.PayeeNotFound},
	{models.ErrInvalidPatternType, errors.PayeeInvalidPatternType},
	{models.ErrInvalidConfidence, errors.ValidationOutOfRange},
	{models.ErrEmptyPayeeName, errors.ValidationRequiredField},
	{repositories.ErrAccountNotFound, errors.AccountNotFound},
	{repositories.ErrCategoryNotFound, errors.CategoryNotFound},
	{models.ErrInvalidSourceType, errors.ValidationGeneral},
	{services.ErrInvalidSuggestionParams, errors.ValidationOutOfRange},
	{parsing.ErrInvalidDate, errors.ValidationInvalidDate},
	{parsing.ErrInvalidAmount, errors.ValidationInvalidFormat},
}

// codeForServiceError returns the API code for err, or false for unexpected errors
func codeForServiceError(err error) (errors.ErrorCode, bool) {
	for _, m := range serviceErrorCodes {
		if stderrors.Is(err, m.target) {
			return m.code, true
		}
	}
	return "", false
}

// sendServiceError translates a service error into the standard response.
// Unknown errors become SYSTEM_001 without leaking their text.
func sendServiceError(c echo.Context, err error) error {
	code, ok := codeForServiceError(err)
	if !ok {
		return SendSystemError(c, err)
	}
	if code == errors.ImportBatchNotFound || code == errors.RuleNotFound ||
		code == errors.PayeeNotFound || code == errors.AccountNotFound || code == errors.CategoryNotFound {
		return SendError(c, code)
	}
	return SendError(c, code, errors.WithDetails(err.Error()))
}

// sendValidationError reports struct validation failures field by field
func sendValidationError(c echo.Context, err error) error {
	details := validation.FormatErrors(err)
	if len(details) == 0 {
		details = []string{err.Error()}
	}
	return SendError(c, errors.ValidationGeneral, errors.WithDetails(details...))
}

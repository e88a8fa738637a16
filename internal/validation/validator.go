package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"fintrack/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("match_type", validateMatchType)
	_ = v.RegisterValidation("transaction_direction", validateTransactionDirection)
	_ = v.RegisterValidation("pattern_type", validatePatternType)
	_ = v.RegisterValidation("import_format", validateImportFormat)
	_ = v.RegisterValidation("decimal_amount", validateDecimalAmount)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns the raw validator error.
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatErrors flattens validator errors into "field: message" details.
// Errors that did not come from the validator are returned as a single detail.
func FormatErrors(err error) []string {
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), describe(fe)))
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or greater", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "match_type":
		return "must be one of contains exact starts_with ends_with regex"
	case "transaction_direction":
		return "must be debit or credit"
	case "pattern_type":
		return "must be one of description_contains exact_match fuzzy_match_base"
	case "import_format":
		return "must be csv, ofx or qfx"
	case "decimal_amount":
		return "must be a decimal amount"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}

// Custom validation functions. Empty values pass so the tags compose with omitempty.

func validateMatchType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.MatchType(value).IsValid()
}

func validateTransactionDirection(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	return value == "" || models.IsValidTransactionType(value)
}

func validatePatternType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.PatternType(value).IsValid()
}

func validateImportFormat(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "", models.SourceTypeCSV, models.SourceTypeOFX, models.SourceTypeQFX:
		return true
	}
	return false
}

// validateDecimalAmount accepts plain decimal strings like "12.50" or "-3"
func validateDecimalAmount(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	_, err := decimal.NewFromString(value)
	return err == nil
}

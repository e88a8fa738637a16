package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
	ValidationInvalidDate   ErrorCode = "VALIDATION_007"
)

// Import error codes (IMPORT_*)
const (
	ImportMalformedFile     ErrorCode = "IMPORT_001"
	ImportUnsupportedFormat ErrorCode = "IMPORT_002"
	ImportBatchNotFound     ErrorCode = "IMPORT_003"
	ImportAlreadyRolledBack ErrorCode = "IMPORT_004"
	ImportFileTooLarge      ErrorCode = "IMPORT_005"
	ImportFileNotRetained   ErrorCode = "IMPORT_006"
)

// Rule error codes (RULE_*)
const (
	RuleNotFound         ErrorCode = "RULE_001"
	RuleInvalidMatchType ErrorCode = "RULE_002"
	RuleNoConditions     ErrorCode = "RULE_003"
)

// Payee error codes (PAYEE_*)
const (
	PayeeNotFound           ErrorCode = "PAYEE_001"
	PayeeInvalidPatternType ErrorCode = "PAYEE_002"
)

// Account and category error codes
const (
	AccountNotFound  ErrorCode = "ACCOUNT_001"
	CategoryNotFound ErrorCode = "CATEGORY_001"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemDatabaseError      ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to access this resource",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",
	ValidationInvalidDate:   "Invalid date format or range",

	// Import errors
	ImportMalformedFile:     "The uploaded file could not be parsed",
	ImportUnsupportedFormat: "Unsupported import file format",
	ImportBatchNotFound:     "Import not found",
	ImportAlreadyRolledBack: "Import has already been rolled back",
	ImportFileTooLarge:      "Uploaded file exceeds the maximum allowed size",
	ImportFileNotRetained:   "The original file was not retained for this import",

	// Rule errors
	RuleNotFound:         "Categorization rule not found",
	RuleInvalidMatchType: "Invalid match type",
	RuleNoConditions:     "Rule must define at least one condition",

	// Payee errors
	PayeeNotFound:           "Payee not found",
	PayeeInvalidPatternType: "Invalid payee pattern type",

	AccountNotFound:  "Account not found",
	CategoryNotFound: "Category not found",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:      "Database connection error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}

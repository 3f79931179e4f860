package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationRange is used when a value is out of range
	ErrCodeValidationRange = "ERR_VALIDATION_RANGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when the caller identity is missing or invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeShiftAlreadyOpen is used when the user already has an open shift
	ErrCodeShiftAlreadyOpen = "ERR_SHIFT_ALREADY_OPEN"
	// ErrCodeShiftNotOpen is used when an operation requires an open shift
	ErrCodeShiftNotOpen = "ERR_SHIFT_NOT_OPEN"
	// ErrCodeDuplicateClosing is used when the shift already has an active closing
	ErrCodeDuplicateClosing = "ERR_DUPLICATE_CLOSING"
	// ErrCodeWindowClosed is used when the action falls outside its time window
	ErrCodeWindowClosed = "ERR_WINDOW_CLOSED"
	// ErrCodeProfileDisabled is used when the terminal profile is disabled
	ErrCodeProfileDisabled = "ERR_PROFILE_DISABLED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationRange:    http.StatusBadRequest,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity (conflicts -> 409)
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:     http.StatusUnprocessableEntity,
	ErrCodeShiftAlreadyOpen: http.StatusConflict,
	ErrCodeShiftNotOpen:     http.StatusUnprocessableEntity,
	ErrCodeDuplicateClosing: http.StatusConflict,
	ErrCodeWindowClosed:     http.StatusUnprocessableEntity,
	ErrCodeProfileDisabled:  http.StatusUnprocessableEntity,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain-layer error codes to the standardized
// transport codes. Domain code that maps to nothing passes through as-is.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"CONCURRENT_MODIFICATION": ErrCodeConcurrencyConflict,

	"SHIFT_ALREADY_OPEN":      ErrCodeShiftAlreadyOpen,
	"SHIFT_NOT_OPEN":          ErrCodeShiftNotOpen,
	"DUPLICATE_CLOSING_SHIFT": ErrCodeDuplicateClosing,
	"WINDOW_CLOSED":           ErrCodeWindowClosed,
	"PROFILE_DISABLED":        ErrCodeProfileDisabled,
	"INVALID_STATE":           ErrCodeInvalidState,
	"USER_NOT_AUTHORIZED":     ErrCodeForbidden,
	"COMPANY_MISMATCH":        ErrCodeBusinessRule,
	"CASH_METHOD_IN_USE":      ErrCodeBusinessRule,

	"DUPLICATE_PROFILE":        ErrCodeAlreadyExists,
	"DUPLICATE_PAYMENT_METHOD": ErrCodeAlreadyExists,
	"DUPLICATE_USER":           ErrCodeAlreadyExists,

	"UNKNOWN_PAYMENT_METHOD": ErrCodeInvalidInput,
	"INVALID_PROFILE":        ErrCodeValidation,
	"INVALID_PROFILE_NAME":   ErrCodeValidation,
	"INVALID_COMPANY":        ErrCodeValidation,
	"INVALID_COMPANY_NAME":   ErrCodeValidation,
	"INVALID_USER":           ErrCodeValidation,
	"INVALID_PAYMENT_METHOD": ErrCodeValidation,
	"INVALID_OPENING_SHIFT":  ErrCodeValidation,
	"INVALID_CLOSING_SHIFT":  ErrCodeValidation,
	"NEGATIVE_AMOUNT":        ErrCodeValidation,
	"NEGATIVE_BALANCE":       ErrCodeValidation,

	"VALIDATION_ERROR": ErrCodeValidation,
	"BAD_REQUEST":      ErrCodeBadRequest,
	"INTERNAL_ERROR":   ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if mapped, ok := DomainErrorCodeMapping[code]; ok {
		return mapped
	}
	return code
}

package dto

import "net/http"

// Error codes carried in the response envelope.
// Format: ERR_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeValidation is used when request binding fails validation
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for well-formed but invalid input
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	// ErrCodeForbidden is used when the client address is not allowed
	ErrCodeForbidden = "ERR_FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound       = "ERR_NOT_FOUND"
	ErrCodeTenantNotFound = "ERR_TENANT_NOT_FOUND"
	ErrCodePeriodNotFound = "ERR_PERIOD_NOT_FOUND"
	ErrCodeAlreadyExists  = "ERR_ALREADY_EXISTS"
)

// Ledger rule error codes
const (
	ErrCodeInvalidLease      = "ERR_INVALID_LEASE"
	ErrCodeNonPositiveAmount = "ERR_NON_POSITIVE_AMOUNT"
	ErrCodeInvalidState      = "ERR_INVALID_STATE"
	ErrCodeGenerationLimit   = "ERR_GENERATION_LIMIT"
)

// Conflict error codes. Clients may retry all of them.
const (
	ErrCodeAllocationConflict    = "ERR_ALLOCATION_CONFLICT"
	ErrCodeConcurrencyConflict   = "ERR_CONCURRENCY_CONFLICT"
	ErrCodeIdempotencyInProgress = "ERR_IDEMPOTENCY_IN_PROGRESS"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeInvalidInput:      http.StatusBadRequest,
	ErrCodeInvalidLease:      http.StatusBadRequest,
	ErrCodeNonPositiveAmount: http.StatusBadRequest,
	ErrCodeRequestTooLarge:   http.StatusRequestEntityTooLarge,
	ErrCodeForbidden:         http.StatusForbidden,

	// Resource errors
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeTenantNotFound: http.StatusNotFound,
	ErrCodePeriodNotFound: http.StatusNotFound,
	ErrCodeAlreadyExists:  http.StatusConflict,

	// Conflicts -> 409
	ErrCodeAllocationConflict:    http.StatusConflict,
	ErrCodeConcurrencyConflict:   http.StatusConflict,
	ErrCodeIdempotencyInProgress: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:    http.StatusUnprocessableEntity,
	ErrCodeGenerationLimit: http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to envelope codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":               ErrCodeNotFound,
	"ALREADY_EXISTS":          ErrCodeAlreadyExists,
	"INVALID_INPUT":           ErrCodeInvalidInput,
	"INVALID_STATE":           ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":    ErrCodeConcurrencyConflict,
	"INVALID_LEASE":           ErrCodeInvalidLease,
	"TENANT_NOT_FOUND":        ErrCodeTenantNotFound,
	"PERIOD_NOT_FOUND":        ErrCodePeriodNotFound,
	"NON_POSITIVE_AMOUNT":     ErrCodeNonPositiveAmount,
	"ALLOCATION_CONFLICT":     ErrCodeAllocationConflict,
	"IDEMPOTENCY_IN_PROGRESS": ErrCodeIdempotencyInProgress,
	"GENERATION_LIMIT":        ErrCodeGenerationLimit,
}

// NormalizeErrorCode converts a domain error code to the envelope format.
// Codes that are already normalized or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

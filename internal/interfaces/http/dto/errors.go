package dto

import "net/http"

// Common error codes shared with the domain layer
const (
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// statusByCode maps domain error codes to HTTP status codes
var statusByCode = map[string]int{
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeUnauthorized:     http.StatusUnauthorized,
	"INVALID_CREDENTIALS":   http.StatusUnauthorized,
	ErrCodeForbidden:        http.StatusForbidden,
	ErrCodeNotFound:         http.StatusNotFound,
	"ALREADY_EXISTS":        http.StatusConflict,
	"TRANSACTION_FAILURE":   http.StatusConflict,
	"EMPTY_CART":            http.StatusUnprocessableEntity,
	"PRODUCT_NOT_FOUND":     http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":    http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":    http.StatusUnprocessableEntity,
	"INVALID_RESET_CODE":    http.StatusUnprocessableEntity,
	"DIAGNOSIS_UNAVAILABLE": http.StatusServiceUnavailable,
	ErrCodeInternal:         http.StatusInternalServerError,
}

// GetHTTPStatus maps an error code to its HTTP status, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

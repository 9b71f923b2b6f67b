package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrInvalidResetCode   = NewDomainError("INVALID_RESET_CODE", "Reset code is invalid or has expired")
	ErrEmptyCart          = NewDomainError("EMPTY_CART", "Order must contain at least one item")
	ErrTransactionFailure = NewDomainError("TRANSACTION_FAILURE", "Transaction could not be completed, please retry")
)

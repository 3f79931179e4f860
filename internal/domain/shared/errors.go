package shared

// DomainError is a business-rule violation with a stable machine code.
// The HTTP layer translates codes into transport error codes and status
// lines; everything below it matches on the code, never the message.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a domain error with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinels shared across aggregates. Violations specific to one aggregate
// are constructed where they happen, with their own codes.
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "resource not found")
	ErrInvalidState = NewDomainError("INVALID_STATE", "operation not allowed in current state")
)

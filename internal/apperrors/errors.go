package apperrors

import (
	"errors"
	"fmt"
)

// Code is a stable integer error code carried across the wire.
type Code int

const (
	UnknownError            Code = -1
	MismatchedCurrency      Code = 100
	TransactionIDNotFound   Code = 200
	ExchangeRateNotFound    Code = 210
	DatabaseConnectionError Code = 300
	DatabaseUpdateError     Code = 310
	DatabaseQueryError      Code = 320
	EntryNotBalanced        Code = 400
	MissingInput            Code = 500
	BookDoesNotExist        Code = 510
	ValidationError         Code = 600
)

// AleError is a domain error with a stable code. All business-rule and
// storage failures surfaced to API clients are of this type.
type AleError struct {
	Code    Code
	Message string
	cause   error
}

func (e *AleError) Error() string {
	return e.Message
}

func (e *AleError) Unwrap() error {
	return e.cause
}

// New creates an AleError with the given code.
func New(code Code, message string) *AleError {
	return &AleError{Code: code, Message: message}
}

// Newf creates an AleError with a formatted message.
func Newf(code Code, format string, args ...any) *AleError {
	return &AleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap preserves the underlying error's text while genericizing its code.
// Used at the storage boundary so pgx failures surface with a database code.
func Wrap(code Code, err error, context string) *AleError {
	return &AleError{
		Code:    code,
		Message: fmt.Sprintf("%s. %s", context, err.Error()),
		cause:   err,
	}
}

// CodeOf extracts the stable code from err, or UnknownError for anything
// that is not an AleError.
func CodeOf(err error) Code {
	var aleErr *AleError
	if errors.As(err, &aleErr) {
		return aleErr.Code
	}
	return UnknownError
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	var aleErr *AleError
	return errors.As(err, &aleErr) && aleErr.Code == code
}

// ErrorResponse is the uniform wire shape for failed requests.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode Code   `json:"errorCode"`
}

// AsResponse converts any error into the uniform error response body.
func AsResponse(err error) ErrorResponse {
	return ErrorResponse{
		Success:   false,
		Message:   err.Error(),
		ErrorCode: CodeOf(err),
	}
}

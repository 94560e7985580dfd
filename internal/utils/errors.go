package utils

import "fmt"

type AppError struct {
	Code    string
	Message string
	Origin  error // Original error that caused this error, if any
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Standard error codes for the client core
const (
	// Store lookup errors
	ErrNotFound     = "NOT_FOUND"
	ErrInvalidInput = "INVALID_INPUT"

	// Remote-boundary errors
	ErrRemoteFailed = "REMOTE_FAILED" // Transport error or non-success status
	ErrSoftFailure  = "SOFT_FAILURE"  // 2xx response carrying an error payload
	ErrBadResponse  = "BAD_RESPONSE"  // Response body could not be decoded

	// Coordinator errors
	ErrNotConfirmed    = "NOT_CONFIRMED" // Entity has no permanent ID yet
	ErrDispatchTimeout = "DISPATCH_TIMEOUT"
)

// Error creation helper functions
func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

func NewRemoteError(operation string, originalErr error) *AppError {
	return &AppError{
		Code:    ErrRemoteFailed,
		Message: "Remote call failed: " + operation,
		Origin:  originalErr,
	}
}

func NewSoftFailureError(operation string, serverMessage string) *AppError {
	return &AppError{
		Code:    ErrSoftFailure,
		Message: fmt.Sprintf("Server reported failure on %s: %s", operation, serverMessage),
	}
}

func NewNotConfirmedError(kind string, tempID string) *AppError {
	return &AppError{
		Code:    ErrNotConfirmed,
		Message: kind + " not yet confirmed by the server: " + tempID,
	}
}

// Helper method to check if an error is of a specific type
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

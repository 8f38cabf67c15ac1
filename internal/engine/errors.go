package engine

import "fmt"

// Error codes, mirrored on the teacher's AppError convention
// (pkg/utils/errors.go) but scoped to the four kinds spec'd in §7.
const (
	ErrCodeIO       = "IO_ERROR"
	ErrCodeParse    = "PARSE_ERROR"
	ErrCodeCapacity = "CAPACITY_ERROR"
	ErrCodeConfig   = "CONFIG_ERROR"
)

// AppError is a typed error carrying one of the four §7 error kinds.
type AppError struct {
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewIOError(message string, details ...string) *AppError {
	return newAppError(ErrCodeIO, message, details...)
}

func NewParseError(message string, details ...string) *AppError {
	return newAppError(ErrCodeParse, message, details...)
}

func NewCapacityError(message string, details ...string) *AppError {
	return newAppError(ErrCodeCapacity, message, details...)
}

func NewConfigError(message string, details ...string) *AppError {
	return newAppError(ErrCodeConfig, message, details...)
}

func newAppError(code, message string, details ...string) *AppError {
	err := &AppError{Code: code, Message: message}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

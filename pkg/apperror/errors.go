package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Errors  []FieldError   `json:"errors,omitempty"`
	Details map[string]any `json:"details,omitempty"`

	cause error
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Incorrect login or password"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Could not validate credentials"}
)

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewFieldError is a validation error for a single field.
func NewFieldError(field, message string) *AppError {
	return NewValidationError([]FieldError{{Field: field, Message: message}})
}

// NewInvalidFilterError reports a query filter that could not be parsed.
func NewInvalidFilterError(field, value, hint string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Invalid filter",
		Errors: []FieldError{{
			Field:   field,
			Message: fmt.Sprintf("%q is not a valid value, %s", value, hint),
		}},
	}
}

// NewInsufficientPaymentError is returned when the payment does not cover the invoice total.
func NewInsufficientPaymentError(total, amount decimal.Decimal) *AppError {
	return &AppError{
		Code: http.StatusUnprocessableEntity,
		Message: fmt.Sprintf(
			"Invalid invoice data. Payment amount (%s) can't be less than total (%s)",
			amount.StringFixed(2), total.StringFixed(2),
		),
		Details: map[string]any{
			"total":     total.StringFixed(2),
			"amount":    amount.StringFixed(2),
			"shortfall": total.Sub(amount).StringFixed(2),
		},
	}
}

// NewNotFoundErrorf creates a not found error with a formatted message.
func NewNotFoundErrorf(format string, args ...any) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// Persistence wraps a storage failure. Conflicts and other AppErrors pass through.
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	if IsAppError(err) {
		return err
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: "Failed to save data",
		cause:   err,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		cause:   err,
	}
}

// HasCode reports whether err is an AppError with the given status code.
func HasCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType string

// Domain/Business Logic Errors - errors related to business rules and validation
const (
	ValidationError ErrorType = "VALIDATION_ERROR"
	NotFoundError   ErrorType = "NOT_FOUND_ERROR"
	// NoForecastError means no forecast sample fell inside the match window
	// around the event time. Absence is surfaced, never defaulted.
	NoForecastError ErrorType = "NO_FORECAST_IN_WINDOW"
)

// Infrastructure Errors - errors related to external systems and services
const (
	DatabaseError ErrorType = "DATABASE_ERROR"

	// Forecast provider failure modes. RateLimit, Unauthorized and Unreachable
	// describe why the fetch failed; MalformedResponse means the provider
	// answered but the payload failed schema validation. All four are
	// eligible for a stale-cache fallback and collapse to
	// ProviderUnavailable when no fallback exists.
	RateLimitError           ErrorType = "RATE_LIMIT_ERROR"
	UnauthorizedError        ErrorType = "UNAUTHORIZED_ERROR"
	UnreachableError         ErrorType = "UNREACHABLE_ERROR"
	MalformedResponseError   ErrorType = "MALFORMED_RESPONSE_ERROR"
	ProviderUnavailableError ErrorType = "PROVIDER_UNAVAILABLE_ERROR"

	// NotificationError covers failures delivering advisory notifications.
	NotificationError ErrorType = "NOTIFICATION_ERROR"
)

// System/Configuration Errors - errors related to system setup and configuration
const (
	ConfigurationError ErrorType = "CONFIGURATION_ERROR"
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain/Business Logic Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewNoForecastError(message string) *AppError {
	return New(NoForecastError, message)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewRateLimitError(message string, cause error) *AppError {
	return Wrap(RateLimitError, message, cause)
}

func NewUnauthorizedError(message string, cause error) *AppError {
	return Wrap(UnauthorizedError, message, cause)
}

func NewUnreachableError(message string, cause error) *AppError {
	return Wrap(UnreachableError, message, cause)
}

func NewMalformedResponseError(message string, cause error) *AppError {
	return Wrap(MalformedResponseError, message, cause)
}

func NewProviderUnavailableError(message string, cause error) *AppError {
	return Wrap(ProviderUnavailableError, message, cause)
}

func NewNotificationError(message string, cause error) *AppError {
	return Wrap(NotificationError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf extracts the ErrorType from an error chain, or "" if the chain
// contains no AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsProviderFailure reports whether err is one of the forecast provider
// failure modes that permit serving a stale cached bundle.
func IsProviderFailure(err error) bool {
	switch TypeOf(err) {
	case RateLimitError, UnauthorizedError, UnreachableError, MalformedResponseError, ProviderUnavailableError:
		return true
	}
	return false
}

// IsNoForecast reports whether err means no sample matched the event window.
func IsNoForecast(err error) bool {
	return TypeOf(err) == NoForecastError
}

// Package errors provides application-level error types and utilities.
// AppError carries an HTTP status so handlers can map failures in one place;
// the remote-sync kinds classify Freshdesk and reconciliation failures.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeInternal        ErrorType = "internal_error"
	ErrorTypeBadRequest      ErrorType = "bad_request"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"

	ErrorTypeRemoteUnavailable     ErrorType = "remote_unavailable"
	ErrorTypeRemoteRejected        ErrorType = "remote_rejected"
	ErrorTypeRateLimited           ErrorType = "rate_limited"
	ErrorTypeDataContractViolation ErrorType = "data_contract_violation"
	ErrorTypeSyncInProgress        ErrorType = "sync_in_progress"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`

	// RetryAfter is the wait hinted by the remote side; only set for rate limiting.
	RetryAfter time.Duration `json:"-"`

	cause error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error so errors.Is/As can reach it.
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	e := &AppError{Type: t, Message: message, Code: code}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewConflictError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeBadRequest, http.StatusBadRequest, message, details)
}

func NewTooManyRequestsError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeTooManyRequests, http.StatusTooManyRequests, message, details)
}

// NewRemoteUnavailableError covers transport failures, 5xx answers and an open circuit.
func NewRemoteUnavailableError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeRemoteUnavailable, http.StatusBadGateway, message, details)
}

// NewRemoteRejectedError covers 4xx answers other than 429 and undecodable bodies.
func NewRemoteRejectedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeRemoteRejected, http.StatusBadGateway, message, details)
}

func NewRateLimitedError(message string, retryAfter time.Duration) *AppError {
	e := newAppError(ErrorTypeRateLimited, http.StatusTooManyRequests, message, nil)
	e.RetryAfter = retryAfter
	return e
}

// NewDataContractViolation marks a remote record that cannot be reconciled.
func NewDataContractViolation(message string, details ...string) *AppError {
	return newAppError(ErrorTypeDataContractViolation, http.StatusUnprocessableEntity, message, details)
}

func NewSyncInProgressError(message string) *AppError {
	return newAppError(ErrorTypeSyncInProgress, http.StatusConflict, message, nil)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType reports whether err carries an AppError of type t.
func IsType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsConflictError(err error) bool {
	return IsType(err, ErrorTypeConflict)
}

func IsNotFoundError(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

func IsValidationError(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsRetryable reports whether a later attempt may succeed without changes
// on our side: remote outages and rate limiting.
func IsRetryable(err error) bool {
	return IsType(err, ErrorTypeRemoteUnavailable) || IsType(err, ErrorTypeRateLimited)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errStr := err.Error()
	// MySQL, PostgreSQL and SQLite spell it differently
	return strings.Contains(errStr, "Duplicate entry") ||
		strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "UNIQUE constraint failed")
}

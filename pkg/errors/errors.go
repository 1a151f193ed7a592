package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the kind of failure an operation reports.
type ErrorType string

const (
	// ErrorTypeNotFound indicates the referenced entity does not exist
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates the input violates a field constraint
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeDuplicateEmail indicates a user with the same email already exists
	ErrorTypeDuplicateEmail ErrorType = "DUPLICATE_EMAIL"

	// ErrorTypeDuplicateSubscription indicates the email is already on the newsletter list
	ErrorTypeDuplicateSubscription ErrorType = "DUPLICATE_SUBSCRIPTION"

	// ErrorTypeAuthenticationFailed indicates the credentials did not match a user
	ErrorTypeAuthenticationFailed ErrorType = "AUTHENTICATION_FAILED"
)

// Entity names the collection a NotFound error refers to.
type Entity string

const (
	EntityClaim      Entity = "claim"
	EntityReview     Entity = "review"
	EntityClinic     Entity = "clinic"
	EntityUser       Entity = "user"
	EntitySubmission Entity = "submission"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Entity  Entity
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a not found error for the given entity kind.
func NewNotFoundError(entity Entity, id string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Entity:  entity,
		Message: fmt.Sprintf("%s %q not found", entity, id),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewValidationErrorf formats a validation message.
func NewValidationErrorf(format string, args ...any) *AppError {
	return NewValidationError(fmt.Sprintf(format, args...))
}

// NewDuplicateEmailError reports an email already registered to a user.
func NewDuplicateEmailError(email string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateEmail,
		Entity:  EntityUser,
		Message: fmt.Sprintf("email address %s is already in use", email),
	}
}

// NewDuplicateSubscriptionError reports an email already on the newsletter list.
func NewDuplicateSubscriptionError(email string) *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateSubscription,
		Message: fmt.Sprintf("%s is already subscribed", email),
	}
}

// NewAuthenticationFailedError creates a new authentication error
func NewAuthenticationFailedError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeAuthenticationFailed,
		Message: message,
		Err:     err,
	}
}

// IsType reports whether err carries an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// IsNotFound reports whether err is a NotFound error for entity.
// An empty entity matches any NotFound error.
func IsNotFound(err error, entity Entity) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != ErrorTypeNotFound {
		return false
	}
	return entity == "" || appErr.Entity == entity
}

// HTTPStatus maps err onto the status code the REST facade responds with.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case ErrorTypeNotFound:
		return http.StatusNotFound
	case ErrorTypeValidation:
		return http.StatusBadRequest
	case ErrorTypeDuplicateEmail, ErrorTypeDuplicateSubscription:
		return http.StatusConflict
	case ErrorTypeAuthenticationFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to show to API clients.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

package errors

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrCarNotFound is returned when a car is not found.
	ErrCarNotFound = errors.New("Car not found")
	// ErrListingNotFound is returned when a marketplace listing is not found.
	ErrListingNotFound = errors.New("Listing not found")
	// ErrProfileNotFound is returned when a profile is not found.
	ErrProfileNotFound = errors.New("Profile not found")
	// ErrCommentNotFound is returned when a comment is not found or not owned by the caller.
	ErrCommentNotFound = errors.New("Comment not found")
	// ErrReportNotFound is returned when a report is not found.
	ErrReportNotFound = errors.New("Report not found")
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("Notification not found")
	// ErrUnauthorized is returned when the caller may not perform the operation.
	ErrUnauthorized = errors.New("Unauthorized")
	// ErrDuplicate is returned by repositories when a unique constraint rejects a write.
	ErrDuplicate = errors.New("already exists")
	// ErrAlreadyFavorited is returned when a user favorites the same car twice.
	ErrAlreadyFavorited = errors.New("Already favorited")
	// ErrAlreadyLiked is returned when a user likes the same car twice.
	ErrAlreadyLiked = errors.New("Already liked")
	// ErrAlreadySubscribed is returned when an email is already on the list.
	ErrAlreadySubscribed = errors.New("Already subscribed")
	// ErrPayloadTooLarge is returned when an upload exceeds the configured limit.
	ErrPayloadTooLarge = errors.New("File too large")
)

// ValidationError carries a human-readable message about malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid creates a validation error with the given message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err means a unique constraint rejected the write.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become 500 and keep
// their message.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	var validationErr *ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &httpErr):
		return httpErr
	case errors.As(err, &validationErr):
		return NewHTTPError(http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error())
	case errors.Is(err, ErrCarNotFound),
		errors.Is(err, ErrListingNotFound),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrReportNotFound),
		errors.Is(err, ErrNotificationNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, ErrAlreadyFavorited),
		errors.Is(err, ErrAlreadyLiked),
		errors.Is(err, ErrAlreadySubscribed):
		return NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewHTTPError(http.StatusConflict, "Already exists")
	case errors.Is(err, ErrPayloadTooLarge):
		return NewHTTPError(http.StatusRequestEntityTooLarge, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

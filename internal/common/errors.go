// File: internal/common/errors.go
package common

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// APIError represents a standard structure for API errors.
// Action and URL carry an optional client hint, e.g. forcing re-registration
// when the identity mirror and the identity provider disagree.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"-"`
	Message    string `json:"message"`
	Action     string `json:"action,omitempty"`
	URL        string `json:"url,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: StatusCode=%d, Code=%s, Message=%s", e.StatusCode, e.Code, e.Message)
}

func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// WithMessage returns a copy of the error carrying a more specific message.
func (e *APIError) WithMessage(message string) *APIError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithRedirect returns a copy of the error instructing the client to navigate away.
func (e *APIError) WithRedirect(url string) *APIError {
	clone := *e
	clone.Action = "redirect"
	clone.URL = url
	return &clone
}

// Is lets errors.Is match any APIError sharing the same code, so wrapped or
// message-specialized copies still compare equal to the sentinel values below.
func (e *APIError) Is(target error) bool {
	var apiErr *APIError
	if errors.As(target, &apiErr) {
		return e.Code == apiErr.Code
	}
	return false
}

var (
	ErrUnauthorized     = NewAPIError(http.StatusUnauthorized, "UNAUTHORIZED", "Authentication is required and has failed or has not yet been provided.")
	ErrBadRequest       = NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "The request is invalid.")
	ErrNotFound         = NewAPIError(http.StatusNotFound, "NOT_FOUND", "The requested resource could not be found.")
	ErrDuplicate        = NewAPIError(http.StatusConflict, "DUPLICATE", "A record with these details already exists.")
	ErrUploadFailed     = NewAPIError(http.StatusInternalServerError, "UPLOAD_FAILED", "Image upload failed.")
	ErrPersistence      = NewAPIError(http.StatusInternalServerError, "PERSISTENCE_ERROR", "A database error occurred.")
	ErrInternalServer   = NewAPIError(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong. Please try again.")
	ErrInvalidImageType = NewAPIError(http.StatusUnauthorized, "INVALID_IMAGE_TYPE", "Invalid file type. Please upload a valid image file.")
	ErrAccountOutOfSync = NewAPIError(http.StatusConflict, "ACCOUNT_OUT_OF_SYNC", "We could not find your account. Please sign up again.")
)

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func NewValidationAPIError(message string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       "VALIDATION_ERROR",
		Message:    message,
	}
}

// FormatValidationErrors flattens validator.ValidationErrors into one
// human-readable message, keeping the first failing field only.
func FormatValidationErrors(errs validator.ValidationErrors) string {
	for _, e := range errs {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			return fmt.Sprintf("The %s field is required.", field)
		case "email":
			return fmt.Sprintf("The %s field must be a valid email address.", field)
		case "min":
			return fmt.Sprintf("The %s field must be at least %s characters long.", field, e.Param())
		case "max":
			return fmt.Sprintf("The %s field may not be greater than %s characters.", field, e.Param())
		case "alphanum":
			return fmt.Sprintf("The %s field may only contain letters and numbers.", field)
		case "username_charset":
			return fmt.Sprintf("The %s field may only contain letters, numbers, and underscores.", field)
		default:
			return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", e.Field(), e.Tag())
		}
	}
	return "Input validation failed."
}

package model

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds for failed backend interactions.
const (
	ErrNetwork = "NETWORK_ERROR"
	ErrHTTP    = "HTTP_ERROR"
	ErrUnknown = "UNKNOWN_ERROR"
)

// AppError classifies a failed backend interaction by kind rather than by
// concrete cause. It implements the error interface.
type AppError struct {
	Kind    string
	Message string
	// Status is the HTTP status code; only set for HTTP_ERROR.
	Status int
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Kind == ErrHTTP {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewNetworkError returns a NETWORK_ERROR for requests that produced no
// recognizable HTTP response.
func NewNetworkError() *AppError {
	return &AppError{Kind: ErrNetwork, Message: "Network error"}
}

// NewHTTPError returns an HTTP_ERROR carrying the response status and a
// best-effort message extracted from the response body.
func NewHTTPError(status int, message string) *AppError {
	if message == "" {
		message = "Http error"
	}
	return &AppError{Kind: ErrHTTP, Status: status, Message: message}
}

// NewUnknownError wraps anything not recognized as a network or HTTP failure.
func NewUnknownError(message string) *AppError {
	return &AppError{Kind: ErrUnknown, Message: message}
}

// User-facing messages for failed submissions.
const (
	MsgNetworkError    = "Network error. Please check your connection."
	MsgNotFound        = "Resource not found."
	MsgInvalidRequest  = "Invalid request data."
	MsgRequestFailed   = "Request failed. Please try again."
	MsgUnexpectedError = "Unexpected error. Please try again."
)

// UserMessage maps any error to a user-facing string. Errors that are not
// an *AppError are reported as unexpected.
func UserMessage(err error) string {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return MsgUnexpectedError
	}
	switch appErr.Kind {
	case ErrNetwork:
		return MsgNetworkError
	case ErrHTTP:
		switch appErr.Status {
		case http.StatusNotFound:
			return MsgNotFound
		case http.StatusBadRequest:
			return MsgInvalidRequest
		default:
			return MsgRequestFailed
		}
	default:
		return MsgUnexpectedError
	}
}

package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	e := NewHTTPError(404, "Product not found")
	want := "HTTP_ERROR (404): Product not found"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	n := NewNetworkError()
	if got := n.Error(); got != "NETWORK_ERROR: Network error" {
		t.Errorf("Error() = %q", got)
	}
}

func TestAppError_implements_error(t *testing.T) {
	var _ error = (*AppError)(nil)
}

func TestNewHTTPError_default_message(t *testing.T) {
	e := NewHTTPError(500, "")
	if e.Message != "Http error" {
		t.Errorf("Message = %q, want %q", e.Message, "Http error")
	}
	if e.Status != 500 {
		t.Errorf("Status = %d, want 500", e.Status)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", NewNetworkError(), MsgNetworkError},
		{"http 404", NewHTTPError(404, "gone"), MsgNotFound},
		{"http 400", NewHTTPError(400, "bad"), MsgInvalidRequest},
		{"http 500", NewHTTPError(500, "boom"), MsgRequestFailed},
		{"http 409", NewHTTPError(409, "conflict"), MsgRequestFailed},
		{"plain error", errors.New("boom"), MsgUnexpectedError},
		{"unknown kind", NewUnknownError("weird"), MsgUnexpectedError},
		{"nil-safe plain", fmt.Errorf("wrapped: %w", errors.New("x")), MsgUnexpectedError},
	}

	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("%s: UserMessage() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestUserMessage_wrapped_app_error(t *testing.T) {
	wrapped := fmt.Errorf("repository: %w", NewHTTPError(404, "missing"))
	if got := UserMessage(wrapped); got != MsgNotFound {
		t.Errorf("UserMessage(wrapped) = %q, want %q", got, MsgNotFound)
	}
}

package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromStatus_CodeMapping(t *testing.T) {
	tests := []struct {
		status int
		want   Code
	}{
		{http.StatusBadRequest, CodeValidation},
		{http.StatusUnprocessableEntity, CodeValidation},
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusConflict, CodeConflict},
		{http.StatusTooManyRequests, CodeRateLimited},
		{http.StatusInternalServerError, CodeServer},
		{http.StatusBadGateway, CodeServer},
	}

	for _, tt := range tests {
		got := FromStatus(tt.status, "boom")
		if got.Code != tt.want {
			t.Errorf("FromStatus(%d) code = %s, want %s", tt.status, got.Code, tt.want)
		}
		if got.Status != tt.status {
			t.Errorf("FromStatus(%d) status = %d", tt.status, got.Status)
		}
		if !got.Remote() {
			t.Errorf("FromStatus(%d) should be remote", tt.status)
		}
	}
}

func TestFromStatus_DefaultMessage(t *testing.T) {
	err := FromStatus(http.StatusNotFound, "")
	if err.Message != http.StatusText(http.StatusNotFound) {
		t.Errorf("expected default message, got %q", err.Message)
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := FromStatus(http.StatusNotFound, "book 42 not found")
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound) to hold")
	}
	if errors.Is(err, ErrConflict) {
		t.Error("did not expect a conflict match")
	}
}

func TestNetwork_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := Network("request failed", cause)

	if err.Remote() {
		t.Error("network errors must not be remote")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Error("expected network sentinel match")
	}
	if errors.Unwrap(err) != cause {
		t.Error("expected cause to unwrap")
	}
}

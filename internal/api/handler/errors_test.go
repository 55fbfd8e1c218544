package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"taskflow/internal/domain"
)

func TestMapError_Taxonomy(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   ErrorCode
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials},
		{domain.ErrForbidden, http.StatusForbidden, CodeForbidden},
		{domain.ErrTaskNotFound, http.StatusNotFound, CodeNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound, CodeNotFound},
		{domain.ErrValidation, http.StatusBadRequest, CodeValidationFailed},
		{domain.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
		{domain.ErrEmailExists, http.StatusConflict, CodeEmailExists},
		{errors.New("database exploded"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tc := range cases {
		status, resp := mapError(tc.err)
		if status != tc.wantStatus {
			t.Fatalf("%v: got status %d, want %d", tc.err, status, tc.wantStatus)
		}
		if resp.Error.Code != tc.wantCode {
			t.Fatalf("%v: got code %s, want %s", tc.err, resp.Error.Code, tc.wantCode)
		}
	}
}

func TestMapError_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w: title cannot be blank", domain.ErrValidation)

	status, resp := mapError(wrapped)
	if status != http.StatusBadRequest {
		t.Fatalf("got status %d, want %d", status, http.StatusBadRequest)
	}
	if resp.Error.Code != CodeValidationFailed {
		t.Fatalf("got code %s, want %s", resp.Error.Code, CodeValidationFailed)
	}
}

func TestMapError_InternalHidesDetails(t *testing.T) {
	_, resp := mapError(errors.New("pq: connection refused at 10.0.0.3"))
	if resp.Error.Message != "internal server error" {
		t.Fatalf("internal error leaked details: %q", resp.Error.Message)
	}
}

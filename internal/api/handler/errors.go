package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
)

type ErrorCode string

const (
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	CodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	CodeEmailExists        ErrorCode = "EMAIL_EXISTS"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func WriteError(w http.ResponseWriter, err error, logger *logger.Logger) {
	status, response := mapError(err)

	if isDomainError(err) {
		logger.Warn("domain error",
			"error", err.Error(),
			"code", response.Error.Code,
		)
	} else {
		logger.Error("unexpected error",
			"error", err.Error(),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func mapError(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse(CodeInvalidCredentials, err)

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorResponse(CodeForbidden, err)

	case errors.Is(err, domain.ErrTaskNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse(CodeNotFound, err)

	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, errorResponse(CodeValidationFailed, err)

	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, errorResponse(CodeInvalidTransition, err)

	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, errorResponse(CodeEmailExists, err)

	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    CodeInternal,
				Message: "internal server error",
			},
		}
	}
}

func errorResponse(code ErrorCode, err error) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrInvalidCredentials) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrTaskNotFound) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrEmailExists)
}

package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/tasksum-api/internal/api/shared"
	"github.com/phrazzld/tasksum-api/internal/domain"
	"github.com/phrazzld/tasksum-api/internal/service"
	"github.com/phrazzld/tasksum-api/internal/store"
	"github.com/phrazzld/tasksum-api/internal/summary"
)

// Safe messages returned to clients.
const (
	msgValidationFailed   = "Validation failed"
	msgInvalidBody        = "Invalid request body"
	msgBodyTooLarge       = "Request body too large"
	msgTaskNotFound       = "Task not found"
	msgSummaryUnavailable = "Summarization service unavailable"
	msgSummaryBadResponse = "Summarization service returned an invalid response"
	msgInternal           = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var verrs validator.ValidationErrors

	switch {
	case err == nil:
		return http.StatusInternalServerError

	// Bad input
	case errors.Is(err, shared.ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidBody),
		errors.As(err, &verrs):
		return http.StatusUnprocessableEntity

	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrTaskNotFound):
		return http.StatusNotFound

	// Summarizer failures
	case errors.Is(err, summary.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, summary.ErrBadResponse):
		return http.StatusBadGateway

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusRequestEntityTooLarge:
		return msgBodyTooLarge
	case http.StatusUnprocessableEntity:
		if errors.Is(err, shared.ErrInvalidBody) {
			return msgInvalidBody
		}
		return msgValidationFailed
	case http.StatusNotFound:
		return msgTaskNotFound
	case http.StatusServiceUnavailable:
		return msgSummaryUnavailable
	case http.StatusBadGateway:
		return msgSummaryBadResponse
	default:
		return msgInternal
	}
}

// ValidationDetails lists the invalid fields behind err, keyed by JSON field
// name. It returns nil for errors that are not validation failures.
func ValidationDetails(err error) []shared.FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]shared.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, shared.FieldError{
				Field:   fe.Field(),
				Message: getValidationTagMessage(fe),
			})
		}
		return details
	}

	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return []shared.FieldError{{Field: vErr.Field, Message: vErr.Message}}
	}

	return nil
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

// respondWithError writes the mapped status, safe message and any
// validation details for err.
func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r,
		MapErrorToStatusCode(err),
		GetSafeErrorMessage(err),
		err,
		shared.WithDetails(ValidationDetails(err)...))
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/tailoring"
)

// ErrorBody is the JSON shape of non-tailoring errors
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing record
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// failureStatus maps tailoring codes to HTTP statuses
var failureStatus = map[tailoring.Code]int{
	tailoring.CodeInvalidInput:        http.StatusBadRequest,
	tailoring.CodeInputTooLarge:       http.StatusRequestEntityTooLarge,
	tailoring.CodeQualityNotAchieved:  http.StatusUnprocessableEntity,
	tailoring.CodeUpstreamUnavailable: http.StatusServiceUnavailable,
	tailoring.CodeTimeout:             http.StatusServiceUnavailable,
	tailoring.CodeServiceUnavailable:  http.StatusServiceUnavailable,
	tailoring.CodeInvalidResponse:     http.StatusServiceUnavailable,
	tailoring.CodeCancelled:           http.StatusRequestTimeout,
	tailoring.CodeStorageFailed:       http.StatusInternalServerError,
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		failure     *tailoring.Failure
		validation  *ErrValidation
		notFound    *ErrNotFound
		tooLarge    *ingestion.UploadTooLargeError
		unsupported *ingestion.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &failure):
		if status, ok := failureStatus[failure.Code]; ok {
			return status
		}
		return http.StatusInternalServerError
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// errorCode is the machine-readable code written for err
func errorCode(err error) string {
	var (
		failure     *tailoring.Failure
		validation  *ErrValidation
		notFound    *ErrNotFound
		tooLarge    *ingestion.UploadTooLargeError
		unsupported *ingestion.UnsupportedFormatError
	)
	switch {
	case errors.As(err, &failure):
		return string(failure.Code)
	case errors.As(err, &validation):
		return "validation_failed"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &tooLarge):
		return string(tailoring.CodeInputTooLarge)
	case errors.As(err, &unsupported):
		return "unsupported_format"
	default:
		return "internal_error"
	}
}

// writeError writes err with its mapped status. Tailoring failures are
// written as-is so clients receive attempts, the last report and the best
// candidate.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}

	var failure *tailoring.Failure
	if errors.As(err, &failure) {
		s.jsonResponse(w, status, failure)
		return
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	s.errorResponse(w, status, errorCode(err), message)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/domain"
)

// APIResponse is the envelope for error responses.
// Successful analyses return their DTO without the envelope.
type APIResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string, retryable bool) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg, Retryable: retryable},
	})
}

// MapDomainError translates domain and analyzer errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rateLimitErr *analyzer.RateLimitError
	var uploadErr *analyzer.UploadError
	var extractErr *analyzer.ExtractionRequestError
	var parseErr *analyzer.ParseError

	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "file field is required"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "File must be a PDF"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.As(err, &rateLimitErr):
		return http.StatusTooManyRequests, "RATE_LIMITED", err.Error()
	case errors.As(err, &uploadErr):
		return http.StatusInternalServerError, "ARTIFACT_UPLOAD_FAILED", err.Error()
	case errors.As(err, &extractErr):
		return http.StatusInternalServerError, "EXTRACTION_REQUEST_FAILED", err.Error()
	case errors.As(err, &parseErr):
		return http.StatusInternalServerError, "EXTRACTION_PARSE_FAILED", err.Error()
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", err.Error()
	}
}

// HandleError maps an error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rateLimitErr *analyzer.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", strconv.Itoa(int(rateLimitErr.RetryAfter.Seconds())))
	}

	if status >= 500 {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("code", code).Msg("request failed")
	}
	RespondError(c, status, code, msg, analyzer.Retryable(err))
}

package analyzer

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"
)

// UploadError indicates the document could not be stored on the extraction service.
// Nothing was created, so no cleanup is owed.
type UploadError struct {
	Provider string
	Err      error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s artifact upload failed: %v", e.Provider, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// ExtractionRequestError indicates the call to the extraction model failed.
type ExtractionRequestError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ExtractionRequestError) Error() string {
	return fmt.Sprintf("%s extraction request (model %s) failed: %v", e.Provider, e.Model, e.Err)
}

func (e *ExtractionRequestError) Unwrap() error {
	return e.Err
}

// ParseErrorKind distinguishes malformed output from well-formed output of the wrong shape.
type ParseErrorKind string

const (
	ParseErrorJSON   ParseErrorKind = "json"
	ParseErrorSchema ParseErrorKind = "schema"
)

// ParseError indicates the model output does not honour the extraction contract.
type ParseError struct {
	Kind ParseErrorKind
	Raw  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Kind == ParseErrorSchema {
		return fmt.Sprintf("model output does not match the extraction contract: %v", e.Err)
	}
	return fmt.Sprintf("model output is not valid JSON: %v (raw: %s)", e.Err, Truncate(e.Raw, 200))
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// CleanupError indicates an uploaded artifact could not be deleted. It is logged, never returned.
type CleanupError struct {
	Provider   string
	ArtifactID string
	Err        error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("%s artifact %s cleanup failed: %v", e.Provider, e.ArtifactID, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// RateLimitError indicates a provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// NewStatusError builds the error for a non-2xx provider response.
// A 429 becomes a *RateLimitError carrying the provider's Retry-After hint.
func NewStatusError(provider string, status int, retryAfter string, body []byte) error {
	baseErr := fmt.Errorf("%s API error (status %d): %s", provider, status, Truncate(string(body), 500))
	if status == http.StatusTooManyRequests {
		return NewRateLimitError(provider, baseErr, ParseRetryAfterHeader(retryAfter))
	}
	return baseErr
}

// Retryable reports whether err comes from a step that is plausibly transient
// (storing the artifact or calling the model). Parse errors are not.
func Retryable(err error) bool {
	var uploadErr *UploadError
	var extractErr *ExtractionRequestError
	return errors.As(err, &uploadErr) || errors.As(err, &extractErr)
}

// Truncate shortens s to at most maxLen bytes without splitting a rune,
// appending an ellipsis when cut.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

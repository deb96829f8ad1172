package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// Pipeline specific errors
	CodeInvalidURL            ErrorCode = "INVALID_URL"
	CodeTranscriptUnavailable ErrorCode = "TRANSCRIPT_UNAVAILABLE"
	CodeGenerationFailed      ErrorCode = "GENERATION_FAILED"
	CodeInvalidQuizData       ErrorCode = "INVALID_QUIZ_DATA"
	CodeStorageError          ErrorCode = "STORAGE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInvalidURLError(url string) *DomainError {
	return NewError(CodeInvalidURL, fmt.Sprintf("not a recognized YouTube URL: %s", url), nil)
}

func NewTranscriptUnavailableError(videoID string, cause error) *DomainError {
	return NewError(CodeTranscriptUnavailable, fmt.Sprintf("no transcript available for video: %s", videoID), cause)
}

func NewGenerationFailedError(message string, cause error) *DomainError {
	return NewError(CodeGenerationFailed, message, cause)
}

func NewInvalidQuizDataError(message string) *DomainError {
	return NewError(CodeInvalidQuizData, message, nil)
}

func NewStorageError(message string, cause error) *DomainError {
	return NewError(CodeStorageError, message, cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

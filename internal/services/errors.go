package services

import (
	"errors"
	"fmt"

	"alfredoptarigan/resume-analyzer/internal/models"
)

var (
	ErrSubmissionInProgress = errors.New("a resume is already being processed")
	ErrUnknownMode          = errors.New("unknown analysis mode")
	ErrFileTooLarge         = errors.New("file too large")
	ErrSessionReset         = errors.New("session was reset while the resume was being processed")
)

// UserMessage returns the single message shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		return um.UserMessage()
	}
	switch {
	case errors.Is(err, ErrSubmissionInProgress):
		return "A resume is already being processed. Please wait for it to finish."
	case errors.Is(err, ErrUnknownMode):
		return "Unknown mode. Use 'analyzer' or 'matcher'."
	case errors.Is(err, ErrFileTooLarge):
		return err.Error()
	case errors.Is(err, ErrSessionReset):
		return "The upload was cancelled by a reset."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

type UnsupportedFileTypeError struct {
	MediaType models.MediaType
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %q", e.MediaType)
}

func (e *UnsupportedFileTypeError) UserMessage() string {
	return "Please upload PDF or Word (.docx) document only."
}

type ExtractionError struct {
	MediaType models.MediaType
	Cause     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.MediaType, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func (e *ExtractionError) UserMessage() string {
	kind := "document"
	switch e.MediaType {
	case models.MediaTypePDF:
		kind = "PDF"
	case models.MediaTypeWord:
		kind = "Word"
	}
	return fmt.Sprintf("%s extraction failed: %v", kind, e.Cause)
}

type InsufficientTextError struct {
	Subject string
	Length  int
	Minimum int
}

func (e *InsufficientTextError) Error() string {
	return fmt.Sprintf("%s text too short: %d characters, need at least %d", e.Subject, e.Length, e.Minimum)
}

func (e *InsufficientTextError) UserMessage() string {
	if e.Subject == SubjectJobDescription {
		return "Job description is too short. Please provide more details."
	}
	return "Could not extract enough text from the document. Please ensure it contains text content."
}

const (
	SubjectResume         = "resume"
	SubjectJobDescription = "job description"
)

type BackendUnavailableError struct {
	Cause error
}

func (e *BackendUnavailableError) Error() string {
	if e.Cause == nil {
		return "backend unavailable"
	}
	return fmt.Sprintf("backend unavailable: %v", e.Cause)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Cause
}

func (e *BackendUnavailableError) UserMessage() string {
	if e.Cause == nil {
		return "AI is not ready yet. Please wait a moment and try again."
	}
	return "Backend not responding. Check that the analysis service is running."
}

type RemoteAnalysisError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *RemoteAnalysisError) Error() string {
	msg := fmt.Sprintf("remote analysis failed: %s", e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *RemoteAnalysisError) Unwrap() error {
	return e.Cause
}

func (e *RemoteAnalysisError) UserMessage() string {
	return fmt.Sprintf("Error: %s", e.Message)
}

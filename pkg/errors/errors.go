package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeNavigation represents errors advancing the directory hierarchy
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeSession represents browser session errors
	ErrorTypeSession ErrorType = "session"
	// ErrorTypeExport represents export serialization errors
	ErrorTypeExport ErrorType = "export"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
)

// ScrapeError represents a scraper-specific error. Every error is terminal:
// the crawl is fail-fast and never retries.
type ScrapeError struct {
	Type    ErrorType
	Stage   string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Stage, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsType reports whether err is a ScrapeError of the given type
func IsType(err error, errType ErrorType) bool {
	se, ok := err.(*ScrapeError)
	return ok && se.Type == errType
}

// New creates a new ScrapeError
func New(errType ErrorType, stage, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Stage:   stage,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, stage, message, err)
}

// NewNavigation creates a new navigation error
func NewNavigation(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeNavigation, stage, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, stage, message, err)
}

// NewSession creates a new browser session error
func NewSession(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeSession, stage, message, err)
}

// NewExport creates a new export error
func NewExport(stage, message string, err error) *ScrapeError {
	return New(ErrorTypeExport, stage, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(stage, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, stage, message, err)
}

// NewValidation creates a new validation error
func NewValidation(stage, message string) *ScrapeError {
	return New(ErrorTypeValidation, stage, message, nil)
}

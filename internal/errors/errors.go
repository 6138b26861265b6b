package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrInvalidTime     = errors.New("invalid time of day")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidGeometry = errors.New("invalid ruler geometry")
	ErrUnknownCommand  = errors.New("unknown transport command")
	ErrClosed          = errors.New("playback session closed")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrSegmentsFile    = errors.New("invalid segments file")
)

// ScrubError wraps an error with a user-friendly suggestion.
type ScrubError struct {
	Err        error
	Suggestion string
}

func (e *ScrubError) Error() string {
	return e.Err.Error()
}

func (e *ScrubError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &ScrubError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var scrubErr *ScrubError
	if errors.As(err, &scrubErr) && scrubErr.Suggestion != "" {
		return scrubErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, ErrInvalidTime):
		return "Enter a time as HH:MM:SS or HH:MM, between 00:00:00 and 24:00:00"
	case errors.Is(err, ErrInvalidDate):
		return "Enter a date as YYYY/MM/DD"
	case errors.Is(err, ErrInvalidGeometry):
		return "The ruler needs a positive width; resize the window and try again"
	case errors.Is(err, ErrUnknownCommand):
		return "Valid commands: jump-start, jump-end, step-back, step-forward, toggle-play, cycle-speed"
	case errors.Is(err, ErrClosed):
		return "The playback view was closed; open it again to continue"
	case errors.Is(err, ErrSegmentsFile) || strings.Contains(errStr, "segments"):
		return "Check the segments file; spans need start < end within 00:00 and 24:00"
	case errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config"):
		return "Run 'scrub config init' to create a configuration file"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

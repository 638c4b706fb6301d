package essay

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrValidation is matched by every submission validation error.
var ErrValidation = errors.New("invalid essay submission")

// ValidationError describes why a submission was rejected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Validate checks that topic and content are present and that the trimmed
// content has at least minLength characters.
func Validate(sub Submission, minLength int) error {
	if strings.TrimSpace(sub.Topic) == "" {
		return &ValidationError{Field: "topic", Reason: "is required"}
	}
	content := strings.TrimSpace(sub.Content)
	if content == "" {
		return &ValidationError{Field: "content", Reason: "is required"}
	}
	if n := utf8.RuneCountInString(content); n < minLength {
		return &ValidationError{
			Field:  "content",
			Reason: fmt.Sprintf("must be at least %d characters (got %d)", minLength, n),
		}
	}
	return nil
}

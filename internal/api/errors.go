package api

import (
	"fmt"
	"regexp"
	"strings"
)

// APIError is a non-2xx response, carrying the backend's message or the
// generic fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// FieldError is one field-level validation failure extracted from an
// error message.
type FieldError struct {
	Field       string
	Explanation string
}

// Match is the full "field: explanation" substring as it appeared.
func (fe FieldError) Match() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Explanation)
}

// FieldErrors extracts the validation failures for one field from an
// error message. The backend packs them as "fieldName: explanation"
// substrings inside a single message string.
func FieldErrors(fieldName, message string) []FieldError {
	if message == "" {
		return nil
	}

	pattern, err := regexp.Compile(`(?i)(?:` + regexp.QuoteMeta(fieldName) + `:\s([\w.?\s-]*))`)
	if err != nil {
		return nil
	}

	var errs []FieldError
	for _, match := range pattern.FindAllStringSubmatch(message, -1) {
		errs = append(errs, FieldError{
			Field:       fieldName,
			Explanation: strings.TrimSpace(match[1]),
		})
	}
	return errs
}

package errors

import (
	"strings"
	"unicode"
)

// ValidateFieldName validates a column/field name used in a label layout.
// It rejects names that are empty, unreasonably long, or contain control
// characters, which would otherwise surface as confusing render output.
func ValidateFieldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidField, "field name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidField, "field name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidField, "field name contains invalid control characters")
		}
	}

	return nil
}

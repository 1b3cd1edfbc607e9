package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidatePositive checks that a configured dimension is a finite positive number.
func ValidatePositive(code Code, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(code, "%s must be a finite number, got %v", name, v)
	}
	if v <= 0 {
		return New(code, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateAtLeast checks that an integer setting is not below min.
func ValidateAtLeast(code Code, name string, v, min int) error {
	if v < min {
		return New(code, "%s must be at least %d, got %d", name, min, v)
	}
	return nil
}

// ValidateName validates a palette item or component type name.
//
// The rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No surrounding whitespace
//   - Maximum length of 128 characters
func ValidateName(code Code, name string) error {
	if name == "" {
		return New(code, "name cannot be empty")
	}

	if len(name) > 128 {
		return New(code, "name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(code, "name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(code, "name %q has leading or trailing whitespace", name)
	}

	return nil
}

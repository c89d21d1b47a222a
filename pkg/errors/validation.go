package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDimension rejects NaN, infinite and negative extents.
// name is used in the message, e.g. "panel width".
func ValidateDimension(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidGeometry, "%s must be a finite number", name)
	}
	if v < 0 {
		return New(ErrCodeInvalidGeometry, "%s cannot be negative (got %g)", name, v)
	}
	return nil
}

// ValidateCoordinate rejects NaN and infinite coordinates. Negative values
// are allowed: a scrolled body reports a negative origin.
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidGeometry, "%s must be a finite number", name)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}

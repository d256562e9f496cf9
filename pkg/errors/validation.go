package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxNameLength bounds node labels so a single label cannot blow up the SVG.
const maxNameLength = 256

// ValidateNodeName validates a tree node label.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters (labels are emitted as SVG text)
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeMalformedNode, "node name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeMalformedNode, "node name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedNode, "node name %q contains control characters", name)
		}
	}

	return nil
}

// ValidateFinite rejects NaN and infinite values for the named field.
func ValidateFinite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeMalformedNode, "%s must be finite, got %v", field, v)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// IsURL reports whether s looks like an http(s) URL rather than a file path.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

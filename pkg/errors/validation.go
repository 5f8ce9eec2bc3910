package errors

import (
	"math"
	"regexp"
	"unicode"
)

// maxIDSuffixLength bounds the identifier suffix so generated ids stay readable.
const maxIDSuffixLength = 64

// idSuffixRegex matches suffixes that are safe inside an XML id and a url(#...) reference.
var idSuffixRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateRadius checks that the stamp radius is a finite positive number.
func ValidateRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return New(ErrCodeInvalidConfig, "radius must be finite")
	}
	if r <= 0 {
		return New(ErrCodeInvalidConfig, "radius must be positive, got %g", r)
	}
	return nil
}

// ValidateBlur checks that the blur standard deviation is finite and not negative.
func ValidateBlur(b float64) error {
	if math.IsNaN(b) || math.IsInf(b, 0) {
		return New(ErrCodeInvalidConfig, "blur must be finite")
	}
	if b < 0 {
		return New(ErrCodeInvalidConfig, "blur cannot be negative, got %g", b)
	}
	return nil
}

// ValidateMaxWeight checks that the opacity divisor is a finite positive number.
func ValidateMaxWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidConfig, "max weight must be finite")
	}
	if w <= 0 {
		return New(ErrCodeInvalidConfig, "max weight must be positive, got %g", w)
	}
	return nil
}

// ValidateIDSuffix validates an identifier suffix. The empty suffix is valid
// and means "no suffix".
//
// Validation rules:
//   - Maximum length of 64 characters
//   - Only ASCII letters, digits, '-' and '_'
func ValidateIDSuffix(suffix string) error {
	if suffix == "" {
		return nil
	}
	if len(suffix) > maxIDSuffixLength {
		return New(ErrCodeInvalidIDSuffix, "id suffix too long (max %d characters)", maxIDSuffixLength)
	}
	if !idSuffixRegex.MatchString(suffix) {
		return New(ErrCodeInvalidIDSuffix, "id suffix contains invalid characters: %q", suffix)
	}
	return nil
}

// ValidateFieldName validates a record field name used by the record mapping.
func ValidateFieldName(name string) error {
	if name == "" {
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

// ValidateStops validates gradient stop offsets: at least one stop, every
// offset within [0, 1], offsets non-decreasing.
func ValidateStops(offsets []float64) error {
	if len(offsets) == 0 {
		return New(ErrCodeInvalidGradient, "gradient needs at least one stop")
	}
	prev := math.Inf(-1)
	for i, o := range offsets {
		if math.IsNaN(o) || o < 0 || o > 1 {
			return New(ErrCodeInvalidGradient, "stop %d offset %g outside [0, 1]", i, o)
		}
		if o < prev {
			return New(ErrCodeInvalidGradient, "stop %d offset %g is smaller than the previous stop %g", i, o, prev)
		}
		prev = o
	}
	return nil
}

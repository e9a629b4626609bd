package errors

import (
	"strings"
	"unicode"
)

// maxDimension bounds generated images to keep a single render's memory
// footprint reasonable.
const maxDimension = 8192

// ValidateDimensions checks the requested output size.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidConfig, "dimensions must be positive, got %dx%d", width, height)
	}
	if width > maxDimension || height > maxDimension {
		return New(ErrCodeInvalidConfig, "dimensions too large (max %d), got %dx%d", maxDimension, width, height)
	}
	return nil
}

// ValidateFontList checks that at least one font identifier is given and
// that none of them is blank.
func ValidateFontList(fonts []string) error {
	if len(fonts) == 0 {
		return New(ErrCodeInvalidConfig, "at least one font is required")
	}
	for i, f := range fonts {
		if strings.TrimSpace(f) == "" {
			return New(ErrCodeInvalidConfig, "font #%d is empty", i+1)
		}
	}
	return nil
}

// ValidateFontSizes checks that at least one size is given and that all
// sizes are positive pixel values.
func ValidateFontSizes(sizes []int) error {
	if len(sizes) == 0 {
		return New(ErrCodeInvalidConfig, "at least one font size is required")
	}
	for _, s := range sizes {
		if s <= 0 {
			return New(ErrCodeInvalidConfig, "font sizes must be positive, got %d", s)
		}
	}
	return nil
}

// ValidateText rejects control characters, which have no visible glyph
// and would only produce empty masks.
//
// The empty string is valid and renders the background alone.
func ValidateText(text string) error {
	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "text contains control character %U", r)
		}
	}
	return nil
}

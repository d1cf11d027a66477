package validation

import (
	"strings"

	apperrors "insight-agent/internal/errors"
)

// EmptyTextMessage is returned when the submitted text has no content.
const EmptyTextMessage = "Text cannot be empty"

// TextValidator handles input validation for text analysis
type TextValidator struct{}

// NewTextValidator creates a new text validator
func NewTextValidator() *TextValidator {
	return &TextValidator{}
}

// ValidateText trims surrounding whitespace and rejects text that is empty
// afterwards. The trimmed text is returned on success.
func (v *TextValidator) ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", apperrors.NewValidationError(EmptyTextMessage, nil)
	}
	return trimmed, nil
}

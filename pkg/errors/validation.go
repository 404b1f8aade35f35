package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxNodeIDLength bounds node IDs accepted from patches.
const maxNodeIDLength = 256

// ValidateCanvasID checks that id is a UUID as issued by the canvas store.
// Store backends use the ID as a file name or document key, so anything else
// is rejected before it reaches them.
func ValidateCanvasID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "canvas id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidID, err, "invalid canvas id: %q", id)
	}
	return nil
}

// ValidateNodeID validates a node ID received from a renderer callback.
//
// The validation rules:
//   - No empty IDs
//   - Maximum length of 256 characters
//   - No control characters
//   - No path separators
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "node id cannot be empty")
	}
	if len(id) > maxNodeIDLength {
		return New(ErrCodeInvalidID, "node id too long (max %d characters)", maxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "node id contains invalid control characters")
		}
	}
	if strings.ContainsAny(id, "/\\") {
		return New(ErrCodeInvalidID, "node id cannot contain path separators")
	}
	return nil
}

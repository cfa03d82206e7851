package errors

import (
	"strings"
	"unicode"
)

// ValidatePageID validates a page identifier for safety and correctness.
// It rejects ids that could break the document format or the filesystem
// paths derived from them.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters
//   - No whitespace
//   - Maximum length of 128 characters
func ValidatePageID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPageID, "page id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidPageID, "page id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPageID, "page id contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidPageID, "page id cannot contain whitespace")
		}
	}

	return nil
}

// ValidateDocumentPath validates a document file path.
// It ensures the path is non-empty and carries a recognized extension.
// NML documents use .nml, but hand-edited .xml files are accepted too.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "document path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "document path contains invalid characters")
		}
	}

	lower := strings.ToLower(path)
	if !strings.HasSuffix(lower, ".nml") && !strings.HasSuffix(lower, ".xml") {
		return New(ErrCodeInvalidPath, "document must have a .nml or .xml extension: %q", path)
	}

	return nil
}

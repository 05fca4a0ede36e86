package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxFilenameLength is the longest upload filename accepted.
const MaxFilenameLength = 255

// spreadsheetExts lists the upload extensions accepted by the reader.
var spreadsheetExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

// ValidateUploadFilename validates the filename of an uploaded spreadsheet.
// It ensures the name is a simple basename with a spreadsheet extension.
//
// Validation rules:
//   - Filename cannot be empty
//   - Maximum length of 255 characters
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Extension must be .xlsx or .xlsm (case-insensitive)
func ValidateUploadFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFilename, "filename cannot be empty")
	}

	if len(name) > MaxFilenameLength {
		return New(ErrCodeInvalidFilename, "filename too long (max %d characters)", MaxFilenameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidFilename, "filename cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidFilename, "filename cannot contain path traversal sequences (..)")
	}

	ext := strings.ToLower(filepath.Ext(name))
	if !spreadsheetExts[ext] {
		return New(ErrCodeInvalidFilename, "unsupported file type %q (expected .xlsx)", ext)
	}

	return nil
}

// ValidateSessionID validates a session identifier taken from a URL.
// Session IDs are UUID strings; anything else is rejected before it reaches
// a store.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session id cannot be empty")
	}
	if len(id) != 36 {
		return New(ErrCodeInvalidInput, "malformed session id")
	}
	for i, r := range id {
		switch i {
		case 8, 13, 18, 23:
			if r != '-' {
				return New(ErrCodeInvalidInput, "malformed session id")
			}
		default:
			if !unicode.Is(unicode.ASCII_Hex_Digit, r) {
				return New(ErrCodeInvalidInput, "malformed session id")
			}
		}
	}
	return nil
}

package audio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrEmptyFile is returned before any upload or model call is attempted.
var ErrEmptyFile = errors.New("invalid or empty audio file")

// supportedTypes are the MIME types accepted as-is. Anything else is
// re-resolved from the file extension.
var supportedTypes = map[string]bool{
	"audio/wav":   true,
	"audio/mp3":   true,
	"audio/mpeg":  true,
	"audio/mp4":   true,
	"audio/x-m4a": true,
	"audio/webm":  true,
}

// Validate rejects zero-byte uploads before any network call is made.
func Validate(size int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	return nil
}

// ResolveContentType returns a supported content type for the upload. The
// declared type wins when it is already supported; otherwise the type is
// inferred from the filename extension.
func ResolveContentType(fileName, declared string) (string, error) {
	if supportedTypes[declared] {
		return declared, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	switch ext {
	case "wav", "wave":
		return "audio/wav", nil
	case "mp3", "mpeg":
		return "audio/mpeg", nil
	case "m4a":
		return "audio/x-m4a", nil
	case "mp4":
		return "audio/mp4", nil
	case "webm":
		return "audio/webm", nil
	default:
		return "", fmt.Errorf("unsupported file type: %q, use WAV, MP3, M4A or WebM", ext)
	}
}

// Extension returns the lowercase filename extension including the dot,
// falling back to .wav when the name carries none.
func Extension(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return ".wav"
	}
	return ext
}

package distilerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIOError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOError("read", "/tmp/x.go", cause)

	assert.Contains(t, err.Error(), "read")
	assert.Contains(t, err.Error(), "/tmp/x.go")
	assert.True(t, errors.Is(err, cause))
}

func TestParseError_Message(t *testing.T) {
	err := NewParseError("rust", "main.rs", "grammar load failed", nil)
	assert.Contains(t, err.Error(), "rust")
	assert.Contains(t, err.Error(), "main.rs")
	assert.Contains(t, err.Error(), "grammar load failed")
}

func TestParseError_NoPath(t *testing.T) {
	err := NewParseError("rust", "", "grammar load failed", nil)
	assert.NotContains(t, err.Error(), " in ")
}

func TestUnsupportedLanguageError_Message(t *testing.T) {
	err := NewUnsupportedLanguageError("data.txt", ".txt")
	assert.Contains(t, err.Error(), "data.txt")
	assert.Contains(t, err.Error(), ".txt")
}

func TestConfigError_Message(t *testing.T) {
	err := NewConfigError("root is not a directory")
	assert.Contains(t, err.Error(), "root is not a directory")
}

func TestUnknownError_UnwrapAndMessage(t *testing.T) {
	cause := errors.New("boom")
	err := NewUnknownError(cause)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "boom")
}

package format

import (
	"encoding/json"

	"github.com/standardbeagle/distil/internal/ir"
)

// JSONFormatter renders File/Node trees as pretty-printed JSON, relying
// on ir's per-node MarshalJSON to inject the "kind" discriminator.
type JSONFormatter struct{}

// NewJSONFormatter builds a JSONFormatter.
func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

// FormatFile renders file as a pretty-printed JSON object.
func (f *JSONFormatter) FormatFile(file *ir.File) (string, error) {
	b, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// FormatFiles renders files as a pretty-printed JSON array.
func (f *JSONFormatter) FormatFiles(files []*ir.File) (string, error) {
	b, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

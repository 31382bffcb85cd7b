package format

import (
	"encoding/json"
	"strings"

	"github.com/standardbeagle/distil/internal/ir"
)

// JSONLFormatter renders one compact JSON object per line, always
// compact (no pretty-printing) per the newline-delimited-JSON contract.
type JSONLFormatter struct{}

// NewJSONLFormatter builds a JSONLFormatter.
func NewJSONLFormatter() *JSONLFormatter { return &JSONLFormatter{} }

// FormatFile renders file as one compact JSON line.
func (f *JSONLFormatter) FormatFile(file *ir.File) (string, error) {
	b, err := json.Marshal(file)
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}

// FormatFiles renders files as one compact JSON object per line,
// always newline-terminated.
func (f *JSONLFormatter) FormatFiles(files []*ir.File) (string, error) {
	var out strings.Builder
	for _, file := range files {
		b, err := json.Marshal(file)
		if err != nil {
			return "", err
		}
		out.Write(b)
		out.WriteByte('\n')
	}
	return out.String(), nil
}

package format

import (
	"fmt"

	"github.com/standardbeagle/distil/internal/ir"
)

// Formatter is the common contract every output projection satisfies:
// a pure function from IR to text, for one file or for a whole set.
type Formatter interface {
	FormatFile(file *ir.File) (string, error)
	FormatFiles(files []*ir.File) (string, error)
}

// ByName resolves one of the five closed-set format identifiers
// ("text", "md"/"markdown", "json", "jsonl", "xml") to a Formatter.
func ByName(name string) (Formatter, error) {
	switch name {
	case "text":
		return NewTextFormatter(), nil
	case "md", "markdown":
		return NewMarkdownFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "jsonl":
		return NewJSONLFormatter(), nil
	case "xml":
		return NewXMLFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q: must be one of text, md, json, jsonl, xml", name)
	}
}

// ExtensionFor returns the conventional file extension for a format
// name, used when auto-generating an output path.
func ExtensionFor(name string) string {
	switch name {
	case "md", "markdown":
		return "md"
	case "json":
		return "json"
	case "jsonl":
		return "jsonl"
	case "xml":
		return "xml"
	default:
		return "txt"
	}
}

package format

import (
	"fmt"
	"strings"

	"github.com/standardbeagle/distil/internal/ir"
)

// MarkdownFormatter wraps TextFormatter's per-file body in a fenced code
// block with a language identifier derived from the file's extension.
type MarkdownFormatter struct {
	text *TextFormatter
}

// NewMarkdownFormatter builds a MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{text: NewTextFormatter()}
}

// FormatFile renders file.Path as a heading followed by a fenced code
// block containing the text formatter's body (the <file>/</file>
// delimiters stripped).
func (f *MarkdownFormatter) FormatFile(file *ir.File) (string, error) {
	body, err := f.text.FormatFile(file)
	if err != nil {
		return "", err
	}
	content := extractFileContent(body, file.Path)

	var out strings.Builder
	fmt.Fprintf(&out, "### %s\n\n", file.Path)
	lang := languageFromPath(file.Path)
	fmt.Fprintf(&out, "```%s\n", lang)
	out.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		out.WriteByte('\n')
	}
	out.WriteString("```\n")
	return out.String(), nil
}

// FormatFiles renders every file, separated by two blank lines.
func (f *MarkdownFormatter) FormatFiles(files []*ir.File) (string, error) {
	var out strings.Builder
	for i, file := range files {
		if i > 0 {
			out.WriteString("\n\n")
		}
		body, err := f.FormatFile(file)
		if err != nil {
			return "", err
		}
		out.WriteString(body)
	}
	return out.String(), nil
}

// extractFileContent pulls the text between <file path="...">/</file>
// delimiters, falling back to the raw text if the tags aren't found.
func extractFileContent(text, path string) string {
	startTag := fmt.Sprintf("<file path=%q>", path)
	endTag := "</file>"

	startIdx := strings.Index(text, startTag)
	if startIdx < 0 {
		return text
	}
	contentStart := startIdx + len(startTag)
	if contentStart < len(text) && text[contentStart] == '\n' {
		contentStart++
	}
	endIdx := strings.Index(text[contentStart:], endTag)
	if endIdx < 0 {
		return text
	}
	return text[contentStart : contentStart+endIdx]
}

var extensionLanguages = map[string]string{
	"py":    "python",
	"go":    "go",
	"ts":    "typescript",
	"tsx":   "typescript",
	"js":    "javascript",
	"jsx":   "javascript",
	"java":  "java",
	"cs":    "csharp",
	"cpp":   "cpp",
	"cc":    "cpp",
	"cxx":   "cpp",
	"hpp":   "cpp",
	"hxx":   "cpp",
	"h":     "cpp",
	"rb":    "ruby",
	"rs":    "rust",
	"swift": "swift",
	"kt":    "kotlin",
	"kts":   "kotlin",
	"php":   "php",
	"c":     "c",
}

// languageFromPath maps a file extension to a Markdown fence language
// identifier, falling back to the bare extension for anything unlisted.
func languageFromPath(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	ext := path[idx+1:]
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	return ext
}

// Package rpcserver implements a line-delimited JSON-RPC 2.0 stdio
// dispatcher: four methods, three error codes, no state beyond the
// Processor/registry it wraps. It is deliberately thin — a stateless
// front door onto the same core the CLI uses, not a tool-calling
// protocol server.
package rpcserver

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/distil/internal/diag"
	"github.com/standardbeagle/distil/internal/distilerr"
	"github.com/standardbeagle/distil/internal/format"
	"github.com/standardbeagle/distil/internal/ir"
	"github.com/standardbeagle/distil/internal/langs"
	"github.com/standardbeagle/distil/internal/options"
	"github.com/standardbeagle/distil/internal/pipeline"
	"github.com/standardbeagle/distil/internal/version"
)

// Error codes for the closed JSON-RPC method set this server exposes.
const (
	CodeMethodNotFound  = -32601
	CodeInvalidParams   = -32602
	CodeOperationFailed = -32000
)

// Request is one line of JSON-RPC 2.0 input.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Response is one line of JSON-RPC 2.0 output.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Error is a JSON-RPC 2.0 error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcOptions mirrors options.ProcessOptions for wire transport, plus the
// output format selection that only the RPC/CLI boundary needs.
type rpcOptions struct {
	IncludePublic    *bool `json:"include_public,omitempty"`
	IncludeProtected *bool `json:"include_protected,omitempty"`
	IncludeInternal  *bool `json:"include_internal,omitempty"`
	IncludePrivate   *bool `json:"include_private,omitempty"`

	IncludeComments       *bool `json:"include_comments,omitempty"`
	IncludeDocstrings     *bool `json:"include_docstrings,omitempty"`
	IncludeImplementation *bool `json:"include_implementation,omitempty"`
	IncludeImports        *bool `json:"include_imports,omitempty"`
	IncludeAnnotations    *bool `json:"include_annotations,omitempty"`
	IncludeFields         *bool `json:"include_fields,omitempty"`
	IncludeMethods        *bool `json:"include_methods,omitempty"`

	RawMode   *bool `json:"raw_mode,omitempty"`
	Workers   *int  `json:"workers,omitempty"`
	Recursive *bool `json:"recursive,omitempty"`

	FilePathType       string `json:"file_path_type,omitempty"`
	RelativePathPrefix string `json:"relative_path_prefix,omitempty"`
	BasePath           string `json:"base_path,omitempty"`

	IncludePatterns []string `json:"include_patterns,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
	ContinueOnError bool     `json:"continue_on_error,omitempty"`

	Format string `json:"format,omitempty"`
}

func (r rpcOptions) toProcessOptions() options.ProcessOptions {
	o := options.Default()
	if r.IncludePublic != nil {
		o.IncludePublic = *r.IncludePublic
	}
	if r.IncludeProtected != nil {
		o.IncludeProtected = *r.IncludeProtected
	}
	if r.IncludeInternal != nil {
		o.IncludeInternal = *r.IncludeInternal
	}
	if r.IncludePrivate != nil {
		o.IncludePrivate = *r.IncludePrivate
	}
	if r.IncludeComments != nil {
		o.IncludeComments = *r.IncludeComments
	}
	if r.IncludeDocstrings != nil {
		o.IncludeDocstrings = *r.IncludeDocstrings
	}
	if r.IncludeImplementation != nil {
		o.IncludeImplementation = *r.IncludeImplementation
	}
	if r.IncludeImports != nil {
		o.IncludeImports = *r.IncludeImports
	}
	if r.IncludeAnnotations != nil {
		o.IncludeAnnotations = *r.IncludeAnnotations
	}
	if r.IncludeFields != nil {
		o.IncludeFields = *r.IncludeFields
	}
	if r.IncludeMethods != nil {
		o.IncludeMethods = *r.IncludeMethods
	}
	if r.RawMode != nil {
		o.RawMode = *r.RawMode
	}
	if r.Workers != nil {
		o.Workers = *r.Workers
	}
	if r.Recursive != nil {
		o.Recursive = *r.Recursive
	}
	if r.FilePathType == "absolute" {
		o.FilePathType = options.PathAbsolute
	}
	o.RelativePathPrefix = r.RelativePathPrefix
	o.BasePath = r.BasePath
	o.IncludePatterns = r.IncludePatterns
	o.ExcludePatterns = r.ExcludePatterns
	o.ContinueOnError = r.ContinueOnError
	return o
}

func (r rpcOptions) format() string {
	if r.Format == "" {
		return "text"
	}
	return r.Format
}

type distilParams struct {
	Path    string     `json:"path"`
	Options rpcOptions `json:"options"`
}

type listDirFilters struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

type listDirParams struct {
	Path    string          `json:"path"`
	Filters *listDirFilters `json:"filters,omitempty"`
}

type dirEntry struct {
	Path   string `json:"path"`
	IsFile bool   `json:"is_file"`
	IsDir  bool   `json:"is_dir"`
	Size   int64  `json:"size"`
}

type capabilities struct {
	Version            string   `json:"version"`
	Operations         []string `json:"operations"`
	SupportedLanguages []string `json:"supported_languages"`
	SupportedFormats   []string `json:"supported_formats"`
}

// Server dispatches JSON-RPC requests against a Processor built from a
// language registry.
type Server struct {
	registry  *langs.Registry
	processor *pipeline.Processor
}

// NewServer builds a Server against registry.
func NewServer(registry *langs.Registry) *Server {
	return &Server{registry: registry, processor: pipeline.New(registry)}
}

// Serve reads one JSON-RPC request per line from in and writes one
// response per line to out, until in is exhausted or ctx is done. Lines
// that don't parse as JSON-RPC are skipped with a diagnostic, not
// treated as fatal.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			diag.Printf("rpcserver", "skipping non-JSON-RPC line: %v", err)
			continue
		}

		resp := s.dispatch(ctx, req)
		encoded, err := json.Marshal(resp)
		if err != nil {
			diag.Printf("rpcserver", "failed to encode response: %v", err)
			continue
		}
		writer.Write(encoded)
		writer.WriteByte('\n')
		writer.Flush()
	}
	return scanner.Err()
}

func (s *Server) dispatch(ctx context.Context, req Request) Response {
	resp := Response{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "distil_directory":
		result, err := s.distilDirectory(ctx, req.Params)
		setResult(&resp, result, err)
	case "distil_file":
		result, err := s.distilFile(req.Params)
		setResult(&resp, result, err)
	case "list_dir":
		result, err := s.listDir(req.Params)
		setResult(&resp, result, err)
	case "get_capa":
		resp.Result = s.getCapa()
	default:
		resp.Error = &Error{Code: CodeMethodNotFound, Message: "unknown method: " + req.Method}
	}
	return resp
}

func setResult(resp *Response, result interface{}, err error) {
	if err == nil {
		resp.Result = result
		return
	}
	switch err.(type) {
	case *distilerr.ConfigError, *distilerr.UnsupportedLanguageError:
		resp.Error = &Error{Code: CodeInvalidParams, Message: err.Error()}
	default:
		resp.Error = &Error{Code: CodeOperationFailed, Message: err.Error()}
	}
}

func (s *Server) distilDirectory(ctx context.Context, raw json.RawMessage) (string, error) {
	var p distilParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", &distilerr.ConfigError{Message: "invalid params: " + err.Error()}
	}
	formatter, err := format.ByName(p.Options.format())
	if err != nil {
		return "", &distilerr.ConfigError{Message: err.Error()}
	}
	dir, err := s.processor.ProcessDirectory(ctx, p.Path, p.Options.toProcessOptions())
	if err != nil {
		return "", err
	}
	return formatter.FormatFiles(ir.ExtractFiles(dir))
}

func (s *Server) distilFile(raw json.RawMessage) (string, error) {
	var p distilParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return "", &distilerr.ConfigError{Message: "invalid params: " + err.Error()}
	}
	formatter, err := format.ByName(p.Options.format())
	if err != nil {
		return "", &distilerr.ConfigError{Message: err.Error()}
	}
	file, err := s.processor.ProcessFile(p.Path, p.Options.toProcessOptions())
	if err != nil {
		return "", err
	}
	return formatter.FormatFile(file)
}

func (s *Server) listDir(raw json.RawMessage) ([]dirEntry, error) {
	var p listDirParams
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &distilerr.ConfigError{Message: "invalid params: " + err.Error()}
	}
	entries, err := os.ReadDir(p.Path)
	if err != nil {
		return nil, distilerr.NewIOError("readdir", p.Path, err)
	}

	var include, exclude []string
	if p.Filters != nil {
		include, exclude = p.Filters.Include, p.Filters.Exclude
	}

	var out []dirEntry
	for _, e := range entries {
		name := e.Name()
		if !matchesFilters(name, include, exclude) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, dirEntry{
			Path:   name,
			IsFile: !e.IsDir(),
			IsDir:  e.IsDir(),
			Size:   info.Size(),
		})
	}
	return out, nil
}

// matchesFilters reports whether name should be included in a list_dir
// response given optional include/exclude glob filters.
func matchesFilters(name string, include, exclude []string) bool {
	for _, pat := range exclude {
		if ok, _ := doublestar.Match(pat, name); ok {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pat := range include {
		if ok, _ := doublestar.Match(pat, name); ok {
			return true
		}
	}
	return false
}

func (s *Server) getCapa() capabilities {
	var langTags []string
	for _, e := range s.registry.All() {
		langTags = append(langTags, e.LanguageTag())
	}
	return capabilities{
		Version:            version.Version,
		Operations:         []string{"distil_directory", "distil_file", "list_dir", "get_capa"},
		SupportedLanguages: langTags,
		SupportedFormats:   []string{"text", "md", "json", "jsonl", "xml"},
	}
}

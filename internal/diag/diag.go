// Package diag is the library's opt-in diagnostic channel: a package-level,
// mutex-protected writer that stays silent until a caller (the CLI or the
// RPC server) explicitly enables it. Nothing under internal/pipeline,
// internal/langs or internal/stripper imports a logging framework or diag;
// the CLI and the RPC server are the callers, and the host process wires
// diag up or leaves it dark.
package diag

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	output  io.Writer
	enabled bool
)

// SetEnabled turns diagnostic output on or off. Disabled by default so the
// core library produces no stdio side effects when embedded.
func SetEnabled(v bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = v
}

// SetOutput sets the writer diagnostics are sent to. Pass nil to discard
// output even when enabled.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether diagnostics are currently switched on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

func writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	if !enabled {
		return nil
	}
	return output
}

// Printf writes a formatted diagnostic line when enabled, prefixed with a
// bracketed tag identifying the subsystem (e.g. "walker", "pipeline").
func Printf(tag, format string, args ...interface{}) {
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[%s] "+format+"\n", append([]interface{}{tag}, args...)...)
}

// Println writes a diagnostic line built from args, tagged by subsystem.
func Println(tag string, args ...interface{}) {
	w := writer()
	if w == nil {
		return
	}
	fmt.Fprintf(w, "[%s] ", tag)
	fmt.Fprintln(w, args...)
}

// UseStderr is a convenience for CLI callers: enables diagnostics and
// routes them to os.Stderr.
func UseStderr() {
	SetOutput(os.Stderr)
	SetEnabled(true)
}

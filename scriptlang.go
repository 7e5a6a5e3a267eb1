// Package scriptlang re-exports the interpreter's external interface for
// callers that don't want to import internal/runtime directly.
package scriptlang

import (
	"io"

	"scriptlang/internal/runtime"
)

// Interpret reads source from r, executes it, and writes program output
// (or a diagnostic message on failure) to w. It returns true iff execution
// completed without error.
func Interpret(r io.Reader, w io.Writer) bool {
	return runtime.Interpret(r, w)
}

package runtime

import (
	"fmt"
	"io"

	"scriptlang/internal/ast"
	"scriptlang/internal/lexer"
	"scriptlang/internal/parser"
)

// Interpret reads source from r, executes it, and writes program output
// (or a diagnostic message on failure) to w. It returns true iff execution
// completed without error. This is the language's single external
// interface, mirroring the original implementation's
// bool interpret(istream&, ostream&).
func Interpret(r io.Reader, w io.Writer) bool {
	src, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(w, "Runtime error (generic): %s", err.Error())
		return false
	}

	l := lexer.New(string(src), "<input>")
	tokens, diags := l.Tokenize()
	if len(diags) > 0 {
		fmt.Fprintf(w, "Runtime error (specific): %s", diags[0].String())
		return false
	}

	block, perr := parser.Parse(tokens)
	if perr != nil {
		fmt.Fprintf(w, "Runtime error (specific): %s", perr.Error())
		return false
	}

	return runGuarded(block, w)
}

// runGuarded executes block and funnels every runtime error, however it
// surfaces, through the two-tier "Runtime error (specific|generic): "
// message that the single entry point promises.
func runGuarded(block *ast.Block, w io.Writer) (ok bool) {
	interp := NewInterpreter(w)
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if rerr, isRE := r.(*RuntimeError); isRE {
				fmt.Fprintf(w, "Runtime error (specific): %s", rerr.Message)
				return
			}
			if e, isErr := r.(error); isErr {
				fmt.Fprintf(w, "Runtime error (generic): %s", e.Error())
				return
			}
			fmt.Fprintf(w, "Runtime error (generic): %v", r)
		}
	}()

	if err := interp.Run(block); err != nil {
		fmt.Fprintf(w, "Runtime error (specific): %s", err.Error())
		return false
	}
	return true
}

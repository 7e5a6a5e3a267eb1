package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"scriptlang/internal/diag"
	"scriptlang/internal/lexer"
	"scriptlang/internal/parser"
	"scriptlang/internal/ast"
	"scriptlang"
)

func interpretStream(r io.Reader, w io.Writer) bool {
	return scriptlang.Interpret(r, w)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDiags(diags []diag.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func tokensCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: script tokens <file>")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	l := lexer.New(string(src), args[0])
	tokens, diags := l.Tokenize()
	if len(diags) > 0 {
		printDiags(diags)
		os.Exit(1)
	}
	type tokOut struct {
		Kind   string `json:"kind"`
		Lexeme string `json:"lexeme"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}
	out := make([]tokOut, len(tokens))
	for i, t := range tokens {
		out[i] = tokOut{Kind: t.Kind.String(), Lexeme: t.Lexeme, Line: t.Span.Start.Line, Column: t.Span.Start.Column}
	}
	return printJSON(os.Stdout, out)
}

func parseCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: script parse <file>")
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	l := lexer.New(string(src), args[0])
	tokens, diags := l.Tokenize()
	if len(diags) > 0 {
		printDiags(diags)
		os.Exit(1)
	}
	block, perr := parser.Parse(tokens)
	if perr != nil {
		fmt.Fprintln(os.Stderr, perr)
		os.Exit(1)
	}
	return printJSON(os.Stdout, ast.NodeToMap(block))
}

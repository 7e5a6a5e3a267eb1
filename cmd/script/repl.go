package main

import (
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"scriptlang/internal/lexer"
	"scriptlang/internal/token"
)

const (
	colorReset  = "\033[0m"
	colorPrompt = "\033[36m"
	colorError  = "\033[31m"
)

var blockOpeners = map[token.Kind]bool{
	token.KW_IF:       true,
	token.KW_WHILE:    true,
	token.KW_FOR:      true,
	token.KW_FUNCTION:  true,
}

// pendingDepth reports how many "end <keyword>" closers the statements
// typed so far still owe, by tokenizing what has been entered and
// counting block openers against KW_END. Lexical errors are treated as
// "not yet balanced" so the user can keep typing.
func pendingDepth(src string) int {
	l := lexer.New(src, "<repl>")
	tokens, diags := l.Tokenize()
	if len(diags) > 0 {
		return 1
	}
	depth := 0
	for i := 0; i < len(tokens); i++ {
		k := tokens[i].Kind
		if k == token.KW_END {
			depth--
			i++ // the keyword naming the closed block is not an opener
			continue
		}
		if k == token.KW_IF && i > 0 && tokens[i-1].Kind == token.KW_ELSE {
			continue // "else if" continues the enclosing if block
		}
		if blockOpeners[k] {
			depth++
		}
	}
	if depth < 0 {
		depth = 0
	}
	return depth
}

func replCommand() error {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = home + "/.scriptlang_history"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            colorPrompt + "script> " + colorReset,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	var buf strings.Builder
	for {
		prompt := colorPrompt + "script> " + colorReset
		if buf.Len() > 0 {
			prompt = colorPrompt + "   ...> " + colorReset
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			buf.Reset()
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		buf.WriteString(line)
		buf.WriteByte('\n')

		if pendingDepth(buf.String()) > 0 {
			continue
		}

		src := buf.String()
		buf.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}

		interpretStream(strings.NewReader(src), os.Stdout)
	}
}

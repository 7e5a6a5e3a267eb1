// Command script is the CLI front end for the interpreter: it can run a
// source file, dump its token stream or AST as JSON for debugging, or
// drop into an interactive REPL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "tokens":
		err = tokensCommand(os.Args[2:])
	case "parse":
		err = parseCommand(os.Args[2:])
	case "repl":
		err = replCommand()
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage:
  script run <file>     execute a source file
  script tokens <file>  print the token stream as JSON
  script parse <file>   print the AST as JSON
  script repl           start an interactive shell`)
}

func runCommand(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: script run <file>")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	ok := interpretStream(f, os.Stdout)
	if !ok {
		os.Exit(1)
	}
	return nil
}

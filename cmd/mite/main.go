package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"mite/interpreter-go/pkg/driver"
	"mite/interpreter-go/pkg/interpreter"
	"mite/interpreter-go/pkg/lexer"
	"mite/interpreter-go/pkg/parser"
	"mite/interpreter-go/pkg/runtime"
)

const cliToolVersion = "mite-cli 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runProgram(args)
	case "ast":
		return runAST(args)
	case "test":
		return runFixtures(args)
	case "repl":
		return runREPL(args)
	default:
		// A bare file argument works like `mite run <file>`. Getopts skips
		// argv[0], so push the subcommand name back on.
		return runProgram(append([]string{"run"}, args...))
	}
}

// runProgram executes a program from a file or -e source. -r prints the
// display form of the final value.
func runProgram(args []string) int {
	opts, optind, err := getopt.Getopts(args, "e:r")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	var inline string
	showResult := false
	for _, optV := range opts {
		switch optV.Option {
		case 'e':
			inline = optV.Value
		case 'r':
			showResult = true
		}
	}

	source, err := readSource(inline, args[optind:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	program, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeFailure(err))
		return 1
	}
	val, err := interpreter.New().Evaluate(program)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeFailure(err))
		return 1
	}
	if showResult {
		fmt.Fprintln(os.Stdout, runtime.FormatValue(val))
	}
	return 0
}

// runAST parses a program and dumps the tree as indented JSON.
func runAST(args []string) int {
	opts, optind, err := getopt.Getopts(args, "e:")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	var inline string
	for _, optV := range opts {
		switch optV.Option {
		case 'e':
			inline = optV.Value
		}
	}

	source, err := readSource(inline, args[optind:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	program, err := parser.Parse(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, describeFailure(err))
		return 1
	}
	dump, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode tree: %v\n", err)
		return 1
	}
	fmt.Fprintln(os.Stdout, string(dump))
	return 0
}

// runFixtures discovers fixture files under a directory and runs each one
// through a fresh interpreter. -v also reports passing fixtures.
func runFixtures(args []string) int {
	opts, optind, err := getopt.Getopts(args, "v")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	verbose := false
	for _, optV := range opts {
		switch optV.Option {
		case 'v':
			verbose = true
		}
	}

	rest := args[optind:]
	root := "."
	switch len(rest) {
	case 0:
	case 1:
		root = rest[0]
	default:
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(rest[1:], " "))
		return 1
	}

	fixtures, err := driver.Discover(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	failures := 0
	for _, fixture := range fixtures {
		if err := fixture.Run(); err != nil {
			failures++
			fmt.Fprintf(os.Stdout, "%s %s (%s)\n", color.RedString("FAIL"), fixture.Description, fixture.Path)
			fmt.Fprintf(os.Stdout, "     %v\n", err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stdout, "%s %s\n", color.GreenString("PASS"), fixture.Description)
		}
	}
	if failures > 0 {
		fmt.Fprintf(os.Stdout, "%d of %d fixtures failed\n", failures, len(fixtures))
		return 1
	}
	fmt.Fprintf(os.Stdout, "all %d fixtures passed\n", len(fixtures))
	return 0
}

func runREPL(args []string) int {
	if len(args) > 1 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(args[1:], " "))
		return 1
	}
	return replLoop(os.Stdin, os.Stdout, os.Stderr)
}

// replLoop reads one program per line and evaluates it against a persistent
// environment, so bindings survive across lines. Non-nil results are echoed
// in their display form; failures are reported and the session continues.
func replLoop(in io.Reader, out, errOut io.Writer) int {
	interp := interpreter.NewWithOutput(out)
	env := runtime.NewEnvironment(nil)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		program, err := parser.Parse(line)
		if err != nil {
			fmt.Fprintln(errOut, describeFailure(err))
			continue
		}
		val, err := interp.EvaluateIn(program, env)
		if err != nil {
			fmt.Fprintln(errOut, describeFailure(err))
			continue
		}
		if _, isNil := val.(runtime.NilValue); !isNil {
			fmt.Fprintln(out, runtime.FormatValue(val))
		}
	}
	fmt.Fprintln(out)
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "read input: %v\n", err)
		return 1
	}
	return 0
}

// readSource resolves program text from -e or a single file argument.
func readSource(inline string, rest []string) (string, error) {
	if inline != "" {
		if len(rest) > 0 {
			return "", fmt.Errorf("unexpected arguments after -e: %s", strings.Join(rest, " "))
		}
		return inline, nil
	}
	switch len(rest) {
	case 0:
		return "", errors.New("a source file or -e <source> is required")
	case 1:
	default:
		return "", fmt.Errorf("unexpected arguments: %s", strings.Join(rest[1:], " "))
	}
	data, err := os.ReadFile(rest[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func describeFailure(err error) string {
	var lerr *lexer.LexError
	var perr *parser.ParseError
	var rerr *runtime.Error
	switch {
	case errors.As(err, &lerr):
		return fmt.Sprintf("lex error: %s", lerr.Message)
	case errors.As(err, &perr):
		return fmt.Sprintf("parse error: %s", perr.Message)
	case errors.As(err, &rerr):
		return fmt.Sprintf("runtime error (%s): %s", rerr.Code, rerr.Message)
	default:
		return err.Error()
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  mite run [-r] [-e source | file.mite]")
	fmt.Fprintln(os.Stderr, "  mite <file.mite>")
	fmt.Fprintln(os.Stderr, "  mite ast [-e source | file.mite]")
	fmt.Fprintln(os.Stderr, "  mite test [-v] [dir]")
	fmt.Fprintln(os.Stderr, "  mite repl")
	fmt.Fprintln(os.Stderr, "  mite version")
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pontaoski/minilang/interpreter"
	"github.com/pontaoski/minilang/lexer"
	"github.com/pontaoski/minilang/parser"
	"github.com/ztrue/tracerr"
)

// runREPL keeps one interpreter for the whole session, so definitions carry
// over between lines. Errors are reported and the session goes on.
func runREPL(in io.Reader, out, errOut io.Writer) error {
	session := interpreter.New(out)
	prompt := color.New(color.FgCyan).SprintFunc()
	lines := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt("> "))
		if !lines.Scan() {
			fmt.Fprintln(out)
			return lines.Err()
		}

		source := lines.Text()
		if strings.TrimSpace(source) == "" {
			continue
		}
		if err := evalLine(session, source, out); err != nil {
			reportError(errOut, err, false)
		}
	}
}

// evalLine runs a line as statements. A line holding a bare expression has
// its value printed instead.
func evalLine(session *interpreter.Interpreter, source string, out io.Writer) error {
	tokens, err := lexer.Scan(source, "repl")
	if err != nil {
		return tracerr.Wrap(err)
	}

	if expr, err := parser.ParseExpression(tokens); err == nil {
		value, err := session.Evaluate(expr)
		if err != nil {
			return tracerr.Wrap(err)
		}
		fmt.Fprintln(out, value)
		return nil
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if err := session.Interpret(program); err != nil {
		return tracerr.Wrap(err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/coreos/pkg/multierror"
	"github.com/fatih/color"
	"github.com/pontaoski/minilang/ast"
	"github.com/pontaoski/minilang/interpreter"
	"github.com/pontaoski/minilang/lexer"
	"github.com/pontaoski/minilang/parser"
	"github.com/pontaoski/minilang/types"
	"github.com/ztrue/tracerr"
)

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", tracerr.Wrap(err)
	}
	return string(data), nil
}

func identifier(name string) types.Token {
	return types.Token{Kind: types.IDENTIFIER, Lexeme: name}
}

func scan(name, source string) ([]types.Token, error) {
	tokens, err := lexer.Scan(source, name)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	return tokens, nil
}

// parse returns whatever parsed cleanly along with the diagnostics.
func parse(name, source string) (ast.Program, error) {
	tokens, err := scan(name, source)
	if err != nil {
		return nil, err
	}

	program, err := parser.Parse(tokens)
	if err != nil {
		return program, tracerr.Wrap(err)
	}
	return program, nil
}

// runSource lexes, parses and interprets source. Nothing runs if the parser
// reported anything.
func runSource(name, source string, out io.Writer) (*interpreter.Interpreter, error) {
	program, err := parse(name, source)
	if err != nil {
		return nil, err
	}

	in := interpreter.New(out)
	if err := in.Interpret(program); err != nil {
		return in, tracerr.Wrap(err)
	}
	return in, nil
}

// flatten splits parser diagnostics into one error each.
func flatten(err error) []error {
	if me, ok := tracerr.Unwrap(err).(multierror.Error); ok {
		return me
	}
	return []error{err}
}

func reportError(w io.Writer, err error, trace bool) {
	if trace {
		fmt.Fprintln(w, tracerr.SprintSourceColor(err))
		return
	}

	headline := color.New(color.FgRed, color.Bold).SprintFunc()
	for _, e := range flatten(err) {
		fmt.Fprintf(w, "%s %s\n", headline("error:"), tracerr.Unwrap(e))
	}
}

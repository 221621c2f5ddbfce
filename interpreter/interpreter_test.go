package interpreter

import (
	"bytes"
	goerrors "errors"
	"strings"
	"testing"

	"github.com/alecthomas/repr"
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/lexer"
	"github.com/pontaoski/minilang/parser"
	"github.com/pontaoski/minilang/types"
)

func run(t *testing.T, source string) (*Interpreter, string, error) {
	t.Helper()

	tokens, err := lexer.Scan(source, "test")
	if err != nil {
		t.Fatalf("scan %q: %v", source, err)
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}

	var out bytes.Buffer
	in := New(&out)
	err = in.Interpret(program)
	return in, out.String(), err
}

func mustRun(t *testing.T, source string) (*Interpreter, string) {
	t.Helper()

	in, out, err := run(t, source)
	if err != nil {
		t.Fatalf("run %q: %v", source, err)
	}
	return in, out
}

func eval(t *testing.T, in *Interpreter, source string) (types.Value, error) {
	t.Helper()

	tokens, err := lexer.Scan(source, "test")
	if err != nil {
		t.Fatalf("scan %q: %v", source, err)
	}
	expr, err := parser.NewParser(tokens).Expression()
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	return in.Evaluate(expr)
}

func global(t *testing.T, in *Interpreter, name string) types.Value {
	t.Helper()

	v, err := in.Globals().Get(types.Token{Kind: types.IDENTIFIER, Lexeme: name})
	if err != nil {
		t.Fatalf("global %s: %v", name, err)
	}
	return v
}

func TestWhileLoopSum(t *testing.T) {
	_, out := mustRun(t, "var sum = 0; var x = 1; while (x < 10) { sum = sum + x; x = x + 1; } print sum;")
	if out != "45\n" {
		t.Fatalf("expected 45, got %q", out)
	}
}

func TestScopeWithLongerLoop(t *testing.T) {
	source := `
		var x = 1;
		var execute = x < 1000;
		var sum = 0;
		while (execute) {
			sum = sum + x;
			x = x + 1;
			execute = x < 1000;
		}

		print sum;`
	_, out := mustRun(t, source)
	if out != "499500\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestAssignmentThroughChain(t *testing.T) {
	in, _ := mustRun(t, "var x = 1; { x = 2; }")
	if got := global(t, in, "x"); got != types.Number(2) {
		t.Fatalf("assignment inside block should update the global, got %v", got)
	}
}

func TestBlockDefinitionShadows(t *testing.T) {
	in, out := mustRun(t, "var x = 1; { var x = 2; print x; } print x;")
	if out != "2\n1\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if got := global(t, in, "x"); got != types.Number(1) {
		t.Fatalf("shadow leaked into the global scope, got %v", got)
	}
}

func TestScopeRestoredAfterError(t *testing.T) {
	in, _, err := run(t, "var x = 1; { var y = 2; { print y + true; } }")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if in.env != in.globals {
		t.Fatalf("current scope was not restored after the error")
	}
	if _, err := eval(t, in, "y"); err == nil {
		t.Fatalf("block scoped variable leaked after the error")
	}
}

func TestLogicalShortCircuit(t *testing.T) {
	in := New(&bytes.Buffer{})

	cases := []struct {
		source string
		want   types.Value
	}{
		{"nil or 5", types.Number(5)},
		{"false and 5", types.Bool(false)},
		{"1 or undefinedName", types.Number(1)},
		{"nil and undefinedName", types.Nil{}},
		{`"" and "yes"`, types.String("yes")},
		{"0 or 2", types.Number(0)},
	}
	for _, c := range cases {
		got, err := eval(t, in, c.source)
		if err != nil {
			t.Fatalf("%q: %v", c.source, err)
		}
		if !types.Equal(got, c.want) {
			t.Fatalf("%q: got %s, want %s", c.source, repr.String(got), repr.String(c.want))
		}
	}
}

func TestArithmeticAndComparison(t *testing.T) {
	in := New(&bytes.Buffer{})

	cases := []struct {
		source string
		want   types.Value
	}{
		{"1 + 2 * 3", types.Number(7)},
		{"(1 + 2) * 3", types.Number(9)},
		{"10 - 4 - 3", types.Number(3)},
		{"7 / 2", types.Number(3.5)},
		{"-3 + 1", types.Number(-2)},
		{"!nil", types.Bool(true)},
		{"!0", types.Bool(false)},
		{`"foo" + "bar"`, types.String("foobar")},
		{"1 < 2", types.Bool(true)},
		{"2 <= 2", types.Bool(true)},
		{"3 > 4", types.Bool(false)},
		{"4 >= 5", types.Bool(false)},
		{"1 == 1", types.Bool(true)},
		{`1 == "1"`, types.Bool(false)},
		{"nil == nil", types.Bool(true)},
		{"nil != false", types.Bool(true)},
		{`"a" != "a"`, types.Bool(false)},
	}
	for _, c := range cases {
		got, err := eval(t, in, c.source)
		if err != nil {
			t.Fatalf("%q: %v", c.source, err)
		}
		if !types.Equal(got, c.want) {
			t.Fatalf("%q: got %s, want %s", c.source, repr.String(got), repr.String(c.want))
		}
	}
}

func TestTypeErrors(t *testing.T) {
	cases := map[string]string{
		"1 + true;":    "+",
		`"a" + 1;`:     "+",
		`1 - "a";`:     "-",
		"nil * 2;":     "*",
		`"a" < "b";`:   "<",
		`-"a";`:        "-",
		"missing;":     "missing",
		"missing = 1;": "missing",
	}
	for source, lexeme := range cases {
		_, _, err := run(t, source)

		var rerr errors.RuntimeError
		if !goerrors.As(err, &rerr) {
			t.Fatalf("%q: expected a runtime error, got %v", source, err)
		}
		if rerr.Token.Lexeme != lexeme || !strings.Contains(err.Error(), "'"+lexeme+"'") {
			t.Fatalf("%q: error does not reference %q: %v", source, lexeme, err)
		}
	}
}

func TestBothOperandsEvaluated(t *testing.T) {
	_, _, err := run(t, "var a = 1; false == (a = undefinedName);")
	if err == nil {
		t.Fatalf("expected the right operand to be evaluated")
	}
}

func TestRedefinitionError(t *testing.T) {
	_, _, err := run(t, "var x = 1; var x = 2;")

	var rerr errors.RuntimeError
	if !goerrors.As(err, &rerr) || rerr.Token.Lexeme != "x" {
		t.Fatalf("expected a duplicate definition error, got %v", err)
	}
}

func TestErrorStopsOutput(t *testing.T) {
	_, out, err := run(t, "print 1; print 1 + nil; print 2;")
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	if out != "1\n" {
		t.Fatalf("output continued after the error: %q", out)
	}
}

func TestPrintFormatting(t *testing.T) {
	_, out := mustRun(t, `print 3.0; print 3.5; print nil; print true; print "text"; print 10 / 4; var u; print u;`)
	want := "3\n3.5\nnil\ntrue\ntext\n2.5\nnil\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestIfElseAndFor(t *testing.T) {
	source := `
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 2) print "two"; else print i;
		}
		if (nil) print "never";`
	_, out := mustRun(t, source)
	if out != "0\n1\ntwo\n3\n4\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestForLoopVariableIsScoped(t *testing.T) {
	in, _ := mustRun(t, "for (var i = 0; i < 2; i = i + 1) {}")
	if len(in.Globals().Keys()) != 0 {
		t.Fatalf("loop variable leaked: %v", in.Globals().Keys())
	}
}

func TestFunctionsAreNoOps(t *testing.T) {
	in, out := mustRun(t, "fun f(a) { print a; return a; } var r = f(1); print r; print f(1)(2);")
	if out != "nil\nnil\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := eval(t, in, "f"); err == nil {
		t.Fatalf("function declaration should not bind a name")
	}
}

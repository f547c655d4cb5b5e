package evaluator

import (
	"bytes"
	"strings"
	"testing"

	"vscript/lexer"
	"vscript/object"
	"vscript/parser"
)

func run(t *testing.T, source string) (string, error) {
	t.Helper()
	l := lexer.New(source)
	p, err := parser.New(l)
	if err != nil {
		t.Fatalf("lexer priming failed: %v", err)
	}
	stmts, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var out bytes.Buffer
	e := &Evaluator{Globals: object.NewEnvironment(), Out: &out}
	object.RegisterBuiltins(e.Globals, &out)
	runErr := e.Interpret(stmts)
	return out.String(), runErr
}

func TestOutputAddition(t *testing.T) {
	out, err := run(t, "输出(1 + 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestClosureSeesLaterMutation(t *testing.T) {
	source := `
就是 x = 1
函数 f() { 输出(x) }
x = 2
f()
`
	out, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "2\n"; got != want {
		t.Errorf("output = %q, want %q (closure must see the mutation, not a snapshot)", got, want)
	}
}

func TestFibonacciRecursion(t *testing.T) {
	source := `
函数 fib(n) {
	如果 (n < 2) { 返回 n }
	返回 fib(n - 1) + fib(n - 2)
}
输出(fib(10))
`
	out, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "55\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestForLoopOverRange(t *testing.T) {
	out, err := run(t, "对于 i 在 范围(0, 3) { 输出(i) }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "0\n1\n2\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestStringConcatenationWithCJKText(t *testing.T) {
	out, err := run(t, `输出("你好" + "，世界")`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "你好，世界\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	_, err := run(t, "1 / 0")
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
	if !strings.Contains(err.Error(), "除数不能为零") {
		t.Errorf("error = %q, want it to mention 除数不能为零", err.Error())
	}
}

func TestNoShortCircuitForAndOr(t *testing.T) {
	source := `
就是 calls = 0
函数 inc() { calls = calls + 1 返回 真 }
假 并 inc()
输出(calls)
`
	out, err := run(t, source)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "1\n"; got != want {
		t.Errorf("output = %q, want %q (the right operand of 并 must still run even when the left is 假)", got, want)
	}
}

func TestAssignToUndeclaredNameIsRuntimeError(t *testing.T) {
	_, err := run(t, "x = 1")
	if err == nil {
		t.Fatal("expected a runtime error assigning to an undeclared name")
	}
}

func TestCallingNonCallableIsRuntimeError(t *testing.T) {
	_, err := run(t, "就是 x = 1\nx()")
	if err == nil {
		t.Fatal("expected a runtime error calling a non-callable value")
	}
}

func TestArityMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, "函数 f(a) { 返回 a }\nf()")
	if err == nil {
		t.Fatal("expected a runtime error for an arity mismatch")
	}
}

func TestForOverNonArrayIsRuntimeError(t *testing.T) {
	_, err := run(t, "对于 i 在 1 { 输出(i) }")
	if err == nil {
		t.Fatal("expected a runtime error iterating a non-array")
	}
}

func TestBuiltinLength(t *testing.T) {
	out, err := run(t, `输出(长度([1, 2, 3]))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "3\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRangeWithNonIntegerBoundsWalksByWholeSteps(t *testing.T) {
	out, err := run(t, "对于 i 在 范围(0.5, 2.5) { 输出(i) }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "0.5\n1.5\n"; got != want {
		t.Errorf("output = %q, want %q (范围 steps by 1 from a fractional start, stopping once the next step would reach end)", got, want)
	}
}

func TestRangeCoercesStringBounds(t *testing.T) {
	out, err := run(t, `对于 i 在 范围("0", "3") { 输出(i) }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "0\n1\n2\n"; got != want {
		t.Errorf("output = %q, want %q (a numeric string bound must coerce the same as a number)", got, want)
	}
}

func TestRangeUnparsableStringBoundIsRuntimeError(t *testing.T) {
	_, err := run(t, `范围("不是数字", 3)`)
	if err == nil {
		t.Fatal("expected a runtime error for an unparsable 范围 bound")
	}
	if !strings.Contains(err.Error(), "范围参数无法解析为数字") {
		t.Errorf("error = %q, want it to mention 范围参数无法解析为数字 (via verrors.WrapRuntimeError)", err.Error())
	}
}

func TestBuiltinType(t *testing.T) {
	out, err := run(t, `输出(类型(1))`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := out, "数字\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

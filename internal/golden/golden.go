// Package golden runs a VScript program end-to-end and snapshot-tests its
// stdout via go-snaps, pinning the renderings the spec leaves
// implementation-defined (composite 输出 output, in particular).
package golden

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"vscript/evaluator"
	"vscript/lexer"
	"vscript/object"
	"vscript/parser"
)

// Run lexes, parses, and evaluates source against a fresh global
// environment, then asserts its stdout matches the stored snapshot for t's
// name. When evaluation fails, the snapshot holds the error text (prefixed
// with "ERROR: ") instead of stdout.
func Run(t *testing.T, source string) {
	t.Helper()

	l := lexer.New(source)
	p, err := parser.New(l)
	if err != nil {
		t.Fatalf("lex error priming parser: %v", err)
	}
	stmts, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var out bytes.Buffer
	eval := &evaluator.Evaluator{Globals: object.NewEnvironment(), Out: &out}
	object.RegisterBuiltins(eval.Globals, &out)

	if err := eval.Interpret(stmts); err != nil {
		snaps.MatchSnapshot(t, "ERROR: "+err.Error())
		return
	}
	snaps.MatchSnapshot(t, out.String())
}
